// Package bank browses the persisted question bank.
package bank

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/feprep/internal/catalog"
	"github.com/abhisek/feprep/internal/question"
	"github.com/abhisek/feprep/internal/screen"
	"github.com/abhisek/feprep/internal/store"
	"github.com/abhisek/feprep/internal/ui/components"
	"github.com/abhisek/feprep/internal/ui/layout"
	"github.com/abhisek/feprep/internal/ui/theme"
)

// pageSize bounds how many entries are loaded at once.
const pageSize = 200

type bankLoadedMsg struct {
	Entries []store.BankQuestion
	Total   int
	Err     error
}

// entry is a bank row with its decoded question. q is nil when the stored
// payload no longer decodes.
type entry struct {
	row store.BankQuestion
	q   question.Question
}

// BankScreen lists stored questions newest first.
type BankScreen struct {
	repo     store.QuestionRepo
	entries  []entry
	total    int
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*BankScreen)(nil)
var _ screen.KeyHintProvider = (*BankScreen)(nil)
var _ screen.StatusProvider = (*BankScreen)(nil)

// New creates a BankScreen.
func New(repo store.QuestionRepo) *BankScreen {
	return &BankScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *BankScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		total, err := s.repo.CountQuestions(ctx, store.BankFilter{})
		if err != nil {
			return bankLoadedMsg{Err: err}
		}
		rows, err := s.repo.ListQuestions(ctx, store.BankFilter{})
		if err != nil {
			return bankLoadedMsg{Err: err}
		}
		if len(rows) > pageSize {
			rows = rows[len(rows)-pageSize:]
		}
		return bankLoadedMsg{Entries: rows, Total: total}
	}
}

func (s *BankScreen) Title() string {
	return "Question Bank"
}

func (s *BankScreen) Status() string {
	if !s.loaded || s.errMsg != "" {
		return ""
	}
	return fmt.Sprintf("%d stored  ", s.total)
}

func (s *BankScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BankScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case bankLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.entries = decodeEntries(msg.Entries)
			s.total = msg.Total
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
		case "enter":
			if len(s.entries) > 0 {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
		}
	}
	return s, nil
}

// decodeEntries reverses rows so the newest question comes first.
func decodeEntries(rows []store.BankQuestion) []entry {
	out := make([]entry, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		e := entry{row: rows[i]}
		if kind, err := question.ParseKind(rows[i].Kind); err == nil {
			if q, err := question.Decode(kind, []byte(rows[i].Payload)); err == nil {
				e.q = q
			}
		}
		out = append(out, e)
	}
	return out
}

func (s *BankScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading question bank...")
	}
	if len(s.entries) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  The bank is empty. Generated questions are saved here.")
	}

	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString("\n")

	for i, e := range s.entries {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}

		line := fmt.Sprintf("%s%s  %-18s %s", prefix,
			e.row.CreatedAt.Local().Format("Jan 02"), kindLabel(e.row.Kind), topicLabel(e.row))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Width(cw).MaxHeight(1).Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderDetail(e, cw)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (s *BankScreen) renderDetail(e entry, cw int) string {
	if e.q == nil {
		return components.Card(theme.Incorrect.Render("Stored payload no longer decodes."), cw)
	}
	var d strings.Builder
	d.WriteString(theme.Body.Width(cw - 6).Render(e.q.Common().Text))
	d.WriteString("\n\n")
	d.WriteString(theme.Correct.Render("Answer: ") + question.DescribeCorrect(e.q))
	if ex := e.q.Common().Explanation; ex != "" {
		d.WriteString("\n\n")
		d.WriteString(theme.Muted.Width(cw - 6).Render(ex))
	}
	d.WriteString("\n\n")
	d.WriteString(theme.Hint.Render("source: " + e.row.Source))
	return components.Card(d.String(), cw)
}

func kindLabel(name string) string {
	if k, err := question.ParseKind(name); err == nil {
		return k.DisplayName()
	}
	return name
}

func topicLabel(row store.BankQuestion) string {
	if t, err := catalog.Lookup(row.Category, row.Subtopic); err == nil {
		return t.SubtopicTitle
	}
	return row.Category + "/" + row.Subtopic
}
