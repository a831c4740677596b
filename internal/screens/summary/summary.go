package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/feprep/internal/question"
	"github.com/abhisek/feprep/internal/router"
	"github.com/abhisek/feprep/internal/screen"
	"github.com/abhisek/feprep/internal/session"
	"github.com/abhisek/feprep/internal/ui/components"
	"github.com/abhisek/feprep/internal/ui/layout"
	"github.com/abhisek/feprep/internal/ui/theme"
)

// RetryMsg asks the screen below the summary to restart its exercise.
type RetryMsg struct{}

// SummaryScreen displays the results of a completed attempt.
type SummaryScreen struct {
	summary  *session.Summary
	canRetry bool
	selected int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. canRetry enables the retry key, which
// only exercises allow.
func New(summary *session.Summary, canRetry bool) *SummaryScreen {
	return &SummaryScreen{summary: summary, canRetry: canRetry}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	if s.summary != nil && s.summary.Mode == session.ModeTimedQuiz {
		return "Quiz Results"
	}
	return "Exercise Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Review"},
		{Key: "Enter", Description: "Topics"},
	}
	if s.canRetry {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || s.summary == nil {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.summary.Results)-1 {
			s.selected++
		}
	case "enter":
		// Leave both the summary and the attempt screen.
		return s, tea.Sequence(
			func() tea.Msg { return router.PopScreenMsg{} },
			func() tea.Msg { return router.PopScreenMsg{} },
		)
	case "r", "R":
		if s.canRetry {
			return s, tea.Sequence(
				func() tea.Msg { return router.PopScreenMsg{} },
				func() tea.Msg { return RetryMsg{} },
			)
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")

	score := fmt.Sprintf("%d%%", sum.Percentage)
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(bandColor(sum.Band)).Bold(true), score))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, theme.Body, sum.Message()))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Correct: %d/%d        Answered: %d        Time: %s",
		sum.Correct, sum.Total, sum.Answered, session.FormatClock(int(sum.Duration.Seconds())))
	b.WriteString(layout.Centered(width, theme.Muted, stats))
	b.WriteString("\n")
	bar := components.NewProgressBar("", float64(sum.Percentage)/100, false, min(cw, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Muted.Render("Review")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	var list strings.Builder
	for i, r := range sum.Results {
		mark, style := "✗", theme.Incorrect
		switch {
		case r.Correct:
			mark, style = "✓", theme.Correct
		case !r.Answered:
			mark, style = "–", theme.Muted
		}
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s %d. %s", prefix, mark, i+1, truncate(r.Question.Common().Text, cw-8))
		if i == s.selected {
			style = style.Underline(true)
		}
		list.WriteString(style.Render(line))
		list.WriteString("\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(list.String())))
	b.WriteString("\n")

	if s.selected < len(sum.Results) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			components.Card(renderDetail(sum.Results[s.selected], cw-6), cw)))
	}

	return b.String()
}

// renderDetail shows the learner's answer against the accepted one.
func renderDetail(r session.QuestionResult, w int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Width(w).Foreground(theme.Text).Render(r.Question.Common().Text))
	b.WriteString("\n\n")
	b.WriteString(theme.Muted.Render("Your answer:    "))
	style := theme.Incorrect
	if r.Correct {
		style = theme.Correct
	}
	b.WriteString(style.Render(question.DescribeAnswer(r.Question, r.Answer)))
	b.WriteString("\n")
	b.WriteString(theme.Muted.Render("Correct answer: "))
	b.WriteString(theme.Correct.Render(question.DescribeCorrect(r.Question)))
	if exp := r.Question.Common().Explanation; exp != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(w).Foreground(theme.TextDim).Render(exp))
	}
	return b.String()
}

func bandColor(b session.Band) color.Color {
	switch b {
	case session.BandExcellent:
		return theme.Success
	case session.BandGood:
		return theme.Warning
	}
	return theme.Error
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n < 4 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
