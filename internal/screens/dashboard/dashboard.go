// Package dashboard is the root screen: the exam categories plus the
// question bank.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/feprep/internal/catalog"
	"github.com/abhisek/feprep/internal/router"
	"github.com/abhisek/feprep/internal/screen"
	"github.com/abhisek/feprep/internal/screens/bank"
	"github.com/abhisek/feprep/internal/screens/category"
	"github.com/abhisek/feprep/internal/screens/notice"
	"github.com/abhisek/feprep/internal/screens/practice"
	"github.com/abhisek/feprep/internal/store"
	"github.com/abhisek/feprep/internal/ui/components"
	"github.com/abhisek/feprep/internal/ui/theme"
)

type bankCountMsg struct {
	n   int
	err error
}

// DashboardScreen lists the exam categories.
type DashboardScreen struct {
	menu      components.Menu
	repo      store.QuestionRepo
	opts      practice.Options
	bankCount int
	bankErr   error
}

var _ screen.Screen = (*DashboardScreen)(nil)

// New creates the dashboard. repo may be nil when no database is open.
func New(opts practice.Options, repo store.QuestionRepo) *DashboardScreen {
	d := &DashboardScreen{repo: repo, opts: opts, bankCount: -1}

	var items []components.MenuItem
	for _, c := range catalog.Categories() {
		items = append(items, components.MenuItem{
			Label:  c.Title,
			Detail: c.NumQuestions + " questions",
			Action: func() tea.Cmd {
				return push(category.New(c, opts))
			},
		})
	}
	items = append(items,
		components.MenuItem{Label: "Question bank", Action: func() tea.Cmd {
			if repo == nil {
				return push(notice.New("Question Bank",
					"No question bank is open.\n\nStart with --db to keep generated questions."))
			}
			return push(bank.New(repo))
		}},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	d.menu = components.NewMenu(items)
	return d
}

func push(scr screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
}

func (d *DashboardScreen) Init() tea.Cmd {
	if d.repo == nil {
		return nil
	}
	repo := d.repo
	return func() tea.Msg {
		n, err := repo.CountQuestions(context.Background(), store.BankFilter{})
		return bankCountMsg{n: n, err: err}
	}
}

func (d *DashboardScreen) Title() string {
	return "Home"
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(bankCountMsg); ok {
		d.bankCount, d.bankErr = m.n, m.err
		return d, nil
	}
	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *DashboardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	if height >= 24 {
		sections = append(sections, renderBanner(width))
	}
	sections = append(sections, theme.Subtitle.Width(cw).Render(d.statsLine()))
	sections = append(sections, lipgloss.NewStyle().Width(cw).Render(d.menu.View()))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, strings.Join(sections, "\n\n")))
}

func (d *DashboardScreen) statsLine() string {
	parts := []string{fmt.Sprintf("%d categories", len(catalog.Categories()))}
	switch {
	case d.bankErr != nil:
		parts = append(parts, "bank unavailable")
	case d.bankCount >= 0:
		parts = append(parts, fmt.Sprintf("%d banked questions", d.bankCount))
	}
	if d.opts.Generator == nil {
		parts = append(parts, "built-in questions only")
	}
	return strings.Join(parts, " · ")
}
