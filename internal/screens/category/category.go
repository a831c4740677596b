// Package category lists the subtopics of one exam category.
package category

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/feprep/internal/catalog"
	"github.com/abhisek/feprep/internal/router"
	"github.com/abhisek/feprep/internal/screen"
	"github.com/abhisek/feprep/internal/screens/practice"
	"github.com/abhisek/feprep/internal/screens/topic"
	"github.com/abhisek/feprep/internal/ui/components"
	"github.com/abhisek/feprep/internal/ui/theme"
)

// CategoryScreen lists a category's subtopics.
type CategoryScreen struct {
	category catalog.Category
	menu     components.Menu
}

var _ screen.Screen = (*CategoryScreen)(nil)

// New creates a CategoryScreen.
func New(c catalog.Category, opts practice.Options) *CategoryScreen {
	var items []components.MenuItem
	for _, t := range c.Topics() {
		var detail string
		if n := len(catalog.Seeds(t)); n > 0 {
			detail = fmt.Sprintf("%d built-in", n)
		}
		items = append(items, components.MenuItem{
			Label:  t.SubtopicID + ". " + t.SubtopicTitle,
			Detail: detail,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: topic.New(t, opts)}
				}
			},
		})
	}
	return &CategoryScreen{category: c, menu: components.NewMenu(items)}
}

func (s *CategoryScreen) Init() tea.Cmd {
	return nil
}

func (s *CategoryScreen) Title() string {
	return s.category.Title
}

func (s *CategoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *CategoryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	header := theme.Subtitle.Width(cw).Render(
		fmt.Sprintf("%d subtopics · %s questions on the exam", len(s.category.Subtopics), s.category.NumQuestions))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		"\n"+header+"\n\n"+lipgloss.NewStyle().Width(cw).Render(s.menu.View()))
}
