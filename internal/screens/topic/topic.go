// Package topic lets the learner pick how to practice one subtopic.
package topic

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/feprep/internal/catalog"
	"github.com/abhisek/feprep/internal/router"
	"github.com/abhisek/feprep/internal/screen"
	"github.com/abhisek/feprep/internal/screens/practice"
	sess "github.com/abhisek/feprep/internal/session"
	"github.com/abhisek/feprep/internal/ui/components"
	"github.com/abhisek/feprep/internal/ui/theme"
)

// TopicScreen offers the exercise and the timed quiz lengths for a topic.
type TopicScreen struct {
	topic catalog.Topic
	opts  practice.Options
	menu  components.Menu
}

var _ screen.Screen = (*TopicScreen)(nil)

// New creates a TopicScreen.
func New(topic catalog.Topic, opts practice.Options) *TopicScreen {
	s := &TopicScreen{topic: topic, opts: opts}

	items := []components.MenuItem{{
		Label:  "Exercise",
		Detail: "untimed · retry allowed",
		Action: func() tea.Cmd {
			return push(practice.NewExercise(topic, opts))
		},
	}}
	for _, limit := range sess.TimeLimits {
		detail := "one attempt"
		if limit == sess.DefaultTimeLimit {
			detail += " · default"
		}
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("Timed quiz · %d min", limit/60),
			Detail: detail,
			Action: func() tea.Cmd {
				q, err := practice.NewQuiz(topic, limit, opts)
				if err != nil {
					return nil
				}
				return push(q)
			},
		})
	}
	s.menu = components.NewMenu(items)
	return s
}

func push(scr screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
}

func (s *TopicScreen) Init() tea.Cmd {
	return nil
}

func (s *TopicScreen) Title() string {
	return s.topic.CategoryTitle
}

func (s *TopicScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *TopicScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var info strings.Builder
	info.WriteString(theme.Title.Width(cw - 6).Render(s.topic.SubtopicTitle))
	info.WriteString("\n\n")
	seeds := len(catalog.Seeds(s.topic))
	info.WriteString(theme.Muted.Render(fmt.Sprintf("Built-in questions: %d", seeds)))
	info.WriteString("\n")
	if s.opts.Generator != nil && len(s.opts.Kinds) > 0 {
		names := make([]string, len(s.opts.Kinds))
		for i, k := range s.opts.Kinds {
			names[i] = k.DisplayName()
		}
		info.WriteString(theme.Muted.Render("Generated per attempt: " + strings.Join(names, ", ")))
	} else {
		info.WriteString(theme.Muted.Render("No question source configured; built-in questions only."))
	}

	content := components.Card(info.String(), cw) + "\n\n" +
		lipgloss.NewStyle().Width(cw).Render(s.menu.View())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, "\n"+content)
}
