package notice

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/feprep/internal/screen"
	"github.com/abhisek/feprep/internal/ui/theme"
)

// NoticeScreen shows a short message, e.g. why a feature is unavailable.
type NoticeScreen struct {
	title string
	body  string
}

var _ screen.Screen = (*NoticeScreen)(nil)

// New creates a NoticeScreen.
func New(title, body string) *NoticeScreen {
	return &NoticeScreen{title: title, body: body}
}

func (n *NoticeScreen) Init() tea.Cmd {
	return nil
}

func (n *NoticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return n, nil
}

func (n *NoticeScreen) View(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(n.body)
}

func (n *NoticeScreen) Title() string {
	return n.title
}
