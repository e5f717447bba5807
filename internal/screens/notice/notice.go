// Package notice shows a single message screen, used when a feature cannot
// start on this machine.
package notice

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vodila/vodila/internal/screen"
	"github.com/vodila/vodila/internal/ui/layout"
	"github.com/vodila/vodila/internal/ui/theme"
)

// NoticeScreen displays a message until the user goes back.
type NoticeScreen struct {
	title   string
	message string
}

var _ screen.Screen = (*NoticeScreen)(nil)

// New creates a NoticeScreen.
func New(title, message string) *NoticeScreen {
	return &NoticeScreen{title: title, message: message}
}

func (n *NoticeScreen) Init() tea.Cmd {
	return nil
}

func (n *NoticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return n, nil
}

func (n *NoticeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (n *NoticeScreen) View(width, height int) string {
	body := lipgloss.NewStyle().Foreground(theme.Text).Render(n.message)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}

func (n *NoticeScreen) Title() string {
	return n.title
}
