package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vodila/vodila/internal/ui/theme"
)

// Button is a styled button component.
type Button struct {
	Label  string
	Active bool
}

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}

// ConfirmResult is the outcome of a Confirm dialog.
type ConfirmResult int

const (
	ConfirmPending ConfirmResult = iota
	ConfirmYes
	ConfirmNo
)

// Confirm asks a yes/no question. No is focused initially so a stray
// enter never confirms.
type Confirm struct {
	Question string
	yes      bool
}

// NewConfirm creates a dialog with No focused.
func NewConfirm(question string) Confirm {
	return Confirm{Question: question}
}

// Update moves focus or resolves the dialog.
func (c Confirm) Update(msg tea.Msg) (Confirm, ConfirmResult) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, ConfirmPending
	}

	switch kmsg.String() {
	case "left", "right", "h", "l", "tab":
		c.yes = !c.yes
	case "y":
		return c, ConfirmYes
	case "n", "esc":
		return c, ConfirmNo
	case "enter":
		if c.yes {
			return c, ConfirmYes
		}
		return c, ConfirmNo
	}
	return c, ConfirmPending
}

// View renders the question and both buttons.
func (c Confirm) View() string {
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		Button{Label: "Yes", Active: c.yes}.View(),
		"  ",
		Button{Label: "No", Active: !c.yes}.View(),
	)
	return lipgloss.JoinVertical(lipgloss.Center,
		theme.Body.Render(c.Question),
		"",
		buttons,
	)
}
