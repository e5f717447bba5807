package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/vodila/vodila/internal/ui/layout"
)

// Screen is one view on the router stack. The app draws the header and
// footer; a screen renders only the area between them.
type Screen interface {
	// Init runs once, when the screen joins the stack.
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	// Title is shown in the centre of the header.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer releases what a screen owns when it leaves the stack.
type Closer interface {
	Close()
}

// StatusProvider supplies the right side of the header, overriding the
// signed-in name.
type StatusProvider interface {
	Status() string
}
