package components

import (
	"fmt"
	"math"

	"charm.land/lipgloss/v2"

	"github.com/vodila/vodila/internal/cards"
	"github.com/vodila/vodila/internal/ui/theme"
)

// DragRoom is the blank margin kept on each side of a resting card so it
// can be dragged either way.
const DragRoom = 8

// FlashCard renders a card face. Shift moves the card sideways by that many
// cells while it is being dragged; Strength in [0, 1] fades in the swipe
// hint for the side it leans towards.
type FlashCard struct {
	Card     cards.Card
	Revealed bool
	Shift    int // clamped to ±DragRoom by the caller
	Strength float64
	Tilt     float64
	Width    int
	// Verdict is set while the card is leaving after a committed swipe.
	Verdict cards.Direction
}

// Lean reports which side the card currently leans towards, if any.
func (f FlashCard) Lean() (cards.Direction, bool) {
	switch {
	case f.Verdict != "":
		return f.Verdict, true
	case f.Shift > 0:
		return cards.Right, true
	case f.Shift < 0:
		return cards.Left, true
	}
	return "", false
}

// View renders the card.
func (f FlashCard) View() string {
	width := max(f.Width, 20)

	body := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Text).
		Width(width - 6).
		Align(lipgloss.Center).
		Render(f.Card.Text)

	if f.Revealed {
		body += "\n\n" + lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Width(width-6).
			Align(lipgloss.Center).
			Render(f.Card.Translation)
	} else {
		body += "\n\n" + theme.Hint.Width(width-6).Align(lipgloss.Center).Render("space to reveal")
	}

	border := theme.Border
	if dir, ok := f.Lean(); ok && (f.Verdict != "" || f.Strength >= 0.5) {
		border = theme.Error
		if dir.Known() {
			border = theme.Success
		}
	}

	card := theme.Card.
		Width(width).
		BorderForeground(border).
		Render(body)

	margin := lipgloss.NewStyle().MarginLeft(max(DragRoom+f.Shift, 0))
	return margin.Render(f.hint()) + "\n" + margin.Render(card)
}

func (f FlashCard) hint() string {
	dir, ok := f.Lean()
	if !ok {
		return ""
	}
	strength := f.Strength
	if f.Verdict != "" {
		strength = 1
	}

	label := "← don't know"
	style := theme.Unknown
	if dir.Known() {
		label = "know it →"
		style = theme.Known
	}
	if strength < 0.5 {
		style = theme.Hint
	}
	if f.Tilt != 0 && f.Verdict == "" {
		label += fmt.Sprintf("  %+.0f°", math.Round(f.Tilt))
	}
	return style.Render(label)
}
