package session

import (
	"github.com/vodila/vodila/internal/cards"
)

// Phase represents the current phase of a study session.
type Phase int

const (
	PhaseIdle     Phase = iota // No session selected
	PhaseLoading               // Waiting for the card selector
	PhaseActive                // Serving cards
	PhaseEmpty                 // Selector returned nothing (or failed)
	PhaseComplete              // Every card has been classified
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseActive:
		return "active"
	case PhaseEmpty:
		return "empty"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible without a
// restart.
func (p Phase) Terminal() bool {
	return p == PhaseEmpty || p == PhaseComplete
}

// Session is one pass over a selected card list.
type Session struct {
	// ID identifies the session in the local journal.
	ID string

	// Mode is the selection mode the cards were drawn with.
	Mode cards.Mode

	// Cards is the ordered card list. It is not modified after Seed.
	Cards []cards.Card

	// Position is the index of the card being shown.
	Position int
}

// Len returns the number of cards in the session.
func (s Session) Len() int { return len(s.Cards) }

// Complete reports whether every card has been passed.
func (s Session) Complete() bool { return s.Position >= len(s.Cards) }

// Empty reports whether the selector returned no cards.
func (s Session) Empty() bool { return len(s.Cards) == 0 }

// Remaining returns how many cards are still to be classified.
func (s Session) Remaining() int { return max(len(s.Cards)-s.Position, 0) }
