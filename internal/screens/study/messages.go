package study

import "github.com/vodila/vodila/internal/cards"

// cardsLoadedMsg carries the selector result for one load generation.
type cardsLoadedMsg struct {
	Gen   uint64
	Cards []cards.Card
	Err   error
}

// advanceMsg fires once the swipe transition delay has elapsed.
type advanceMsg struct {
	Gen uint64
}
