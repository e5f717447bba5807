// Package gesture turns horizontal drags and arrow keys into swipe
// decisions.
package gesture

import (
	"math"

	"github.com/vodila/vodila/internal/cards"
)

// DefaultThreshold is the drag distance at which a swipe commits.
const DefaultThreshold = 100

// Outcome is the result of ending a drag.
type Outcome int

const (
	// Cancelled means the drag was too short; no swipe is emitted.
	Cancelled Outcome = iota
	// Committed means Direction holds the decided swipe.
	Committed
)

// Decision is what a finished gesture produced.
type Decision struct {
	Outcome   Outcome
	Direction cards.Direction
}

// Interpreter tracks one horizontal drag at a time.
type Interpreter struct {
	threshold float64
	start     float64
	current   float64
	dragging  bool
}

// New creates an Interpreter. A non-positive threshold uses DefaultThreshold.
func New(threshold float64) *Interpreter {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Interpreter{threshold: threshold}
}

// Threshold returns the commit distance.
func (g *Interpreter) Threshold() float64 {
	return g.threshold
}

// Begin starts a drag at x and resets the offset.
func (g *Interpreter) Begin(x float64) {
	g.start = x
	g.current = x
	g.dragging = true
}

// Move records the pointer position during a drag.
func (g *Interpreter) Move(x float64) {
	if !g.dragging {
		return
	}
	g.current = x
}

// Dragging reports whether a drag is in progress.
func (g *Interpreter) Dragging() bool {
	return g.dragging
}

// Offset is the live horizontal displacement of the current drag.
func (g *Interpreter) Offset() float64 {
	if !g.dragging {
		return 0
	}
	return g.current - g.start
}

// Strength is |offset| / threshold clamped to [0, 1], used to fade in the
// known/unknown hint while dragging.
func (g *Interpreter) Strength() float64 {
	return math.Min(math.Abs(g.Offset())/g.threshold, 1)
}

// Rotation is the tilt in degrees applied to the card while dragging.
func (g *Interpreter) Rotation() float64 {
	return g.Offset() / 10
}

// End finishes the drag. The offset always resets to zero.
func (g *Interpreter) End() Decision {
	offset := g.Offset()
	g.Reset()

	if math.Abs(offset) < g.threshold {
		return Decision{Outcome: Cancelled}
	}
	if offset > 0 {
		return Decision{Outcome: Committed, Direction: cards.Right}
	}
	return Decision{Outcome: Committed, Direction: cards.Left}
}

// Reset abandons any drag in progress.
func (g *Interpreter) Reset() {
	g.start = 0
	g.current = 0
	g.dragging = false
}

// Key maps a key name to a swipe. Keys only count while the session
// accepts input.
func Key(key string, active bool) (cards.Direction, bool) {
	if !active {
		return "", false
	}
	switch key {
	case "left", "h":
		return cards.Left, true
	case "right", "l":
		return cards.Right, true
	}
	return "", false
}
