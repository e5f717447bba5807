package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vodila/vodila/internal/cards"
)

func drag(g *Interpreter, from, to float64) Decision {
	g.Begin(from)
	g.Move((from + to) / 2)
	g.Move(to)
	return g.End()
}

func TestEnd_Threshold(t *testing.T) {
	tests := []struct {
		name    string
		offset  float64
		want    Outcome
		wantDir cards.Direction
	}{
		{"right 99 cancels", 99, Cancelled, ""},
		{"left 99 cancels", -99, Cancelled, ""},
		{"right 100 commits", 100, Committed, cards.Right},
		{"left 100 commits", -100, Committed, cards.Left},
		{"far right", 340, Committed, cards.Right},
		{"no movement", 0, Cancelled, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(DefaultThreshold)
			d := drag(g, 500, 500+tt.offset)
			assert.Equal(t, tt.want, d.Outcome)
			assert.Equal(t, tt.wantDir, d.Direction)
			assert.Zero(t, g.Offset())
			assert.False(t, g.Dragging())
		})
	}
}

func TestOffsetLiveDuringDrag(t *testing.T) {
	g := New(0)
	assert.Equal(t, float64(DefaultThreshold), g.Threshold())

	g.Begin(10)
	assert.Zero(t, g.Offset())

	g.Move(60)
	assert.Equal(t, 50.0, g.Offset())
	assert.InDelta(t, 0.5, g.Strength(), 1e-9)
	assert.InDelta(t, 5.0, g.Rotation(), 1e-9)

	g.Move(-300)
	assert.Equal(t, -310.0, g.Offset())
	assert.Equal(t, 1.0, g.Strength())
}

func TestBeginResetsOffset(t *testing.T) {
	g := New(100)
	g.Begin(0)
	g.Move(80)
	g.Begin(200)
	assert.Zero(t, g.Offset())
}

func TestMoveWithoutBeginIgnored(t *testing.T) {
	g := New(100)
	g.Move(500)
	assert.Zero(t, g.Offset())
	assert.Equal(t, Cancelled, g.End().Outcome)
}

func TestKey(t *testing.T) {
	dir, ok := Key("left", true)
	assert.True(t, ok)
	assert.Equal(t, cards.Left, dir)

	dir, ok = Key("right", true)
	assert.True(t, ok)
	assert.Equal(t, cards.Right, dir)

	_, ok = Key("right", false)
	assert.False(t, ok)

	_, ok = Key("up", true)
	assert.False(t, ok)
}
