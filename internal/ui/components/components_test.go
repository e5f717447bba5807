package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vodila/vodila/internal/cards"
)

func press(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestMenuCursorIsClamped(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a"}, {Label: "b"}})

	m, _ = m.Update(press("up"))
	assert.Equal(t, 0, m.Selected)

	m, _ = m.Update(press("down"))
	m, _ = m.Update(press("j"))
	assert.Equal(t, 1, m.Selected)
}

func TestMenuChooseRunsAction(t *testing.T) {
	type chosen struct{}
	m := NewMenu([]MenuItem{
		{Label: "Sequential", Detail: "All cards in order"},
		{Label: "Quit", Action: func() tea.Cmd {
			return func() tea.Msg { return chosen{} }
		}},
	})

	_, cmd := m.Update(press("enter"))
	assert.Nil(t, cmd, "item without action")

	m, _ = m.Update(press("down"))
	_, cmd = m.Update(press("enter"))
	require.NotNil(t, cmd)
	assert.IsType(t, chosen{}, cmd())

	view := m.View()
	assert.Contains(t, view, "▸ Quit")
	assert.Contains(t, view, "All cards in order")
}

func TestConfirmDefaultsToNo(t *testing.T) {
	c := NewConfirm("Reset?")
	_, res := c.Update(press("enter"))
	assert.Equal(t, ConfirmNo, res)
}

func TestConfirmToggleThenEnter(t *testing.T) {
	c := NewConfirm("Reset?")
	c, res := c.Update(press("left"))
	assert.Equal(t, ConfirmPending, res)
	_, res = c.Update(press("enter"))
	assert.Equal(t, ConfirmYes, res)
}

func TestConfirmShortcuts(t *testing.T) {
	tests := []struct {
		key  string
		want ConfirmResult
	}{
		{"y", ConfirmYes},
		{"n", ConfirmNo},
		{"esc", ConfirmNo},
		{"x", ConfirmPending},
	}
	for _, tt := range tests {
		_, got := NewConfirm("Reset?").Update(press(tt.key))
		assert.Equal(t, tt.want, got, "key %q", tt.key)
	}
}

func TestSplitBarCells(t *testing.T) {
	tests := []struct {
		name                string
		bar                 SplitBar
		known, unknown, not int
	}{
		{"even", SplitBar{Known: 10, Unknown: 10, NotStarted: 20, Width: 40}, 10, 10, 20},
		{"rounding goes to rest", SplitBar{Known: 1, Unknown: 1, NotStarted: 1, Width: 10}, 3, 3, 4},
		{"empty population", SplitBar{Width: 12}, 0, 0, 12},
		{"negative width", SplitBar{Known: 3, Width: -1}, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, u, n := tt.bar.Cells()
			assert.Equal(t, tt.known, k)
			assert.Equal(t, tt.unknown, u)
			assert.Equal(t, tt.not, n)
		})
	}
}

func TestSplitBarLegend(t *testing.T) {
	view := SplitBar{Known: 4, Unknown: 2, NotStarted: 9, Width: 30}.View()
	assert.Contains(t, view, "known 4")
	assert.Contains(t, view, "unknown 2")
	assert.Contains(t, view, "not started 9")
}

func TestFlashCardLean(t *testing.T) {
	card := cards.Card{ID: 1, Text: "hola", Translation: "привет"}

	_, ok := FlashCard{Card: card}.Lean()
	assert.False(t, ok)

	dir, ok := FlashCard{Card: card, Shift: 3}.Lean()
	assert.True(t, ok)
	assert.Equal(t, cards.Right, dir)

	dir, _ = FlashCard{Card: card, Shift: 3, Verdict: cards.Left}.Lean()
	assert.Equal(t, cards.Left, dir, "verdict wins over shift")
}

func TestFlashCardView(t *testing.T) {
	card := cards.Card{ID: 1, Text: "hola", Translation: "привет"}

	hidden := FlashCard{Card: card, Width: 40}.View()
	assert.Contains(t, hidden, "hola")
	assert.Contains(t, hidden, "space to reveal")
	assert.NotContains(t, hidden, "привет")

	shown := FlashCard{Card: card, Width: 40, Revealed: true, Shift: -4, Strength: 0.8}.View()
	assert.Contains(t, shown, "привет")
	assert.True(t, strings.Contains(shown, "don't know"))
}
