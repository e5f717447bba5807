package audio

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	playback "github.com/vodila/vodila/internal/audio"
	"github.com/vodila/vodila/internal/ui/theme"
)

func (a *AudioScreen) View(width, height int) string {
	switch a.queue.Status() {
	case playback.StatusLoading, playback.StatusIdle:
		return center(width, height, a.spinner.View()+" "+theme.Hint.Render("Loading audio..."))
	case playback.StatusFailed:
		return center(width, height, lipgloss.JoinVertical(lipgloss.Center,
			theme.Unknown.Render("Could not load the audio list"),
			theme.Hint.Render(a.queue.Err().Error()),
			"",
			theme.Body.Render("Press R to try again"),
		))
	case playback.StatusEmpty:
		return center(width, height, theme.Subtitle.Render("No cards have audio yet"))
	}
	return a.renderList(width, height)
}

func (a *AudioScreen) renderList(width, height int) string {
	playable := a.queue.Playable()
	_, playingIdx, playingOK := a.queue.Current()

	rows := max(height-4, 1)
	first := 0
	if a.cursor >= rows {
		first = a.cursor - rows + 1
	}
	last := min(first+rows, len(playable))

	var b strings.Builder
	for i := first; i < last; i++ {
		c := playable[i]
		marker := "  "
		if a.playing && playingOK && i == playingIdx {
			marker = "♪ "
		}
		line := fmt.Sprintf("%s%4d  %s", marker, c.ID, c.Text)
		line = truncate(line, width-4)
		if i == a.cursor {
			b.WriteString(theme.Selected.Render("▸" + line))
		} else {
			b.WriteString(theme.Unselected.Render(" " + line))
		}
		b.WriteString("\n")
	}

	footer := fmt.Sprintf("%d playable", len(playable))
	if n := a.queue.Unplayable(); n > 0 {
		footer += fmt.Sprintf(", %d without audio", n)
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(footer))
	if a.lastErr != nil {
		b.WriteString("\n")
		b.WriteString(theme.Unknown.Render(a.lastErr.Error()))
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

func center(width, height int, s string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
