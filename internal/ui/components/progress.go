package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/vodila/vodila/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := max(p.Width-labelWidth-percentWidth, 4)
	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}

// SplitBar shows how a population divides into known, unknown and
// untouched cards.
type SplitBar struct {
	Known      int
	Unknown    int
	NotStarted int
	Width      int
}

// Cells returns how many cells each segment occupies. Rounding error goes
// to the not-started segment so the total is always Width.
func (b SplitBar) Cells() (known, unknown, rest int) {
	total := b.Known + b.Unknown + b.NotStarted
	width := max(b.Width, 0)
	if total <= 0 {
		return 0, 0, width
	}
	known = b.Known * width / total
	unknown = b.Unknown * width / total
	return known, unknown, width - known - unknown
}

// View renders the bar followed by a legend.
func (b SplitBar) View() string {
	known, unknown, rest := b.Cells()
	bar := theme.ProgressKnown.Render(strings.Repeat(" ", known)) +
		theme.ProgressUnknown.Render(strings.Repeat(" ", unknown)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", rest))

	legend := theme.Known.Render(fmt.Sprintf("known %d", b.Known)) + "   " +
		theme.Unknown.Render(fmt.Sprintf("unknown %d", b.Unknown)) + "   " +
		theme.Hint.Render(fmt.Sprintf("not started %d", b.NotStarted))

	return bar + "\n" + legend
}
