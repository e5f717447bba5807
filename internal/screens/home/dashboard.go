package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/vodila/vodila/internal/progress"
	"github.com/vodila/vodila/internal/screens/welcome"
	"github.com/vodila/vodila/internal/ui/components"
	"github.com/vodila/vodila/internal/ui/theme"
)

func (h *HomeScreen) View(width, height int) string {
	cw := contentWidth(width)
	compact := height < 24

	var sections []string
	if !compact {
		sections = append(sections, centered(cw, welcome.RenderBanner(cw)))
	}

	if h.confirm != nil {
		sections = append(sections, renderPanel(cw, h.confirm.View()))
		return renderFrame(strings.Join(sections, "\n\n"), width, height)
	}

	snap := h.deps.Progress.Snapshot()
	stats, ok := h.deps.Progress.Stats()
	sections = append(sections, renderProgressPanel(snap, stats, ok, cw))
	sections = append(sections, h.menu.View())

	if line := h.statusLine(); line != "" {
		sections = append(sections, centered(cw, line))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) statusLine() string {
	switch {
	case h.refreshing:
		return theme.Hint.Render("syncing...")
	case h.syncErr != nil:
		return lipgloss.NewStyle().Foreground(theme.Accent).Render("⚠ offline, showing cached progress")
	case h.notice != "":
		return theme.Hint.Render(h.notice)
	}
	return ""
}

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 64)
}

func centered(cw int, s string) string {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(s)
}

// renderProgressPanel shows the caller's own tallies and, once fetched,
// the community split.
func renderProgressPanel(snap progress.Snapshot, stats progress.Stats, statsOK bool, cw int) string {
	mine := fmt.Sprintf("%s   %s",
		theme.Known.Render(fmt.Sprintf("✓ %d known", snap.TotalKnown)),
		theme.Unknown.Render(fmt.Sprintf("✗ %d to learn", snap.TotalUnknown)),
	)

	lines := []string{mine}
	if statsOK {
		lines = append(lines,
			"",
			theme.Hint.Render(fmt.Sprintf("everyone, %d cards", stats.TotalCards)),
			components.SplitBar{
				Known:      stats.Known,
				Unknown:    stats.Unknown,
				NotStarted: stats.NotStarted,
				Width:      cw - 6,
			}.View(),
		)
	}
	return renderPanel(cw, lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func renderPanel(cw int, content string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(content)
}

// renderFrame centers content vertically and horizontally within the
// given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
