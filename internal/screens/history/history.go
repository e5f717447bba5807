// Package history lists the local journal: recent study sessions and the
// progress writes that never reached the backend.
package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vodila/vodila/internal/cards"
	"github.com/vodila/vodila/internal/screen"
	"github.com/vodila/vodila/internal/store"
	"github.com/vodila/vodila/internal/ui/layout"
	"github.com/vodila/vodila/internal/ui/theme"
)

const limit = 50

// Journal reads the local journal.
type Journal interface {
	RecentSessionEvents(ctx context.Context, limit int) ([]store.SessionEvent, error)
	RecentSyncFailures(ctx context.Context, limit int) ([]store.SyncFailure, error)
}

type historyLoadedMsg struct {
	Events   []store.SessionEvent
	Failures []store.SyncFailure
	Err      error
}

// HistoryScreen displays past sessions and failed progress writes.
type HistoryScreen struct {
	journal      Journal
	events       []store.SessionEvent
	failures     []store.SyncFailure
	selected     int
	showFailures bool
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(journal Journal) *HistoryScreen {
	return &HistoryScreen{journal: journal}
}

func (s *HistoryScreen) Init() tea.Cmd {
	journal := s.journal
	return func() tea.Msg {
		ctx := context.Background()

		events, err := journal.RecentSessionEvents(ctx, limit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		// A broken failure table still leaves the sessions readable.
		failures, err := journal.RecentSyncFailures(ctx, limit)
		if err != nil {
			return historyLoadedMsg{Events: events}
		}
		return historyLoadedMsg{Events: events, Failures: failures}
	}
}

func (s *HistoryScreen) Title() string {
	if s.showFailures {
		return "Failed writes"
	}
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	toggle := "Failed writes"
	if s.showFailures {
		toggle = "Sessions"
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: toggle},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) rows() int {
	if s.showFailures {
		return len(s.failures)
	}
	return len(s.events)
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
			s.failures = msg.Failures
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < s.rows()-1 {
				s.selected++
			}
		case "tab", "f":
			s.showFailures = !s.showFailures
			s.selected = 0
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if s.rows() == 0 {
		empty := "No sessions yet. Pick a mode and start swiping!"
		if s.showFailures {
			empty = "Every progress write reached the server."
		}
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  " + empty)
	}

	var lines []string
	if s.showFailures {
		for _, f := range s.failures {
			lines = append(lines, fmt.Sprintf("%s  card %-5d  %-7s  %s",
				f.At.Local().Format("Jan 02 15:04"), f.CardID, f.Status, clip(f.Cause, 40)))
		}
	} else {
		for _, e := range s.events {
			lines = append(lines, fmt.Sprintf("%s  %-18s  %-9s  %d/%d",
				e.At.Local().Format("Jan 02 15:04"), cards.Mode(e.Mode).Info().Name, e.Kind, e.Position, e.Total))
		}
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, line := range lines {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(s.rowColor(i))
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(prefix+line)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *HistoryScreen) rowColor(i int) color.Color {
	if s.showFailures {
		return theme.Error
	}
	switch s.events[i].Kind {
	case store.EventFinished:
		return theme.Success
	case store.EventAbandoned:
		return theme.TextDim
	case store.EventEmpty:
		return theme.Secondary
	default:
		return theme.Text
	}
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
