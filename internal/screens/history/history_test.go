package history

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vodila/vodila/internal/store"
)

type fakeJournal struct {
	events      []store.SessionEvent
	failures    []store.SyncFailure
	eventsErr   error
	failuresErr error
}

func (f *fakeJournal) RecentSessionEvents(context.Context, int) ([]store.SessionEvent, error) {
	return f.events, f.eventsErr
}

func (f *fakeJournal) RecentSyncFailures(context.Context, int) ([]store.SyncFailure, error) {
	return f.failures, f.failuresErr
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
}

func TestHistoryListsSessions(t *testing.T) {
	at := time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)
	s := New(&fakeJournal{
		events: []store.SessionEvent{
			{Sequence: 2, SessionID: "b", Mode: "exam", Kind: store.EventFinished, Position: 20, Total: 20, At: at},
			{Sequence: 1, SessionID: "a", Mode: "sequential", Kind: store.EventAbandoned, Position: 3, Total: 40, At: at},
		},
	})
	load(t, s)

	view := s.View(100, 30)
	assert.Contains(t, view, "Exam")
	assert.Contains(t, view, "20/20")
	assert.Contains(t, view, "3/40")
	assert.Equal(t, "History", s.Title())
}

func TestHistoryToggleFailures(t *testing.T) {
	s := New(&fakeJournal{
		failures: []store.SyncFailure{{Sequence: 1, CardID: 42, Status: "known", Cause: "dial tcp: refused"}},
	})
	load(t, s)
	assert.Contains(t, s.View(100, 30), "No sessions yet")

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, "Failed writes", s.Title())
	view := s.View(100, 30)
	assert.Contains(t, view, "card 42")
	assert.Contains(t, view, "dial tcp: refused")
}

func TestHistoryNavigationStaysInRange(t *testing.T) {
	s := New(&fakeJournal{
		events: []store.SessionEvent{{Kind: store.EventStarted}, {Kind: store.EventFinished}},
	})
	load(t, s)

	down := tea.KeyPressMsg{Code: tea.KeyDown}
	s.Update(down)
	s.Update(down)
	s.Update(down)
	assert.Equal(t, 1, s.selected)

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, s.selected)
}

func TestHistoryLoadError(t *testing.T) {
	s := New(&fakeJournal{eventsErr: errors.New("database is locked")})
	load(t, s)
	assert.Contains(t, s.View(80, 20), "database is locked")
}

func TestHistoryFailureTableErrorKeepsSessions(t *testing.T) {
	s := New(&fakeJournal{
		events:      []store.SessionEvent{{Mode: "random", Kind: store.EventStarted, Total: 5}},
		failuresErr: errors.New("no such table"),
	})
	load(t, s)
	assert.Contains(t, s.View(80, 20), "0/5")
}
