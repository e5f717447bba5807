package store

import (
	"context"
	"fmt"
	"time"

	"github.com/vodila/vodila/ent"
	"github.com/vodila/vodila/ent/sessionevent"
)

// AppendSessionEvent records a session lifecycle transition.
func (s *Store) AppendSessionEvent(ctx context.Context, ev SessionEvent) error {
	seqNum, err := s.nextSequence(ctx)
	if err != nil {
		return err
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	_, err = s.client.SessionEvent.Create().
		SetSequence(seqNum).
		SetTimestamp(at.UTC()).
		SetSessionID(ev.SessionID).
		SetMode(ev.Mode).
		SetKind(string(ev.Kind)).
		SetPosition(ev.Position).
		SetTotal(ev.Total).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

// RecentSessionEvents returns up to limit events, newest first.
func (s *Store) RecentSessionEvents(ctx context.Context, limit int) ([]SessionEvent, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.client.SessionEvent.Query().
		Order(ent.Desc(sessionevent.FieldSequence)).
		Limit(limit).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}

	out := make([]SessionEvent, len(rows))
	for i, e := range rows {
		out[i] = SessionEvent{
			Sequence:  e.Sequence,
			SessionID: e.SessionID,
			Mode:      e.Mode,
			Kind:      EventKind(e.Kind),
			Position:  e.Position,
			Total:     e.Total,
			At:        e.Timestamp,
		}
	}
	return out, nil
}
