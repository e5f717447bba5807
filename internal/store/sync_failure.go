package store

import (
	"context"
	"fmt"
	"time"

	"github.com/vodila/vodila/ent"
	"github.com/vodila/vodila/ent/syncfailure"
)

// AppendSyncFailure records a progress write that failed to persist.
func (s *Store) AppendSyncFailure(ctx context.Context, cardID int, status string, cause string) error {
	seqNum, err := s.nextSequence(ctx)
	if err != nil {
		return err
	}

	_, err = s.client.SyncFailure.Create().
		SetSequence(seqNum).
		SetTimestamp(time.Now().UTC()).
		SetCardID(cardID).
		SetStatus(status).
		SetCause(cause).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save sync failure: %w", err)
	}
	return nil
}

// RecentSyncFailures returns up to limit failures, newest first.
func (s *Store) RecentSyncFailures(ctx context.Context, limit int) ([]SyncFailure, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.client.SyncFailure.Query().
		Order(ent.Desc(syncfailure.FieldSequence)).
		Limit(limit).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query sync failures: %w", err)
	}

	out := make([]SyncFailure, len(rows))
	for i, f := range rows {
		out[i] = SyncFailure{
			Sequence: f.Sequence,
			CardID:   f.CardID,
			Status:   f.Status,
			Cause:    f.Cause,
			At:       f.Timestamp,
		}
	}
	return out, nil
}
