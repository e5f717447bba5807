package store

import (
	"context"
	"fmt"
)

const sequenceKey = "journal_sequence"

// nextSequence returns the next journal sequence number, starting at 1.
// Session events and sync failures share it so the two tables interleave
// in the order things happened, across processes.
//
// The counter row lives in the ent-managed settings table, but the
// increment is raw SQL: ent has no atomic read-modify-write.
func (s *Store) nextSequence(ctx context.Context) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO settings (key, data) VALUES (?, '1')
		 ON CONFLICT(key) DO UPDATE SET data = CAST(data AS INTEGER) + 1
		 RETURNING CAST(data AS INTEGER)`, sequenceKey,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
