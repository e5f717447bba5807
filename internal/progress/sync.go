// Package progress mirrors the caller's known/unknown classification and
// the community stats. Classifications are applied locally first and
// persisted in the background; a refresh from the backend always wins.
package progress

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vodila/vodila/internal/async"
	"github.com/vodila/vodila/internal/cards"
)

// Backend is the server side of progress and stats.
type Backend interface {
	FetchProgress(ctx context.Context) (Snapshot, error)
	SaveProgress(ctx context.Context, cardID int, status cards.Direction) error
	ResetProgress(ctx context.Context) error
	FetchStats(ctx context.Context) (Stats, error)
}

// FailureJournal records persist requests that did not reach the backend.
type FailureJournal interface {
	AppendSyncFailure(ctx context.Context, cardID int, status string, cause string) error
}

// Patch describes what a classification changed locally.
type Patch struct {
	CardID        int
	Direction     cards.Direction
	Previous      cards.Direction
	WasClassified bool
}

// Synchronizer owns the client-side progress cache.
type Synchronizer struct {
	backend Backend
	tasks   *async.Group
	journal FailureJournal
	log     logrus.FieldLogger

	mu             sync.Mutex
	set            Set
	progressLoaded bool
	stats          Stats
	statsLoaded    bool
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithJournal records failed persist requests in j.
func WithJournal(j FailureJournal) Option {
	return func(s *Synchronizer) { s.journal = j }
}

// NewSynchronizer creates a Synchronizer with an empty cache.
func NewSynchronizer(backend Backend, tasks *async.Group, log logrus.FieldLogger, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		backend: backend,
		tasks:   tasks,
		log:     log,
		set:     NewSet(nil, nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Classify marks card as dir in the local cache, patches the community
// stats and dispatches the persist request without waiting for it.
func (s *Synchronizer) Classify(card cards.Card, dir cards.Direction) Patch {
	s.mu.Lock()
	prev, wasClassified := s.set.Mark(card.ID, dir)
	if s.statsLoaded {
		s.patchStats(dir, prev, wasClassified)
	}
	s.mu.Unlock()

	s.persist(card.ID, dir)

	return Patch{
		CardID:        card.ID,
		Direction:     dir,
		Previous:      prev,
		WasClassified: wasClassified,
	}
}

// patchStats keeps known+unknown+notStarted == totalCards while counting a
// card at most once per bucket. NotStarted may already be negative: the
// backend counts known and unknown across every user. Caller holds mu.
func (s *Synchronizer) patchStats(dir cards.Direction, prev cards.Direction, wasClassified bool) {
	if wasClassified && prev == dir {
		return
	}

	if dir.Known() {
		s.stats.Known++
	} else {
		s.stats.Unknown++
	}

	switch {
	case !wasClassified:
		s.stats.NotStarted--
	case prev.Known():
		s.stats.Known--
	default:
		s.stats.Unknown--
	}
}

func (s *Synchronizer) persist(cardID int, dir cards.Direction) {
	s.tasks.Go("persist progress", func(ctx context.Context) error {
		err := s.backend.SaveProgress(ctx, cardID, dir)
		if err == nil {
			return nil
		}
		if s.journal != nil {
			if jerr := s.journal.AppendSyncFailure(ctx, cardID, string(dir), err.Error()); jerr != nil {
				s.log.WithError(jerr).Warn("journal sync failure")
			}
		}
		return fmt.Errorf("persist card %d as %s: %w", cardID, dir, err)
	})
}

// RefreshProgress replaces the local progress with the backend's. On
// failure the cache is left untouched.
func (s *Synchronizer) RefreshProgress(ctx context.Context) error {
	snap, err := s.backend.FetchProgress(ctx)
	if err != nil {
		s.log.WithError(err).Warn("refresh progress")
		return err
	}

	s.mu.Lock()
	s.set = FromSnapshot(snap)
	s.progressLoaded = true
	s.mu.Unlock()
	return nil
}

// RefreshStats replaces the local stats with the backend's. On failure the
// cache is left untouched.
func (s *Synchronizer) RefreshStats(ctx context.Context) error {
	stats, err := s.backend.FetchStats(ctx)
	if err != nil {
		s.log.WithError(err).Warn("refresh stats")
		return err
	}

	s.mu.Lock()
	s.stats = stats
	s.statsLoaded = true
	s.mu.Unlock()
	return nil
}

// Refresh reloads progress and stats independently of each other.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	var g errgroup.Group
	var progressErr, statsErr error
	g.Go(func() error {
		progressErr = s.RefreshProgress(ctx)
		return nil
	})
	g.Go(func() error {
		statsErr = s.RefreshStats(ctx)
		return nil
	})
	_ = g.Wait()
	return errors.Join(progressErr, statsErr)
}

// Reset clears the caller's progress locally and on the backend, then
// re-synchronises. It cannot be undone.
func (s *Synchronizer) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.set = NewSet(nil, nil)
	s.mu.Unlock()

	resetErr := s.backend.ResetProgress(ctx)
	if resetErr != nil {
		s.log.WithError(resetErr).Warn("reset progress")
		resetErr = fmt.Errorf("reset progress: %w", resetErr)
	}

	return errors.Join(resetErr, s.Refresh(ctx))
}

// Snapshot returns the current local progress.
func (s *Synchronizer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Snapshot()
}

// Loaded returns the local progress, fetching it first when no refresh has
// succeeded yet. If that fetch fails the empty cache is returned.
func (s *Synchronizer) Loaded(ctx context.Context) Snapshot {
	s.mu.Lock()
	loaded := s.progressLoaded
	s.mu.Unlock()

	if !loaded {
		_ = s.RefreshProgress(ctx)
	}
	return s.Snapshot()
}

// Stats returns the local community stats. ok is false until they have
// been fetched at least once.
func (s *Synchronizer) Stats() (stats Stats, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats, s.statsLoaded
}

// Status reports how the caller has classified cardID.
func (s *Synchronizer) Status(cardID int) (cards.Direction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Status(cardID)
}

// Wait blocks until in-flight persist requests have finished.
func (s *Synchronizer) Wait() {
	s.tasks.Wait()
}
