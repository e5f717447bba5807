package progress

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vodila/vodila/internal/async"
	"github.com/vodila/vodila/internal/cards"
)

// fakeBackend is an in-memory progress server.
type fakeBackend struct {
	mu       sync.Mutex
	progress Set
	stats    Stats
	saves    []string
	saveErr  error
	fetchErr error
	resetErr error
	resets   int
	fetches  int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{progress: NewSet(nil, nil)}
}

func (f *fakeBackend) FetchProgress(context.Context) (Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.fetchErr != nil {
		return Snapshot{}, f.fetchErr
	}
	return f.progress.Snapshot(), nil
}

func (f *fakeBackend) SaveProgress(_ context.Context, cardID int, status cards.Direction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves = append(f.saves, string(status))
	if f.saveErr != nil {
		return f.saveErr
	}
	f.progress.Mark(cardID, status)
	return nil
}

func (f *fakeBackend) ResetProgress(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	if f.resetErr != nil {
		return f.resetErr
	}
	f.progress = NewSet(nil, nil)
	return nil
}

func (f *fakeBackend) FetchStats(context.Context) (Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return Stats{}, f.fetchErr
	}
	return f.stats, nil
}

type fakeJournal struct {
	mu      sync.Mutex
	entries []int
}

func (j *fakeJournal) AppendSyncFailure(_ context.Context, cardID int, _ string, _ string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, cardID)
	return nil
}

func newSync(t *testing.T, b *fakeBackend, opts ...Option) *Synchronizer {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return NewSynchronizer(b, async.NewGroup(logger), logger, opts...)
}

func card(id int) cards.Card { return cards.Card{ID: id} }

func TestClassify_SetsStayDisjoint(t *testing.T) {
	s := newSync(t, newFakeBackend())
	seq := []struct {
		id  int
		dir cards.Direction
	}{
		{1, cards.Right}, {2, cards.Left}, {1, cards.Left}, {2, cards.Right},
		{3, cards.Left}, {3, cards.Left}, {1, cards.Right}, {4, cards.Right},
	}
	for _, step := range seq {
		s.Classify(card(step.id), step.dir)

		snap := s.Snapshot()
		for _, id := range snap.Known {
			assert.NotContains(t, snap.Unknown, id)
		}
		assert.Equal(t, len(snap.Known), snap.TotalKnown)
		assert.Equal(t, len(snap.Unknown), snap.TotalUnknown)
	}
	s.Wait()

	snap := s.Snapshot()
	assert.Equal(t, []int{1, 2, 4}, snap.Known)
	assert.Equal(t, []int{3}, snap.Unknown)
}

func TestClassify_StatsCountedOnce(t *testing.T) {
	b := newFakeBackend()
	b.stats = Stats{TotalCards: 10, NotStarted: 10}
	s := newSync(t, b)
	require.NoError(t, s.RefreshStats(context.Background()))

	s.Classify(card(5), cards.Right)
	s.Classify(card(5), cards.Right)
	s.Wait()

	stats, ok := s.Stats()
	require.True(t, ok)
	assert.Equal(t, Stats{TotalCards: 10, Known: 1, Unknown: 0, NotStarted: 9}, stats)
}

func TestClassify_MoveBetweenBucketsKeepsTotal(t *testing.T) {
	b := newFakeBackend()
	b.stats = Stats{TotalCards: 4, NotStarted: 4}
	s := newSync(t, b)
	require.NoError(t, s.RefreshStats(context.Background()))

	s.Classify(card(1), cards.Left)
	s.Classify(card(1), cards.Right)
	s.Classify(card(2), cards.Left)
	s.Wait()

	stats, _ := s.Stats()
	assert.Equal(t, 1, stats.Known)
	assert.Equal(t, 1, stats.Unknown)
	assert.Equal(t, 2, stats.NotStarted)
	assert.Equal(t, stats.TotalCards, stats.Known+stats.Unknown+stats.NotStarted)
}

func TestClassify_NegativeNotStartedKeepsTotal(t *testing.T) {
	b := newFakeBackend()
	// Known and unknown are community-wide, so they can outnumber the deck.
	b.stats = Stats{TotalCards: 10, Known: 8, Unknown: 5, NotStarted: -3}
	s := newSync(t, b)
	require.NoError(t, s.RefreshStats(context.Background()))

	s.Classify(card(9), cards.Right)
	s.Wait()

	stats, _ := s.Stats()
	assert.Equal(t, Stats{TotalCards: 10, Known: 9, Unknown: 5, NotStarted: -4}, stats)
	assert.Equal(t, stats.TotalCards, stats.Known+stats.Unknown+stats.NotStarted)
}

func TestLoaded_FetchesColdCacheOnce(t *testing.T) {
	b := newFakeBackend()
	b.progress = NewSet([]int{1}, []int{3, 7})
	s := newSync(t, b)

	snap := s.Loaded(context.Background())
	assert.Equal(t, []int{1}, snap.Known)
	assert.Equal(t, []int{3, 7}, snap.Unknown)

	s.Loaded(context.Background())
	assert.Equal(t, 1, b.fetches)
}

func TestLoaded_SkipsFetchAfterRefresh(t *testing.T) {
	b := newFakeBackend()
	b.progress = NewSet(nil, []int{2})
	s := newSync(t, b)
	require.NoError(t, s.RefreshProgress(context.Background()))

	snap := s.Loaded(context.Background())
	assert.Equal(t, []int{2}, snap.Unknown)
	assert.Equal(t, 1, b.fetches)
}

func TestLoaded_FetchFailureRetriesNextTime(t *testing.T) {
	b := newFakeBackend()
	b.progress = NewSet(nil, []int{4})
	b.fetchErr = errors.New("offline")
	s := newSync(t, b)

	assert.Empty(t, s.Loaded(context.Background()).Unknown)

	b.mu.Lock()
	b.fetchErr = nil
	b.mu.Unlock()
	assert.Equal(t, []int{4}, s.Loaded(context.Background()).Unknown)
	assert.Equal(t, 2, b.fetches)
}

func TestClassify_StatsUntouchedBeforeFirstFetch(t *testing.T) {
	s := newSync(t, newFakeBackend())
	s.Classify(card(1), cards.Right)
	s.Wait()

	stats, ok := s.Stats()
	assert.False(t, ok)
	assert.Zero(t, stats)
}

func TestClassify_PersistFailureKeepsOptimisticState(t *testing.T) {
	b := newFakeBackend()
	b.saveErr = errors.New("connection refused")
	j := &fakeJournal{}
	s := newSync(t, b, WithJournal(j))

	patch := s.Classify(card(9), cards.Left)
	assert.False(t, patch.WasClassified)
	s.Wait()

	dir, ok := s.Status(9)
	assert.True(t, ok)
	assert.Equal(t, cards.Left, dir)
	assert.Equal(t, []int{9}, j.entries)
}

func TestClassify_DispatchesPersist(t *testing.T) {
	b := newFakeBackend()
	s := newSync(t, b)

	s.Classify(card(3), cards.Right)
	s.Classify(card(4), cards.Left)
	s.Wait()

	assert.ElementsMatch(t, []string{"known", "unknown"}, b.saves)
	assert.Equal(t, []int{3}, b.progress.KnownIDs())
}

func TestRefresh_OverwritesOptimisticState(t *testing.T) {
	b := newFakeBackend()
	b.saveErr = errors.New("offline")
	b.progress = NewSet([]int{1}, []int{2})
	s := newSync(t, b)

	s.Classify(card(7), cards.Right)
	s.Wait()
	assert.Equal(t, []int{7}, s.Snapshot().Known)

	require.NoError(t, s.Refresh(context.Background()))
	snap := s.Snapshot()
	assert.Equal(t, []int{1}, snap.Known)
	assert.Equal(t, []int{2}, snap.Unknown)
}

func TestRefresh_FailureLeavesStateAlone(t *testing.T) {
	b := newFakeBackend()
	b.progress = NewSet([]int{1, 2}, nil)
	b.stats = Stats{TotalCards: 3, Known: 2, NotStarted: 1}
	s := newSync(t, b)
	require.NoError(t, s.Refresh(context.Background()))

	b.fetchErr = errors.New("HTTP 502")
	err := s.Refresh(context.Background())
	require.Error(t, err)

	assert.Equal(t, []int{1, 2}, s.Snapshot().Known)
	stats, ok := s.Stats()
	assert.True(t, ok)
	assert.Equal(t, 2, stats.Known)
}

func TestReset_ThenFetchIsEmpty(t *testing.T) {
	b := newFakeBackend()
	b.progress = NewSet([]int{1, 2}, []int{3})
	s := newSync(t, b)
	require.NoError(t, s.Refresh(context.Background()))

	require.NoError(t, s.Reset(context.Background()))
	assert.Equal(t, 1, b.resets)

	require.NoError(t, s.RefreshProgress(context.Background()))
	snap := s.Snapshot()
	assert.Zero(t, snap.TotalKnown)
	assert.Zero(t, snap.TotalUnknown)
}

func TestReset_FailureResyncsServerTruth(t *testing.T) {
	b := newFakeBackend()
	b.progress = NewSet([]int{1}, nil)
	b.resetErr = errors.New("HTTP 500")
	s := newSync(t, b)

	err := s.Reset(context.Background())
	require.Error(t, err)
	assert.Equal(t, []int{1}, s.Snapshot().Known)
}

func TestNewSet_Conflict(t *testing.T) {
	set := NewSet([]int{1, 2}, []int{2})
	assert.Equal(t, []int{1}, set.KnownIDs())
	assert.Equal(t, []int{2}, set.UnknownIDs())
}
