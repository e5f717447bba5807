package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vodila/vodila/internal/async"
	"github.com/vodila/vodila/internal/cards"
	"github.com/vodila/vodila/internal/progress"
	"github.com/vodila/vodila/internal/store"
)

type stubSelector struct {
	list []cards.Card
	err  error
	got  struct {
		mode    cards.Mode
		unknown []int
	}
}

func (s *stubSelector) Select(_ context.Context, mode cards.Mode, _, unknownIDs []int) ([]cards.Card, error) {
	s.got.mode = mode
	s.got.unknown = unknownIDs
	return s.list, s.err
}

type recordingTracker struct {
	set        progress.Set
	classified []int
}

func (r *recordingTracker) Classify(card cards.Card, dir cards.Direction) progress.Patch {
	r.classified = append(r.classified, card.ID)
	prev, was := r.set.Mark(card.ID, dir)
	return progress.Patch{CardID: card.ID, Direction: dir, Previous: prev, WasClassified: was}
}

func (r *recordingTracker) Loaded(context.Context) progress.Snapshot { return r.set.Snapshot() }

// slowBackend answers progress fetches after a delay, like a distant server.
type slowBackend struct {
	delay   time.Duration
	unknown []int
}

func (b *slowBackend) FetchProgress(context.Context) (progress.Snapshot, error) {
	time.Sleep(b.delay)
	return progress.NewSet(nil, b.unknown).Snapshot(), nil
}

func (b *slowBackend) SaveProgress(context.Context, int, cards.Direction) error { return nil }
func (b *slowBackend) ResetProgress(context.Context) error                      { return nil }
func (b *slowBackend) FetchStats(context.Context) (progress.Stats, error) {
	return progress.Stats{}, nil
}

type memJournal struct {
	mu     sync.Mutex
	events []store.SessionEvent
}

func (j *memJournal) AppendSessionEvent(_ context.Context, ev store.SessionEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, ev)
	return nil
}

func (j *memJournal) kinds() []store.EventKind {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []store.EventKind
	for _, ev := range j.events {
		out = append(out, ev.Kind)
	}
	return out
}

func deck(ids ...int) []cards.Card {
	out := make([]cards.Card, len(ids))
	for i, id := range ids {
		out[i] = cards.Card{ID: id}
	}
	return out
}

type fixture struct {
	m       *Machine
	sel     *stubSelector
	tracker *recordingTracker
	journal *memJournal
	tasks   *async.Group
}

func newFixture(t *testing.T, list []cards.Card) *fixture {
	t.Helper()
	logger, _ := test.NewNullLogger()
	f := &fixture{
		sel:     &stubSelector{list: list},
		tracker: &recordingTracker{set: progress.NewSet(nil, nil)},
		journal: &memJournal{},
		tasks:   async.NewGroup(logger),
	}
	f.m = NewMachine(f.sel, f.tracker, f.tasks, logger, WithJournal(f.journal))
	return f
}

// start runs Begin/Load/Seed the way the study view does.
func (f *fixture) start(t *testing.T, mode cards.Mode) {
	t.Helper()
	gen := f.m.Begin(mode)
	require.Equal(t, PhaseLoading, f.m.Phase())
	list, err := f.m.Load(context.Background(), mode)
	require.True(t, f.m.Seed(gen, list, err))
}

func (f *fixture) swipe(t *testing.T, dir cards.Direction) {
	t.Helper()
	tr, ok := f.m.Swipe(dir)
	require.True(t, ok)
	require.True(t, f.m.Advance(tr.Gen))
}

func TestSeed_ActiveOrEmpty(t *testing.T) {
	f := newFixture(t, deck(1, 2))
	f.start(t, cards.ModeSequential)
	assert.Equal(t, PhaseActive, f.m.Phase())

	card, ok := f.m.Current()
	require.True(t, ok)
	assert.Equal(t, 1, card.ID)

	empty := newFixture(t, nil)
	empty.start(t, cards.ModeUnknownSequential)
	assert.Equal(t, PhaseEmpty, empty.m.Phase())
	assert.NoError(t, empty.m.Err())
	assert.False(t, empty.m.Failed())
	_, ok = empty.m.Current()
	assert.False(t, ok)
}

func TestSeed_LoadFailureIsEmptyWithError(t *testing.T) {
	f := newFixture(t, deck(1))
	f.sel.err = errors.New("HTTP 500")
	f.start(t, cards.ModeRandom)

	assert.Equal(t, PhaseEmpty, f.m.Phase())
	assert.True(t, f.m.Failed())
	assert.Zero(t, f.m.Session().Len())
}

func TestSeed_StaleGenerationDropped(t *testing.T) {
	f := newFixture(t, deck(1))
	old := f.m.Begin(cards.ModeSequential)
	f.m.Back()

	assert.False(t, f.m.Seed(old, deck(1), nil))
	assert.Equal(t, PhaseIdle, f.m.Phase())

	newer := f.m.Begin(cards.ModeRandom)
	assert.False(t, f.m.Seed(old, deck(9), nil))
	assert.True(t, f.m.Seed(newer, deck(2), nil))
	card, _ := f.m.Current()
	assert.Equal(t, 2, card.ID)
}

func TestLoad_PassesUnknownSet(t *testing.T) {
	f := newFixture(t, deck(3, 7))
	f.tracker.set = progress.NewSet([]int{1}, []int{3, 7})
	f.start(t, cards.ModeUnknownSequential)

	assert.Equal(t, cards.ModeUnknownSequential, f.sel.got.mode)
	assert.Equal(t, []int{3, 7}, f.sel.got.unknown)
}

func TestSwipe_CompletesAtEnd(t *testing.T) {
	f := newFixture(t, deck(1, 2, 3))
	f.start(t, cards.ModeSequential)

	f.swipe(t, cards.Right)
	f.swipe(t, cards.Left)
	assert.Equal(t, PhaseActive, f.m.Phase())
	assert.False(t, f.m.Session().Complete())

	f.swipe(t, cards.Right)
	assert.Equal(t, PhaseComplete, f.m.Phase())
	assert.True(t, f.m.Session().Complete())
	assert.Equal(t, 3, f.m.Session().Position)

	_, ok := f.m.Swipe(cards.Right)
	assert.False(t, ok, "swipe after completion must be a no-op")
	assert.Equal(t, []int{1, 2, 3}, f.tracker.classified)
}

func TestSwipe_IgnoredWhileTransitioning(t *testing.T) {
	f := newFixture(t, deck(1, 2))
	f.start(t, cards.ModeSequential)

	tr, ok := f.m.Swipe(cards.Right)
	require.True(t, ok)
	assert.Equal(t, DefaultSwipeDelay, tr.Delay)
	assert.True(t, f.m.Transitioning())

	_, ok = f.m.Swipe(cards.Left)
	assert.False(t, ok)
	assert.Equal(t, []int{1}, f.tracker.classified, "card must be counted once")

	assert.True(t, f.m.Advance(tr.Gen))
	assert.False(t, f.m.Advance(tr.Gen), "second advance for the same swipe")
	assert.Equal(t, 1, f.m.Session().Position)
}

func TestSwipe_IgnoredOutsideActive(t *testing.T) {
	f := newFixture(t, deck(1))
	_, ok := f.m.Swipe(cards.Right)
	assert.False(t, ok)

	f.m.Begin(cards.ModeSequential)
	_, ok = f.m.Swipe(cards.Right)
	assert.False(t, ok)
	assert.Empty(t, f.tracker.classified)
}

func TestExam_DoesNotTouchProgress(t *testing.T) {
	ids := make([]int, cards.ExamSize)
	for i := range ids {
		ids[i] = i + 1
	}
	f := newFixture(t, deck(ids...))
	f.start(t, cards.ModeExam)

	k := 0
	for i := range ids {
		dir := cards.Left
		if i%3 == 0 {
			dir = cards.Right
			k++
		}
		f.swipe(t, dir)
	}

	assert.Equal(t, PhaseComplete, f.m.Phase())
	assert.Empty(t, f.tracker.classified)
	assert.Zero(t, f.tracker.set.TotalKnown()+f.tracker.set.TotalUnknown())

	res, ok := f.m.ExamResult()
	require.True(t, ok)
	assert.Equal(t, k, res.Correct)
	assert.Equal(t, cards.ExamSize-k, res.Incorrect)
	score, ok := res.Score()
	require.True(t, ok)
	assert.InDelta(t, float64(k)/float64(cards.ExamSize), score, 1e-9)
}

func TestAdvance_StaleAfterBack(t *testing.T) {
	f := newFixture(t, deck(1, 2))
	f.start(t, cards.ModeSequential)

	tr, ok := f.m.Swipe(cards.Right)
	require.True(t, ok)
	f.m.Back()

	assert.False(t, f.m.Advance(tr.Gen))
	assert.Equal(t, PhaseIdle, f.m.Phase())
	assert.Equal(t, []int{1}, f.tracker.classified, "dispatched classification survives back")
}

func TestRestart_FreshSessionSameMode(t *testing.T) {
	f := newFixture(t, deck(1, 2))
	f.start(t, cards.ModeRandom)
	f.swipe(t, cards.Right)
	firstID := f.m.Session().ID

	gen := f.m.Restart()
	assert.Equal(t, PhaseLoading, f.m.Phase())
	assert.Equal(t, cards.ModeRandom, f.m.Session().Mode)
	assert.NotEqual(t, firstID, f.m.Session().ID)

	require.True(t, f.m.Seed(gen, deck(5, 6), nil))
	assert.Equal(t, 0, f.m.Session().Position)

	f.tasks.Wait()
	assert.ElementsMatch(t, []store.EventKind{store.EventStarted, store.EventAbandoned, store.EventStarted}, f.journal.kinds())
}

func TestJournal_EmptyAndFinished(t *testing.T) {
	f := newFixture(t, deck(1))
	f.start(t, cards.ModeSequential)
	f.swipe(t, cards.Left)
	f.m.Back()

	f.sel.list = nil
	f.start(t, cards.ModeUnknownRandom)
	f.tasks.Wait()

	assert.ElementsMatch(t, []store.EventKind{store.EventStarted, store.EventFinished, store.EventEmpty}, f.journal.kinds())
}

func TestLoad_ColdCacheUsesServerProgress(t *testing.T) {
	logger, _ := test.NewNullLogger()
	tasks := async.NewGroup(logger)
	tracker := progress.NewSynchronizer(&slowBackend{delay: 30 * time.Millisecond, unknown: []int{3, 7}}, tasks, logger)
	sel := &stubSelector{list: deck(3, 7)}
	m := NewMachine(sel, tracker, tasks, logger)

	// The home screen's first refresh is still in flight when study starts.
	refreshed := make(chan error, 1)
	go func() { refreshed <- tracker.Refresh(context.Background()) }()

	gen := m.Begin(cards.ModeUnknownSequential)
	list, err := m.Load(context.Background(), cards.ModeUnknownSequential)
	require.True(t, m.Seed(gen, list, err))

	assert.Equal(t, []int{3, 7}, sel.got.unknown)
	assert.Equal(t, PhaseActive, m.Phase())
	assert.Equal(t, 2, m.Session().Len())
	require.NoError(t, <-refreshed)
}
