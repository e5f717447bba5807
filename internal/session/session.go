// Package session drives a study session: it seeds the card list from the
// selector, routes each swipe to the exam scorer or the progress
// synchronizer, and advances the position once the transition delay has
// passed.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vodila/vodila/internal/async"
	"github.com/vodila/vodila/internal/cards"
	"github.com/vodila/vodila/internal/exam"
	"github.com/vodila/vodila/internal/progress"
	"github.com/vodila/vodila/internal/store"
)

// DefaultSwipeDelay is the pause between a committed swipe and the next card.
const DefaultSwipeDelay = 300 * time.Millisecond

// Selector returns the ordered cards for a mode.
type Selector interface {
	Select(ctx context.Context, mode cards.Mode, knownIDs, unknownIDs []int) ([]cards.Card, error)
}

// Tracker records classifications outside of exams.
type Tracker interface {
	Classify(card cards.Card, dir cards.Direction) progress.Patch
	Loaded(ctx context.Context) progress.Snapshot
}

// Journal records session lifecycle events.
type Journal interface {
	AppendSessionEvent(ctx context.Context, ev store.SessionEvent) error
}

// Transition is returned by a committed swipe. The caller must call
// Advance with Gen once the swipe delay has elapsed.
type Transition struct {
	Gen       uint64
	Card      cards.Card
	Direction cards.Direction
	Delay     time.Duration
}

// Machine is the session state machine. It is not safe for concurrent
// use; the view that owns it drives it from a single goroutine. Load is
// the exception and may run in a command goroutine.
type Machine struct {
	selector Selector
	tracker  Tracker
	journal  Journal
	tasks    *async.Group
	log      logrus.FieldLogger
	delay    time.Duration

	phase         Phase
	gen           uint64
	session       Session
	scorer        *exam.Scorer
	transitioning bool
	err           error
}

// Option configures a Machine.
type Option func(*Machine)

// WithDelay overrides the swipe transition delay.
func WithDelay(d time.Duration) Option {
	return func(m *Machine) {
		if d >= 0 {
			m.delay = d
		}
	}
}

// WithJournal records session events in j.
func WithJournal(j Journal) Option {
	return func(m *Machine) { m.journal = j }
}

// NewMachine creates an idle Machine.
func NewMachine(selector Selector, tracker Tracker, tasks *async.Group, log logrus.FieldLogger, opts ...Option) *Machine {
	m := &Machine{
		selector: selector,
		tracker:  tracker,
		tasks:    tasks,
		log:      log,
		delay:    DefaultSwipeDelay,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Begin discards any current session and enters Loading for mode. The
// returned generation must be passed to Seed.
func (m *Machine) Begin(mode cards.Mode) uint64 {
	m.gen++
	m.phase = PhaseLoading
	m.session = Session{ID: uuid.NewString(), Mode: mode}
	m.scorer = nil
	m.transitioning = false
	m.err = nil
	return m.gen
}

// Load runs the card selector for mode against the current progress,
// which is fetched first on a cold cache. It touches no machine state.
func (m *Machine) Load(ctx context.Context, mode cards.Mode) ([]cards.Card, error) {
	snap := m.tracker.Loaded(ctx)
	return m.selector.Select(ctx, mode, snap.Known, snap.Unknown)
}

// Seed delivers the selector result for generation gen. Results for a
// superseded generation are dropped and Seed returns false.
func (m *Machine) Seed(gen uint64, list []cards.Card, err error) bool {
	if gen != m.gen || m.phase != PhaseLoading {
		return false
	}

	m.session.Cards = list
	m.session.Position = 0
	m.err = err

	log := m.log.WithFields(logrus.Fields{"session_id": m.session.ID, "mode": m.session.Mode})
	if err != nil {
		log.WithError(err).Warn("load session cards")
		m.session.Cards = nil
	}

	if m.session.Empty() {
		m.phase = PhaseEmpty
		m.record(store.EventEmpty)
		return true
	}

	if m.session.Mode.IsExam() {
		m.scorer = exam.NewScorer()
	}
	m.phase = PhaseActive
	log.WithField("cards", m.session.Len()).Debug("session started")
	m.record(store.EventStarted)
	return true
}

// Swipe classifies the current card. It is ignored unless the session is
// active, in bounds, and not already transitioning to the next card.
func (m *Machine) Swipe(dir cards.Direction) (Transition, bool) {
	if m.phase != PhaseActive || m.transitioning || m.session.Complete() {
		return Transition{}, false
	}

	card := m.session.Cards[m.session.Position]
	if m.scorer != nil {
		m.scorer.Record(card.ID, dir.Known())
	} else {
		m.tracker.Classify(card, dir)
	}
	m.transitioning = true

	return Transition{Gen: m.gen, Card: card, Direction: dir, Delay: m.delay}, true
}

// Advance moves past the swiped card. It returns false for a stale
// generation or when no swipe is pending.
func (m *Machine) Advance(gen uint64) bool {
	if gen != m.gen || !m.transitioning {
		return false
	}
	m.transitioning = false
	m.session.Position++

	if m.session.Complete() {
		m.phase = PhaseComplete
		m.record(store.EventFinished)
	}
	return true
}

// Restart discards the session and begins a fresh one in the same mode.
func (m *Machine) Restart() uint64 {
	m.abandon()
	return m.Begin(m.session.Mode)
}

// Back discards the session unconditionally. Requests already dispatched
// keep running in the background.
func (m *Machine) Back() {
	m.abandon()
	m.gen++
	m.phase = PhaseIdle
	m.session = Session{}
	m.scorer = nil
	m.transitioning = false
	m.err = nil
}

func (m *Machine) abandon() {
	if m.phase == PhaseActive {
		m.record(store.EventAbandoned)
	}
}

// Current returns the card being shown, if any.
func (m *Machine) Current() (cards.Card, bool) {
	if m.phase != PhaseActive || m.session.Complete() {
		return cards.Card{}, false
	}
	return m.session.Cards[m.session.Position], true
}

// Session returns a copy of the current session.
func (m *Machine) Session() Session {
	s := m.session
	s.Cards = append([]cards.Card(nil), m.session.Cards...)
	return s
}

func (m *Machine) Phase() Phase         { return m.phase }
func (m *Machine) Gen() uint64          { return m.gen }
func (m *Machine) Transitioning() bool  { return m.transitioning }
func (m *Machine) Delay() time.Duration { return m.delay }

// Err returns the selector error that left the session empty, if any.
func (m *Machine) Err() error { return m.err }

// Failed reports whether the session is empty because loading failed.
func (m *Machine) Failed() bool {
	return m.phase == PhaseEmpty && m.err != nil
}

// ExamResult returns the running exam tally. ok is false outside exams.
func (m *Machine) ExamResult() (exam.Result, bool) {
	if m.scorer == nil {
		return exam.Result{}, false
	}
	return m.scorer.Result(), true
}

func (m *Machine) record(kind store.EventKind) {
	if m.journal == nil {
		return
	}
	ev := store.SessionEvent{
		SessionID: m.session.ID,
		Mode:      string(m.session.Mode),
		Kind:      kind,
		Position:  m.session.Position,
		Total:     m.session.Len(),
		At:        time.Now(),
	}
	m.tasks.Go("journal session event", func(ctx context.Context) error {
		return m.journal.AppendSessionEvent(ctx, ev)
	})
}
