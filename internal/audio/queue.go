// Package audio sequences playback over the cards that have an audio asset.
package audio

import (
	"math/rand/v2"
	"slices"

	"github.com/samber/lo"

	"github.com/vodila/vodila/internal/cards"
)

// Mode is the playback mode.
type Mode string

const (
	ModeSingle     Mode = "single"
	ModeSequential Mode = "sequential"
	ModeShuffle    Mode = "shuffle"
)

// Status describes the playable list.
type Status int

const (
	StatusIdle    Status = iota // Nothing requested yet
	StatusLoading               // Fetching the card list
	StatusFailed                // Fetch failed; retry is possible
	StatusEmpty                 // Fetched, but no card is playable
	StatusReady                 // At least one card is playable
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusFailed:
		return "failed"
	case StatusEmpty:
		return "empty"
	case StatusReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Queue holds the playable subset and the playback position. Indexes are
// always into the playable subset, never the full card list.
type Queue struct {
	rng *rand.Rand

	status     Status
	err        error
	gen        uint64
	playable   []cards.Card
	unplayable int

	mode         Mode
	current      int
	shuffleOrder []int
	shufflePos   int
}

// NewQueue creates an idle queue. A nil rng uses the global source.
func NewQueue(rng *rand.Rand) *Queue {
	return &Queue{rng: rng, mode: ModeSingle, current: -1, shufflePos: -1}
}

// BeginLoad marks the list as loading and returns the generation Loaded or
// Failed must carry.
func (q *Queue) BeginLoad() uint64 {
	q.gen++
	q.status = StatusLoading
	q.err = nil
	return q.gen
}

// Loaded installs the fetched card list. Stale generations are ignored.
func (q *Queue) Loaded(gen uint64, list []cards.Card) bool {
	if gen != q.gen || q.status != StatusLoading {
		return false
	}
	q.playable = lo.Filter(list, func(c cards.Card, _ int) bool { return c.Playable() })
	q.unplayable = len(list) - len(q.playable)
	q.resetPlayback()

	if len(q.playable) == 0 {
		q.status = StatusEmpty
	} else {
		q.status = StatusReady
	}
	return true
}

// Failed records a fetch error. Stale generations are ignored.
func (q *Queue) Failed(gen uint64, err error) bool {
	if gen != q.gen || q.status != StatusLoading {
		return false
	}
	q.status = StatusFailed
	q.err = err
	q.playable = nil
	q.unplayable = 0
	q.resetPlayback()
	return true
}

func (q *Queue) resetPlayback() {
	q.mode = ModeSingle
	q.current = -1
	q.shuffleOrder = nil
	q.shufflePos = -1
}

// Select plays the playable card at index i in single mode.
func (q *Queue) Select(i int) (cards.Card, bool) {
	if !q.valid(i) {
		return cards.Card{}, false
	}
	q.SetMode(ModeSingle)
	q.current = i
	return q.playable[i], true
}

// StartSequential plays from index i onward in array order.
func (q *Queue) StartSequential(i int) (cards.Card, bool) {
	if !q.valid(i) {
		return cards.Card{}, false
	}
	q.SetMode(ModeSequential)
	q.current = i
	return q.playable[i], true
}

// StartShuffle plays every playable card in random order. When start is a
// valid index it plays first.
func (q *Queue) StartShuffle(start int) (cards.Card, bool) {
	if len(q.playable) == 0 {
		return cards.Card{}, false
	}
	q.mode = ModeShuffle
	q.shuffleOrder = BuildShuffle(len(q.playable), start, q.rng)
	q.shufflePos = 0
	q.current = q.shuffleOrder[0]
	return q.playable[q.current], true
}

// TrackEnded advances after the current track finished. It returns the
// next card, or false when playback stops.
func (q *Queue) TrackEnded() (cards.Card, bool) {
	switch q.mode {
	case ModeSequential:
		next := q.current + 1
		if !q.valid(next) {
			q.SetMode(ModeSingle)
			return cards.Card{}, false
		}
		q.current = next
		return q.playable[next], true

	case ModeShuffle:
		next := q.shufflePos + 1
		if next >= len(q.shuffleOrder) {
			q.SetMode(ModeSingle)
			return cards.Card{}, false
		}
		q.shufflePos = next
		q.current = q.shuffleOrder[next]
		return q.playable[q.current], true

	default:
		return cards.Card{}, false
	}
}

// SetMode switches the playback mode. Leaving shuffle drops its queue.
func (q *Queue) SetMode(m Mode) {
	if m != ModeShuffle {
		q.shuffleOrder = nil
		q.shufflePos = -1
	}
	q.mode = m
}

func (q *Queue) valid(i int) bool { return i >= 0 && i < len(q.playable) }

// Current returns the card being played, if any.
func (q *Queue) Current() (cards.Card, int, bool) {
	if !q.valid(q.current) {
		return cards.Card{}, -1, false
	}
	return q.playable[q.current], q.current, true
}

// IndexOf returns the playable index of cardID.
func (q *Queue) IndexOf(cardID int) (int, bool) {
	i := slices.IndexFunc(q.playable, func(c cards.Card) bool { return c.ID == cardID })
	return i, i >= 0
}

func (q *Queue) Status() Status         { return q.status }
func (q *Queue) Err() error             { return q.err }
func (q *Queue) Mode() Mode             { return q.mode }
func (q *Queue) Playable() []cards.Card { return slices.Clone(q.playable) }
func (q *Queue) Unplayable() int        { return q.unplayable }

// ShuffleOrder returns the shuffle permutation and the position in it.
func (q *Queue) ShuffleOrder() ([]int, int) {
	return slices.Clone(q.shuffleOrder), q.shufflePos
}

// BuildShuffle returns a uniform permutation of [0, n). When start is in
// range it is moved to the front by removal and prepend, leaving the
// relative order of the others as shuffled.
func BuildShuffle(n, start int, rng *rand.Rand) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })

	if start < 0 || start >= n {
		return order
	}
	at := slices.Index(order, start)
	order = slices.Delete(order, at, at+1)
	return slices.Insert(order, 0, start)
}
