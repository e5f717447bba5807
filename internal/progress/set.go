package progress

import (
	"slices"

	"github.com/samber/lo"

	"github.com/vodila/vodila/internal/cards"
)

// Snapshot is the caller's progress as reported by the backend.
type Snapshot struct {
	Known        []int `json:"known"`
	Unknown      []int `json:"unknown"`
	TotalKnown   int   `json:"total_known"`
	TotalUnknown int   `json:"total_unknown"`
}

// Stats is the community-wide aggregate across all users.
type Stats struct {
	TotalCards int `json:"total_cards"`
	Known      int `json:"known"`
	Unknown    int `json:"unknown"`
	NotStarted int `json:"not_started"`
}

// Set holds the known and unknown card ids. An id is in at most one of
// the two sets.
type Set struct {
	known   map[int]struct{}
	unknown map[int]struct{}
}

// NewSet builds a Set from id lists. An id listed in both ends up unknown.
func NewSet(known, unknown []int) Set {
	s := Set{
		known:   make(map[int]struct{}, len(known)),
		unknown: make(map[int]struct{}, len(unknown)),
	}
	for _, id := range known {
		s.known[id] = struct{}{}
	}
	for _, id := range unknown {
		delete(s.known, id)
		s.unknown[id] = struct{}{}
	}
	return s
}

// FromSnapshot builds a Set from a backend snapshot.
func FromSnapshot(snap Snapshot) Set {
	return NewSet(snap.Known, snap.Unknown)
}

// Status returns which set holds id, if any.
func (s Set) Status(id int) (cards.Direction, bool) {
	if _, ok := s.known[id]; ok {
		return cards.Right, true
	}
	if _, ok := s.unknown[id]; ok {
		return cards.Left, true
	}
	return "", false
}

// Mark moves id into the set for dir. It returns the previous status.
func (s *Set) Mark(id int, dir cards.Direction) (prev cards.Direction, wasClassified bool) {
	if s.known == nil {
		*s = NewSet(nil, nil)
	}
	prev, wasClassified = s.Status(id)
	if dir.Known() {
		delete(s.unknown, id)
		s.known[id] = struct{}{}
	} else {
		delete(s.known, id)
		s.unknown[id] = struct{}{}
	}
	return prev, wasClassified
}

// KnownIDs returns the known ids in ascending order.
func (s Set) KnownIDs() []int {
	return sortedKeys(s.known)
}

// UnknownIDs returns the unknown ids in ascending order.
func (s Set) UnknownIDs() []int {
	return sortedKeys(s.unknown)
}

func (s Set) TotalKnown() int   { return len(s.known) }
func (s Set) TotalUnknown() int { return len(s.unknown) }

// Snapshot converts the set back to its wire form.
func (s Set) Snapshot() Snapshot {
	return Snapshot{
		Known:        s.KnownIDs(),
		Unknown:      s.UnknownIDs(),
		TotalKnown:   s.TotalKnown(),
		TotalUnknown: s.TotalUnknown(),
	}
}

func sortedKeys(m map[int]struct{}) []int {
	out := lo.Keys(m)
	slices.Sort(out)
	return out
}
