package cards

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/samber/lo"
)

// Query is what the card endpoint needs to pick a session's cards.
type Query struct {
	Mode       Mode
	KnownIDs   []int
	UnknownIDs []int
}

// Fetcher retrieves an ordered card sequence for a query.
type Fetcher interface {
	FetchCards(ctx context.Context, q Query) ([]Card, error)
}

// Selector turns a mode and the caller's classification sets into the
// ordered cards of a session.
type Selector struct {
	fetcher Fetcher
}

// NewSelector creates a Selector backed by fetcher.
func NewSelector(fetcher Fetcher) *Selector {
	return &Selector{fetcher: fetcher}
}

// Select returns the session cards for mode. An empty result is valid.
//
// The fetched sequence is normalised so the mode contract holds even if the
// source is sloppy: unknown-only modes are filtered to unknownIDs,
// deterministic modes are sorted by id and exams are capped at ExamSize.
func (s *Selector) Select(ctx context.Context, mode Mode, knownIDs, unknownIDs []int) ([]Card, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	if mode.UnknownOnly() && len(unknownIDs) == 0 {
		return []Card{}, nil
	}

	fetched, err := s.fetcher.FetchCards(ctx, Query{
		Mode:       mode,
		KnownIDs:   sortedIDs(knownIDs),
		UnknownIDs: sortedIDs(unknownIDs),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s cards: %w", mode, err)
	}

	out := lo.UniqBy(fetched, func(c Card) int { return c.ID })
	if mode.UnknownOnly() {
		unknown := lo.SliceToMap(unknownIDs, func(id int) (int, struct{}) { return id, struct{}{} })
		out = lo.Filter(out, func(c Card, _ int) bool {
			_, ok := unknown[c.ID]
			return ok
		})
	}
	if mode.Deterministic() {
		slices.SortStableFunc(out, func(a, b Card) int { return a.ID - b.ID })
	}
	if mode.IsExam() && len(out) > ExamSize {
		out = out[:ExamSize]
	}
	return out, nil
}

// Plan applies the selection rules of mode to a full corpus.
func Plan(mode Mode, corpus []Card, unknownIDs []int, rng *rand.Rand) ([]Card, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}

	out := make([]Card, 0, len(corpus))
	if mode.UnknownOnly() {
		unknown := lo.SliceToMap(unknownIDs, func(id int) (int, struct{}) { return id, struct{}{} })
		for _, c := range corpus {
			if _, ok := unknown[c.ID]; ok {
				out = append(out, c)
			}
		}
	} else {
		out = append(out, corpus...)
	}

	if mode.Deterministic() {
		slices.SortStableFunc(out, func(a, b Card) int { return a.ID - b.ID })
		return out, nil
	}

	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if mode.IsExam() && len(out) > ExamSize {
		out = out[:ExamSize]
	}
	return out, nil
}

// MemorySource serves cards from an in-memory corpus using Plan.
type MemorySource struct {
	Corpus []Card
	Rand   *rand.Rand
}

func (m *MemorySource) FetchCards(_ context.Context, q Query) ([]Card, error) {
	rng := m.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return Plan(q.Mode, m.Corpus, q.UnknownIDs, rng)
}

func sortedIDs(ids []int) []int {
	out := lo.Uniq(ids)
	slices.Sort(out)
	return out
}
