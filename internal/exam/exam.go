// Package exam keeps the in-memory tally of an exam session. Results are
// never persisted.
package exam

// Answer is one classification made during an exam.
type Answer struct {
	CardID   int
	WasKnown bool
}

// Result is the running tally of an exam.
type Result struct {
	Correct   int
	Incorrect int
	Details   []Answer
}

// Total is the number of classified cards.
func (r Result) Total() int {
	return r.Correct + r.Incorrect
}

// Score returns correct/total. ok is false when nothing was classified.
func (r Result) Score() (score float64, ok bool) {
	total := r.Total()
	if total == 0 {
		return 0, false
	}
	return float64(r.Correct) / float64(total), true
}

// Percent is Score as a whole percentage, 0 when undefined.
func (r Result) Percent() int {
	s, ok := r.Score()
	if !ok {
		return 0
	}
	return int(s*100 + 0.5)
}

// Scorer accumulates exam answers. Answers are only ever appended.
type Scorer struct {
	result Result
}

// NewScorer creates an empty Scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Record appends an answer and updates the tally.
func (s *Scorer) Record(cardID int, known bool) {
	s.result.Details = append(s.result.Details, Answer{CardID: cardID, WasKnown: known})
	if known {
		s.result.Correct++
	} else {
		s.result.Incorrect++
	}
}

// Result returns a copy of the tally.
func (s *Scorer) Result() Result {
	r := s.result
	r.Details = append([]Answer(nil), s.result.Details...)
	return r
}
