package cards

import (
	"errors"
	"fmt"
)

// Card is a single flashcard as served by the backend. Cards are treated as
// immutable once fetched.
type Card struct {
	ID          int    `json:"id"`
	Text        string `json:"spanish"`
	Translation string `json:"russian"`
	HasAudio    bool   `json:"has_audio,omitempty"`
	AudioURL    string `json:"audio_url,omitempty"`
}

// Playable reports whether the card has a usable audio asset.
func (c Card) Playable() bool {
	return c.HasAudio && c.AudioURL != ""
}

// Direction is the outcome of a swipe.
type Direction string

const (
	Left  Direction = "unknown"
	Right Direction = "known"
)

// Known reports whether the direction classifies the card as known.
func (d Direction) Known() bool {
	return d == Right
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == Right {
		return Left
	}
	return Right
}

// Mode selects which cards a study session contains and in which order.
type Mode string

const (
	ModeSequential        Mode = "sequential"
	ModeRandom            Mode = "random"
	ModeUnknownSequential Mode = "unknown_sequential"
	ModeUnknownRandom     Mode = "unknown_random"
	ModeExam              Mode = "exam"
)

// ExamSize is the number of cards sampled for an exam.
const ExamSize = 20

// ErrInvalidMode is returned for mode names outside the catalogue.
var ErrInvalidMode = errors.New("invalid study mode")

// ModeInfo describes a mode for display.
type ModeInfo struct {
	Mode        Mode
	Name        string
	Description string
}

var catalogue = []ModeInfo{
	{ModeSequential, "Sequential", "All cards in order"},
	{ModeRandom, "Random", "All cards in random order"},
	{ModeUnknownSequential, "Unknown (in order)", "Only cards marked as unknown, in order"},
	{ModeUnknownRandom, "Unknown (random)", "Only cards marked as unknown, shuffled"},
	{ModeExam, "Exam", fmt.Sprintf("%d random cards to check yourself", ExamSize)},
}

// Modes returns the study modes in menu order.
func Modes() []ModeInfo {
	out := make([]ModeInfo, len(catalogue))
	copy(out, catalogue)
	return out
}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	for _, info := range catalogue {
		if string(info.Mode) == s {
			return info.Mode, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Info returns the catalogue entry for m.
func (m Mode) Info() ModeInfo {
	for _, info := range catalogue {
		if info.Mode == m {
			return info
		}
	}
	return ModeInfo{Mode: m, Name: string(m)}
}

// Deterministic reports whether the mode yields the same order for the same
// inputs.
func (m Mode) Deterministic() bool {
	return m == ModeSequential || m == ModeUnknownSequential
}

// UnknownOnly reports whether the mode restricts cards to the unknown set.
func (m Mode) UnknownOnly() bool {
	return m == ModeUnknownSequential || m == ModeUnknownRandom
}

// IsExam reports whether the mode is the scored exam.
func (m Mode) IsExam() bool {
	return m == ModeExam
}
