package tts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/vodila/vodila/internal/cards"
)

// Field selects which side of a card is voiced.
type Field string

const (
	FieldAnswer Field = "answer"
	FieldPrompt Field = "prompt"
	FieldBoth   Field = "both"
)

// ParseField validates a text field name.
func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case FieldAnswer, FieldPrompt, FieldBoth:
		return f, nil
	default:
		return "", fmt.Errorf("unknown text field %q (want answer, prompt or both)", s)
	}
}

// TextFor returns the text voiced for card.
func TextFor(card cards.Card, field Field) string {
	prompt := strings.TrimSpace(card.Text)
	answer := strings.TrimSpace(card.Translation)
	switch field {
	case FieldPrompt:
		return prompt
	case FieldBoth:
		if prompt == "" || answer == "" {
			return ""
		}
		return fmt.Sprintf("Испанский текст: %s. Русский перевод: %s.", prompt, answer)
	default:
		return answer
	}
}

// FileName is the asset file name for a card id.
func FileName(cardID int) string {
	return fmt.Sprintf("rule_%04d.wav", cardID)
}

// ErrInvalidRange is returned when StartID is after EndID.
var ErrInvalidRange = errors.New("start id must not be after end id")

// Options controls a generation run.
type Options struct {
	OutputDir string
	Field     Field
	Voice     string

	// StartID and EndID bound the card ids, inclusive. Zero means unbounded.
	StartID int
	EndID   int

	// Force regenerates existing files unless OnlyMissing is also set.
	Force       bool
	OnlyMissing bool
	DryRun      bool

	Pause   time.Duration
	Timeout time.Duration

	// OnCard is called after each card is handled.
	OnCard func(Result)
}

// Outcome is what happened to one card.
type Outcome string

const (
	OutcomeGenerated Outcome = "generated"
	OutcomeWouldGen  Outcome = "would generate"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
)

// Result reports one card.
type Result struct {
	CardID  int
	File    string
	Outcome Outcome
	Err     error
}

// Report summarizes a run.
type Report struct {
	Total     int
	Generated int
	Skipped   int
	Failed    int

	// StoppedAt is the card id the run stopped at when the provider quota
	// ran out.
	StoppedAt int
}

// Generator writes audio assets for cards.
type Generator struct {
	provider Provider
	log      logrus.FieldLogger
}

// NewGenerator creates a Generator.
func NewGenerator(provider Provider, log logrus.FieldLogger) *Generator {
	return &Generator{provider: provider, log: log}
}

// InRange returns the cards whose id is within [start, end]; zero bounds
// are open.
func InRange(list []cards.Card, start, end int) ([]cards.Card, error) {
	if start > 0 && end > 0 && start > end {
		return nil, ErrInvalidRange
	}
	return lo.Filter(list, func(c cards.Card, _ int) bool {
		return (start <= 0 || c.ID >= start) && (end <= 0 || c.ID <= end)
	}), nil
}

// Run generates assets for list. It stops early only when ctx is done or
// the provider quota is exhausted.
func (g *Generator) Run(ctx context.Context, list []cards.Card, opts Options) (Report, error) {
	selected, err := InRange(list, opts.StartID, opts.EndID)
	if err != nil {
		return Report{}, err
	}
	if !opts.DryRun {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return Report{}, fmt.Errorf("create output dir: %w", err)
		}
	}

	report := Report{Total: len(selected)}
	for i, card := range selected {
		res := g.one(ctx, card, opts)
		switch res.Outcome {
		case OutcomeGenerated, OutcomeWouldGen:
			report.Generated++
		case OutcomeSkipped:
			report.Skipped++
		case OutcomeFailed:
			report.Failed++
		}
		if opts.OnCard != nil {
			opts.OnCard(res)
		}

		var quota *ErrQuotaExhausted
		if errors.As(res.Err, &quota) {
			report.StoppedAt = card.ID
			return report, res.Err
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if res.Outcome == OutcomeGenerated && opts.Pause > 0 && i < len(selected)-1 {
			select {
			case <-ctx.Done():
				return report, ctx.Err()
			case <-time.After(opts.Pause):
			}
		}
	}
	return report, nil
}

func (g *Generator) one(ctx context.Context, card cards.Card, opts Options) Result {
	path := filepath.Join(opts.OutputDir, FileName(card.ID))
	res := Result{CardID: card.ID, File: path}

	if !opts.Force || opts.OnlyMissing {
		if _, err := os.Stat(path); err == nil {
			res.Outcome = OutcomeSkipped
			return res
		}
	}

	text := TextFor(card, opts.Field)
	if text == "" {
		res.Outcome = OutcomeSkipped
		return res
	}

	if opts.DryRun {
		res.Outcome = OutcomeWouldGen
		return res
	}

	callCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	audio, err := g.provider.Synthesize(callCtx, Request{Text: text, Voice: opts.Voice})
	if err == nil {
		err = writeFile(path, audio)
	}
	if err != nil {
		g.log.WithField("card_id", card.ID).WithError(err).Warn("generate audio")
		res.Outcome = OutcomeFailed
		res.Err = err
		return res
	}

	res.Outcome = OutcomeGenerated
	return res
}

// writeFile writes audio to path atomically.
func writeFile(path string, audio *Audio) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tts-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteWAV(tmp, audio); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
