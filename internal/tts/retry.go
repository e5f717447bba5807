package tts

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retryKind sorts a synthesis failure by how it may be retried.
type retryKind int

const (
	// kindFinal failures are returned at once: spent quota, a rejected
	// request, a cancelled context or anything unrecognised.
	kindFinal retryKind = iota
	// kindThrottled is a 429 below the daily quota. The server's retry
	// hint wins over the backoff schedule.
	kindThrottled
	// kindUnavailable is a 5xx or a transport failure.
	kindUnavailable
	// kindNoAudio is a reply that carried no audio.
	kindNoAudio
)

// noAudioRetries bounds retries of kindNoAudio within one card.
const noAudioRetries = 1

func kindOf(err error) retryKind {
	var (
		throttled *ErrRateLimit
		down      *ErrProviderUnavailable
		noAudio   *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return kindFinal
	case errors.As(err, &throttled):
		return kindThrottled
	case errors.As(err, &down):
		return kindUnavailable
	case errors.As(err, &noAudio):
		return kindNoAudio
	default:
		return kindFinal
	}
}

// RetryProvider retries throttled, unavailable and audio-less replies for
// up to RetryConfig.MaxAttempts calls per card.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Synthesize(ctx context.Context, req Request) (*Audio, error) {
	noAudio := 0
	for attempt := 1; ; attempt++ {
		audio, err := r.inner.Synthesize(ctx, req)
		if err == nil {
			return audio, nil
		}

		kind := kindOf(err)
		if kind == kindNoAudio {
			noAudio++
			if noAudio > noAudioRetries {
				return nil, err
			}
		}
		if kind == kindFinal || attempt >= r.config.MaxAttempts {
			return nil, err
		}

		timer := time.NewTimer(r.wait(kind, attempt, err))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// wait returns the pause before the call that follows failed attempt n
// (1-based).
func (r *RetryProvider) wait(kind retryKind, n int, err error) time.Duration {
	var throttled *ErrRateLimit
	if kind == kindThrottled && errors.As(err, &throttled) && throttled.RetryAfter > 0 {
		return throttled.RetryAfter
	}

	base := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(n-1))
	base = min(base, float64(r.config.MaxWait))

	// ±20% jitter.
	jittered := base * (0.8 + 0.4*rand.Float64())
	return time.Duration(max(jittered, 0))
}
