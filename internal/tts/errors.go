package tts

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrQuotaExhausted indicates a daily quota is used up. Retrying the same
// day will not help.
type ErrQuotaExhausted struct {
	Err error
}

func (e *ErrQuotaExhausted) Error() string {
	return fmt.Sprintf("TTS quota exhausted: %v", e.Err)
}

func (e *ErrQuotaExhausted) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the provider answered without usable audio.
type ErrInvalidResponse struct {
	Err error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid TTS response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrRejected indicates the provider refused the request itself: a bad
// voice, an oversized text or a missing key. Sending it again will not help.
type ErrRejected struct {
	Status int
	Err    error
}

func (e *ErrRejected) Error() string {
	return fmt.Sprintf("TTS request rejected (HTTP %d): %v", e.Status, e.Err)
}

func (e *ErrRejected) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("TTS provider unavailable: %v", e.Err)
	}
	return "TTS provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

var (
	retryDelayField = regexp.MustCompile(`"retryDelay"\s*:\s*"(\d+)s"`)
	retryInMessage  = regexp.MustCompile(`Please retry in ([0-9]+(?:\.[0-9]+)?)s`)
)

// retryAfterFrom extracts the server-suggested retry delay from an error
// body, or 0 when there is none.
func retryAfterFrom(body string) time.Duration {
	if m := retryDelayField.FindStringSubmatch(body); m != nil {
		if secs, err := strconv.Atoi(m[1]); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	if m := retryInMessage.FindStringSubmatch(body); m != nil {
		if secs, err := strconv.ParseFloat(m[1], 64); err == nil {
			return max(time.Duration(secs)*time.Second, time.Second)
		}
	}
	return 0
}
