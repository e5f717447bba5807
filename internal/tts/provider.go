// Package tts generates the per-card audio assets served by the backend.
package tts

import (
	"context"
)

// Request is one text-to-speech call.
type Request struct {
	Text  string
	Voice string
}

// Audio is a synthesized clip. Data is either a complete WAV file or raw
// 16-bit little-endian PCM, as indicated by MIMEType.
type Audio struct {
	Data     []byte
	MIMEType string
	Model    string
}

// Provider synthesizes speech.
type Provider interface {
	Synthesize(ctx context.Context, req Request) (*Audio, error)

	// ModelID returns the model identifier for logging.
	ModelID() string
}
