package tts

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// LoggingProvider is a decorator that logs every synthesis call.
type LoggingProvider struct {
	inner Provider
	log   logrus.FieldLogger
}

// WithLogging wraps a Provider with call logging.
func WithLogging(p Provider, log logrus.FieldLogger) Provider {
	return &LoggingProvider{inner: p, log: log}
}

func (l *LoggingProvider) Synthesize(ctx context.Context, req Request) (*Audio, error) {
	start := time.Now()
	audio, err := l.inner.Synthesize(ctx, req)

	entry := l.log.WithFields(logrus.Fields{
		"model":   l.inner.ModelID(),
		"voice":   req.Voice,
		"chars":   len([]rune(req.Text)),
		"latency": time.Since(start).Round(time.Millisecond),
	})
	if err != nil {
		entry.WithError(err).Warn("tts request failed")
		return nil, err
	}
	entry.WithField("bytes", len(audio.Data)).Debug("tts request")
	return audio, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
