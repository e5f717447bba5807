package audio

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vodila/vodila/internal/cards"
)

type countingSource struct {
	opens atomic.Int32
}

func (s *countingSource) OpenAudio(context.Context, string) (io.ReadCloser, error) {
	s.opens.Add(1)
	return io.NopCloser(bytes.NewReader([]byte("RIFF"))), nil
}

func newTestPlayer(t *testing.T, command string) (*ExecPlayer, *countingSource) {
	t.Helper()
	if _, err := exec.LookPath(strings.Fields(command)[0]); err != nil {
		t.Skipf("%s not available", command)
	}
	logger, _ := test.NewNullLogger()
	src := &countingSource{}
	p, err := NewExecPlayer(src, t.TempDir(), command, logger)
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p, src
}

func TestExecPlayer_CachesDownloads(t *testing.T) {
	p, src := newTestPlayer(t, "cat {file}")
	card := cards.Card{ID: 7, HasAudio: true, AudioURL: "/audio/rule_0007.wav"}

	require.NoError(t, p.Play(context.Background(), card))
	require.NoError(t, p.Play(context.Background(), card))
	assert.Equal(t, int32(1), src.opens.Load())
	assert.FileExists(t, filepath.Join(p.cacheDir, "card_0007.wav"))
}

func TestExecPlayer_StopInterrupts(t *testing.T) {
	p, _ := newTestPlayer(t, "tail -f {file}")
	card := cards.Card{ID: 1, HasAudio: true, AudioURL: "/a.wav"}

	done := make(chan error, 1)
	go func() { done <- p.Play(context.Background(), card) }()

	time.Sleep(100 * time.Millisecond)
	p.Stop()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrStopped)
	case <-time.After(5 * time.Second):
		t.Fatal("Play did not return after Stop")
	}
}

func TestExecPlayer_ClosedRejectsPlay(t *testing.T) {
	p, _ := newTestPlayer(t, "cat")
	require.NoError(t, p.Close())
	err := p.Play(context.Background(), cards.Card{ID: 1, HasAudio: true, AudioURL: "/a.wav"})
	assert.ErrorIs(t, err, ErrClosed)
}
