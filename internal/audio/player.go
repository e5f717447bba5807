package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/vodila/vodila/internal/cards"
)

// DefaultCommand plays a file and exits when it ends. {file} is replaced
// with the local path.
const DefaultCommand = "ffplay -nodisp -autoexit -loglevel quiet {file}"

// Player is the audio output owned by one audio view.
type Player interface {
	// Play blocks until card has finished playing, Stop is called, or ctx
	// is done.
	Play(ctx context.Context, card cards.Card) error
	// Stop interrupts the current track, if any.
	Stop()
	// Close stops playback and releases the player.
	Close() error
}

// ErrStopped is returned by Play when the track was interrupted.
var ErrStopped = errors.New("playback stopped")

// ErrClosed is returned by Play after Close.
var ErrClosed = errors.New("player closed")

// Source opens the audio asset behind a card's audio reference.
type Source interface {
	OpenAudio(ctx context.Context, ref string) (io.ReadCloser, error)
}

// ExecPlayer downloads assets into a cache directory and plays them with an
// external command.
type ExecPlayer struct {
	source   Source
	cacheDir string
	argv     []string
	log      logrus.FieldLogger

	mu     sync.Mutex
	cancel context.CancelFunc
	closed bool
}

// NewExecPlayer creates a player running command (see DefaultCommand).
func NewExecPlayer(source Source, cacheDir, command string, log logrus.FieldLogger) (*ExecPlayer, error) {
	if command == "" {
		command = DefaultCommand
	}
	argv := strings.Fields(command)
	if !strings.Contains(command, "{file}") {
		argv = append(argv, "{file}")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio cache: %w", err)
	}
	return &ExecPlayer{source: source, cacheDir: cacheDir, argv: argv, log: log}, nil
}

// Play implements Player. Only one track plays at a time; starting a new
// one stops the previous.
func (p *ExecPlayer) Play(ctx context.Context, card cards.Card) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	if p.cancel != nil {
		p.cancel()
	}
	p.cancel = cancel
	p.mu.Unlock()

	file, err := p.fetch(ctx, card)
	if err != nil {
		return p.interrupted(ctx, err)
	}

	args := make([]string, len(p.argv))
	for i, a := range p.argv {
		args[i] = strings.ReplaceAll(a, "{file}", file)
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	p.log.WithFields(logrus.Fields{"card_id": card.ID, "file": file}).Debug("play")
	if err := cmd.Run(); err != nil {
		return p.interrupted(ctx, fmt.Errorf("run %s: %w", args[0], err))
	}
	return nil
}

func (p *ExecPlayer) interrupted(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ErrStopped
	}
	return err
}

// fetch returns the cached file for card, downloading it when missing.
func (p *ExecPlayer) fetch(ctx context.Context, card cards.Card) (string, error) {
	ext := path.Ext(card.AudioURL)
	if ext == "" {
		ext = ".wav"
	}
	file := filepath.Join(p.cacheDir, fmt.Sprintf("card_%04d%s", card.ID, ext))
	if _, err := os.Stat(file); err == nil {
		return file, nil
	}

	body, err := p.source.OpenAudio(ctx, card.AudioURL)
	if err != nil {
		return "", fmt.Errorf("download audio for card %d: %w", card.ID, err)
	}
	defer body.Close()

	tmp, err := os.CreateTemp(p.cacheDir, "dl-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("download audio for card %d: %w", card.ID, err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), file); err != nil {
		return "", fmt.Errorf("store audio: %w", err)
	}
	return file, nil
}

// Stop implements Player.
func (p *ExecPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// Close implements Player.
func (p *ExecPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	return nil
}
