// Package audio is the listening view over the playable cards.
package audio

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	playback "github.com/vodila/vodila/internal/audio"
	"github.com/vodila/vodila/internal/cards"
	"github.com/vodila/vodila/internal/screen"
	"github.com/vodila/vodila/internal/ui/layout"
)

// Catalog lists the cards that may carry audio.
type Catalog interface {
	FetchAudioCards(ctx context.Context) ([]cards.Card, error)
}

type listLoadedMsg struct {
	Gen   uint64
	Cards []cards.Card
	Err   error
}

// trackEndedMsg reports that the track started by play generation Gen has
// stopped, either naturally or with Err.
type trackEndedMsg struct {
	Gen    uint64
	CardID int
	Err    error
}

// AudioScreen implements screen.Screen for the audio list.
type AudioScreen struct {
	catalog Catalog
	player  playback.Player
	queue   *playback.Queue
	log     logrus.FieldLogger
	spinner spinner.Model

	// cursor is the highlighted playable index.
	cursor  int
	playGen uint64
	playing bool
	lastErr error
}

var (
	_ screen.Screen          = (*AudioScreen)(nil)
	_ screen.KeyHintProvider = (*AudioScreen)(nil)
	_ screen.StatusProvider  = (*AudioScreen)(nil)
	_ screen.Closer          = (*AudioScreen)(nil)
)

// New creates an AudioScreen. The screen owns player and closes it when
// dismissed. A nil rng uses the global source.
func New(catalog Catalog, player playback.Player, rng *rand.Rand, log logrus.FieldLogger) *AudioScreen {
	return &AudioScreen{
		catalog: catalog,
		player:  player,
		queue:   playback.NewQueue(rng),
		log:     log,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (a *AudioScreen) Init() tea.Cmd {
	return tea.Batch(a.load(), a.spinner.Tick)
}

func (a *AudioScreen) Title() string {
	return "Audio"
}

// Status names the playback mode while something is playing.
func (a *AudioScreen) Status() string {
	if !a.playing {
		return ""
	}
	return "♪ " + string(a.queue.Mode())
}

// Close stops playback and releases the player.
func (a *AudioScreen) Close() {
	a.playGen++
	a.playing = false
	if err := a.player.Close(); err != nil {
		a.log.WithError(err).Warn("close audio player")
	}
}

func (a *AudioScreen) KeyHints() []layout.KeyHint {
	switch a.queue.Status() {
	case playback.StatusFailed:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	case playback.StatusReady:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Play"},
			{Key: "A", Description: "Play all"},
			{Key: "S", Description: "Shuffle"},
			{Key: "X", Description: "Stop"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (a *AudioScreen) load() tea.Cmd {
	gen := a.queue.BeginLoad()
	catalog := a.catalog
	return func() tea.Msg {
		list, err := catalog.FetchAudioCards(context.Background())
		return listLoadedMsg{Gen: gen, Cards: list, Err: err}
	}
}

func (a *AudioScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		if msg.Err != nil {
			a.log.WithError(msg.Err).Warn("load audio list")
			a.queue.Failed(msg.Gen, msg.Err)
			return a, nil
		}
		if a.queue.Loaded(msg.Gen, msg.Cards) {
			a.cursor = 0
		}
		return a, nil

	case trackEndedMsg:
		return a.handleTrackEnded(msg)

	case spinner.TickMsg:
		if a.queue.Status() != playback.StatusLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyPressMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *AudioScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if a.queue.Status() == playback.StatusFailed {
		if key == "r" || key == "R" {
			return a, tea.Batch(a.load(), a.spinner.Tick)
		}
		return a, nil
	}
	if a.queue.Status() != playback.StatusReady {
		return a, nil
	}

	n := len(a.queue.Playable())
	switch key {
	case "up", "k":
		a.cursor = max(a.cursor-1, 0)
	case "down", "j":
		a.cursor = min(a.cursor+1, n-1)
	case "enter":
		if card, ok := a.queue.Select(a.cursor); ok {
			return a, a.play(card)
		}
	case "a":
		if card, ok := a.queue.StartSequential(a.cursor); ok {
			return a, a.play(card)
		}
	case "s":
		if card, ok := a.queue.StartShuffle(a.cursor); ok {
			return a, a.play(card)
		}
	case "x":
		a.stop()
	}
	return a, nil
}

func (a *AudioScreen) play(card cards.Card) tea.Cmd {
	a.playGen++
	a.playing = true
	a.lastErr = nil
	if _, idx, ok := a.queue.Current(); ok {
		a.cursor = idx
	}

	gen, player := a.playGen, a.player
	return func() tea.Msg {
		err := player.Play(context.Background(), card)
		return trackEndedMsg{Gen: gen, CardID: card.ID, Err: err}
	}
}

func (a *AudioScreen) stop() {
	a.playGen++
	a.playing = false
	a.queue.SetMode(playback.ModeSingle)
	a.player.Stop()
}

func (a *AudioScreen) handleTrackEnded(msg trackEndedMsg) (screen.Screen, tea.Cmd) {
	if msg.Gen != a.playGen {
		return a, nil
	}
	if msg.Err != nil && !errors.Is(msg.Err, playback.ErrStopped) {
		a.log.WithError(msg.Err).WithField("card_id", msg.CardID).Warn("play audio")
		a.lastErr = fmt.Errorf("card %d: %w", msg.CardID, msg.Err)
	}

	next, ok := a.queue.TrackEnded()
	if !ok {
		a.playing = false
		return a, nil
	}
	return a, a.play(next)
}
