// Package study is the flashcard view: it feeds keys and mouse drags
// through the gesture interpreter into the session state machine.
package study

import (
	"context"
	"fmt"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/vodila/vodila/internal/cards"
	"github.com/vodila/vodila/internal/gesture"
	"github.com/vodila/vodila/internal/screen"
	sess "github.com/vodila/vodila/internal/session"
	"github.com/vodila/vodila/internal/ui/layout"
)

// Options tunes how pointer drags map onto the gesture interpreter.
type Options struct {
	Threshold float64
	// UnitsPerCell converts one terminal cell of drag into gesture units.
	UnitsPerCell int
}

// StudyScreen implements screen.Screen for a study session.
type StudyScreen struct {
	machine  *sess.Machine
	mode     cards.Mode
	gesture  *gesture.Interpreter
	unitSize float64
	spinner  spinner.Model

	revealed bool
	// verdict is the committed direction while the card transitions out.
	verdict cards.Direction
}

var (
	_ screen.Screen          = (*StudyScreen)(nil)
	_ screen.KeyHintProvider = (*StudyScreen)(nil)
	_ screen.StatusProvider  = (*StudyScreen)(nil)
	_ screen.Closer          = (*StudyScreen)(nil)
)

// New creates a StudyScreen that runs mode on machine.
func New(machine *sess.Machine, mode cards.Mode, opts Options) *StudyScreen {
	unit := float64(opts.UnitsPerCell)
	if unit <= 0 {
		unit = 10
	}
	return &StudyScreen{
		machine:  machine,
		mode:     mode,
		gesture:  gesture.New(opts.Threshold),
		unitSize: unit,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (s *StudyScreen) Init() tea.Cmd {
	return tea.Batch(s.start(s.machine.Begin(s.mode)), s.spinner.Tick)
}

func (s *StudyScreen) Title() string {
	return s.mode.Info().Name
}

// Status shows the position within the session.
func (s *StudyScreen) Status() string {
	ses := s.machine.Session()
	switch s.machine.Phase() {
	case sess.PhaseActive:
		return fmt.Sprintf("%d / %d", min(ses.Position+1, ses.Len()), ses.Len())
	case sess.PhaseComplete:
		return fmt.Sprintf("%d / %d", ses.Len(), ses.Len())
	}
	return ""
}

// Close abandons the session when the view is dismissed.
func (s *StudyScreen) Close() {
	s.machine.Back()
	s.gesture.Reset()
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	switch s.machine.Phase() {
	case sess.PhaseActive:
		return []layout.KeyHint{
			{Key: "←/h", Description: "Don't know"},
			{Key: "→/l", Description: "Know"},
			{Key: "Space", Description: "Flip"},
			{Key: "Esc", Description: "Back"},
		}
	case sess.PhaseEmpty:
		if s.machine.Failed() {
			return []layout.KeyHint{
				{Key: "R", Description: "Retry"},
				{Key: "Esc", Description: "Back"},
			}
		}
	case sess.PhaseComplete:
		return []layout.KeyHint{
			{Key: "R", Description: "Again"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

// start loads the cards for gen off the UI goroutine.
func (s *StudyScreen) start(gen uint64) tea.Cmd {
	s.revealed = false
	s.verdict = ""
	s.gesture.Reset()
	m, mode := s.machine, s.mode
	return func() tea.Msg {
		list, err := m.Load(context.Background(), mode)
		return cardsLoadedMsg{Gen: gen, Cards: list, Err: err}
	}
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case cardsLoadedMsg:
		s.machine.Seed(msg.Gen, msg.Cards, msg.Err)
		return s, nil

	case advanceMsg:
		if s.machine.Advance(msg.Gen) {
			s.revealed = false
			s.verdict = ""
		}
		return s, nil

	case spinner.TickMsg:
		if s.machine.Phase() != sess.PhaseLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)

	case tea.MouseClickMsg:
		if msg.Mouse().Button == tea.MouseLeft && s.accepting() {
			s.gesture.Begin(s.units(msg.Mouse().X))
		}
		return s, nil

	case tea.MouseMotionMsg:
		if s.gesture.Dragging() {
			s.gesture.Move(s.units(msg.Mouse().X))
		}
		return s, nil

	case tea.MouseReleaseMsg:
		if !s.gesture.Dragging() {
			return s, nil
		}
		s.gesture.Move(s.units(msg.Mouse().X))
		d := s.gesture.End()
		if d.Outcome != gesture.Committed {
			return s, nil
		}
		return s, s.swipe(d.Direction)
	}

	return s, nil
}

func (s *StudyScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if dir, ok := gesture.Key(key, s.accepting()); ok {
		s.gesture.Reset()
		return s, s.swipe(dir)
	}

	switch key {
	case "space", " ":
		if s.machine.Phase() == sess.PhaseActive {
			s.revealed = !s.revealed
		}
	case "r", "R":
		switch s.machine.Phase() {
		case sess.PhaseEmpty, sess.PhaseComplete:
			return s, tea.Batch(s.start(s.machine.Restart()), s.spinner.Tick)
		}
	}
	return s, nil
}

// accepting reports whether swipes are currently meaningful.
func (s *StudyScreen) accepting() bool {
	return s.machine.Phase() == sess.PhaseActive && !s.machine.Transitioning()
}

func (s *StudyScreen) swipe(dir cards.Direction) tea.Cmd {
	tr, ok := s.machine.Swipe(dir)
	if !ok {
		return nil
	}
	s.verdict = dir
	return tea.Tick(tr.Delay, func(_ time.Time) tea.Msg {
		return advanceMsg{Gen: tr.Gen}
	})
}

func (s *StudyScreen) units(x int) float64 {
	return float64(x) * s.unitSize
}
