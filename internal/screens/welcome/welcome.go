package welcome

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vodila/vodila/internal/router"
	"github.com/vodila/vodila/internal/screen"
	"github.com/vodila/vodila/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
)

const deckArt = `  ╭─────────────╮
  │ ╭───────────┴─╮
  │ │  hola       │
  ╰─┤             │
    │      привет │
    ╰─────────────╯`

// sparkle frames cycle around the deck
var sparkleFrames = []string{"✦", "✧"}

// Bootstrap resolves who is studying and primes the progress cache. It
// returns the name to greet. An error means the session continues under an
// anonymous identity.
type Bootstrap func(ctx context.Context) (string, error)

type tickMsg time.Time

// readyMsg carries the Bootstrap result.
type readyMsg struct {
	Name string
	Err  error
}

// WelcomeScreen shows a splash while the identity resolves, then hands
// over to the home screen.
type WelcomeScreen struct {
	bootstrap    Bootstrap
	homeFactory  func() screen.Screen
	thenFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	ready        bool
	name         string
	authErr      error
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that runs bootstrap and then transitions to
// the screen produced by homeFactory.
func New(bootstrap Bootstrap, homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		bootstrap:   bootstrap,
		homeFactory: homeFactory,
	}
}

// Then pushes the screen built by factory on top of home once the splash
// is dismissed.
func (w *WelcomeScreen) Then(factory func() screen.Screen) *WelcomeScreen {
	w.thenFactory = factory
	return w
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	bootstrap := w.bootstrap
	return tea.Batch(
		tick(),
		func() tea.Msg {
			name, err := bootstrap(context.Background())
			return readyMsg{Name: name, Err: err}
		},
	)
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		w.tickCount++
		if w.elapsed < phase2End {
			w.elapsed += tickInterval
		}
		if w.elapsed >= phase2End && w.ready {
			return w, nil
		}
		return w, tick()

	case readyMsg:
		w.ready = true
		w.name = msg.Name
		w.authErr = msg.Err
		return w, nil

	case tea.KeyPressMsg:
		if w.canContinue() {
			return w, w.transition()
		}
		return w, nil
	}

	return w, nil
}

func (w *WelcomeScreen) canContinue() bool {
	return w.ready && w.elapsed >= phase2End
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	replace := func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
	if w.thenFactory == nil {
		return replace
	}
	next := w.thenFactory()
	return tea.Sequence(replace, func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	})
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Secondary).Render(deckArt)

	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.Primary).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 1 {
			lines[0] = s1 + "  " + lines[0] + "  " + s2
		}
		if len(lines) > 4 {
			lines[4] = s2 + "  " + lines[4] + "  " + s1
		}
		rendered = strings.Join(lines, "\n")
	}

	sections = append(sections, rendered)

	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Spanish flashcards, one swipe at a time"))
	}

	sections = append(sections, "", w.renderStatus())

	if w.canContinue() {
		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue"))
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (w *WelcomeScreen) renderStatus() string {
	switch {
	case !w.ready:
		return theme.Hint.Render("signing in...")
	case w.authErr != nil:
		return lipgloss.NewStyle().Foreground(theme.Accent).
			Render("studying as " + w.name + " (offline identity)")
	default:
		return theme.Known.Render("¡Hola, " + w.name + "!")
	}
}
