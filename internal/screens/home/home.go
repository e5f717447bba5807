package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/vodila/vodila/internal/cards"
	"github.com/vodila/vodila/internal/progress"
	"github.com/vodila/vodila/internal/router"
	"github.com/vodila/vodila/internal/screen"
	"github.com/vodila/vodila/internal/ui/components"
	"github.com/vodila/vodila/internal/ui/layout"
)

// Progress is the slice of the synchronizer the home screen needs.
type Progress interface {
	Refresh(ctx context.Context) error
	Reset(ctx context.Context) error
	Snapshot() progress.Snapshot
	Stats() (progress.Stats, bool)
}

// ModeSource lists the study modes offered by the backend.
type ModeSource interface {
	FetchModes(ctx context.Context) ([]cards.ModeInfo, error)
}

// Deps are the collaborators of the home screen.
type Deps struct {
	Progress Progress
	Modes    ModeSource
	// NewStudy builds the study view for mode.
	NewStudy func(mode cards.Mode) screen.Screen
	// NewAudio builds the audio view. Nil hides the entry.
	NewAudio func() screen.Screen
	// NewHistory builds the journal view. Nil hides the entry.
	NewHistory func() screen.Screen
	Log        logrus.FieldLogger
}

type modesLoadedMsg struct {
	Modes []cards.ModeInfo
	Err   error
}

// refreshedMsg and resetDoneMsg carry the sync generation they answer.
// A pushed screen swallows results that land while it is on top.
type refreshedMsg struct {
	Gen uint64
	Err error
}

type resetDoneMsg struct {
	Gen uint64
	Err error
}

// HomeScreen is the main menu: pick a study mode, listen, or reset.
type HomeScreen struct {
	deps  Deps
	modes []cards.ModeInfo
	menu  components.Menu

	confirm    *components.Confirm
	refreshing bool
	syncGen    uint64
	syncErr    error
	notice     string
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
)

// New creates a HomeScreen offering the local mode catalogue until the
// backend's list arrives.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.setModes(cards.Modes())
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return tea.Batch(h.fetchModes(), h.refresh())
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.confirm != nil {
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "R", Description: "Refresh"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) setModes(modes []cards.ModeInfo) {
	h.modes = modes
	selected := h.menu.Selected

	items := make([]components.MenuItem, 0, len(modes)+4)
	for _, info := range modes {
		items = append(items, components.MenuItem{
			Label:  info.Name,
			Detail: info.Description,
			Action: h.pushStudy(info.Mode),
		})
	}
	if h.deps.NewAudio != nil {
		items = append(items, components.MenuItem{
			Label:  "Listen",
			Detail: "Play the recorded cards",
			Action: h.push(h.deps.NewAudio),
		})
	}
	if h.deps.NewHistory != nil {
		items = append(items, components.MenuItem{
			Label:  "History",
			Detail: "Recent sessions on this device",
			Action: h.push(h.deps.NewHistory),
		})
	}
	items = append(items,
		components.MenuItem{
			Label:  "Reset progress",
			Detail: "Forget every known/unknown mark",
			Action: h.askReset,
		},
		components.MenuItem{
			Label:  "Quit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)

	h.menu = components.NewMenu(items)
	if selected > 0 && selected < len(items) {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) pushStudy(mode cards.Mode) func() tea.Cmd {
	return func() tea.Cmd {
		s := h.deps.NewStudy(mode)
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

func (h *HomeScreen) push(factory func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		s := factory()
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

func (h *HomeScreen) askReset() tea.Cmd {
	c := components.NewConfirm("Reset all progress? This cannot be undone.")
	h.confirm = &c
	return nil
}

func (h *HomeScreen) fetchModes() tea.Cmd {
	if h.deps.Modes == nil {
		return nil
	}
	src := h.deps.Modes
	return func() tea.Msg {
		modes, err := src.FetchModes(context.Background())
		return modesLoadedMsg{Modes: modes, Err: err}
	}
}

func (h *HomeScreen) refresh() tea.Cmd {
	gen := h.beginSync()
	p := h.deps.Progress
	return func() tea.Msg {
		return refreshedMsg{Gen: gen, Err: p.Refresh(context.Background())}
	}
}

func (h *HomeScreen) beginSync() uint64 {
	h.syncGen++
	h.refreshing = true
	return h.syncGen
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case modesLoadedMsg:
		if msg.Err != nil {
			h.deps.Log.WithError(msg.Err).Warn("fetch modes, using built-in list")
			return h, nil
		}
		if len(msg.Modes) > 0 {
			h.setModes(msg.Modes)
		}
		return h, nil

	case refreshedMsg:
		if msg.Gen != h.syncGen {
			return h, nil
		}
		h.refreshing = false
		h.syncErr = msg.Err
		return h, nil

	case resetDoneMsg:
		if msg.Gen != h.syncGen {
			return h, nil
		}
		h.refreshing = false
		h.syncErr = msg.Err
		if msg.Err == nil {
			h.notice = "Progress reset"
		} else {
			h.notice = "Reset failed"
		}
		return h, nil

	case router.ScreenPoppedMsg:
		// Whatever was in flight answered the popped screen.
		h.refreshing = false
		return h, h.refresh()

	case tea.KeyPressMsg:
		if h.confirm != nil {
			return h.handleConfirm(msg)
		}
		if strings.EqualFold(msg.String(), "r") && !h.refreshing {
			h.notice = ""
			return h, h.refresh()
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) handleConfirm(msg tea.Msg) (screen.Screen, tea.Cmd) {
	c, result := h.confirm.Update(msg)
	switch result {
	case components.ConfirmYes:
		h.confirm = nil
		gen := h.beginSync()
		p := h.deps.Progress
		return h, func() tea.Msg {
			return resetDoneMsg{Gen: gen, Err: p.Reset(context.Background())}
		}
	case components.ConfirmNo:
		h.confirm = nil
	default:
		h.confirm = &c
	}
	return h, nil
}
