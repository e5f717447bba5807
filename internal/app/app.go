package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/vodila/vodila/internal/async"
	"github.com/vodila/vodila/internal/router"
	"github.com/vodila/vodila/internal/screen"
	"github.com/vodila/vodila/internal/ui/layout"
)

// DefaultFlushTimeout bounds how long Run waits for background writes
// after the UI exits.
const DefaultFlushTimeout = 5 * time.Second

// Options configures Run.
type Options struct {
	// Root is the first screen on the stack.
	Root screen.Screen
	// Tasks holds detached writes that should finish before exit.
	Tasks *async.Group
	// User names who is studying. It is shown in the header when the
	// active screen has no status of its own.
	User         func() string
	Log          logrus.FieldLogger
	FlushTimeout time.Duration
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	user   func() string
	width  int
	height int
}

// newAppModel creates a new AppModel rooted at root.
func newAppModel(root screen.Screen, user func() string) AppModel {
	return AppModel{
		router: router.New(root),
		user:   user,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

// render composes header, active screen and footer.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if m.user != nil {
		status = m.user()
	}
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			if s := sp.Status(); s != "" {
				status = s
			}
		}
	}

	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Any key", Description: "Continue"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and, once it exits, releases every
// screen and waits for pending background writes.
func Run(opts Options) error {
	model := newAppModel(opts.Root, opts.User)
	p := tea.NewProgram(model)
	_, err := p.Run()

	model.router.CloseAll()
	if opts.Tasks != nil {
		timeout := opts.FlushTimeout
		if timeout <= 0 {
			timeout = DefaultFlushTimeout
		}
		if werr := opts.Tasks.WaitTimeout(timeout); werr != nil && opts.Log != nil {
			opts.Log.WithError(werr).Warn("exit with pending writes")
		}
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
