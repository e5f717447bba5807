package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: warm sand on charcoal, with a clear red/green swipe pair.
var (
	Primary   = lipgloss.Color("#E0A458") // Saffron
	Secondary = lipgloss.Color("#4FB3BF") // Lagoon
	Accent    = lipgloss.Color("#C75146") // Terracotta
	Success   = lipgloss.Color("#6BBF59") // Olive green
	Error     = lipgloss.Color("#E4572E") // Chili
	Text      = lipgloss.Color("#F4EDE4") // Linen
	TextDim   = lipgloss.Color("#9C9189") // Taupe
	BgDark    = lipgloss.Color("#1C1917") // Charcoal
	BgCard    = lipgloss.Color("#292524") // Stone
	Border    = lipgloss.Color("#44403C") // Dark stone
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Surfaces
var (
	// Bar frames the header and footer.
	Bar = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	// Known marks a right swipe; Unknown a left one.
	Known = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Unknown = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ProgressKnown = lipgloss.NewStyle().
			Background(Success)

	ProgressUnknown = lipgloss.NewStyle().
			Background(Error)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
