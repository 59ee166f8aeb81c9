package ui

import "github.com/charmbracelet/lipgloss"

// --- Theme Colors ---

var (
	ColorPrimary    = lipgloss.Color("#d4802a") // saffron
	ColorSecondary  = lipgloss.Color("#5b6fb0") // indigo
	ColorAccent     = lipgloss.Color("#c9a24b") // gold
	ColorBackground = lipgloss.Color("#16161d") // dark
	ColorText       = lipgloss.Color("#d7d9da") // main text
	ColorMuted      = lipgloss.Color("#9ba0bf") // muted text
	ColorError      = lipgloss.Color("#6d424b") // red
	ColorWarning    = lipgloss.Color("#c78854") // warning
	ColorBorder     = lipgloss.Color("#273540") // border
	ColorBlue       = lipgloss.Color("#436b77") // blue-teal
)

// --- Reusable Styles ---

var (
	TabActiveStyle = lipgloss.NewStyle().
			Foreground(ColorBackground).
			Background(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	AccentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	BlueStyle = lipgloss.NewStyle().
			Foreground(ColorBlue)

	GroupBadgeStyle = lipgloss.NewStyle().
			Foreground(ColorBackground).
			Background(lipgloss.Color("#888ba4")).
			Bold(true).
			Padding(0, 3)

	MetaKeyStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	MetaValueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MetaPunctStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)
