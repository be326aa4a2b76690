// Package style provides a functional API for composing and applying lipgloss-based TUI styles.
package style

import "github.com/charmbracelet/lipgloss"

// Palette defines the application's color scheme.
var (
	// Base colors
	Base    = lipgloss.Color("#2e3440")
	Surface = lipgloss.Color("#3b4252")
	Overlay = lipgloss.Color("#4c566a")
	Subtext = lipgloss.Color("#d8dee9")
	Text    = lipgloss.Color("#eceff4")

	// Accents
	Frost    = lipgloss.Color("#8fbcbb")
	Cyan     = lipgloss.Color("#88c0d0")
	Sky      = lipgloss.Color("#81a1c1")
	Ocean    = lipgloss.Color("#5e81ac")
	Red      = lipgloss.Color("#bf616e")
	Orange   = lipgloss.Color("#d08770")
	Yellow   = lipgloss.Color("#ebcb8b")
	Green    = lipgloss.Color("#a3be8c")
	Lavender = lipgloss.Color("#b48ead")

	// Semantic mappings
	AccentColor    = Cyan
	SecondaryColor = Lavender
	SuccessColor   = Green
	WarningColor   = Yellow
	ErrorColor     = Red
	FaintColor     = Overlay

	// UI Elements
	BorderColor       = Surface
	ActiveBorderColor = AccentColor
)
