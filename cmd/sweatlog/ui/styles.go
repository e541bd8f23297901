// Package ui provides the visual styling for the sweatlog terminal client,
// with light/dark mode support.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Light mode colors
	LightPrimary = lipgloss.Color("#1d3557")
	LightAccent  = lipgloss.Color("#2a9d8f")
	LightMuted   = lipgloss.Color("#8d99ae")
	LightBorder  = lipgloss.Color("#d0d5dd")

	// Dark mode colors
	DarkPrimary = lipgloss.Color("#a8dadc")
	DarkAccent  = lipgloss.Color("#2a9d8f")
	DarkMuted   = lipgloss.Color("#6c757d")
	DarkBorder  = lipgloss.Color("#343a40")

	// Semantic colors (same in both modes)
	Destructive = lipgloss.Color("#e63946")
	Success     = lipgloss.Color("#52b788")
	Warning     = lipgloss.Color("#ffb703")
)

// Theme holds the current color scheme.
type Theme struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	IsDark  bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Primary: LightPrimary,
		Accent:  LightAccent,
		Muted:   LightMuted,
		Border:  LightBorder,
		IsDark:  false,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Primary: DarkPrimary,
		Accent:  DarkAccent,
		Muted:   DarkMuted,
		Border:  DarkBorder,
		IsDark:  true,
	}
}

// ThemeFor maps a configured theme name to a Theme. "auto" (or anything
// unrecognized) falls back to terminal detection.
func ThemeFor(name string) Theme {
	switch strings.ToLower(name) {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme guesses the terminal background from COLORFGBG. Light mode is
// the fallback.
func DetectTheme() Theme {
	colorTerm := os.Getenv("COLORFGBG")
	if colorTerm != "" {
		// Format is usually "foreground;background".
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				// ANSI indices 0-6 and 8 are commonly dark backgrounds.
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}
	return LightTheme()
}

// Styles holds all the styled components.
type Styles struct {
	Theme Theme

	// Layout
	Header lipgloss.Style
	Footer lipgloss.Style

	// Text
	Title lipgloss.Style
	Muted lipgloss.Style
	Bold  lipgloss.Style

	// Status
	Error   lipgloss.Style
	Success lipgloss.Style

	// Components
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Selected    lipgloss.Style
	Card        lipgloss.Style
	FormTitle   lipgloss.Style
	FormLabel   lipgloss.Style
	Spinner     lipgloss.Style
}

// NewStyles creates a Styles instance for the given theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive),

		Success: lipgloss.NewStyle().
			Foreground(Success),

		TabActive: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Underline(true).
			Padding(0, 1),

		TabInactive: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),

		FormTitle: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		FormLabel: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),
	}
}
