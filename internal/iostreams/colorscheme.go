package iostreams

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Shared lipgloss styles. Monitor-state colors follow the Datadog web
// UI: red alert, yellow warn, green ok.
var (
	styleRed    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleYellow = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleGreen  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleCyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleGray   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleBold   = lipgloss.NewStyle().Bold(true)
)

// ColorScheme provides terminal color formatting. When colors are
// disabled, methods return the input string unmodified.
type ColorScheme struct {
	enabled bool
}

// NewColorScheme creates a ColorScheme.
func NewColorScheme(enabled bool) *ColorScheme {
	return &ColorScheme{enabled: enabled}
}

func (cs *ColorScheme) render(style lipgloss.Style, s string) string {
	if !cs.enabled {
		return s
	}
	return style.Render(s)
}

// Red returns the string in red (errors, alert states).
func (cs *ColorScheme) Red(s string) string { return cs.render(styleRed, s) }

// Redf returns a formatted string in red.
func (cs *ColorScheme) Redf(format string, a ...any) string {
	return cs.Red(fmt.Sprintf(format, a...))
}

// Yellow returns the string in yellow (warnings, retries).
func (cs *ColorScheme) Yellow(s string) string { return cs.render(styleYellow, s) }

// Yellowf returns a formatted string in yellow.
func (cs *ColorScheme) Yellowf(format string, a ...any) string {
	return cs.Yellow(fmt.Sprintf(format, a...))
}

// Green returns the string in green (healthy states).
func (cs *ColorScheme) Green(s string) string { return cs.render(styleGreen, s) }

// Cyan returns the string in cyan (identifiers).
func (cs *ColorScheme) Cyan(s string) string { return cs.render(styleCyan, s) }

// Gray returns the string in gray (secondary detail).
func (cs *ColorScheme) Gray(s string) string { return cs.render(styleGray, s) }

// Bold returns the string in bold.
func (cs *ColorScheme) Bold(s string) string { return cs.render(styleBold, s) }

// MonitorState colors a monitor state string per its severity.
func (cs *ColorScheme) MonitorState(state string) string {
	switch state {
	case "Alert":
		return cs.Red(state)
	case "Warn":
		return cs.Yellow(state)
	case "OK":
		return cs.Green(state)
	case "No Data":
		return cs.Gray(state)
	default:
		return state
	}
}
