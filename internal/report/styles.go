package report

import "github.com/charmbracelet/lipgloss"

// Color palette, lime accent on a neutral base.
const (
	ColorLime     = "154"
	ColorWhite    = "255"
	ColorGray     = "245"
	ColorDarkGray = "238"
	ColorRed      = "196"
	ColorYellow   = "220"
)

// Styles holds the text styles used by the text renderer.
type Styles struct {
	Header  lipgloss.Style
	Section lipgloss.Style
	Pass    lipgloss.Style
	Fail    lipgloss.Style
	Info    lipgloss.Style
	Name    lipgloss.Style
	Dim     lipgloss.Style
	Hint    lipgloss.Style
}

// DefaultStyles returns colored styles for terminals.
func DefaultStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Pass:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLime)),
		Fail:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorRed)),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Name:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWhite)),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Hint:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(ColorYellow)),
	}
}

// NoColorStyles returns unstyled components for plain output.
func NoColorStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle(),
		Section: lipgloss.NewStyle(),
		Pass:    lipgloss.NewStyle(),
		Fail:    lipgloss.NewStyle(),
		Info:    lipgloss.NewStyle(),
		Name:    lipgloss.NewStyle(),
		Dim:     lipgloss.NewStyle(),
		Hint:    lipgloss.NewStyle(),
	}
}

// GetStyles returns the styles for the given color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}
