package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	selectedHex = "#5f5fff"
	surfaceHex  = "#303030"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Grid   GridTheme
	Footer FooterTheme
}

// GridTheme styles the cell matrix. Cell styles are layered in the order
// Base, Merged, Checked, Blank, Selected, Cursor.
type GridTheme struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Base     lipgloss.Style
	Merged   lipgloss.Style
	Checked  lipgloss.Style
	Blank    lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Alert  lipgloss.Style
	Mode   lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Grid: GridTheme{
			Title:    lipgloss.NewStyle().Bold(true).Underline(true),
			Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
			Base:     lipgloss.NewStyle(),
			Merged:   lipgloss.NewStyle().Background(Blend(selectedHex, surfaceHex, 0.8)),
			Checked:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Blank:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			Selected: lipgloss.NewStyle().Background(lipgloss.Color(selectedHex)).Foreground(lipgloss.Color("0")),
			Cursor:   lipgloss.NewStyle().Reverse(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Alert:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
			Mode:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		},
	}
}

// Blend mixes two hex colors in Lab space; t=0 is a, t=1 is b. Unparsable
// input blends as black.
func Blend(a, b string, t float64) color.Color {
	ca, _ := colorful.Hex(a)
	cb, _ := colorful.Hex(b)
	return ca.BlendLab(cb, t).Clamped()
}
