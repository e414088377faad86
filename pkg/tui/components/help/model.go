// Package help renders the key reference shown over the grid editor.
package help

import (
	_ "embed"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/v2"
)

//go:embed help.md
var reference string

const (
	minWidth  = 32
	minHeight = 8
)

// Model is a scrollable, framed view of the rendered key reference.
type Model struct {
	body  viewport.Model
	frame lipgloss.Style
	hint  lipgloss.Style

	width, height int
	// wrap is the width the markdown was last rendered for.
	wrap int
	err  error
}

// New returns a help overlay filling width x height.
func New(width, height int) *Model {
	body := viewport.New()
	body.MouseWheelEnabled = true
	m := &Model{
		body: body,
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
		hint: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
	m.SetSize(width, height)
	return m
}

// Update scrolls the reference.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	return m, cmd
}

// View renders the framed reference with a scroll hint underneath.
func (m *Model) View() string {
	content := m.body.View()
	if m.err != nil {
		content = "help unavailable: " + m.err.Error()
	}
	boxed := m.frame.Width(m.width).Height(m.height - 1).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, boxed, m.hint.Render(m.scrollHint()))
}

func (m *Model) scrollHint() string {
	if m.body.AtTop() && m.body.AtBottom() {
		return "? or esc to close"
	}
	return "↑/↓ scroll · ? or esc to close"
}

// SetSize resizes the overlay, re-rendering the markdown when the wrap width
// changes.
func (m *Model) SetSize(width, height int) {
	m.width = max(width, minWidth)
	m.height = max(height, minHeight)

	innerW := max(m.width-m.frame.GetHorizontalFrameSize(), 1)
	innerH := max(m.height-1-m.frame.GetVerticalFrameSize(), 1)
	m.body.SetWidth(innerW)
	m.body.SetHeight(innerH)

	if innerW != m.wrap {
		m.wrap = innerW
		m.render()
	}
}

func (m *Model) render() {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(m.wrap, 10)),
	)
	if err == nil {
		var out string
		if out, err = r.Render(strings.TrimSpace(reference)); err == nil {
			// Colors come from the frame; glamour's own escapes would fight
			// the overlay styles.
			m.body.SetContent(stripANSI(out))
			m.body.GotoTop()
		}
	}
	m.err = err
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;:]*[A-Za-z~]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
