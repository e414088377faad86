package teaui

import (
	"context"
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/grid/pkg/app"
	"tableflip.dev/grid/pkg/config"
	"tableflip.dev/grid/pkg/editor"
	"tableflip.dev/grid/pkg/grid"
	"tableflip.dev/grid/pkg/snapshot"
	"tableflip.dev/grid/pkg/store"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

func stripANSI(s string) string { return ansi.ReplaceAllString(s, "") }

func newTestModel(t *testing.T, caps editor.Capabilities) (*Model, store.Persistence) {
	t.Helper()
	cfg := &config.Config{
		Path:         t.TempDir(),
		Rows:         3,
		Columns:      3,
		Capabilities: caps,
	}
	p, err := store.Load(cfg)
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	svc := &app.Service{Persistence: p, Config: cfg}
	sess, err := svc.Open(context.Background(), "plan")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return New(svc, sess), p
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		m.Update(key(k))
	}
}

// cellPoint returns the terminal coordinate of the first character of a cell.
func cellPoint(m *Model, p grid.Position) (int, int) {
	return rowLabelWidth + (p.Col-1)*(m.cellWidth+1), gridTop + p.Row - 1
}

func stored(t *testing.T, p store.Persistence) *grid.Grid {
	t.Helper()
	raw, err := p.LoadSnapshot("plan")
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	g, err := snapshot.Decode([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return g
}

func TestKeyboardSelectAndMerge(t *testing.T) {
	m, p := newTestModel(t, editor.DefaultCapabilities())
	press(m, "s", "right", "s", "m")

	if got := m.editor().Stats().Merged; got != 1 {
		t.Fatalf("expected one merged group, got %d (alert %q)", got, m.alert)
	}
	if m.status != "Merged" {
		t.Fatalf("expected Merged status, got %q", m.status)
	}
	if ids := m.editor().Selection().IDs(); len(ids) != 1 || ids[0] != "cell_1_1" {
		t.Fatalf("expected selection collapsed to anchor, got %v", ids)
	}
	if members := stored(t, p).Group("merge_1_1_1_2"); len(members) != 2 {
		t.Fatalf("expected merge persisted, got %v", members)
	}

	// The cursor sits on the hidden member; unmerge acts on the selection.
	press(m, "u")
	if got := m.editor().Stats().Merged; got != 0 {
		t.Fatalf("expected unmerged, got %d", got)
	}
}

func TestMergeRejectionShowsAlert(t *testing.T) {
	m, _ := newTestModel(t, editor.DefaultCapabilities())
	press(m, "s", "m")
	if m.alert != "Select at least two cells to merge." {
		t.Fatalf("unexpected alert %q", m.alert)
	}
	press(m, "esc")
	if m.alert != "" || m.editor().Selection().Active() {
		t.Fatal("expected esc to clear selection and alert")
	}
}

func TestMouseDragSelectsRectangle(t *testing.T) {
	m, _ := newTestModel(t, editor.DefaultCapabilities())
	x1, y1 := cellPoint(m, grid.Pos(1, 1))
	x2, y2 := cellPoint(m, grid.Pos(2, 2))

	m.Update(tea.MouseClickMsg{X: x1, Y: y1, Button: tea.MouseLeft})
	if !m.editor().Selection().Dragging() {
		t.Fatal("expected drag to start")
	}
	m.Update(tea.MouseMotionMsg{X: x2, Y: y2, Button: tea.MouseLeft})
	m.Update(tea.MouseReleaseMsg{X: x2, Y: y2, Button: tea.MouseLeft})

	sel := m.editor().Selection()
	if sel.Dragging() || sel.Len() != 4 {
		t.Fatalf("expected 4 selected after drag, got %v", sel.IDs())
	}
	press(m, "m")
	if anchor, _ := m.editor().Grid().Get(grid.Pos(1, 1)); anchor.RowSpan != 2 || anchor.ColSpan != 2 {
		t.Fatalf("expected 2x2 merge, got %+v", anchor)
	}
}

func TestMouseReleaseOutsideGridEndsDrag(t *testing.T) {
	m, _ := newTestModel(t, editor.DefaultCapabilities())
	x, y := cellPoint(m, grid.Pos(2, 2))
	m.Update(tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	m.Update(tea.MouseReleaseMsg{X: 200, Y: 200, Button: tea.MouseLeft})
	if m.editor().Selection().Dragging() {
		t.Fatal("expected drag ended by release anywhere")
	}
}

func TestClickNotifiesAndCtrlClickToggles(t *testing.T) {
	m, _ := newTestModel(t, editor.DefaultCapabilities())
	x, y := cellPoint(m, grid.Pos(3, 2))
	m.Update(tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	m.Update(tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseLeft})
	if m.status != "cell_3_2" {
		t.Fatalf("expected interaction reported, got %q", m.status)
	}

	x2, y2 := cellPoint(m, grid.Pos(1, 1))
	m.Update(tea.MouseClickMsg{X: x2, Y: y2, Button: tea.MouseLeft, Mod: tea.ModCtrl})
	m.Update(tea.MouseReleaseMsg{X: x2, Y: y2, Button: tea.MouseLeft, Mod: tea.ModCtrl})
	if sel := m.editor().Selection(); sel.Len() != 2 || !sel.Contains(grid.Pos(1, 1)) {
		t.Fatalf("expected ctrl-click to add, got %v", sel.IDs())
	}
	m.Update(tea.MouseClickMsg{X: x2, Y: y2, Button: tea.MouseLeft, Mod: tea.ModCtrl})
	if sel := m.editor().Selection(); sel.Len() != 1 || sel.Contains(grid.Pos(1, 1)) {
		t.Fatalf("expected ctrl-click to remove, got %v", sel.IDs())
	}
}

func TestSpaceTogglesCheckbox(t *testing.T) {
	m, p := newTestModel(t, editor.DefaultCapabilities())
	press(m, "down", "space")
	c, _ := stored(t, p).Get(grid.Pos(2, 1))
	if !c.Checked || !c.Blocked {
		t.Fatalf("expected checked and blocked, got %+v", c)
	}
	if m.editor().Stats().Blocked != 1 {
		t.Fatalf("unexpected stats %+v", m.editor().Stats())
	}
}

func TestEditValue(t *testing.T) {
	m, p := newTestModel(t, editor.DefaultCapabilities())
	press(m, "enter")
	if m.mode != modeInsert {
		t.Fatal("expected insert mode")
	}
	m.input.SetValue("A-01")
	press(m, "enter")
	if m.mode != modeNormal {
		t.Fatal("expected normal mode after save")
	}
	if c, _ := stored(t, p).Get(grid.Pos(1, 1)); c.Value != "A-01" {
		t.Fatalf("expected edited value, got %+v", c)
	}

	press(m, "enter")
	m.input.SetValue("ignored")
	press(m, "esc")
	if c, _ := m.editor().Grid().Get(grid.Pos(1, 1)); c.Value != "A-01" {
		t.Fatalf("expected cancelled edit, got %+v", c)
	}
}

func TestEditDisabled(t *testing.T) {
	caps := editor.DefaultCapabilities()
	caps.Edit = false
	m, _ := newTestModel(t, caps)
	press(m, "enter")
	if m.mode != modeNormal || m.alert == "" {
		t.Fatalf("expected edit refused with alert, mode %v alert %q", m.mode, m.alert)
	}
}

func TestAddRowAndBlank(t *testing.T) {
	m, _ := newTestModel(t, editor.DefaultCapabilities())
	press(m, "r", "c")
	if g := m.editor().Grid(); g.Rows() != 4 || g.Columns() != 4 {
		t.Fatalf("expected 4x4, got %dx%d", g.Rows(), g.Columns())
	}
	press(m, "a", "b")
	if s := m.editor().Stats(); s.Blank != 16 {
		t.Fatalf("expected every cell blank, got %+v", s)
	}
	if m.editor().Selection().Active() {
		t.Fatal("expected blank to end selection")
	}
}

func TestViewRendersGridAndFooter(t *testing.T) {
	m, _ := newTestModel(t, editor.DefaultCapabilities())
	press(m, "space")
	view := stripANSI(m.View())
	for _, want := range []string{"plan 3x3", "A", "C", "✓ -", "NORMAL", "total 9 · blocked 1"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	lines := strings.Split(view, "\n")
	if !strings.HasPrefix(strings.TrimSpace(lines[gridTop]), "1") {
		t.Fatalf("expected first grid row at line %d, got %q", gridTop, lines[gridTop])
	}
}

func TestCellAt(t *testing.T) {
	m, _ := newTestModel(t, editor.DefaultCapabilities())
	for _, tc := range []struct {
		x, y int
		want grid.Position
		ok   bool
	}{
		{rowLabelWidth, gridTop, grid.Pos(1, 1), true},
		{rowLabelWidth + m.cellWidth + 1, gridTop + 2, grid.Pos(3, 2), true},
		{0, gridTop, grid.Position{}, false},
		{rowLabelWidth, gridTop - 1, grid.Position{}, false},
		{rowLabelWidth + 3*(m.cellWidth+1), gridTop, grid.Position{}, false},
	} {
		got, ok := m.cellAt(tc.x, tc.y)
		if ok != tc.ok || got != tc.want {
			t.Errorf("cellAt(%d,%d) = %v,%v want %v,%v", tc.x, tc.y, got, ok, tc.want, tc.ok)
		}
	}
}

func TestHelpOverlay(t *testing.T) {
	m, _ := newTestModel(t, editor.DefaultCapabilities())
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 200})
	press(m, "?")
	if !m.showHelp {
		t.Fatalf("expected help shown")
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "Grid editor") {
		t.Fatalf("expected help content, got:\n%s", view)
	}
	// Editing keys are swallowed while help is open.
	press(m, "space")
	if s := m.editor().Stats(); s.Blocked != 0 {
		t.Fatalf("expected no edit while help is open, got %+v", s)
	}
	press(m, "esc")
	if m.showHelp {
		t.Fatalf("expected help closed")
	}
}
