package grid

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func rect(minRow, minCol, maxRow, maxCol int) []Position {
	return Rect{MinRow: minRow, MinCol: minCol, MaxRow: maxRow, MaxCol: maxCol}.Positions()
}

func TestMergeRectangle(t *testing.T) {
	g := mustNew(t, 4, 4)
	g, _ = g.SetValue(Pos(2, 2), "top")
	g, _ = g.ToggleChecked(Pos(2, 2))
	g, _ = g.SetValue(Pos(3, 3), "other")

	merged, anchor, err := g.Merge(rect(2, 2, 3, 4))
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if anchor != Pos(2, 2) {
		t.Fatalf("expected anchor (2,2), got %+v", anchor)
	}
	a := mustGet(t, merged, anchor)
	if !a.Merged || a.Hidden || a.RowSpan != 2 || a.ColSpan != 3 {
		t.Fatalf("unexpected anchor %+v", a)
	}
	if a.GroupID != "merge_2_2_3_4" {
		t.Fatalf("unexpected group id %q", a.GroupID)
	}
	for _, p := range rect(2, 2, 3, 4) {
		c := mustGet(t, merged, p)
		if c.GroupID != a.GroupID || !c.Merged {
			t.Fatalf("member %s not in group: %+v", p, c)
		}
		if c.Value != "top" || !c.Checked || !c.Blocked {
			t.Fatalf("member %s did not take canonical state: %+v", p, c)
		}
		if p != anchor && (!c.Hidden || c.RowSpan != 1 || c.ColSpan != 1) {
			t.Fatalf("member %s should be hidden with unit spans: %+v", p, c)
		}
	}
	if got := merged.Group(a.GroupID); len(got) != 6 {
		t.Fatalf("expected 6 members, got %d", len(got))
	}
	if mustGet(t, g, Pos(3, 3)).Merged {
		t.Fatalf("merge must not alter the previous grid")
	}
}

func TestMergeRejectsLShape(t *testing.T) {
	g := mustNew(t, 3, 3)
	_, _, err := g.Merge([]Position{Pos(1, 1), Pos(1, 2), Pos(2, 2)})
	if !errors.Is(err, ErrNotRectangular) {
		t.Fatalf("expected ErrNotRectangular, got %v", err)
	}
	g.Each(func(c Cell) {
		if c != NewCell(c.Row, c.Col) {
			t.Fatalf("grid modified by rejected merge: %+v", c)
		}
	})
}

func TestMergeRejections(t *testing.T) {
	g := mustNew(t, 3, 3)
	if _, _, err := g.Merge([]Position{Pos(1, 1)}); !errors.Is(err, ErrSelectionTooSmall) {
		t.Fatalf("expected ErrSelectionTooSmall, got %v", err)
	}
	if _, _, err := g.Merge([]Position{Pos(1, 1), Pos(1, 1)}); !errors.Is(err, ErrSelectionTooSmall) {
		t.Fatalf("duplicates should not count twice, got %v", err)
	}
	if _, _, err := g.Merge([]Position{Pos(1, 1), Pos(1, 3)}); !errors.Is(err, ErrNotRectangular) {
		t.Fatalf("expected gap rejection, got %v", err)
	}
	if _, _, err := g.Merge([]Position{Pos(3, 3), Pos(3, 4)}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestMergeDissolvesOverlappingGroup(t *testing.T) {
	g := mustNew(t, 4, 4)
	g, _, err := g.Merge(rect(1, 1, 2, 2))
	if err != nil {
		t.Fatalf("first merge: %v", err)
	}
	g, _, err = g.Merge(rect(2, 2, 3, 3))
	if err != nil {
		t.Fatalf("second merge: %v", err)
	}
	for _, p := range []Position{Pos(1, 1), Pos(1, 2), Pos(2, 1)} {
		c := mustGet(t, g, p)
		if c.Merged || c.Hidden || c.GroupID != "" || c.RowSpan != 1 || c.ColSpan != 1 {
			t.Fatalf("old member %s should be fully dissolved: %+v", p, c)
		}
	}
	if c := mustGet(t, g, Pos(2, 2)); c.GroupID != "merge_2_2_3_3" || c.Hidden {
		t.Fatalf("expected (2,2) to anchor the new group, got %+v", c)
	}
	if s := g.Stats(); s.Merged != 1 {
		t.Fatalf("expected one group, got %d", s.Merged)
	}
}

func TestMergeUnmergeInverse(t *testing.T) {
	g := mustNew(t, 3, 3)
	g, _ = g.SetValue(Pos(3, 3), "outside")

	region := rect(1, 1, 2, 2)
	before := bag(t, g, region)

	merged, anchor, err := g.Merge(region)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	restored, changed, err := merged.Unmerge(anchor)
	if err != nil || !changed {
		t.Fatalf("unmerge: changed=%v err=%v", changed, err)
	}
	for _, p := range region {
		c := mustGet(t, restored, p)
		if c.Merged || c.Hidden || c.RowSpan != 1 || c.ColSpan != 1 || c.GroupID != "" {
			t.Fatalf("cell %s not restored: %+v", p, c)
		}
	}
	if after := bag(t, restored, region); !slices.Equal(before, after) {
		t.Fatalf("expected bag %v, got %v", before, after)
	}
}

func TestUnmergeKeepsCanonicalState(t *testing.T) {
	g := mustNew(t, 3, 3)
	g, _ = g.SetValue(Pos(1, 1), "a")
	g, _ = g.SetValue(Pos(1, 2), "b")
	g, _ = g.ToggleChecked(Pos(2, 1))

	region := rect(1, 1, 2, 2)
	merged, anchor, err := g.Merge(region)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	restored, _, err := merged.Unmerge(anchor)
	if err != nil {
		t.Fatalf("unmerge: %v", err)
	}
	for _, v := range bag(t, restored, region) {
		if v != "a/false" {
			t.Fatalf("expected the anchor state on every member, got %v", v)
		}
	}
}

func bag(t *testing.T, g *Grid, ps []Position) []string {
	t.Helper()
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		c := mustGet(t, g, p)
		state := "false"
		if c.Checked {
			state = "true"
		}
		out = append(out, strings.Join([]string{c.Value, state}, "/"))
	}
	slices.Sort(out)
	return out
}

func TestUnmergeNotMergedIsNoop(t *testing.T) {
	g := mustNew(t, 2, 2)
	next, changed, err := g.Unmerge(Pos(1, 1))
	if err != nil {
		t.Fatalf("unmerge: %v", err)
	}
	if changed || next != g {
		t.Fatalf("expected no-op on unmerged cell")
	}
}

func TestUnmergeFromHiddenMember(t *testing.T) {
	g := mustNew(t, 3, 3)
	g, _, _ = g.Merge(rect(1, 1, 3, 1))
	next, changed, err := g.Unmerge(Pos(3, 1))
	if err != nil || !changed {
		t.Fatalf("unmerge: changed=%v err=%v", changed, err)
	}
	if s := next.Stats(); s.Merged != 0 {
		t.Fatalf("expected no groups after unmerge, got %d", s.Merged)
	}
}

func TestGroupPropagation(t *testing.T) {
	g := mustNew(t, 3, 3)
	g, _, err := g.Merge(rect(1, 1, 2, 2))
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	g, err = g.SetValue(Pos(2, 2), "shared")
	if err != nil {
		t.Fatalf("set value: %v", err)
	}
	g, err = g.ToggleChecked(Pos(1, 2))
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	for _, p := range rect(1, 1, 2, 2) {
		c := mustGet(t, g, p)
		if c.Value != "shared" || !c.Checked || !c.Blocked {
			t.Fatalf("member %s missed propagation: %+v", p, c)
		}
	}
	if c := mustGet(t, g, Pos(3, 3)); c.Value != "-" || c.Checked {
		t.Fatalf("non-member touched: %+v", c)
	}
}

func TestAnchorOfHiddenMember(t *testing.T) {
	g := mustNew(t, 3, 3)
	g, _, _ = g.Merge(rect(2, 2, 3, 3))
	a, err := g.Anchor(Pos(3, 3))
	if err != nil {
		t.Fatalf("anchor: %v", err)
	}
	if a != Pos(2, 2) {
		t.Fatalf("expected (2,2), got %+v", a)
	}
	if a, _ := g.Anchor(Pos(1, 1)); a != Pos(1, 1) {
		t.Fatalf("expected plain cell to anchor itself, got %+v", a)
	}
}

func TestSpan(t *testing.T) {
	r := Span(Pos(2, 2), Pos(4, 1))
	if r != (Rect{MinRow: 2, MinCol: 1, MaxRow: 4, MaxCol: 2}) {
		t.Fatalf("unexpected span %+v", r)
	}
	if r.Area() != 6 || len(r.Positions()) != 6 {
		t.Fatalf("expected 6 cells, got %d", r.Area())
	}
}
