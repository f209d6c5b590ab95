package grid_test

import (
	"testing"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/grid"
)

func TestResolveCellsLiteral(t *testing.T) {
	in := []grid.Coord{grid.C(2, 2), grid.C(0, 1), grid.C(2, 2)}
	got := grid.ResolveCells(grid.Cells(in...), 5, 5)
	if len(got) != 3 {
		t.Fatalf("literal list should keep duplicates, got %v", got)
	}
	for i := range in {
		if got[i] != in[i] {
			t.Errorf("cell %d = %v, want %v", i, got[i], in[i])
		}
	}

	// The result must not alias the spec.
	got[0] = grid.C(9, 9)
	if in[0] == grid.C(9, 9) {
		t.Error("ResolveCells returned the spec's backing array")
	}
}

func TestResolveCellsSymbols(t *testing.T) {
	corners := grid.ResolveCells(grid.Symbol("corners"), 4, 3)
	want := []grid.Coord{grid.C(0, 0), grid.C(3, 0), grid.C(0, 2), grid.C(3, 2)}
	if len(corners) != len(want) {
		t.Fatalf("corners = %v", corners)
	}
	for i := range want {
		if corners[i] != want[i] {
			t.Errorf("corner %d = %v, want %v", i, corners[i], want[i])
		}
	}

	center := grid.ResolveCells(grid.Symbol("center"), 5, 4)
	if len(center) != 1 || center[0] != grid.C(2, 2) {
		t.Errorf("center = %v, want [(2,2)]", center)
	}

	edges := grid.ResolveCells(grid.Symbol("edges"), 4, 3)
	if len(edges) != 10 {
		t.Errorf("4x3 border has 10 cells, got %d", len(edges))
	}
	seen := make(map[grid.Coord]bool)
	for _, c := range edges {
		if seen[c] {
			t.Errorf("edge cell %v listed twice", c)
		}
		seen[c] = true
		if c.X != 0 && c.X != 3 && c.Y != 0 && c.Y != 2 {
			t.Errorf("%v is not on the border", c)
		}
	}
}

func TestResolveCellsUnknown(t *testing.T) {
	if got := grid.ResolveCells(grid.Symbol("diagonal"), 5, 5); len(got) != 0 {
		t.Errorf("unknown symbol should resolve to nothing, got %v", got)
	}
	if got := grid.ResolveCells(grid.CellSpec{}, 5, 5); len(got) != 0 {
		t.Errorf("zero spec should resolve to nothing, got %v", got)
	}
}

func TestParseMoves(t *testing.T) {
	got := grid.ParseMoves("U up  left r x down")
	want := []grid.Side{grid.SideUp, grid.SideUp, grid.SideLeft, grid.SideRight, grid.SideDown}
	if len(got) != len(want) {
		t.Fatalf("ParseMoves = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("move %d = %v, want %v", i, got[i], want[i])
		}
	}
	if s := grid.FormatMoves(got); s != "u u l r d" {
		t.Errorf("FormatMoves = %q", s)
	}
}
