package grid

// Symbolic cell-set names understood by ResolveCells.
const (
	CellsCorners = "corners"
	CellsEdges   = "edges"
	CellsCenter  = "center"
)

// CellSpec is either an explicit list of cells or a symbolic name.
// The zero value resolves to an empty set.
type CellSpec struct {
	List   []Coord
	Symbol string
}

// Cells builds a literal cell spec. Order and duplicates are kept.
func Cells(cells ...Coord) CellSpec {
	return CellSpec{List: cells}
}

// Symbol builds a symbolic cell spec ("corners", "edges", "center").
func Symbol(name string) CellSpec {
	return CellSpec{Symbol: name}
}

// IsZero reports whether the spec names no cells at all.
func (s CellSpec) IsZero() bool {
	return len(s.List) == 0 && s.Symbol == ""
}

// ResolveCells expands a cell spec against a grid of cols x rows.
// A literal list is returned as given (copied). Unknown symbols give an
// empty set; this never fails.
func ResolveCells(spec CellSpec, cols, rows int) []Coord {
	if spec.Symbol == "" {
		if len(spec.List) == 0 {
			return nil
		}
		out := make([]Coord, len(spec.List))
		copy(out, spec.List)
		return out
	}

	switch spec.Symbol {
	case CellsCorners:
		return []Coord{C(0, 0), C(cols-1, 0), C(0, rows-1), C(cols-1, rows-1)}
	case CellsEdges:
		return edgeCells(cols, rows)
	case CellsCenter:
		return []Coord{C(cols/2, rows/2)}
	}
	return nil
}

// edgeCells lists the grid border once per cell, clockwise from (0,0).
func edgeCells(cols, rows int) []Coord {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	seen := make(map[Coord]bool)
	var out []Coord
	add := func(c Coord) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for x := 0; x < cols; x++ {
		add(C(x, 0))
	}
	for y := 0; y < rows; y++ {
		add(C(cols-1, y))
	}
	for x := cols - 1; x >= 0; x-- {
		add(C(x, rows-1))
	}
	for y := rows - 1; y >= 0; y-- {
		add(C(0, y))
	}
	return out
}
