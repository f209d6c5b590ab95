package grid

import "strings"

// Kind selects which crossings of a side a barrier blocks.
type Kind uint8

const (
	KindBoth  Kind = iota // blocks leaving and entering through the side
	KindInner             // blocks leaving the cell through the side
	KindOuter             // blocks entering the cell through the side
)

// String returns the level-file name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInner:
		return "inner"
	case KindOuter:
		return "outer"
	default:
		return "both"
	}
}

// ParseKind reads "inner", "outer" or "both". Anything else is false.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inner":
		return KindInner, true
	case "outer":
		return KindOuter, true
	case "both":
		return KindBoth, true
	}
	return KindBoth, false
}

// BlocksExit reports whether the kind stops a player leaving the cell.
func (k Kind) BlocksExit() bool { return k == KindInner || k == KindBoth }

// BlocksEntry reports whether the kind stops a player entering the cell.
func (k Kind) BlocksEntry() bool { return k == KindOuter || k == KindBoth }

// Barrier is a directional obstacle on one side of one cell.
// The same type describes walls and poison; the caller decides which list
// a barrier belongs to.
type Barrier struct {
	Cell Coord
	Side Side
	Kind Kind
}

// IsPathClear reports whether a single orthogonal step from cur to next
// crosses no barrier. Identical cells are always clear.
// Overlapping barriers on the same edge accumulate: any match blocks.
func IsPathClear(cur, next Coord, barriers []Barrier) bool {
	if len(barriers) == 0 {
		return true
	}
	moveDir, ok := DirectionBetween(cur, next)
	if !ok {
		return true
	}
	entrySide := moveDir.Opposite()

	for _, b := range barriers {
		if b.Cell == cur && b.Side == moveDir && b.Kind.BlocksExit() {
			return false
		}
		if b.Cell == next && b.Side == entrySide && b.Kind.BlocksEntry() {
			return false
		}
	}
	return true
}

// CheckExitPoison reports whether leaving cur through dir touches poison.
func CheckExitPoison(cur Coord, dir Side, poison []Barrier) bool {
	for _, b := range poison {
		if b.Cell == cur && b.Side == dir && b.Kind.BlocksExit() {
			return true
		}
	}
	return false
}

// CheckEntryPoison reports whether entering next while moving in dir
// touches poison. Targets outside the grid never count.
func CheckEntryPoison(next Coord, dir Side, poison []Barrier, g Grid) bool {
	if len(poison) == 0 || !g.Contains(next) {
		return false
	}
	entrySide := dir.Opposite()
	for _, b := range poison {
		if b.Cell == next && b.Side == entrySide && b.Kind.BlocksEntry() {
			return true
		}
	}
	return false
}

// Range is an inclusive rectangle given by two opposite corners in any order.
type Range struct {
	From Coord
	To   Coord
}

// bounds returns the normalised (min, max) corners.
func (r Range) bounds() (lo, hi Coord) {
	lo = C(min(r.From.X, r.To.X), min(r.From.Y, r.To.Y))
	hi = C(max(r.From.X, r.To.X), max(r.From.Y, r.To.Y))
	return lo, hi
}

// Cells lists every cell of the rectangle, column by column.
func (r Range) Cells() []Coord {
	lo, hi := r.bounds()
	out := make([]Coord, 0, (hi.X-lo.X+1)*(hi.Y-lo.Y+1))
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			out = append(out, C(x, y))
		}
	}
	return out
}

// edge is a (cell, side) pair used for exclusions.
type edge struct {
	cell Coord
	side Side
}

// Perimeter returns the outward-facing edges of the rectangle restricted
// to the requested sides, in left, right, up, down order.
func (r Range) Perimeter(sides []Side) []Barrier {
	lo, hi := r.bounds()
	want := make(map[Side]bool, len(sides))
	for _, s := range sides {
		want[s] = true
	}

	var out []Barrier
	if want[SideLeft] {
		for y := lo.Y; y <= hi.Y; y++ {
			out = append(out, Barrier{Cell: C(lo.X, y), Side: SideLeft})
		}
	}
	if want[SideRight] {
		for y := lo.Y; y <= hi.Y; y++ {
			out = append(out, Barrier{Cell: C(hi.X, y), Side: SideRight})
		}
	}
	if want[SideUp] {
		for x := lo.X; x <= hi.X; x++ {
			out = append(out, Barrier{Cell: C(x, lo.Y), Side: SideUp})
		}
	}
	if want[SideDown] {
		for x := lo.X; x <= hi.X; x++ {
			out = append(out, Barrier{Cell: C(x, hi.Y), Side: SideDown})
		}
	}
	return out
}

// BarrierSpec is the declarative form of a group of barriers.
// Cells are expanded before Ranges. Empty Sides means all four sides.
type BarrierSpec struct {
	Cells     []Coord
	Ranges    []Range
	Kind      Kind
	Sides     []Side
	Perimeter bool // ranges contribute only their outward-facing edges
	Except    []BarrierSpec
}

// Expand flattens the spec into barrier tuples. Exceptions are expanded
// recursively and matched by (cell, side).
func (s BarrierSpec) Expand() []Barrier {
	sides := s.Sides
	if len(sides) == 0 {
		sides = AllSides()
	}

	excluded := make(map[edge]bool)
	for _, exc := range s.Except {
		for _, b := range exc.Expand() {
			excluded[edge{b.Cell, b.Side}] = true
		}
	}

	var out []Barrier
	add := func(cell Coord, side Side) {
		if excluded[edge{cell, side}] {
			return
		}
		out = append(out, Barrier{Cell: cell, Side: side, Kind: s.Kind})
	}

	for _, cell := range s.Cells {
		for _, side := range sides {
			add(cell, side)
		}
	}
	for _, r := range s.Ranges {
		if s.Perimeter {
			for _, b := range r.Perimeter(sides) {
				add(b.Cell, b.Side)
			}
			continue
		}
		for _, cell := range r.Cells() {
			for _, side := range sides {
				add(cell, side)
			}
		}
	}
	return out
}

// CellSides excludes the listed sides of one cell.
type CellSides struct {
	Cell  Coord
	Sides []Side
}

// LegacyBarrierSpec is the older `[target, {side: kind, ...}]` form.
// Target is a single cell unless Range is set.
type LegacyBarrierSpec struct {
	Cell  Coord
	Range *Range

	// SideKinds maps each listed side to its kind. In perimeter mode a side
	// missing from the map defaults to Default.
	SideKinds map[Side]Kind
	Default   Kind

	Perimeter      bool
	PerimeterSides []Side // nil means all sides

	ExceptCells []Coord // drop every barrier of these cells
	ExceptSides []CellSides
}

// Expand flattens the legacy spec into barrier tuples.
func (s LegacyBarrierSpec) Expand() []Barrier {
	wholeCell := make(map[Coord]bool, len(s.ExceptCells))
	for _, c := range s.ExceptCells {
		wholeCell[c] = true
	}
	excluded := make(map[edge]bool)
	for _, cs := range s.ExceptSides {
		sides := cs.Sides
		if len(sides) == 0 {
			sides = AllSides()
		}
		for _, side := range sides {
			excluded[edge{cs.Cell, side}] = true
		}
	}

	var out []Barrier
	add := func(cell Coord, side Side, kind Kind) {
		if wholeCell[cell] || excluded[edge{cell, side}] {
			return
		}
		out = append(out, Barrier{Cell: cell, Side: side, Kind: kind})
	}
	listed := func(cell Coord) {
		for _, side := range AllSides() {
			if kind, ok := s.SideKinds[side]; ok {
				add(cell, side, kind)
			}
		}
	}

	if s.Range == nil {
		listed(s.Cell)
		return out
	}

	if s.Perimeter {
		sides := s.PerimeterSides
		if len(sides) == 0 {
			sides = AllSides()
		}
		for _, b := range s.Range.Perimeter(sides) {
			kind, ok := s.SideKinds[b.Side]
			if !ok {
				kind = s.Default
			}
			add(b.Cell, b.Side, kind)
		}
		return out
	}

	for _, cell := range s.Range.Cells() {
		listed(cell)
	}
	return out
}
