package grid

import "fmt"

// Coord represents a cell on the grid.
// X increases to the right, Y increases downward (screen coordinates).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Step returns the neighbour through the given side.
func (c Coord) Step(s Side) Coord {
	dx, dy := s.Delta()
	return c.Add(dx, dy)
}

// Grid is the immutable bounding box of a level.
type Grid struct {
	Cols int
	Rows int
}

// Contains reports whether c lies inside the grid.
func (g Grid) Contains(c Coord) bool {
	return c.X >= 0 && c.X < g.Cols && c.Y >= 0 && c.Y < g.Rows
}

// String returns "COLSxROWS".
func (g Grid) String() string {
	return fmt.Sprintf("%dx%d", g.Cols, g.Rows)
}

// DirectionBetween returns the side through which cur must be left to reach
// next. ok is false when the cells are identical.
// Only the sign of the difference is considered; the x axis wins.
func DirectionBetween(cur, next Coord) (side Side, ok bool) {
	switch {
	case next.X > cur.X:
		return SideRight, true
	case next.X < cur.X:
		return SideLeft, true
	case next.Y > cur.Y:
		return SideDown, true
	case next.Y < cur.Y:
		return SideUp, true
	}
	return 0, false
}
