// Package core provides the platform types shared by game adapters and the
// terminal front end. It has no Bubble Tea dependency so game logic and
// rendering stay testable.
package core

// Rect is an axis-aligned area on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Board maps puzzle cells onto screen characters. Cells are separated by
// one-character grid lines, so a board of n columns is n*(CellW+1)+1 wide.
type Board struct {
	X, Y       int // screen position of the top-left grid line
	Cols, Rows int
	CellW      int // interior width of a cell
}

// Bounds returns the area covered by the board including its outline.
func (b Board) Bounds() Rect {
	return NewRect(b.X, b.Y, b.Cols*(b.CellW+1)+1, b.Rows*2+1)
}

// Cell returns the interior area of cell (col, row).
func (b Board) Cell(col, row int) Rect {
	return NewRect(b.X+1+col*(b.CellW+1), b.Y+1+row*2, b.CellW, 1)
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
