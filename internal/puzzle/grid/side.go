// Package grid holds the spatial vocabulary of the puzzle: coordinates,
// sides, directional barriers and symbolic cell sets.
// It is pure and has no dependencies outside the standard library.
package grid

import "strings"

// Side names one edge of a cell. A move is described by the side the
// player leaves through, so the same type doubles as a move direction.
type Side uint8

const (
	SideUp Side = iota
	SideDown
	SideLeft
	SideRight
)

// AllSides returns the four sides in canonical order (up, down, left, right).
func AllSides() []Side {
	return []Side{SideUp, SideDown, SideLeft, SideRight}
}

// String returns the long name of the side ("up", "down", ...).
func (s Side) String() string {
	switch s {
	case SideUp:
		return "up"
	case SideDown:
		return "down"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// Letter returns the single-letter move symbol (u, d, l, r).
func (s Side) Letter() string {
	switch s {
	case SideUp:
		return "u"
	case SideDown:
		return "d"
	case SideLeft:
		return "l"
	case SideRight:
		return "r"
	default:
		return "?"
	}
}

// Arrow returns the arrow glyph used in requirement text.
func (s Side) Arrow() string {
	switch s {
	case SideUp:
		return "↑"
	case SideDown:
		return "↓"
	case SideLeft:
		return "←"
	case SideRight:
		return "→"
	default:
		return "?"
	}
}

// Delta returns the (dx, dy) offset of one step through this side.
// Up decreases Y, Down increases Y (screen coordinates).
func (s Side) Delta() (dx, dy int) {
	switch s {
	case SideUp:
		return 0, -1
	case SideDown:
		return 0, 1
	case SideLeft:
		return -1, 0
	case SideRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the facing side.
func (s Side) Opposite() Side {
	switch s {
	case SideUp:
		return SideDown
	case SideDown:
		return SideUp
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	default:
		return s
	}
}

// ParseSide accepts a letter or a long name, case-insensitively.
func ParseSide(s string) (Side, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "u", "up":
		return SideUp, true
	case "d", "down":
		return SideDown, true
	case "l", "left":
		return SideLeft, true
	case "r", "right":
		return SideRight, true
	}
	return 0, false
}

// ParseSideLetters reads a side filter such as "ud" or "lr".
// Empty input and the aliases "all", "box", "square", "lrud" and "udlr"
// select every side. Unknown letters are skipped; a filter that yields
// nothing also selects every side.
func ParseSideLetters(spec string) []Side {
	spec = strings.ToLower(strings.TrimSpace(spec))
	switch spec {
	case "", "all", "box", "square", "lrud", "udlr":
		return AllSides()
	}

	var out []Side
	seen := make(map[Side]bool, 4)
	for _, r := range spec {
		side, ok := ParseSide(string(r))
		if !ok || seen[side] {
			continue
		}
		seen[side] = true
		out = append(out, side)
	}
	if len(out) == 0 {
		return AllSides()
	}
	return out
}

// ParseMoves normalises a move string ("u u right d") into sides.
// Tokens are split on whitespace; unknown tokens are dropped.
func ParseMoves(s string) []Side {
	fields := strings.Fields(s)
	out := make([]Side, 0, len(fields))
	for _, f := range fields {
		if side, ok := ParseSide(f); ok {
			out = append(out, side)
		}
	}
	return out
}

// FormatMoves renders moves as space-separated letters ("u u r").
func FormatMoves(moves []Side) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Letter()
	}
	return strings.Join(parts, " ")
}
