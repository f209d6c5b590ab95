package core

// Color is the foreground colour of a screen cell. The terminal front end
// maps each value to a lipgloss colour.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Roles used by the puzzle renderer.
const (
	ColorGridLine    = ColorGray
	ColorWall        = ColorBrightWhite
	ColorPoison      = ColorBrightRed
	ColorPlayer      = ColorBrightYellow
	ColorVisited     = ColorGray
	ColorRequirement = ColorCyan
	ColorMovable     = ColorOrange
)

var groupColors = []Color{ColorBrightGreen, ColorBrightBlue, ColorBrightMagenta, ColorBrightCyan, ColorGreen, ColorBlue}

// GroupColor picks a stable colour for a rigid movable group. Group 0
// (ungrouped) uses ColorMovable.
func GroupColor(group int) Color {
	if group <= 0 {
		return ColorMovable
	}
	return groupColors[(group-1)%len(groupColors)]
}
