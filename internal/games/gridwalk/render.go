package gridwalk

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/core"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/grid"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/rules"
)

const (
	panelMinW = 26
	margin    = 1
)

// Render draws the board and the side panel.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	board, ok := g.layout(dst.Width(), dst.Height())
	if !ok {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, "Resize to continue")
		return
	}

	g.renderGrid(dst, board)
	g.renderBarriers(dst, board, g.ctrl.Walls(), core.ColorWall)
	g.renderBarriers(dst, board, g.ctrl.Poison(), core.ColorPoison)
	g.renderCells(dst, board)
	g.renderPanel(dst, board.Bounds().Right()+2, board.Y)
}

// layout fits the board next to the panel, narrowing cells when needed.
func (g *Game) layout(w, h int) (core.Board, bool) {
	lvl := g.ctrl.Level()
	b := core.Board{X: margin, Y: margin, Cols: lvl.Grid.Cols, Rows: lvl.Grid.Rows, CellW: g.cfg.CellWidth}
	if b.CellW < 1 {
		b.CellW = 1
	}
	for b.CellW > 1 && b.Bounds().Right()+panelMinW > w {
		b.CellW--
	}
	bounds := b.Bounds()
	return b, bounds.Right() <= w && bounds.Bottom() <= h
}

func (g *Game) renderGrid(dst *core.Screen, b core.Board) {
	bounds := b.Bounds()
	for row := 0; row <= b.Rows; row++ {
		y := b.Y + row*2
		dst.DrawHLine(bounds.X, y, bounds.W, '─', core.ColorGridLine)
	}
	for col := 0; col <= b.Cols; col++ {
		x := b.X + col*(b.CellW+1)
		for y := bounds.Y; y < bounds.Bottom(); y++ {
			r := '│'
			if (y-b.Y)%2 == 0 {
				r = junction(col, (y-b.Y)/2, b.Cols, b.Rows)
			}
			dst.SetWithColor(x, y, r, core.ColorGridLine)
		}
	}
}

func junction(col, row, cols, rows int) rune {
	top, bottom := row == 0, row == rows
	left, right := col == 0, col == cols
	switch {
	case top && left:
		return '┌'
	case top && right:
		return '┐'
	case bottom && left:
		return '└'
	case bottom && right:
		return '┘'
	case top:
		return '┬'
	case bottom:
		return '┴'
	case left:
		return '├'
	case right:
		return '┤'
	}
	return '┼'
}

// barrierGlyphs returns the horizontal and vertical rune for a kind. Both-way
// barriers are heavy; one-way barriers are dashed.
func barrierGlyphs(k grid.Kind) (h, v rune) {
	if k == grid.KindBoth {
		return '━', '┃'
	}
	return '┄', '┆'
}

func (g *Game) renderBarriers(dst *core.Screen, b core.Board, barriers []grid.Barrier, color core.Color) {
	for _, bar := range barriers {
		if bar.Cell.X < 0 || bar.Cell.X >= b.Cols || bar.Cell.Y < 0 || bar.Cell.Y >= b.Rows {
			continue
		}
		cell := b.Cell(bar.Cell.X, bar.Cell.Y)
		h, v := barrierGlyphs(bar.Kind)
		switch bar.Side {
		case grid.SideUp:
			dst.DrawHLine(cell.X, cell.Y-1, cell.W, h, color)
		case grid.SideDown:
			dst.DrawHLine(cell.X, cell.Bottom(), cell.W, h, color)
		case grid.SideLeft:
			dst.SetWithColor(cell.X-1, cell.Y, v, color)
		case grid.SideRight:
			dst.SetWithColor(cell.Right(), cell.Y, v, color)
		}
	}
}

func (g *Game) renderCells(dst *core.Screen, b core.Board) {
	visited := make(map[grid.Coord]bool, len(g.ctrl.Path()))
	for _, p := range g.ctrl.Path() {
		visited[p] = true
	}
	marked := make(map[grid.Coord]bool)
	for _, c := range g.ctrl.ConditionCells() {
		marked[c] = true
	}
	reqs := g.ctrl.Requirements()
	showReqs := g.ctrl.ShowRequirements()
	showCoords := g.cfg.ShowCoords || g.ctrl.Dev().ShowCoords
	movables := g.ctrl.Movables()

	for row := 0; row < b.Rows; row++ {
		for col := 0; col < b.Cols; col++ {
			c := grid.C(col, row)
			r := b.Cell(col, row)

			switch {
			case c == g.ctrl.Pos():
				center(dst, r, "@", core.ColorPlayer)
			case movables.Has(c):
				obj, _ := movables.At(c)
				center(dst, r, "■", core.GroupColor(obj.Group))
			case showReqs && len(reqs.Cells[c]) > 0:
				text, color := requirementLabel(reqs.Cells[c])
				center(dst, r, text, color)
			case showCoords:
				center(dst, r, strconv.Itoa(col)+","+strconv.Itoa(row), core.ColorGray)
			case visited[c]:
				center(dst, r, "·", core.ColorVisited)
			case marked[c]:
				center(dst, r, "◦", core.ColorRequirement)
			}
		}
	}
}

// requirementLabel joins a cell's requirement texts and picks the colour
// of the first one.
func requirementLabel(reqs []rules.Requirement) (string, core.Color) {
	parts := make([]string, len(reqs))
	for i, r := range reqs {
		parts[i] = r.Text
	}
	color := core.ColorRequirement
	switch reqs[0].Kind {
	case rules.ReqAvoid, rules.ReqAvoidStep:
		color = core.ColorRed
	case rules.ReqEnd:
		color = core.ColorGreen
	case rules.ReqOrder:
		color = core.ColorYellow
	}
	return strings.Join(parts, ""), color
}

// center writes text in the middle of r, truncated to its width.
func center(dst *core.Screen, r core.Rect, text string, color core.Color) {
	runes := []rune(text)
	if len(runes) > r.W {
		runes = runes[:r.W]
	}
	dst.DrawTextWithColor(r.X+(r.W-len(runes))/2, r.Y, string(runes), color)
}

func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	lvl := g.ctrl.Level()
	pack := g.ctrl.Pack()
	width := dst.Width() - x
	line := func(text string, color core.Color) {
		runes := []rune(text)
		if width > 0 && len(runes) > width {
			runes = runes[:width]
		}
		dst.DrawTextWithColor(x, y, string(runes), color)
		y++
	}

	line(fmt.Sprintf("Level %d/%d: %s", g.ctrl.Index()+1, pack.Len(), lvl.Title(g.ctrl.Index())), core.ColorBrightCyan)
	line(fmt.Sprintf("Steps: %d  Deaths: %d", g.ctrl.Steps(), g.ctrl.Deaths()), core.ColorDefault)

	save := "-"
	if g.ctrl.HasSave() {
		save = "yes"
	}
	line(fmt.Sprintf("Undo: %d  Save: %s", g.ctrl.UndoDepth(), save), core.ColorGray)

	var tags []string
	if g.ctrl.EditMode() {
		tags = append(tags, "[EDIT]")
	}
	if dev := g.ctrl.Dev(); dev.Unlocked {
		tags = append(tags, "[DEV]")
		if dev.DisableVictory {
			tags = append(tags, "[NOWIN]")
		}
	}
	if len(tags) > 0 {
		line(strings.Join(tags, " "), core.ColorMagenta)
	}

	if g.cfg.Hints && lvl.Hint != "" {
		y++
		for _, l := range wrap("Hint: "+lvl.Hint, width) {
			line(l, core.ColorYellow)
		}
	}

	if global := g.ctrl.Requirements().Global; len(global) > 0 {
		y++
		for _, r := range global {
			line(r.Text, core.ColorRequirement)
		}
	}

	if g.ctrl.Complete() {
		y++
		line("All levels solved! r to play again", core.ColorBrightGreen)
	}

	if g.message != "" {
		y++
		line(g.message, core.ColorBrightWhite)
	}

	if g.output != "" {
		y++
		for _, l := range strings.Split(g.output, "\n") {
			if y >= dst.Height() {
				break
			}
			line(l, core.ColorGreen)
		}
	}
}

// wrap breaks text on spaces into lines of at most width runes.
func wrap(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	var lines []string
	var cur []rune
	for _, word := range strings.Fields(text) {
		w := []rune(word)
		if len(cur) > 0 && len(cur)+1+len(w) > width {
			lines = append(lines, string(cur))
			cur = nil
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, w...)
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}
