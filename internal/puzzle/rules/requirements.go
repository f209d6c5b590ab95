package rules

import (
	"fmt"
	"strconv"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/grid"
)

// ReqKind classifies a requirement label for styling.
type ReqKind string

const (
	ReqVisit       ReqKind = "visit"
	ReqAvoid       ReqKind = "avoid"
	ReqCount       ReqKind = "count"
	ReqRequireStep ReqKind = "require_step"
	ReqAvoidStep   ReqKind = "avoid_step"
	ReqEnd         ReqKind = "end"
	ReqOrder       ReqKind = "order"
	ReqConsecutive ReqKind = "consecutive"
	ReqSpecial     ReqKind = "special"
	ReqSequence    ReqKind = "sequence"
	ReqGlobal      ReqKind = "global"
	ReqSteps       ReqKind = "steps"
)

// Requirement is one human-readable hint.
type Requirement struct {
	Text string
	Kind ReqKind
}

// Requirements is the overlay content for a level: per-cell markers plus
// rules that are not tied to a cell.
type Requirements struct {
	Cells  map[grid.Coord][]Requirement
	Global []Requirement
}

// Merge appends other's entries after r's own.
func (r *Requirements) Merge(other Requirements) {
	if r.Cells == nil {
		r.Cells = make(map[grid.Coord][]Requirement)
	}
	for c, reqs := range other.Cells {
		r.Cells[c] = append(r.Cells[c], reqs...)
	}
	r.Global = append(r.Global, other.Global...)
}

// Describe builds the requirements overlay for a rule tree. Groups are
// flattened; their logic is not shown.
func Describe(conds []Condition, g grid.Grid) Requirements {
	ctx := Context{Grid: g}
	out := Requirements{Cells: make(map[grid.Coord][]Requirement)}

	addCells := func(cells []grid.Coord, text string, kind ReqKind) {
		for _, c := range cells {
			out.Cells[c] = append(out.Cells[c], Requirement{Text: text, Kind: kind})
		}
	}
	addGlobal := func(text string, kind ReqKind) {
		out.Global = append(out.Global, Requirement{Text: text, Kind: kind})
	}

	var walk func(c Condition)
	walk = func(c Condition) {
		switch c := c.(type) {
		case Group:
			for _, item := range c.Items {
				walk(item)
			}
		case Sequence:
			addGlobal("Moves: "+c.Describe(), ReqSequence)
		case Visit:
			cells := ctx.resolve(c.Cells)
			switch {
			case c.HasBounds:
				addCells(cells, "×"+boundsText(c.Min, c.Max), ReqCount)
			case c.Count == 0:
				addCells(cells, "✕", ReqAvoid)
			case c.Count == 1 && (c.Op == OpGe || c.Op == OpEq):
				addCells(cells, "•", ReqVisit)
			default:
				addCells(cells, "×"+c.Op.Symbol()+strconv.Itoa(c.Count), ReqCount)
			}
		case AtSteps:
			cells := ctx.resolve(c.Cells)
			if c.Avoid {
				addCells(cells, "⊘"+c.Steps.Format(), ReqAvoidStep)
			} else {
				addCells(cells, "✓"+c.Steps.Format(), ReqRequireStep)
			}
		case EndAt:
			addCells(ctx.resolve(c.Cells), "◎", ReqEnd)
		case Order:
			for i, cell := range ctx.resolve(c.Cells) {
				addCells([]grid.Coord{cell}, strconv.Itoa(i+1), ReqOrder)
			}
		case Consecutive:
			addCells(ctx.resolve(c.Cells), "⟳"+strconv.Itoa(c.Count), ReqConsecutive)
		case NoRevisit:
			except := ctx.resolve(c.Except)
			addCells(except, "∞", ReqSpecial)
			text := "No revisits"
			if len(except) > 0 {
				text += fmt.Sprintf(" (except %d)", len(except))
			}
			addGlobal(text, ReqGlobal)
		case TotalSteps:
			addGlobal("Steps: "+c.Op.Symbol()+strconv.Itoa(c.Count), ReqSteps)
		}
	}

	for _, c := range conds {
		walk(c)
	}
	return out
}

func boundsText(lo, hi int) string {
	switch {
	case hi >= MaxVisits:
		return "≥" + strconv.Itoa(lo)
	case lo <= 0:
		return "≤" + strconv.Itoa(hi)
	}
	return strconv.Itoa(lo) + "-" + strconv.Itoa(hi)
}
