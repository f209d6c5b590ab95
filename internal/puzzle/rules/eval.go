package rules

import (
	"slices"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/grid"
)

// Context is the movement record a condition is evaluated against.
type Context struct {
	// Path holds the start cell followed by the position after every
	// move attempt, blocked ones included.
	Path []grid.Coord
	Pos  grid.Coord
	Grid grid.Grid

	// History holds one direction per move attempt. A nil History makes
	// every sequence condition fail; pass an empty slice for "no moves".
	History []grid.Side

	// Horizon bounds the path indices a step expression can select.
	// Zero means DefaultStepHorizon.
	Horizon int
}

func (ctx Context) horizon() int {
	if ctx.Horizon > 0 {
		return ctx.Horizon
	}
	return DefaultStepHorizon
}

func (ctx Context) resolve(spec grid.CellSpec) []grid.Coord {
	return grid.ResolveCells(spec, ctx.Grid.Cols, ctx.Grid.Rows)
}

// CheckAll reports whether every condition holds.
func CheckAll(conds []Condition, ctx Context) bool {
	for _, c := range conds {
		if !Evaluate(c, ctx) {
			return false
		}
	}
	return true
}

// Evaluate reports whether a single condition holds.
func Evaluate(c Condition, ctx Context) bool {
	switch c := c.(type) {
	case Group:
		return evalGroup(c, ctx)
	case Sequence:
		return c.holds(ctx.History)
	case Visit:
		return evalVisit(c, ctx)
	case AtSteps:
		return evalAtSteps(c, ctx)
	case EndAt:
		return slices.Contains(ctx.resolve(c.Cells), ctx.Pos)
	case Order:
		return evalOrder(c, ctx)
	case Consecutive:
		return evalConsecutive(c, ctx)
	case NoRevisit:
		return evalNoRevisit(c, ctx)
	case TotalSteps:
		return c.Op.Compare(len(ctx.Path)-1, c.Count)
	}
	return false
}

func evalGroup(g Group, ctx Context) bool {
	results := make([]bool, len(g.Items))
	trues := 0
	for i, item := range g.Items {
		results[i] = Evaluate(item, ctx)
		if results[i] {
			trues++
		}
	}

	switch g.Logic {
	case LogicAnd:
		return trues == len(results)
	case LogicOr:
		return trues > 0
	case LogicNot:
		if len(results) == 0 {
			return true
		}
		return !results[0]
	case LogicXor:
		return trues == 1
	case LogicNand:
		return trues != len(results)
	case LogicNor:
		return trues == 0
	}
	return false
}

// combine folds a per-cell predicate with the match mode.
func combine(cells []grid.Coord, match Match, pred func(grid.Coord) bool) bool {
	if match == MatchAny {
		return slices.ContainsFunc(cells, pred)
	}
	for _, c := range cells {
		if !pred(c) {
			return false
		}
	}
	return true
}

func visitCounts(path []grid.Coord) map[grid.Coord]int {
	counts := make(map[grid.Coord]int, len(path))
	for _, p := range path {
		counts[p]++
	}
	return counts
}

func evalVisit(v Visit, ctx Context) bool {
	counts := visitCounts(ctx.Path)
	cells := ctx.resolve(v.Cells)

	if v.HasBounds {
		return combine(cells, v.Match, func(c grid.Coord) bool {
			n := counts[c]
			return v.Min <= n && n <= v.Max
		})
	}
	return combine(cells, v.Match, func(c grid.Coord) bool {
		return v.Op.Compare(counts[c], v.Count)
	})
}

func evalAtSteps(a AtSteps, ctx Context) bool {
	cells := ctx.resolve(a.Cells)
	inSet := make(map[grid.Coord]bool, len(cells))
	for _, c := range cells {
		inSet[c] = true
	}

	if a.Steps.HasExpr() {
		h := ctx.horizon()
		if a.Avoid {
			for i, p := range ctx.Path {
				if i < h && inSet[p] && a.Steps.Matches(i) {
					return false
				}
			}
			return true
		}

		valid := make(map[grid.Coord]bool, len(cells))
		for i, p := range ctx.Path {
			if i < h && inSet[p] && a.Steps.Matches(i) {
				valid[p] = true
			}
		}
		return combine(cells, a.Match, func(c grid.Coord) bool { return valid[c] })
	}

	target := a.Steps.Set(DefaultStepHorizon)
	if a.Avoid {
		for i, p := range ctx.Path {
			if inSet[p] && target[i] {
				return false
			}
		}
		return true
	}

	visits := make(map[grid.Coord]map[int]bool)
	for i, p := range ctx.Path {
		if visits[p] == nil {
			visits[p] = make(map[int]bool)
		}
		visits[p][i] = true
	}
	return combine(cells, a.Match, func(c grid.Coord) bool {
		seen, ok := visits[c]
		if !ok {
			return false
		}
		for step := range target {
			if !seen[step] {
				return false
			}
		}
		return true
	})
}

func evalOrder(o Order, ctx Context) bool {
	first := make(map[grid.Coord]int, len(ctx.Path))
	for i, p := range ctx.Path {
		if _, ok := first[p]; !ok {
			first[p] = i
		}
	}

	prev := -1
	for _, c := range ctx.resolve(o.Cells) {
		idx, ok := first[c]
		if !ok || idx <= prev {
			return false
		}
		prev = idx
	}
	return true
}

func maxRun(path []grid.Coord, cell grid.Coord) int {
	best, cur := 0, 0
	for _, p := range path {
		if p == cell {
			cur++
			best = max(best, cur)
		} else {
			cur = 0
		}
	}
	return best
}

func evalConsecutive(c Consecutive, ctx Context) bool {
	return combine(ctx.resolve(c.Cells), c.Match, func(cell grid.Coord) bool {
		return maxRun(ctx.Path, cell) >= c.Count
	})
}

func evalNoRevisit(n NoRevisit, ctx Context) bool {
	except := ctx.resolve(n.Except)
	visited := make(map[grid.Coord]bool, len(ctx.Path))
	for _, p := range ctx.Path {
		if slices.Contains(except, p) {
			continue
		}
		if visited[p] {
			return false
		}
		visited[p] = true
	}
	return true
}

// ConditionCells returns every cell named by the conditions, nested
// groups included, in first-seen order.
func ConditionCells(conds []Condition, g grid.Grid) []grid.Coord {
	ctx := Context{Grid: g}
	seen := make(map[grid.Coord]bool)
	var out []grid.Coord
	add := func(spec grid.CellSpec) {
		for _, c := range ctx.resolve(spec) {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}

	var walk func(c Condition)
	walk = func(c Condition) {
		switch c := c.(type) {
		case Group:
			for _, item := range c.Items {
				walk(item)
			}
		case Visit:
			add(c.Cells)
		case AtSteps:
			add(c.Cells)
		case EndAt:
			add(c.Cells)
		case Order:
			add(c.Cells)
		case Consecutive:
			add(c.Cells)
		}
	}
	for _, c := range conds {
		walk(c)
	}
	return out
}
