// Package levels turns level pack files into ready-to-play definitions.
//
// Parsing happens in two steps: formats decodes the file into generic
// values and Parse normalises one level (barrier expansion, wall_is_poison,
// answer injection) into a Level.
package levels

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/grid"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/movable"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/rules"
)

// Level types.
const (
	TypeSequence  = "sequence"
	TypeCondition = "condition"
)

var (
	ErrNoLevels      = errors.New("levels: no levels")
	ErrLevelNotFound = errors.New("levels: level not found")
)

// DefaultGrid is used when neither the level nor the settings give one.
var DefaultGrid = grid.Grid{Cols: 16, Rows: 12}

// Level is a normalised level definition. It is immutable once parsed;
// sessions copy what they mutate.
type Level struct {
	Name string
	Hint string
	Type string

	Grid  grid.Grid
	Start grid.Coord

	// Ans is the reference solution of a sequence level and Target the
	// cell it ends on.
	Ans    []grid.Side
	Target *grid.Coord

	Conditions       []rules.Condition
	GlobalConditions []rules.Condition

	Walls    []grid.Barrier
	Poison   []grid.Barrier
	Movables []movable.Spec
}

// Title returns the display name, falling back to "Level N".
func (l Level) Title(index int) string {
	if l.Name != "" {
		return l.Name
	}
	return fmt.Sprintf("Level %d", index+1)
}

// NewMovables builds a fresh movable manager for the level.
func (l Level) NewMovables() *movable.Manager {
	return movable.Build(l.Movables)
}

// Parse normalises one raw level. defaultGrid applies when the level has
// no "grid" key.
func Parse(raw map[string]any, defaultGrid grid.Grid) (Level, error) {
	lvl := Level{Type: TypeSequence, Grid: defaultGrid}
	if lvl.Grid.Cols <= 0 || lvl.Grid.Rows <= 0 {
		lvl.Grid = DefaultGrid
	}

	lvl.Name, _ = raw["name"].(string)
	lvl.Hint, _ = raw["hint"].(string)
	if t, ok := raw["type"].(string); ok {
		lvl.Type = t
	}

	if v, ok := raw["grid"]; ok {
		c, ok := rules.DecodeCoord(v)
		if !ok || c.X <= 0 || c.Y <= 0 {
			return Level{}, fmt.Errorf("levels: bad grid %v", v)
		}
		lvl.Grid = grid.Grid{Cols: c.X, Rows: c.Y}
	}
	if v, ok := raw["start"]; ok {
		c, ok := rules.DecodeCoord(v)
		if !ok {
			return Level{}, fmt.Errorf("levels: bad start %v", v)
		}
		lvl.Start = c
	}

	var err error
	if lvl.Conditions, err = rules.DecodeList(raw["conditions"]); err != nil {
		return Level{}, fmt.Errorf("levels: conditions: %w", err)
	}
	if lvl.GlobalConditions, err = rules.DecodeList(raw["global_conditions"]); err != nil {
		return Level{}, fmt.Errorf("levels: global_conditions: %w", err)
	}

	lvl.Walls = ParseBarriers(raw["walls"])
	lvl.Poison = ParseBarriers(raw["poison"])
	lvl.Movables = ParseMovables(raw["movable"])

	if flag, ok := raw["wall_is_poison"]; ok && truthy(flag) {
		applyWallIsPoison(&lvl, flag)
	}

	if ans, ok := raw["ans"].(string); ok && lvl.Type == TypeSequence {
		injectAnswer(&lvl, ans)
	}
	return lvl, nil
}

// applyWallIsPoison moves every wall whose cell is not excepted into the
// poison list.
func applyWallIsPoison(lvl *Level, flag any) {
	except := make(map[grid.Coord]bool)
	if m, ok := flag.(map[string]any); ok {
		for _, c := range rules.DecodeCells(m["except"]).List {
			except[c] = true
		}
	}

	var walls []grid.Barrier
	for _, w := range lvl.Walls {
		if except[w.Cell] {
			walls = append(walls, w)
			continue
		}
		lvl.Poison = append(lvl.Poison, w)
	}
	lvl.Walls = walls
}

// injectAnswer turns a sequence level's answer into an exact sequence
// condition plus an end_at on the answer's target cell, unless the level
// already has conditions of those kinds.
func injectAnswer(lvl *Level, ans string) {
	lvl.Ans = grid.ParseMoves(ans)
	target := CalculateTargetPos(lvl.Start, ans, lvl.Grid)
	lvl.Target = &target

	if !rules.HasCheck(lvl.Conditions, rules.CheckSequence) {
		lvl.Conditions = append(lvl.Conditions, rules.Sequence{
			Moves: lvl.Ans,
			Mode:  rules.ModeExact,
		})
	}
	if !rules.HasCheck(lvl.Conditions, rules.CheckEndAt) {
		lvl.Conditions = append(lvl.Conditions, rules.EndAt{Cells: grid.Cells(target)})
	}
}

// CalculateTargetPos replays ans from start, ignoring barriers. Only the
// first letter of each token counts; steps that would leave the grid are
// skipped.
func CalculateTargetPos(start grid.Coord, ans string, g grid.Grid) grid.Coord {
	pos := start
	for _, tok := range strings.Fields(strings.ToLower(ans)) {
		side, ok := grid.ParseSide(tok[:1])
		if !ok {
			continue
		}
		if next := pos.Step(side); g.Contains(next) {
			pos = next
		}
	}
	return pos
}

// truthy mirrors the loose flags level files use: true, non-empty strings,
// non-zero numbers and non-empty objects.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	}
	if n, ok := rules.ToInt(v); ok {
		return n != 0
	}
	return true
}
