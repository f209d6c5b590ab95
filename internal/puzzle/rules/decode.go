package rules

import (
	"fmt"
	"math"
	"strings"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/grid"
)

// MaxVisits is the implicit upper bound of a visit range.
const MaxVisits = 999999

// DecodeList decodes a "conditions" array as produced by encoding/json or
// yaml.v3. A nil input yields no conditions.
func DecodeList(raw any) ([]Condition, error) {
	if raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("rules: conditions must be a list, got %T", raw)
	}

	out := make([]Condition, 0, len(items))
	for i, item := range items {
		c, err := Decode(item)
		if err != nil {
			return nil, fmt.Errorf("rules: condition %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// Decode turns one generic condition object into a typed node. Unknown
// checks decode to Unknown rather than failing.
func Decode(raw any) (Condition, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected an object, got %T", raw)
	}

	check, _ := m["check"].(string)
	switch check {
	case CheckGroup:
		return decodeGroup(m)
	case CheckVisit:
		return decodeVisit(m), nil
	case CheckAtSteps:
		return decodeAtSteps(m), nil
	case CheckEndAt:
		return EndAt{Cells: DecodeCells(m["cells"])}, nil
	case CheckOrder:
		return Order{Cells: DecodeCells(m["cells"])}, nil
	case CheckConsecutive:
		return Consecutive{
			Cells: DecodeCells(m["cells"]),
			Match: decodeMatch(m),
			Count: intOr(m, "count", 2),
		}, nil
	case CheckNoRevisit:
		return NoRevisit{Except: DecodeCells(m["except"])}, nil
	case CheckTotalSteps:
		return TotalSteps{
			Count: intOr(m, "count", 0),
			Op:    operatorOr(m, OpEq),
		}, nil
	case CheckSequence:
		return decodeSequence(m), nil
	}
	return Unknown{Name: check}, nil
}

func decodeGroup(m map[string]any) (Condition, error) {
	g := Group{Logic: LogicAnd}
	if s, ok := m["logic"].(string); ok {
		g.Logic = parseLogic(s)
	}

	if raw, ok := m["items"]; ok && raw != nil {
		items, err := DecodeList(raw)
		if err != nil {
			return nil, fmt.Errorf("group items: %w", err)
		}
		g.Items = items
	}
	return g, nil
}

func parseLogic(s string) Logic {
	switch strings.ToUpper(s) {
	case "AND":
		return LogicAnd
	case "OR":
		return LogicOr
	case "NOT":
		return LogicNot
	case "XOR":
		return LogicXor
	case "NAND":
		return LogicNand
	case "NOR":
		return LogicNor
	}
	return LogicUnknown
}

func decodeMatch(m map[string]any) Match {
	if s, _ := m["match"].(string); s == "any" {
		return MatchAny
	}
	return MatchAll
}

func decodeVisit(m map[string]any) Visit {
	v := Visit{Cells: DecodeCells(m["cells"]), Match: decodeMatch(m)}

	_, hasMin := m["min"]
	_, hasMax := m["max"]
	if hasMin || hasMax {
		v.HasBounds = true
		v.Min = intOr(m, "min", 0)
		v.Max = intOr(m, "max", MaxVisits)
	}

	v.Count = intOr(m, "count", 1)
	def := OpGe
	if v.Count == 0 {
		def = OpEq
	}
	v.Op = operatorOr(m, def)
	return v
}

func decodeAtSteps(m map[string]any) AtSteps {
	a := AtSteps{Cells: DecodeCells(m["cells"]), Match: decodeMatch(m)}
	if s, _ := m["mode"].(string); s == "avoid" {
		a.Avoid = true
	}

	if expr, ok := m["step_expr"].(string); ok {
		a.Steps = NewExprSteps(expr)
		return a
	}
	if n, ok := ToInt(m["step"]); ok {
		a.Steps.Step = &n
	}
	if list, ok := m["steps"].([]any); ok {
		for _, v := range list {
			if n, ok := ToInt(v); ok {
				a.Steps.Steps = append(a.Steps.Steps, n)
			}
		}
	}
	if pair, ok := m["step_range"].([]any); ok && len(pair) == 2 {
		lo, okLo := ToInt(pair[0])
		hi, okHi := ToInt(pair[1])
		if okLo && okHi {
			a.Steps.HasRange = true
			a.Steps.RangeLo, a.Steps.RangeHi = lo, hi
		}
	}
	return a
}

func decodeSequence(m map[string]any) Sequence {
	s := Sequence{Moves: DecodeMoves(m["moves"])}
	if mode, ok := m["mode"].(string); ok {
		s.Mode = ParseSeqMode(mode)
	}
	s.Overlapping, _ = m["overlapping"].(bool)

	if n, ok := ToInt(m["min"]); ok {
		s.Min = &n
	}
	if n, ok := ToInt(m["max"]); ok {
		s.Max = &n
	}

	_, hasCount := m["count"]
	_, hasOp := m["operator"]
	s.Counted = hasCount || hasOp
	s.Count = intOr(m, "count", 1)
	s.Op = operatorOr(m, OpGe)

	if raw, ok := m["any"]; ok {
		s.Combine = SeqAny
		s.Alternatives = decodeAlternatives(raw)
	} else if raw, ok := m["all"]; ok {
		s.Combine = SeqAll
		s.Alternatives = decodeAlternatives(raw)
	}
	return s
}

func decodeAlternatives(raw any) [][]grid.Side {
	list, _ := raw.([]any)
	out := make([][]grid.Side, 0, len(list))
	for _, item := range list {
		out = append(out, DecodeMoves(item))
	}
	return out
}

// DecodeMoves accepts "u u right" or ["u", "up", ...]. Unknown tokens are
// dropped.
func DecodeMoves(raw any) []grid.Side {
	switch v := raw.(type) {
	case string:
		return grid.ParseMoves(v)
	case []any:
		out := make([]grid.Side, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				continue
			}
			if side, ok := grid.ParseSide(s); ok {
				out = append(out, side)
			}
		}
		return out
	case []string:
		return grid.ParseMoves(strings.Join(v, " "))
	}
	return []grid.Side{}
}

// DecodeCells reads a cell set: a symbolic name, a list of [x, y] pairs or
// a single flat [x, y] pair.
func DecodeCells(raw any) grid.CellSpec {
	switch v := raw.(type) {
	case string:
		return grid.Symbol(v)
	case []any:
		if c, ok := DecodeCoord(v); ok {
			return grid.Cells(c)
		}
		var cells []grid.Coord
		for _, item := range v {
			if c, ok := DecodeCoord(item); ok {
				cells = append(cells, c)
			}
		}
		return grid.Cells(cells...)
	}
	return grid.CellSpec{}
}

// DecodeCoord reads a two-number list as a coordinate.
func DecodeCoord(raw any) (grid.Coord, bool) {
	pair, ok := raw.([]any)
	if !ok || len(pair) != 2 {
		return grid.Coord{}, false
	}
	x, okX := ToInt(pair[0])
	y, okY := ToInt(pair[1])
	if !okX || !okY {
		return grid.Coord{}, false
	}
	return grid.C(x, y), true
}

// ToInt converts the numeric types produced by encoding/json and yaml.v3.
// Fractional floats are rejected.
func ToInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

func intOr(m map[string]any, key string, def int) int {
	if n, ok := ToInt(m[key]); ok {
		return n
	}
	return def
}

func operatorOr(m map[string]any, def Operator) Operator {
	s, ok := m["operator"].(string)
	if !ok {
		return def
	}
	if op, ok := ParseOperator(s); ok {
		return op
	}
	return def
}
