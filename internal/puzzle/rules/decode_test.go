package rules

import (
	"encoding/json"
	"testing"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/grid"
)

func decodeJSON(t *testing.T, src string) []Condition {
	t.Helper()
	var raw any
	if err := json.Unmarshal([]byte(src), &raw); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	conds, err := DecodeList(raw)
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	return conds
}

func TestDecodeDefaults(t *testing.T) {
	conds := decodeJSON(t, `[
		{"check": "visit", "cells": [[1, 1], [2, 2]]},
		{"check": "visit", "cells": [3, 3], "count": 0},
		{"check": "visit", "cells": "corners", "max": 2, "operator": "??"},
		{"check": "consecutive", "cells": [[0, 0]]},
		{"check": "total_steps"},
		{"check": "at_steps", "cells": [[0, 0]], "mode": "avoid", "step_expr": "prime"},
		{"check": "warp"}
	]`)
	if len(conds) != 7 {
		t.Fatalf("decoded %d conditions", len(conds))
	}

	v := conds[0].(Visit)
	if v.Count != 1 || v.Op != OpGe || v.Match != MatchAll || len(v.Cells.List) != 2 {
		t.Errorf("visit defaults: %+v", v)
	}

	avoid := conds[1].(Visit)
	if avoid.Op != OpEq || len(avoid.Cells.List) != 1 || avoid.Cells.List[0] != grid.C(3, 3) {
		t.Errorf("flat pair should become one cell with == default: %+v", avoid)
	}

	bounded := conds[2].(Visit)
	if !bounded.HasBounds || bounded.Min != 0 || bounded.Max != 2 || bounded.Cells.Symbol != grid.CellsCorners {
		t.Errorf("bounds: %+v", bounded)
	}

	if cons := conds[3].(Consecutive); cons.Count != 2 {
		t.Errorf("consecutive default = %d", cons.Count)
	}
	if ts := conds[4].(TotalSteps); ts.Count != 0 || ts.Op != OpEq {
		t.Errorf("total_steps defaults: %+v", ts)
	}
	if at := conds[5].(AtSteps); !at.Avoid || !at.Steps.HasExpr() || !at.Steps.Matches(7) {
		t.Errorf("at_steps: %+v", at)
	}
	if u, ok := conds[6].(Unknown); !ok || u.Check() != "warp" {
		t.Errorf("unknown check: %#v", conds[6])
	}
}

func TestDecodeGroupAndSequence(t *testing.T) {
	conds := decodeJSON(t, `[
		{"check": "group", "logic": "xor", "items": [
			{"check": "end_at", "cells": [[0, 0]]},
			{"check": "no_revisit", "except": "center"}
		]},
		{"check": "sequence", "moves": "up u Right", "count": 2},
		{"check": "sequence", "any": [["u", "r"], "d d"], "mode": "starts_with"},
		{"check": "sequence", "moves": ["l", "x", "down"], "min": 1, "overlapping": true}
	]`)

	g := conds[0].(Group)
	if g.Logic != LogicXor || len(g.Items) != 2 {
		t.Fatalf("group: %+v", g)
	}
	if nr := g.Items[1].(NoRevisit); nr.Except.Symbol != grid.CellsCenter {
		t.Errorf("except: %+v", nr)
	}

	counted := conds[1].(Sequence)
	if !counted.Counted || counted.Count != 2 || counted.Op != OpGe {
		t.Errorf("counted: %+v", counted)
	}
	if grid.FormatMoves(counted.Moves) != "u u r" {
		t.Errorf("moves = %v", counted.Moves)
	}

	alt := conds[2].(Sequence)
	if alt.Combine != SeqAny || alt.Mode != ModeStartsWith || len(alt.Alternatives) != 2 {
		t.Errorf("alternatives: %+v", alt)
	}
	if alt.Counted {
		t.Error("no count given")
	}

	bounded := conds[3].(Sequence)
	if bounded.Min == nil || *bounded.Min != 1 || bounded.Max != nil || !bounded.Overlapping {
		t.Errorf("bounded: %+v", bounded)
	}
	if grid.FormatMoves(bounded.Moves) != "l d" {
		t.Errorf("unknown tokens should be dropped: %v", bounded.Moves)
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := DecodeList(map[string]any{}); err == nil {
		t.Error("an object is not a list")
	}
	if _, err := DecodeList([]any{"visit"}); err == nil {
		t.Error("a string is not a condition")
	}
	if _, err := DecodeList([]any{map[string]any{"check": "group", "items": []any{1}}}); err == nil {
		t.Error("bad group item should fail")
	}
	if conds, err := DecodeList(nil); err != nil || conds != nil {
		t.Errorf("nil input: %v %v", conds, err)
	}
}

func TestToInt(t *testing.T) {
	if n, ok := ToInt(float64(3)); !ok || n != 3 {
		t.Error("float64 whole number")
	}
	if _, ok := ToInt(2.5); ok {
		t.Error("fraction accepted")
	}
	if n, ok := ToInt(7); !ok || n != 7 {
		t.Error("int")
	}
	if _, ok := ToInt("7"); ok {
		t.Error("strings are not numbers")
	}
}
