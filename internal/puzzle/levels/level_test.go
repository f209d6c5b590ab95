package levels

import (
	"encoding/json"
	"testing"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/grid"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/rules"
)

func rawLevel(t *testing.T, src string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(src), &m); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return m
}

func mustParse(t *testing.T, src string) Level {
	t.Helper()
	lvl, err := Parse(rawLevel(t, src), DefaultGrid)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return lvl
}

func TestParseDefaults(t *testing.T) {
	lvl := mustParse(t, `{"start": [1, 2]}`)
	if lvl.Grid != DefaultGrid {
		t.Errorf("grid = %v, want %v", lvl.Grid, DefaultGrid)
	}
	if lvl.Type != TypeSequence {
		t.Errorf("type = %q", lvl.Type)
	}
	if lvl.Start != grid.C(1, 2) {
		t.Errorf("start = %v", lvl.Start)
	}
	if lvl.Title(4) != "Level 5" {
		t.Errorf("title = %q", lvl.Title(4))
	}

	custom, err := Parse(rawLevel(t, `{"start": [0, 0]}`), grid.Grid{Cols: 7, Rows: 3})
	if err != nil || custom.Grid != (grid.Grid{Cols: 7, Rows: 3}) {
		t.Errorf("settings grid not applied: %v %v", custom.Grid, err)
	}
}

func TestParseRejectsBadShapes(t *testing.T) {
	for _, src := range []string{
		`{"grid": [0, 4]}`,
		`{"grid": "big"}`,
		`{"start": [1]}`,
		`{"conditions": {"check": "visit"}}`,
	} {
		if _, err := Parse(rawLevel(t, src), DefaultGrid); err == nil {
			t.Errorf("Parse(%s) should fail", src)
		}
	}
}

func TestSequenceLevelInjection(t *testing.T) {
	lvl := mustParse(t, `{"grid": [3, 3], "start": [0, 0], "ans": "r r r d"}`)

	if lvl.Target == nil || *lvl.Target != grid.C(2, 1) {
		t.Fatalf("target = %v, want (2,1): the third r leaves the grid", lvl.Target)
	}
	if len(lvl.Conditions) != 2 {
		t.Fatalf("conditions = %#v", lvl.Conditions)
	}
	seq, ok := lvl.Conditions[0].(rules.Sequence)
	if !ok || seq.Mode != rules.ModeExact || grid.FormatMoves(seq.Moves) != "r r r d" {
		t.Errorf("injected sequence = %#v", lvl.Conditions[0])
	}
	end, ok := lvl.Conditions[1].(rules.EndAt)
	if !ok || len(end.Cells.List) != 1 || end.Cells.List[0] != grid.C(2, 1) {
		t.Errorf("injected end_at = %#v", lvl.Conditions[1])
	}

	// Existing checks suppress injection.
	kept := mustParse(t, `{"grid": [3, 3], "start": [0, 0], "ans": "r",
		"conditions": [{"check": "end_at", "cells": [[0, 0]]}]}`)
	if len(kept.Conditions) != 2 || kept.Conditions[0].Check() != rules.CheckEndAt || kept.Conditions[1].Check() != rules.CheckSequence {
		t.Errorf("conditions = %#v", kept.Conditions)
	}

	// Condition levels never get an answer injected.
	cond := mustParse(t, `{"type": "condition", "start": [0, 0], "ans": "r", "conditions": []}`)
	if len(cond.Conditions) != 0 || cond.Target != nil {
		t.Errorf("condition level changed: %#v", cond.Conditions)
	}
}

func TestCalculateTargetPos(t *testing.T) {
	g := grid.Grid{Cols: 3, Rows: 2}
	tests := []struct {
		ans  string
		want grid.Coord
	}{
		{"", grid.C(0, 0)},
		{"right Right down", grid.C(2, 1)},
		{"u l", grid.C(0, 0)},
		{"d d d r", grid.C(1, 1)},
		{"rx dz", grid.C(1, 1)},
		{"? r", grid.C(1, 0)},
	}
	for _, tt := range tests {
		if got := CalculateTargetPos(grid.C(0, 0), tt.ans, g); got != tt.want {
			t.Errorf("CalculateTargetPos(%q) = %v, want %v", tt.ans, got, tt.want)
		}
	}
}

func TestWallIsPoison(t *testing.T) {
	lvl := mustParse(t, `{"grid": [4, 4], "start": [0, 0],
		"walls": [{"cells": [[1, 1], [2, 2]], "sides": "u"}],
		"poison": [{"cell": [3, 3], "sides": "d"}],
		"wall_is_poison": {"except": [[2, 2]]}}`)

	if len(lvl.Walls) != 1 || lvl.Walls[0].Cell != grid.C(2, 2) {
		t.Errorf("walls = %v", lvl.Walls)
	}
	if len(lvl.Poison) != 2 || lvl.Poison[1].Cell != grid.C(1, 1) {
		t.Errorf("poison = %v", lvl.Poison)
	}

	all := mustParse(t, `{"start": [0, 0], "walls": [{"cell": [1, 1]}], "wall_is_poison": true}`)
	if len(all.Walls) != 0 || len(all.Poison) != 4 {
		t.Errorf("walls %v poison %v", all.Walls, all.Poison)
	}

	off := mustParse(t, `{"start": [0, 0], "walls": [{"cell": [1, 1]}], "wall_is_poison": false}`)
	if len(off.Walls) != 4 || len(off.Poison) != 0 {
		t.Errorf("false flag moved walls: %v", off.Poison)
	}
}

func TestParseBarriers(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []grid.Barrier
	}{
		{
			name: "new format cell with sides",
			src:  `[{"cell": [1, 1], "sides": "lr", "type": "inner"}]`,
			want: []grid.Barrier{
				{Cell: grid.C(1, 1), Side: grid.SideLeft, Kind: grid.KindInner},
				{Cell: grid.C(1, 1), Side: grid.SideRight, Kind: grid.KindInner},
			},
		},
		{
			name: "perimeter with except",
			src: `[{"range": [[0, 0], [1, 0]], "mode": "perimeter", "sides": "u",
				"except": [{"cell": [1, 0], "sides": "u"}]}]`,
			want: []grid.Barrier{{Cell: grid.C(0, 0), Side: grid.SideUp, Kind: grid.KindBoth}},
		},
		{
			name: "legacy single cell",
			src:  `[[[2, 3], {"up": "outer", "left": "both"}]]`,
			want: []grid.Barrier{
				{Cell: grid.C(2, 3), Side: grid.SideUp, Kind: grid.KindOuter},
				{Cell: grid.C(2, 3), Side: grid.SideLeft, Kind: grid.KindBoth},
			},
		},
		{
			name: "legacy perimeter uses both for unlisted sides",
			src:  `[[[[0, 0], [0, 1]], {"modes": ["box"], "sides": "lu", "left": "inner"}]]`,
			want: []grid.Barrier{
				{Cell: grid.C(0, 0), Side: grid.SideLeft, Kind: grid.KindInner},
				{Cell: grid.C(0, 1), Side: grid.SideLeft, Kind: grid.KindInner},
				{Cell: grid.C(0, 0), Side: grid.SideUp, Kind: grid.KindBoth},
			},
		},
		{
			name: "legacy except whole cell",
			src:  `[[[[0, 0], [1, 0]], {"down": "both", "except": [[0, 0]]}]]`,
			want: []grid.Barrier{{Cell: grid.C(1, 0), Side: grid.SideDown, Kind: grid.KindBoth}},
		},
		{
			name: "legacy except range pair",
			src:  `[[[[0, 0], [2, 0]], {"up": "both", "except": [[[0, 0], [1, 0]]]}]]`,
			want: []grid.Barrier{{Cell: grid.C(2, 0), Side: grid.SideUp, Kind: grid.KindBoth}},
		},
		{
			name: "legacy except nested spec",
			src: `[[[[0, 0], [2, 0]], {"up": "both", "down": "inner",
				"except": [{"range": [[0, 0], [1, 0]], "sides": "u"}, {"cells": [[2, 0]], "sides": "d"}]}]]`,
			want: []grid.Barrier{
				{Cell: grid.C(0, 0), Side: grid.SideDown, Kind: grid.KindInner},
				{Cell: grid.C(1, 0), Side: grid.SideDown, Kind: grid.KindInner},
				{Cell: grid.C(2, 0), Side: grid.SideUp, Kind: grid.KindBoth},
			},
		},
		{
			name: "garbage items",
			src:  `[42, "wall", [[1, 1]], [[1, 1], "up"]]`,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw any
			if err := json.Unmarshal([]byte(tt.src), &raw); err != nil {
				t.Fatalf("bad fixture: %v", err)
			}
			got := ParseBarriers(raw)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("barrier %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseMovables(t *testing.T) {
	lvl := mustParse(t, `{"start": [0, 0], "movable": [
		{"cell": [1, 1], "blocked": "ud", "can_push": false},
		{"range": [[3, 3], [4, 3]], "connected": "true", "blocked": ["left", "x"]},
		"not an object"
	]}`)

	if len(lvl.Movables) != 2 {
		t.Fatalf("movables = %+v", lvl.Movables)
	}
	first := lvl.Movables[0]
	if first.CanPush || !first.CanBePushedBy || first.Connected {
		t.Errorf("first spec flags: %+v", first)
	}
	if !first.Blocked.Has(grid.SideUp) || !first.Blocked.Has(grid.SideDown) || first.Blocked.Has(grid.SideLeft) {
		t.Errorf("first blocked = %v", first.Blocked.Sides())
	}

	m := lvl.NewMovables()
	if m.Len() != 3 {
		t.Errorf("manager holds %d objects", m.Len())
	}
	obj, ok := m.At(grid.C(4, 3))
	if !ok || obj.Group != 1 || !obj.Blocked.Has(grid.SideLeft) {
		t.Errorf("grouped object = %+v", obj)
	}

	// Each call builds an independent manager.
	if lvl.NewMovables() == m {
		t.Error("NewMovables must not share managers")
	}
}
