package levels

import (
	"strings"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/grid"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/rules"
)

var newFormatKeys = []string{"cell", "cells", "range", "ranges", "type", "sides", "mode"}

// ParseBarriers expands a "walls" or "poison" list. Items in the object
// form are recognised by any of their keys; everything else is read as
// the legacy [target, sides] pair. Malformed items contribute nothing.
func ParseBarriers(raw any) []grid.Barrier {
	items, _ := raw.([]any)
	var out []grid.Barrier
	for _, item := range items {
		if m, ok := item.(map[string]any); ok && isNewFormat(m) {
			out = append(out, decodeBarrierSpec(m, grid.KindBoth).Expand()...)
			continue
		}
		if spec, ok := decodeLegacy(item); ok {
			out = append(out, spec.Expand()...)
		}
	}
	return out
}

func isNewFormat(m map[string]any) bool {
	for _, k := range newFormatKeys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

func decodeBarrierSpec(m map[string]any, defaultKind grid.Kind) grid.BarrierSpec {
	spec := grid.BarrierSpec{Kind: defaultKind}
	if s, ok := m["type"].(string); ok {
		if k, ok := grid.ParseKind(s); ok {
			spec.Kind = k
		}
	}
	sides, _ := m["sides"].(string)
	spec.Sides = grid.ParseSideLetters(sides)
	if mode, _ := m["mode"].(string); mode == "perimeter" {
		spec.Perimeter = true
	}

	if c, ok := rules.DecodeCoord(m["cell"]); ok {
		spec.Cells = append(spec.Cells, c)
	}
	if list, ok := m["cells"].([]any); ok {
		for _, item := range list {
			if c, ok := rules.DecodeCoord(item); ok {
				spec.Cells = append(spec.Cells, c)
			}
		}
	}
	if r, ok := decodeRange(m["range"]); ok {
		spec.Ranges = append(spec.Ranges, r)
	}
	if list, ok := m["ranges"].([]any); ok {
		for _, item := range list {
			if r, ok := decodeRange(item); ok {
				spec.Ranges = append(spec.Ranges, r)
			}
		}
	}

	if list, ok := m["except"].([]any); ok {
		for _, item := range list {
			if em, ok := item.(map[string]any); ok {
				spec.Except = append(spec.Except, decodeBarrierSpec(em, spec.Kind))
			}
		}
	}
	return spec
}

func decodeRange(raw any) (grid.Range, bool) {
	pair, ok := raw.([]any)
	if !ok || len(pair) != 2 {
		return grid.Range{}, false
	}
	from, okFrom := rules.DecodeCoord(pair[0])
	to, okTo := rules.DecodeCoord(pair[1])
	if !okFrom || !okTo {
		return grid.Range{}, false
	}
	return grid.Range{From: from, To: to}, true
}

// decodeLegacy reads [target, {side: kind, modes, sides, except}] where
// target is a cell or a [[x1,y1],[x2,y2]] range.
func decodeLegacy(raw any) (grid.LegacyBarrierSpec, bool) {
	pair, ok := raw.([]any)
	if !ok || len(pair) != 2 {
		return grid.LegacyBarrierSpec{}, false
	}
	opts, ok := pair[1].(map[string]any)
	if !ok {
		return grid.LegacyBarrierSpec{}, false
	}

	spec := grid.LegacyBarrierSpec{
		SideKinds: make(map[grid.Side]grid.Kind),
		Default:   grid.KindBoth,
	}
	if c, ok := rules.DecodeCoord(pair[0]); ok {
		spec.Cell = c
	} else if r, ok := decodeRange(pair[0]); ok {
		spec.Range = &r
	} else {
		return grid.LegacyBarrierSpec{}, false
	}

	if modes, ok := opts["modes"].([]any); ok {
		for _, m := range modes {
			if s, _ := m.(string); s == "perimeter" || s == "box" {
				spec.Perimeter = true
			}
		}
	}
	if s, ok := opts["sides"].(string); ok {
		spec.PerimeterSides = grid.ParseSideLetters(s)
	}

	for key, val := range opts {
		kindName, ok := val.(string)
		if !ok {
			continue
		}
		kind, ok := grid.ParseKind(kindName)
		if !ok {
			continue
		}
		if strings.ToLower(key) == "all" {
			spec.Default = kind
			for _, side := range grid.AllSides() {
				if _, set := spec.SideKinds[side]; !set {
					spec.SideKinds[side] = kind
				}
			}
			continue
		}
		if side, ok := grid.ParseSide(key); ok {
			spec.SideKinds[side] = kind
		}
	}

	if list, ok := opts["except"].([]any); ok {
		for _, item := range list {
			spec.ExceptCells, spec.ExceptSides = decodeLegacyExcept(item, spec.ExceptCells, spec.ExceptSides)
		}
	}
	return spec, true
}

// decodeLegacyExcept reads one except entry: a cell, a [[x1,y1],[x2,y2]]
// range of whole cells, or a nested object spec matched by cell and side.
func decodeLegacyExcept(item any, cells []grid.Coord, sides []grid.CellSides) ([]grid.Coord, []grid.CellSides) {
	if c, ok := rules.DecodeCoord(item); ok {
		return append(cells, c), sides
	}
	if r, ok := decodeRange(item); ok {
		return append(cells, r.Cells()...), sides
	}
	m, ok := item.(map[string]any)
	if !ok {
		return cells, sides
	}
	for _, b := range decodeBarrierSpec(m, grid.KindBoth).Expand() {
		sides = append(sides, grid.CellSides{Cell: b.Cell, Sides: []grid.Side{b.Side}})
	}
	return cells, sides
}
