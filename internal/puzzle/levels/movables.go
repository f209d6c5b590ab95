package levels

import (
	"strings"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/grid"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/movable"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/rules"
)

// ParseMovables reads the "movable" list. Non-object items are skipped
// here and reported by Validate.
func ParseMovables(raw any) []movable.Spec {
	items, _ := raw.([]any)
	var out []movable.Spec
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}

		spec := movable.NewSpec()
		spec.Blocked = parseBlocked(m["blocked"])
		if v, ok := m["can_push"]; ok {
			spec.CanPush = truthy(v)
		}
		if v, ok := m["can_be_pushed_by"]; ok {
			spec.CanBePushedBy = truthy(v)
		}
		spec.Connected = truthy(m["connected"])

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
		out = append(out, spec)
	}
	return out
}

// parseBlocked accepts a letter string ("ud") or a list of names.
func parseBlocked(raw any) grid.SideSet {
	var set grid.SideSet
	switch v := raw.(type) {
	case string:
		for _, r := range strings.ToLower(v) {
			if side, ok := grid.ParseSide(string(r)); ok {
				set = set.With(side)
			}
		}
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				continue
			}
			if side, ok := grid.ParseSide(s); ok {
				set = set.With(side)
			}
		}
	}
	return set
}
