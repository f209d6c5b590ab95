package movable

import "github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/grid"

// Spec declares one batch of objects as written in a level file.
type Spec struct {
	Cells         []grid.Coord
	Ranges        []grid.Range
	Blocked       grid.SideSet
	CanPush       bool
	CanBePushedBy bool
	Connected     bool // all cells of this spec form one rigid group
}

// NewSpec returns a spec with the level-file defaults (pushable both ways).
func NewSpec() Spec {
	return Spec{CanPush: true, CanBePushedBy: true}
}

// Build creates a manager from specs. Each connected spec gets the next
// group id, starting at 1.
func Build(specs []Spec) *Manager {
	m := NewManager()
	nextGroup := 0

	for _, s := range specs {
		group := 0
		if s.Connected {
			nextGroup++
			group = nextGroup
		}

		cells := append([]grid.Coord(nil), s.Cells...)
		for _, r := range s.Ranges {
			cells = append(cells, r.Cells()...)
		}

		for _, c := range cells {
			m.Add(Object{
				Pos:           c,
				Blocked:       s.Blocked,
				CanPush:       s.CanPush,
				CanBePushedBy: s.CanBePushedBy,
				Group:         group,
			})
		}
	}
	return m
}
