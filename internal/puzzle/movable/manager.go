// Package movable owns the pushable objects of a level and resolves a
// player's attempt to move into them.
package movable

import (
	"maps"
	"sort"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/grid"
)

// Object is a single pushable block. It is a plain value; copying it
// copies everything.
type Object struct {
	Pos           grid.Coord
	Blocked       grid.SideSet // sides that refuse to be pushed
	CanPush       bool         // may push the next object of a chain
	CanBePushedBy bool         // may be pushed by another object
	Group         int          // rigid group id, 0 = not grouped
}

// Grouped reports whether the object belongs to a rigid group.
func (o Object) Grouped() bool { return o.Group != 0 }

// State is an immutable snapshot of object positions.
// Snapshots share storage with the manager until it next mutates.
type State struct {
	objects map[grid.Coord]Object
}

// Len returns the number of objects in the snapshot.
func (s State) Len() int { return len(s.objects) }

// At returns the object at c in the snapshot.
func (s State) At(c grid.Coord) (Object, bool) {
	obj, ok := s.objects[c]
	return obj, ok
}

// Manager keeps the position -> object map of a level plus the initial
// layout used by Reset.
type Manager struct {
	objects map[grid.Coord]Object
	initial map[grid.Coord]Object

	// shared is set while objects is referenced by a State; the next write
	// clones the map first.
	shared bool
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{
		objects: make(map[grid.Coord]Object),
		initial: make(map[grid.Coord]Object),
	}
}

// mutable returns the object map, cloning it if a snapshot still refers to it.
func (m *Manager) mutable() map[grid.Coord]Object {
	if m.shared {
		m.objects = maps.Clone(m.objects)
		if m.objects == nil {
			m.objects = make(map[grid.Coord]Object)
		}
		m.shared = false
	}
	return m.objects
}

// Add places an object and records it in the initial layout.
func (m *Manager) Add(obj Object) {
	m.mutable()[obj.Pos] = obj
	m.initial[obj.Pos] = obj
}

// At returns the object at c.
func (m *Manager) At(c grid.Coord) (Object, bool) {
	obj, ok := m.objects[c]
	return obj, ok
}

// Has reports whether an object occupies c.
func (m *Manager) Has(c grid.Coord) bool {
	_, ok := m.objects[c]
	return ok
}

// Len returns the number of objects.
func (m *Manager) Len() int { return len(m.objects) }

// IsEmpty reports whether the level has no objects.
func (m *Manager) IsEmpty() bool { return len(m.objects) == 0 }

// Positions returns every occupied cell sorted by row, then column.
func (m *Manager) Positions() []grid.Coord {
	out := make([]grid.Coord, 0, len(m.objects))
	for pos := range m.objects {
		out = append(out, pos)
	}
	sortCoords(out)
	return out
}

// GroupPositions returns the current cells of a rigid group.
func (m *Manager) GroupPositions(group int) []grid.Coord {
	if group == 0 {
		return nil
	}
	var out []grid.Coord
	for pos, obj := range m.objects {
		if obj.Group == group {
			out = append(out, pos)
		}
	}
	sortCoords(out)
	return out
}

// Groups returns group id -> member cells.
func (m *Manager) Groups() map[int][]grid.Coord {
	groups := make(map[int][]grid.Coord)
	for pos, obj := range m.objects {
		if obj.Grouped() {
			groups[obj.Group] = append(groups[obj.Group], pos)
		}
	}
	for _, cells := range groups {
		sortCoords(cells)
	}
	return groups
}

// Snapshot captures the current positions.
func (m *Manager) Snapshot() State {
	m.shared = true
	return State{objects: m.objects}
}

// Restore replaces the current positions with a snapshot. The zero State
// empties the manager.
func (m *Manager) Restore(s State) {
	if s.objects == nil {
		m.objects = make(map[grid.Coord]Object)
		m.shared = false
		return
	}
	m.objects = s.objects
	m.shared = true
}

// Reset moves every object back to its initial position.
func (m *Manager) Reset() {
	m.objects = maps.Clone(m.initial)
	if m.objects == nil {
		m.objects = make(map[grid.Coord]Object)
	}
	m.shared = false
}

// Clear removes all objects and forgets the initial layout.
func (m *Manager) Clear() {
	m.objects = make(map[grid.Coord]Object)
	m.initial = make(map[grid.Coord]Object)
	m.shared = false
}

func sortCoords(cs []grid.Coord) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Y != cs[j].Y {
			return cs[i].Y < cs[j].Y
		}
		return cs[i].X < cs[j].X
	})
}
