package movable

import (
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/grid"
)

// PathCheck decides whether a barrier list blocks a single step.
type PathCheck func(cur, next grid.Coord, barriers []grid.Barrier) bool

// Terrain bundles the static obstacles a push is resolved against.
type Terrain struct {
	Grid   grid.Grid
	Walls  []grid.Barrier
	Poison []grid.Barrier

	// PathClear defaults to grid.IsPathClear.
	PathClear PathCheck
}

func (t Terrain) clear(cur, next grid.Coord, barriers []grid.Barrier) bool {
	if t.PathClear != nil {
		return t.PathClear(cur, next, barriers)
	}
	return grid.IsPathClear(cur, next, barriers)
}

// Move records one object displacement.
type Move struct {
	From grid.Coord
	To   grid.Coord
}

// PushResult is the outcome of TryPush. At most one of the failure flags
// explains why CanMove is false, except for group pushes which also set
// OutOfBounds or BlockedByWall alongside BlockedByBox.
type PushResult struct {
	CanMove       bool
	HitPoison     bool
	BlockedByWall bool
	BlockedByBox  bool
	OutOfBounds   bool
	MovesMade     []Move
	TargetPos     grid.Coord
}

// TryPush resolves the player stepping from player through dir.
// Objects are only mutated when the whole push succeeds.
func (m *Manager) TryPush(player grid.Coord, dir grid.Side, t Terrain) PushResult {
	target := player.Step(dir)
	res := PushResult{TargetPos: target}

	if !t.Grid.Contains(target) {
		res.OutOfBounds = true
		return res
	}

	// Poison on the player's own step wins over everything else.
	if !t.clear(player, target, t.Poison) {
		res.HitPoison = true
		return res
	}
	if !t.clear(player, target, t.Walls) {
		res.BlockedByWall = true
		return res
	}

	obj, ok := m.At(target)
	if !ok {
		res.CanMove = true
		return res
	}

	if obj.Blocked.Has(dir.Opposite()) {
		res.BlockedByBox = true
		return res
	}

	if obj.Grouped() {
		return m.pushGroup(obj.Group, target, dir, t)
	}

	chain := m.collectChain(target, dir, t)
	if chain == nil {
		res.BlockedByBox = true
		return res
	}

	// Far end first so no object lands on a cell that is still occupied.
	objects := m.mutable()
	moves := make([]Move, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		from := chain[i]
		o := objects[from]
		delete(objects, from)
		o.Pos = from.Step(dir)
		objects[o.Pos] = o
		moves = append(moves, Move{From: from, To: o.Pos})
	}

	res.CanMove = true
	res.MovesMade = moves
	return res
}

// collectChain walks from start in dir gathering consecutive ungrouped
// objects. It returns nil if the chain cannot move.
func (m *Manager) collectChain(start grid.Coord, dir grid.Side, t Terrain) []grid.Coord {
	pushSide := dir.Opposite()
	var chain []grid.Coord
	cur := start

	for {
		obj, ok := m.At(cur)
		if !ok {
			break
		}
		if obj.Grouped() && cur != start {
			return nil
		}
		chain = append(chain, cur)

		next := cur.Step(dir)
		if !t.Grid.Contains(next) {
			return nil
		}
		if !t.clear(cur, next, t.Walls) || !t.clear(cur, next, t.Poison) {
			return nil
		}

		if nextObj, ok := m.At(next); ok {
			switch {
			case nextObj.Grouped():
				return nil
			case !obj.CanPush:
				return nil
			case !nextObj.CanBePushedBy:
				return nil
			case nextObj.Blocked.Has(pushSide):
				return nil
			}
		}
		cur = next
	}

	return chain
}

// pushGroup moves every member of a rigid group by one step, or nothing.
func (m *Manager) pushGroup(group int, touched grid.Coord, dir grid.Side, t Terrain) PushResult {
	res := PushResult{TargetPos: touched}
	members := m.GroupPositions(group)

	inGroup := make(map[grid.Coord]bool, len(members))
	for _, pos := range members {
		inGroup[pos] = true
	}

	for _, pos := range members {
		next := pos.Step(dir)

		if !t.Grid.Contains(next) {
			res.OutOfBounds = true
			res.BlockedByBox = true
			return res
		}
		if !t.clear(pos, next, t.Walls) {
			res.BlockedByWall = true
			res.BlockedByBox = true
			return res
		}
		if !t.clear(pos, next, t.Poison) {
			res.BlockedByBox = true
			return res
		}
		if m.Has(next) && !inGroup[next] {
			res.BlockedByBox = true
			return res
		}
	}

	// Lift every member before placing any, so overlaps inside the group
	// never collide.
	objects := m.mutable()
	moved := make([]Object, 0, len(members))
	moves := make([]Move, 0, len(members))
	for _, pos := range members {
		o := objects[pos]
		delete(objects, pos)
		o.Pos = pos.Step(dir)
		moved = append(moved, o)
		moves = append(moves, Move{From: pos, To: o.Pos})
	}
	for _, o := range moved {
		objects[o.Pos] = o
	}

	res.CanMove = true
	res.MovesMade = moves
	return res
}
