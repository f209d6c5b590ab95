package movable

import (
	"testing"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/grid"
)

func box(x, y int) Object {
	return Object{Pos: grid.C(x, y), CanPush: true, CanBePushedBy: true}
}

func open(cols, rows int) Terrain {
	return Terrain{Grid: grid.Grid{Cols: cols, Rows: rows}}
}

func TestTryPushSimpleMoves(t *testing.T) {
	m := NewManager()

	res := m.TryPush(grid.C(0, 0), grid.SideRight, open(5, 5))
	if !res.CanMove || res.TargetPos != grid.C(1, 0) {
		t.Errorf("free step: %+v", res)
	}

	res = m.TryPush(grid.C(0, 0), grid.SideLeft, open(5, 5))
	if !res.OutOfBounds || res.CanMove {
		t.Errorf("leaving the grid: %+v", res)
	}
}

func TestTryPushPoisonBeforeWall(t *testing.T) {
	m := NewManager()
	m.Add(box(1, 0))
	terrain := open(5, 5)
	terrain.Poison = []grid.Barrier{{Cell: grid.C(1, 0), Side: grid.SideLeft, Kind: grid.KindOuter}}
	terrain.Walls = []grid.Barrier{{Cell: grid.C(0, 0), Side: grid.SideRight, Kind: grid.KindBoth}}

	res := m.TryPush(grid.C(0, 0), grid.SideRight, terrain)
	if !res.HitPoison || res.BlockedByWall || res.CanMove {
		t.Errorf("poison should be reported first: %+v", res)
	}
	if !m.Has(grid.C(1, 0)) {
		t.Error("box must not move when the player dies")
	}
}

func TestTryPushWall(t *testing.T) {
	m := NewManager()
	terrain := open(5, 5)
	terrain.Walls = []grid.Barrier{{Cell: grid.C(0, 0), Side: grid.SideRight, Kind: grid.KindBoth}}

	res := m.TryPush(grid.C(0, 0), grid.SideRight, terrain)
	if !res.BlockedByWall || res.CanMove {
		t.Errorf("wall: %+v", res)
	}
}

func TestChainPush(t *testing.T) {
	m := NewManager()
	m.Add(box(1, 0))
	m.Add(box(2, 0))

	res := m.TryPush(grid.C(0, 0), grid.SideRight, open(5, 1))
	if !res.CanMove {
		t.Fatalf("chain should move: %+v", res)
	}
	if len(res.MovesMade) != 2 {
		t.Fatalf("expected 2 moves, got %v", res.MovesMade)
	}
	// Far end moves first.
	if res.MovesMade[0].From != grid.C(2, 0) || res.MovesMade[0].To != grid.C(3, 0) {
		t.Errorf("first move = %+v, want (2,0)->(3,0)", res.MovesMade[0])
	}
	if m.Has(grid.C(1, 0)) || !m.Has(grid.C(2, 0)) || !m.Has(grid.C(3, 0)) {
		t.Errorf("positions after push: %v", m.Positions())
	}
}

func TestChainPushAtomicity(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(m *Manager) Terrain
		blocked bool
	}{
		{
			name: "far box against the border",
			setup: func(m *Manager) Terrain {
				m.Add(box(1, 0))
				m.Add(box(2, 0))
				return open(3, 1)
			},
			blocked: true,
		},
		{
			name: "far box against a wall",
			setup: func(m *Manager) Terrain {
				m.Add(box(1, 0))
				m.Add(box(2, 0))
				terrain := open(5, 1)
				terrain.Walls = []grid.Barrier{{Cell: grid.C(3, 0), Side: grid.SideLeft, Kind: grid.KindOuter}}
				return terrain
			},
			blocked: true,
		},
		{
			name: "far box over poison",
			setup: func(m *Manager) Terrain {
				m.Add(box(1, 0))
				m.Add(box(2, 0))
				terrain := open(5, 1)
				terrain.Poison = []grid.Barrier{{Cell: grid.C(2, 0), Side: grid.SideRight, Kind: grid.KindInner}}
				return terrain
			},
			blocked: true,
		},
		{
			name: "first box cannot push",
			setup: func(m *Manager) Terrain {
				first := box(1, 0)
				first.CanPush = false
				m.Add(first)
				m.Add(box(2, 0))
				return open(5, 1)
			},
			blocked: true,
		},
		{
			name: "second box refuses other boxes",
			setup: func(m *Manager) Terrain {
				m.Add(box(1, 0))
				second := box(2, 0)
				second.CanBePushedBy = false
				m.Add(second)
				return open(5, 1)
			},
			blocked: true,
		},
		{
			name: "second box blocked on its left side",
			setup: func(m *Manager) Terrain {
				m.Add(box(1, 0))
				second := box(2, 0)
				second.Blocked = grid.NewSideSet(grid.SideLeft)
				m.Add(second)
				return open(5, 1)
			},
			blocked: true,
		},
		{
			name: "grouped box mid chain",
			setup: func(m *Manager) Terrain {
				m.Add(box(1, 0))
				grouped := box(2, 0)
				grouped.Group = 1
				m.Add(grouped)
				return open(5, 1)
			},
			blocked: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager()
			terrain := tt.setup(m)
			before := m.Positions()

			res := m.TryPush(grid.C(0, 0), grid.SideRight, terrain)
			if res.BlockedByBox != tt.blocked || res.CanMove == tt.blocked {
				t.Fatalf("result = %+v", res)
			}

			after := m.Positions()
			if len(before) != len(after) {
				t.Fatalf("object count changed: %v -> %v", before, after)
			}
			for i := range before {
				if before[i] != after[i] {
					t.Errorf("object moved on a failed push: %v -> %v", before, after)
					break
				}
			}
		})
	}
}

func TestPushBlockedSideFacingPlayer(t *testing.T) {
	m := NewManager()
	b := box(1, 0)
	b.Blocked = grid.NewSideSet(grid.SideLeft)
	m.Add(b)

	res := m.TryPush(grid.C(0, 0), grid.SideRight, open(5, 1))
	if !res.BlockedByBox {
		t.Errorf("left-blocked box pushed from the left: %+v", res)
	}

	// Pushing from the right side is fine.
	res = m.TryPush(grid.C(2, 0), grid.SideLeft, open(5, 1))
	if !res.CanMove || !m.Has(grid.C(0, 0)) {
		t.Errorf("push from the right: %+v, positions %v", res, m.Positions())
	}
}

func TestGroupPush(t *testing.T) {
	m := Build([]Spec{{
		Cells:         []grid.Coord{grid.C(1, 1), grid.C(2, 1), grid.C(2, 2)},
		CanPush:       true,
		CanBePushedBy: true,
		Connected:     true,
	}})

	res := m.TryPush(grid.C(0, 1), grid.SideRight, open(5, 5))
	if !res.CanMove || len(res.MovesMade) != 3 {
		t.Fatalf("group push: %+v", res)
	}
	if res.TargetPos != grid.C(1, 1) {
		t.Errorf("target = %v, want the touched cell (1,1)", res.TargetPos)
	}
	want := []grid.Coord{grid.C(2, 1), grid.C(3, 1), grid.C(3, 2)}
	got := m.GroupPositions(1)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("group positions = %v, want %v", got, want)
			break
		}
	}
}

func TestGroupPushAtomicity(t *testing.T) {
	m := Build([]Spec{{
		Cells:         []grid.Coord{grid.C(1, 0), grid.C(2, 0), grid.C(2, 1)},
		CanPush:       true,
		CanBePushedBy: true,
		Connected:     true,
	}})

	// (2,1) moving up is fine but (1,0) and (2,0) would leave the grid.
	res := m.TryPush(grid.C(1, 1), grid.SideUp, open(5, 5))
	if res.CanMove || !res.BlockedByBox || !res.OutOfBounds {
		t.Fatalf("expected an out-of-bounds group failure, got %+v", res)
	}
	want := []grid.Coord{grid.C(1, 0), grid.C(2, 0), grid.C(2, 1)}
	got := m.Positions()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("no member may move: got %v", got)
		}
	}
}

func TestGroupPushForeignOccupant(t *testing.T) {
	m := Build([]Spec{
		{Cells: []grid.Coord{grid.C(1, 0), grid.C(1, 1)}, CanPush: true, CanBePushedBy: true, Connected: true},
		{Cells: []grid.Coord{grid.C(2, 1)}, CanPush: true, CanBePushedBy: true},
	})

	res := m.TryPush(grid.C(0, 0), grid.SideRight, open(5, 5))
	if res.CanMove || !res.BlockedByBox {
		t.Fatalf("group blocked by a loose box should fail: %+v", res)
	}
}

func TestGroupPushWall(t *testing.T) {
	m := Build([]Spec{{
		Cells: []grid.Coord{grid.C(1, 0), grid.C(1, 1)}, CanPush: true, CanBePushedBy: true, Connected: true,
	}})
	terrain := open(5, 5)
	terrain.Walls = []grid.Barrier{{Cell: grid.C(1, 1), Side: grid.SideRight, Kind: grid.KindInner}}

	res := m.TryPush(grid.C(0, 0), grid.SideRight, terrain)
	if !res.BlockedByWall || !res.BlockedByBox || res.CanMove {
		t.Errorf("group wall: %+v", res)
	}
}

func TestSnapshotRestore(t *testing.T) {
	m := NewManager()
	m.Add(box(1, 0))

	snap := m.Snapshot()
	m.TryPush(grid.C(0, 0), grid.SideRight, open(5, 1))

	if !m.Has(grid.C(2, 0)) {
		t.Fatal("box should have moved")
	}
	if _, ok := snap.At(grid.C(1, 0)); !ok {
		t.Error("snapshot must not see later moves")
	}

	m.Restore(snap)
	if !m.Has(grid.C(1, 0)) || m.Has(grid.C(2, 0)) {
		t.Errorf("restore: %v", m.Positions())
	}

	// Mutating after restore must not leak into the snapshot.
	m.TryPush(grid.C(0, 0), grid.SideRight, open(5, 1))
	if _, ok := snap.At(grid.C(2, 0)); ok {
		t.Error("snapshot changed after restore + push")
	}

	m.Restore(State{})
	if !m.IsEmpty() {
		t.Error("zero state should empty the manager")
	}

	m.Reset()
	if !m.Has(grid.C(1, 0)) || m.Len() != 1 {
		t.Errorf("reset: %v", m.Positions())
	}

	m.Clear()
	m.Reset()
	if !m.IsEmpty() {
		t.Error("clear should forget the initial layout")
	}
}

func TestBuildGroups(t *testing.T) {
	m := Build([]Spec{
		{Cells: []grid.Coord{grid.C(0, 0)}, Connected: true},
		{Ranges: []grid.Range{{From: grid.C(2, 2), To: grid.C(3, 2)}}, Connected: true},
		{Cells: []grid.Coord{grid.C(4, 4)}},
	})

	groups := m.Groups()
	if len(groups) != 2 {
		t.Fatalf("groups = %v", groups)
	}
	if len(groups[2]) != 2 {
		t.Errorf("second group should hold the range, got %v", groups[2])
	}
	if obj, _ := m.At(grid.C(4, 4)); obj.Grouped() {
		t.Error("unconnected spec must not be grouped")
	}
}
