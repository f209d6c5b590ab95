package rules

import (
	"testing"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/grid"
)

func path(coords ...[2]int) []grid.Coord {
	out := make([]grid.Coord, len(coords))
	for i, c := range coords {
		out[i] = grid.C(c[0], c[1])
	}
	return out
}

func ctxFor(p []grid.Coord) Context {
	return Context{
		Path:    p,
		Pos:     p[len(p)-1],
		Grid:    grid.Grid{Cols: 5, Rows: 5},
		History: []grid.Side{},
	}
}

var (
	a = grid.C(0, 0)
	b = grid.C(1, 0)
	c = grid.C(2, 0)
)

func TestOrder(t *testing.T) {
	ctx := ctxFor(path([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{0, 0}))

	tests := []struct {
		name  string
		cells []grid.Coord
		want  bool
	}{
		{"first visits increase", []grid.Coord{a, b, c}, true},
		{"revisit does not reorder", []grid.Coord{b, c}, true},
		{"reverse order", []grid.Coord{c, a}, false},
		{"unvisited cell", []grid.Coord{a, grid.C(4, 4)}, false},
		{"duplicate cell", []grid.Coord{a, a}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(Order{Cells: grid.Cells(tt.cells...)}, ctx)
			if got != tt.want {
				t.Errorf("order %v = %v, want %v", tt.cells, got, tt.want)
			}
		})
	}
}

func TestNoRevisit(t *testing.T) {
	ctx := ctxFor(path([2]int{0, 0}, [2]int{1, 0}, [2]int{0, 0}))

	if Evaluate(NoRevisit{}, ctx) {
		t.Error("revisiting (0,0) should fail")
	}
	if !Evaluate(NoRevisit{Except: grid.Cells(a)}, ctx) {
		t.Error("(0,0) is excepted")
	}
	if !Evaluate(NoRevisit{Except: grid.Symbol(grid.CellsCorners)}, ctx) {
		t.Error("corners include (0,0)")
	}
}

func TestVisit(t *testing.T) {
	ctx := ctxFor(path([2]int{0, 0}, [2]int{1, 0}, [2]int{1, 0}, [2]int{2, 0}))
	cells := grid.Cells(b, c)

	tests := []struct {
		name string
		cond Visit
		want bool
	}{
		{"visited at least once", Visit{Cells: cells, Count: 1, Op: OpGe}, true},
		{"exactly twice, all", Visit{Cells: cells, Count: 2, Op: OpEq}, false},
		{"exactly twice, any", Visit{Cells: cells, Match: MatchAny, Count: 2, Op: OpEq}, true},
		{"avoid", Visit{Cells: grid.Cells(grid.C(4, 4)), Count: 0, Op: OpEq}, true},
		{"avoid visited", Visit{Cells: cells, Match: MatchAny, Count: 0, Op: OpEq}, false},
		{"bounds", Visit{Cells: cells, HasBounds: true, Min: 1, Max: 2}, true},
		{"bounds too tight", Visit{Cells: cells, HasBounds: true, Min: 2, Max: MaxVisits}, false},
		{"empty cell set", Visit{Count: 1, Op: OpGe}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.cond, ctx); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAtSteps(t *testing.T) {
	// index:       0       1       2       3       4
	ctx := ctxFor(path([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{1, 0}, [2]int{1, 1}))
	two := 2
	one := 1

	tests := []struct {
		name string
		cond AtSteps
		want bool
	}{
		{"require single step", AtSteps{Cells: grid.Cells(c), Steps: StepSpec{Step: &two}}, true},
		{"require wrong step", AtSteps{Cells: grid.Cells(c), Steps: StepSpec{Step: &one}}, false},
		{"require every listed step", AtSteps{Cells: grid.Cells(b), Steps: StepSpec{Steps: []int{1, 3}}}, true},
		{"require range partially missed", AtSteps{Cells: grid.Cells(b), Steps: StepSpec{HasRange: true, RangeLo: 1, RangeHi: 3}}, false},
		{"avoid hit", AtSteps{Cells: grid.Cells(b), Avoid: true, Steps: StepSpec{Step: &one}}, false},
		{"avoid miss", AtSteps{Cells: grid.Cells(b), Avoid: true, Steps: StepSpec{Step: &two}}, true},
		{"empty target set on visited cell", AtSteps{Cells: grid.Cells(b)}, true},
		{"empty target set on unvisited cell", AtSteps{Cells: grid.Cells(grid.C(4, 4))}, false},
		{"expr odd", AtSteps{Cells: grid.Cells(b), Steps: NewExprSteps("odd")}, true},
		{"expr even", AtSteps{Cells: grid.Cells(b), Steps: NewExprSteps("even")}, false},
		{"expr any", AtSteps{Cells: grid.Cells(b, a), Match: MatchAny, Steps: NewExprSteps("even")}, true},
		{"expr avoid prime", AtSteps{Cells: grid.Cells(c), Avoid: true, Steps: NewExprSteps("prime")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.cond, ctx); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAtStepsHorizon(t *testing.T) {
	// b is entered at index 1 and 3; a horizon of 2 hides index 3.
	ctx := ctxFor(path([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{1, 0}))
	cond := AtSteps{Cells: grid.Cells(b), Avoid: true, Steps: NewExprSteps("div:3")}

	if Evaluate(cond, ctx) {
		t.Error("index 3 is divisible by 3 and must be avoided")
	}
	ctx.Horizon = 2
	if !Evaluate(cond, ctx) {
		t.Error("indices past the horizon are never selected")
	}
}

func TestConsecutiveAndEnd(t *testing.T) {
	ctx := ctxFor(path([2]int{0, 0}, [2]int{0, 0}, [2]int{0, 0}, [2]int{1, 0}))

	if !Evaluate(Consecutive{Cells: grid.Cells(a), Count: 3}, ctx) {
		t.Error("three in a row at (0,0)")
	}
	if Evaluate(Consecutive{Cells: grid.Cells(a, b), Count: 2}, ctx) {
		t.Error("(1,0) has no run of two")
	}
	if !Evaluate(Consecutive{Cells: grid.Cells(a, b), Match: MatchAny, Count: 2}, ctx) {
		t.Error("any should pass on (0,0)")
	}
	if !Evaluate(EndAt{Cells: grid.Cells(b)}, ctx) {
		t.Error("player ends on (1,0)")
	}
	if Evaluate(EndAt{Cells: grid.Symbol(grid.CellsCenter)}, ctx) {
		t.Error("player is not on the center")
	}
}

func TestTotalSteps(t *testing.T) {
	ctx := ctxFor(path([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}))

	if !Evaluate(TotalSteps{Count: 2, Op: OpEq}, ctx) {
		t.Error("two moves taken")
	}
	if Evaluate(TotalSteps{Count: 3, Op: OpGe}, ctx) {
		t.Error("fewer than three moves")
	}
}

func TestGroupLogic(t *testing.T) {
	ctx := ctxFor(path([2]int{0, 0}))
	yes := EndAt{Cells: grid.Cells(a)}
	no := EndAt{Cells: grid.Cells(b)}

	tests := []struct {
		name  string
		logic Logic
		items []Condition
		want  bool
	}{
		{"and", LogicAnd, []Condition{yes, yes}, true},
		{"and fails", LogicAnd, []Condition{yes, no}, false},
		{"or", LogicOr, []Condition{no, yes}, true},
		{"or empty", LogicOr, nil, false},
		{"not", LogicNot, []Condition{no}, true},
		{"not empty", LogicNot, nil, true},
		{"not uses first item only", LogicNot, []Condition{yes, no}, false},
		{"xor", LogicXor, []Condition{yes, no}, true},
		{"xor two", LogicXor, []Condition{yes, yes}, false},
		{"nand", LogicNand, []Condition{yes, no}, true},
		{"nor", LogicNor, []Condition{no, no}, true},
		{"unknown", LogicUnknown, []Condition{yes}, false},
		{"nested", LogicOr, []Condition{Group{Logic: LogicAnd, Items: []Condition{yes, yes}}, no}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(Group{Logic: tt.logic, Items: tt.items}, ctx)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnknownCheckFails(t *testing.T) {
	ctx := ctxFor(path([2]int{0, 0}))
	if Evaluate(Unknown{Name: "teleport"}, ctx) {
		t.Error("unknown checks never hold")
	}
	if !CheckAll(nil, ctx) {
		t.Error("no conditions means victory")
	}
	if CheckAll([]Condition{EndAt{Cells: grid.Cells(a)}, Unknown{}}, ctx) {
		t.Error("one failing condition fails the set")
	}
}

func TestSequenceNeedsHistory(t *testing.T) {
	ctx := ctxFor(path([2]int{0, 0}))
	ctx.History = nil
	if Evaluate(Sequence{}, ctx) {
		t.Error("nil history must fail")
	}
	ctx.History = []grid.Side{}
	if !Evaluate(Sequence{}, ctx) {
		t.Error("empty sequence matches an empty history")
	}
}

func TestConditionCells(t *testing.T) {
	conds := []Condition{
		Visit{Cells: grid.Cells(a, b)},
		Group{Items: []Condition{EndAt{Cells: grid.Cells(b, c)}}},
		NoRevisit{Except: grid.Cells(grid.C(4, 4))},
	}
	got := ConditionCells(conds, grid.Grid{Cols: 5, Rows: 5})
	want := []grid.Coord{a, b, c}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}
