// Package rules implements the level-completion rule engine: a closed set
// of condition types evaluated against the full movement record.
//
// The engine keeps no state between calls. Every evaluation re-derives
// its answer from the path, the move history and the player position.
package rules

import "github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/grid"

// Check names as they appear in level files.
const (
	CheckGroup       = "group"
	CheckVisit       = "visit"
	CheckAtSteps     = "at_steps"
	CheckEndAt       = "end_at"
	CheckOrder       = "order"
	CheckConsecutive = "consecutive"
	CheckNoRevisit   = "no_revisit"
	CheckTotalSteps  = "total_steps"
	CheckSequence    = "sequence"
)

// Condition is one node of a rule tree. The set of implementations is
// closed; Evaluate switches over all of them.
type Condition interface {
	// Check returns the level-file discriminator of the node.
	Check() string
	condition()
}

// Match selects how per-cell results are combined.
type Match uint8

const (
	MatchAll Match = iota
	MatchAny
)

// Logic is the combinator of a Group.
type Logic uint8

const (
	LogicAnd Logic = iota
	LogicOr
	LogicNot
	LogicXor
	LogicNand
	LogicNor
	LogicUnknown
)

// Group combines the results of nested conditions.
type Group struct {
	Logic Logic
	Items []Condition
}

// Visit bounds how often cells appear in the path.
type Visit struct {
	Cells grid.CellSpec
	Match Match

	// With HasBounds set every count must lie in [Min, Max];
	// otherwise counts are compared to Count with Op.
	HasBounds bool
	Min, Max  int

	Count int
	Op    Operator
}

// AtSteps ties cells to step indices of the path.
type AtSteps struct {
	Cells grid.CellSpec
	Match Match
	Avoid bool
	Steps StepSpec
}

// EndAt holds when the player stands on one of the cells.
type EndAt struct {
	Cells grid.CellSpec
}

// Order holds when the cells were first visited in list order.
type Order struct {
	Cells grid.CellSpec
}

// Consecutive requires a run of immediate repeat visits.
type Consecutive struct {
	Cells grid.CellSpec
	Match Match
	Count int
}

// NoRevisit forbids visiting any cell twice, except the listed ones.
type NoRevisit struct {
	Except grid.CellSpec
}

// TotalSteps compares the number of move attempts to Count.
type TotalSteps struct {
	Count int
	Op    Operator
}

// SeqCombine selects how Sequence alternatives are combined.
type SeqCombine uint8

const (
	SeqSingle SeqCombine = iota
	SeqAny
	SeqAll
)

// Sequence inspects the move history.
//
// Precedence: bounds (Min/Max), then an explicit count/operator, then
// Any/All alternatives matched with Mode, then Moves matched with Mode.
type Sequence struct {
	Moves       []grid.Side
	Mode        SeqMode
	Overlapping bool

	Min, Max *int

	Counted bool // count or operator given
	Count   int
	Op      Operator

	Combine      SeqCombine
	Alternatives [][]grid.Side
}

// Unknown stands for an unrecognised check. It never holds.
type Unknown struct {
	Name string
}

func (Group) Check() string       { return CheckGroup }
func (Visit) Check() string       { return CheckVisit }
func (AtSteps) Check() string     { return CheckAtSteps }
func (EndAt) Check() string       { return CheckEndAt }
func (Order) Check() string       { return CheckOrder }
func (Consecutive) Check() string { return CheckConsecutive }
func (NoRevisit) Check() string   { return CheckNoRevisit }
func (TotalSteps) Check() string  { return CheckTotalSteps }
func (Sequence) Check() string    { return CheckSequence }
func (u Unknown) Check() string   { return u.Name }

func (Group) condition()       {}
func (Visit) condition()       {}
func (AtSteps) condition()     {}
func (EndAt) condition()       {}
func (Order) condition()       {}
func (Consecutive) condition() {}
func (NoRevisit) condition()   {}
func (TotalSteps) condition()  {}
func (Sequence) condition()    {}
func (Unknown) condition()     {}

// HasCheck reports whether any top-level condition has the given check.
func HasCheck(conds []Condition, check string) bool {
	for _, c := range conds {
		if c.Check() == check {
			return true
		}
	}
	return false
}
