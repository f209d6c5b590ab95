package rules

// Operator is a numeric comparison.
type Operator uint8

const (
	OpEq Operator = iota
	OpGe
	OpLe
	OpGt
	OpLt
	OpNe
)

// ParseOperator reads "==", "=", ">=", "<=", ">", "<" or "!=".
func ParseOperator(s string) (Operator, bool) {
	switch s {
	case "==", "=":
		return OpEq, true
	case ">=":
		return OpGe, true
	case "<=":
		return OpLe, true
	case ">":
		return OpGt, true
	case "<":
		return OpLt, true
	case "!=":
		return OpNe, true
	}
	return OpEq, false
}

// Compare applies the operator to a (left) and b (right).
func (o Operator) Compare(a, b int) bool {
	switch o {
	case OpEq:
		return a == b
	case OpGe:
		return a >= b
	case OpLe:
		return a <= b
	case OpGt:
		return a > b
	case OpLt:
		return a < b
	case OpNe:
		return a != b
	}
	return false
}

// Symbol returns the glyph used in requirement text.
func (o Operator) Symbol() string {
	switch o {
	case OpEq:
		return "="
	case OpGe:
		return "≥"
	case OpLe:
		return "≤"
	case OpGt:
		return ">"
	case OpLt:
		return "<"
	case OpNe:
		return "≠"
	}
	return "?"
}

// String returns the level-file spelling.
func (o Operator) String() string {
	switch o {
	case OpEq:
		return "=="
	case OpGe:
		return ">="
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpLt:
		return "<"
	case OpNe:
		return "!="
	}
	return "?"
}
