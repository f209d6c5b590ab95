package rules

import (
	"slices"
	"strconv"
	"strings"
)

// DefaultStepHorizon bounds the materialised step set of an expression.
const DefaultStepHorizon = 500

// StepExpr is a compiled step predicate such as "even&!div:3|prime".
type StepExpr interface {
	Match(step int) bool
}

type (
	anyExpr  []StepExpr
	allExpr  []StepExpr
	notExpr  struct{ inner StepExpr }
	atomExpr func(int) bool
)

func (e anyExpr) Match(n int) bool {
	for _, sub := range e {
		if sub.Match(n) {
			return true
		}
	}
	return false
}

func (e allExpr) Match(n int) bool {
	for _, sub := range e {
		if !sub.Match(n) {
			return false
		}
	}
	return true
}

func (e notExpr) Match(n int) bool { return !e.inner.Match(n) }
func (f atomExpr) Match(n int) bool { return f(n) }

var never atomExpr = func(int) bool { return false }

// ParseStepExpr compiles an expression. "|" binds loosest, then "&",
// then a "!" prefix. Atoms: even, odd, prime, div:N, mod:N:R,
// range:A:B, gt:N, lt:N, gte:N, lte:N. Unknown or malformed atoms
// never match; parsing itself never fails.
func ParseStepExpr(src string) StepExpr {
	src = strings.TrimSpace(src)

	if strings.Contains(src, "|") {
		parts := strings.Split(src, "|")
		out := make(anyExpr, len(parts))
		for i, p := range parts {
			out[i] = ParseStepExpr(p)
		}
		return out
	}
	if strings.Contains(src, "&") {
		parts := strings.Split(src, "&")
		out := make(allExpr, len(parts))
		for i, p := range parts {
			out[i] = ParseStepExpr(p)
		}
		return out
	}
	if rest, ok := strings.CutPrefix(src, "!"); ok {
		return notExpr{inner: ParseStepExpr(rest)}
	}
	return parseAtom(src)
}

func parseAtom(src string) StepExpr {
	switch src {
	case "even":
		return atomExpr(func(n int) bool { return n%2 == 0 })
	case "odd":
		return atomExpr(func(n int) bool { return n%2 != 0 })
	case "prime":
		return atomExpr(IsPrime)
	}

	name, args, _ := strings.Cut(src, ":")
	nums, ok := atoiAll(strings.Split(args, ":"))
	if !ok {
		return never
	}

	switch {
	case name == "div" && len(nums) == 1:
		d := nums[0]
		if d == 0 {
			return never
		}
		return atomExpr(func(n int) bool { return n%d == 0 })
	case name == "mod" && len(nums) == 2:
		d, r := nums[0], nums[1]
		if d == 0 {
			return never
		}
		return atomExpr(func(n int) bool { return floorMod(n, d) == r })
	case name == "range" && len(nums) == 2:
		lo, hi := nums[0], nums[1]
		return atomExpr(func(n int) bool { return lo <= n && n <= hi })
	case len(nums) == 1:
		v := nums[0]
		switch name {
		case "gt":
			return atomExpr(func(n int) bool { return n > v })
		case "lt":
			return atomExpr(func(n int) bool { return n < v })
		case "gte":
			return atomExpr(func(n int) bool { return n >= v })
		case "lte":
			return atomExpr(func(n int) bool { return n <= v })
		}
	}
	return never
}

func atoiAll(parts []string) ([]int, bool) {
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// floorMod keeps the sign of the divisor, so mod:3:2 matches -1.
func floorMod(n, d int) int {
	m := n % d
	if m != 0 && (m < 0) != (d < 0) {
		m += d
	}
	return m
}

// IsPrime reports whether n is a prime number.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	for i := 2; i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// StepSpec selects path indices for an at_steps condition. With Expr
// set the explicit fields are ignored.
type StepSpec struct {
	Expr     string
	Step     *int
	Steps    []int
	HasRange bool
	RangeLo  int
	RangeHi  int

	compiled StepExpr
}

// NewExprSteps returns a spec driven by a step expression.
func NewExprSteps(expr string) StepSpec {
	return StepSpec{Expr: expr, compiled: ParseStepExpr(expr)}
}

// HasExpr reports whether the spec uses a step expression.
func (s StepSpec) HasExpr() bool { return s.Expr != "" }

// Matches reports whether a single index is selected.
func (s StepSpec) Matches(step int) bool {
	if s.HasExpr() {
		expr := s.compiled
		if expr == nil {
			expr = ParseStepExpr(s.Expr)
		}
		return expr.Match(step)
	}
	if s.Step != nil && *s.Step == step {
		return true
	}
	if slices.Contains(s.Steps, step) {
		return true
	}
	return s.HasRange && s.RangeLo <= step && step <= s.RangeHi
}

// Set materialises the selected indices. Expressions are expanded over
// [0, horizon).
func (s StepSpec) Set(horizon int) map[int]bool {
	out := make(map[int]bool)
	if s.HasExpr() {
		expr := ParseStepExpr(s.Expr)
		for i := 0; i < horizon; i++ {
			if expr.Match(i) {
				out[i] = true
			}
		}
		return out
	}
	if s.Step != nil {
		out[*s.Step] = true
	}
	for _, v := range s.Steps {
		out[v] = true
	}
	if s.HasRange {
		for i := s.RangeLo; i <= s.RangeHi; i++ {
			out[i] = true
		}
	}
	return out
}

var exprGlyphs = strings.NewReplacer(
	"even", "2n",
	"odd", "2n+1",
	"prime", "P",
	"div:", "÷",
	"range:", "",
)

// Format renders the selection for requirement labels.
func (s StepSpec) Format() string {
	if s.HasExpr() {
		return exprGlyphs.Replace(s.Expr)
	}

	var parts []string
	if s.Step != nil {
		parts = append(parts, strconv.Itoa(*s.Step))
	}
	if len(s.Steps) > 0 {
		if len(s.Steps) <= 3 {
			strs := make([]string, len(s.Steps))
			for i, v := range s.Steps {
				strs[i] = strconv.Itoa(v)
			}
			parts = append(parts, strings.Join(strs, ","))
		} else {
			parts = append(parts, strconv.Itoa(slices.Min(s.Steps))+".."+strconv.Itoa(slices.Max(s.Steps)))
		}
	}
	if s.HasRange {
		parts = append(parts, strconv.Itoa(s.RangeLo)+"-"+strconv.Itoa(s.RangeHi))
	}
	if len(parts) == 0 {
		return "?"
	}
	return strings.Join(parts, ",")
}
