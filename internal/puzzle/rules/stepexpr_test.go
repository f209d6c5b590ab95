package rules

import "testing"

func TestParseStepExpr(t *testing.T) {
	tests := []struct {
		expr string
		step int
		want bool
	}{
		{"even", 0, true},
		{"even", 3, false},
		{"odd", 3, true},
		{"prime", 1, false},
		{"prime", 2, true},
		{"prime", 9, false},
		{"prime", 13, true},
		{"div:3", 9, true},
		{"div:3", 10, false},
		{"div:0", 0, false},
		{"mod:4:1", 5, true},
		{"mod:4:1", 6, false},
		{"mod:0:0", 0, false},
		{"range:2:4", 4, true},
		{"range:2:4", 5, false},
		{"gt:3", 3, false},
		{"gte:3", 3, true},
		{"lt:3", 2, true},
		{"lte:3", 4, false},
		{"!even", 3, true},
		{"!!even", 4, true},
		{"even&div:3", 6, true},
		{"even&div:3", 4, false},
		{"prime|div:5", 10, true},
		{"prime|div:5", 9, false},
		{" even & !div:4 | range:1:1 ", 1, true},
		{" even & !div:4 | range:1:1 ", 2, true},
		{" even & !div:4 | range:1:1 ", 8, false},
		{"bogus", 2, false},
		{"div:x", 2, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		if got := ParseStepExpr(tt.expr).Match(tt.step); got != tt.want {
			t.Errorf("ParseStepExpr(%q).Match(%d) = %v, want %v", tt.expr, tt.step, got, tt.want)
		}
	}
}

func TestStepSpecSetAgreesWithMatches(t *testing.T) {
	for _, expr := range []string{"even", "prime", "odd&gt:10", "mod:7:3|range:20:25"} {
		spec := NewExprSteps(expr)
		set := spec.Set(DefaultStepHorizon)
		for i := 0; i < DefaultStepHorizon; i++ {
			if set[i] != spec.Matches(i) {
				t.Fatalf("%q disagrees at %d", expr, i)
			}
		}
	}
}

func TestStepSpecFormat(t *testing.T) {
	five := 5
	tests := []struct {
		name string
		spec StepSpec
		want string
	}{
		{"expr", NewExprSteps("even&!div:3"), "2n&!÷3"},
		{"odd", NewExprSteps("odd|prime"), "2n+1|P"},
		{"range expr", NewExprSteps("range:2:4"), "2:4"},
		{"single", StepSpec{Step: &five}, "5"},
		{"short list", StepSpec{Steps: []int{1, 2, 3}}, "1,2,3"},
		{"long list", StepSpec{Steps: []int{9, 2, 7, 4}}, "2..9"},
		{"range", StepSpec{HasRange: true, RangeLo: 3, RangeHi: 6}, "3-6"},
		{"mixed", StepSpec{Step: &five, HasRange: true, RangeLo: 7, RangeHi: 8}, "5,7-8"},
		{"empty", StepSpec{}, "?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.Format(); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}
