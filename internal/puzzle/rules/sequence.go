package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/grid"
)

// SeqMode says how a move sequence is matched against the history.
type SeqMode uint8

const (
	ModeContains SeqMode = iota
	ModeExact
	ModeStartsWith
	ModeEndsWith
	ModeNotContains
)

// ParseSeqMode reads a level-file mode; anything unknown is "contains".
func ParseSeqMode(s string) SeqMode {
	switch s {
	case "exact":
		return ModeExact
	case "starts_with":
		return ModeStartsWith
	case "ends_with":
		return ModeEndsWith
	case "not_contains":
		return ModeNotContains
	}
	return ModeContains
}

func (m SeqMode) String() string {
	switch m {
	case ModeExact:
		return "exact"
	case ModeStartsWith:
		return "starts_with"
	case ModeEndsWith:
		return "ends_with"
	case ModeNotContains:
		return "not_contains"
	}
	return "contains"
}

// Symbol returns the glyph used in requirement text.
func (m SeqMode) Symbol() string {
	switch m {
	case ModeExact:
		return "≡"
	case ModeStartsWith:
		return "⇒"
	case ModeEndsWith:
		return "⇐"
	case ModeNotContains:
		return "∌"
	}
	return "∋"
}

// CountOccurrences counts seq inside history. Without overlapping the
// scan resumes after each match.
func CountOccurrences(history, seq []grid.Side, overlapping bool) int {
	if len(seq) == 0 || len(seq) > len(history) {
		return 0
	}

	count := 0
	for i := 0; i <= len(history)-len(seq); {
		if slices.Equal(history[i:i+len(seq)], seq) {
			count++
			if overlapping {
				i++
			} else {
				i += len(seq)
			}
			continue
		}
		i++
	}
	return count
}

// MatchSequence applies a mode. An empty seq always matches.
func MatchSequence(history, seq []grid.Side, mode SeqMode, minCount int) bool {
	if len(seq) == 0 {
		return true
	}

	switch mode {
	case ModeExact:
		return slices.Equal(history, seq)
	case ModeStartsWith:
		return len(history) >= len(seq) && slices.Equal(history[:len(seq)], seq)
	case ModeEndsWith:
		return len(history) >= len(seq) && slices.Equal(history[len(history)-len(seq):], seq)
	case ModeNotContains:
		return CountOccurrences(history, seq, false) == 0
	}
	return CountOccurrences(history, seq, false) >= minCount
}

func (s Sequence) holds(history []grid.Side) bool {
	if history == nil {
		return false
	}

	if s.Min != nil || s.Max != nil {
		n := CountOccurrences(history, s.Moves, s.Overlapping)
		if s.Min != nil && n < *s.Min {
			return false
		}
		if s.Max != nil && n > *s.Max {
			return false
		}
		return true
	}

	if s.Counted {
		return s.Op.Compare(CountOccurrences(history, s.Moves, s.Overlapping), s.Count)
	}

	switch s.Combine {
	case SeqAny:
		for _, alt := range s.Alternatives {
			if MatchSequence(history, alt, s.Mode, 1) {
				return true
			}
		}
		return false
	case SeqAll:
		for _, alt := range s.Alternatives {
			if !MatchSequence(history, alt, s.Mode, 1) {
				return false
			}
		}
		return true
	}
	return MatchSequence(history, s.Moves, s.Mode, 1)
}

func arrows(moves []grid.Side) string {
	var b strings.Builder
	for _, m := range moves {
		b.WriteString(m.Arrow())
	}
	return b.String()
}

// Describe renders the compact label shown in the requirements panel,
// e.g. "∋↑↑ ×≥2" or "≡(↑→/→↑)".
func (s Sequence) Describe() string {
	suffix := ""
	if s.Mode == ModeContains {
		switch {
		case s.Min != nil && s.Max != nil:
			suffix = fmt.Sprintf(" ×%d-%d", *s.Min, *s.Max)
		case s.Min != nil:
			suffix = fmt.Sprintf(" ×≥%d", *s.Min)
		case s.Max != nil:
			suffix = fmt.Sprintf(" ×≤%d", *s.Max)
		case s.Counted && (s.Count != 1 || s.Op != OpGe):
			suffix = fmt.Sprintf(" ×%s%d", s.Op.Symbol(), s.Count)
		}
	}

	sym := s.Mode.Symbol()
	switch s.Combine {
	case SeqAny, SeqAll:
		parts := make([]string, len(s.Alternatives))
		for i, alt := range s.Alternatives {
			parts[i] = arrows(alt)
		}
		if s.Combine == SeqAny {
			return sym + "(" + strings.Join(parts, "/") + ")" + suffix
		}
		return sym + "[" + strings.Join(parts, "&") + "]" + suffix
	}
	return sym + arrows(s.Moves) + suffix
}
