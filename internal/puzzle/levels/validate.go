package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/levels/formats"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/rules"
)

// Validation codes.
const (
	CodeMissingStart      = "MISSING_START"
	CodeMissingAns        = "MISSING_ANS"
	CodeMissingConditions = "MISSING_CONDITIONS"
	CodeStartOutside      = "START_OUTSIDE_GRID"
	CodeMovableNotObject  = "MOVABLE_NOT_OBJECT"
	CodeMovableNoCoords   = "MOVABLE_NO_COORDS"
	CodeMissingGrid       = "MISSING_GRID"
	CodeUnknownType       = "UNKNOWN_TYPE"
	CodeEmptyCells        = "EMPTY_CELLS"
)

// ValidationError contains details about a validation finding.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Report collects the findings for one level. Warnings never block play.
type Report struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// OK reports whether the level has no errors.
func (r Report) OK() bool { return len(r.Errors) == 0 }

func (r *Report) errorf(code, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Code: code, Message: fmt.Sprintf(format, args...)})
}

func (r *Report) warnf(code, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Code: code, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a raw level before it is parsed.
func Validate(raw map[string]any) Report {
	var r Report

	if _, ok := raw["start"]; !ok {
		r.errorf(CodeMissingStart, "missing field 'start'")
	}
	if _, ok := raw["grid"]; !ok {
		r.warnf(CodeMissingGrid, "no 'grid', using the default size")
	}

	levelType := TypeSequence
	if t, ok := raw["type"].(string); ok {
		levelType = t
	}
	switch levelType {
	case TypeSequence:
		if _, ok := raw["ans"]; !ok {
			r.errorf(CodeMissingAns, "type 'sequence' requires 'ans'")
		}
	case TypeCondition:
		if _, ok := raw["conditions"]; !ok {
			r.errorf(CodeMissingConditions, "type 'condition' requires 'conditions'")
		}
	default:
		r.warnf(CodeUnknownType, "unknown level type %q", levelType)
	}

	start, okStart := rules.DecodeCoord(raw["start"])
	size, okGrid := rules.DecodeCoord(raw["grid"])
	if okStart && okGrid {
		if start.X < 0 || start.X >= size.X || start.Y < 0 || start.Y >= size.Y {
			r.errorf(CodeStartOutside, "start %v outside grid %dx%d", start, size.X, size.Y)
		}
	}

	if conds, err := rules.DecodeList(raw["conditions"]); err == nil {
		for i, c := range conds {
			if namesNoCells(c) {
				r.warnf(CodeEmptyCells, "conditions[%d] checks cells but names none", i)
			}
		}
	}

	if list, ok := raw["movable"].([]any); ok {
		for i, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				r.errorf(CodeMovableNotObject, "movable[%d] must be an object", i)
				continue
			}
			if !hasAnyKey(m, "cell", "cells", "range", "ranges") {
				r.errorf(CodeMovableNoCoords, "movable[%d] has no coordinates (cell/cells/range/ranges)", i)
			}
		}
	}
	return r
}

// namesNoCells reports whether a cell-based check, or any check nested in
// a group, has an empty cell spec.
func namesNoCells(c rules.Condition) bool {
	switch c := c.(type) {
	case rules.Group:
		return slices.ContainsFunc(c.Items, namesNoCells)
	case rules.Visit:
		return c.Cells.IsZero()
	case rules.AtSteps:
		return c.Cells.IsZero()
	case rules.EndAt:
		return c.Cells.IsZero()
	case rules.Order:
		return c.Cells.IsZero()
	case rules.Consecutive:
		return c.Cells.IsZero()
	}
	return false
}

func hasAnyKey(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

// CheckFile validates every level in a pack file without parsing it, so a
// level that would not load still gets its findings reported.
func CheckFile(path string) ([]Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: reading %s: %w", path, err)
	}
	raws, err := formats.Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("levels: parsing %s: %w", path, err)
	}
	if len(raws) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoLevels, path)
	}

	reports := make([]Report, len(raws))
	for i, raw := range raws {
		reports[i] = Validate(raw)
	}
	return reports, nil
}
