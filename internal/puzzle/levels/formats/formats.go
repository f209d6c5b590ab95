// Package formats decodes level pack files into generic values.
//
// Decoders return one map per level. Numbers stay in the form the
// underlying decoder produces (float64 for JSON, int for YAML); the levels
// package normalises them.
package formats

import (
	"fmt"
	"slices"
	"strings"
)

// Extensions returns the supported file extensions.
func Extensions() []string {
	return []string{".json", ".yaml", ".yml"}
}

// Supported reports whether ext (with the dot) has a decoder.
func Supported(ext string) bool {
	return slices.Contains(Extensions(), strings.ToLower(ext))
}

// Decode routes data to the decoder for ext.
func Decode(data []byte, ext string) ([]map[string]any, error) {
	switch strings.ToLower(ext) {
	case ".json":
		return DecodeJSON(data)
	case ".yaml", ".yml":
		return DecodeYAML(data)
	}
	return nil, fmt.Errorf("unsupported extension: %s", ext)
}

// split accepts a single level object or a list of them.
func split(v any) ([]map[string]any, error) {
	switch t := v.(type) {
	case map[string]any:
		return []map[string]any{t}, nil
	case []any:
		out := make([]map[string]any, 0, len(t))
		for i, item := range t {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("level %d: expected an object, got %T", i, item)
			}
			out = append(out, m)
		}
		return out, nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("expected a level or a list of levels, got %T", v)
}
