package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeYAML parses a YAML level pack. Mappings with non-string keys are
// rejected.
func DecodeYAML(data []byte) ([]map[string]any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	v, err := stringKeys(v)
	if err != nil {
		return nil, err
	}
	return split(v)
}

// stringKeys converts map[any]any nodes, which yaml.v3 produces for
// non-string keys, and fails when a key is not a string.
func stringKeys(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			conv, err := stringKeys(item)
			if err != nil {
				return nil, err
			}
			t[k] = conv
		}
		return t, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("yaml: non-string key %v", k)
			}
			conv, err := stringKeys(item)
			if err != nil {
				return nil, err
			}
			out[ks] = conv
		}
		return out, nil
	case []any:
		for i, item := range t {
			conv, err := stringKeys(item)
			if err != nil {
				return nil, err
			}
			t[i] = conv
		}
		return t, nil
	}
	return v, nil
}
