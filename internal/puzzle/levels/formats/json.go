package formats

import (
	"encoding/json"
	"fmt"
)

// DecodeJSON parses a JSON level pack.
func DecodeJSON(data []byte) ([]map[string]any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return split(v)
}
