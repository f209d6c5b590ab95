package formats

import "testing"

func TestDecodeJSON(t *testing.T) {
	levels, err := DecodeJSON([]byte(`[{"name": "a", "grid": [5, 5]}, {"name": "b"}]`))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if len(levels) != 2 || levels[1]["name"] != "b" {
		t.Errorf("levels = %v", levels)
	}

	single, err := DecodeJSON([]byte(`{"name": "solo"}`))
	if err != nil || len(single) != 1 {
		t.Errorf("single object: %v, %v", single, err)
	}

	if _, err := DecodeJSON([]byte(`[1, 2]`)); err == nil {
		t.Error("numbers are not levels")
	}
	if _, err := DecodeJSON([]byte(`{`)); err == nil {
		t.Error("broken json accepted")
	}
}

func TestDecodeYAML(t *testing.T) {
	src := `
- name: first
  grid: [4, 3]
  start: [0, 0]
  conditions:
    - check: visit
      cells: [[1, 1]]
- name: second
`
	levels, err := DecodeYAML([]byte(src))
	if err != nil {
		t.Fatalf("DecodeYAML: %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("levels = %v", levels)
	}
	grid, ok := levels[0]["grid"].([]any)
	if !ok || grid[0] != 4 {
		t.Errorf("grid = %#v", levels[0]["grid"])
	}
	conds := levels[0]["conditions"].([]any)
	if _, ok := conds[0].(map[string]any); !ok {
		t.Errorf("nested mapping type = %T", conds[0])
	}
}

func TestDecodeByExtension(t *testing.T) {
	if _, err := Decode([]byte(`[]`), ".JSON"); err != nil {
		t.Errorf("upper-case extension: %v", err)
	}
	if _, err := Decode(nil, ".toml"); err == nil {
		t.Error("toml is not supported")
	}
	if !Supported(".yml") || Supported(".txt") {
		t.Error("Supported mismatch")
	}
}
