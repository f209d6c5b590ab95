package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Template is written when an edit file does not exist yet. It shows most
// of the level format in one playable level.
const Template = `{
  "name": "Workshop",
  "type": "condition",
  "hint": "Visit both marked cells, then finish in the corner.",
  "grid": [8, 6],
  "start": [0, 0],
  "conditions": [
    {"check": "visit", "cells": [[3, 1], [5, 4]]},
    {"check": "visit", "cells": [[6, 1]], "count": 0},
    {"check": "order", "cells": [[3, 1], [5, 4]]},
    {"check": "at_steps", "cells": [[7, 5]], "step_expr": "even"},
    {"check": "total_steps", "count": 30, "operator": "<="},
    {"check": "end_at", "cells": [[7, 5]]}
  ],
  "movable": [
    {"cell": [2, 3]},
    {"range": [[5, 2], [5, 3]], "connected": true, "blocked": "u"}
  ],
  "walls": [
    {"cells": [[4, 0], [4, 1], [4, 2]], "sides": "r", "type": "both"},
    {"range": [[0, 5], [2, 5]], "mode": "perimeter", "sides": "u", "type": "outer"}
  ],
  "poison": [
    {"cell": [6, 1], "sides": "all", "type": "outer"},
    {"range": [[1, 4], [2, 4]], "sides": "d", "type": "inner"}
  ]
}
`

// EnsureTemplate writes Template to path unless the file exists. It
// reports whether a file was created.
func EnsureTemplate(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("levels: stat %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(Template), 0o644); err != nil {
		return false, fmt.Errorf("levels: writing template %s: %w", path, err)
	}
	return true, nil
}
