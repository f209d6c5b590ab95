package session

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/grid"
)

// Console commands.
const (
	CmdShowRecording  = "1"
	CmdClearRecording = "2"
	CmdToggleCoords   = "3"
	CmdCells          = "4"
	CmdToggleVictory  = "5"
	CmdGroups         = "6"
	CmdHelp           = "help"
)

// LockedReply is the answer to any command before the console is unlocked.
const LockedReply = "[LOCKED] F9+F11"

// CellVisits lists the path indices at which a cell was occupied.
type CellVisits struct {
	Cell  grid.Coord
	Steps []int
}

// Visits groups the path by cell, sorted by row then column.
func (c *Controller) Visits() []CellVisits {
	index := make(map[grid.Coord]int)
	var out []CellVisits
	for step, p := range c.path {
		i, ok := index[p]
		if !ok {
			i = len(out)
			index[p] = i
			out = append(out, CellVisits{Cell: p})
		}
		out[i].Steps = append(out[i].Steps, step)
	}
	slices.SortFunc(out, func(a, b CellVisits) int {
		if n := cmp.Compare(a.Cell.Y, b.Cell.Y); n != 0 {
			return n
		}
		return cmp.Compare(a.Cell.X, b.Cell.X)
	})
	return out
}

// Exec runs one debug console command and returns its output. Empty
// input produces no output.
func (c *Controller) Exec(cmd string) string {
	cmd = strings.ToLower(strings.TrimSpace(cmd))
	if !c.dev.Unlocked {
		return LockedReply
	}
	if cmd == "" {
		return ""
	}
	c.log.Debug("console", "cmd", cmd)

	switch cmd {
	case CmdShowRecording:
		return "ans: " + grid.FormatMoves(c.recording)
	case CmdClearRecording:
		c.recording = nil
		return "[OK] recording cleared"
	case CmdToggleCoords:
		c.dev.ShowCoords = !c.dev.ShowCoords
		return "[OK] coordinates: " + onOff(c.dev.ShowCoords)
	case CmdCells:
		var b strings.Builder
		b.WriteString("=== CELLS ===\n")
		for _, v := range c.Visits() {
			steps := make([]string, len(v.Steps))
			for i, s := range v.Steps {
				steps[i] = strconv.Itoa(s)
			}
			fmt.Fprintf(&b, "%d,%d: [%s]\n", v.Cell.X, v.Cell.Y, strings.Join(steps, ", "))
		}
		b.WriteString("=============")
		return b.String()
	case CmdToggleVictory:
		c.dev.DisableVictory = !c.dev.DisableVictory
		return "[OK] victory: " + onOff(!c.dev.DisableVictory)
	case CmdGroups:
		return c.describeGroups()
	case CmdHelp:
		return "1=SHOW 2=CLEAR 3=COORDS 4=CELLS 5=NOWIN 6=GROUPS"
	}
	return fmt.Sprintf("unknown command %q (try help)", cmd)
}

// describeGroups lists every rigid group with its current cells.
func (c *Controller) describeGroups() string {
	groups := c.movables.Groups()
	if len(groups) == 0 {
		return "no groups"
	}
	ids := slices.Sorted(maps.Keys(groups))

	var b strings.Builder
	b.WriteString("=== GROUPS ===")
	for _, id := range ids {
		cells := make([]string, len(groups[id]))
		for i, p := range groups[id] {
			cells[i] = fmt.Sprintf("%d,%d", p.X, p.Y)
		}
		fmt.Fprintf(&b, "\n%d: %s", id, strings.Join(cells, " "))
	}
	b.WriteString("\n==============")
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
