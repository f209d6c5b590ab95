package session

import (
	"errors"
	"slices"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/grid"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/movable"
)

// DefaultHistoryLimit bounds the undo stack.
const DefaultHistoryLimit = 200

var (
	ErrNothingToUndo = errors.New("session: nothing to undo")
	ErrNoManualSave  = errors.New("session: no manual save")
)

// Snapshot is a restorable copy of everything a move can change.
type Snapshot struct {
	Pos       grid.Coord
	Path      []grid.Coord
	History   []grid.Side
	Recording []grid.Side
	Movables  movable.State
	StepCount int
}

func (s Snapshot) clone() Snapshot {
	s.Path = slices.Clone(s.Path)
	s.History = slices.Clone(s.History)
	s.Recording = slices.Clone(s.Recording)
	return s
}

// StateManager holds the undo stack and the manual save slot.
type StateManager struct {
	history []Snapshot
	manual  *Snapshot
	limit   int
}

// NewStateManager creates a manager keeping at most limit undo entries.
func NewStateManager(limit int) *StateManager {
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	return &StateManager{limit: limit}
}

// Push records a snapshot, dropping the oldest one past the limit.
func (m *StateManager) Push(s Snapshot) {
	m.history = append(m.history, s.clone())
	if over := len(m.history) - m.limit; over > 0 {
		m.history = slices.Delete(m.history, 0, over)
	}
}

// Pop removes and returns the newest snapshot.
func (m *StateManager) Pop() (Snapshot, error) {
	if len(m.history) == 0 {
		return Snapshot{}, ErrNothingToUndo
	}
	s := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	return s, nil
}

// Len returns the undo depth.
func (m *StateManager) Len() int { return len(m.history) }

// Save overwrites the manual slot.
func (m *StateManager) Save(s Snapshot) {
	c := s.clone()
	m.manual = &c
}

// Load returns a copy of the manual slot; the slot is kept.
func (m *StateManager) Load() (Snapshot, error) {
	if m.manual == nil {
		return Snapshot{}, ErrNoManualSave
	}
	return m.manual.clone(), nil
}

// HasSave reports whether the manual slot is filled.
func (m *StateManager) HasSave() bool { return m.manual != nil }

// Reset clears the undo stack and the manual slot.
func (m *StateManager) Reset() {
	m.history = nil
	m.manual = nil
}
