package core

// Action is a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone               Action = iota
	ActionUp                        // Up arrow - step up
	ActionDown                      // Down arrow - step down
	ActionLeft                      // Left arrow - step left
	ActionRight                     // Right arrow - step right
	ActionUndo                      // z
	ActionSave                      // s - manual savestate
	ActionLoad                      // l - restore manual savestate
	ActionRestart                   // r - soft reload, keeps savestates
	ActionFullReset                 // R - full reset
	ActionToggleRequirements        // x
	ActionConfirm                   // Enter - reload the level file in edit mode
	ActionDevUnlock                 // F9 then F11
	ActionQuit                      // q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUndo:
		return "Undo"
	case ActionSave:
		return "Save"
	case ActionLoad:
		return "Load"
	case ActionRestart:
		return "Restart"
	case ActionFullReset:
		return "FullReset"
	case ActionToggleRequirements:
		return "ToggleRequirements"
	case ActionConfirm:
		return "Confirm"
	case ActionDevUnlock:
		return "DevUnlock"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame carries the actions triggered by one key press, plus a debug
// console command when the console listener produced one.
type InputFrame struct {
	Actions map[Action]bool
	Command string
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// FrameOf builds a frame with the given actions set.
func FrameOf(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// CommandFrame builds a frame carrying a console command.
func CommandFrame(cmd string) InputFrame {
	f := NewInputFrame()
	f.Command = cmd
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Empty reports whether the frame carries nothing.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && f.Command == ""
}
