package core

// Action is a semantic viewer action, abstracted from physical key presses.
type Action int

const (
	ActionNone            Action = iota
	ActionUp                     // Steer prey up
	ActionDown                   // Steer prey down
	ActionLeft                   // Steer prey left
	ActionRight                  // Steer prey right
	ActionBuildHorizontal        // Hunter builds a horizontal wall
	ActionBuildVertical          // Hunter builds a vertical wall
	ActionRemoveOldest           // Hunter removes its oldest wall
	ActionToggleAuto             // Switch between manual and policy control
	ActionPause
	ActionRestart
	ActionQuit
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
	case ActionBuildHorizontal:
		return "BuildHorizontal"
	case ActionBuildVertical:
		return "BuildVertical"
	case ActionRemoveOldest:
		return "RemoveOldest"
	case ActionToggleAuto:
		return "ToggleAuto"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds every action triggered during one tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
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
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Steering converts the directional actions in the frame into a unit
// displacement. Opposite directions cancel.
func (f InputFrame) Steering() (dx, dy int) {
	if f.Has(ActionLeft) {
		dx--
	}
	if f.Has(ActionRight) {
		dx++
	}
	if f.Has(ActionUp) {
		dy--
	}
	if f.Has(ActionDown) {
		dy++
	}
	return dx, dy
}
