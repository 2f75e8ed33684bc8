// Package interaction - Keyboard state machine of the annotation window.
package interaction

// Key bindings.
const (
	KeyQuit        = 'q'
	KeyToggleLabel = 'h'
	// NoKey is what a key poll returns when nothing was pressed.
	NoKey = -1
)

// Phase is the controller state.
type Phase int

const (
	// Active processes frames and input.
	Active Phase = iota
	// Terminated is final: no further input is processed.
	Terminated
)

// String returns the phase name.
func (p Phase) String() string {
	if p == Terminated {
		return "terminated"
	}
	return "active"
}

// State is what the loop and the renderer read every iteration.
type State struct {
	ShowLabels bool
	Phase      Phase
}

// Terminated reports whether the loop must stop.
func (s State) Terminated() bool {
	return s.Phase == Terminated
}

// Transition describes what a key changed.
type Transition int

const (
	// Ignored means the key had no effect.
	Ignored Transition = iota
	// LabelsToggled means ShowLabels flipped.
	LabelsToggled
	// Quit means the controller terminated.
	Quit
)

// Controller owns the interaction state.
type Controller struct {
	state State
}

// NewController starts Active with labels visible.
func NewController() *Controller {
	return &Controller{state: State{ShowLabels: true, Phase: Active}}
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	return c.state
}

// HandleKey feeds one polled key code to the state machine.
//
// Only the low byte of the code is significant, matching what window systems
// report for modified keys.
//
// Arguments:
//   - key: The polled key code, or NoKey.
//
// Returns:
//   - Transition: What the key changed.
func (c *Controller) HandleKey(key int) Transition {
	if c.state.Phase == Terminated || key == NoKey {
		return Ignored
	}
	switch key & 0xFF {
	case KeyQuit:
		c.state.Phase = Terminated
		return Quit
	case KeyToggleLabel:
		c.state.ShowLabels = !c.state.ShowLabels
		return LabelsToggled
	default:
		return Ignored
	}
}
