package geometry

import (
	"fmt"

	"github.com/1broseidon/windowkey/internal/platform"
)

// ActionKind selects how the engine changes the focused window.
type ActionKind int

const (
	StepMove ActionKind = iota
	EdgeSnap
	StepResize
	GridPlace
	ToggleMaximize
	RestorePrevious
	Exit
)

// String returns the action name used in logs and the key listing.
func (k ActionKind) String() string {
	switch k {
	case StepMove:
		return "move"
	case EdgeSnap:
		return "snap"
	case StepResize:
		return "resize"
	case GridPlace:
		return "grid"
	case ToggleMaximize:
		return "maximize"
	case RestorePrevious:
		return "restore"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// Action is one hotkey activation. Key is set for the directional kinds,
// Slot for GridPlace.
type Action struct {
	Kind ActionKind
	Key  platform.Key
	Slot int
}

func (a Action) String() string {
	switch a.Kind {
	case StepMove, EdgeSnap, StepResize:
		return fmt.Sprintf("%s %s", a.Kind, a.Key)
	case GridPlace:
		return fmt.Sprintf("%s %d", a.Kind, a.Slot)
	default:
		return a.Kind.String()
	}
}

// Params are the engine constants.
type Params struct {
	// Step is the move/resize increment in pixels.
	Step int
	// MinX and MinY offset the resting position from the work-area edges.
	MinX int
	MinY int
}
