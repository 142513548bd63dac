package geometry

import (
	"errors"

	"github.com/1broseidon/windowkey/internal/platform"
	"github.com/charmbracelet/log"
)

// Decision is what the engine wants done to the focused window.
type Decision struct {
	// Target is the new rectangle; only meaningful when Move is set.
	Target platform.Rect
	Move   bool
	// Unmaximize clears the maximized state before Target is applied.
	Unmaximize bool
	// ToggleMaximize flips the maximized state; no rectangle is applied.
	ToggleMaximize bool
	// Record stores the snapshot rectangle as the window's history entry.
	Record bool
}

// Changed reports whether the decision mutates the window at all.
func (d Decision) Changed() bool {
	return d.Move || d.Unmaximize || d.ToggleMaximize
}

// Decide computes the outcome of an action from a snapshot. It only reads
// the history; the caller records the entry once the change is applied.
func Decide(a Action, s platform.Snapshot, h *History, p Params) Decision {
	switch a.Kind {
	case StepMove:
		return changedTo(s.Rect, Move(s, p))
	case EdgeSnap:
		return changedTo(s.Rect, Snap(s, a.Key, p))
	case StepResize:
		return changedTo(s.Rect, Resize(s, p))
	case GridPlace:
		return decideGrid(a.Slot, s, h, p)
	case ToggleMaximize:
		return Decision{ToggleMaximize: true, Record: true}
	case RestorePrevious:
		return decideRestore(s, h)
	default:
		return Decision{}
	}
}

func changedTo(current, target platform.Rect) Decision {
	if target == current {
		return Decision{}
	}
	return Decision{Target: target, Move: true, Record: true}
}

func decideGrid(slot int, s platform.Snapshot, h *History, p Params) Decision {
	switch slot {
	case SlotMaximize:
		return Decision{ToggleMaximize: true, Record: true}
	case SlotRestore:
		return decideRestore(s, h)
	}
	target, ok := GridRect(slot, s.WorkArea, p)
	if !ok {
		return Decision{}
	}
	return Decision{Target: target, Move: true, Unmaximize: s.Maximized, Record: true}
}

// decideRestore records even without a history entry so that a following
// restore returns the window to where it is now.
func decideRestore(s platform.Snapshot, h *History) Decision {
	prev, ok := h.Lookup(s.Window)
	if !ok {
		return Decision{Record: true}
	}
	return Decision{Target: prev, Move: true, Unmaximize: s.Maximized, Record: true}
}

// Engine runs actions against the focused window: snapshot, decide, apply,
// then remember the previous rectangle. It is not safe for concurrent use;
// the event loop calls it from a single goroutine.
type Engine struct {
	backend platform.Backend
	params  Params
	history *History
	logger  *log.Logger
}

// NewEngine creates an engine with an empty history.
func NewEngine(backend platform.Backend, params Params, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		backend: backend,
		params:  params,
		history: NewHistory(),
		logger:  logger.WithPrefix("engine"),
	}
}

// History exposes the engine's per-window history.
func (e *Engine) History() *History {
	return e.history
}

// Handle performs one action. Failures to read state or to mutate the window
// are logged and dropped; the next key press starts from fresh state.
func (e *Engine) Handle(a Action) Decision {
	if a.Kind == Exit {
		return Decision{}
	}

	snap, err := e.backend.Snapshot(a.Key)
	if err != nil {
		if errors.Is(err, platform.ErrNoActiveWindow) {
			e.logger.Debug("no focused window", "action", a)
		} else {
			e.logger.Warn("failed to read window state", "action", a, "err", err)
		}
		return Decision{}
	}
	if snap.Window == 0 {
		e.logger.Debug("no focused window", "action", a)
		return Decision{}
	}

	d := Decide(a, snap, e.history, e.params)
	if !d.Changed() && !d.Record {
		e.logger.Debug("window already in place", "action", a, "window", snap.Window)
		return d
	}

	if err := e.apply(snap, d); err != nil {
		e.logger.Warn("failed to update window", "action", a, "window", snap.Window, "err", err)
		return Decision{}
	}

	if d.Record {
		e.history.Record(snap.Window, snap.Rect)
	}
	e.logger.Debug("applied",
		"action", a,
		"window", snap.Window,
		"from", snap.Rect,
		"to", d.Target,
		"moved", d.Move,
		"toggled", d.ToggleMaximize,
	)
	return d
}

func (e *Engine) apply(snap platform.Snapshot, d Decision) error {
	if d.ToggleMaximize {
		return e.backend.SetMaximized(snap.Window, !snap.Maximized)
	}
	if d.Unmaximize {
		if err := e.backend.SetMaximized(snap.Window, false); err != nil {
			return err
		}
	}
	if d.Move {
		return e.backend.MoveResize(snap.Window, d.Target)
	}
	return nil
}
