package platform

import "errors"

// ErrNoActiveWindow is returned by snapshot providers when nothing has focus.
var ErrNoActiveWindow = errors.New("no active window")

// WindowID is a platform-neutral window identifier. It is only compared and
// hashed; 0 never names a window.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Right returns the x coordinate just past the right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate just past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// WorkArea is the usable desktop region, excluding panels and docks.
type WorkArea struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// WorkAreaFromRect converts an origin/size rectangle into edge bounds.
func WorkAreaFromRect(r Rect) WorkArea {
	return WorkArea{Left: r.X, Top: r.Y, Right: r.Right(), Bottom: r.Bottom()}
}

// Size is a width/height pair.
type Size struct {
	Width  int
	Height int
}

// Key is one of the four arrow keys used for directional actions.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// ArrowKeys lists the directional keys in poll order.
var ArrowKeys = []Key{KeyUp, KeyDown, KeyLeft, KeyRight}

// String returns the X keysym name of the key.
func (k Key) String() string {
	switch k {
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	default:
		return "None"
	}
}

// KeyState records which arrow keys are held during one action.
type KeyState struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// NewKeyState seeds the state with the triggering key and ORs in a live poll
// of every arrow key. poll may be nil.
func NewKeyState(trigger Key, poll func(Key) bool) KeyState {
	var ks KeyState
	ks.set(trigger)
	if poll == nil {
		return ks
	}
	for _, k := range ArrowKeys {
		if poll(k) {
			ks.set(k)
		}
	}
	return ks
}

// Held reports whether k is down.
func (ks KeyState) Held(k Key) bool {
	switch k {
	case KeyUp:
		return ks.Up
	case KeyDown:
		return ks.Down
	case KeyLeft:
		return ks.Left
	case KeyRight:
		return ks.Right
	default:
		return false
	}
}

func (ks *KeyState) set(k Key) {
	switch k {
	case KeyUp:
		ks.Up = true
	case KeyDown:
		ks.Down = true
	case KeyLeft:
		ks.Left = true
	case KeyRight:
		ks.Right = true
	}
}

// Snapshot is everything the geometry engine needs to decide one action,
// captured at the start of that action.
type Snapshot struct {
	Window    WindowID
	Rect      Rect
	WorkArea  WorkArea
	Keys      KeyState
	Maximized bool
	// Screen is the primary display's full bounds, panels included.
	Screen Rect
	// MinSize is the smallest size the window may be resized to.
	MinSize Size
}

// StateProvider captures the focused window and desktop state.
type StateProvider interface {
	Snapshot(trigger Key) (Snapshot, error)
}

// WindowMutator applies geometry and maximize state to a window.
type WindowMutator interface {
	MoveResize(windowID WindowID, bounds Rect) error
	SetMaximized(windowID WindowID, maximized bool) error
}

// Backend abstracts window-system operations across platforms.
type Backend interface {
	StateProvider
	WindowMutator
}
