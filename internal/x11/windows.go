package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

const (
	stateMaxVert = "_NET_WM_STATE_MAXIMIZED_VERT"
	stateMaxHorz = "_NET_WM_STATE_MAXIMIZED_HORZ"

	// sourceIndication marks client messages as coming from a pager or
	// similar tool, which window managers honor more readily than requests
	// from applications.
	sourceIndication = 2
)

// Geometry is a window's outer rectangle in root coordinates.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// GetActiveWindow returns the window in _NET_ACTIVE_WINDOW, which is 0 when
// nothing has focus.
func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// FrameGeometry returns the window's rectangle including decorations.
func (c *Connection) FrameGeometry(windowID xproto.Window) (Geometry, error) {
	rect, err := xwindow.New(c.XUtil, windowID).DecorGeometry()
	if err != nil {
		return Geometry{}, err
	}
	return Geometry{X: rect.X(), Y: rect.Y(), Width: rect.Width(), Height: rect.Height()}, nil
}

// MoveResizeWindow places the window frame at the given geometry. Window
// managers that reject the EWMH request get a plain ConfigureWindow instead.
// An error is returned only when both attempts fail, e.g. because the window
// is gone.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	win := xwindow.New(c.XUtil, windowID)
	return withFallback(
		func() error { return win.WMMoveResize(x, y, width, height) },
		func() error { return c.configureWindow(windowID, x, y, width, height) },
	)
}

func (c *Connection) configureWindow(windowID xproto.Window, x, y, width, height int) error {
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY | xproto.ConfigWindowWidth | xproto.ConfigWindowHeight)
	values := []uint32{uint32(int32(x)), uint32(int32(y)), uint32(width), uint32(height)}
	return xproto.ConfigureWindowChecked(c.XUtil.Conn(), windowID, mask, values).Check()
}

// withFallback runs primary, then fallback if primary fails.
func withFallback(primary, fallback func() error) error {
	err := primary()
	if err == nil {
		return nil
	}
	if fbErr := fallback(); fbErr != nil {
		return fmt.Errorf("%w (fallback: %v)", err, fbErr)
	}
	return nil
}

// IsMaximized reports whether the window is maximized in both directions.
func (c *Connection) IsMaximized(windowID xproto.Window) (bool, error) {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return false, err
	}

	var vert, horz bool
	for _, state := range states {
		switch state {
		case stateMaxVert:
			vert = true
		case stateMaxHorz:
			horz = true
		}
	}
	return vert && horz, nil
}

// SetMaximized asks the window manager to add or remove both maximized
// states. The window manager restores the normal geometry on removal.
func (c *Connection) SetMaximized(windowID xproto.Window, maximized bool) error {
	action := ewmh.StateRemove
	if maximized {
		action = ewmh.StateAdd
	}
	return ewmh.WmStateReqExtra(c.XUtil, windowID, action, stateMaxVert, stateMaxHorz, sourceIndication)
}

// MinSize returns the minimum frame size the client asks for in
// WM_NORMAL_HINTS, grown by _NET_FRAME_EXTENTS so it compares with the
// decorated geometry. ok is false when the client sets none.
func (c *Connection) MinSize(windowID xproto.Window) (width, height int, ok bool) {
	hints, err := icccm.WmNormalHintsGet(c.XUtil, windowID)
	if err != nil || hints.Flags&icccm.SizeHintPMinSize == 0 {
		return 0, 0, false
	}
	// Undecorated windows and WMs without the property add nothing.
	extents, _ := ewmh.FrameExtentsGet(c.XUtil, windowID)
	width, height = frameSize(int(hints.MinWidth), int(hints.MinHeight), extents)
	return width, height, true
}

// frameSize adds decoration extents to a client size. extents may be nil.
func frameSize(width, height int, extents *ewmh.FrameExtents) (int, int) {
	if extents == nil {
		return width, height
	}
	return width + extents.Left + extents.Right, height + extents.Top + extents.Bottom
}
