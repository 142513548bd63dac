//go:build linux

package platform

import (
	"fmt"

	"github.com/1broseidon/windowkey/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// LinuxBackend wraps an X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn    *x11.Connection
	minSize Size
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
// minSize is the floor applied on top of each window's own size hints.
func NewLinuxBackend(conn *x11.Connection, minSize Size) *LinuxBackend {
	return &LinuxBackend{conn: conn, minSize: minSize}
}

// NewLinuxBackendFromDisplay opens a fresh X11 connection to display, or
// $DISPLAY when empty.
func NewLinuxBackendFromDisplay(display string, minSize Size) (*LinuxBackend, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return NewLinuxBackend(conn, minSize), nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// Quit makes EventLoop return.
func (b *LinuxBackend) Quit() {
	if b != nil && b.conn != nil {
		b.conn.Quit()
	}
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// Snapshot reads the focused window and the desktop around it. Arrow keys
// are polled from one keymap query so that every key reflects the same
// instant.
func (b *LinuxBackend) Snapshot(trigger Key) (Snapshot, error) {
	conn, err := b.connection()
	if err != nil {
		return Snapshot{}, err
	}

	active, err := conn.GetActiveWindow()
	if err != nil || active == 0 {
		return Snapshot{}, ErrNoActiveWindow
	}

	geom, err := conn.FrameGeometry(active)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read geometry of window %d: %w", active, err)
	}

	area, err := conn.WorkArea()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read work area: %w", err)
	}

	var poll func(Key) bool
	if km, err := conn.QueryKeymap(); err == nil {
		poll = func(k Key) bool { return conn.Pressed(km, k.String()) }
	}

	// Windows without _NET_WM_STATE are treated as not maximized.
	maximized, _ := conn.IsMaximized(active)

	screen := conn.PrimaryMonitor()

	return Snapshot{
		Window:    WindowID(active),
		Rect:      Rect{X: geom.X, Y: geom.Y, Width: geom.Width, Height: geom.Height},
		WorkArea:  WorkAreaFromRect(Rect{X: area.X, Y: area.Y, Width: area.Width, Height: area.Height}),
		Keys:      NewKeyState(trigger, poll),
		Maximized: maximized,
		Screen:    Rect{X: screen.X, Y: screen.Y, Width: screen.Width, Height: screen.Height},
		MinSize:   b.windowMinSize(conn, active),
	}, nil
}

// MoveResize moves and resizes a window to the specified bounds.
func (b *LinuxBackend) MoveResize(windowID WindowID, bounds Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}

	return conn.MoveResizeWindow(
		xproto.Window(windowID),
		bounds.X,
		bounds.Y,
		bounds.Width,
		bounds.Height,
	)
}

// SetMaximized adds or removes the maximized state of a window.
func (b *LinuxBackend) SetMaximized(windowID WindowID, maximized bool) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.SetMaximized(xproto.Window(windowID), maximized)
}

func (b *LinuxBackend) windowMinSize(conn *x11.Connection, windowID xproto.Window) Size {
	size := b.minSize
	if w, h, ok := conn.MinSize(windowID); ok {
		size.Width = max(size.Width, w)
		size.Height = max(size.Height, h)
	}
	return size
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}
