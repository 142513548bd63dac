package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

const wakeAtomName = "_WINDOWKEY_WAKE"

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	// wake is an unmapped window owned by this client. A ClientMessage sent
	// to it unblocks the event loop so Quit takes effect immediately.
	wake     *xwindow.Window
	wakeAtom xproto.Atom
}

// NewConnection connects to the given display, or $DISPLAY when empty, and
// initializes the keybind module.
func NewConnection(display string) (*Connection, error) {
	var (
		xu  *xgbutil.XUtil
		err error
	)
	if display != "" {
		xu, err = xgbutil.NewConnDisplay(display)
	} else {
		xu, err = xgbutil.NewConn()
	}
	if err != nil {
		return nil, err
	}

	// Initialize keybind module (required for global hotkeys and key polling)
	keybind.Initialize(xu)

	c := &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}
	if err := c.createWakeWindow(); err != nil {
		xu.Conn().Close()
		return nil, err
	}
	return c, nil
}

func (c *Connection) createWakeWindow() error {
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return fmt.Errorf("failed to allocate wake window: %w", err)
	}
	win.Create(c.Root, -1, -1, 1, 1, 0)

	atom, err := xprop.Atm(c.XUtil, wakeAtomName)
	if err != nil {
		return fmt.Errorf("failed to intern %s: %w", wakeAtomName, err)
	}

	xevent.ClientMessageFun(func(xu *xgbutil.XUtil, ev xevent.ClientMessageEvent) {
		if ev.Type == atom {
			xevent.Quit(xu)
		}
	}).Connect(c.XUtil, win.Id)

	c.wake = win
	c.wakeAtom = atom
	return nil
}

// EventLoop starts the main X11 event loop (blocking)
func (c *Connection) EventLoop() {
	xevent.Main(c.XUtil)
}

// Quit makes EventLoop return. It may be called from any goroutine: the
// request travels through the event queue and the loop stops itself.
func (c *Connection) Quit() {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: c.wake.Id,
		Type:   c.wakeAtom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{0, 0, 0, 0, 0}),
	}
	err := xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.wake.Id,
		xproto.EventMaskNoEvent,
		string(ev.Bytes()),
	).Check()
	if err != nil {
		// The connection is gone; the loop is already on its way out.
		xevent.Quit(c.XUtil)
	}
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	if c.wake != nil {
		c.wake.Destroy()
	}
	c.XUtil.Conn().Close()
}
