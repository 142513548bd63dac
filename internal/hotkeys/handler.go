package hotkeys

import (
	"fmt"
	"sync"

	"github.com/1broseidon/windowkey/internal/geometry"
	"github.com/1broseidon/windowkey/internal/platform"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/charmbracelet/log"
)

// Grabber installs and removes global key grabs.
type Grabber interface {
	Grab(keys string, callback func()) error
	Ungrab(keys string) error
	// Release drops every callback installed through Grab.
	Release()
}

// Handler manages global keyboard shortcuts
type Handler struct {
	grabber    Grabber
	logger     *log.Logger
	registered []Binding
}

// NewHandler creates a new hotkey handler.
func NewHandler(grabber Grabber, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		grabber: grabber,
		logger:  logger.WithPrefix("hotkeys"),
	}
}

// RegisterAll grabs every binding and routes presses to dispatch. A binding
// that cannot be grabbed, usually because another client holds it, is logged
// and skipped. It returns the number of bindings registered.
func (h *Handler) RegisterAll(bindings []Binding, dispatch func(geometry.Action)) int {
	for _, b := range bindings {
		h.logger.Info("registering hotkey", "id", b.ID, "keys", b.Combo(), "action", b.Action)

		action := b.Action
		if err := h.grabber.Grab(b.Keys, func() { dispatch(action) }); err != nil {
			h.logger.Warn("unable to register hotkey", "id", b.ID, "keys", b.Combo(), "err", err)
			continue
		}
		h.registered = append(h.registered, b)
	}
	return len(h.registered)
}

// Registered returns the bindings currently grabbed.
func (h *Handler) Registered() []Binding {
	out := make([]Binding, len(h.registered))
	copy(out, h.registered)
	return out
}

// UnregisterAll removes every grab made by RegisterAll. It is safe to call
// more than once.
func (h *Handler) UnregisterAll() {
	for _, b := range h.registered {
		if err := h.grabber.Ungrab(b.Keys); err != nil {
			h.logger.Debug("failed to unregister hotkey", "id", b.ID, "keys", b.Combo(), "err", err)
		}
	}
	if len(h.registered) > 0 {
		h.grabber.Release()
	}
	h.registered = nil
}

// x11Accessor is implemented by backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// X11Grabber grabs keys on the root window through xgbutil's keybind.
type X11Grabber struct {
	xu   *xgbutil.XUtil
	root xproto.Window
}

var _ Grabber = (*X11Grabber)(nil)

var ignoreModsOnce sync.Once

// NewX11Grabber builds a grabber from a backend that owns an X11 connection.
func NewX11Grabber(backend platform.Backend) (*X11Grabber, error) {
	accessor, ok := backend.(x11Accessor)
	if !ok || accessor.XUtil() == nil {
		return nil, fmt.Errorf("backend %T has no X11 connection", backend)
	}
	xu := accessor.XUtil()

	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	return &X11Grabber{xu: xu, root: accessor.RootWindow()}, nil
}

// Grab registers callback for the key sequence, e.g. "Mod4-Mod1-Up".
func (g *X11Grabber) Grab(keys string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(g.xu, g.root, keys, true)
}

// Ungrab releases the passive grab for the key sequence.
func (g *X11Grabber) Ungrab(keys string) error {
	mods, keycodes, err := keybind.ParseString(g.xu, keys)
	if err != nil {
		return err
	}
	for _, kc := range keycodes {
		keybind.Ungrab(g.xu, g.root, mods, kc)
	}
	return nil
}

// Release detaches all key callbacks from the root window.
func (g *X11Grabber) Release() {
	keybind.Detach(g.xu, g.root)
}

// configureIgnoreMods makes grabs fire regardless of lock key state.
func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	xevent.IgnoreMods = lockCombinations(base)
}

// lockCombinations returns every OR-combination of the given masks, the
// empty one included.
func lockCombinations(base []uint16) []uint16 {
	unique := make(map[uint16]struct{})
	unique[0] = struct{}{}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		unique[mask] = struct{}{}
	}

	out := make([]uint16, 0, len(unique))
	for mask := range unique {
		out = append(out, mask)
	}
	return out
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
