package daemon

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/1broseidon/windowkey/internal/geometry"
	"github.com/1broseidon/windowkey/internal/hotkeys"
	"github.com/1broseidon/windowkey/internal/platform"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLoop runs queued events on the goroutine that called EventLoop, the
// way xevent.Main runs callbacks.
type fakeLoop struct {
	events   chan func()
	quit     chan struct{}
	quitOnce sync.Once
	started  chan struct{}
	panicMsg string
	endEarly bool
}

func newFakeLoop() *fakeLoop {
	return &fakeLoop{
		events:  make(chan func(), 16),
		quit:    make(chan struct{}),
		started: make(chan struct{}),
	}
}

func (l *fakeLoop) EventLoop() {
	close(l.started)
	if l.panicMsg != "" {
		panic(l.panicMsg)
	}
	if l.endEarly {
		return
	}
	for {
		select {
		case ev := <-l.events:
			ev()
		case <-l.quit:
			return
		}
	}
}

func (l *fakeLoop) Quit() {
	l.quitOnce.Do(func() { close(l.quit) })
}

type fakeGrabber struct {
	mu        sync.Mutex
	callbacks map[string]func()
	conflicts map[string]bool
	ungrabbed int
	released  bool
}

func newFakeGrabber() *fakeGrabber {
	return &fakeGrabber{
		callbacks: make(map[string]func()),
		conflicts: make(map[string]bool),
	}
}

func (g *fakeGrabber) Grab(keys string, callback func()) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.conflicts[keys] {
		return errors.New("BadAccess")
	}
	g.callbacks[keys] = callback
	return nil
}

func (g *fakeGrabber) Ungrab(keys string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ungrabbed++
	delete(g.callbacks, keys)
	return nil
}

func (g *fakeGrabber) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.released = true
}

func (g *fakeGrabber) callback(keys string) func() {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.callbacks[keys]
}

type recordingHandler struct {
	actions []geometry.Action
}

func (h *recordingHandler) Handle(a geometry.Action) geometry.Decision {
	h.actions = append(h.actions, a)
	return geometry.Decision{}
}

type harness struct {
	loop    *fakeLoop
	grabber *fakeGrabber
	actions *recordingHandler
	daemon  *Daemon
}

func newHarness() *harness {
	logger := log.New(io.Discard)
	h := &harness{
		loop:    newFakeLoop(),
		grabber: newFakeGrabber(),
		actions: &recordingHandler{},
	}
	h.daemon = New(h.loop, hotkeys.NewHandler(h.grabber, logger), h.actions, logger)
	return h
}

func (h *harness) run(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() { done <- h.daemon.Run(ctx) }()
	return done
}

// press queues a hotkey press on the loop goroutine.
func (h *harness) press(t *testing.T, keys string) {
	t.Helper()
	<-h.loop.started
	cb := h.grabber.callback(keys)
	require.NotNil(t, cb, "no grab for %s", keys)
	h.loop.events <- cb
}

func wait(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("daemon did not stop")
		return nil
	}
}

func TestRun_ExitHotkeyStopsLoopAndUnregisters(t *testing.T) {
	h := newHarness()
	done := h.run(context.Background())

	h.press(t, "Mod4-Mod1-Up")
	h.press(t, "Mod4-KP_3")
	h.press(t, "Mod4-F10")

	require.NoError(t, wait(t, done))
	assert.Equal(t, []geometry.Action{
		{Kind: geometry.StepMove, Key: platform.KeyUp},
		{Kind: geometry.GridPlace, Slot: 3},
	}, h.actions.actions)
	assert.Equal(t, len(hotkeys.Table()), h.grabber.ungrabbed)
	assert.True(t, h.grabber.released)
}

func TestRun_GrabConflictStillServesOtherHotkeys(t *testing.T) {
	h := newHarness()
	h.grabber.conflicts["Mod4-Mod1-Up"] = true
	h.grabber.conflicts["Mod4-KP_5"] = true
	done := h.run(context.Background())

	h.press(t, "Mod4-Control-Left")
	h.press(t, "Mod4-F10")

	require.NoError(t, wait(t, done))
	assert.Equal(t, []geometry.Action{
		{Kind: geometry.EdgeSnap, Key: platform.KeyLeft},
	}, h.actions.actions)
	assert.Equal(t, len(hotkeys.Table())-2, h.grabber.ungrabbed)
}

func TestRun_ContextCancelStopsLoop(t *testing.T) {
	h := newHarness()
	ctx, cancel := context.WithCancel(context.Background())
	done := h.run(ctx)

	<-h.loop.started
	cancel()

	require.NoError(t, wait(t, done))
	assert.True(t, h.grabber.released)
}

func TestRun_UnexpectedLoopEnd(t *testing.T) {
	h := newHarness()
	h.loop.endEarly = true

	err := wait(t, h.run(context.Background()))

	assert.ErrorIs(t, err, ErrEventLoopStopped)
	assert.True(t, h.grabber.released)
}

func TestRun_PanicStillUnregisters(t *testing.T) {
	h := newHarness()
	h.loop.panicMsg = "connection reset by peer"

	err := wait(t, h.run(context.Background()))

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrEventLoopStopped))
	assert.Contains(t, err.Error(), "connection reset by peer")
	assert.Equal(t, len(hotkeys.Table()), h.grabber.ungrabbed)
	assert.True(t, h.grabber.released)
}
