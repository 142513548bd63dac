package geometry

import (
	"errors"
	"io"
	"testing"

	"github.com/1broseidon/windowkey/internal/platform"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	rect      platform.Rect
	maximized bool
	saved     platform.Rect
}

// fakeBackend behaves like a window manager that remembers the normal
// geometry while a window is maximized.
type fakeBackend struct {
	active   platform.WindowID
	windows  map[platform.WindowID]*fakeWindow
	snapErr  error
	moveErr  error
	moves    int
	toggles  int
	workArea platform.WorkArea
}

func newFakeBackend(active platform.WindowID, r platform.Rect) *fakeBackend {
	return &fakeBackend{
		active:   active,
		windows:  map[platform.WindowID]*fakeWindow{active: {rect: r}},
		workArea: testWorkArea,
	}
}

func (b *fakeBackend) Snapshot(trigger platform.Key) (platform.Snapshot, error) {
	if b.snapErr != nil {
		return platform.Snapshot{}, b.snapErr
	}
	w, ok := b.windows[b.active]
	if !ok {
		return platform.Snapshot{}, platform.ErrNoActiveWindow
	}
	return platform.Snapshot{
		Window:    b.active,
		Rect:      w.rect,
		WorkArea:  b.workArea,
		Keys:      platform.NewKeyState(trigger, nil),
		Maximized: w.maximized,
		Screen:    testScreen,
		MinSize:   platform.Size{Width: 100, Height: 50},
	}, nil
}

func (b *fakeBackend) MoveResize(id platform.WindowID, r platform.Rect) error {
	if b.moveErr != nil {
		return b.moveErr
	}
	b.moves++
	b.windows[id].rect = r
	return nil
}

func (b *fakeBackend) SetMaximized(id platform.WindowID, maximized bool) error {
	w := b.windows[id]
	if w.maximized == maximized {
		return nil
	}
	b.toggles++
	if maximized {
		w.saved = w.rect
		w.rect = platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1040}
	} else {
		w.rect = w.saved
	}
	w.maximized = maximized
	return nil
}

func newTestEngine(b *fakeBackend) *Engine {
	return NewEngine(b, testParams, log.New(io.Discard))
}

func TestEngine_MoveRecordsPreviousRect(t *testing.T) {
	start := platform.Rect{X: 500, Y: 400, Width: 800, Height: 600}
	b := newFakeBackend(7, start)
	e := newTestEngine(b)

	e.Handle(Action{Kind: StepMove, Key: platform.KeyLeft})

	assert.Equal(t, platform.Rect{X: 490, Y: 400, Width: 800, Height: 600}, b.windows[7].rect)
	prev, ok := e.History().Lookup(7)
	require.True(t, ok)
	assert.Equal(t, start, prev)
}

func TestEngine_NoChangeSkipsMutationAndHistory(t *testing.T) {
	b := newFakeBackend(7, platform.Rect{X: -4, Y: -4, Width: 400, Height: 300})
	e := newTestEngine(b)

	e.Handle(Action{Kind: EdgeSnap, Key: platform.KeyUp})

	assert.Zero(t, b.moves)
	assert.Zero(t, e.History().Len())
}

func TestEngine_RestoreReturnsToRectBeforeLastAction(t *testing.T) {
	start := platform.Rect{X: 300, Y: 200, Width: 800, Height: 600}

	actions := []Action{
		{Kind: StepMove, Key: platform.KeyDown},
		{Kind: EdgeSnap, Key: platform.KeyRight},
		{Kind: StepResize, Key: platform.KeyRight},
		{Kind: GridPlace, Slot: 1},
		{Kind: GridPlace, Slot: 9},
	}

	for _, a := range actions {
		t.Run(a.String(), func(t *testing.T) {
			b := newFakeBackend(7, start)
			e := newTestEngine(b)

			e.Handle(a)
			require.NotEqual(t, start, b.windows[7].rect)

			e.Handle(Action{Kind: GridPlace, Slot: SlotRestore})
			assert.Equal(t, start, b.windows[7].rect)
		})
	}
}

func TestEngine_RestoreTwiceSwapsBack(t *testing.T) {
	start := platform.Rect{X: 300, Y: 200, Width: 800, Height: 600}
	b := newFakeBackend(7, start)
	e := newTestEngine(b)

	e.Handle(Action{Kind: GridPlace, Slot: 3})
	placed := b.windows[7].rect

	e.Handle(Action{Kind: RestorePrevious})
	assert.Equal(t, start, b.windows[7].rect)

	e.Handle(Action{Kind: RestorePrevious})
	assert.Equal(t, placed, b.windows[7].rect)
}

func TestEngine_RestoreWithoutHistoryIsNoop(t *testing.T) {
	start := platform.Rect{X: 300, Y: 200, Width: 800, Height: 600}
	b := newFakeBackend(7, start)
	e := newTestEngine(b)

	e.Handle(Action{Kind: GridPlace, Slot: SlotRestore})

	assert.Zero(t, b.moves)
	assert.Zero(t, b.toggles)
	assert.Equal(t, start, b.windows[7].rect)
}

func TestEngine_MaximizeToggleTwiceRestoresRect(t *testing.T) {
	start := platform.Rect{X: 300, Y: 200, Width: 800, Height: 600}
	b := newFakeBackend(7, start)
	e := newTestEngine(b)

	e.Handle(Action{Kind: GridPlace, Slot: SlotMaximize})
	require.True(t, b.windows[7].maximized)

	e.Handle(Action{Kind: GridPlace, Slot: SlotMaximize})
	assert.False(t, b.windows[7].maximized)
	assert.Equal(t, start, b.windows[7].rect)
	assert.Equal(t, 2, b.toggles)

	prev, ok := e.History().Lookup(7)
	require.True(t, ok)
	assert.Equal(t, platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1040}, prev)
}

func TestEngine_GridClearsMaximizedFlag(t *testing.T) {
	b := newFakeBackend(7, platform.Rect{X: 300, Y: 200, Width: 800, Height: 600})
	e := newTestEngine(b)

	e.Handle(Action{Kind: ToggleMaximize})
	require.True(t, b.windows[7].maximized)

	e.Handle(Action{Kind: GridPlace, Slot: 6})
	assert.False(t, b.windows[7].maximized)
	assert.Equal(t, platform.Rect{X: 964, Y: -4, Width: 960, Height: 1048}, b.windows[7].rect)
}

func TestEngine_NoActiveWindowIsNoop(t *testing.T) {
	b := newFakeBackend(7, platform.Rect{X: 300, Y: 200, Width: 800, Height: 600})
	b.active = 0
	e := newTestEngine(b)

	d := e.Handle(Action{Kind: GridPlace, Slot: 1})

	assert.False(t, d.Changed())
	assert.Zero(t, b.moves)
	assert.Zero(t, e.History().Len())
}

func TestEngine_SnapshotErrorIsNoop(t *testing.T) {
	b := newFakeBackend(7, platform.Rect{X: 300, Y: 200, Width: 800, Height: 600})
	b.snapErr = errors.New("connection reset")
	e := newTestEngine(b)

	e.Handle(Action{Kind: StepMove, Key: platform.KeyUp})

	assert.Zero(t, b.moves)
	assert.Zero(t, e.History().Len())
}

func TestEngine_MutationFailureIsSwallowed(t *testing.T) {
	b := newFakeBackend(7, platform.Rect{X: 300, Y: 200, Width: 800, Height: 600})
	b.moveErr = errors.New("BadWindow")
	e := newTestEngine(b)

	d := e.Handle(Action{Kind: StepMove, Key: platform.KeyUp})

	assert.False(t, d.Changed())
	assert.Zero(t, e.History().Len())
}

func TestEngine_ExitIsIgnored(t *testing.T) {
	b := newFakeBackend(7, platform.Rect{X: 300, Y: 200, Width: 800, Height: 600})
	e := newTestEngine(b)

	d := e.Handle(Action{Kind: Exit})

	assert.False(t, d.Changed())
	assert.Zero(t, b.moves)
}

func TestEngine_HistoryIsPerWindow(t *testing.T) {
	a := platform.Rect{X: 300, Y: 200, Width: 800, Height: 600}
	c := platform.Rect{X: 50, Y: 60, Width: 500, Height: 400}
	b := newFakeBackend(7, a)
	b.windows[8] = &fakeWindow{rect: c}
	e := newTestEngine(b)

	e.Handle(Action{Kind: GridPlace, Slot: 1})
	b.active = 8
	e.Handle(Action{Kind: GridPlace, Slot: 8})

	b.active = 7
	e.Handle(Action{Kind: RestorePrevious})
	assert.Equal(t, a, b.windows[7].rect)

	b.active = 8
	e.Handle(Action{Kind: RestorePrevious})
	assert.Equal(t, c, b.windows[8].rect)
}

func TestEngine_PositiveOffsetsLeaveEdgeWindowInPlace(t *testing.T) {
	start := platform.Rect{X: 300, Y: 438, Width: 800, Height: 600}
	b := newFakeBackend(7, start)
	e := NewEngine(b, Params{Step: 10, MinX: 4, MinY: 4}, log.New(io.Discard))

	e.Handle(Action{Kind: StepMove, Key: platform.KeyDown})
	e.Handle(Action{Kind: EdgeSnap, Key: platform.KeyDown})

	assert.Equal(t, start, b.windows[7].rect)
	assert.Zero(t, b.moves)
	assert.Zero(t, e.History().Len())
}
