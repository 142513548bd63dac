package geometry

import "github.com/1broseidon/windowkey/internal/platform"

// History remembers, per window, the rectangle held before the last change
// applied to it. Entries live for the lifetime of the process.
type History struct {
	rects map[platform.WindowID]platform.Rect
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{rects: make(map[platform.WindowID]platform.Rect)}
}

// Record stores r as the pre-change rectangle of id.
func (h *History) Record(id platform.WindowID, r platform.Rect) {
	h.rects[id] = r
}

// Lookup returns the recorded rectangle of id.
func (h *History) Lookup(id platform.WindowID) (platform.Rect, bool) {
	r, ok := h.rects[id]
	return r, ok
}

// Len returns the number of windows with a recorded rectangle.
func (h *History) Len() int {
	return len(h.rects)
}
