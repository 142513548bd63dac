package geometry

import "github.com/1broseidon/windowkey/internal/platform"

// Grid slots that do not map to a rectangle.
const (
	SlotRestore  = 0
	SlotMaximize = 5
)

// slotRule places a window as fractions of the work area. Left-anchored
// rules start at the left edge; the others end at the right edge.
type slotRule struct {
	rightAnchored bool
	widthNum      int
	widthDen      int
	heightDen     int
}

// gridSlots is the fixed numpad layout.
//
// TODO: slot 9 reuses slot 8's third-width term; confirm whether a
// different width was intended before changing it.
var gridSlots = map[int]slotRule{
	1: {widthNum: 1, widthDen: 3, heightDen: 1},
	2: {widthNum: 2, widthDen: 5, heightDen: 1},
	3: {widthNum: 1, widthDen: 2, heightDen: 1},
	4: {widthNum: 3, widthDen: 5, heightDen: 1},
	6: {rightAnchored: true, widthNum: 1, widthDen: 2, heightDen: 1},
	7: {rightAnchored: true, widthNum: 2, widthDen: 5, heightDen: 1},
	8: {rightAnchored: true, widthNum: 1, widthDen: 3, heightDen: 1},
	9: {rightAnchored: true, widthNum: 1, widthDen: 3, heightDen: 2},
}

// GridRect returns the rectangle for a placement slot. ok is false for the
// maximize and restore slots and for unknown slots.
func GridRect(slot int, wa platform.WorkArea, p Params) (platform.Rect, bool) {
	rule, ok := gridSlots[slot]
	if !ok {
		return platform.Rect{}, false
	}

	maxW := wa.Right - wa.Left
	maxH := wa.Bottom - wa.Top - 2*p.MinY
	maxR := wa.Right - p.MinX

	w := maxW * rule.widthNum / rule.widthDen
	r := platform.Rect{
		X:      wa.Left + p.MinX,
		Y:      wa.Top + p.MinY,
		Width:  w,
		Height: maxH / rule.heightDen,
	}
	if rule.rightAnchored {
		r.X = maxR - w
	}
	return r, true
}
