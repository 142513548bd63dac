package geometry

import "github.com/1broseidon/windowkey/internal/platform"

// Snap moves the window flush against one work-area edge. The size is kept
// and the window never moves against dir.
//
// Snapping down from a window already resting on the work-area bottom pushes
// it to the physical screen bottom instead, past any bottom panel.
func Snap(s platform.Snapshot, dir platform.Key, p Params) platform.Rect {
	r := s.Rect
	wa := s.WorkArea

	switch dir {
	case platform.KeyUp:
		if r.Y > wa.Top+p.MinY {
			r.Y = wa.Top + p.MinY
		}
	case platform.KeyDown:
		bottom := r.Bottom()
		switch {
		case bottom < wa.Bottom:
			r.Y = max(r.Y, wa.Bottom-p.MinY-r.Height)
		case restsOn(bottom, wa.Bottom, p.MinY):
			if screenBottom := s.Screen.Bottom(); screenBottom > wa.Bottom {
				r.Y = max(r.Y, screenBottom-p.MinY-r.Height)
			}
		}
	case platform.KeyLeft:
		if r.X > wa.Left+p.MinX {
			r.X = wa.Left + p.MinX
		}
	case platform.KeyRight:
		if r.Right() < wa.Right {
			r.X = max(r.X, wa.Right-p.MinX-r.Width)
		}
	}

	return r
}

// restsOn reports whether edge sits on limit, allowing for the offset band a
// previous snap leaves the window in.
func restsOn(edge, limit, offset int) bool {
	lo, hi := limit, limit-offset
	if lo > hi {
		lo, hi = hi, lo
	}
	return edge >= lo && edge <= hi
}
