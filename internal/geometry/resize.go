package geometry

import "github.com/1broseidon/windowkey/internal/platform"

// Resize grows or shrinks the window one step with its top-left corner
// fixed. Up and Left shrink, Down and Right grow. Shrinking stops at the
// snapshot's minimum size; growing stops at the work-area edge plus offset.
func Resize(s platform.Snapshot, p Params) platform.Rect {
	r := s.Rect
	wa := s.WorkArea
	minW := max(s.MinSize.Width, 1)
	minH := max(s.MinSize.Height, 1)

	if s.Keys.Up {
		if r.Height > minH {
			r.Height = max(minH, r.Height-p.Step)
		}
	} else if s.Keys.Down {
		if r.Y+r.Height-p.MinY < wa.Bottom {
			r.Height = max(r.Height, min(wa.Bottom-p.MinY-r.Y, r.Height+p.Step))
		}
	}

	if s.Keys.Left {
		if r.Width > minW {
			r.Width = max(minW, r.Width-p.Step)
		}
	} else if s.Keys.Right {
		if r.X+r.Width < wa.Right-p.MinX {
			r.Width = max(r.Width, min(wa.Right-p.MinX-r.X, r.Width+p.Step))
		}
	}

	return r
}
