package geometry

import "github.com/1broseidon/windowkey/internal/platform"

// Move shifts the window one step in each held direction. Up wins over Down
// and Left over Right; one vertical and one horizontal key move diagonally.
// A clamp never moves the window against the held key.
func Move(s platform.Snapshot, p Params) platform.Rect {
	r := s.Rect
	wa := s.WorkArea

	if s.Keys.Up {
		if r.Y-p.MinY > wa.Top {
			r.Y = max(wa.Top+p.MinY, r.Y-p.Step)
		}
	} else if s.Keys.Down {
		if r.Y+r.Height-p.MinY < wa.Bottom {
			r.Y = max(r.Y, min(wa.Bottom-p.MinY-r.Height, r.Y+p.Step))
		}
	}

	if s.Keys.Left {
		if r.X-p.MinX > wa.Left {
			r.X = max(wa.Left+p.MinX, r.X-p.Step)
		}
	} else if s.Keys.Right {
		if r.X+r.Width-p.MinX < wa.Right {
			r.X = max(r.X, min(wa.Right-p.MinX-r.Width, r.X+p.Step))
		}
	}

	return r
}
