package signature

// PointerSample is a pointer position in screen (client) coordinates,
// independent of the input device that produced it.
type PointerSample struct {
	X, Y float64
}

// Point is a position in surface-local backing coordinates.
type Point struct {
	X, Y float64
}

// Rect is where the surface is displayed on screen. It corresponds to the
// bounding client rect of a canvas that may be scaled by the page layout.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// toSurface maps a screen sample into backing coordinates of a w×h surface
// displayed at r. A zero-sized rect is treated as unscaled.
func (r Rect) toSurface(s PointerSample, w, h int) Point {
	sx, sy := 1.0, 1.0
	if r.Width > 0 {
		sx = float64(w) / r.Width
	}
	if r.Height > 0 {
		sy = float64(h) / r.Height
	}
	return Point{
		X: (s.X - r.Left) * sx,
		Y: (s.Y - r.Top) * sy,
	}
}
