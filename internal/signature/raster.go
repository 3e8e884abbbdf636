package signature

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

// arcSteps is the number of segments used for each round cap.
const arcSteps = 8

// stroker paints round-capped line segments onto an image. Painting every
// segment with round caps at both ends also yields round joins.
type stroker struct {
	raster *vector.Rasterizer
	width  float64
	ink    image.Image
}

func newStroker(w, h int, width float64, ink color.Color) *stroker {
	return &stroker{
		raster: vector.NewRasterizer(w, h),
		width:  width,
		ink:    image.NewUniform(ink),
	}
}

// segment draws the capsule around a→b onto dst.
func (s *stroker) segment(dst *image.NRGBA, a, b Point) {
	b0 := dst.Bounds()
	s.raster.Reset(b0.Dx(), b0.Dy())

	r := s.width / 2
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l < 1e-9 {
		dx, dy, l = 1, 0, 1
	}
	dx, dy = dx/l, dy/l
	nx, ny := -dy, dx

	// Half circle around b from +n to -n, then around a from -n back to +n.
	s.raster.MoveTo(float32(b.X+nx*r), float32(b.Y+ny*r))
	for i := 1; i <= arcSteps; i++ {
		t := math.Pi * float64(i) / arcSteps
		c, sn := math.Cos(t), math.Sin(t)
		s.raster.LineTo(float32(b.X+r*(nx*c+dx*sn)), float32(b.Y+r*(ny*c+dy*sn)))
	}
	for i := 0; i <= arcSteps; i++ {
		t := math.Pi * float64(i) / arcSteps
		c, sn := math.Cos(t), math.Sin(t)
		s.raster.LineTo(float32(a.X-r*(nx*c+dx*sn)), float32(a.Y-r*(ny*c+dy*sn)))
	}
	s.raster.ClosePath()

	s.raster.Draw(dst, b0, s.ink, image.Point{})
}
