// Package signature captures freehand signatures. A Surface is a fixed-size
// raster that pointer samples are drawn onto; when a stroke is released the
// raster is published as a PNG data URI, the payload the document templates
// embed. An empty payload means no signature was captured.
package signature

import (
	"image"
	"image/color"
	"image/draw"
)

// Default backing size of a surface and the pen width, in surface units.
const (
	DefaultWidth  = 400
	DefaultHeight = 120
	StrokeWidth   = 2.0
)

// State is the capture state of a surface.
type State int

const (
	Idle State = iota
	Drawing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	default:
		return "unknown"
	}
}

// Observer receives every payload the surface publishes, including the
// empty payload after Clear.
type Observer interface {
	OnPayloadChanged(payload string)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(payload string)

// OnPayloadChanged calls f(payload).
func (f ObserverFunc) OnPayloadChanged(payload string) { f(payload) }

// Surface is a signature capture surface. It is not safe for concurrent use;
// input events are expected to arrive one at a time.
type Surface struct {
	width, height int
	display       Rect
	img           *image.NRGBA
	pen           *stroker
	observer      Observer

	state      State
	hasContent bool
	last       Point
	payload    string
}

// Option configures a Surface.
type Option func(*Surface)

// WithSize sets the backing resolution.
func WithSize(w, h int) Option {
	return func(s *Surface) {
		if w > 0 && h > 0 {
			s.width, s.height = w, h
		}
	}
}

// WithObserver registers the payload observer.
func WithObserver(o Observer) Option {
	return func(s *Surface) { s.observer = o }
}

// WithDisplayRect sets where the surface is shown on screen.
func WithDisplayRect(r Rect) Option {
	return func(s *Surface) { s.display = r }
}

// NewSurface creates an idle, blank surface. If seed is non-empty it is
// drawn onto the surface once; an undecodable seed leaves the surface blank.
func NewSurface(seed string, opts ...Option) *Surface {
	s := &Surface{width: DefaultWidth, height: DefaultHeight}
	for _, opt := range opts {
		opt(s)
	}
	if s.display == (Rect{}) {
		s.display = Rect{Width: float64(s.width), Height: float64(s.height)}
	}
	s.img = image.NewNRGBA(image.Rect(0, 0, s.width, s.height))
	s.pen = newStroker(s.width, s.height, StrokeWidth, color.Black)
	if seed != "" {
		s.Seed(seed)
	}
	return s
}

// Size returns the backing resolution.
func (s *Surface) Size() (w, h int) { return s.width, s.height }

// State returns the current capture state.
func (s *Surface) State() State { return s.state }

// HasContent reports whether anything has been drawn or seeded since the last Clear.
func (s *Surface) HasContent() bool { return s.hasContent }

// Payload returns the most recently published payload.
func (s *Surface) Payload() string { return s.payload }

// SetDisplayRect updates where the surface is shown, e.g. after a resize.
func (s *Surface) SetDisplayRect(r Rect) { s.display = r }

// SurfacePoint maps a screen sample into backing coordinates.
func (s *Surface) SurfacePoint(p PointerSample) Point {
	return s.display.toSurface(p, s.width, s.height)
}

// Image returns a copy of the current raster.
func (s *Surface) Image() *image.NRGBA {
	out := image.NewNRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// Begin starts a stroke at p. It does nothing unless the surface is idle.
func (s *Surface) Begin(p PointerSample) bool {
	if s.state != Idle {
		return false
	}
	s.state = Drawing
	s.hasContent = true
	s.last = s.SurfacePoint(p)
	return true
}

// Extend draws a segment from the previous position to p. It does nothing
// unless a stroke is in progress.
func (s *Surface) Extend(p PointerSample) bool {
	if s.state != Drawing {
		return false
	}
	next := s.SurfacePoint(p)
	s.pen.segment(s.img, s.last, next)
	s.last = next
	return true
}

// End finishes the stroke and publishes the raster as a new payload. It
// returns false, publishing nothing, when no stroke was in progress.
func (s *Surface) End() (string, bool) {
	if s.state != Drawing {
		return "", false
	}
	s.state = Idle
	payload, err := EncodePNG(s.img)
	if err != nil {
		return "", false
	}
	s.publish(payload)
	return payload, true
}

// Clear erases the surface, abandons any stroke in progress and publishes
// the empty payload.
func (s *Surface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	s.state = Idle
	s.hasContent = false
	s.publish("")
}

// Seed draws an existing payload onto the surface without starting a stroke
// or publishing. It reports whether the payload could be decoded; on failure
// the surface is left untouched.
func (s *Surface) Seed(payload string) bool {
	decoded, err := DecodePayload(payload)
	if err != nil {
		return false
	}
	m, err := decoded.Decode()
	if err != nil {
		return false
	}
	draw.Draw(s.img, s.img.Bounds(), m, m.Bounds().Min, draw.Over)
	s.hasContent = true
	s.payload = payload
	return true
}

func (s *Surface) publish(payload string) {
	s.payload = payload
	if s.observer != nil {
		s.observer.OnPayloadChanged(payload)
	}
}
