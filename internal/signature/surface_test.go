package signature

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	payloads []string
}

func (r *recorder) OnPayloadChanged(p string) { r.payloads = append(r.payloads, p) }

func alphaAt(s *Surface, x, y int) uint8 {
	return s.Image().NRGBAAt(x, y).A
}

func TestSurface_StrokeLifecycle(t *testing.T) {
	rec := &recorder{}
	s := NewSurface("", WithObserver(rec))

	assert.Equal(t, Idle, s.State())
	assert.False(t, s.HasContent())

	require.True(t, s.Begin(PointerSample{X: 10, Y: 10}))
	assert.Equal(t, Drawing, s.State())
	assert.False(t, s.Begin(PointerSample{X: 50, Y: 50}), "begin while drawing is ignored")

	for x := 20.0; x <= 100; x += 10 {
		assert.True(t, s.Extend(PointerSample{X: x, Y: 10}))
	}
	assert.Empty(t, rec.payloads, "nothing is published before release")

	payload, ok := s.End()
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(payload, "data:image/png;base64,"))
	assert.Equal(t, []string{payload}, rec.payloads)
	assert.Equal(t, Idle, s.State())
	assert.True(t, s.HasContent())

	s.Clear()
	assert.False(t, s.HasContent())
	assert.Equal(t, "", s.Payload())
	assert.Equal(t, []string{payload, ""}, rec.payloads)
	assert.Zero(t, alphaAt(s, 50, 10))
}

func TestSurface_IdleGuards(t *testing.T) {
	rec := &recorder{}
	s := NewSurface("", WithObserver(rec))

	assert.False(t, s.Extend(PointerSample{X: 5, Y: 5}))
	_, ok := s.End()
	assert.False(t, ok)
	assert.Empty(t, rec.payloads)
	assert.Zero(t, alphaAt(s, 5, 5))
}

func TestSurface_ClearWhileDrawing(t *testing.T) {
	s := NewSurface("")
	s.Begin(PointerSample{X: 1, Y: 1})
	s.Extend(PointerSample{X: 30, Y: 30})

	s.Clear()

	assert.Equal(t, Idle, s.State())
	assert.False(t, s.Extend(PointerSample{X: 60, Y: 60}))
	assert.True(t, s.Begin(PointerSample{X: 60, Y: 60}), "surface is reusable after clear")
}

func TestSurface_StrokeIsDrawnWhereThePointerMoved(t *testing.T) {
	s := NewSurface("")
	s.Begin(PointerSample{X: 20, Y: 40})
	s.Extend(PointerSample{X: 80, Y: 40})

	assert.Greater(t, alphaAt(s, 50, 40), uint8(128))
	assert.Zero(t, alphaAt(s, 50, 50))
	assert.Zero(t, alphaAt(s, 90, 40))
}

func TestSurface_ScaleCorrection(t *testing.T) {
	tests := []struct {
		name    string
		display Rect
		scale   float64
	}{
		{"unscaled", Rect{Left: 0, Top: 0, Width: 400, Height: 120}, 1},
		{"displayed at half size", Rect{Left: 30, Top: 200, Width: 200, Height: 60}, 2},
		{"displayed larger", Rect{Left: 8, Top: 12, Width: 800, Height: 240}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSurface("", WithDisplayRect(tt.display))

			a := s.SurfacePoint(PointerSample{X: tt.display.Left + 10, Y: tt.display.Top + 10})
			b := s.SurfacePoint(PointerSample{X: tt.display.Left + 10 + 25, Y: tt.display.Top + 10 + 7})

			assert.InDelta(t, 10*tt.scale, a.X, 1e-9)
			assert.InDelta(t, 10*tt.scale, a.Y, 1e-9)
			assert.InDelta(t, 25*tt.scale, b.X-a.X, 1e-9)
			assert.InDelta(t, 7*tt.scale, b.Y-a.Y, 1e-9)
		})
	}
}

func TestSurface_ScaledStrokeLandsOnBackingPixels(t *testing.T) {
	s := NewSurface("", WithDisplayRect(Rect{Left: 100, Top: 100, Width: 200, Height: 60}))

	s.Begin(PointerSample{X: 110, Y: 120})
	s.Extend(PointerSample{X: 140, Y: 120})

	// Screen x 110..140 maps to backing x 20..80 at y 40.
	assert.Greater(t, alphaAt(s, 60, 40), uint8(128))
	assert.Zero(t, alphaAt(s, 30, 20))
}

func TestSurface_Seed(t *testing.T) {
	src := NewSurface("")
	src.Begin(PointerSample{X: 10, Y: 60})
	src.Extend(PointerSample{X: 200, Y: 60})
	payload, ok := src.End()
	require.True(t, ok)

	rec := &recorder{}
	s := NewSurface(payload, WithObserver(rec))

	assert.True(t, s.HasContent())
	assert.Equal(t, Idle, s.State())
	assert.Greater(t, alphaAt(s, 100, 60), uint8(128))
	assert.Empty(t, rec.payloads, "seeding does not publish")
}

func TestSurface_SeedInvalidPayloadStaysBlank(t *testing.T) {
	for _, seed := range []string{
		"not a data uri",
		"data:image/png;base64,!!!",
		"data:image/png;base64,aGVsbG8=",
		"data:text/plain;base64,aGVsbG8=",
	} {
		s := NewSurface(seed)
		assert.False(t, s.HasContent(), seed)
		assert.Equal(t, "", s.Payload())
		assert.False(t, s.Seed(seed))
	}
}

func TestDecodePayload(t *testing.T) {
	s := NewSurface("", WithSize(40, 12))
	s.Begin(PointerSample{X: 1, Y: 1})
	s.Extend(PointerSample{X: 10, Y: 10})
	payload, _ := s.End()

	img, err := DecodePayload(payload)
	require.NoError(t, err)
	assert.Equal(t, "PNG", img.Format)
	assert.Equal(t, 40, img.Width)
	assert.Equal(t, 12, img.Height)

	_, err = DecodePayload("")
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "drawing", Drawing.String())
}
