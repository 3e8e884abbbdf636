package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-field-reports/internal/layout"
)

func TestWinAnsi(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"Straße", "Stra\xdfe"},
		{"—", "\x97"},
		{"RG – Empfänger", "RG \x96 Empf\xe4nger"},
		{"m³/m", "m\xb3/m"},
		{"日本", "??"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, WinAnsi(tt.in))
		})
	}
}

func TestMeasurer(t *testing.T) {
	m := NewMeasurer()
	regular := layout.Style{Size: 9}
	bold := layout.Style{Size: 9, Bold: true}

	assert.Zero(t, m.StringWidth("", regular))
	w := m.StringWidth("Leistungsauftrag", regular)
	assert.Greater(t, w, 0.0)
	assert.Greater(t, m.StringWidth("Leistungsauftrag", bold), w)
	assert.InDelta(t, 2*w, m.StringWidth("Leistungsauftrag", layout.Style{Size: 18}), 1e-6)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	img.Set(1, 1, color.Black)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRenderer_Render(t *testing.T) {
	a := layout.NewArtifact("Leistungsauftrag")
	a.Add(layout.TextRun{Position: layout.Position{Page: 1, X: 105, Y: 50}, Lines: []string{"Leistungsauftrag"}, Style: layout.Style{Size: 16, Bold: true}, Align: layout.AlignCenter})
	a.Add(layout.TextRun{Position: layout.Position{Page: 1, X: 20, Y: 65}, Lines: []string{"Einsatzort:", "—"}, Style: layout.Style{Size: 9}})
	layout.PlaceTable(a, layout.Start(80), NewMeasurer(), layout.Table{
		Columns: []layout.Column{{Header: "Beschreibung", Width: 40}, {Header: "Bemerkung"}},
		Rows:    [][]string{{"Pumpeninstallation", ""}},
	})
	a.Add(layout.ImageBox{Position: layout.Position{Page: 1, X: 20, Y: 120}, Width: 50, Height: 15, Format: "PNG", Data: pngBytes(t)})
	p := a.NewPage()
	a.Add(layout.TextRun{Position: layout.Position{Page: p, X: 20, Y: 20}, Lines: []string{"Seite 2"}, Style: layout.Style{Size: 9}})

	r := NewRenderer("mcp-field-reports", "Rohrnetz Beil GmbH")
	r.Now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }

	data, err := r.Render(a)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.True(t, bytes.Contains(data, []byte("/Count 2")))

	again, err := r.Render(a)
	require.NoError(t, err)
	assert.Equal(t, data, again, "rendering is deterministic for a fixed clock")
}

func TestRenderer_Errors(t *testing.T) {
	r := NewRenderer("", "")

	_, err := r.Render(nil)
	assert.ErrorIs(t, err, ErrRender)

	a := layout.NewArtifact("x")
	a.Add(layout.TextRun{Position: layout.Position{Page: 3}, Lines: []string{"lost"}})
	_, err = r.Render(a)
	assert.ErrorIs(t, err, ErrRender)

	b := layout.NewArtifact("x")
	b.Add(layout.ImageBox{Position: layout.Position{Page: 1}, Width: 10, Height: 10, Format: "PNG", Data: []byte("nope")})
	_, err = r.Render(b)
	assert.ErrorIs(t, err, ErrRender)
}
