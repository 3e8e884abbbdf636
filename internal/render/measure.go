// Package render turns a layout.Artifact into PDF bytes with go-pdf/fpdf.
//
// Text is set in the built-in Helvetica, which fpdf encodes as
// Windows-1252; UTF-8 input is transcoded before it reaches fpdf.
package render

import (
	"strings"
	"sync"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/a3tai/mcp-field-reports/internal/layout"
)

const fontFamily = "Helvetica"

// WinAnsi transcodes s to Windows-1252. Runes outside the code page become '?'.
func WinAnsi(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			c = '?'
		}
		b.WriteByte(c)
	}
	return b.String()
}

func fontStyle(st layout.Style) string {
	if st.Bold {
		return "B"
	}
	return ""
}

// Measurer measures strings with the Helvetica metrics fpdf ships with.
// It is safe for concurrent use.
type Measurer struct {
	mu  sync.Mutex
	pdf *fpdf.Fpdf
}

// NewMeasurer returns a Measurer backed by a scratch fpdf document.
func NewMeasurer() *Measurer {
	return &Measurer{pdf: fpdf.New("P", "mm", "A4", "")}
}

// StringWidth implements layout.Measurer.
func (m *Measurer) StringWidth(s string, st layout.Style) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pdf.SetFont(fontFamily, fontStyle(st), st.Size)
	return m.pdf.GetStringWidth(WinAnsi(s))
}
