package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/a3tai/mcp-field-reports/internal/layout"
)

// ErrRender is returned when fpdf reports an error while producing a document.
var ErrRender = errors.New("render: failed to produce PDF")

// Renderer writes artifacts as A4 portrait PDF documents.
type Renderer struct {
	Creator string
	Author  string

	// Now stamps the document's creation date. Defaults to time.Now.
	Now func() time.Time
}

// NewRenderer creates a renderer that records creator and author in the document info.
func NewRenderer(creator, author string) *Renderer {
	return &Renderer{Creator: creator, Author: author, Now: time.Now}
}

// Render produces the PDF bytes for a.
func (r *Renderer) Render(a *layout.Artifact) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.RenderTo(&buf, a); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderTo writes the PDF for a to w.
func (r *Renderer) RenderTo(w io.Writer, a *layout.Artifact) error {
	if a == nil {
		return fmt.Errorf("%w: nil artifact", ErrRender)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(a.Title, true)
	if r.Creator != "" {
		pdf.SetCreator(r.Creator, true)
	}
	if r.Author != "" {
		pdf.SetAuthor(r.Author, true)
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	ts := now()
	pdf.SetCreationDate(ts)
	pdf.SetModificationDate(ts)

	byPage := make([][]layout.Block, a.Pages+1)
	for _, b := range a.Blocks {
		p := b.Pos().Page
		if p < 1 || p > a.Pages {
			return fmt.Errorf("%w: block on page %d of %d", ErrRender, p, a.Pages)
		}
		byPage[p] = append(byPage[p], b)
	}

	images := 0
	for page := 1; page <= a.Pages; page++ {
		pdf.AddPage()
		for _, b := range byPage[page] {
			switch blk := b.(type) {
			case layout.TextRun:
				drawText(pdf, blk)
			case layout.TableFragment:
				drawTable(pdf, blk)
			case layout.ImageBox:
				images++
				drawImage(pdf, blk, fmt.Sprintf("image-%d", images))
			default:
				return fmt.Errorf("%w: unsupported block %T", ErrRender, b)
			}
		}
	}

	if pdf.Err() {
		return fmt.Errorf("%w: %v", ErrRender, pdf.Error())
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

func setStyle(pdf *fpdf.Fpdf, st layout.Style) {
	pdf.SetFont(fontFamily, fontStyle(st), st.Size)
	pdf.SetTextColor(int(st.Color.R), int(st.Color.G), int(st.Color.B))
}

func drawText(pdf *fpdf.Fpdf, t layout.TextRun) {
	setStyle(pdf, t.Style)
	lh := t.Style.LineHeight()
	for i, line := range t.Lines {
		s := WinAnsi(line)
		x := t.X
		switch t.Align {
		case layout.AlignCenter:
			x -= pdf.GetStringWidth(s) / 2
		case layout.AlignRight:
			x -= pdf.GetStringWidth(s)
		}
		pdf.Text(x, t.Y+float64(i)*lh, s)
	}
}

func drawTable(pdf *fpdf.Fpdf, t layout.TableFragment) {
	lc := layout.GridLineColor
	pdf.SetDrawColor(int(lc.R), int(lc.G), int(lc.B))
	pdf.SetLineWidth(layout.GridLineWidth)
	for _, c := range t.Cells {
		pdf.SetFillColor(int(c.Fill.R), int(c.Fill.G), int(c.Fill.B))
		pdf.Rect(c.X, c.Y, c.Width, c.Height, "FD")
		setStyle(pdf, c.Style)
		for i, line := range c.Lines {
			if line == "" {
				continue
			}
			pdf.Text(c.X+layout.CellPadding, c.Baseline(i), WinAnsi(line))
		}
	}
}

func drawImage(pdf *fpdf.Fpdf, img layout.ImageBox, name string) {
	opts := fpdf.ImageOptions{ImageType: img.Format}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))
	pdf.ImageOptions(name, img.X, img.Y, img.Width, img.Height, false, opts, 0, "")
}
