package compose

import (
	"github.com/a3tai/mcp-field-reports/internal/layout"
	"github.com/a3tai/mcp-field-reports/internal/signature"
)

// Fixed slots shared by both templates, in mm.
const (
	marginLeft  = 20.0
	marginRight = 190.0
	titleY      = 50.0
	fieldsY     = 65.0

	// valueDrop is the gap between a label and a value stacked below it.
	valueDrop = 5.0

	// tablePadding separates the bottom of a table from what follows.
	tablePadding = 10.0

	signatureRightX  = 120.0
	signatureWidth   = 50.0
	signatureHeight  = 15.0
	signatureImageDY = 2.0
	signatureEmptyDY = 10.0
)

var (
	labelStyle = layout.Style{Size: 9, Bold: true}
	valueStyle = layout.Style{Size: 9}

	tableText = layout.Color{R: 30, G: 41, B: 59}
	headStyle = layout.CellStyle{
		Style: layout.Style{Size: 9, Bold: true, Color: tableText},
		Fill:  layout.Color{R: 226, G: 232, B: 240},
	}
	bodyStyle = layout.CellStyle{
		Style: layout.Style{Size: 9, Color: tableText},
		Fill:  layout.White,
	}
)

func text(a *layout.Artifact, pos layout.Position, st layout.Style, lines ...string) {
	a.Add(layout.TextRun{Position: pos, Lines: lines, Style: st})
}

func aligned(a *layout.Artifact, pos layout.Position, st layout.Style, align layout.Align, s string) {
	a.Add(layout.TextRun{Position: pos, Lines: []string{s}, Style: st, Align: align})
}

// letterhead draws the company block on the left and the split logo text on
// the right. It does not depend on the record.
func letterhead(a *layout.Artifact, company string) {
	top := layout.Start(0)
	text(a, top.Advance(20).At(marginLeft), layout.Style{Size: 14, Bold: true}, company)

	small := layout.Style{Size: 9}
	text(a, top.Advance(26).At(marginLeft), small, "Luisenstr. 10")
	text(a, top.Advance(31).At(marginLeft), small, "02943 Weißwasser")
	text(a, top.Advance(36).At(marginLeft), small, "Tel.: 03576/283288")

	aligned(a, top.Advance(20).At(marginRight), layout.Style{Size: 14, Bold: true}, layout.AlignRight, "ROHRNETZ")
	aligned(a, top.Advance(26).At(marginRight), layout.Style{Size: 10, Bold: true}, layout.AlignRight, "Beil")
}

func title(a *layout.Artifact, t Template) {
	aligned(a, layout.Start(titleY).At(layout.PageWidth/2), layout.Style{Size: 16, Bold: true}, layout.AlignCenter, string(t))
}

// inline draws a bold label at lx and its value on the same baseline at vx.
func inline(a *layout.Artifact, cur layout.Cursor, lx, vx float64, label, value string) {
	text(a, cur.At(lx), labelStyle, label)
	text(a, cur.At(vx), valueStyle, value)
}

// stacked draws a bold label at x and its value one line below.
func stacked(a *layout.Artifact, cur layout.Cursor, x float64, label, value string) {
	text(a, cur.At(x), labelStyle, label)
	text(a, cur.Advance(valueDrop).At(x), valueStyle, value)
}

// table places a grid table at cur and returns the cursor below it.
func table(a *layout.Artifact, cur layout.Cursor, m layout.Measurer, cols []layout.Column, rows [][]string) layout.Cursor {
	end := layout.PlaceTable(a, cur, m, layout.Table{
		Columns:   cols,
		Rows:      rows,
		HeadStyle: headStyle,
		BodyStyle: bodyStyle,
	})
	return end.Advance(tablePadding)
}

// signatures draws the customer and employee slots side by side at cur.
func signatures(a *layout.Artifact, cur layout.Cursor, kunde, mitarbeiter string) {
	signatureSlot(a, cur, marginLeft, "Unterschrift Kunde:", kunde)
	signatureSlot(a, cur, signatureRightX, "Unterschrift Mitarbeiter:", mitarbeiter)
}

func embeddableSignature(payload string) (*signature.Image, error) {
	img, err := signature.DecodePayload(payload)
	if err != nil {
		return nil, err
	}
	return img.Embeddable()
}

// signatureSlot embeds the payload below the label, or draws the placeholder
// when the payload is empty or cannot be decoded into an image.
func signatureSlot(a *layout.Artifact, cur layout.Cursor, x float64, label, payload string) {
	text(a, cur.At(x), labelStyle, label)
	if payload != "" {
		if img, err := embeddableSignature(payload); err == nil {
			a.Add(layout.ImageBox{
				Position: cur.Advance(signatureImageDY).At(x),
				Width:    signatureWidth,
				Height:   signatureHeight,
				Format:   img.Format,
				Data:     img.Data,
			})
			return
		}
	}
	text(a, cur.Advance(signatureEmptyDY).At(x), valueStyle, layout.Placeholder)
}
