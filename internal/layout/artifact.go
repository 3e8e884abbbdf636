// Package layout provides the coordinate model shared by the document
// templates: an A4 page measured in millimetres, positioned blocks, the
// vertical cursor that stacks them, and grid-table pagination.
//
// Everything in this package is pure. Templates place blocks into an
// Artifact; the render package turns the Artifact into PDF bytes.
package layout

// Page geometry in document units (mm).
const (
	PageWidth  = 210.0
	PageHeight = 297.0

	// PointsPerMM converts font sizes given in points to document units.
	PointsPerMM = 72 / 25.4

	// LineHeightFactor is the distance between baselines relative to the font size.
	LineHeightFactor = 1.15
)

// Color is an RGB colour.
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// Align is the horizontal anchoring of a text run relative to its X.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Style is the font state used for a text run or a table cell.
type Style struct {
	Size  float64 // points
	Bold  bool
	Color Color
}

// FontHeight returns the font size in document units.
func (s Style) FontHeight() float64 {
	return s.Size / PointsPerMM
}

// LineHeight returns the baseline-to-baseline distance in document units.
func (s Style) LineHeight() float64 {
	return s.FontHeight() * LineHeightFactor
}

// Position anchors a block on a page. Pages are numbered from 1.
type Position struct {
	Page int
	X, Y float64
}

// Pos returns the position itself; embedding Position satisfies Block.
func (p Position) Pos() Position { return p }

// Block is one positioned element of an Artifact.
type Block interface {
	Pos() Position
}

// TextRun is one or more lines of text. Y is the baseline of the first line.
type TextRun struct {
	Position
	Lines []string
	Style Style
	Align Align
}

// Height returns the vertical distance from the first to below the last baseline.
func (t TextRun) Height() float64 {
	return float64(len(t.Lines)) * t.Style.LineHeight()
}

// ImageBox embeds an encoded raster image. X, Y is the top-left corner.
type ImageBox struct {
	Position
	Width, Height float64
	Format        string // "PNG" or "JPG"
	Data          []byte
}

// Artifact is a composed document: a page count and an ordered block list.
type Artifact struct {
	Title  string
	Pages  int
	Blocks []Block
}

// NewArtifact returns an artifact with a single empty page.
func NewArtifact(title string) *Artifact {
	return &Artifact{Title: title, Pages: 1}
}

// Add appends a block.
func (a *Artifact) Add(b Block) {
	a.Blocks = append(a.Blocks, b)
}

// NewPage appends a page and returns its number.
func (a *Artifact) NewPage() int {
	a.Pages++
	return a.Pages
}

// Texts returns the text of every run and table cell in emission order.
func (a *Artifact) Texts() []string {
	var out []string
	for _, b := range a.Blocks {
		switch blk := b.(type) {
		case TextRun:
			out = append(out, blk.Lines...)
		case TableFragment:
			for _, c := range blk.Cells {
				out = append(out, c.Lines...)
			}
		}
	}
	return out
}

// TextRuns returns all text runs.
func (a *Artifact) TextRuns() []TextRun {
	var out []TextRun
	for _, b := range a.Blocks {
		if t, ok := b.(TextRun); ok {
			out = append(out, t)
		}
	}
	return out
}

// Images returns all embedded images.
func (a *Artifact) Images() []ImageBox {
	var out []ImageBox
	for _, b := range a.Blocks {
		if img, ok := b.(ImageBox); ok {
			out = append(out, img)
		}
	}
	return out
}

// Tables returns all table fragments.
func (a *Artifact) Tables() []TableFragment {
	var out []TableFragment
	for _, b := range a.Blocks {
		if t, ok := b.(TableFragment); ok {
			out = append(out, t)
		}
	}
	return out
}
