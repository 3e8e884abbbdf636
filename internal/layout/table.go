package layout

// Grid-table geometry. The margins and padding are the classic 40 pt and
// 5 pt expressed in document units.
const (
	TableMargin   = 40 / PointsPerMM
	CellPadding   = 5 / PointsPerMM
	GridLineWidth = 0.1
)

// GridLineColor is the colour of the cell borders.
var GridLineColor = Color{200, 200, 200}

// Column declares a table column. A Width of zero means the column takes
// whatever horizontal space the other columns leave.
type Column struct {
	Header string
	Width  float64
}

// CellStyle is the font and fill of a row kind.
type CellStyle struct {
	Style
	Fill Color
}

// Table is a grid table awaiting placement.
type Table struct {
	Columns   []Column
	Rows      [][]string
	HeadStyle CellStyle
	BodyStyle CellStyle
}

// Cell is a placed table cell. X, Y is the top-left corner.
type Cell struct {
	X, Y          float64
	Width, Height float64
	Lines         []string
	Style         Style
	Fill          Color
	Head          bool
}

// Baseline returns the baseline of line i inside the cell.
func (c Cell) Baseline(i int) float64 {
	fh := c.Style.FontHeight()
	lh := c.Style.LineHeight()
	return c.Y + CellPadding + float64(i)*lh + (lh-fh)/2 + fh*0.8
}

// TableFragment is the part of a table that landed on one page.
// X, Y is the top-left corner of its first row.
type TableFragment struct {
	Position
	Width, Height float64
	Cells         []Cell
}

// ColumnWidths resolves the declared widths against the printable width.
// Fill columns share the remainder evenly and never go negative.
func (t Table) ColumnWidths() []float64 {
	avail := PageWidth - 2*TableMargin
	widths := make([]float64, len(t.Columns))
	fixed := 0.0
	fills := 0
	for i, c := range t.Columns {
		if c.Width > 0 {
			widths[i] = c.Width
			fixed += c.Width
		} else {
			fills++
		}
	}
	if fills > 0 {
		share := (avail - fixed) / float64(fills)
		if share < 0 {
			share = 0
		}
		for i, c := range t.Columns {
			if c.Width <= 0 {
				widths[i] = share
			}
		}
	}
	return widths
}

type preparedRow struct {
	lines  [][]string
	height float64
	style  CellStyle
	head   bool
}

func prepareRow(m Measurer, cells []string, widths []float64, st CellStyle, head bool) preparedRow {
	row := preparedRow{lines: make([][]string, len(widths)), style: st, head: head}
	maxLines := 1
	for i, w := range widths {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		inner := w - 2*CellPadding
		if inner < 0 {
			inner = 0
		}
		row.lines[i] = Wrap(m, text, st.Style, inner)
		if n := len(row.lines[i]); n > maxLines {
			maxLines = n
		}
	}
	row.height = float64(maxLines)*st.LineHeight() + 2*CellPadding
	return row
}

// PlaceTable lays the table out starting at cur and returns the cursor at
// the bottom edge of the last row. Rows that would cross the bottom margin
// move to a new page, and the header row is repeated at the top of every
// page the table occupies. A row taller than a whole page is placed anyway.
func PlaceTable(a *Artifact, cur Cursor, m Measurer, t Table) Cursor {
	widths := t.ColumnWidths()
	total := 0.0
	for _, w := range widths {
		total += w
	}

	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Header
	}
	head := prepareRow(m, headers, widths, t.HeadStyle, true)

	body := make([]preparedRow, len(t.Rows))
	for i, r := range t.Rows {
		body[i] = prepareRow(m, r, widths, t.BodyStyle, false)
	}

	bottom := PageHeight - TableMargin
	page, y := cur.Page, cur.Y

	first := head.height
	if len(body) > 0 {
		first += body[0].height
	}
	if y+first > bottom && y > TableMargin {
		page, y = a.NewPage(), TableMargin
	}

	frag := TableFragment{Position: Position{Page: page, X: TableMargin, Y: y}, Width: total}
	emit := func(r preparedRow) {
		x := TableMargin
		for i, w := range widths {
			frag.Cells = append(frag.Cells, Cell{
				X: x, Y: y, Width: w, Height: r.height,
				Lines: r.lines[i],
				Style: r.style.Style,
				Fill:  r.style.Fill,
				Head:  r.head,
			})
			x += w
		}
		y += r.height
	}

	emit(head)
	for _, r := range body {
		if y+r.height > bottom && y > TableMargin+head.height {
			frag.Height = y - frag.Y
			a.Add(frag)
			page, y = a.NewPage(), TableMargin
			frag = TableFragment{Position: Position{Page: page, X: TableMargin, Y: y}, Width: total}
			emit(head)
		}
		emit(r)
	}
	frag.Height = y - frag.Y
	a.Add(frag)

	return cur.Max(Cursor{Page: page, Y: y})
}
