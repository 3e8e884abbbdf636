package layout

// Cursor is the running vertical offset threaded through composition.
// It only ever moves forward: down the current page or onto a later page.
type Cursor struct {
	Page int
	Y    float64
}

// Start returns a cursor at offset y on the first page.
func Start(y float64) Cursor {
	return Cursor{Page: 1, Y: y}
}

// Advance moves the cursor down by dy. Negative values are ignored.
func (c Cursor) Advance(dy float64) Cursor {
	if dy > 0 {
		c.Y += dy
	}
	return c
}

// Max returns whichever of c and o lies further along the document.
func (c Cursor) Max(o Cursor) Cursor {
	if o.Page > c.Page || (o.Page == c.Page && o.Y > c.Y) {
		return o
	}
	return c
}

// At returns the position of the cursor shifted horizontally to x.
func (c Cursor) At(x float64) Position {
	return Position{Page: c.Page, X: x, Y: c.Y}
}
