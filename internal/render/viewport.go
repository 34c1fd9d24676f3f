package render

// Viewport maps the picture area of a terminal onto the renderer's logical
// pixel space. Each cell holds two stacked pixels.
type Viewport struct {
	Cols, Rows   int // picture area in cells
	CellW, CellH int // logical pixels per cell
}

// NewViewport calculates the picture area for a terminal, reserving hudRows
// at the bottom.
func NewViewport(termW, termH, hudRows, cellW, cellH int) Viewport {
	rows := termH - hudRows
	if rows < 0 {
		rows = 0
	}
	if termW < 0 {
		termW = 0
	}
	if cellW < 1 {
		cellW = 1
	}
	if cellH < 2 {
		cellH = 2
	}
	return Viewport{Cols: termW, Rows: rows, CellW: cellW, CellH: cellH}
}

// LogicalSize returns the surface size the renderer should measure.
func (v Viewport) LogicalSize() (w, h float64) {
	return float64(v.Cols * v.CellW), float64(v.Rows * v.CellH)
}

// PixelSize returns the half-block pixel grid size.
func (v Viewport) PixelSize() (w, h int) {
	return v.Cols, v.Rows * 2
}

// Empty reports whether there is no picture area.
func (v Viewport) Empty() bool {
	return v.Cols == 0 || v.Rows == 0
}
