package render

import (
	"fmt"
	"image"
)

// HUDRows is the number of status rows under the picture.
const HUDRows = 1

// Cell represents a single terminal cell with full RGB color.
type Cell struct {
	Ch            rune
	FgR, FgG, FgB uint8
	BgR, BgG, BgB uint8
	Bold          bool
}

var sentinel = Cell{Ch: '\x00', FgR: 255, BgB: 255, Bold: true}

// Status is what the HUD line shows.
type Status struct {
	Theme         string
	ReducedMotion bool
	FPS           int
	Viewers       int
}

// Engine is a per-session double-buffer diff renderer.
type Engine struct {
	width, height int
	current       [][]Cell
	next          [][]Cell
	pixels        *image.RGBA
	firstFrame    bool
}

// NewEngine creates a renderer for the given terminal dimensions.
func NewEngine(width, height int) *Engine {
	e := &Engine{}
	e.Resize(width, height)
	return e
}

// Resize adjusts the renderer for a new terminal size and schedules a full
// redraw.
func (e *Engine) Resize(width, height int) {
	e.width = width
	e.height = height
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	pw, ph := e.viewport().PixelSize()
	e.pixels = image.NewRGBA(image.Rect(0, 0, pw, ph))
	e.firstFrame = true
}

func (e *Engine) makeBuffer(fill Cell) [][]Cell {
	buf := make([][]Cell, e.height)
	for y := 0; y < e.height; y++ {
		buf[y] = make([]Cell, e.width)
		for x := 0; x < e.width; x++ {
			buf[y][x] = fill
		}
	}
	return buf
}

func (e *Engine) viewport() Viewport {
	return NewViewport(e.width, e.height, HUDRows, 1, 2)
}

// Size returns the terminal dimensions the engine draws for.
func (e *Engine) Size() (width, height int) {
	return e.width, e.height
}

// Render produces the ANSI output for img, emitting only cells that changed
// since the previous call.
func (e *Engine) Render(img image.Image, status Status) string {
	vp := e.viewport()
	if img != nil && !vp.Empty() {
		Downsample(e.pixels, img)
	}
	for y := 0; y < vp.Rows; y++ {
		for x := 0; x < vp.Cols; x++ {
			if img == nil {
				e.next[y][x] = Cell{Ch: ' '}
				continue
			}
			e.next[y][x] = HalfBlock(e.pixels, x, y)
		}
	}

	e.drawHUD(status)
	return e.flush()
}

// flush diffs current against next, emits the changed cells and swaps.
func (e *Engine) flush() string {
	w := newANSIWriter(16384)
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			nc := e.next[y][x]
			if e.firstFrame || nc != e.current[y][x] {
				w.cell(y, x, nc)
			}
		}
	}

	e.current, e.next = e.next, e.current
	e.firstFrame = false

	return w.String()
}

// --- HUD ---

func (e *Engine) drawHUD(st Status) {
	hudY := e.height - HUDRows
	if hudY < 0 {
		return
	}

	bgR, bgG, bgB := uint8(15), uint8(18), uint8(30)
	for x := 0; x < e.width; x++ {
		e.next[hudY][x] = Cell{Ch: ' ', BgR: bgR, BgG: bgG, BgB: bgB}
	}

	motion := "motion on"
	if st.ReducedMotion {
		motion = "motion paused"
	}

	col := e.writeText(hudY, 1, e.width, "aurora", 100, 220, 220, bgR, bgG, bgB, true)
	sep := func(c int) int {
		return e.writeText(hudY, c, e.width, "  │  ", 60, 65, 85, bgR, bgG, bgB, false)
	}
	col = sep(col)
	col = e.writeText(hudY, col, e.width, st.Theme, 180, 180, 195, bgR, bgG, bgB, false)
	col = sep(col)
	col = e.writeText(hudY, col, e.width, motion, 180, 180, 195, bgR, bgG, bgB, false)
	col = sep(col)
	col = e.writeText(hudY, col, e.width, fmt.Sprintf("%d fps", st.FPS), 180, 180, 195, bgR, bgG, bgB, false)
	if st.Viewers > 0 {
		col = sep(col)
		col = e.writeText(hudY, col, e.width, fmt.Sprintf("%d watching", st.Viewers), 180, 180, 195, bgR, bgG, bgB, false)
	}
	col = sep(col)
	e.writeText(hudY, col, e.width, "T Theme  M Motion  Q Quit", 130, 130, 145, bgR, bgG, bgB, false)
}

// writeText writes colored text into a bounded region [col, maxCol). Returns the next column position.
func (e *Engine) writeText(row, col, maxCol int, text string, fgR, fgG, fgB, bgR, bgG, bgB uint8, bold bool) int {
	for _, r := range text {
		if col >= maxCol || col >= e.width {
			break
		}
		if row >= 0 && row < e.height && col >= 0 {
			e.next[row][col] = Cell{Ch: r, FgR: fgR, FgG: fgG, FgB: fgB, BgR: bgR, BgG: bgG, BgB: bgB, Bold: bold}
		}
		col++
	}
	return col
}
