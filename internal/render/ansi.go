package render

import (
	"strconv"
	"strings"
)

const (
	ESC   = "\x1b"
	CSI   = ESC + "["
	Reset = CSI + "0m"

	ClearScreen  = CSI + "2J"
	HideCursor   = CSI + "?25l"
	ShowCursor   = CSI + "?25h"
	AltScreenOn  = CSI + "?1049h"
	AltScreenOff = CSI + "?1049l"

	// UpperHalf draws the upper pixel in the foreground color and the lower
	// pixel in the background color.
	UpperHalf = '▀'
)

// MoveTo positions the cursor at row, col (1-based).
func MoveTo(row, col int) string {
	return CSI + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

// ansiWriter accumulates cell updates. Cursor moves are emitted only for
// non-consecutive cells and SGR sequences only when the style changes.
type ansiWriter struct {
	sb       strings.Builder
	styled   bool
	style    Cell // Ch unused
	row, col int  // where the cursor is after the last cell
	buf      []byte
}

func newANSIWriter(sizeHint int) *ansiWriter {
	w := &ansiWriter{row: -1, col: -1}
	w.sb.Grow(sizeHint)
	return w
}

// cell writes c at the 0-based row and col.
func (w *ansiWriter) cell(row, col int, c Cell) {
	if row != w.row || col != w.col {
		w.sb.WriteString(MoveTo(row+1, col+1))
	}
	if !w.styled || !sameStyle(w.style, c) {
		w.writeSGR(c)
		w.style = c
		w.styled = true
	}
	w.sb.WriteRune(c.Ch)
	w.row, w.col = row, col+1
}

// writeSGR resets attributes and sets 24-bit foreground and background.
func (w *ansiWriter) writeSGR(c Cell) {
	b := append(w.buf[:0], CSI...)
	if c.Bold {
		b = append(b, "0;1;38;2;"...)
	} else {
		b = append(b, "0;38;2;"...)
	}
	b = appendRGB(b, c.FgR, c.FgG, c.FgB)
	b = append(b, ";48;2;"...)
	b = appendRGB(b, c.BgR, c.BgG, c.BgB)
	b = append(b, 'm')
	w.sb.Write(b)
	w.buf = b
}

// String returns the output, terminated by a reset when anything was written.
func (w *ansiWriter) String() string {
	if w.sb.Len() == 0 {
		return ""
	}
	w.sb.WriteString(Reset)
	return w.sb.String()
}

func sameStyle(a, b Cell) bool {
	a.Ch, b.Ch = 0, 0
	return a == b
}

func appendRGB(b []byte, r, g, bl uint8) []byte {
	b = strconv.AppendUint(b, uint64(r), 10)
	b = append(b, ';')
	b = strconv.AppendUint(b, uint64(g), 10)
	b = append(b, ';')
	return strconv.AppendUint(b, uint64(bl), 10)
}
