package render

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Downsample scales src into dst, filtering so that several dots collapsing
// into one terminal pixel average out instead of aliasing.
func Downsample(dst *image.RGBA, src image.Image) {
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
}

// HalfBlock returns the cell for pixel column x of cell row y in a
// downsampled pixel grid.
func HalfBlock(px *image.RGBA, x, y int) Cell {
	top := px.RGBAAt(x, 2*y)
	bot := px.RGBAAt(x, 2*y+1)
	return Cell{
		Ch:  UpperHalf,
		FgR: top.R, FgG: top.G, FgB: top.B,
		BgR: bot.R, BgG: bot.G, BgB: bot.B,
	}
}
