package main

import (
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"aurora/internal/aurora"
	"aurora/internal/canvas"
	"aurora/internal/config"
	"aurora/internal/render"
)

// viewHost reads the terminal size from the screen. Everything runs on the
// viewer loop goroutine.
type viewHost struct {
	screen  tcell.Screen
	cfg     config.RenderConfig
	dark    bool
	reduced bool
}

func (h *viewHost) viewport() render.Viewport {
	w, hh := h.screen.Size()
	return render.NewViewport(w, hh, render.HUDRows, h.cfg.CellWidth, h.cfg.CellHeight)
}

func (h *viewHost) Size() (float64, float64)  { return h.viewport().LogicalSize() }
func (h *viewHost) DevicePixelRatio() float64 { return 1 }
func (h *viewHost) DarkTheme() bool           { return h.dark }
func (h *viewHost) ReducedMotion() bool       { return h.reduced }

// Viewer draws the aurora onto a tcell screen.
type Viewer struct {
	screen   tcell.Screen
	host     *viewHost
	renderer *aurora.Renderer
	surface  *canvas.Surface
	pixels   *image.RGBA
	fps      int
}

// NewViewer mounts a renderer for an initialized screen.
func NewViewer(screen tcell.Screen, cfg config.RenderConfig, dark, reduced bool, logger *zap.Logger) (*Viewer, error) {
	v := &Viewer{
		screen: screen,
		host:   &viewHost{screen: screen, cfg: cfg, dark: dark, reduced: reduced},
		fps:    aurora.RenderedFPS(cfg.RefreshRate),
	}
	acquire := func() (aurora.Surface, error) {
		s, err := canvas.New(1, 1)
		if err != nil {
			return nil, err
		}
		v.surface = s
		return s, nil
	}
	v.renderer = aurora.NewRenderer(v.host, acquire, aurora.WithLogger(logger))
	if !v.renderer.Mount() {
		return nil, fmt.Errorf("no drawing surface")
	}
	return v, nil
}

// Close unmounts the renderer.
func (v *Viewer) Close() {
	v.renderer.Unmount()
	v.surface.Close()
}

// handleInput applies one event. It returns false when the viewer should quit.
func (v *Viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 't', 'T':
				v.host.dark = !v.host.dark
			case 'm', 'M':
				v.host.reduced = !v.host.reduced
			}
		}

	case *tcell.EventResize:
		v.screen.Sync()
		v.renderer.Resize()
	}
	return true
}

// tick advances the renderer and redraws when it painted.
func (v *Viewer) tick() {
	if v.renderer.Tick() {
		v.draw()
	}
}

func (v *Viewer) draw() {
	vp := v.host.viewport()
	pw, ph := vp.PixelSize()
	if v.pixels == nil || v.pixels.Bounds().Dx() != pw || v.pixels.Bounds().Dy() != ph {
		v.pixels = image.NewRGBA(image.Rect(0, 0, pw, ph))
	}
	if !vp.Empty() {
		render.Downsample(v.pixels, v.surface.Image())
	}

	for y := 0; y < vp.Rows; y++ {
		for x := 0; x < vp.Cols; x++ {
			c := render.HalfBlock(v.pixels, x, y)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(c.FgR), int32(c.FgG), int32(c.FgB))).
				Background(tcell.NewRGBColor(int32(c.BgR), int32(c.BgG), int32(c.BgB)))
			v.screen.SetContent(x, y, c.Ch, nil, style)
		}
	}
	v.drawHUD(vp.Rows, vp.Cols)
	v.screen.Show()
}

func (v *Viewer) drawHUD(row, width int) {
	theme := "dark"
	if !v.host.dark {
		theme = "light"
	}
	motion := "motion on"
	if v.host.reduced {
		motion = "motion paused"
	}
	text := fmt.Sprintf(" aurora  │  %s  │  %s  │  %d fps  │  T Theme  M Motion  Q Quit", theme, motion, v.fps)

	style := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(180, 180, 195)).
		Background(tcell.NewRGBColor(15, 18, 30))
	col := 0
	for _, r := range text {
		if col >= width {
			break
		}
		v.screen.SetContent(col, row, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		v.screen.SetContent(col, row, ' ', nil, style)
	}
}

// Run polls input and ticks at the refresh rate until the user quits.
func (v *Viewer) Run(refreshRate int) {
	ticker := time.NewTicker(aurora.TickInterval(refreshRate))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}
		case <-ticker.C:
			v.tick()
		}
	}
}
