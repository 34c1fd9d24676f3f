package server

import (
	"strings"
	"sync"
	"sync/atomic"

	"aurora/internal/aurora"
	"aurora/internal/config"
	"aurora/internal/render"
)

const (
	envTheme         = "AURORA_THEME"
	envReducedMotion = "AURORA_REDUCED_MOTION"
)

// Prefs are the per-viewer toggles that survive a reconnect.
type Prefs struct {
	Dark          bool
	ReducedMotion bool
}

// defaultPrefs is dark theme with motion on.
var defaultPrefs = Prefs{Dark: true}

// prefsFromEnv applies the session environment on top of p. Unknown values
// leave p unchanged.
func prefsFromEnv(environ []string, p Prefs) Prefs {
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		value = strings.ToLower(strings.TrimSpace(value))
		switch key {
		case envTheme:
			switch value {
			case "light":
				p.Dark = false
			case "dark":
				p.Dark = true
			}
		case envReducedMotion:
			switch value {
			case "1", "true", "yes":
				p.ReducedMotion = true
			case "0", "false", "no":
				p.ReducedMotion = false
			}
		}
	}
	return p
}

// sessionHost feeds one terminal's signals to its renderer. The window-change
// and input goroutines write; the animator goroutine reads.
type sessionHost struct {
	cfg config.RenderConfig

	mu      sync.Mutex
	termW   int
	termH   int
	dark    atomic.Bool
	reduced atomic.Bool
}

var _ aurora.Host = (*sessionHost)(nil)

func newSessionHost(cfg config.RenderConfig, termW, termH int, p Prefs) *sessionHost {
	h := &sessionHost{cfg: cfg, termW: termW, termH: termH}
	h.dark.Store(p.Dark)
	h.reduced.Store(p.ReducedMotion)
	return h
}

func (h *sessionHost) viewport() render.Viewport {
	h.mu.Lock()
	defer h.mu.Unlock()
	return render.NewViewport(h.termW, h.termH, render.HUDRows, h.cfg.CellWidth, h.cfg.CellHeight)
}

// Size returns the picture area in logical pixels, scaled down to fit the
// configured maximum with its aspect ratio kept.
func (h *sessionHost) Size() (w, hh float64) {
	w, hh = h.viewport().LogicalSize()
	scale := 1.0
	if mw := float64(h.cfg.MaxWidth); mw > 0 && w > mw {
		scale = mw / w
	}
	if mh := float64(h.cfg.MaxHeight); mh > 0 && hh*scale > mh {
		scale = mh / hh
	}
	return w * scale, hh * scale
}

// DevicePixelRatio is 1: the terminal is sampled from the logical buffer.
func (h *sessionHost) DevicePixelRatio() float64 { return 1 }

func (h *sessionHost) DarkTheme() bool     { return h.dark.Load() }
func (h *sessionHost) ReducedMotion() bool { return h.reduced.Load() }

func (h *sessionHost) setTerminal(w, hh int) {
	h.mu.Lock()
	h.termW, h.termH = w, hh
	h.mu.Unlock()
}

func (h *sessionHost) terminal() (w, hh int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.termW, h.termH
}

func (h *sessionHost) toggleTheme() {
	for {
		old := h.dark.Load()
		if h.dark.CompareAndSwap(old, !old) {
			return
		}
	}
}

func (h *sessionHost) toggleMotion() {
	for {
		old := h.reduced.Load()
		if h.reduced.CompareAndSwap(old, !old) {
			return
		}
	}
}

func (h *sessionHost) prefs() Prefs {
	return Prefs{Dark: h.dark.Load(), ReducedMotion: h.reduced.Load()}
}

func (h *sessionHost) themeName() string {
	if h.dark.Load() {
		return "dark"
	}
	return "light"
}
