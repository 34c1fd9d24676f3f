package server

import (
	"testing"

	"aurora/internal/config"
)

func TestPrefsFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		environ []string
		base    Prefs
		want    Prefs
	}{
		{"defaults", nil, defaultPrefs, Prefs{Dark: true}},
		{"light", []string{"AURORA_THEME=light"}, defaultPrefs, Prefs{Dark: false}},
		{"light upper", []string{"AURORA_THEME=LIGHT"}, defaultPrefs, Prefs{Dark: false}},
		{"dark over saved light", []string{"AURORA_THEME=dark"}, Prefs{}, Prefs{Dark: true}},
		{"unknown theme keeps base", []string{"AURORA_THEME=sepia"}, Prefs{}, Prefs{}},
		{"reduced 1", []string{"AURORA_REDUCED_MOTION=1"}, defaultPrefs, Prefs{Dark: true, ReducedMotion: true}},
		{"reduced true", []string{"AURORA_REDUCED_MOTION=true"}, defaultPrefs, Prefs{Dark: true, ReducedMotion: true}},
		{"reduced off", []string{"AURORA_REDUCED_MOTION=0"}, Prefs{ReducedMotion: true}, Prefs{}},
		{"malformed", []string{"AURORA_THEME"}, defaultPrefs, Prefs{Dark: true}},
		{"other vars", []string{"TERM=xterm", "LANG=C"}, defaultPrefs, Prefs{Dark: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prefsFromEnv(tt.environ, tt.base); got != tt.want {
				t.Errorf("prefsFromEnv(%v) = %+v, want %+v", tt.environ, got, tt.want)
			}
		})
	}
}

func TestSessionHostSize(t *testing.T) {
	cfg := config.Default().Render
	h := newSessionHost(cfg, 80, 25, defaultPrefs)

	w, hh := h.Size()
	if w != 80*4 || hh != 24*8 {
		t.Errorf("Size() = %vx%v, want 320x192", w, hh)
	}
	if h.DevicePixelRatio() != 1 {
		t.Errorf("DevicePixelRatio() = %v", h.DevicePixelRatio())
	}

	h.setTerminal(100, 1)
	if w, hh := h.Size(); w != 400 || hh != 0 {
		t.Errorf("HUD-only terminal Size() = %vx%v, want 400x0", w, hh)
	}

	tests := []struct {
		name         string
		maxW, maxH   int
		wantW, wantH float64
	}{
		{"width bound", 160, 1000, 160, 96},
		{"height bound", 1000, 48, 80, 48},
		{"both over", 160, 48, 80, 48},
		{"fits", 320, 192, 320, 192},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg.MaxWidth, cfg.MaxHeight = tt.maxW, tt.maxH
			capped := newSessionHost(cfg, 80, 25, defaultPrefs)
			w, hh := capped.Size()
			if w != tt.wantW || hh != tt.wantH {
				t.Errorf("capped Size() = %vx%v, want %vx%v", w, hh, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestSessionHostToggles(t *testing.T) {
	h := newSessionHost(config.Default().Render, 80, 25, defaultPrefs)
	if !h.DarkTheme() || h.ReducedMotion() || h.themeName() != "dark" {
		t.Fatalf("initial prefs = %+v", h.prefs())
	}

	h.toggleTheme()
	h.toggleMotion()
	if h.DarkTheme() || !h.ReducedMotion() || h.themeName() != "light" {
		t.Errorf("after toggle prefs = %+v", h.prefs())
	}

	h.toggleTheme()
	if got := h.prefs(); got != (Prefs{Dark: true, ReducedMotion: true}) {
		t.Errorf("prefs() = %+v", got)
	}
}
