package web

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"aurora/internal/aurora"
	"aurora/internal/canvas"
	"aurora/internal/noise"
)

// FrameRequest describes one still frame.
type FrameRequest struct {
	Width  int
	Height int
	DPR    float64
	Dark   bool
	Time   float64
}

const (
	defaultFrameWidth  = 800
	defaultFrameHeight = 600
	maxDPR             = 8.0
	maxTime            = 1e9
)

// handleFrame renders a single frame at the requested clock value.
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseFrameRequest(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	surface, err := canvas.New(1, 1)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer surface.Close()

	f, err := aurora.RenderStill(surface, noise.Default(), float64(req.Width), float64(req.Height), req.DPR, req.Dark, req.Time)
	if err != nil {
		s.logger.Warn("render still frame", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := surface.EncodePNG(&buf); err != nil {
		s.logger.Warn("encode still frame", zap.Error(err))
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Aurora-Dots", strconv.Itoa(f.Count()))
	w.Write(buf.Bytes())
}

// parseFrameRequest parses and validates still frame parameters
func (s *Server) parseFrameRequest(values url.Values) (FrameRequest, error) {
	req := FrameRequest{Dark: true}
	var err error

	maxW, maxH := s.cfg.Render.MaxWidth, s.cfg.Render.MaxHeight
	if req.Width, err = parseIntParam(values, "width", min(defaultFrameWidth, maxW), 1, maxW); err != nil {
		return req, err
	}
	if req.Height, err = parseIntParam(values, "height", min(defaultFrameHeight, maxH), 1, maxH); err != nil {
		return req, err
	}
	if req.DPR, err = parseFloatParam(values, "dpr", 1, 0.1, maxDPR); err != nil {
		return req, err
	}
	if req.Time, err = parseFloatParam(values, "time", 0, 0, maxTime); err != nil {
		return req, err
	}

	switch theme := values.Get("theme"); theme {
	case "", "dark":
	case "light":
		req.Dark = false
	default:
		return req, fmt.Errorf("invalid theme: %s", theme)
	}
	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if math.IsNaN(parsed) || parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
