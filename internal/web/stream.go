package web

import (
	"bytes"
	"context"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"aurora/internal/aurora"
	"aurora/internal/canvas"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 4096
)

// ClientState is the message a page sends whenever one of its signals
// changes.
type ClientState struct {
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	DPR           float64 `json:"dpr"`
	Dark          bool    `json:"dark"`
	ReducedMotion bool    `json:"reducedMotion"`
}

// streamHost holds the latest client state. The websocket reader writes,
// the animator reads.
type streamHost struct {
	maxW, maxH float64

	mu    sync.Mutex
	state ClientState
}

var _ aurora.Host = (*streamHost)(nil)

func (h *streamHost) Size() (w, hh float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.Width, h.state.Height
}

func (h *streamHost) DevicePixelRatio() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.DPR
}

func (h *streamHost) DarkTheme() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.Dark
}

func (h *streamHost) ReducedMotion() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.ReducedMotion
}

// apply stores st and reports whether the surface needs re-measuring. The
// maximum bounds the backing buffer, so it shrinks the logical size by the
// pixel ratio.
func (h *streamHost) apply(st ClientState) bool {
	dpr := aurora.EffectiveDPR(st.DPR)
	st.Width = clampDim(st.Width, h.maxW/dpr)
	st.Height = clampDim(st.Height, h.maxH/dpr)

	h.mu.Lock()
	defer h.mu.Unlock()
	resized := st.Width != h.state.Width || st.Height != h.state.Height || st.DPR != h.state.DPR
	h.state = st
	return resized
}

func clampDim(v, max float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// handleStream upgrades to a websocket and streams PNG frames until the
// client goes away or the server shuts down.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	log := s.logger.With(zap.String("remote", r.RemoteAddr))

	// The renderer mounts on the first state message
	var first ClientState
	if err := conn.ReadJSON(&first); err != nil {
		log.Debug("websocket first message", zap.Error(err))
		return
	}
	host := &streamHost{
		maxW: float64(s.cfg.Render.MaxWidth),
		maxH: float64(s.cfg.Render.MaxHeight),
	}
	host.apply(first)

	var surface *canvas.Surface
	acquire := func() (aurora.Surface, error) {
		cs, err := canvas.New(1, 1)
		if err != nil {
			return nil, err
		}
		surface = cs
		return cs, nil
	}
	renderer := aurora.NewRenderer(host, acquire, aurora.WithLogger(log))

	var buf bytes.Buffer
	onFrame := func(*aurora.Frame) error {
		buf.Reset()
		if err := surface.EncodePNG(&buf); err != nil {
			return err
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteMessage(websocket.BinaryMessage, buf.Bytes())
	}

	s.streams.Add(1)
	defer s.streams.Add(-1)

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	animator := aurora.NewAnimator(renderer, s.cfg.Render.RefreshRate, onFrame)
	if !animator.Start(ctx) {
		return
	}
	defer surface.Close()
	defer animator.Stop()
	log.Info("stream opened", zap.Float64("width", first.Width), zap.Float64("height", first.Height))

	readErr := make(chan error, 1)
	go func() {
		for {
			var st ClientState
			if err := conn.ReadJSON(&st); err != nil {
				readErr <- err
				return
			}
			if host.apply(st) {
				animator.NotifyResize()
			}
		}
	}()

	select {
	case err := <-readErr:
		if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			log.Debug("websocket read", zap.Error(err))
		}
	case <-animator.Done():
		if err := animator.Err(); err != nil {
			log.Debug("websocket write", zap.Error(err))
			break
		}
		animator.Stop()
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	}
	log.Info("stream closed")
}
