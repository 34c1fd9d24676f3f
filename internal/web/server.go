// Package web hosts the aurora in a browser. The page reports its layout
// size, pixel ratio, theme and motion preference over a websocket and the
// server streams back one PNG per rendered frame.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"aurora/internal/config"
	"aurora/internal/logging"
)

//go:embed static
var staticFiles embed.FS

// Server handles web requests for the aurora.
type Server struct {
	cfg      config.Config
	logger   *zap.Logger
	srv      *http.Server
	upgrader websocket.Upgrader
	streams  atomic.Int64

	// ctx is cancelled on Shutdown; hijacked websocket connections are not
	// tracked by http.Server.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server from cfg.
func NewServer(cfg config.Config, logger *zap.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:    cfg,
		logger: logging.OrNop(logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
		},
		ctx:    ctx,
		cancel: cancel,
	}
	s.srv = &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routes of the web host.
func (s *Server) Handler() http.Handler {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /", http.FileServerFS(static))
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/frame.png", s.handleFrame)
	mux.HandleFunc("GET /ws", s.handleStream)
	return mux
}

// Start listens on the configured address. It blocks until the server is
// shut down.
func (s *Server) Start() error {
	l, err := net.Listen("tcp", s.cfg.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("http listen: %w", err)
	}
	return s.Serve(l)
}

// Serve accepts HTTP connections on l until the server is shut down.
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("web server listening", zap.String("addr", l.Addr().String()))
	if err := s.srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http serve: %w", err)
	}
	return nil
}

// Shutdown ends all streams and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	return s.srv.Shutdown(ctx)
}

// Streams returns the number of open websocket streams.
func (s *Server) Streams() int {
	return int(s.streams.Load())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"streams": s.Streams(),
	})
}
