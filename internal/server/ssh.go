package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/gliderlabs/ssh"
	"go.uber.org/zap"

	"aurora/internal/aurora"
	"aurora/internal/canvas"
	"aurora/internal/config"
	"aurora/internal/logging"
	"aurora/internal/render"
)

// SSHServer streams the aurora to terminal sessions.
type SSHServer struct {
	cfg     config.Config
	logger  *zap.Logger
	viewers *Viewers
	srv     *ssh.Server

	// ctx is cancelled on Shutdown to end open sessions.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSSHServer creates a new SSH server from cfg.
func NewSSHServer(cfg config.Config, logger *zap.Logger) *SSHServer {
	ctx, cancel := context.WithCancel(context.Background())
	s := &SSHServer{
		cfg:     cfg,
		logger:  logging.OrNop(logger),
		viewers: NewViewers(),
		ctx:     ctx,
		cancel:  cancel,
	}
	s.srv = &ssh.Server{
		Addr:    cfg.SSH.Addr,
		Handler: s.handleSession,
	}
	return s
}

// Viewers returns the registry of connected sessions.
func (s *SSHServer) Viewers() *Viewers {
	return s.viewers
}

// Start begins listening for SSH connections on the configured address. It
// blocks until the server is shut down.
func (s *SSHServer) Start() error {
	l, err := net.Listen("tcp", s.cfg.SSH.Addr)
	if err != nil {
		return fmt.Errorf("ssh listen: %w", err)
	}
	return s.Serve(l)
}

// Serve accepts SSH connections on l until the server is shut down.
func (s *SSHServer) Serve(l net.Listener) error {
	if err := s.srv.SetOption(ssh.HostKeyFile(s.cfg.SSH.HostKey)); err != nil {
		l.Close()
		return fmt.Errorf("set host key: %w", err)
	}

	s.logger.Info("ssh server listening", zap.String("addr", l.Addr().String()))
	if err := s.srv.Serve(l); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("ssh serve: %w", err)
	}
	return nil
}

// Shutdown stops accepting sessions, ends the open ones and waits for them
// to restore their terminals.
func (s *SSHServer) Shutdown(ctx context.Context) error {
	s.cancel()
	return s.srv.Shutdown(ctx)
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	// Require PTY
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	username := sess.User()
	if username == "" {
		username = "anonymous"
	}

	id, saved, restored := s.viewers.Add(username)
	prefs := defaultPrefs
	if restored {
		prefs = saved
	}
	prefs = prefsFromEnv(sess.Environ(), prefs)

	host := newSessionHost(s.cfg.Render, ptyReq.Window.Width, ptyReq.Window.Height, prefs)
	log := s.logger.With(zap.String("viewer", id), zap.String("remote", sess.RemoteAddr().String()))
	log.Info("viewer connected", zap.String("theme", host.themeName()), zap.Bool("reduced_motion", prefs.ReducedMotion))
	defer func() {
		s.viewers.Remove(id, host.prefs())
		log.Info("viewer disconnected")
	}()

	engine := render.NewEngine(host.terminal())

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

	fps := aurora.RenderedFPS(s.cfg.Render.RefreshRate)
	onFrame := func(*aurora.Frame) error {
		// The engine belongs to the animator goroutine
		w, h := host.terminal()
		if ew, eh := engine.Size(); ew != w || eh != h {
			engine.Resize(w, h)
		}
		out := engine.Render(surface.Image(), render.Status{
			Theme:         host.themeName(),
			ReducedMotion: host.ReducedMotion(),
			FPS:           fps,
			Viewers:       s.viewers.Count(),
		})
		if len(out) == 0 {
			return nil
		}
		_, err := io.WriteString(sess, out)
		return err
	}
	animator := aurora.NewAnimator(renderer, s.cfg.Render.RefreshRate, onFrame)

	// Sessions end with the client or the server
	ctx, cancel := context.WithCancel(sess.Context())
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	// Drop the connection once the terminal is restored on shutdown
	defer func() {
		if s.ctx.Err() == nil {
			return
		}
		if c, ok := sess.Context().Value(ssh.ContextKeyConn).(io.Closer); ok {
			c.Close()
		}
	}()

	// Setup terminal
	io.WriteString(sess, render.AltScreenOn+render.HideCursor+render.ClearScreen)
	defer io.WriteString(sess, render.ShowCursor+render.AltScreenOff)

	if !animator.Start(ctx) {
		fmt.Fprintln(sess, "Error: cannot draw in this terminal.")
		return
	}
	defer func() {
		animator.Stop()
		surface.Close()
	}()

	quitCh := make(chan struct{})

	// Goroutine: read input
	go func() {
		defer close(quitCh)
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				// EOF on stdin ends the session
				return
			}
			for _, action := range parseInput(buf[:n]) {
				switch action {
				case ActionToggleTheme:
					host.toggleTheme()
				case ActionToggleMotion:
					host.toggleMotion()
				case ActionQuit:
					return
				}
			}
		}
	}()

	// Goroutine: handle window resizes
	go func() {
		for win := range winCh {
			host.setTerminal(win.Width, win.Height)
			animator.NotifyResize()
		}
	}()

	select {
	case <-quitCh:
	case <-animator.Done():
		if err := animator.Err(); err != nil {
			log.Debug("frame write failed", zap.Error(err))
		}
	}
}
