package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"aurora/internal/config"
	"aurora/internal/logging"
	"aurora/internal/server"
	"aurora/internal/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "config file (default: built-in settings)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	// Generate host key if it doesn't exist
	created, err := server.EnsureHostKey(cfg.SSH.HostKey)
	if err != nil {
		return err
	}
	if created {
		logger.Info("generated new host key", zap.String("path", cfg.SSH.HostKey))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sshServer := server.NewSSHServer(cfg, logger.Named("ssh"))
	errCh := make(chan error, 2)
	go func() { errCh <- sshServer.Start() }()

	var webServer *web.Server
	if cfg.HTTP.Enabled {
		webServer = web.NewServer(cfg, logger.Named("web"))
		go func() { errCh <- webServer.Start() }()
	}

	port := cfg.SSH.Addr[strings.LastIndex(cfg.SSH.Addr, ":")+1:]
	logger.Info("aurora started", zap.String("connect", "ssh -p "+port+" localhost"))

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if webServer != nil {
		if serr := webServer.Shutdown(shutdownCtx); serr != nil {
			logger.Warn("web shutdown", zap.Error(serr))
		}
	}
	if serr := sshServer.Shutdown(shutdownCtx); serr != nil {
		logger.Warn("ssh shutdown", zap.Error(serr))
	}
	return err
}
