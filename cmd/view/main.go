package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"aurora/internal/config"
	"aurora/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "config file (default: built-in settings)")
	theme := flag.String("theme", "dark", "color theme (light, dark)")
	reduced := flag.Bool("reduced-motion", false, "start with the animation paused")
	flag.Parse()

	if *theme != "light" && *theme != "dark" {
		fmt.Fprintf(os.Stderr, "Error: unknown theme %q (available: light, dark)\n", *theme)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Only errors reach stderr while the screen is active
	logger, err := logging.New("error", false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	v, err := NewViewer(screen, cfg.Render, *theme == "dark", *reduced, logger)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	v.Run(cfg.Render.RefreshRate)
	v.Close()
	screen.Fini()
}
