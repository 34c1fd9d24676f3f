package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"aurora/internal/aurora"
	"aurora/internal/canvas"
	"aurora/internal/logging"
	"aurora/internal/palette"
)

// options are the parsed command line flags.
type options struct {
	width, height int
	dpr           float64
	dark          bool
	frames        int
	reducedMotion bool
	outDir        string
	stats         bool
}

// stillHost is a fixed-size host.
type stillHost struct {
	w, h    float64
	dpr     float64
	dark    bool
	reduced bool
}

func (h stillHost) Size() (float64, float64)  { return h.w, h.h }
func (h stillHost) DevicePixelRatio() float64 { return h.dpr }
func (h stillHost) DarkTheme() bool           { return h.dark }
func (h stillHost) ReducedMotion() bool       { return h.reduced }

func main() {
	size := flag.String("size", "800x600", "logical size as WxH")
	dpr := flag.Float64("dpr", 1, "device pixel ratio (capped at 2)")
	theme := flag.String("theme", "dark", "color theme (light, dark)")
	frames := flag.Int("frames", 1, "number of rendered frames to write")
	reduced := flag.Bool("reduced-motion", false, "freeze the animation clock")
	out := flag.String("out", "frames", "output directory")
	stats := flag.Bool("stats", false, "print dot distribution per color bucket")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	w, h, err := parseSize(*size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *theme != "light" && *theme != "dark" {
		fmt.Fprintf(os.Stderr, "Error: unknown theme %q (available: light, dark)\n", *theme)
		os.Exit(1)
	}
	if *frames < 1 {
		fmt.Fprintln(os.Stderr, "Error: -frames must be at least 1")
		os.Exit(1)
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger, err := logging.New(level, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	opts := options{
		width:         w,
		height:        h,
		dpr:           *dpr,
		dark:          *theme == "dark",
		frames:        *frames,
		reducedMotion: *reduced,
		outDir:        *out,
		stats:         *stats,
	}
	if err := run(opts, logger, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run ticks a renderer until opts.frames frames are painted and writes each
// one as frame_NNNN.png.
func run(opts options, logger *zap.Logger, stdout, stderr io.Writer) error {
	if err := os.MkdirAll(opts.outDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	var surface *canvas.Surface
	acquire := func() (aurora.Surface, error) {
		s, err := canvas.New(1, 1)
		if err != nil {
			return nil, err
		}
		surface = s
		return s, nil
	}

	host := stillHost{
		w:       float64(opts.width),
		h:       float64(opts.height),
		dpr:     opts.dpr,
		dark:    opts.dark,
		reduced: opts.reducedMotion,
	}
	r := aurora.NewRenderer(host, acquire, aurora.WithLogger(logger))
	if !r.Mount() {
		return fmt.Errorf("no drawing surface for %dx%d", opts.width, opts.height)
	}
	defer surface.Close()
	defer r.Unmount()

	bw, bh := surface.Size()
	fmt.Fprintf(stderr, "Rendering %d frame(s) at %dx%d (backing %dx%d)...\n", opts.frames, opts.width, opts.height, bw, bh)

	written := 0
	for written < opts.frames {
		if !r.Tick() {
			continue
		}
		written++
		path := filepath.Join(opts.outDir, fmt.Sprintf("frame_%04d.png", written))
		if err := writePNG(surface, path); err != nil {
			return err
		}
	}
	fmt.Fprintf(stderr, "Wrote %d frame(s) to %s (%d ticks, clock %.3f)\n", written, opts.outDir, r.Ticks(), r.Time())

	if opts.stats {
		printStats(stdout, r.Frame(), palette.ThemeFor(opts.dark))
	}
	return nil
}

func writePNG(s *canvas.Surface, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := s.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// printStats shows the dot count per color bucket of the last frame.
func printStats(w io.Writer, f *aurora.Frame, theme palette.Theme) {
	total := f.Count()
	candidates := f.Cols * f.Rows
	fmt.Fprintf(w, "%s theme, %vx%v, grid %dx%d = %d candidates, clock %.3f\n\n",
		theme.Name, f.Width, f.Height, f.Cols, f.Rows, candidates, f.Time)

	for b, dots := range f.Buckets {
		pct := 0.0
		if total > 0 {
			pct = float64(len(dots)) / float64(total) * 100
		}
		r, g, bl := aurora.BucketColor(theme.Palette, b)
		bar := strings.Repeat("█", int(pct/2))
		fmt.Fprintf(w, "  %2d #%02x%02x%02x %5d (%5.1f%%) %s\n", b, uint8(math.Round(r)), uint8(math.Round(g)), uint8(math.Round(bl)), len(dots), pct, bar)
	}

	visible := 0.0
	if candidates > 0 {
		visible = float64(total) / float64(candidates) * 100
	}
	fmt.Fprintf(w, "\nVisible: %d/%d (%.1f%%)\n", total, candidates, visible)
}

func parseSize(s string) (int, int, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q (expected WxH)", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w < 1 {
		return 0, 0, fmt.Errorf("invalid width %q (minimum 1)", parts[0])
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil || h < 1 {
		return 0, 0, fmt.Errorf("invalid height %q (minimum 1)", parts[1])
	}
	return w, h, nil
}
