package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/Carmen-Shannon/oxy-sentinel/internal/config"
	"github.com/Carmen-Shannon/oxy-sentinel/robot/app"
)

func init() {
	// GLFW must run on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	width := flag.Int("width", 0, "Window width in pixels (default: 1280)")
	height := flag.Int("height", 0, "Window height in pixels (default: 720)")
	tickRate := flag.Float64("fps", 0, "Target frames per second (default: 60)")
	workers := flag.Int("workers", 0, "Raster worker count (default: NumCPU-1)")
	profiling := flag.Bool("profile", false, "Log frame rate and memory once per second")
	headless := flag.Bool("headless", false, "Run without a window")
	snapshotPath := flag.String("snapshot", "", "Write the final frame to this .webp, .tga or .png file (implies -headless)")
	frames := flag.Int("frames", 0, "Stop after N frames (default: run until closed; 1 with -snapshot)")
	supersample := flag.Int("supersample", 0, "Render snapshots at N times the size and downscale (1-4)")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Width:       *width,
		Height:      *height,
		TickRate:    *tickRate,
		Workers:     *workers,
		Profiling:   *profiling,
		Headless:    *headless,
		Snapshot:    *snapshotPath,
		Frames:      *frames,
		Supersample: *supersample,
	})

	a, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = a.Run(ctx)
	stop()
	a.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
