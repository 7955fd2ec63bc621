// Package engine owns the frame loop: it polls the window, advances time and runs the frame
// callback to completion on one locked OS thread.
package engine

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-sentinel/engine/profiler"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/window"
)

// FrameFunc is called once per frame with the frame's delta time in seconds. A returned
// error or a panic is logged and the loop continues with the next frame.
type FrameFunc func(dt float64) error

// engine implements the Engine interface.
type engine struct {
	tickRateChannel chan time.Duration // dynamic tick rate updates from other goroutines

	running atomic.Bool

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	tickRate      time.Duration // 0 = uncapped
	fixedStep     float64       // seconds per frame; 0 = wall clock
	maxFrames     uint64        // 0 = unbounded
	frameCallback FrameFunc

	frames atomic.Uint64
	faults atomic.Uint64

	now func() time.Time
}

// Engine is the main entry point for the engine.
// It runs a single-threaded frame loop over an optional window.
type Engine interface {
	// Window returns the underlying window, or nil when running headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the target frame rate. Safe to call while running.
	//
	// Parameters:
	//   - fps: target frames per second; <= 0 uncaps the loop
	SetTickRate(fps float64)

	// SetFrameCallback registers the function called each frame.
	// Must not be called while the loop is running.
	//
	// Parameters:
	//   - callback: the frame function
	SetFrameCallback(callback FrameFunc)

	// Run executes frames on the calling goroutine, locked to its OS thread, until ctx is
	// cancelled, Quit is called, the window closes or the frame limit is reached.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: error if the engine is already running
	Run(ctx context.Context) error

	// Quit signals the loop to stop after the current frame.
	// Safe to call multiple times and from any goroutine.
	Quit()

	// Frames returns how many frames have completed.
	//
	// Returns:
	//   - uint64: completed frames, including faulted ones
	Frames() uint64

	// Faults returns how many frames panicked or returned an error.
	//
	// Returns:
	//   - uint64: faulted frames
	Faults() uint64
}

// NewEngine creates a new Engine instance with the provided options.
// Defaults to 60 frames per second over wall-clock time with profiling disabled.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		tickRate:        time.Second / 60,
		now:             time.Now,
	}

	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler()
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate sets the target frame rate. If the engine is running, the change is picked up
// at the start of the next frame.
func (e *engine) SetTickRate(fps float64) {
	newRate := rateFor(fps)
	if !e.running.Load() {
		e.tickRate = newRate
		return
	}

	// Non-blocking send; a pending update is replaced by the newer value.
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

func (e *engine) SetFrameCallback(callback FrameFunc) {
	e.frameCallback = callback
}

func (e *engine) Frames() uint64 {
	return e.frames.Load()
}

func (e *engine) Faults() uint64 {
	return e.faults.Load()
}

// Quit signals the loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return fmt.Errorf("engine: already running")
	}
	defer e.running.Store(false)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var ticker *time.Ticker
	setRate := func(rate time.Duration) {
		e.tickRate = rate
		if ticker != nil {
			ticker.Stop()
			ticker = nil
		}
		if rate > 0 {
			ticker = time.NewTicker(rate)
		}
	}
	setRate(e.tickRate)
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	last := e.now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-e.quitChannel:
			return nil
		case rate := <-e.tickRateChannel:
			setRate(rate)
		default:
		}

		if e.window != nil && !e.window.PollEvents() {
			log.Printf("[Engine] window closed after %d frames", e.frames.Load())
			return nil
		}

		now := e.now()
		dt := now.Sub(last).Seconds()
		last = now
		if e.fixedStep > 0 {
			dt = e.fixedStep
		}

		start := e.now()
		err := e.runFrame(dt)
		n := e.frames.Add(1)
		if err != nil {
			e.faults.Add(1)
			log.Printf("[Engine] frame %d skipped: %v", n, err)
		}
		if e.profilingEnabled.Load() {
			e.profiler.Frame(e.now().Sub(start), err != nil)
		}

		if e.maxFrames > 0 && n >= e.maxFrames {
			return nil
		}

		if ticker != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-e.quitChannel:
				return nil
			case <-ticker.C:
			}
		}
	}
}

// runFrame calls the frame callback and converts a panic into an error.
func (e *engine) runFrame(dt float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	if e.frameCallback == nil {
		return nil
	}
	return e.frameCallback(dt)
}

// rateFor converts frames per second into a tick period; fps <= 0 means uncapped.
func rateFor(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
