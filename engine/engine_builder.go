package engine

import (
	"github.com/Carmen-Shannon/oxy-sentinel/engine/profiler"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler fed by every frame while profiling is enabled
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithTickRate sets the target frame rate in frames per second.
// Values <= 0 uncap the loop, which then runs frames back to back.
//
// Parameters:
//   - fps: target frames per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.tickRate = rateFor(fps)
	}
}

// WithFixedStep makes every frame report dt seconds regardless of wall time.
// Values <= 0 restore wall-clock timing.
//
// Parameters:
//   - dt: seconds per frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFixedStep(dt float64) EngineBuilderOption {
	return func(e *engine) {
		e.fixedStep = max(dt, 0)
	}
}

// WithMaxFrames stops the loop after n frames. 0 runs until stopped.
//
// Parameters:
//   - n: the frame limit
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMaxFrames(n uint64) EngineBuilderOption {
	return func(e *engine) {
		e.maxFrames = n
	}
}

// WithWindow sets the window polled between frames. Without one the engine runs headless.
//
// Parameters:
//   - w: a spawned Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithFrameCallback sets the function called each frame.
//
// Parameters:
//   - callback: the frame function
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameCallback(callback FrameFunc) EngineBuilderOption {
	return func(e *engine) {
		e.frameCallback = callback
	}
}
