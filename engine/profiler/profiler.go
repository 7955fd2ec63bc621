// Package profiler samples frame rate, frame time, frame faults and Go memory statistics.
package profiler

import (
	"log"
	"runtime"
	"time"
)

// Sample is one reporting window of the profiler.
type Sample struct {
	FPS          float64
	AvgFrame     time.Duration
	MaxFrame     time.Duration
	Faults       int
	HeapMB       float64
	AllocRateMB  float64
	GCCount      uint32
	LastPauseUs  uint64
	MaxPauseUs   uint64
	SysMB        float64
	WindowLength time.Duration
}

// Profiler tracks frame rate, frame cost and memory statistics for performance monitoring.
// Outputs a Sample to the log at a configurable interval. It is not safe for concurrent use;
// the frame loop owns it.
type Profiler struct {
	frameCount     int
	faults         int
	frameTotal     time.Duration
	frameMax       time.Duration
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	now    func() time.Time
	logf   func(format string, args ...any)
	last   Sample
	report bool
}

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often a Sample is produced. Values <= 0 keep the 1 second default.
//
// Parameters:
//   - d: the reporting interval
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithClock replaces the wall clock, used to drive the profiler deterministically.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLogging enables or disables writing each Sample to the standard logger.
//
// Parameters:
//   - enabled: true to log samples
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithLogging(enabled bool) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.report = enabled
	}
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second and logging is on.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
		logf:           log.Printf,
		report:         true,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Frame records one completed frame.
//
// Parameters:
//   - cost: time spent inside the frame callback
//   - faulted: true if the frame panicked or returned an error
//
// Returns:
//   - bool: true if a Sample was produced by this call
func (p *Profiler) Frame(cost time.Duration, faulted bool) bool {
	p.frameCount++
	p.frameTotal += cost
	p.frameMax = max(p.frameMax, cost)
	if faulted {
		p.faults++
	}

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	s := Sample{
		FPS:          float64(p.frameCount) / elapsed.Seconds(),
		AvgFrame:     p.frameTotal / time.Duration(p.frameCount),
		MaxFrame:     p.frameMax,
		Faults:       p.faults,
		WindowLength: elapsed,
	}
	p.sampleMemory(&s, elapsed)

	if p.report {
		p.logf("[Profiler] FPS: %.2f | Frame: avg %s max %s | Faults: %d | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
			s.FPS, s.AvgFrame, s.MaxFrame, s.Faults, s.HeapMB, s.AllocRateMB, s.GCCount, s.LastPauseUs, s.MaxPauseUs, s.SysMB)
	}

	p.last = s
	p.frameCount = 0
	p.faults = 0
	p.frameTotal = 0
	p.frameMax = 0
	p.lastTime = currentTime
	return true
}

// Last returns the most recent Sample.
func (p *Profiler) Last() Sample {
	return p.last
}

// sampleMemory fills the memory fields of s from runtime.MemStats.
func (p *Profiler) sampleMemory(s *Sample, elapsed time.Duration) {
	runtime.ReadMemStats(&p.memStats)
	s.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	s.SysMB = float64(p.memStats.Sys) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	s.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 GC pauses.
	gcCount := p.memStats.NumGC
	s.GCCount = gcCount
	if gcCount > 0 {
		s.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			s.MaxPauseUs = max(s.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
}
