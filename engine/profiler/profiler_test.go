package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func TestFrameProducesSampleAfterInterval(t *testing.T) {
	clk := &fakeClock{t: time.Unix(100, 0)}
	p := NewProfiler(WithClock(clk.now), WithLogging(false))

	for i := 0; i < 59; i++ {
		clk.t = clk.t.Add(time.Second / 60)
		require.False(t, p.Frame(2*time.Millisecond, i == 10))
	}
	// 60 steps of Second/60 fall 40ns short of the interval; land exactly on it.
	clk.t = time.Unix(101, 0)
	require.True(t, p.Frame(8*time.Millisecond, false))

	s := p.Last()
	assert.Equal(t, time.Second, s.WindowLength)
	assert.InDelta(t, 60.0, s.FPS, 1e-9)
	assert.Equal(t, 1, s.Faults)
	assert.Equal(t, 8*time.Millisecond, s.MaxFrame)
	assert.Equal(t, 2100*time.Microsecond, s.AvgFrame)
	assert.Greater(t, s.SysMB, 0.0)
}

func TestFrameJustShortOfIntervalProducesNoSample(t *testing.T) {
	clk := &fakeClock{t: time.Unix(100, 0)}
	p := NewProfiler(WithClock(clk.now), WithLogging(false))

	for range 60 {
		clk.t = clk.t.Add(time.Second / 60)
		require.False(t, p.Frame(time.Millisecond, false))
	}
	assert.Zero(t, p.Last().FPS)

	clk.t = time.Unix(101, 0)
	require.True(t, p.Frame(time.Millisecond, false))
	assert.InDelta(t, 61.0, p.Last().FPS, 1e-9)
}

func TestCountersResetEachWindow(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithClock(clk.now), WithLogging(false), WithInterval(100*time.Millisecond))

	clk.t = clk.t.Add(200 * time.Millisecond)
	require.True(t, p.Frame(time.Millisecond, true))
	assert.Equal(t, 1, p.Last().Faults)

	clk.t = clk.t.Add(100 * time.Millisecond)
	require.True(t, p.Frame(time.Millisecond, false))
	assert.Equal(t, 0, p.Last().Faults)
	assert.InDelta(t, 10.0, p.Last().FPS, 1e-9)
}

func TestLoggingUsesProfilerPrefix(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithClock(clk.now))
	var lines []string
	p.logf = func(format string, _ ...any) { lines = append(lines, format) }

	clk.t = clk.t.Add(2 * time.Second)
	p.Frame(0, false)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "[Profiler]")
}
