package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-sentinel/engine/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// closingWindow reports closed after a fixed number of polls.
type closingWindow struct {
	window.Window
	polls, closeAfter int
}

func (w *closingWindow) PollEvents() bool {
	w.polls++
	return w.polls <= w.closeAfter
}

func TestFaultingFramesDoNotStopTheLoop(t *testing.T) {
	var dts []float64
	e := NewEngine(
		WithTickRate(0),
		WithFixedStep(0.5),
		WithMaxFrames(6),
		WithFrameCallback(func(dt float64) error {
			dts = append(dts, dt)
			switch len(dts) {
			case 2:
				panic("boom")
			case 3:
				return errors.New("bad frame")
			case 4:
				var m map[string]int
				m["x"] = 1
			}
			return nil
		}),
	)

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, uint64(6), e.Frames())
	assert.Equal(t, uint64(3), e.Faults())
	assert.Equal(t, []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5}, dts)
}

func TestQuitFromInsideFrame(t *testing.T) {
	var e Engine
	e = NewEngine(WithTickRate(0), WithFrameCallback(func(float64) error {
		if e.Frames() == 2 {
			e.Quit()
			e.Quit()
		}
		return nil
	}))
	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, uint64(3), e.Frames())
}

func TestContextCancelStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	e := NewEngine(WithTickRate(1000), WithFrameCallback(func(float64) error {
		cancel()
		return nil
	}))
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop after cancel")
	}
	assert.Equal(t, uint64(1), e.Frames())
}

func TestWindowCloseStopsLoop(t *testing.T) {
	w := &closingWindow{closeAfter: 4}
	e := NewEngine(WithTickRate(0), WithWindow(w))
	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, uint64(4), e.Frames())
	assert.Same(t, w, e.Window())
}

func TestRunRejectsReentry(t *testing.T) {
	var inner error
	var e Engine
	e = NewEngine(WithTickRate(0), WithMaxFrames(1), WithFrameCallback(func(float64) error {
		inner = e.Run(context.Background())
		return nil
	}))
	require.NoError(t, e.Run(context.Background()))
	assert.Error(t, inner)
}

func TestTickRateConversion(t *testing.T) {
	assert.Equal(t, time.Duration(0), rateFor(0))
	assert.Equal(t, time.Duration(0), rateFor(-5))
	assert.Equal(t, 20*time.Millisecond, rateFor(50))

	e := NewEngine().(*engine)
	assert.Equal(t, time.Second/60, e.tickRate)
	e.SetTickRate(30)
	assert.InDelta(t, float64(time.Second/30), float64(e.tickRate), 1)
}
