package app

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-sentinel/common"
	"github.com/Carmen-Shannon/oxy-sentinel/internal/config"
	"github.com/Carmen-Shannon/oxy-sentinel/robot/pose"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headlessConfig(t *testing.T, mutate func(*config.Config)) config.Config {
	t.Helper()
	cfg := config.Config{Width: 400, Height: 300, Workers: 2, Headless: true, Frames: 3, ChartSeed: 1}
	if mutate != nil {
		mutate(&cfg)
	}
	cfg.Resolve(config.Flags{})
	return cfg
}

func newApp(t *testing.T, mutate func(*config.Config)) *App {
	t.Helper()
	a, err := New(headlessConfig(t, mutate))
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestHeadlessRunCompletesFrames(t *testing.T) {
	a := newApp(t, nil)
	require.True(t, a.Headless())
	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, uint64(3), a.Engine.Frames())
	assert.Equal(t, uint64(0), a.Engine.Faults())

	main, inset := a.LastStats()
	assert.Greater(t, main.Triangles, 0)
	assert.Greater(t, main.Lines, 0)
	assert.Greater(t, inset.Models, 0)
}

func TestLayoutRectangles(t *testing.T) {
	a := newApp(t, func(c *config.Config) { c.Width, c.Height = 1280, 720 })
	assert.Equal(t, image.Rect(960, 500, 1260, 700), a.InsetRect())
	assert.Equal(t, image.Rect(20, 600, 270, 700), a.ChartRect())

	a.Input.Resize(1000, 600)
	assert.Equal(t, image.Rect(680, 380, 980, 580), a.InsetRect())
	w, h := a.Renderer.Size()
	assert.Equal(t, 1000, w)
	assert.Equal(t, 600, h)
	assert.InDelta(t, 1000.0/600.0, a.MainCamera.Aspect(), 1e-12)
}

func TestFrameDrawsChartAndLabels(t *testing.T) {
	a := newApp(t, nil)
	require.NoError(t, a.Frame(1.0/60))

	img := a.Capture()
	cr := a.ChartRect()
	assert.Equal(t, a.Chart.Background, img.NRGBAAt(cr.Min.X+5, cr.Min.Y+5))

	visible := 0
	for _, l := range a.Projector.Labels() {
		if l.Placement.Visible() {
			visible++
		}
	}
	assert.Equal(t, len(a.Projector.Labels()), visible)
}

func TestResetWritesTransformsImmediately(t *testing.T) {
	a := newApp(t, nil)
	_, err := a.Panel.SetField(pose.FieldHeadYaw, 0.9)
	require.NoError(t, err)
	_, err = a.Panel.SetField(pose.FieldLeftArm, 2.0)
	require.NoError(t, err)
	require.NoError(t, a.Frame(1.0/60))
	require.InDelta(t, 0.9, a.Rig.Head.Rotation().Y(), 1e-12)

	a.handleKey(common.KeyR, 0)
	assert.Equal(t, pose.ModeIdle, a.State.Mode())
	assert.InDelta(t, 0.2, a.Rig.LeftArm.Rotation().Z(), 1e-12)
	assert.InDelta(t, a.Driver.Last().HeadYaw, a.Rig.Head.Rotation().Y(), 1e-12)
	assert.Less(t, a.Rig.Head.Rotation().Y(), 0.11)
}

func TestHeadCameraRidesOnHead(t *testing.T) {
	a := newApp(t, nil)
	a.State.SetMode(pose.ModeWave)
	require.NoError(t, a.Frame(1.0/60))

	want := a.Rig.Head.WorldPoint(mgl64.Vec3{0, 0, 0.3})
	got := a.HeadCamera.Position()
	assert.InDelta(t, want.X(), got.X(), 1e-9)
	assert.InDelta(t, want.Y(), got.Y(), 1e-9)
	assert.InDelta(t, want.Z(), got.Z(), 1e-9)
}

func TestFrameErrorLeavesRigUntouched(t *testing.T) {
	a := newApp(t, nil)
	require.NoError(t, a.Frame(1.0/60))
	before := a.Rig.Torso.Position()

	a.State.SetMode(pose.Mode(42))
	assert.Error(t, a.Frame(1.0/60))
	assert.Equal(t, before, a.Rig.Torso.Position())
}

func TestActivityPerMode(t *testing.T) {
	assert.Equal(t, 0.1, Activity(pose.ModeIdle))
	assert.Equal(t, 0.5, Activity(pose.ModeWave))
	assert.Equal(t, 0.8, Activity(pose.ModeDance))
	assert.Equal(t, 0.3, Activity(pose.ModeManual))
}

func TestSupersampledSnapshot(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.png")
	a := newApp(t, func(c *config.Config) {
		c.Snapshot = out
		c.Frames = 2
		c.Supersample = 2
	})
	w, h := a.Renderer.Size()
	require.Equal(t, 800, w)
	require.Equal(t, 600, h)

	require.NoError(t, a.Run(context.Background()))
	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 400, 300), img.Bounds())
}

func TestStartupErrors(t *testing.T) {
	_, err := New(headlessConfig(t, func(c *config.Config) {
		c.Snapshot = filepath.Join(t.TempDir(), "missing", "frame.webp")
	}))
	assert.Error(t, err)

	_, err = New(headlessConfig(t, func(c *config.Config) {
		c.MinDistance, c.MaxDistance, c.StartDistance = 6, 3, 4
	}))
	assert.Error(t, err)
}
