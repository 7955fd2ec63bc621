package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-sentinel/engine/camera"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/model"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/renderer/raster"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/scene"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
)

func boxScene(bg color.NRGBA) scene.Scene {
	box := model.NewModel(model.NewBoxMesh(1, 1, 1), model.WithMaterial(model.Material{Color: green, Unlit: true}))
	return scene.NewScene("box", scene.WithBackground(bg), scene.WithSegments(segment.NewSegment("box", segment.WithModels(box))))
}

func frontCamera() camera.Camera {
	return camera.NewCamera(
		camera.WithFovDegrees(60),
		camera.WithAspect(1),
		camera.WithController(camera.NewOrbitController(camera.WithTarget(0, 0, 0), camera.WithRadius(3))),
	)
}

type countingPresenter struct {
	presented int
	w, h      int
	released  bool
}

func (p *countingPresenter) Resize(w, h int) { p.w, p.h = w, h }

func (p *countingPresenter) Present(_ *raster.FrameBuffer) error {
	p.presented++
	return nil
}

func (p *countingPresenter) Release() { p.released = true }

func TestFullPassDrawsGeometryOverBackground(t *testing.T) {
	r := NewRenderer(64, 64, WithWorkers(3))
	stats, err := r.RenderPass(boxScene(blue), frontCamera(), Pass{Name: "main", Viewport: image.Rect(0, 0, 64, 64)})
	require.NoError(t, err)

	fb := r.FrameBuffer()
	assert.Equal(t, green, fb.At(32, 32))
	assert.Equal(t, blue, fb.At(0, 0))
	assert.Equal(t, blue, fb.At(63, 63))
	assert.Equal(t, 1, stats.Models)
	assert.Equal(t, 0, stats.Culled)
	assert.Equal(t, 12, stats.Triangles)
}

func TestScissoredPassLeavesOutsidePixelsAlone(t *testing.T) {
	r := NewRenderer(64, 64, WithWorkers(4))
	_, err := r.RenderPass(boxScene(blue), frontCamera(), Pass{Viewport: image.Rect(0, 0, 64, 64)})
	require.NoError(t, err)

	fb := r.FrameBuffer()
	before := make([]uint8, len(fb.Color))
	copy(before, fb.Color)
	depthBefore := fb.Depth(32, 32)

	inset := image.Rect(48, 48, 64, 64)
	empty := scene.NewScene("empty", scene.WithBackground(red))
	_, err = r.RenderPass(empty, frontCamera(), Pass{Name: "inset", Viewport: inset, Scissor: inset})
	require.NoError(t, err)

	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if image.Pt(x, y).In(inset) {
				assert.Equal(t, red, fb.At(x, y))
				continue
			}
			p := (y*64 + x) * 4
			require.Equal(t, before[p:p+4], fb.Color[p:p+4], "(%d,%d)", x, y)
		}
	}
	assert.Equal(t, depthBefore, fb.Depth(32, 32))
}

func TestInsetCompositesOnTop(t *testing.T) {
	r := NewRenderer(64, 64, WithWorkers(2))
	_, err := r.RenderPass(boxScene(blue), frontCamera(), Pass{Viewport: image.Rect(0, 0, 64, 64)})
	require.NoError(t, err)
	require.Equal(t, green, r.FrameBuffer().At(32, 32))

	inset := image.Rect(20, 20, 44, 44)
	_, err = r.RenderPass(scene.NewScene("empty", scene.WithBackground(red)), frontCamera(), Pass{Viewport: inset, Scissor: inset})
	require.NoError(t, err)

	// The inset clears its own depth, so the main pass geometry cannot show through.
	assert.Equal(t, red, r.FrameBuffer().At(32, 32))
	assert.True(t, math.IsInf(r.FrameBuffer().Depth(32, 32), 1))
}

func TestInsetViewportMapsSceneIntoRect(t *testing.T) {
	r := NewRenderer(64, 64, WithWorkers(2))
	r.FrameBuffer().Clear(r.FrameBuffer().Bounds(), red)

	inset := image.Rect(32, 32, 64, 64)
	_, err := r.RenderPass(boxScene(blue), frontCamera(), Pass{Viewport: inset, Scissor: inset})
	require.NoError(t, err)

	fb := r.FrameBuffer()
	assert.Equal(t, green, fb.At(48, 48))
	assert.Equal(t, blue, fb.At(33, 33))
	assert.Equal(t, red, fb.At(10, 10))
	assert.Equal(t, red, fb.At(16, 16))
}

func TestCullingSkipsModelsOutsideFrustum(t *testing.T) {
	cam := camera.NewCamera(
		camera.WithFovDegrees(60),
		camera.WithAspect(1),
		camera.WithController(camera.NewOrbitController(camera.WithTarget(0, 0, -10), camera.WithRadius(3))),
	)
	r := NewRenderer(32, 32)
	stats, err := r.RenderPass(boxScene(blue), cam, Pass{Viewport: image.Rect(0, 0, 32, 32)})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Culled)
	assert.Equal(t, 0, stats.Triangles)
	assert.Equal(t, blue, r.FrameBuffer().At(16, 16))
}

func TestWorkerCountDoesNotChangeOutput(t *testing.T) {
	sc := boxScene(blue)
	sc.SetGrid(scene.NewGridHelper())

	render := func(workers int) []uint8 {
		r := NewRenderer(80, 60, WithWorkers(workers))
		_, err := r.RenderPass(sc, frontCamera(), Pass{Viewport: image.Rect(0, 0, 80, 60)})
		require.NoError(t, err)
		return r.Image().Pix
	}
	assert.Equal(t, render(1), render(5))
}

func TestRenderPassRejectsBadInput(t *testing.T) {
	r := NewRenderer(16, 16)
	_, err := r.RenderPass(nil, frontCamera(), Pass{Viewport: image.Rect(0, 0, 16, 16)})
	assert.Error(t, err)
	_, err = r.RenderPass(boxScene(blue), frontCamera(), Pass{Name: "empty"})
	assert.Error(t, err)
}

func TestPresenterLifecycle(t *testing.T) {
	p := &countingPresenter{}
	r := NewRenderer(40, 30, WithPresenter(p))
	assert.Equal(t, 40, p.w)

	r.Resize(100, 50)
	assert.Equal(t, 100, p.w)
	assert.Equal(t, 50, p.h)
	w, h := r.Size()
	assert.Equal(t, 100, w)
	assert.Equal(t, 50, h)

	require.NoError(t, r.Present())
	assert.Equal(t, 1, p.presented)

	r.Release()
	assert.True(t, p.released)
	assert.Nil(t, r.Presenter())
	assert.NoError(t, r.Present())
}

func TestSplitBandsCoversRectOnce(t *testing.T) {
	rect := image.Rect(3, 7, 50, 40)
	for _, n := range []int{1, 2, 3, 7, 33, 100} {
		bands := splitBands(rect, n)
		require.NotEmpty(t, bands)
		assert.LessOrEqual(t, len(bands), n)
		y := rect.Min.Y
		for _, b := range bands {
			assert.Equal(t, y, b.Min.Y)
			assert.Equal(t, rect.Min.X, b.Min.X)
			assert.Equal(t, rect.Max.X, b.Max.X)
			y = b.Max.Y
		}
		assert.Equal(t, rect.Max.Y, y)
	}
}
