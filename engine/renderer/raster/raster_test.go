package raster

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-sentinel/engine/model"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
)

func coverAll(z float64, c color.NRGBA) *ScreenTriangle {
	return &ScreenTriangle{
		X:     [3]float64{-10, 60, -10},
		Y:     [3]float64{-10, -10, 60},
		Z:     [3]float64{z, z, z},
		Color: c,
	}
}

func TestClearOnlyTouchesRect(t *testing.T) {
	fb := NewFrameBuffer(16, 16)
	fb.Clear(fb.Bounds(), blue)
	fb.ZBuf[0] = 0.25

	fb.Clear(image.Rect(4, 4, 8, 8), red)

	assert.Equal(t, blue, fb.At(0, 0))
	assert.Equal(t, 0.25, fb.Depth(0, 0))
	assert.Equal(t, red, fb.At(4, 4))
	assert.Equal(t, red, fb.At(7, 7))
	assert.Equal(t, blue, fb.At(8, 8))
	assert.True(t, math.IsInf(fb.Depth(5, 5), 1))
}

func TestClearClipsToBuffer(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	assert.NotPanics(t, func() { fb.Clear(image.Rect(-5, -5, 50, 50), red) })
	assert.Equal(t, red, fb.At(7, 7))
}

func TestRasterizeRespectsClip(t *testing.T) {
	fb := NewFrameBuffer(16, 16)
	clip := image.Rect(4, 4, 8, 8)
	RasterizeTriangle(fb, coverAll(0, green), clip)

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			inside := image.Pt(x, y).In(clip)
			if inside {
				assert.Equal(t, green, fb.At(x, y), "(%d,%d)", x, y)
			} else {
				assert.Equal(t, color.NRGBA{}, fb.At(x, y), "(%d,%d)", x, y)
			}
		}
	}
}

func TestRasterizeCoverage(t *testing.T) {
	fb := NewFrameBuffer(32, 32)
	tri := &ScreenTriangle{
		X:     [3]float64{0, 20, 0},
		Y:     [3]float64{0, 0, 20},
		Color: red,
	}
	RasterizeTriangle(fb, tri, fb.Bounds())
	assert.Equal(t, red, fb.At(1, 1))
	assert.Equal(t, red, fb.At(9, 9))
	assert.Equal(t, color.NRGBA{}, fb.At(15, 15))
	assert.Equal(t, color.NRGBA{}, fb.At(25, 2))
}

func TestDepthTestIsOrderIndependent(t *testing.T) {
	near := coverAll(-0.5, green)
	far := coverAll(0.5, red)

	a := NewFrameBuffer(8, 8)
	RasterizeTriangle(a, far, a.Bounds())
	RasterizeTriangle(a, near, a.Bounds())

	b := NewFrameBuffer(8, 8)
	RasterizeTriangle(b, near, b.Bounds())
	RasterizeTriangle(b, far, b.Bounds())

	assert.Equal(t, green, a.At(3, 3))
	assert.Equal(t, a.Color, b.Color)
	assert.InDelta(t, -0.5, b.Depth(3, 3), 1e-12)
}

func TestRasterizeDropsBeyondFarPlane(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	RasterizeTriangle(fb, coverAll(1.5, red), fb.Bounds())
	assert.Equal(t, color.NRGBA{}, fb.At(3, 3))
}

func TestProjectTriangleNearClipping(t *testing.T) {
	view := mgl64.LookAtV(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 1, 0})
	proj := mgl64.Perspective(mgl64.DegToRad(90), 1, 0.1, 100)
	vp := proj.Mul4(view)
	rect := image.Rect(0, 0, 100, 100)

	behind := ProjectTriangle(vp, rect,
		mgl64.Vec3{-1, 0, 1}, mgl64.Vec3{1, 0, 1}, mgl64.Vec3{0, 1, 1}, red, nil)
	assert.Empty(t, behind)

	front := ProjectTriangle(vp, rect,
		mgl64.Vec3{-1, -1, -5}, mgl64.Vec3{1, -1, -5}, mgl64.Vec3{0, 1, -5}, red, nil)
	require.Len(t, front, 1)

	straddling := ProjectTriangle(vp, rect,
		mgl64.Vec3{-1, -1, -5}, mgl64.Vec3{1, -1, -5}, mgl64.Vec3{0, -1, 5}, red, nil)
	require.NotEmpty(t, straddling)
	assert.LessOrEqual(t, len(straddling), 2)
	for _, tri := range straddling {
		for i := range 3 {
			assert.False(t, math.IsNaN(tri.X[i]) || math.IsInf(tri.X[i], 0))
			assert.GreaterOrEqual(t, tri.Z[i], -1-1e-9)
		}
	}
}

func TestToScreenMapsNDCIntoViewport(t *testing.T) {
	vp := image.Rect(100, 50, 400, 250)
	x, y, _ := ToScreen(vp, mgl64.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 250.0, x, 1e-9)
	assert.InDelta(t, 150.0, y, 1e-9)

	x, y, _ = ToScreen(vp, mgl64.Vec4{-2, 2, 0, 2})
	assert.InDelta(t, 100.0, x, 1e-9)
	assert.InDelta(t, 50.0, y, 1e-9)
}

func TestRasterizeLineClipsAndDepthTests(t *testing.T) {
	fb := NewFrameBuffer(16, 16)
	l := &ScreenLine{X0: -100, Y0: 8.5, Z0: 0, X1: 100, Y1: 8.5, Z1: 0, Color: red}
	RasterizeLine(fb, l, image.Rect(0, 0, 8, 16))
	assert.Equal(t, red, fb.At(0, 8))
	assert.Equal(t, red, fb.At(7, 8))
	assert.Equal(t, color.NRGBA{}, fb.At(8, 8))

	// A nearer surface hides the line.
	fb2 := NewFrameBuffer(16, 16)
	RasterizeTriangle(fb2, coverAll(-0.5, green), fb2.Bounds())
	RasterizeLine(fb2, l, fb2.Bounds())
	assert.Equal(t, green, fb2.At(4, 8))
}

func TestBlendComposites(t *testing.T) {
	fb := NewFrameBuffer(2, 2)
	fb.Clear(fb.Bounds(), color.NRGBA{A: 255})
	fb.Blend(0, 0, color.NRGBA{R: 255, A: 255})
	fb.Blend(1, 0, color.NRGBA{R: 255, A: 128})
	fb.Blend(5, 5, red)

	assert.Equal(t, red, fb.At(0, 0))
	got := fb.At(1, 0)
	assert.InDelta(t, 128, int(got.R), 1)
	assert.Equal(t, uint8(255), got.A)
}

func TestACESTonemap(t *testing.T) {
	assert.Equal(t, 0.0, ACESTonemap(0))
	prev := 0.0
	for x := 0.01; x < 10; x += 0.01 {
		v := ACESTonemap(x)
		assert.Greater(t, v, prev)
		prev = v
	}
	assert.Less(t, prev, 1.05)
}

func TestShade(t *testing.T) {
	lc := DefaultLightConfig()
	eye := mgl64.Vec3{0, 1.2, 3.5}

	glow := model.Material{Color: color.NRGBA{G: 255, B: 255, A: 255}, Unlit: true}
	assert.Equal(t, glow.Color, lc.Shade(glow, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{}, eye))

	silver := model.Material{Color: color.NRGBA{R: 255, G: 255, B: 255, A: 255}, Metalness: 0.8, Roughness: 0.2}
	front := lc.Shade(silver, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 1, 0}, eye)
	back := lc.Shade(silver, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 1, 0}, eye)
	assert.Equal(t, uint8(255), front.A)
	// Double-sided: flipping the normal does not darken the diffuse term.
	assert.InDelta(t, int(front.G), int(back.G), 60)

	black := model.Material{Color: color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 255}, Metalness: 0.5, Roughness: 0.4}
	dark := lc.Shade(black, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 1, 0}, eye)
	assert.Less(t, int(dark.G), int(front.G))
}

func TestNRGBASharesMemory(t *testing.T) {
	fb := NewFrameBuffer(4, 3)
	img := fb.NRGBA()
	img.SetNRGBA(2, 1, red)
	assert.Equal(t, red, fb.At(2, 1))
	assert.Equal(t, fb.Bounds(), img.Bounds())
}
