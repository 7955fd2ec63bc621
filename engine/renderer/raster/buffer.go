// Package raster is the software rasterizer used by the renderer: a color/depth frame buffer,
// flat-shaded triangles and depth-tested lines, all clipped to a per-pass scissor rectangle.
package raster

import (
	"image"
	"image/color"
	"math"
)

// FrameBuffer holds the rendering target as flat slices for cache locality.
// Depth is NDC z in [-1, 1]; smaller is closer and cleared depth is +Inf.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	ZBuf   []float64 // depth per pixel, len = W*H
}

// NewFrameBuffer allocates a transparent color buffer and a cleared depth buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	fb := &FrameBuffer{}
	fb.Resize(w, h)
	return fb
}

// Resize reallocates the buffers for a new size. Contents are discarded.
func (fb *FrameBuffer) Resize(w, h int) {
	w = max(w, 1)
	h = max(h, 1)
	n := w * h
	fb.Width = w
	fb.Height = h
	fb.Color = make([]uint8, n*4)
	fb.ZBuf = make([]float64, n)
	for i := range fb.ZBuf {
		fb.ZBuf[i] = math.Inf(1)
	}
}

// Bounds returns the full buffer rectangle.
func (fb *FrameBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// Clear fills rect with c and resets its depth. Pixels outside rect are not touched,
// which is what keeps one viewport's clear from erasing another.
func (fb *FrameBuffer) Clear(rect image.Rectangle, c color.NRGBA) {
	rect = rect.Intersect(fb.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		row := y * fb.Width
		for x := rect.Min.X; x < rect.Max.X; x++ {
			i := row + x
			fb.ZBuf[i] = math.Inf(1)
			p := i * 4
			fb.Color[p] = c.R
			fb.Color[p+1] = c.G
			fb.Color[p+2] = c.B
			fb.Color[p+3] = c.A
		}
	}
}

// At returns the color stored at (x, y), or transparent black when out of range.
func (fb *FrameBuffer) At(x, y int) color.NRGBA {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return color.NRGBA{}
	}
	p := (y*fb.Width + x) * 4
	return color.NRGBA{R: fb.Color[p], G: fb.Color[p+1], B: fb.Color[p+2], A: fb.Color[p+3]}
}

// Depth returns the depth stored at (x, y), or +Inf when out of range.
func (fb *FrameBuffer) Depth(x, y int) float64 {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return math.Inf(1)
	}
	return fb.ZBuf[y*fb.Width+x]
}

// Image copies the color buffer into a new NRGBA image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(fb.Bounds())
	copy(img.Pix, fb.Color)
	return img
}

// NRGBA returns an image that shares the color buffer, so image/draw style code can paint
// straight into the frame. The view is invalidated by Resize.
func (fb *FrameBuffer) NRGBA() *image.NRGBA {
	return &image.NRGBA{Pix: fb.Color, Stride: fb.Width * 4, Rect: fb.Bounds()}
}

// Blend alpha-composites c over the pixel at (x, y) without touching depth.
// Overlay drawing goes through here.
func (fb *FrameBuffer) Blend(x, y int, c color.NRGBA) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height || c.A == 0 {
		return
	}
	p := (y*fb.Width + x) * 4
	if c.A == 255 {
		fb.Color[p], fb.Color[p+1], fb.Color[p+2], fb.Color[p+3] = c.R, c.G, c.B, 255
		return
	}
	a := uint32(c.A)
	ia := 255 - a
	fb.Color[p] = uint8((uint32(c.R)*a + uint32(fb.Color[p])*ia) / 255)
	fb.Color[p+1] = uint8((uint32(c.G)*a + uint32(fb.Color[p+1])*ia) / 255)
	fb.Color[p+2] = uint8((uint32(c.B)*a + uint32(fb.Color[p+2])*ia) / 255)
	fb.Color[p+3] = uint8(min(255, uint32(fb.Color[p+3])+a))
}
