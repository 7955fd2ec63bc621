package overlay

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Canvas draws 2D overlay primitives onto an image: translucent rectangles, bitmap text,
// anti-aliased dots and polylines.
type Canvas struct {
	dst  *image.NRGBA
	face font.Face
	ras  *vector.Rasterizer
}

// NewCanvas wraps dst. Text uses the 7x13 bitmap face.
//
// Parameters:
//   - dst: the image to draw on
//
// Returns:
//   - *Canvas: the canvas
func NewCanvas(dst *image.NRGBA) *Canvas {
	return &Canvas{dst: dst, face: basicfont.Face7x13, ras: vector.NewRasterizer(1, 1)}
}

// Bounds returns the drawable area.
func (c *Canvas) Bounds() image.Rectangle {
	return c.dst.Bounds()
}

// Image returns the destination image.
func (c *Canvas) Image() *image.NRGBA {
	return c.dst
}

// LineHeight returns the distance between text baselines in pixels.
func (c *Canvas) LineHeight() int {
	return c.face.Metrics().Height.Ceil()
}

// Ascent returns the height of the text above its baseline in pixels.
func (c *Canvas) Ascent() int {
	return c.face.Metrics().Ascent.Ceil()
}

// TextWidth returns the advance width of s in pixels.
func (c *Canvas) TextWidth(s string) int {
	return font.MeasureString(c.face, s).Ceil()
}

// FillRect composites col over r.
func (c *Canvas) FillRect(r image.Rectangle, col color.NRGBA) {
	draw.Draw(c.dst, r.Intersect(c.dst.Bounds()), image.NewUniform(col), image.Point{}, draw.Over)
}

// StrokeRect draws a one pixel border just inside r.
func (c *Canvas) StrokeRect(r image.Rectangle, col color.NRGBA) {
	c.FillRect(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), col)
	c.FillRect(image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), col)
	c.FillRect(image.Rect(r.Min.X, r.Min.Y+1, r.Min.X+1, r.Max.Y-1), col)
	c.FillRect(image.Rect(r.Max.X-1, r.Min.Y+1, r.Max.X, r.Max.Y-1), col)
}

// Text draws s with its baseline starting at (x, y).
func (c *Canvas) Text(x, y int, s string, col color.NRGBA) {
	d := &font.Drawer{
		Dst:  c.dst,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// Dot fills an anti-aliased disc of radius r centered at (cx, cy).
func (c *Canvas) Dot(cx, cy, r float64, col color.NRGBA) {
	const segments = 16
	pts := make([][2]float64, 0, segments)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		pts = append(pts, [2]float64{cx + r*math.Cos(a), cy + r*math.Sin(a)})
	}
	c.fillPolygons([][][2]float64{pts}, col)
}

// Polyline strokes the connected segments through pts with the given width.
func (c *Canvas) Polyline(pts [][2]float64, width float64, col color.NRGBA) {
	if len(pts) < 2 {
		return
	}
	half := width / 2
	quads := make([][][2]float64, 0, len(pts)-1)
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		dx, dy := b[0]-a[0], b[1]-a[1]
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*half, dx/l*half
		// Extend each segment by half the width so joints overlap.
		ex, ey := dx/l*half, dy/l*half
		quads = append(quads, [][2]float64{
			{a[0] - ex + nx, a[1] - ey + ny},
			{b[0] + ex + nx, b[1] + ey + ny},
			{b[0] + ex - nx, b[1] + ey - ny},
			{a[0] - ex - nx, a[1] - ey - ny},
		})
	}
	c.fillPolygons(quads, col)
}

// fillPolygons rasterizes closed polygons (non-zero coverage clamped to 1) and composites col.
func (c *Canvas) fillPolygons(polys [][][2]float64, col color.NRGBA) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range polys {
		for _, p := range poly {
			minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
			minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
		}
	}
	if math.IsInf(minX, 0) {
		return
	}
	r := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1)
	clipped := r.Intersect(c.dst.Bounds())
	if clipped.Empty() {
		return
	}

	// The mask's origin is drawn at the destination rectangle's corner, so the rasterizer
	// covers exactly the clipped area and paths are shifted into it.
	c.ras.Reset(clipped.Dx(), clipped.Dy())
	ox, oy := float64(clipped.Min.X), float64(clipped.Min.Y)
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		c.ras.MoveTo(float32(poly[0][0]-ox), float32(poly[0][1]-oy))
		for _, p := range poly[1:] {
			c.ras.LineTo(float32(p[0]-ox), float32(p[1]-oy))
		}
		c.ras.ClosePath()
	}
	c.ras.DrawOp = draw.Over
	c.ras.Draw(c.dst, clipped, image.NewUniform(col), image.Point{})
}
