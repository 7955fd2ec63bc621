package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// nearEpsilon keeps clipped vertices strictly in front of the eye.
const nearEpsilon = 1e-6

// ScreenTriangle is a triangle already mapped into a viewport: pixel x/y plus NDC depth per vertex,
// with one flat color.
type ScreenTriangle struct {
	X, Y, Z [3]float64
	Color   color.NRGBA
}

// ScreenLine is a line segment mapped into a viewport.
type ScreenLine struct {
	X0, Y0, Z0 float64
	X1, Y1, Z1 float64
	Color      color.NRGBA
}

// ToScreen maps a clip-space position into pixel coordinates of viewport vp (top-left origin).
//
// Parameters:
//   - vp: the viewport rectangle in frame buffer pixels
//   - clip: the clip-space position with w > 0
//
// Returns:
//   - x, y: pixel coordinates
//   - z: NDC depth
func ToScreen(vp image.Rectangle, clip mgl64.Vec4) (x, y, z float64) {
	inv := 1 / clip.W()
	nx, ny, nz := clip.X()*inv, clip.Y()*inv, clip.Z()*inv
	x = float64(vp.Min.X) + (nx+1)*0.5*float64(vp.Dx())
	y = float64(vp.Min.Y) + (1-ny)*0.5*float64(vp.Dy())
	return x, y, nz
}

// ProjectTriangle transforms a world-space triangle, clips it against the near plane and appends
// the resulting screen triangles to dst. A triangle fully behind the camera appends nothing.
//
// Parameters:
//   - viewProj: the camera's view-projection matrix
//   - vp: the viewport rectangle
//   - a, b, c: world-space vertices
//   - col: the flat color
//   - dst: slice to append to
//
// Returns:
//   - []ScreenTriangle: dst with zero, one or two triangles appended
func ProjectTriangle(viewProj mgl64.Mat4, vp image.Rectangle, a, b, c mgl64.Vec3, col color.NRGBA, dst []ScreenTriangle) []ScreenTriangle {
	in := [3]mgl64.Vec4{
		viewProj.Mul4x1(a.Vec4(1)),
		viewProj.Mul4x1(b.Vec4(1)),
		viewProj.Mul4x1(c.Vec4(1)),
	}

	var poly [4]mgl64.Vec4
	n := 0
	for i := range 3 {
		cur, next := in[i], in[(i+1)%3]
		dc, dn := nearDistance(cur), nearDistance(next)
		if dc >= 0 {
			poly[n] = cur
			n++
		}
		if (dc >= 0) != (dn >= 0) {
			t := dc / (dc - dn)
			poly[n] = lerp4(cur, next, t)
			n++
		}
	}
	if n < 3 {
		return dst
	}

	var xs, ys, zs [4]float64
	for i := 0; i < n; i++ {
		xs[i], ys[i], zs[i] = ToScreen(vp, poly[i])
	}
	for i := 1; i+1 < n; i++ {
		dst = append(dst, ScreenTriangle{
			X:     [3]float64{xs[0], xs[i], xs[i+1]},
			Y:     [3]float64{ys[0], ys[i], ys[i+1]},
			Z:     [3]float64{zs[0], zs[i], zs[i+1]},
			Color: col,
		})
	}
	return dst
}

// ProjectLine transforms a world-space segment, clips it against the near plane and maps it into vp.
//
// Returns:
//   - ScreenLine: the mapped segment
//   - bool: false when the segment lies entirely behind the camera
func ProjectLine(viewProj mgl64.Mat4, vp image.Rectangle, a, b mgl64.Vec3, col color.NRGBA) (ScreenLine, bool) {
	ca := viewProj.Mul4x1(a.Vec4(1))
	cb := viewProj.Mul4x1(b.Vec4(1))
	da, db := nearDistance(ca), nearDistance(cb)
	switch {
	case da < 0 && db < 0:
		return ScreenLine{}, false
	case da < 0:
		ca = lerp4(ca, cb, da/(da-db))
	case db < 0:
		cb = lerp4(cb, ca, db/(db-da))
	}
	l := ScreenLine{Color: col}
	l.X0, l.Y0, l.Z0 = ToScreen(vp, ca)
	l.X1, l.Y1, l.Z1 = ToScreen(vp, cb)
	return l, true
}

// nearDistance is positive in front of the near plane (z >= -w), kept slightly inside w > 0.
func nearDistance(v mgl64.Vec4) float64 {
	return math.Min(v.Z()+v.W(), v.W()-nearEpsilon)
}

func lerp4(a, b mgl64.Vec4, t float64) mgl64.Vec4 {
	return a.Add(b.Sub(a).Mul(t))
}

// RasterizeTriangle fills tri into fb with depth testing. Only pixels inside clip are written;
// the caller passes the pass scissor, optionally narrowed to one band of rows.
//
// This is the hot path: no allocations in the pixel loop.
func RasterizeTriangle(fb *FrameBuffer, tri *ScreenTriangle, clip image.Rectangle) {
	clip = clip.Intersect(fb.Bounds())
	if clip.Empty() {
		return
	}

	x0, y0, z0 := tri.X[0], tri.Y[0], tri.Z[0]
	x1, y1, z1 := tri.X[1], tri.Y[1], tri.Z[1]
	x2, y2, z2 := tri.X[2], tri.Y[2], tri.Z[2]

	// Bounding box over pixel centers
	minX := max(clip.Min.X, int(math.Floor(math.Min(math.Min(x0, x1), x2))))
	maxX := min(clip.Max.X-1, int(math.Ceil(math.Max(math.Max(x0, x1), x2))))
	minY := max(clip.Min.Y, int(math.Floor(math.Min(math.Min(y0, y1), y2))))
	maxY := min(clip.Max.Y-1, int(math.Ceil(math.Max(math.Max(y0, y1), y2))))
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-10 && det < 1e-10 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	cr, cg, cb, ca := tri.Color.R, tri.Color.G, tri.Color.B, tri.Color.A
	w := fb.Width

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * w
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			if z < -1 || z > 1 {
				continue
			}
			zIdx := rowOff + sx
			if z >= fb.ZBuf[zIdx] {
				continue
			}
			fb.ZBuf[zIdx] = z

			p := zIdx * 4
			fb.Color[p] = cr
			fb.Color[p+1] = cg
			fb.Color[p+2] = cb
			fb.Color[p+3] = ca
		}
	}
}

// lineDepthBias lets grid lines win against coplanar geometry.
const lineDepthBias = 1e-5

// RasterizeLine draws l into fb with a DDA walk. Lines are depth tested but do not write depth.
func RasterizeLine(fb *FrameBuffer, l *ScreenLine, clip image.Rectangle) {
	clip = clip.Intersect(fb.Bounds())
	if clip.Empty() {
		return
	}
	t0, t1, ok := clipSegment(l, clip)
	if !ok {
		return
	}
	// Sample positions come from the whole segment so that every band walks the same pixels.
	dx, dy := l.X1-l.X0, l.Y1-l.Y0
	steps := math.Ceil(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps < 1 {
		steps = 1
	}
	first := int(math.Floor(t0 * steps))
	last := int(math.Ceil(t1 * steps))
	for i := first; i <= last; i++ {
		t := float64(i) / steps
		x := int(math.Floor(l.X0 + dx*t))
		y := int(math.Floor(l.Y0 + dy*t))
		if x < clip.Min.X || x >= clip.Max.X || y < clip.Min.Y || y >= clip.Max.Y {
			continue
		}
		z := l.Z0 + (l.Z1-l.Z0)*t
		if z < -1 || z > 1 {
			continue
		}
		idx := y*fb.Width + x
		if z-lineDepthBias >= fb.ZBuf[idx] {
			continue
		}
		p := idx * 4
		fb.Color[p] = l.Color.R
		fb.Color[p+1] = l.Color.G
		fb.Color[p+2] = l.Color.B
		fb.Color[p+3] = l.Color.A
	}
}

// clipSegment returns the parameter interval of l that lies inside r (Liang-Barsky).
func clipSegment(l *ScreenLine, r image.Rectangle) (t0, t1 float64, ok bool) {
	dx, dy := l.X1-l.X0, l.Y1-l.Y0
	t0, t1 = 0, 1
	edges := [4][2]float64{
		{-dx, l.X0 - float64(r.Min.X)},
		{dx, float64(r.Max.X) - l.X0},
		{-dy, l.Y0 - float64(r.Min.Y)},
		{dy, float64(r.Max.Y) - l.Y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = math.Max(t0, t)
		} else {
			t1 = math.Min(t1, t)
		}
		if t0 > t1 {
			return 0, 0, false
		}
	}
	return t0, t1, true
}
