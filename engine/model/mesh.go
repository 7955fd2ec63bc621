package model

import (
	"math"

	"github.com/Carmen-Shannon/oxy-sentinel/common"
	"github.com/go-gl/mathgl/mgl64"
)

// Default tessellation used by the primitive constructors when a caller passes zero.
const (
	DefaultRadialSegments = 20
	DefaultHeightSegments = 12
)

// Mesh is an indexed triangle list in model space.
// Triangles are treated as double-sided by the rasterizer, so winding only matters for normals.
type Mesh struct {
	Positions []mgl64.Vec3
	Indices   []uint32
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three model-space vertices of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c mgl64.Vec3) {
	return m.Positions[m.Indices[i*3]], m.Positions[m.Indices[i*3+1]], m.Positions[m.Indices[i*3+2]]
}

// BoundingRadius returns the largest vertex distance from the mesh origin.
func (m *Mesh) BoundingRadius() float64 {
	r := 0.0
	for _, p := range m.Positions {
		r = max(r, p.Len())
	}
	return r
}

// Append merges other into m after transforming its vertices by xf.
func (m *Mesh) Append(other *Mesh, xf mgl64.Mat4) {
	base := uint32(len(m.Positions))
	for _, p := range other.Positions {
		m.Positions = append(m.Positions, common.TransformPoint(xf, p))
	}
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
}

// NewBoxMesh creates an axis-aligned box centered on the origin.
//
// Parameters:
//   - width, height, depth: extents along x, y and z
//
// Returns:
//   - *Mesh: 8 vertices, 12 triangles
func NewBoxMesh(width, height, depth float64) *Mesh {
	hx, hy, hz := width/2, height/2, depth/2
	m := &Mesh{
		Positions: []mgl64.Vec3{
			{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {-hx, hy, -hz},
			{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz},
		},
		Indices: []uint32{
			4, 5, 6, 4, 6, 7, // +z
			1, 0, 3, 1, 3, 2, // -z
			5, 1, 2, 5, 2, 6, // +x
			0, 4, 7, 0, 7, 3, // -x
			7, 6, 2, 7, 2, 3, // +y
			0, 1, 5, 0, 5, 4, // -y
		},
	}
	return m
}

// NewCylinderMesh creates a (possibly tapered, possibly partial) cylinder along the y axis,
// centered on the origin. Angles follow the convention x = r·sin(θ), z = r·cos(θ).
//
// Parameters:
//   - radiusTop: radius at y = +height/2
//   - radiusBottom: radius at y = -height/2
//   - height: total height
//   - radialSegments: number of side subdivisions (DefaultRadialSegments when <= 0)
//   - thetaStart: start angle in radians
//   - thetaLength: swept angle in radians (2π for a full cylinder)
//
// Returns:
//   - *Mesh: side wall plus top and bottom cap fans
func NewCylinderMesh(radiusTop, radiusBottom, height float64, radialSegments int, thetaStart, thetaLength float64) *Mesh {
	if radialSegments <= 0 {
		radialSegments = DefaultRadialSegments
	}
	hy := height / 2
	m := &Mesh{}

	ring := func(radius, y float64) uint32 {
		start := uint32(len(m.Positions))
		for i := 0; i <= radialSegments; i++ {
			theta := thetaStart + float64(i)/float64(radialSegments)*thetaLength
			m.Positions = append(m.Positions, mgl64.Vec3{radius * math.Sin(theta), y, radius * math.Cos(theta)})
		}
		return start
	}

	top := ring(radiusTop, hy)
	bottom := ring(radiusBottom, -hy)
	for i := uint32(0); i < uint32(radialSegments); i++ {
		a, b := top+i, top+i+1
		c, d := bottom+i, bottom+i+1
		m.Indices = append(m.Indices, a, c, b, b, c, d)
	}

	for _, c := range []struct {
		ring uint32
		y    float64
		r    float64
	}{{top, hy, radiusTop}, {bottom, -hy, radiusBottom}} {
		if c.r <= 0 {
			continue
		}
		center := uint32(len(m.Positions))
		m.Positions = append(m.Positions, mgl64.Vec3{0, c.y, 0})
		for i := uint32(0); i < uint32(radialSegments); i++ {
			m.Indices = append(m.Indices, center, c.ring+i, c.ring+i+1)
		}
	}

	return m
}

// NewSphereMesh creates a UV sphere centered on the origin.
//
// Parameters:
//   - radius: sphere radius
//   - widthSegments: longitudinal subdivisions (DefaultRadialSegments when <= 0)
//   - heightSegments: latitudinal subdivisions (DefaultHeightSegments when <= 0)
//
// Returns:
//   - *Mesh: the sphere mesh
func NewSphereMesh(radius float64, widthSegments, heightSegments int) *Mesh {
	if widthSegments <= 0 {
		widthSegments = DefaultRadialSegments
	}
	if heightSegments <= 0 {
		heightSegments = DefaultHeightSegments
	}
	m := &Mesh{}
	stride := uint32(widthSegments + 1)

	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		theta := v * math.Pi
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			phi := u * 2 * math.Pi
			m.Positions = append(m.Positions, mgl64.Vec3{
				-radius * math.Cos(phi) * math.Sin(theta),
				radius * math.Cos(theta),
				radius * math.Sin(phi) * math.Sin(theta),
			})
		}
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint32(iy)*stride + uint32(ix) + 1
			b := uint32(iy)*stride + uint32(ix)
			c := uint32(iy+1)*stride + uint32(ix)
			d := uint32(iy+1)*stride + uint32(ix) + 1
			if iy != 0 {
				m.Indices = append(m.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				m.Indices = append(m.Indices, b, c, d)
			}
		}
	}

	return m
}

// NewCapsuleMesh creates a y-aligned capsule: a cylinder of the given length capped by two
// spheres centered on its end faces.
//
// Parameters:
//   - radius: radius of the cylinder and both end spheres
//   - length: distance between the two sphere centers
//   - radialSegments: side subdivisions (DefaultRadialSegments when <= 0)
//
// Returns:
//   - *Mesh: the merged capsule mesh
func NewCapsuleMesh(radius, length float64, radialSegments int) *Mesh {
	m := NewCylinderMesh(radius, radius, length, radialSegments, 0, 2*math.Pi)
	sphere := NewSphereMesh(radius, radialSegments, 0)
	m.Append(sphere, mgl64.Translate3D(0, length/2, 0))
	m.Append(sphere, mgl64.Translate3D(0, -length/2, 0))
	return m
}
