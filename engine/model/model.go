package model

import (
	"image/color"

	"github.com/Carmen-Shannon/oxy-sentinel/common"
	"github.com/go-gl/mathgl/mgl64"
)

// Material describes how a model's faces are shaded by the rasterizer.
type Material struct {
	// Color is the base albedo in sRGB.
	Color color.NRGBA

	// Metalness in [0, 1] scales how much of the specular term is tinted by the base color.
	Metalness float64

	// Roughness in [0, 1] widens the specular highlight.
	Roughness float64

	// Unlit draws the base color directly with no lighting applied (emissive surfaces).
	Unlit bool
}

// model is the implementation of the Model interface.
type model struct {
	name     string
	mesh     *Mesh
	material Material
	visible  bool

	position mgl64.Vec3
	rotation mgl64.Vec3
	scale    mgl64.Vec3
}

// Model defines the interface for a renderable mesh attached to a segment.
// A Model carries its own local transform relative to the owning segment, so the same
// Mesh can be reused at several offsets (for example the two end spheres of a capsule).
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Mesh retrieves the model-space triangle mesh.
	//
	// Returns:
	//   - *Mesh: the mesh
	Mesh() *Mesh

	// Material retrieves the shading parameters.
	//
	// Returns:
	//   - Material: the material
	Material() Material

	// SetMaterial replaces the shading parameters.
	//
	// Parameters:
	//   - mat: the new material
	SetMaterial(mat Material)

	// Visible reports whether the model is drawn.
	//
	// Returns:
	//   - bool: true if visible
	Visible() bool

	// SetVisible toggles drawing of the model.
	//
	// Parameters:
	//   - visible: true to draw
	SetVisible(visible bool)

	// Position returns the model's offset relative to its segment.
	Position() mgl64.Vec3

	// Rotation returns the model's Euler rotation (XYZ order) relative to its segment.
	Rotation() mgl64.Vec3

	// Scale returns the model's scale relative to its segment.
	Scale() mgl64.Vec3

	// LocalMatrix composes position, rotation and scale into the model-to-segment matrix.
	//
	// Returns:
	//   - mgl64.Mat4: T * Rx * Ry * Rz * S
	LocalMatrix() mgl64.Mat4

	// BoundingRadius returns the mesh bounding radius multiplied by the largest scale component.
	// Used by frustum culling.
	//
	// Returns:
	//   - float64: the bounding radius in segment space
	BoundingRadius() float64
}

var _ Model = &model{}

// NewModel creates a new Model around a mesh.
// Defaults: visible, unit scale, white material.
//
// Parameters:
//   - mesh: the triangle mesh to render
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the newly created model
func NewModel(mesh *Mesh, options ...ModelBuilderOption) Model {
	m := &model{
		mesh:     mesh,
		visible:  true,
		scale:    mgl64.Vec3{1, 1, 1},
		material: Material{Color: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, Roughness: 1},
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Mesh() *Mesh {
	return m.mesh
}

func (m *model) Material() Material {
	return m.material
}

func (m *model) SetMaterial(mat Material) {
	m.material = mat
}

func (m *model) Visible() bool {
	return m.visible
}

func (m *model) SetVisible(visible bool) {
	m.visible = visible
}

func (m *model) Position() mgl64.Vec3 {
	return m.position
}

func (m *model) Rotation() mgl64.Vec3 {
	return m.rotation
}

func (m *model) Scale() mgl64.Vec3 {
	return m.scale
}

func (m *model) LocalMatrix() mgl64.Mat4 {
	return common.BuildModelMatrix(m.position, m.rotation, m.scale)
}

func (m *model) BoundingRadius() float64 {
	if m.mesh == nil {
		return 0
	}
	s := max(m.scale.X(), m.scale.Y(), m.scale.Z())
	return m.mesh.BoundingRadius() * s
}
