package model

import (
	"github.com/go-gl/mathgl/mgl64"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMaterial is an option builder that sets the shading parameters of the Model.
//
// Parameters:
//   - mat: the material to use
//
// Returns:
//   - ModelBuilderOption: a function that applies the material option to a model
func WithMaterial(mat Material) ModelBuilderOption {
	return func(m *model) {
		m.material = mat
	}
}

// WithPosition is an option builder that offsets the Model from its segment origin.
//
// Parameters:
//   - x, y, z: offset in segment space
//
// Returns:
//   - ModelBuilderOption: a function that applies the position option to a model
func WithPosition(x, y, z float64) ModelBuilderOption {
	return func(m *model) {
		m.position = mgl64.Vec3{x, y, z}
	}
}

// WithRotation is an option builder that sets the Model's Euler rotation (XYZ order).
//
// Parameters:
//   - x, y, z: rotation angles in radians
//
// Returns:
//   - ModelBuilderOption: a function that applies the rotation option to a model
func WithRotation(x, y, z float64) ModelBuilderOption {
	return func(m *model) {
		m.rotation = mgl64.Vec3{x, y, z}
	}
}

// WithScale is an option builder that sets the Model's per-axis scale.
//
// Parameters:
//   - x, y, z: scale factors
//
// Returns:
//   - ModelBuilderOption: a function that applies the scale option to a model
func WithScale(x, y, z float64) ModelBuilderOption {
	return func(m *model) {
		m.scale = mgl64.Vec3{x, y, z}
	}
}

// WithVisible is an option builder that sets the initial visibility of the Model.
//
// Parameters:
//   - visible: true to draw the model
//
// Returns:
//   - ModelBuilderOption: a function that applies the visibility option to a model
func WithVisible(visible bool) ModelBuilderOption {
	return func(m *model) {
		m.visible = visible
	}
}
