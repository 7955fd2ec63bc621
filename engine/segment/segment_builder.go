package segment

import (
	"github.com/Carmen-Shannon/oxy-sentinel/engine/model"
	"github.com/go-gl/mathgl/mgl64"
)

// SegmentBuilderOption is a functional option for configuring a Segment during construction.
type SegmentBuilderOption func(*segment)

// WithPosition sets the initial local translation of the Segment.
//
// Parameters:
//   - x, y, z: translation relative to the parent
//
// Returns:
//   - SegmentBuilderOption: functional option to set the position
func WithPosition(x, y, z float64) SegmentBuilderOption {
	return func(s *segment) {
		s.position = mgl64.Vec3{x, y, z}
	}
}

// WithRotation sets the initial local Euler rotation of the Segment.
//
// Parameters:
//   - x, y, z: rotation angles in radians (XYZ order)
//
// Returns:
//   - SegmentBuilderOption: functional option to set the rotation
func WithRotation(x, y, z float64) SegmentBuilderOption {
	return func(s *segment) {
		s.rotation = mgl64.Vec3{x, y, z}
	}
}

// WithScale sets the initial local scale of the Segment.
//
// Parameters:
//   - x, y, z: scale factors
//
// Returns:
//   - SegmentBuilderOption: functional option to set the scale
func WithScale(x, y, z float64) SegmentBuilderOption {
	return func(s *segment) {
		s.scale = mgl64.Vec3{x, y, z}
	}
}

// WithEnabled sets whether the Segment is drawn.
//
// Parameters:
//   - enabled: true to draw the segment and its subtree
//
// Returns:
//   - SegmentBuilderOption: functional option to set the enabled state
func WithEnabled(enabled bool) SegmentBuilderOption {
	return func(s *segment) {
		s.enabled = enabled
	}
}

// WithModels attaches models to the Segment at construction.
//
// Parameters:
//   - models: the models to attach
//
// Returns:
//   - SegmentBuilderOption: functional option to attach the models
func WithModels(models ...model.Model) SegmentBuilderOption {
	return func(s *segment) {
		s.models = append(s.models, models...)
	}
}
