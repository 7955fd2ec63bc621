package scene

import (
	"image/color"

	"github.com/Carmen-Shannon/oxy-sentinel/engine/renderer/raster"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/segment"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithSegments attaches initial segments under the scene root.
// Segments that cannot be attached are skipped.
//
// Parameters:
//   - segs: the segments to attach
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSegments(segs ...segment.Segment) SceneBuilderOption {
	return func(s *scene) {
		for _, seg := range segs {
			_ = s.root.AddChild(seg)
		}
	}
}

// WithBackground sets the clear color.
//
// Parameters:
//   - c: the background color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackground(c color.NRGBA) SceneBuilderOption {
	return func(s *scene) {
		s.background = c
	}
}

// WithLighting replaces the default light rig.
func WithLighting(lc raster.LightConfig) SceneBuilderOption {
	return func(s *scene) {
		s.lighting = lc
	}
}

// WithGrid sets the floor grid helper.
func WithGrid(g *GridHelper) SceneBuilderOption {
	return func(s *scene) {
		s.grid = g
	}
}
