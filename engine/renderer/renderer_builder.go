package renderer

import (
	"runtime"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// DefaultWorkers returns the default raster worker count: one less than the CPU count, at least 1.
func DefaultWorkers() int {
	return max(runtime.NumCPU()-1, 1)
}

// WithWorkers sets the number of raster workers. Each pass is cut into this many bands.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - RendererBuilderOption: a function that applies the workers option to a renderer
func WithWorkers(n int) RendererBuilderOption {
	return func(r *renderer) {
		if n < 1 {
			n = 1
		}
		r.workers = n
	}
}

// WithPresenter attaches a presenter at construction. Without one the renderer is headless.
//
// Parameters:
//   - p: the presenter
//
// Returns:
//   - RendererBuilderOption: a function that applies the presenter option to a renderer
func WithPresenter(p Presenter) RendererBuilderOption {
	return func(r *renderer) {
		r.presenter = p
	}
}

// WithCullingDisabled turns off per-model frustum culling.
//
// Parameters:
//   - disabled: true to draw every visible model regardless of the frustum
//
// Returns:
//   - RendererBuilderOption: a function that applies the culling option to a renderer
func WithCullingDisabled(disabled bool) RendererBuilderOption {
	return func(r *renderer) {
		r.cullingDisabled = disabled
	}
}
