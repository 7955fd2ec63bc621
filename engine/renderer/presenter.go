package renderer

import (
	"github.com/Carmen-Shannon/oxy-sentinel/engine/renderer/raster"
)

// PresentMode controls how presented frames are delivered to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the display refresh rate.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	PresentModeUncapped
)

// Presenter puts a finished frame buffer on screen. The renderer draws on the CPU; a
// Presenter only uploads and blits the result.
type Presenter interface {
	// Resize reconfigures the surface for a new window size.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height int)

	// Present uploads fb and displays it.
	//
	// Parameters:
	//   - fb: the composited frame
	//
	// Returns:
	//   - error: error if the surface texture could not be acquired or the upload failed
	Present(fb *raster.FrameBuffer) error

	// Release frees every GPU object held by the presenter.
	Release()
}
