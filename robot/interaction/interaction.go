// Package interaction turns pointer, wheel and resize events into figure yaw, camera dolly and
// viewport size changes.
package interaction

import (
	"github.com/Carmen-Shannon/oxy-sentinel/engine/camera"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/window"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultDragSensitivity is radians of yaw per pixel of horizontal drag.
const DefaultDragSensitivity = 0.005

// Yawable is a transform whose rotation about the vertical axis can be changed. Segments
// satisfy it.
type Yawable interface {
	Rotation() mgl64.Vec3
	SetRotationY(y float64)
}

// Resizer is anything that follows the window size, such as the renderer.
type Resizer interface {
	Resize(width, height int)
}

// Controller maps input events onto the figure and the main camera. It runs on the scheduler
// thread only.
type Controller struct {
	target      Yawable
	orbit       camera.OrbitController
	cam         camera.Camera
	resizers    []Resizer
	sensitivity float64

	dragging  bool
	lastX     float64
	havePoint bool
	width     int
	height    int
}

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*Controller)

// WithDragSensitivity sets radians of yaw per dragged pixel. Values <= 0 keep the default.
//
// Parameters:
//   - s: the sensitivity
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithDragSensitivity(s float64) ControllerBuilderOption {
	return func(c *Controller) {
		if s > 0 {
			c.sensitivity = s
		}
	}
}

// WithResizers adds components resized together with the window.
//
// Parameters:
//   - rs: the components to resize
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithResizers(rs ...Resizer) ControllerBuilderOption {
	return func(c *Controller) {
		c.resizers = append(c.resizers, rs...)
	}
}

// NewController creates a Controller that yaws target and dollies cam's orbit controller.
//
// Parameters:
//   - target: the figure root
//   - cam: the main camera; its controller must be an OrbitController for wheel zoom to apply
//   - options: functional options
//
// Returns:
//   - *Controller: the controller
func NewController(target Yawable, cam camera.Camera, options ...ControllerBuilderOption) *Controller {
	c := &Controller{
		target:      target,
		cam:         cam,
		sensitivity: DefaultDragSensitivity,
	}
	if cam != nil {
		if o, ok := cam.Controller().(camera.OrbitController); ok {
			c.orbit = o
		}
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Bind registers the controller's handlers on w.
func (c *Controller) Bind(w window.Window) {
	w.SetPointerDownCallback(c.PointerDown)
	w.SetPointerUpCallback(c.PointerUp)
	w.SetPointerMoveCallback(c.PointerMove)
	w.SetScrollCallback(c.Wheel)
	w.SetResizeCallback(c.Resize)
}

// Dragging reports whether the primary button is held.
func (c *Controller) Dragging() bool {
	return c.dragging
}

// PointerDown starts a drag.
func (c *Controller) PointerDown(x, _ float64) {
	c.dragging = true
	if !c.havePoint {
		c.lastX, c.havePoint = x, true
	}
}

// PointerUp ends a drag.
func (c *Controller) PointerUp(_, _ float64) {
	c.dragging = false
}

// PointerMove yaws the figure by the horizontal distance since the previous move while a drag
// is active. Vertical motion is ignored.
func (c *Controller) PointerMove(x, _ float64) {
	if c.dragging && c.havePoint {
		c.target.SetRotationY(c.target.Rotation().Y() + (x-c.lastX)*c.sensitivity)
	}
	c.lastX, c.havePoint = x, true
}

// Wheel dollies the main camera by deltaY pixels, positive moving away from the figure.
// The orbit controller clamps the result to its radius bounds.
func (c *Controller) Wheel(deltaY float64) {
	if c.orbit != nil {
		c.orbit.Zoom(deltaY)
	}
}

// Resize updates the main camera's aspect and every registered Resizer.
// Zero sizes from a minimized window are ignored.
func (c *Controller) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = width, height
	if c.cam != nil {
		c.cam.SetAspect(float64(width) / float64(height))
	}
	for _, r := range c.resizers {
		r.Resize(width, height)
	}
}

// Size returns the last size passed to Resize.
func (c *Controller) Size() (int, int) {
	return c.width, c.height
}
