package window

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// WheelPixelsPerNotch converts one wheel notch into a browser-style pixel delta.
const WheelPixelsPerNotch = 100.0

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
// Events are only delivered from PollEvents, on the thread that created the window.
type Window interface {
	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse wheel events.
	//
	// Parameters:
	//   - callback: function receiving a pixel delta; scrolling down (toward the user) is positive
	SetScrollCallback(callback func(deltaY float64))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code and the modifier bits
	SetKeyDownCallback(callback func(keyCode uint32, mods uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code and the modifier bits
	SetKeyUpCallback(callback func(keyCode uint32, mods uint32))

	// SetPointerDownCallback sets the callback for primary mouse button press.
	//
	// Parameters:
	//   - callback: function receiving the cursor x, y position
	SetPointerDownCallback(callback func(x, y float64))

	// SetPointerUpCallback sets the callback for primary mouse button release.
	//
	// Parameters:
	//   - callback: function receiving the cursor x, y position
	SetPointerUpCallback(callback func(x, y float64))

	// SetPointerMoveCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor x, y position
	SetPointerMoveCallback(callback func(x, y float64))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// PollEvents dispatches pending window events to the registered callbacks without blocking.
	//
	// Returns:
	//   - bool: false once the window has been closed
	PollEvents() bool

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// minWidth and minHeight bound interactive resizing from below.
	minWidth  int
	minHeight int

	// width and height are the current framebuffer size in pixels.
	width  int
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// pointerDown tracks whether the primary button is held.
	pointerDown bool

	onResize      func(width, height int)
	onScroll      func(deltaY float64)
	onKeyDown     func(keyCode uint32, mods uint32)
	onKeyUp       func(keyCode uint32, mods uint32)
	onPointerDown func(x, y float64)
	onPointerUp   func(x, y float64)
	onPointerMove func(x, y float64)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order. Must be called from the thread
// that will later call PollEvents.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
//   - error: error if the windowing system is unavailable or the window cannot be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	return w, nil
}

// newEngineWindow applies defaults and options without touching the platform layer.
func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:     "oxy-sentinel",
		minWidth:  400,
		minHeight: 300,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(deltaY float64)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32, mods uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32, mods uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetPointerDownCallback(callback func(x, y float64)) {
	w.onPointerDown = callback
}

func (w *engineWindow) SetPointerUpCallback(callback func(x, y float64)) {
	w.onPointerUp = callback
}

func (w *engineWindow) SetPointerMoveCallback(callback func(x, y float64)) {
	w.onPointerMove = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) PollEvents() bool {
	return platformProcessMessages(w)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// dispatchResize records the new framebuffer size and forwards it. Minimized windows report
// a zero size, which is dropped.
func (w *engineWindow) dispatchResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	w.width, w.height = width, height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

// dispatchScroll converts a wheel offset in notches (positive = away from the user) into a
// pixel delta where scrolling toward the user is positive.
func (w *engineWindow) dispatchScroll(yoff float64) {
	if w.onScroll != nil && yoff != 0 {
		w.onScroll(-yoff * WheelPixelsPerNotch)
	}
}

func (w *engineWindow) dispatchKey(key uint32, mods uint32, pressed bool) {
	if pressed {
		if w.onKeyDown != nil {
			w.onKeyDown(key, mods)
		}
		return
	}
	if w.onKeyUp != nil {
		w.onKeyUp(key, mods)
	}
}

func (w *engineWindow) dispatchButton(pressed bool, x, y float64) {
	if pressed == w.pointerDown {
		return
	}
	w.pointerDown = pressed
	if pressed {
		if w.onPointerDown != nil {
			w.onPointerDown(x, y)
		}
		return
	}
	if w.onPointerUp != nil {
		w.onPointerUp(x, y)
	}
}

func (w *engineWindow) dispatchMove(x, y float64) {
	if w.onPointerMove != nil {
		w.onPointerMove(x, y)
	}
}
