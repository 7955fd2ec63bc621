package camera

import "github.com/go-gl/mathgl/mgl64"

// CameraController defines the minimal interface a Camera reads each Update.
// Controllers own positional state. Camera reads from controller and computes
// view/projection matrices.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl64.Vec3: world-space camera position
	Position() mgl64.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl64.Vec3: world-space target position
	Target() mgl64.Vec3

	// Up returns the world-space up direction used to build the view matrix.
	//
	// Returns:
	//   - mgl64.Vec3: the up vector
	Up() mgl64.Vec3
}

// OrbitController places the camera on a sphere around a target point using spherical
// coordinates (radius, azimuth, elevation). Wheel input dollies the radius within bounds.
type OrbitController interface {
	CameraController

	// Radius returns the current orbit radius (distance from target).
	//
	// Returns:
	//   - float64: current distance from target
	Radius() float64

	// SetRadius sets the orbit radius directly, clamped to min/max bounds.
	//
	// Parameters:
	//   - radius: new distance from target
	SetRadius(radius float64)

	// MinRadius returns the minimum allowed orbit radius.
	//
	// Returns:
	//   - float64: minimum zoom distance
	MinRadius() float64

	// MaxRadius returns the maximum allowed orbit radius.
	//
	// Returns:
	//   - float64: maximum zoom distance
	MaxRadius() float64

	// Zoom moves the camera along its viewing axis by delta * ZoomSpeed, clamped to
	// [MinRadius, MaxRadius]. Positive delta moves away from the target, matching the
	// browser wheel convention where scrolling down reports a positive deltaY.
	//
	// Parameters:
	//   - delta: raw wheel delta
	Zoom(delta float64)

	// ZoomSpeed returns the multiplier applied to Zoom deltas.
	//
	// Returns:
	//   - float64: distance units per delta unit
	ZoomSpeed() float64
}

// Mount is anything with a world transform that a camera can ride on, such as a segment.
type Mount interface {
	WorldMatrix() mgl64.Mat4
}

// MountedController rigidly attaches the camera to a Mount. Position, look direction
// and up vector are re-derived from the mount's world matrix on every read, so the
// camera moves and rotates with it.
type MountedController interface {
	CameraController

	// Mount returns the transform the camera is attached to.
	//
	// Returns:
	//   - Mount: the mount
	Mount() Mount

	// Offset returns the camera's position in the mount's local frame.
	//
	// Returns:
	//   - mgl64.Vec3: local offset
	Offset() mgl64.Vec3

	// Forward returns the look direction in the mount's local frame.
	//
	// Returns:
	//   - mgl64.Vec3: local look direction
	Forward() mgl64.Vec3
}
