package camera

import "github.com/go-gl/mathgl/mgl64"

// OrbitControllerOption is a functional option for configuring an OrbitController.
type OrbitControllerOption func(*orbitControllerImpl)

// WithRadius sets the initial orbit radius (distance from target).
// The value is clamped to the radius bounds after all options are applied.
//
// Parameters:
//   - radius: distance from the orbit target
//
// Returns:
//   - OrbitControllerOption: functional option to set the radius
func WithRadius(radius float64) OrbitControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.radius = radius
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - minRadius: closest allowed distance
//   - maxRadius: farthest allowed distance
//
// Returns:
//   - OrbitControllerOption: functional option to set the radius bounds
func WithRadiusBounds(minRadius, maxRadius float64) OrbitControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.minRadius = minRadius
		cc.maxRadius = maxRadius
	}
}

// WithAzimuth sets the initial horizontal angle around the Y axis.
//
// Parameters:
//   - azimuth: horizontal angle in radians (0 = +Z axis)
//
// Returns:
//   - OrbitControllerOption: functional option to set the azimuth
func WithAzimuth(azimuth float64) OrbitControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.azimuth = azimuth
	}
}

// WithElevation sets the initial vertical angle from the horizontal plane.
//
// Parameters:
//   - elevation: vertical angle in radians (0 = horizontal)
//
// Returns:
//   - OrbitControllerOption: functional option to set the elevation
func WithElevation(elevation float64) OrbitControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.elevation = elevation
	}
}

// WithTarget sets the look-at/pivot point.
//
// Parameters:
//   - x: X coordinate of the target
//   - y: Y coordinate of the target
//   - z: Z coordinate of the target
//
// Returns:
//   - OrbitControllerOption: functional option to set the target position
func WithTarget(x, y, z float64) OrbitControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.target = mgl64.Vec3{x, y, z}
	}
}

// WithZoomSpeed sets the distance moved per unit of wheel delta.
//
// Parameters:
//   - speed: zoom multiplier
//
// Returns:
//   - OrbitControllerOption: functional option to set the zoom speed
func WithZoomSpeed(speed float64) OrbitControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.zoomSpeed = speed
	}
}

// MountedControllerOption is a functional option for configuring a MountedController.
type MountedControllerOption func(*mountedControllerImpl)

// WithOffset sets the camera position in the mount's local frame.
//
// Parameters:
//   - x, y, z: local offset
//
// Returns:
//   - MountedControllerOption: functional option to set the offset
func WithOffset(x, y, z float64) MountedControllerOption {
	return func(mc *mountedControllerImpl) {
		mc.offset = mgl64.Vec3{x, y, z}
	}
}

// WithForward sets the look direction in the mount's local frame.
//
// Parameters:
//   - x, y, z: local look direction
//
// Returns:
//   - MountedControllerOption: functional option to set the forward direction
func WithForward(x, y, z float64) MountedControllerOption {
	return func(mc *mountedControllerImpl) {
		mc.forward = mgl64.Vec3{x, y, z}
	}
}

// WithLocalUp sets the up direction in the mount's local frame.
//
// Parameters:
//   - x, y, z: local up direction
//
// Returns:
//   - MountedControllerOption: functional option to set the up direction
func WithLocalUp(x, y, z float64) MountedControllerOption {
	return func(mc *mountedControllerImpl) {
		mc.up = mgl64.Vec3{x, y, z}
	}
}
