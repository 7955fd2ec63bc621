package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-sentinel/common"
	"github.com/go-gl/mathgl/mgl64"
)

// orbitControllerImpl is the implementation of OrbitController.
type orbitControllerImpl struct {
	mu *sync.Mutex

	// Camera position (computed from target + spherical coords)
	position mgl64.Vec3
	target   mgl64.Vec3

	// Spherical coordinates (offset from target)
	radius    float64
	azimuth   float64 // Horizontal angle around Y axis, 0 = +Z
	elevation float64 // Vertical angle from horizontal plane

	minRadius float64
	maxRadius float64
	zoomSpeed float64
}

// Compile-time interface compliance check
var _ OrbitController = &orbitControllerImpl{}

// NewOrbitController creates a new orbit controller.
// Defaults place the camera 3.5 units in front of (0, 1.2, 0) on the +Z axis, with a
// radius range of [2, 8] and a zoom speed of 0.005 units per wheel delta.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(options ...OrbitControllerOption) OrbitController {
	cc := &orbitControllerImpl{
		mu:        &sync.Mutex{},
		target:    mgl64.Vec3{0, 1.2, 0},
		radius:    3.5,
		minRadius: 2,
		maxRadius: 8,
		zoomSpeed: 0.005,
	}

	for _, option := range options {
		option(cc)
	}

	cc.radius = common.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
	return cc
}

// updatePosition recomputes the camera position from spherical coordinates.
// Must be called whenever radius, azimuth, elevation, or target changes.
// Caller must hold the mutex.
func (cc *orbitControllerImpl) updatePosition() {
	cosElev := math.Cos(cc.elevation)
	sinElev := math.Sin(cc.elevation)
	cosAzim := math.Cos(cc.azimuth)
	sinAzim := math.Sin(cc.azimuth)

	cc.position = cc.target.Add(mgl64.Vec3{
		cc.radius * cosElev * sinAzim,
		cc.radius * sinElev,
		cc.radius * cosElev * cosAzim,
	})
}

func (cc *orbitControllerImpl) Position() mgl64.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *orbitControllerImpl) Target() mgl64.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *orbitControllerImpl) Up() mgl64.Vec3 {
	return mgl64.Vec3{0, 1, 0}
}

func (cc *orbitControllerImpl) Radius() float64 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *orbitControllerImpl) SetRadius(radius float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = common.Clamp(radius, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

func (cc *orbitControllerImpl) MinRadius() float64 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minRadius
}

func (cc *orbitControllerImpl) MaxRadius() float64 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxRadius
}

func (cc *orbitControllerImpl) ZoomSpeed() float64 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}

func (cc *orbitControllerImpl) Zoom(delta float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = common.Clamp(cc.radius+delta*cc.zoomSpeed, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

// mountedControllerImpl is the implementation of MountedController.
type mountedControllerImpl struct {
	mount   Mount
	offset  mgl64.Vec3
	forward mgl64.Vec3
	up      mgl64.Vec3
}

var _ MountedController = &mountedControllerImpl{}

// NewMountedController creates a controller that rides on mount.
// Defaults: offset (0, 0, 0.3), looking along the mount's local +Z with local +Y up.
//
// Parameters:
//   - mount: the transform to attach to
//   - options: functional options to configure the controller
//
// Returns:
//   - MountedController: the newly created controller
func NewMountedController(mount Mount, options ...MountedControllerOption) MountedController {
	mc := &mountedControllerImpl{
		mount:   mount,
		offset:  mgl64.Vec3{0, 0, 0.3},
		forward: mgl64.Vec3{0, 0, 1},
		up:      mgl64.Vec3{0, 1, 0},
	}
	for _, option := range options {
		option(mc)
	}
	return mc
}

func (mc *mountedControllerImpl) Mount() Mount {
	return mc.mount
}

func (mc *mountedControllerImpl) Offset() mgl64.Vec3 {
	return mc.offset
}

func (mc *mountedControllerImpl) Forward() mgl64.Vec3 {
	return mc.forward
}

func (mc *mountedControllerImpl) Position() mgl64.Vec3 {
	return common.TransformPoint(mc.mount.WorldMatrix(), mc.offset)
}

func (mc *mountedControllerImpl) Target() mgl64.Vec3 {
	world := mc.mount.WorldMatrix()
	eye := common.TransformPoint(world, mc.offset)
	dir := common.TransformDirection(world, mc.forward)
	if dir.Len() < 1e-12 {
		dir = mc.forward
	}
	return eye.Add(dir.Normalize())
}

func (mc *mountedControllerImpl) Up() mgl64.Vec3 {
	up := common.TransformDirection(mc.mount.WorldMatrix(), mc.up)
	if up.Len() < 1e-12 {
		return mgl64.Vec3{0, 1, 0}
	}
	return up.Normalize()
}
