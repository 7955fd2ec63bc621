package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-sentinel/common"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

type fixedMount struct {
	world mgl64.Mat4
}

func (f *fixedMount) WorldMatrix() mgl64.Mat4 {
	return f.world
}

func TestOrbitDefaults(t *testing.T) {
	oc := NewOrbitController()
	assert.InDelta(t, 3.5, oc.Radius(), 1e-12)
	p := oc.Position()
	assert.InDelta(t, 0.0, p.X(), 1e-12)
	assert.InDelta(t, 1.2, p.Y(), 1e-12)
	assert.InDelta(t, 3.5, p.Z(), 1e-12)
}

func TestZoomClampsToMaximum(t *testing.T) {
	oc := NewOrbitController()
	// Cumulative deltaY of 2000 at 0.005 would reach 13.5 unclamped.
	for range 20 {
		oc.Zoom(100)
	}
	assert.InDelta(t, 8.0, oc.Radius(), 1e-12)
	assert.InDelta(t, 8.0, oc.Position().Z(), 1e-12)
}

func TestZoomSingleLargeDeltaClamps(t *testing.T) {
	oc := NewOrbitController()
	oc.Zoom(2000)
	assert.InDelta(t, 8.0, oc.Radius(), 1e-12)
	oc.Zoom(-5000)
	assert.InDelta(t, 2.0, oc.Radius(), 1e-12)
}

func TestZoomWithinBounds(t *testing.T) {
	oc := NewOrbitController()
	oc.Zoom(100)
	assert.InDelta(t, 4.0, oc.Radius(), 1e-12)
	oc.Zoom(-200)
	assert.InDelta(t, 3.0, oc.Radius(), 1e-12)
}

func TestTargetProjectsToScreenCenter(t *testing.T) {
	cam := NewCamera(WithFovDegrees(75), WithAspect(16.0/9.0), WithNear(0.1), WithFar(1000), WithController(NewOrbitController()))
	ndc, w := common.ProjectToNDC(cam.ViewProjectionMatrix(), mgl64.Vec3{0, 1.2, 0})
	assert.Greater(t, w, 0.0)
	assert.InDelta(t, 0.0, ndc.X(), 1e-9)
	assert.InDelta(t, 0.0, ndc.Y(), 1e-9)
	assert.Less(t, ndc.Z(), 1.0)
}

func TestPointBehindCameraHasDepthBeyondOne(t *testing.T) {
	cam := NewCamera(WithFovDegrees(75), WithNear(0.1), WithFar(1000), WithController(NewOrbitController()))
	ndc, _ := common.ProjectToNDC(cam.ViewProjectionMatrix(), mgl64.Vec3{0, 1.2, 10})
	assert.Greater(t, ndc.Z(), 1.0)
}

func TestSetAspectChangesProjection(t *testing.T) {
	cam := NewCamera(WithController(NewOrbitController()))
	before := cam.ProjectionMatrix()
	cam.SetAspect(2)
	assert.InDelta(t, 2.0, cam.Aspect(), 1e-12)
	assert.NotEqual(t, before, cam.ProjectionMatrix())
}

func assertVecNear(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], 1e-9, "component %d of %v", i, got)
	}
}

func TestMountedControllerFollowsMount(t *testing.T) {
	mount := &fixedMount{world: mgl64.Translate3D(0, 2, 0)}
	mc := NewMountedController(mount)

	assertVecNear(t, mgl64.Vec3{0, 2, 0.3}, mc.Position())
	assertVecNear(t, mgl64.Vec3{0, 2, 1.3}, mc.Target())
	assertVecNear(t, mgl64.Vec3{0, 1, 0}, mc.Up())

	// Turning the mount a quarter turn about +y swings the eye and gaze onto +x.
	// Rotation leaves ~1e-17 residue in z, so compare component-wise.
	mount.world = mgl64.Translate3D(0, 2, 0).Mul4(mgl64.HomogRotate3DY(math.Pi / 2))
	assertVecNear(t, mgl64.Vec3{0.3, 2, 0}, mc.Position())
	assertVecNear(t, mgl64.Vec3{1.3, 2, 0}, mc.Target())
	assertVecNear(t, mgl64.Vec3{0, 1, 0}, mc.Up())
}

func TestMountedCameraUpdateTracksMount(t *testing.T) {
	mount := &fixedMount{world: mgl64.Ident4()}
	cam := NewCamera(WithFovDegrees(90), WithAspect(1.5), WithController(NewMountedController(mount)))
	before := cam.ViewMatrix()

	mount.world = mgl64.HomogRotate3DY(0.5)
	assert.Equal(t, before, cam.ViewMatrix(), "matrices only change on Update")
	cam.Update()
	assert.NotEqual(t, before, cam.ViewMatrix())
}
