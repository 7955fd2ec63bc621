package common

import (
	"github.com/go-gl/mathgl/mgl64"
)

// BuildModelMatrix constructs a 4x4 model matrix from position, Euler rotation, and scale.
// The rotation order is X * Y * Z (intrinsic XYZ), so the product is T * Rx * Ry * Rz * S.
//
// Parameters:
//   - pos: translation relative to the parent frame
//   - rot: rotation angles in radians around each axis
//   - scale: scale factors along each axis
//
// Returns:
//   - mgl64.Mat4: the composed local matrix
func BuildModelMatrix(pos, rot, scale mgl64.Vec3) mgl64.Mat4 {
	m := mgl64.Translate3D(pos.X(), pos.Y(), pos.Z())
	m = m.Mul4(mgl64.HomogRotate3DX(rot.X()))
	m = m.Mul4(mgl64.HomogRotate3DY(rot.Y()))
	m = m.Mul4(mgl64.HomogRotate3DZ(rot.Z()))
	return m.Mul4(mgl64.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

// TransformPoint applies m to a point (w = 1) and drops the homogeneous coordinate.
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// TransformDirection applies the rotational part of m to a direction (w = 0).
func TransformDirection(m mgl64.Mat4, d mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(d.Vec4(0)).Vec3()
}

// ProjectToNDC multiplies a world-space point by a view-projection matrix and performs the
// perspective divide.
//
// Parameters:
//   - viewProj: combined projection * view matrix
//   - world: world-space point
//
// Returns:
//   - mgl64.Vec3: normalized device coordinates (x, y in [-1, 1] when on screen; z > 1 beyond far/behind)
//   - float64: the clip-space w before division
func ProjectToNDC(viewProj mgl64.Mat4, world mgl64.Vec3) (mgl64.Vec3, float64) {
	clip := viewProj.Mul4x1(world.Vec4(1))
	w := clip.W()
	if w == 0 {
		return mgl64.Vec3{clip.X(), clip.Y(), clip.Z()}, w
	}
	return mgl64.Vec3{clip.X() / w, clip.Y() / w, clip.Z() / w}, w
}

// NDCToPixel maps NDC x/y into pixel coordinates of a viewport with a top-left origin.
// Screen y grows downward while NDC y grows upward, so y is flipped.
func NDCToPixel(ndc mgl64.Vec3, width, height float64) (x, y float64) {
	x = (ndc.X()*0.5 + 0.5) * width
	y = (ndc.Y()*-0.5 + 0.5) * height
	return x, y
}
