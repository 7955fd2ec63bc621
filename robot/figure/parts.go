package figure

import (
	"math"

	"github.com/Carmen-Shannon/oxy-sentinel/common"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/model"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/segment"
)

// Body materials.
var (
	Silver   = model.Material{Color: common.HexColor(0xffffff), Metalness: 0.8, Roughness: 0.2}
	Black    = model.Material{Color: common.HexColor(0x111111), Metalness: 0.5, Roughness: 0.4}
	CyanGlow = model.Material{Color: common.HexColor(0x00ffff), Unlit: true}
)

type builder struct {
	radialSegments int
}

func (b *builder) cylinder(rTop, rBottom, h float64) *model.Mesh {
	return model.NewCylinderMesh(rTop, rBottom, h, b.radialSegments, 0, 2*math.Pi)
}

func (b *builder) sphere(r float64) *model.Mesh {
	return model.NewSphereMesh(r, b.radialSegments, b.radialSegments/2+2)
}

func (b *builder) capsule(r, length float64) *model.Mesh {
	return model.NewCapsuleMesh(r, length, b.radialSegments)
}

func (b *builder) attachTorso(torso, hips segment.Segment) {
	torso.AddModel(model.NewModel(b.cylinder(0.5, 0.4, 0.7),
		model.WithName("chest"), model.WithMaterial(Silver),
		model.WithPosition(0, 0.35, 0), model.WithScale(1, 1, 0.6)))
	torso.AddModel(model.NewModel(b.cylinder(0.35, 0.35, 0.4),
		model.WithName("abs"), model.WithMaterial(Black),
		model.WithPosition(0, -0.2, 0), model.WithScale(1, 1, 0.6)))
	// Hips carries the z squash itself so anchors on it inherit the scale.
	hips.AddModel(model.NewModel(b.cylinder(0.4, 0.45, 0.4),
		model.WithName("hips"), model.WithMaterial(Silver)))
}

func (b *builder) attachHead(head segment.Segment) {
	head.AddModel(model.NewModel(b.cylinder(0.12, 0.15, 0.3),
		model.WithName("neck"), model.WithMaterial(Black),
		model.WithPosition(0, -0.15, 0)))
	head.AddModel(model.NewModel(b.sphere(0.25),
		model.WithName("skull"), model.WithMaterial(Black),
		model.WithScale(1, 1.25, 1.1)))
	head.AddModel(model.NewModel(model.NewBoxMesh(0.3, 0.05, 0.1),
		model.WithName("visor"), model.WithMaterial(CyanGlow),
		model.WithPosition(0, 0.05, 0.22)))
}

func (b *builder) attachArm(arm segment.Segment, left bool) {
	plateYaw := math.Pi / 2
	if left {
		plateYaw = -math.Pi / 2
	}

	arm.AddModel(model.NewModel(b.sphere(0.18),
		model.WithName("shoulder"), model.WithMaterial(Silver)))
	arm.AddModel(model.NewModel(b.capsule(0.12, 0.5),
		model.WithName("upper_arm"), model.WithMaterial(Black),
		model.WithPosition(0, -0.4, 0)))
	arm.AddModel(model.NewModel(model.NewCylinderMesh(0.1, 0.1, 0.3, b.radialSegments, 0, math.Pi),
		model.WithName("armor_plate"), model.WithMaterial(Silver),
		model.WithPosition(0, -0.4, 0), model.WithRotation(0, plateYaw, 0), model.WithScale(1.3, 1.8, 1.3)))
	arm.AddModel(model.NewModel(b.sphere(0.14),
		model.WithName("elbow"), model.WithMaterial(Black),
		model.WithPosition(0, -0.8, 0)))
	arm.AddModel(model.NewModel(b.capsule(0.1, 0.6),
		model.WithName("forearm"), model.WithMaterial(Silver),
		model.WithPosition(0, -1.25, 0)))
	arm.AddModel(model.NewModel(model.NewBoxMesh(0.1, 0.2, 0.15),
		model.WithName("hand"), model.WithMaterial(Black),
		model.WithPosition(0, -1.7, 0)))
}

func (b *builder) attachLeg(leg segment.Segment) {
	leg.AddModel(model.NewModel(b.sphere(0.15),
		model.WithName("hip_joint"), model.WithMaterial(Black)))
	leg.AddModel(model.NewModel(b.capsule(0.16, 0.8),
		model.WithName("thigh"), model.WithMaterial(Silver),
		model.WithPosition(0, -0.5, 0)))
	leg.AddModel(model.NewModel(b.sphere(0.15),
		model.WithName("knee"), model.WithMaterial(Black),
		model.WithPosition(0, -1.0, 0)))
	leg.AddModel(model.NewModel(b.capsule(0.14, 0.8),
		model.WithName("shin"), model.WithMaterial(Silver),
		model.WithPosition(0, -1.5, 0)))
	leg.AddModel(model.NewModel(model.NewBoxMesh(0.2, 0.1, 0.4),
		model.WithName("foot"), model.WithMaterial(Black),
		model.WithPosition(0, -2.0, 0.1)))
}
