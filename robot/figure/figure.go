// Package figure assembles the robot's segment hierarchy and attaches its body meshes.
package figure

import (
	"github.com/Carmen-Shannon/oxy-sentinel/engine/segment"
)

// Segment names used by the rig. Find(name) on the root resolves them.
const (
	NameRoot     = "figure"
	NameTorso    = "torso"
	NameHips     = "hips"
	NameHead     = "head"
	NameLeftArm  = "left_arm"
	NameRightArm = "right_arm"
	NameLeftLeg  = "left_leg"
	NameRightLeg = "right_leg"
)

// Rest transforms of the rig segments.
const (
	TorsoRestY = 1.1
	HeadRestY  = 2.0

	ShoulderX = 0.6
	ShoulderY = 1.7
	HipX      = 0.25
	HipY      = 0.5

	LeftArmRestZ  = 0.2
	RightArmRestZ = -0.2
)

// Rig is the robot's segment hierarchy. Root owns every other segment: torso, head, both
// arms and both legs are direct children of Root, and Hips hangs under Torso.
type Rig struct {
	Root     segment.Segment
	Torso    segment.Segment
	Hips     segment.Segment
	Head     segment.Segment
	LeftArm  segment.Segment
	RightArm segment.Segment
	LeftLeg  segment.Segment
	RightLeg segment.Segment
}

// NewRig creates the bare hierarchy in its rest pose with no meshes attached.
func NewRig() *Rig {
	r := &Rig{
		Root:     segment.NewSegment(NameRoot),
		Torso:    segment.NewSegment(NameTorso, segment.WithPosition(0, TorsoRestY, 0)),
		Hips:     segment.NewSegment(NameHips, segment.WithPosition(0, -0.6, 0), segment.WithScale(1, 1, 0.6)),
		Head:     segment.NewSegment(NameHead, segment.WithPosition(0, HeadRestY, 0)),
		LeftArm:  segment.NewSegment(NameLeftArm, segment.WithPosition(-ShoulderX, ShoulderY, 0), segment.WithRotation(0, 0, LeftArmRestZ)),
		RightArm: segment.NewSegment(NameRightArm, segment.WithPosition(ShoulderX, ShoulderY, 0), segment.WithRotation(0, 0, RightArmRestZ)),
		LeftLeg:  segment.NewSegment(NameLeftLeg, segment.WithPosition(-HipX, HipY, 0)),
		RightLeg: segment.NewSegment(NameRightLeg, segment.WithPosition(HipX, HipY, 0)),
	}

	// The hierarchy is fixed and acyclic, so attachment cannot fail.
	for _, child := range []segment.Segment{r.Torso, r.Head, r.LeftArm, r.RightArm, r.LeftLeg, r.RightLeg} {
		_ = r.Root.AddChild(child)
	}
	_ = r.Torso.AddChild(r.Hips)

	return r
}

// Build creates the rig and attaches the full robot body.
//
// Parameters:
//   - options: functional options controlling tessellation
//
// Returns:
//   - *Rig: the assembled rig
func Build(options ...FigureBuilderOption) *Rig {
	cfg := &builder{radialSegments: 20}
	for _, opt := range options {
		opt(cfg)
	}
	r := NewRig()
	cfg.attachTorso(r.Torso, r.Hips)
	cfg.attachHead(r.Head)
	cfg.attachArm(r.LeftArm, true)
	cfg.attachArm(r.RightArm, false)
	cfg.attachLeg(r.LeftLeg)
	cfg.attachLeg(r.RightLeg)
	return r
}

// Segments returns every rig segment, root first.
func (r *Rig) Segments() []segment.Segment {
	return []segment.Segment{r.Root, r.Torso, r.Hips, r.Head, r.LeftArm, r.RightArm, r.LeftLeg, r.RightLeg}
}

// FigureBuilderOption is a functional option for Build.
type FigureBuilderOption func(*builder)

// WithRadialSegments sets how finely round parts are tessellated.
//
// Parameters:
//   - n: radial subdivisions for cylinders, spheres and capsules
//
// Returns:
//   - FigureBuilderOption: option function to apply
func WithRadialSegments(n int) FigureBuilderOption {
	return func(b *builder) {
		if n >= 3 {
			b.radialSegments = n
		}
	}
}
