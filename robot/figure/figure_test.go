package figure

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRigHierarchy(t *testing.T) {
	r := NewRig()

	assert.Nil(t, r.Root.Parent())
	for _, s := range []string{NameTorso, NameHead, NameLeftArm, NameRightArm, NameLeftLeg, NameRightLeg} {
		found := r.Root.Find(s)
		require.NotNil(t, found, s)
		assert.Equal(t, NameRoot, found.Parent().Name(), s)
	}
	assert.Equal(t, NameTorso, r.Hips.Parent().Name())
}

func TestEverySegmentHasOneParentExceptRoot(t *testing.T) {
	r := NewRig()
	seen := map[uint64]int{}
	for _, s := range r.Segments() {
		for _, c := range s.Children() {
			seen[c.ID()]++
		}
	}
	for _, s := range r.Segments() {
		if s == r.Root {
			assert.Zero(t, seen[s.ID()])
			continue
		}
		assert.Equal(t, 1, seen[s.ID()], s.Name())
	}
}

func TestBuildAttachesBody(t *testing.T) {
	r := Build(WithRadialSegments(8))
	assert.Len(t, r.Torso.Models(), 2)
	assert.Len(t, r.Hips.Models(), 1)
	assert.Len(t, r.Head.Models(), 3)
	assert.Len(t, r.LeftArm.Models(), 6)
	assert.Len(t, r.RightLeg.Models(), 5)
	assert.Empty(t, r.Root.Models())
}

func TestGyroLabelSitsOnHipPlate(t *testing.T) {
	r := NewRig()
	var gyro mgl64.Vec3
	for _, l := range r.Labels() {
		if l.Text == LabelGyro {
			gyro = l.Anchor.World()
		}
	}
	// Torso at y 1.1, hips 0.6 below, offset z 0.4 squashed by 0.6.
	assert.InDelta(t, 0.0, gyro.X(), 1e-9)
	assert.InDelta(t, 0.5, gyro.Y(), 1e-9)
	assert.InDelta(t, 0.24, gyro.Z(), 1e-9)
}

func TestLabelsFollowFigureYaw(t *testing.T) {
	r := NewRig()
	labels := r.Labels()
	before := labels[1].Anchor.World()

	r.Root.SetRotationY(1.0)
	after := labels[1].Anchor.World()

	assert.InDelta(t, before.Y(), after.Y(), 1e-9)
	assert.False(t, before.ApproxEqual(after))
}
