package figure

import (
	"github.com/Carmen-Shannon/oxy-sentinel/engine/overlay"
)

// Annotation texts.
const (
	LabelVisualCortex = "Visual Cortex (Lidar/Cameras)"
	LabelCPU          = "Main CPU Core (i7-630m)"
	LabelActuator     = "Upper Actuator Link (351mm)"
	LabelKnee         = "Hydraulic Knee System"
	LabelGyro         = "Stabilization Gyro"
)

// Labels returns the default annotation set anchored on the rig.
func (r *Rig) Labels() []*overlay.Label {
	return []*overlay.Label{
		overlay.NewLabel(LabelVisualCortex, r.Head, 0, 0.3, 0),
		overlay.NewLabel(LabelCPU, r.Torso, 0, 0.5, 0.35),
		overlay.NewLabel(LabelActuator, r.LeftArm, 0, -0.4, 0),
		overlay.NewLabel(LabelKnee, r.LeftLeg, 0, -1.0, 0),
		overlay.NewLabel(LabelGyro, r.Hips, 0, 0, 0.4),
	}
}
