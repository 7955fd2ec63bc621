// Package animation computes the robot's per-frame joint transforms from elapsed time and the
// pose state.
package animation

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-sentinel/robot/figure"
	"github.com/Carmen-Shannon/oxy-sentinel/robot/pose"
)

// DanceSpeed multiplies t to form the shared dance phase.
const DanceSpeed = 5.0

// Targets is the full set of transform values written onto the rig for one frame.
// Every mode fills every field, so nothing from a previous mode survives a switch.
type Targets struct {
	TorsoY    float64
	TorsoYaw  float64
	HeadY     float64
	HeadYaw   float64
	HeadPitch float64

	LeftArmZ  float64
	LeftArmX  float64
	RightArmZ float64
	RightArmX float64

	LeftLegX  float64
	RightLegX float64
}

// Animation computes the upper-body targets of one mode. Legs are not part of a mode.
type Animation interface {
	// Mode returns the pose mode this animation implements.
	Mode() pose.Mode

	// Compute fills the torso, head and arm fields of the targets at time t.
	//
	// Parameters:
	//   - t: elapsed animation time in radians of the base phase
	//   - state: the current pose state
	//
	// Returns:
	//   - Targets: targets with the upper-body fields set
	Compute(t float64, state *pose.State) Targets
}

// For returns the animation implementing m.
//
// Parameters:
//   - m: the pose mode
//
// Returns:
//   - Animation: the animation for m
//   - error: error if m is not a known mode
func For(m pose.Mode) (Animation, error) {
	switch m {
	case pose.ModeIdle:
		return Idle{}, nil
	case pose.ModeWave:
		return Wave{}, nil
	case pose.ModeDance:
		return Dance{}, nil
	case pose.ModeManual:
		return Manual{}, nil
	}
	return nil, fmt.Errorf("animation: no animation for %s", m)
}

// Idle is a slow breathing sway around the rest pose with the torso facing forward.
type Idle struct{}

func (Idle) Mode() pose.Mode { return pose.ModeIdle }

func (Idle) Compute(t float64, _ *pose.State) Targets {
	bob := math.Sin(t) * 0.02
	sway := math.Sin(t) * 0.05
	return Targets{
		TorsoY:    figure.TorsoRestY + bob,
		TorsoYaw:  0,
		HeadY:     figure.HeadRestY + bob,
		HeadYaw:   math.Sin(t*0.5) * 0.1,
		HeadPitch: 0,
		LeftArmZ:  figure.LeftArmRestZ,
		LeftArmX:  sway,
		RightArmZ: figure.RightArmRestZ,
		RightArmX: -sway,
	}
}

// Wave raises the right arm with a fast wobble while the head and torso turn toward it.
type Wave struct{}

func (Wave) Mode() pose.Mode { return pose.ModeWave }

func (Wave) Compute(t float64, _ *pose.State) Targets {
	return Targets{
		TorsoY:    figure.TorsoRestY,
		TorsoYaw:  -0.2,
		HeadY:     figure.HeadRestY,
		HeadYaw:   -0.5,
		HeadPitch: -0.2,
		LeftArmZ:  figure.LeftArmRestZ,
		LeftArmX:  math.Sin(t) * 0.05,
		RightArmZ: -2.5,
		RightArmX: math.Sin(t*10) * 0.5,
	}
}

// Dance bobs and twists every major segment on a shared phase of DanceSpeed * t.
type Dance struct{}

func (Dance) Mode() pose.Mode { return pose.ModeDance }

func (Dance) Compute(t float64, _ *pose.State) Targets {
	phase := t * DanceSpeed
	s := math.Sin(phase)
	bounce := math.Abs(s) * 0.1
	return Targets{
		TorsoY:    figure.TorsoRestY + bounce,
		TorsoYaw:  math.Sin(phase*0.5) * 0.3,
		HeadY:     figure.HeadRestY + bounce,
		HeadYaw:   math.Sin(phase*0.5) * -0.2,
		HeadPitch: 0,
		LeftArmZ:  0.5 + s*0.5,
		LeftArmX:  0,
		RightArmZ: -0.5 - s*0.5,
		RightArmX: 0,
	}
}

// Manual copies the pose state's joint targets with no time dependence.
type Manual struct{}

func (Manual) Mode() pose.Mode { return pose.ModeManual }

func (Manual) Compute(_ float64, state *pose.State) Targets {
	return Targets{
		TorsoY:    figure.TorsoRestY,
		TorsoYaw:  state.TorsoYaw(),
		HeadY:     figure.HeadRestY,
		HeadYaw:   state.HeadYaw(),
		HeadPitch: state.HeadPitch(),
		LeftArmZ:  state.LeftArm(),
		LeftArmX:  0,
		RightArmZ: state.RightArm(),
		RightArmX: 0,
	}
}

// LegSwing returns the balance micro-motion of the legs at time t. It applies in every mode.
func LegSwing(t float64) (left, right float64) {
	s := math.Sin(t*0.5) * 0.02
	return s, -s
}

// Evaluate computes the complete targets for state at time t.
//
// Parameters:
//   - t: elapsed animation time
//   - state: the current pose state
//
// Returns:
//   - Targets: upper-body targets of the active mode plus leg swing
//   - error: error if the mode is unknown or a target is not finite
func Evaluate(t float64, state *pose.State) (Targets, error) {
	anim, err := For(state.Mode())
	if err != nil {
		return Targets{}, err
	}
	tg := anim.Compute(t, state)
	tg.LeftLegX, tg.RightLegX = LegSwing(t)
	if err := tg.validate(); err != nil {
		return Targets{}, fmt.Errorf("animation: %s at t=%g: %w", state.Mode(), t, err)
	}
	return tg, nil
}

func (tg Targets) validate() error {
	for name, v := range map[string]float64{
		"torso_y": tg.TorsoY, "torso_yaw": tg.TorsoYaw,
		"head_y": tg.HeadY, "head_yaw": tg.HeadYaw, "head_pitch": tg.HeadPitch,
		"left_arm_z": tg.LeftArmZ, "left_arm_x": tg.LeftArmX,
		"right_arm_z": tg.RightArmZ, "right_arm_x": tg.RightArmX,
		"left_leg_x": tg.LeftLegX, "right_leg_x": tg.RightLegX,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s is not finite", name)
		}
	}
	return nil
}
