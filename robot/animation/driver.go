package animation

import (
	"github.com/Carmen-Shannon/oxy-sentinel/robot/figure"
	"github.com/Carmen-Shannon/oxy-sentinel/robot/pose"
)

// DefaultSpeed advances the animation clock by 1.2 per second, i.e. 0.02 per frame at 60 Hz.
const DefaultSpeed = 1.2

// Driver writes animation targets onto a rig and owns the animation clock.
// It runs on the scheduler thread only.
type Driver struct {
	rig   *figure.Rig
	speed float64
	t     float64
	last  Targets
}

// DriverBuilderOption is a functional option for configuring a Driver.
type DriverBuilderOption func(*Driver)

// WithSpeed sets how fast the animation clock runs relative to wall time.
// Values <= 0 are treated as DefaultSpeed.
//
// Parameters:
//   - speed: clock units per second
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithSpeed(speed float64) DriverBuilderOption {
	return func(d *Driver) {
		if speed <= 0 {
			speed = DefaultSpeed
		}
		d.speed = speed
	}
}

// WithStartTime sets the initial clock value.
//
// Parameters:
//   - t: starting animation time
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithStartTime(t float64) DriverBuilderOption {
	return func(d *Driver) {
		d.t = t
	}
}

// NewDriver creates a Driver for rig.
//
// Parameters:
//   - rig: the hierarchy to animate
//   - options: functional options for the clock
//
// Returns:
//   - *Driver: the driver
func NewDriver(rig *figure.Rig, options ...DriverBuilderOption) *Driver {
	d := &Driver{rig: rig, speed: DefaultSpeed}
	for _, opt := range options {
		opt(d)
	}
	return d
}

// Time returns the current animation clock.
func (d *Driver) Time() float64 {
	return d.t
}

// Speed returns the clock rate.
func (d *Driver) Speed() float64 {
	return d.speed
}

// Last returns the targets most recently written to the rig.
func (d *Driver) Last() Targets {
	return d.last
}

// Step advances the clock by dt seconds and applies the pose at the new time.
//
// Parameters:
//   - dt: wall time since the previous frame in seconds
//   - state: the current pose state
//
// Returns:
//   - error: error from Apply; the clock still advances so the next frame moves on
func (d *Driver) Step(dt float64, state *pose.State) error {
	if dt > 0 {
		d.t += dt * d.speed
	}
	return d.Apply(d.t, state)
}

// Apply computes the targets for state at time t and writes them onto the rig.
// Nothing is written when evaluation fails, leaving the previous frame's transforms intact.
//
// Parameters:
//   - t: animation time
//   - state: the current pose state
//
// Returns:
//   - error: error if the mode is unknown or a target is not finite
func (d *Driver) Apply(t float64, state *pose.State) error {
	tg, err := Evaluate(t, state)
	if err != nil {
		return err
	}

	r := d.rig
	r.Torso.SetPositionY(tg.TorsoY)
	r.Torso.SetRotationY(tg.TorsoYaw)

	r.Head.SetPositionY(tg.HeadY)
	r.Head.SetRotationY(tg.HeadYaw)
	r.Head.SetRotationX(tg.HeadPitch)

	r.LeftArm.SetRotationZ(tg.LeftArmZ)
	r.LeftArm.SetRotationX(tg.LeftArmX)
	r.RightArm.SetRotationZ(tg.RightArmZ)
	r.RightArm.SetRotationX(tg.RightArmX)

	r.LeftLeg.SetRotationX(tg.LeftLegX)
	r.RightLeg.SetRotationX(tg.RightLegX)

	d.last = tg
	return nil
}
