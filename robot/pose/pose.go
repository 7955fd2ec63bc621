// Package pose holds the robot's current animation mode and the manual joint-angle targets
// that the property panel edits.
package pose

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-sentinel/common"
)

// Mode selects which animation formula drives the figure.
type Mode int

const (
	ModeIdle Mode = iota
	ModeWave
	ModeDance
	ModeManual
)

// String returns the lower-case mode name.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeWave:
		return "wave"
	case ModeDance:
		return "dance"
	case ModeManual:
		return "manual"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode converts a mode name into a Mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "idle":
		return ModeIdle, nil
	case "wave":
		return ModeWave, nil
	case "dance":
		return ModeDance, nil
	case "manual":
		return ModeManual, nil
	}
	return ModeIdle, fmt.Errorf("pose: unknown mode %q", name)
}

// Field names one of the manual joint-angle targets.
type Field int

const (
	FieldHeadYaw Field = iota
	FieldHeadPitch
	FieldLeftArm
	FieldRightArm
	FieldTorsoYaw
)

// Fields lists every manual field in panel order.
var Fields = []Field{FieldHeadYaw, FieldHeadPitch, FieldLeftArm, FieldRightArm, FieldTorsoYaw}

// Range is the closed interval a field value is clamped to.
type Range struct {
	Min, Max float64
}

var fieldRanges = map[Field]Range{
	FieldHeadYaw:   {-1, 1},
	FieldHeadPitch: {-0.5, 0.5},
	FieldLeftArm:   {0, 2.5},
	FieldRightArm:  {-2.5, 0},
	FieldTorsoYaw:  {-1, 1},
}

var fieldNames = map[Field]string{
	FieldHeadYaw:   "Head Rotate Y",
	FieldHeadPitch: "Head Rotate X",
	FieldLeftArm:   "Left Arm Raise",
	FieldRightArm:  "Right Arm Raise",
	FieldTorsoYaw:  "Torso Twist",
}

// Range returns the allowed interval of f.
func (f Field) Range() Range {
	return fieldRanges[f]
}

// String returns the display name of f.
func (f Field) String() string {
	if n, ok := fieldNames[f]; ok {
		return n
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Rest pose values restored by Reset.
const (
	DefaultHeadYaw   = 0.0
	DefaultHeadPitch = 0.0
	DefaultLeftArm   = 0.2
	DefaultRightArm  = -0.2
	DefaultTorsoYaw  = 0.0
)

// State is the mutable pose record shared by the animation driver, the property panel and
// input handlers. It is owned by the scheduler thread and is not safe for concurrent use.
//
// Any edit to a manual field through Set forces the mode to ModeManual before the value is
// stored, so the next frame never renders with a stale preset.
type State struct {
	mode Mode

	headYaw   float64
	headPitch float64
	leftArm   float64
	rightArm  float64
	torsoYaw  float64
}

// NewState returns a State in idle mode with the rest pose targets.
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Mode returns the current animation mode.
func (s *State) Mode() Mode {
	return s.mode
}

// SetMode selects a preset or manual mode. Field values are left untouched.
func (s *State) SetMode(m Mode) {
	s.mode = m
}

// Get returns the current value of a manual field.
func (s *State) Get(f Field) float64 {
	switch f {
	case FieldHeadYaw:
		return s.headYaw
	case FieldHeadPitch:
		return s.headPitch
	case FieldLeftArm:
		return s.leftArm
	case FieldRightArm:
		return s.rightArm
	case FieldTorsoYaw:
		return s.torsoYaw
	}
	return 0
}

// Set switches to manual mode and stores v, clamped to the field's range.
//
// Parameters:
//   - f: the field to edit
//   - v: the requested value
//
// Returns:
//   - float64: the value actually stored
//   - error: error if f is not a known field or v is NaN; the state is left unchanged in that case
func (s *State) Set(f Field, v float64) (float64, error) {
	r, ok := fieldRanges[f]
	if !ok {
		return 0, fmt.Errorf("pose: unknown field %d", int(f))
	}
	if math.IsNaN(v) {
		return s.Get(f), fmt.Errorf("pose: %s: value is NaN", f)
	}
	s.mode = ModeManual
	v = common.Clamp(v, r.Min, r.Max)
	switch f {
	case FieldHeadYaw:
		s.headYaw = v
	case FieldHeadPitch:
		s.headPitch = v
	case FieldLeftArm:
		s.leftArm = v
	case FieldRightArm:
		s.rightArm = v
	case FieldTorsoYaw:
		s.torsoYaw = v
	}
	return v, nil
}

// Reset returns to idle mode and restores the rest pose targets.
func (s *State) Reset() {
	s.mode = ModeIdle
	s.headYaw = DefaultHeadYaw
	s.headPitch = DefaultHeadPitch
	s.leftArm = DefaultLeftArm
	s.rightArm = DefaultRightArm
	s.torsoYaw = DefaultTorsoYaw
}

// HeadYaw returns the manual head yaw target.
func (s *State) HeadYaw() float64 { return s.headYaw }

// HeadPitch returns the manual head pitch target.
func (s *State) HeadPitch() float64 { return s.headPitch }

// LeftArm returns the manual left arm raise target.
func (s *State) LeftArm() float64 { return s.leftArm }

// RightArm returns the manual right arm raise target.
func (s *State) RightArm() float64 { return s.rightArm }

// TorsoYaw returns the manual torso twist target.
func (s *State) TorsoYaw() float64 { return s.torsoYaw }
