// Package panel is the keyboard-driven property panel bound two-way to a pose.State.
package panel

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-sentinel/common"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/overlay"
	"github.com/Carmen-Shannon/oxy-sentinel/robot/pose"
)

// Title is the heading drawn above the controls.
const Title = "Robot Control Panel"

// Preset is a one-shot panel action.
type Preset int

const (
	PresetIdle Preset = iota
	PresetWave
	PresetDance
	PresetReset
)

// String returns the button caption of p.
func (p Preset) String() string {
	switch p {
	case PresetIdle:
		return "Idle Mode"
	case PresetWave:
		return "Wave Hand"
	case PresetDance:
		return "Robot Dance"
	case PresetReset:
		return "Reset Pose"
	}
	return fmt.Sprintf("preset(%d)", int(p))
}

// Control is one row of the panel: either a numeric slider bound to a pose field or a button.
type Control struct {
	Label  string
	Button bool
	Field  pose.Field
	Preset Preset
	Step   float64
}

// Panel binds controls to a pose.State. Slider edits go through pose.State.Set, so any edit
// switches the figure to manual mode; the rows are rebuilt from the state on every read, so
// programmatic changes such as Reset show up immediately.
type Panel struct {
	state    *pose.State
	controls []Control
	selected int
	onReset  func() error
}

// PanelBuilderOption is a functional option for configuring a Panel.
type PanelBuilderOption func(*Panel)

// WithResetHook sets a function run after Reset Pose has restored the state, used to write
// the default transforms onto the figure without waiting for the next frame.
//
// Parameters:
//   - hook: the function to run
//
// Returns:
//   - PanelBuilderOption: option function to apply
func WithResetHook(hook func() error) PanelBuilderOption {
	return func(p *Panel) {
		p.onReset = hook
	}
}

// New creates a Panel over state with the preset buttons first, then one slider per pose field.
//
// Parameters:
//   - state: the bound pose state
//   - options: functional options
//
// Returns:
//   - *Panel: the panel
func New(state *pose.State, options ...PanelBuilderOption) *Panel {
	p := &Panel{state: state}
	for _, pr := range []Preset{PresetIdle, PresetWave, PresetDance} {
		p.controls = append(p.controls, Control{Label: pr.String(), Button: true, Preset: pr})
	}
	for _, f := range pose.Fields {
		r := f.Range()
		p.controls = append(p.controls, Control{Label: f.String(), Field: f, Step: (r.Max - r.Min) / 20})
	}
	p.controls = append(p.controls, Control{Label: PresetReset.String(), Button: true, Preset: PresetReset})
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Controls returns the panel rows in display order.
func (p *Panel) Controls() []Control {
	return p.controls
}

// Selected returns the index of the focused control.
func (p *Panel) Selected() int {
	return p.selected
}

// Select focuses control i, wrapping around at both ends.
func (p *Panel) Select(i int) {
	n := len(p.controls)
	p.selected = ((i % n) + n) % n
}

// SetField handles a "set field" event.
//
// Parameters:
//   - f: the field to edit
//   - v: the requested value
//
// Returns:
//   - float64: the stored value after clamping
//   - error: error if the field is unknown or the value is NaN
func (p *Panel) SetField(f pose.Field, v float64) (float64, error) {
	return p.state.Set(f, v)
}

// Invoke handles an "invoke preset" event.
//
// Parameters:
//   - pr: the preset to run
//
// Returns:
//   - error: error if pr is unknown or the reset hook fails
func (p *Panel) Invoke(pr Preset) error {
	switch pr {
	case PresetIdle:
		p.state.SetMode(pose.ModeIdle)
	case PresetWave:
		p.state.SetMode(pose.ModeWave)
	case PresetDance:
		p.state.SetMode(pose.ModeDance)
	case PresetReset:
		p.state.Reset()
		if p.onReset != nil {
			if err := p.onReset(); err != nil {
				return fmt.Errorf("panel: reset: %w", err)
			}
		}
	default:
		return fmt.Errorf("panel: unknown %s", pr)
	}
	return nil
}

// Nudge moves the focused slider by dir steps, or activates the focused button when dir != 0.
//
// Parameters:
//   - dir: number of steps, negative to decrease
//
// Returns:
//   - error: error from SetField or Invoke
func (p *Panel) Nudge(dir int) error {
	if dir == 0 {
		return nil
	}
	c := p.controls[p.selected]
	if c.Button {
		return p.Invoke(c.Preset)
	}
	_, err := p.SetField(c.Field, p.state.Get(c.Field)+float64(dir)*c.Step)
	return err
}

// HandleKey applies a key press: 1/2/3 pick a preset, R resets, Tab and Shift+Tab move the
// focus, Left/Right or A/D nudge the focused slider, Enter or Space press the focused button.
//
// Parameters:
//   - key: the virtual key code
//   - mods: the modifier bits
//
// Returns:
//   - bool: true if the key was consumed
//   - error: error from the triggered action
func (p *Panel) HandleKey(key uint32, mods uint32) (bool, error) {
	switch key {
	case common.Key1:
		return true, p.Invoke(PresetIdle)
	case common.Key2:
		return true, p.Invoke(PresetWave)
	case common.Key3:
		return true, p.Invoke(PresetDance)
	case common.KeyR:
		return true, p.Invoke(PresetReset)
	case common.KeyTab:
		if mods&common.ModShift != 0 {
			p.Select(p.selected - 1)
		} else {
			p.Select(p.selected + 1)
		}
		return true, nil
	case common.KeyUp:
		p.Select(p.selected - 1)
		return true, nil
	case common.KeyDown:
		p.Select(p.selected + 1)
		return true, nil
	case common.KeyLeft, common.KeyA:
		return true, p.Nudge(-1)
	case common.KeyRight, common.KeyD:
		return true, p.Nudge(1)
	case common.KeyEnter, common.KeySpace:
		if c := p.controls[p.selected]; c.Button {
			return true, p.Invoke(c.Preset)
		}
		return true, nil
	}
	return false, nil
}

// Lines renders the panel rows from the current state: the mode first, then every control
// with the focused one highlighted.
func (p *Panel) Lines() []overlay.PanelLine {
	lines := make([]overlay.PanelLine, 0, len(p.controls)+1)
	lines = append(lines, overlay.PanelLine{Text: "Mode: " + p.state.Mode().String()})
	for i, c := range p.controls {
		text := "[" + c.Label + "]"
		if !c.Button {
			text = fmt.Sprintf("%-16s %+.2f", c.Label, p.state.Get(c.Field))
		}
		lines = append(lines, overlay.PanelLine{Text: text, Highlight: i == p.selected})
	}
	return lines
}
