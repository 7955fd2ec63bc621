package panel

import (
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-sentinel/common"
	"github.com/Carmen-Shannon/oxy-sentinel/robot/pose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexOf(t *testing.T, p *Panel, label string) int {
	t.Helper()
	for i, c := range p.Controls() {
		if c.Label == label {
			return i
		}
	}
	t.Fatalf("no control %q", label)
	return -1
}

func TestLayout(t *testing.T) {
	p := New(pose.NewState())
	cs := p.Controls()
	require.Len(t, cs, 3+len(pose.Fields)+1)
	assert.True(t, cs[0].Button)
	assert.Equal(t, PresetReset, cs[len(cs)-1].Preset)
	assert.InDelta(t, 0.1, cs[indexOf(t, p, pose.FieldHeadYaw.String())].Step, 1e-12)
	assert.InDelta(t, 0.125, cs[indexOf(t, p, pose.FieldLeftArm.String())].Step, 1e-12)
}

func TestPresetKeys(t *testing.T) {
	s := pose.NewState()
	p := New(s)

	for _, tc := range []struct {
		key  uint32
		want pose.Mode
	}{
		{common.Key2, pose.ModeWave},
		{common.Key3, pose.ModeDance},
		{common.Key1, pose.ModeIdle},
	} {
		ok, err := p.HandleKey(tc.key, 0)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, tc.want, s.Mode())
	}

	ok, err := p.HandleKey(common.KeyP, 0)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestSliderEditForcesManualAndClamps(t *testing.T) {
	s := pose.NewState()
	s.SetMode(pose.ModeDance)
	p := New(s)

	p.Select(indexOf(t, p, pose.FieldHeadPitch.String()))
	for range 30 {
		_, err := p.HandleKey(common.KeyRight, 0)
		require.NoError(t, err)
	}
	assert.Equal(t, pose.ModeManual, s.Mode())
	assert.Equal(t, 0.5, s.HeadPitch())

	_, err := p.HandleKey(common.KeyA, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.45, s.HeadPitch(), 1e-12)

	_, err = p.SetField(pose.FieldRightArm, 3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.RightArm())

	_, err = p.SetField(pose.FieldTorsoYaw, math.NaN())
	assert.Error(t, err)
}

func TestTabCyclesFocus(t *testing.T) {
	p := New(pose.NewState())
	n := len(p.Controls())

	_, _ = p.HandleKey(common.KeyTab, common.ModShift)
	assert.Equal(t, n-1, p.Selected())
	_, _ = p.HandleKey(common.KeyTab, 0)
	assert.Equal(t, 0, p.Selected())
	_, _ = p.HandleKey(common.KeyDown, 0)
	assert.Equal(t, 1, p.Selected())
}

func TestResetIsReflectedBack(t *testing.T) {
	s := pose.NewState()
	hooked := 0
	p := New(s, WithResetHook(func() error { hooked++; return nil }))

	_, _ = p.SetField(pose.FieldLeftArm, 2)
	_, _ = p.SetField(pose.FieldHeadYaw, -0.8)
	require.Equal(t, pose.ModeManual, s.Mode())

	ok, err := p.HandleKey(common.KeyR, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, hooked)
	assert.Equal(t, pose.ModeIdle, s.Mode())
	assert.Equal(t, pose.DefaultLeftArm, s.LeftArm())

	lines := p.Lines()
	assert.Equal(t, "Mode: idle", lines[0].Text)
	assert.Contains(t, lines[1+indexOf(t, p, pose.FieldLeftArm.String())].Text, "+0.20")
	assert.Contains(t, lines[1+indexOf(t, p, pose.FieldHeadYaw.String())].Text, "+0.00")
}

func TestResetHookErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	p := New(pose.NewState(), WithResetHook(func() error { return boom }))
	err := p.Invoke(PresetReset)
	assert.ErrorIs(t, err, boom)
	assert.Error(t, p.Invoke(Preset(42)))
}

func TestButtonActivation(t *testing.T) {
	s := pose.NewState()
	p := New(s)
	p.Select(indexOf(t, p, PresetDance.String()))

	_, err := p.HandleKey(common.KeyEnter, 0)
	require.NoError(t, err)
	assert.Equal(t, pose.ModeDance, s.Mode())

	lines := p.Lines()
	assert.True(t, lines[1+p.Selected()].Highlight)
	assert.Equal(t, "[Robot Dance]", lines[1+p.Selected()].Text)
}
