package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "sentinel.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadKeepsUnsetFieldsZero(t *testing.T) {
	cfg, err := Load(writeFile(t, `{"width": 640, "hide_chart": true, "chart_seed": 9}`))
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Width)
	assert.True(t, cfg.HideChart)
	assert.Equal(t, uint64(9), cfg.ChartSeed)
	assert.Zero(t, cfg.Height)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "config: read")

	_, err = Load(writeFile(t, `{"width": "wide"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: parse")
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 720, cfg.Height)
	assert.Equal(t, 60.0, cfg.TickRate)
	assert.Equal(t, 1.2, cfg.AnimationSpeed)
	assert.Equal(t, 0.005, cfg.DragSensitivity)
	assert.Equal(t, 0.005, cfg.ZoomScale)
	assert.Equal(t, 2.0, cfg.MinDistance)
	assert.Equal(t, 8.0, cfg.MaxDistance)
	assert.Equal(t, 3.5, cfg.StartDistance)
	assert.Equal(t, 300, cfg.InsetWidth)
	assert.Equal(t, 200, cfg.InsetHeight)
	assert.Equal(t, 20, cfg.InsetMargin)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.Equal(t, 1, cfg.Supersample)
	assert.False(t, cfg.Headless)
	assert.NoError(t, cfg.Validate())
}

func TestFlagsOverrideFile(t *testing.T) {
	cfg := Config{Width: 640, Workers: 2, Snapshot: "a.png"}
	cfg.Resolve(Flags{Width: 1024, Workers: 6, Snapshot: "b.webp", Supersample: 2})
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 6, cfg.Workers)
	assert.Equal(t, "b.webp", cfg.Snapshot)
	assert.Equal(t, 2, cfg.Supersample)
	assert.Equal(t, 1, cfg.Frames)
	assert.True(t, cfg.Headless)
}

func TestValidate(t *testing.T) {
	for name, tc := range map[string]struct {
		cfg Config
		ok  bool
	}{
		"inverted distances": {cfg: Config{MinDistance: 5, MaxDistance: 3, StartDistance: 4}},
		"start outside":      {cfg: Config{StartDistance: 9}},
		"huge supersample":   {cfg: Config{Supersample: 8}},
		"bad snapshot ext":   {cfg: Config{Snapshot: "out.jpg"}},
		"no snapshot ext":    {cfg: Config{Snapshot: "dir.v2/out"}},
		"tga snapshot":       {cfg: Config{Snapshot: "OUT.TGA"}, ok: true},
	} {
		t.Run(name, func(t *testing.T) {
			tc.cfg.Resolve(Flags{})
			if tc.ok {
				assert.NoError(t, tc.cfg.Validate())
			} else {
				assert.Error(t, tc.cfg.Validate())
			}
		})
	}
}
