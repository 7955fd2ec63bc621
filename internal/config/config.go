package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Carmen-Shannon/oxy-sentinel/common"
)

// Config holds window, loop, interaction and output settings.
type Config struct {
	// Window
	Title  string `json:"title"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	// Loop
	TickRate       float64 `json:"tick_rate"`
	Profiling      bool    `json:"profiling"`
	AnimationSpeed float64 `json:"animation_speed"`

	// Interaction
	DragSensitivity float64 `json:"drag_sensitivity"`
	ZoomScale       float64 `json:"zoom_scale"`
	MinDistance     float64 `json:"min_distance"`
	MaxDistance     float64 `json:"max_distance"`
	StartDistance   float64 `json:"start_distance"`

	// Inset viewport
	InsetWidth  int `json:"inset_width"`
	InsetHeight int `json:"inset_height"`
	InsetMargin int `json:"inset_margin"`

	// Rendering
	Workers    int    `json:"workers"`
	HideLabels bool   `json:"hide_labels"`
	HidePanel  bool   `json:"hide_panel"`
	HideChart  bool   `json:"hide_chart"`
	ChartSeed  uint64 `json:"chart_seed"`

	// Output
	Headless    bool   `json:"headless"`
	Snapshot    string `json:"snapshot"`
	Frames      int    `json:"frames"`
	Supersample int    `json:"supersample"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width       int
	Height      int
	TickRate    float64
	Workers     int
	Profiling   bool
	Headless    bool
	Snapshot    string
	Frames      int
	Supersample int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.TickRate > 0 {
		c.TickRate = flags.TickRate
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Profiling {
		c.Profiling = true
	}
	if flags.Headless {
		c.Headless = true
	}
	c.Snapshot = common.Coalesce(flags.Snapshot, c.Snapshot)
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}

	c.Title = common.Coalesce(c.Title, "Oxy Sentinel")
	if c.Width <= 0 {
		c.Width = 1280
	}
	if c.Height <= 0 {
		c.Height = 720
	}
	if c.TickRate <= 0 {
		c.TickRate = 60
	}
	if c.AnimationSpeed <= 0 {
		c.AnimationSpeed = 1.2
	}
	if c.DragSensitivity <= 0 {
		c.DragSensitivity = 0.005
	}
	if c.ZoomScale <= 0 {
		c.ZoomScale = 0.005
	}
	if c.MinDistance <= 0 {
		c.MinDistance = 2
	}
	if c.MaxDistance <= 0 {
		c.MaxDistance = 8
	}
	if c.StartDistance <= 0 {
		c.StartDistance = 3.5
	}
	if c.InsetWidth <= 0 {
		c.InsetWidth = 300
	}
	if c.InsetHeight <= 0 {
		c.InsetHeight = 200
	}
	if c.InsetMargin <= 0 {
		c.InsetMargin = 20
	}
	if c.Workers <= 0 {
		c.Workers = max(runtime.NumCPU()-1, 1)
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	// A snapshot without a frame count still needs one frame to capture.
	if c.Snapshot != "" && c.Frames <= 0 {
		c.Frames = 1
	}
	if c.Snapshot != "" {
		c.Headless = true
	}
}

// Validate reports settings that cannot work together. Call it after Resolve.
func (c *Config) Validate() error {
	if c.MinDistance > c.MaxDistance {
		return fmt.Errorf("config: min_distance %g exceeds max_distance %g", c.MinDistance, c.MaxDistance)
	}
	if c.StartDistance < c.MinDistance || c.StartDistance > c.MaxDistance {
		return fmt.Errorf("config: start_distance %g outside [%g, %g]", c.StartDistance, c.MinDistance, c.MaxDistance)
	}
	if c.Supersample > 4 {
		return fmt.Errorf("config: supersample %d exceeds 4", c.Supersample)
	}
	if c.Snapshot != "" {
		switch ext := strings.ToLower(filepath.Ext(c.Snapshot)); ext {
		case ".webp", ".tga", ".png":
		default:
			return fmt.Errorf("config: snapshot %s: unsupported format %q", c.Snapshot, ext)
		}
	}
	return nil
}

