package scene

import (
	"image/color"
	"sync"

	"github.com/Carmen-Shannon/oxy-sentinel/common"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/renderer/raster"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/segment"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultBackground is the near-black showroom backdrop.
const DefaultBackground = 0x0a0a0a

// Scene holds the segment hierarchy that gets drawn, plus the per-scene render state:
// background color, lighting and an optional floor grid.
// Segment transforms are mutated by the frame callback only; the lock guards the scene
// settings, which the panel and CLI may change.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Root returns the scene root. Everything drawn hangs below it.
	Root() segment.Segment

	// Add attaches segments directly under the root.
	//
	// Parameters:
	//   - segs: the segments to attach
	//
	// Returns:
	//   - error: the first reparenting error
	Add(segs ...segment.Segment) error

	// Background returns the clear color.
	Background() color.NRGBA

	// SetBackground sets the clear color.
	SetBackground(c color.NRGBA)

	// Lighting returns the light rig used for shading.
	Lighting() raster.LightConfig

	// SetLighting replaces the light rig.
	SetLighting(lc raster.LightConfig)

	// Grid returns the floor grid helper, or nil when the scene has none.
	Grid() *GridHelper

	// SetGrid replaces the floor grid helper. nil removes it.
	SetGrid(g *GridHelper)
}

type scene struct {
	mu *sync.RWMutex

	name       string
	root       segment.Segment
	background color.NRGBA
	lighting   raster.LightConfig
	grid       *GridHelper
}

var _ Scene = &scene{}

// NewScene creates an empty scene with the default background and light rig.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:         &sync.RWMutex{},
		name:       name,
		root:       segment.NewSegment(name + "_root"),
		background: common.HexColor(DefaultBackground),
		lighting:   raster.DefaultLightConfig(),
	}

	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Root() segment.Segment {
	return s.root
}

func (s *scene) Add(segs ...segment.Segment) error {
	for _, seg := range segs {
		if err := s.root.AddChild(seg); err != nil {
			return err
		}
	}
	return nil
}

func (s *scene) Background() color.NRGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *scene) SetBackground(c color.NRGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = c
}

func (s *scene) Lighting() raster.LightConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lighting
}

func (s *scene) SetLighting(lc raster.LightConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lighting = lc
}

func (s *scene) Grid() *GridHelper {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid
}

func (s *scene) SetGrid(g *GridHelper) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grid = g
}

// Line is a colored world-space segment.
type Line struct {
	A, B  mgl64.Vec3
	Color color.NRGBA
}

// GridHelper is a square floor grid in the XZ plane.
type GridHelper struct {
	Size        float64
	Divisions   int
	Y           float64
	CenterColor color.NRGBA
	LineColor   color.NRGBA
}

// NewGridHelper returns the showroom floor: 30 units, 30 divisions, 1.5 below the origin.
func NewGridHelper() *GridHelper {
	return &GridHelper{
		Size:        30,
		Divisions:   30,
		Y:           -1.5,
		CenterColor: common.HexColor(0x444444),
		LineColor:   common.HexColor(0x111111),
	}
}

// Lines returns Divisions+1 lines along each axis. The two lines through the origin use
// CenterColor.
func (g *GridHelper) Lines() []Line {
	if g == nil || g.Divisions <= 0 {
		return nil
	}
	half := g.Size / 2
	step := g.Size / float64(g.Divisions)
	center := g.Divisions / 2
	lines := make([]Line, 0, 2*(g.Divisions+1))
	for i := 0; i <= g.Divisions; i++ {
		k := -half + float64(i)*step
		c := g.LineColor
		if i == center && g.Divisions%2 == 0 {
			c = g.CenterColor
		}
		lines = append(lines,
			Line{A: mgl64.Vec3{-half, g.Y, k}, B: mgl64.Vec3{half, g.Y, k}, Color: c},
			Line{A: mgl64.Vec3{k, g.Y, -half}, B: mgl64.Vec3{k, g.Y, half}, Color: c},
		)
	}
	return lines
}
