// Package app wires the robot figure, its animation, the two viewports, the overlay and the
// input handlers into one explicit context object driven by the engine's frame loop.
package app

import (
	"context"
	"fmt"
	"image"
	"log"

	"github.com/Carmen-Shannon/oxy-sentinel/engine"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/camera"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/overlay"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/scene"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/window"
	"github.com/Carmen-Shannon/oxy-sentinel/internal/config"
	"github.com/Carmen-Shannon/oxy-sentinel/internal/snapshot"
	"github.com/Carmen-Shannon/oxy-sentinel/robot/animation"
	"github.com/Carmen-Shannon/oxy-sentinel/robot/figure"
	"github.com/Carmen-Shannon/oxy-sentinel/robot/interaction"
	"github.com/Carmen-Shannon/oxy-sentinel/robot/panel"
	"github.com/Carmen-Shannon/oxy-sentinel/robot/pose"
)

// Chart placement in the bottom-left corner.
const (
	ChartWidth  = 250
	ChartHeight = 100
	ChartMargin = 20
)

// Activity returns the chart spike amplitude for mode m.
func Activity(m pose.Mode) float64 {
	switch m {
	case pose.ModeDance:
		return 0.8
	case pose.ModeWave:
		return 0.5
	case pose.ModeManual:
		return 0.3
	}
	return 0.1
}

// App is the explicit application context. Every field is owned by the frame loop's thread.
type App struct {
	cfg config.Config

	State  *pose.State
	Rig    *figure.Rig
	Driver *animation.Driver
	Scene  scene.Scene

	MainCamera camera.Camera
	Orbit      camera.OrbitController
	HeadCamera camera.Camera

	Renderer  renderer.Renderer
	Projector *overlay.Projector
	Panel     *panel.Panel
	Chart     *overlay.Chart
	Input     *interaction.Controller
	Engine    engine.Engine

	window     window.Window
	textPanel  *overlay.TextPanel
	labelStyle overlay.LabelStyle

	// scale is the supersampling factor of the 3D passes; the overlay is always drawn at 1x.
	scale  int
	width  int
	height int

	lastStats [2]renderer.PassStats
}

// New builds the application from a resolved config. Unless cfg.Headless is set it opens a
// window and a GPU presenter; if either fails the failure is logged and the app continues
// headless.
//
// Parameters:
//   - cfg: a config that has been through Resolve
//
// Returns:
//   - *App: the application
//   - error: error if the config is invalid or the snapshot path cannot be written
func New(cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	if cfg.Snapshot != "" {
		if err := snapshot.CheckWritable(cfg.Snapshot); err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
	}

	a := &App{
		cfg:        cfg,
		State:      pose.NewState(),
		Rig:        figure.Build(),
		scale:      1,
		width:      cfg.Width,
		height:     cfg.Height,
		labelStyle: overlay.DefaultLabelStyle(),
		textPanel:  overlay.NewTextPanel(panel.Title),
		Chart:      overlay.NewChart(cfg.ChartSeed),
	}
	if cfg.Snapshot != "" {
		a.scale = cfg.Supersample
	}

	a.Driver = animation.NewDriver(a.Rig, animation.WithSpeed(cfg.AnimationSpeed))
	a.Scene = scene.NewScene("sentinel",
		scene.WithSegments(a.Rig.Root),
		scene.WithGrid(scene.NewGridHelper()),
	)

	a.Orbit = camera.NewOrbitController(
		camera.WithRadiusBounds(cfg.MinDistance, cfg.MaxDistance),
		camera.WithRadius(cfg.StartDistance),
		camera.WithZoomSpeed(cfg.ZoomScale),
	)
	a.MainCamera = camera.NewCamera(
		camera.WithFovDegrees(75),
		camera.WithAspect(float64(cfg.Width)/float64(cfg.Height)),
		camera.WithNear(0.1),
		camera.WithFar(1000),
		camera.WithController(a.Orbit),
	)
	a.HeadCamera = camera.NewCamera(
		camera.WithFovDegrees(90),
		camera.WithAspect(float64(cfg.InsetWidth)/float64(cfg.InsetHeight)),
		camera.WithNear(0.1),
		camera.WithFar(100),
		camera.WithController(camera.NewMountedController(a.Rig.Head)),
	)

	a.Renderer = renderer.NewRenderer(cfg.Width*a.scale, cfg.Height*a.scale, renderer.WithWorkers(cfg.Workers))
	a.Projector = overlay.NewProjector(a.Rig.Labels()...)
	a.Panel = panel.New(a.State, panel.WithResetHook(func() error {
		return a.Driver.Apply(a.Driver.Time(), a.State)
	}))
	a.Input = interaction.NewController(a.Rig.Root, a.MainCamera,
		interaction.WithDragSensitivity(cfg.DragSensitivity),
		interaction.WithResizers(a.Renderer, resizeFunc(a.setSize)),
	)

	if !cfg.Headless {
		a.openSurface()
	}

	opts := []engine.EngineBuilderOption{
		engine.WithProfiling(cfg.Profiling),
		engine.WithFrameCallback(a.Frame),
		engine.WithMaxFrames(uint64(max(cfg.Frames, 0))),
	}
	if a.window != nil {
		opts = append(opts, engine.WithWindow(a.window), engine.WithTickRate(cfg.TickRate))
	} else {
		// Headless frames are paced by the fixed step, not wall time.
		opts = append(opts, engine.WithTickRate(0), engine.WithFixedStep(1/cfg.TickRate))
	}
	a.Engine = engine.NewEngine(opts...)

	// Write the rest pose so labels and cameras have valid transforms before the first frame.
	if err := a.Driver.Apply(a.Driver.Time(), a.State); err != nil {
		return nil, fmt.Errorf("app: initial pose: %w", err)
	}
	return a, nil
}

// openSurface opens the window and its presenter, leaving the app headless on failure.
func (a *App) openSurface() {
	w, err := window.NewWindow(
		window.WithTitle(a.cfg.Title),
		window.WithSize(a.cfg.Width, a.cfg.Height),
	)
	if err != nil {
		log.Printf("[App] no window, continuing headless: %v", err)
		return
	}

	p, err := renderer.NewWGPUPresenter(w.SurfaceDescriptor(), w.Width(), w.Height(), renderer.PresentModeVSync)
	if err != nil {
		log.Printf("[App] no drawing surface, continuing headless: %v", err)
		_ = w.Close()
		return
	}

	a.window = w
	a.Renderer.SetPresenter(p)
	a.Input.Bind(w)
	w.SetKeyDownCallback(a.handleKey)
	a.Input.Resize(w.Width(), w.Height())
}

func (a *App) handleKey(key uint32, mods uint32) {
	if _, err := a.Panel.HandleKey(key, mods); err != nil {
		log.Printf("[App] key %d: %v", key, err)
	}
}

// Headless reports whether the app runs without a window.
func (a *App) Headless() bool {
	return a.window == nil
}

// Size returns the logical frame size in pixels.
func (a *App) Size() (int, int) {
	return a.width, a.height
}

func (a *App) setSize(w, h int) {
	a.width, a.height = w, h
}

// InsetRect returns the picture-in-picture rectangle in logical pixels: fixed size, Margin
// pixels from the bottom-right corner.
func (a *App) InsetRect() image.Rectangle {
	x := a.width - a.cfg.InsetWidth - a.cfg.InsetMargin
	y := a.height - a.cfg.InsetHeight - a.cfg.InsetMargin
	return image.Rect(x, y, x+a.cfg.InsetWidth, y+a.cfg.InsetHeight)
}

// ChartRect returns the activity chart rectangle in logical pixels.
func (a *App) ChartRect() image.Rectangle {
	return image.Rect(ChartMargin, a.height-ChartMargin-ChartHeight, ChartMargin+ChartWidth, a.height-ChartMargin)
}

// LastStats returns the main and inset pass statistics of the most recent frame.
func (a *App) LastStats() (main, inset renderer.PassStats) {
	return a.lastStats[0], a.lastStats[1]
}

// Frame runs one frame: animate, update cameras, project labels, draw the main view, draw the
// inset on top, draw the overlay and present.
//
// Parameters:
//   - dt: seconds since the previous frame
//
// Returns:
//   - error: the first failure of the frame; later stages are skipped
func (a *App) Frame(dt float64) error {
	if err := a.Driver.Step(dt, a.State); err != nil {
		return fmt.Errorf("app: animate: %w", err)
	}

	a.MainCamera.Update()
	a.HeadCamera.Update()
	a.Projector.Update(a.MainCamera.ViewProjectionMatrix(), float64(a.width), float64(a.height))
	a.Chart.Push(Activity(a.State.Mode()))

	s := a.scale
	full := image.Rect(0, 0, a.width*s, a.height*s)
	stats, err := a.Renderer.RenderPass(a.Scene, a.MainCamera, renderer.Pass{Name: "main", Viewport: full})
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	a.lastStats[0] = stats

	in := a.InsetRect()
	inset := image.Rect(in.Min.X*s, in.Min.Y*s, in.Max.X*s, in.Max.Y*s)
	stats, err = a.Renderer.RenderPass(a.Scene, a.HeadCamera, renderer.Pass{Name: "inset", Viewport: inset, Scissor: inset})
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	a.lastStats[1] = stats

	if s == 1 {
		a.DrawOverlay(a.Renderer.FrameBuffer().NRGBA())
	}
	if err := a.Renderer.Present(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	return nil
}

// DrawOverlay draws labels, the panel and the activity chart onto img at logical size.
func (a *App) DrawOverlay(img *image.NRGBA) {
	c := overlay.NewCanvas(img)
	if !a.cfg.HideLabels {
		overlay.DrawLabels(c, a.Projector.Labels(), a.labelStyle)
	}
	if !a.cfg.HidePanel {
		a.textPanel.Lines = a.Panel.Lines()
		a.textPanel.Draw(c, a.textPanel.TopRight(c))
	}
	if !a.cfg.HideChart {
		a.Chart.Draw(c, a.ChartRect())
	}
}

// Capture returns the current frame at logical size with the overlay on it.
func (a *App) Capture() *image.NRGBA {
	img := a.Renderer.Image()
	if a.scale > 1 {
		img = snapshot.Downsample(img, a.scale)
		a.DrawOverlay(img)
	}
	return img
}

// Run drives frames until ctx is cancelled, the window closes or the frame limit is reached,
// then writes the snapshot if one was requested.
//
// Parameters:
//   - ctx: cancels the loop
//
// Returns:
//   - error: error if the loop could not start or the snapshot could not be written
func (a *App) Run(ctx context.Context) error {
	if err := a.Engine.Run(ctx); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	log.Printf("[App] stopped after %d frames (%d faulted)", a.Engine.Frames(), a.Engine.Faults())

	if a.cfg.Snapshot == "" {
		return nil
	}
	if err := snapshot.Write(a.cfg.Snapshot, a.Capture()); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	log.Printf("[App] wrote %s", a.cfg.Snapshot)
	return nil
}

// Close releases the presenter and the window.
func (a *App) Close() {
	a.Renderer.Release()
	if a.window != nil {
		if err := a.window.Close(); err != nil {
			log.Printf("[App] close window: %v", err)
		}
		a.window = nil
	}
}

// resizeFunc adapts a function to interaction.Resizer.
type resizeFunc func(w, h int)

func (f resizeFunc) Resize(w, h int) { f(w, h) }
