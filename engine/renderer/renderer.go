package renderer

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-sentinel/common"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/camera"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/model"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/renderer/raster"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/scene"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/segment"
	"github.com/go-gl/mathgl/mgl64"
)

// Pass describes one draw of a scene into the frame buffer.
type Pass struct {
	// Name is used in log and error messages only.
	Name string

	// Viewport is the pixel rectangle NDC maps onto (top-left origin).
	Viewport image.Rectangle

	// Scissor limits which pixels the pass may clear or write. Empty means the whole viewport.
	Scissor image.Rectangle
}

// PassStats reports what one pass drew.
type PassStats struct {
	Models    int
	Culled    int
	Triangles int
	Lines     int
}

// Renderer draws scenes into a software frame buffer, one scissored pass at a time, and hands
// the result to an optional Presenter.
//
// Every pass first clears its scissor rectangle (color and depth) and then draws only inside
// it, so later passes composite on top of earlier ones without disturbing pixels outside their
// own rectangle.
type Renderer interface {
	// Resize reallocates the frame buffer and forwards the size to the presenter.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)

	// Size returns the frame buffer size in pixels.
	Size() (width, height int)

	// FrameBuffer returns the render target. Overlay drawing writes into it between the last
	// pass and Present.
	FrameBuffer() *raster.FrameBuffer

	// RenderPass draws sc as seen by cam.
	//
	// Parameters:
	//   - sc: the scene to draw
	//   - cam: the camera providing view, projection and frustum
	//   - pass: viewport and scissor
	//
	// Returns:
	//   - PassStats: counts for the pass
	//   - error: error if arguments are invalid or a raster worker failed
	RenderPass(sc scene.Scene, cam camera.Camera, pass Pass) (PassStats, error)

	// Image copies the current frame into an image.
	Image() *image.NRGBA

	// Present shows the current frame through the presenter. Without a presenter it does nothing.
	Present() error

	// Presenter returns the attached presenter, or nil when running headless.
	Presenter() Presenter

	// SetPresenter attaches or detaches (nil) a presenter.
	SetPresenter(p Presenter)

	// Workers returns the number of raster workers.
	Workers() int

	// Release frees the presenter.
	Release()
}

type drawItem struct {
	model model.Model
	world mgl64.Mat4
}

type renderer struct {
	mu *sync.Mutex

	fb        *raster.FrameBuffer
	presenter Presenter

	// pool runs triangle setup per model and rasterization per band. Workers persist
	// across frames; a WaitGroup is the per-pass barrier.
	pool            worker.DynamicWorkerPool
	workers         int
	cullingDisabled bool
	taskID          int

	// Reused between passes.
	items   []drawItem
	buffers [][]raster.ScreenTriangle
	lines   []raster.ScreenLine
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer with a width×height frame buffer.
//
// Parameters:
//   - width: initial width in pixels
//   - height: initial height in pixels
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the new renderer
func NewRenderer(width, height int, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:      &sync.Mutex{},
		fb:      raster.NewFrameBuffer(width, height),
		workers: DefaultWorkers(),
	}
	for _, option := range options {
		option(r)
	}

	// Queue size of 256 covers one task per model or band with headroom.
	r.pool = worker.NewDynamicWorkerPool(r.workers, 256, 1*time.Second)
	if r.presenter != nil {
		r.presenter.Resize(r.fb.Width, r.fb.Height)
	}
	return r
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if width == r.fb.Width && height == r.fb.Height {
		return
	}
	r.fb.Resize(width, height)
	if r.presenter != nil {
		r.presenter.Resize(r.fb.Width, r.fb.Height)
	}
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fb.Width, r.fb.Height
}

func (r *renderer) FrameBuffer() *raster.FrameBuffer {
	return r.fb
}

func (r *renderer) Workers() int {
	return r.workers
}

func (r *renderer) Presenter() Presenter {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presenter
}

func (r *renderer) SetPresenter(p Presenter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presenter = p
	if p != nil {
		p.Resize(r.fb.Width, r.fb.Height)
	}
}

func (r *renderer) Image() *image.NRGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fb.Image()
}

func (r *renderer) Present() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.presenter == nil {
		return nil
	}
	return r.presenter.Present(r.fb)
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.presenter != nil {
		r.presenter.Release()
		r.presenter = nil
	}
}

func (r *renderer) RenderPass(sc scene.Scene, cam camera.Camera, pass Pass) (PassStats, error) {
	var stats PassStats
	if sc == nil || cam == nil {
		return stats, errors.New("renderer: pass needs a scene and a camera")
	}
	if pass.Viewport.Empty() {
		return stats, fmt.Errorf("renderer: pass %q has an empty viewport", pass.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	scissor := pass.Scissor
	if scissor.Empty() {
		scissor = pass.Viewport
	}
	scissor = scissor.Intersect(r.fb.Bounds())
	if scissor.Empty() {
		return stats, nil
	}
	r.fb.Clear(scissor, sc.Background())

	viewProj := cam.ViewProjectionMatrix()
	frustum := cam.Frustum()
	eye := cam.Position()
	lighting := sc.Lighting()

	items := r.items[:0]
	sc.Root().Walk(func(s segment.Segment, world mgl64.Mat4) {
		for _, m := range s.Models() {
			if !m.Visible() {
				continue
			}
			stats.Models++
			mw := world.Mul4(m.LocalMatrix())
			if !r.cullingDisabled {
				center := common.TransformPoint(mw, mgl64.Vec3{})
				if !frustum.SphereVisible(center, m.BoundingRadius()*maxAxisScale(mw)) {
					stats.Culled++
					continue
				}
			}
			items = append(items, drawItem{model: m, world: mw})
		}
	})
	r.items = items
	for len(r.buffers) < len(items) {
		r.buffers = append(r.buffers, nil)
	}

	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
	)
	fail := func(stage string, rec any) {
		errMu.Lock()
		defer errMu.Unlock()
		if firstErr == nil {
			firstErr = fmt.Errorf("renderer: pass %q %s: %v", pass.Name, stage, rec)
		}
	}

	// Phase 1: triangle setup, one task per model.
	for i := range items {
		idx := i
		wg.Add(1)
		r.pool.SubmitTask(worker.Task{
			ID: r.nextTaskID(),
			Do: func() (any, error) {
				defer wg.Done()
				defer func() {
					if rec := recover(); rec != nil {
						fail("setup", rec)
					}
				}()
				r.buffers[idx] = setupModel(items[idx], viewProj, pass.Viewport, eye, &lighting, r.buffers[idx][:0])
				return nil, nil
			},
		})
	}
	wg.Wait()
	if firstErr != nil {
		return stats, firstErr
	}

	lines := r.lines[:0]
	for _, l := range sc.Grid().Lines() {
		if sl, ok := raster.ProjectLine(viewProj, pass.Viewport, l.A, l.B, l.Color); ok {
			lines = append(lines, sl)
		}
	}
	r.lines = lines

	// Phase 2: rasterization, one task per horizontal band. Bands never share rows.
	buffers := r.buffers[:len(items)]
	for _, band := range splitBands(scissor, r.workers) {
		b := band
		wg.Add(1)
		r.pool.SubmitTask(worker.Task{
			ID: r.nextTaskID(),
			Do: func() (any, error) {
				defer wg.Done()
				defer func() {
					if rec := recover(); rec != nil {
						fail("raster", rec)
					}
				}()
				for _, tris := range buffers {
					for t := range tris {
						raster.RasterizeTriangle(r.fb, &tris[t], b)
					}
				}
				for li := range lines {
					raster.RasterizeLine(r.fb, &lines[li], b)
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
	if firstErr != nil {
		return stats, firstErr
	}

	for _, tris := range buffers {
		stats.Triangles += len(tris)
	}
	stats.Lines = len(lines)
	return stats, nil
}

func (r *renderer) nextTaskID() int {
	r.taskID++
	return r.taskID
}

// setupModel transforms, shades and clips every triangle of one model into dst.
func setupModel(it drawItem, viewProj mgl64.Mat4, vp image.Rectangle, eye mgl64.Vec3, lc *raster.LightConfig, dst []raster.ScreenTriangle) []raster.ScreenTriangle {
	mesh := it.model.Mesh()
	if mesh == nil {
		return dst
	}
	mat := it.model.Material()
	for i := 0; i < mesh.TriangleCount(); i++ {
		a, b, c := mesh.Triangle(i)
		a = common.TransformPoint(it.world, a)
		b = common.TransformPoint(it.world, b)
		c = common.TransformPoint(it.world, c)

		n := b.Sub(a).Cross(c.Sub(a))
		if n.Len() < 1e-12 {
			continue
		}
		n = n.Normalize()
		center := a.Add(b).Add(c).Mul(1.0 / 3.0)
		col := lc.Shade(mat, n, center, eye)
		dst = raster.ProjectTriangle(viewProj, vp, a, b, c, col, dst)
	}
	return dst
}

// splitBands cuts rect into at most n horizontal bands of near-equal height.
func splitBands(rect image.Rectangle, n int) []image.Rectangle {
	h := rect.Dy()
	if h <= 0 {
		return nil
	}
	n = common.Clamp(n, 1, h)
	bands := make([]image.Rectangle, 0, n)
	step := (h + n - 1) / n
	for y := rect.Min.Y; y < rect.Max.Y; y += step {
		bands = append(bands, image.Rect(rect.Min.X, y, rect.Max.X, min(y+step, rect.Max.Y)))
	}
	return bands
}

func maxAxisScale(m mgl64.Mat4) float64 {
	return max(m.Col(0).Vec3().Len(), m.Col(1).Vec3().Len(), m.Col(2).Vec3().Len())
}
