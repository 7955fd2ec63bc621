package overlay

import (
	"github.com/Carmen-Shannon/oxy-sentinel/common"
	"github.com/go-gl/mathgl/mgl64"
)

// Mount is the transform an Anchor is attached to. Segments satisfy it.
type Mount interface {
	WorldMatrix() mgl64.Mat4
}

// Anchor binds a local offset to a mount. The anchor never owns the mount.
type Anchor struct {
	Mount  Mount
	Offset mgl64.Vec3
}

// World composes the mount's ancestor chain and applies it to the offset.
func (a Anchor) World() mgl64.Vec3 {
	if a.Mount == nil {
		return a.Offset
	}
	return common.TransformPoint(a.Mount.WorldMatrix(), a.Offset)
}

// Placement is the screen-space state of a label for the current frame.
type Placement struct {
	// X, Y are pixel coordinates with a top-left origin.
	X, Y float64

	// Depth is the projected NDC z.
	Depth float64

	// Opacity is 0 when the anchor projects beyond the far plane or behind the eye, else 1.
	Opacity float64
}

// Visible reports whether the label should be drawn.
func (p Placement) Visible() bool {
	return p.Opacity > 0
}

// Label is an annotation glued to an Anchor. Labels are created once and re-projected every
// frame; they are never destroyed during a session.
type Label struct {
	Text      string
	Anchor    Anchor
	Placement Placement
}

// NewLabel creates a Label anchored at offset (x, y, z) in mount's local frame.
func NewLabel(text string, mount Mount, x, y, z float64) *Label {
	return &Label{
		Text:   text,
		Anchor: Anchor{Mount: mount, Offset: mgl64.Vec3{x, y, z}},
	}
}

// Project maps a world-space point through viewProj into pixel coordinates of a width x height
// viewport. Visibility depends only on the projected depth: depth > 1 hides the point.
//
// Parameters:
//   - viewProj: combined projection * view matrix of the viewpoint
//   - world: the world-space point
//   - width, height: viewport size in pixels
//
// Returns:
//   - Placement: pixel position, depth and opacity
func Project(viewProj mgl64.Mat4, world mgl64.Vec3, width, height float64) Placement {
	ndc, _ := common.ProjectToNDC(viewProj, world)
	x, y := common.NDCToPixel(ndc, width, height)
	return Placement{
		X:       x,
		Y:       y,
		Depth:   ndc.Z(),
		Opacity: OpacityForDepth(ndc.Z()),
	}
}

// OpacityForDepth returns 0 for depth > 1 and 1 otherwise.
func OpacityForDepth(depth float64) float64 {
	if depth > 1 {
		return 0
	}
	return 1
}

// Projector re-projects a fixed set of labels every frame.
type Projector struct {
	labels []*Label
}

// NewProjector creates a Projector over labels.
func NewProjector(labels ...*Label) *Projector {
	return &Projector{labels: labels}
}

// Labels returns the projected labels in creation order.
func (p *Projector) Labels() []*Label {
	return p.labels
}

// Add registers another label.
func (p *Projector) Add(l *Label) {
	p.labels = append(p.labels, l)
}

// Update recomputes every label placement for the current transforms and viewpoint.
//
// Parameters:
//   - viewProj: view-projection of the main viewpoint
//   - width, height: overlay size in pixels
func (p *Projector) Update(viewProj mgl64.Mat4, width, height float64) {
	for _, l := range p.labels {
		l.Placement = Project(viewProj, l.Anchor.World(), width, height)
	}
}
