package segment

import (
	"fmt"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-sentinel/common"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/model"
	"github.com/go-gl/mathgl/mgl64"
)

// segmentCount is an atomic counter used to hand out unique segment IDs.
var segmentCount atomic.Uint64

type segment struct {
	id      uint64
	name    string
	enabled bool

	parent   *segment
	children []*segment
	models   []model.Model

	position mgl64.Vec3
	rotation mgl64.Vec3
	scale    mgl64.Vec3
}

// Segment defines a named node of a transform hierarchy.
// Each segment owns a local transform (position, Euler XYZ rotation, scale) relative to its
// parent and any number of attached models. A segment has at most one parent; the node
// without a parent is the root of its tree.
//
// Segments are not safe for concurrent mutation. All writers run on the scheduler thread
// that owns the frame loop.
type Segment interface {
	// ID returns the segment's unique identifier.
	//
	// Returns:
	//   - uint64: the segment ID
	ID() uint64

	// Name returns the segment's name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Enabled reports whether the segment and its subtree are drawn.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled toggles drawing of the segment and its subtree.
	// Transforms of a disabled subtree still compose for anchors and cameras.
	//
	// Parameters:
	//   - enabled: true to draw
	SetEnabled(enabled bool)

	// Parent returns the parent segment, or nil for a root.
	//
	// Returns:
	//   - Segment: the parent or nil
	Parent() Segment

	// Children returns a copy of the direct children in insertion order.
	//
	// Returns:
	//   - []Segment: the children
	Children() []Segment

	// AddChild attaches child under this segment, detaching it from any previous parent.
	// Attaching a segment to itself or to one of its own descendants is rejected.
	//
	// Parameters:
	//   - child: the segment to attach
	//
	// Returns:
	//   - error: error if the attachment would create a cycle
	AddChild(child Segment) error

	// Models returns the models attached to this segment.
	//
	// Returns:
	//   - []model.Model: the attached models
	Models() []model.Model

	// AddModel attaches a model to this segment.
	//
	// Parameters:
	//   - m: the model to attach
	AddModel(m model.Model)

	// Position returns the local translation.
	Position() mgl64.Vec3

	// Rotation returns the local Euler rotation (XYZ order, radians).
	Rotation() mgl64.Vec3

	// Scale returns the local scale.
	Scale() mgl64.Vec3

	// SetPosition sets the local translation.
	//
	// Parameters:
	//   - x, y, z: translation relative to the parent
	SetPosition(x, y, z float64)

	// SetPositionY sets only the y component of the local translation.
	//
	// Parameters:
	//   - y: new y translation
	SetPositionY(y float64)

	// SetRotation sets the local Euler rotation.
	//
	// Parameters:
	//   - x, y, z: rotation angles in radians
	SetRotation(x, y, z float64)

	// SetRotationX sets only the pitch component of the local rotation.
	SetRotationX(x float64)

	// SetRotationY sets only the yaw component of the local rotation.
	SetRotationY(y float64)

	// SetRotationZ sets only the roll component of the local rotation.
	SetRotationZ(z float64)

	// SetScale sets the local scale.
	//
	// Parameters:
	//   - x, y, z: scale factors
	SetScale(x, y, z float64)

	// LocalMatrix composes the local transform.
	//
	// Returns:
	//   - mgl64.Mat4: T * Rx * Ry * Rz * S
	LocalMatrix() mgl64.Mat4

	// WorldMatrix composes the chain of ancestor transforms from the root down to this segment.
	//
	// Returns:
	//   - mgl64.Mat4: root.Local * ... * parent.Local * this.Local
	WorldMatrix() mgl64.Mat4

	// WorldPoint maps a point given in this segment's local frame into world space.
	//
	// Parameters:
	//   - local: the local-space point
	//
	// Returns:
	//   - mgl64.Vec3: the world-space point
	WorldPoint(local mgl64.Vec3) mgl64.Vec3

	// Find searches this segment's subtree (including itself) depth-first for a name.
	//
	// Parameters:
	//   - name: the name to look for
	//
	// Returns:
	//   - Segment: the first match, or nil
	Find(name string) Segment

	// Walk visits every enabled segment of the subtree depth-first, parents before children,
	// passing the segment's world matrix. Disabled segments and their subtrees are skipped.
	//
	// Parameters:
	//   - fn: visitor receiving the segment and its world matrix
	Walk(fn func(s Segment, world mgl64.Mat4))
}

var _ Segment = &segment{}

// NewSegment creates a new root Segment configured with the given options.
//
// Parameters:
//   - name: the segment name
//   - options: functional options to configure the segment
//
// Returns:
//   - Segment: the newly created segment
func NewSegment(name string, options ...SegmentBuilderOption) Segment {
	s := &segment{
		id:      segmentCount.Add(1),
		name:    name,
		enabled: true,
		scale:   mgl64.Vec3{1, 1, 1},
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *segment) ID() uint64 {
	return s.id
}

func (s *segment) Name() string {
	return s.name
}

func (s *segment) Enabled() bool {
	return s.enabled
}

func (s *segment) SetEnabled(enabled bool) {
	s.enabled = enabled
}

func (s *segment) Parent() Segment {
	if s.parent == nil {
		return nil
	}
	return s.parent
}

func (s *segment) Children() []Segment {
	out := make([]Segment, len(s.children))
	for i, c := range s.children {
		out[i] = c
	}
	return out
}

func (s *segment) AddChild(child Segment) error {
	c, ok := child.(*segment)
	if !ok || c == nil {
		return fmt.Errorf("segment %q: unsupported child type %T", s.name, child)
	}
	for p := s; p != nil; p = p.parent {
		if p == c {
			return fmt.Errorf("segment %q: attaching %q would create a cycle", s.name, c.name)
		}
	}
	if c.parent != nil {
		c.parent.removeChild(c)
	}
	c.parent = s
	s.children = append(s.children, c)
	return nil
}

// removeChild drops c from the children list, preserving order.
func (s *segment) removeChild(c *segment) {
	for i, existing := range s.children {
		if existing == c {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}

func (s *segment) Models() []model.Model {
	return s.models
}

func (s *segment) AddModel(m model.Model) {
	s.models = append(s.models, m)
}

func (s *segment) Position() mgl64.Vec3 {
	return s.position
}

func (s *segment) Rotation() mgl64.Vec3 {
	return s.rotation
}

func (s *segment) Scale() mgl64.Vec3 {
	return s.scale
}

func (s *segment) SetPosition(x, y, z float64) {
	s.position = mgl64.Vec3{x, y, z}
}

func (s *segment) SetPositionY(y float64) {
	s.position[1] = y
}

func (s *segment) SetRotation(x, y, z float64) {
	s.rotation = mgl64.Vec3{x, y, z}
}

func (s *segment) SetRotationX(x float64) {
	s.rotation[0] = x
}

func (s *segment) SetRotationY(y float64) {
	s.rotation[1] = y
}

func (s *segment) SetRotationZ(z float64) {
	s.rotation[2] = z
}

func (s *segment) SetScale(x, y, z float64) {
	s.scale = mgl64.Vec3{x, y, z}
}

func (s *segment) LocalMatrix() mgl64.Mat4 {
	return common.BuildModelMatrix(s.position, s.rotation, s.scale)
}

func (s *segment) WorldMatrix() mgl64.Mat4 {
	m := s.LocalMatrix()
	for p := s.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

func (s *segment) WorldPoint(local mgl64.Vec3) mgl64.Vec3 {
	return common.TransformPoint(s.WorldMatrix(), local)
}

func (s *segment) Find(name string) Segment {
	if s.name == name {
		return s
	}
	for _, c := range s.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

func (s *segment) Walk(fn func(s Segment, world mgl64.Mat4)) {
	var parentWorld mgl64.Mat4
	if s.parent != nil {
		parentWorld = s.parent.WorldMatrix()
	} else {
		parentWorld = mgl64.Ident4()
	}
	s.walk(parentWorld, fn)
}

func (s *segment) walk(parentWorld mgl64.Mat4, fn func(s Segment, world mgl64.Mat4)) {
	if !s.enabled {
		return
	}
	world := parentWorld.Mul4(s.LocalMatrix())
	fn(s, world)
	for _, c := range s.children {
		c.walk(world, fn)
	}
}
