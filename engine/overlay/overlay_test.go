package overlay

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mount struct {
	world mgl64.Mat4
}

func (m *mount) WorldMatrix() mgl64.Mat4 { return m.world }

func TestProjectFormula(t *testing.T) {
	vp := mgl64.Ident4()

	p := Project(vp, mgl64.Vec3{0, 0, 0}, 800, 600)
	assert.InDelta(t, 400.0, p.X, 1e-9)
	assert.InDelta(t, 300.0, p.Y, 1e-9)
	assert.Equal(t, 1.0, p.Opacity)

	p = Project(vp, mgl64.Vec3{1, 1, 0.5}, 800, 600)
	assert.InDelta(t, 800.0, p.X, 1e-9)
	assert.InDelta(t, 0.0, p.Y, 1e-9)

	p = Project(vp, mgl64.Vec3{-0.5, -0.5, 0}, 800, 600)
	assert.InDelta(t, 200.0, p.X, 1e-9)
	assert.InDelta(t, 450.0, p.Y, 1e-9)
}

func TestVisibilityDependsOnlyOnDepth(t *testing.T) {
	vp := mgl64.Ident4()
	// Far off-screen in x/y but inside the depth range stays visible.
	assert.True(t, Project(vp, mgl64.Vec3{5, -7, 0.9}, 100, 100).Visible())
	assert.True(t, Project(vp, mgl64.Vec3{0, 0, 1}, 100, 100).Visible())
	assert.False(t, Project(vp, mgl64.Vec3{0, 0, 1.0001}, 100, 100).Visible())

	assert.Equal(t, 0.0, OpacityForDepth(2))
	assert.Equal(t, 1.0, OpacityForDepth(-3))
}

func TestLabelBehindPerspectiveCamera(t *testing.T) {
	view := mgl64.LookAtV(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0})
	proj := mgl64.Perspective(mgl64.DegToRad(75), 1, 0.1, 1000)
	vp := proj.Mul4(view)

	assert.True(t, Project(vp, mgl64.Vec3{0, 0, 0}, 100, 100).Visible())
	assert.False(t, Project(vp, mgl64.Vec3{0, 0, -2000}, 100, 100).Visible(), "beyond far plane")
	assert.False(t, Project(vp, mgl64.Vec3{0, 0, 10}, 100, 100).Visible(), "behind the eye")
}

func TestProjectorFollowsMount(t *testing.T) {
	m := &mount{world: mgl64.Ident4()}
	l := NewLabel("tag", m, 0, 0.5, 0)
	p := NewProjector(l)
	p.Update(mgl64.Ident4(), 200, 200)
	assert.InDelta(t, 100.0, l.Placement.X, 1e-9)
	assert.InDelta(t, 50.0, l.Placement.Y, 1e-9)

	m.world = mgl64.Translate3D(0.5, 0, 0)
	p.Update(mgl64.Ident4(), 200, 200)
	assert.InDelta(t, 150.0, l.Placement.X, 1e-9)
	assert.InDelta(t, 50.0, l.Placement.Y, 1e-9)

	p.Add(NewLabel("second", nil, 0, 0, 0))
	assert.Len(t, p.Labels(), 2)
}

func TestCanvasPrimitives(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 40))
	c := NewCanvas(img)
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	c.FillRect(image.Rect(-10, -10, 5, 5), white)
	assert.Equal(t, white, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(6, 6))

	c.Text(10, 20, "HELLO", white)
	painted := 0
	for y := 0; y < 40; y++ {
		for x := 10; x < 10+c.TextWidth("HELLO"); x++ {
			if img.NRGBAAt(x, y).A > 0 {
				painted++
			}
		}
	}
	assert.Greater(t, painted, 10)
	assert.Equal(t, 35, c.TextWidth("HELLO"))

	c.Dot(80, 20, 4, white)
	assert.Equal(t, uint8(255), img.NRGBAAt(80, 20).A)
	assert.Equal(t, uint8(0), img.NRGBAAt(90, 20).A)

	// Shapes partly off the canvas must not panic.
	assert.NotPanics(t, func() {
		c.Dot(-2, -2, 6, white)
		c.Polyline([][2]float64{{-50, 10}, {150, 30}}, 2, white)
	})
}

func TestDrawLabelsSkipsHidden(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 300, 100))
	c := NewCanvas(img)
	shown := &Label{Text: "shown", Placement: Placement{X: 20, Y: 50, Opacity: 1}}
	hidden := &Label{Text: "hidden", Placement: Placement{X: 150, Y: 50, Opacity: 0}}
	offscreen := &Label{Text: "gone", Placement: Placement{X: -500, Y: -500, Opacity: 1}}

	n := DrawLabels(c, []*Label{shown, hidden, offscreen}, DefaultLabelStyle())
	assert.Equal(t, 1, n)
	assert.NotZero(t, img.NRGBAAt(20, 50).A)
	assert.Zero(t, img.NRGBAAt(150, 50).A)
}

func TestTextPanelLayout(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 640, 480))
	c := NewCanvas(img)
	p := NewTextPanel("Controls")
	p.Lines = []PanelLine{{Text: "Mode: idle"}, {Text: "Head Rotate Y  0.00", Highlight: true}}

	r := p.TopRight(c)
	assert.Equal(t, 620, r.Max.X)
	assert.Equal(t, 20, r.Min.Y)
	_, h := p.Size(c)
	assert.Equal(t, 3*c.LineHeight()+2*p.Padding, h)

	p.Draw(c, r)
	assert.NotZero(t, img.NRGBAAt(r.Min.X+1, r.Min.Y+1).A)
	assert.Zero(t, img.NRGBAAt(r.Min.X-1, r.Min.Y).A)
}

func TestChartHistory(t *testing.T) {
	a, b := NewChart(7), NewChart(7)
	for range 80 {
		a.Push(0.8)
		b.Push(0.8)
	}
	require.Equal(t, a.Samples(), b.Samples())
	for _, v := range a.Samples() {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0+1e-12)
	}

	c := NewChart(1)
	c.Push(0.1)
	s := c.Samples()
	assert.Len(t, s, ChartSamples)
	for _, v := range s[:ChartSamples-1] {
		assert.Zero(t, v)
	}
	assert.Less(t, s[ChartSamples-1], 0.3+1e-12)

	last := s[ChartSamples-1]
	c.Push(0.1)
	assert.Equal(t, last, c.Samples()[ChartSamples-2])
}

func TestChartIdleStaysLow(t *testing.T) {
	c := NewChart(42)
	for range 500 {
		c.Push(0)
		assert.Less(t, c.Samples()[ChartSamples-1], 0.2)
	}
}

func TestChartPoints(t *testing.T) {
	c := NewChart(3)
	r := image.Rect(10, 100, 255, 200)
	pts := c.Points(r)
	require.Len(t, pts, ChartSamples)
	assert.InDelta(t, 10.0, pts[0][0], 1e-9)
	assert.InDelta(t, 255.0, pts[ChartSamples-1][0], 1e-9)
	// Zero history sits Baseline pixels above the bottom edge.
	assert.InDelta(t, 190.0, pts[0][1], 1e-9)

	img := image.NewNRGBA(image.Rect(0, 0, 300, 220))
	c.Draw(NewCanvas(img), r)
	assert.Equal(t, c.Background, img.NRGBAAt(15, 105))
	assert.Equal(t, c.GridColor, img.NRGBAAt(30, 150))
}
