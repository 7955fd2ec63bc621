package overlay

import (
	"image"
	"image/color"
	"math/rand/v2"
)

// ChartSamples is the length of the rolling activity history.
const ChartSamples = 50

// Chart is a rolling line chart of pseudo-random "neural" activity. Each Push shifts the
// history by one sample; the amplitude of random spikes follows the activity level.
type Chart struct {
	history [ChartSamples]float64 // fraction of chart height
	rng     *rand.Rand

	GridStep   int
	LineWidth  float64
	Baseline   float64
	Background color.NRGBA
	GridColor  color.NRGBA
	LineColor  color.NRGBA
	GlowColor  color.NRGBA
}

// NewChart creates a chart whose noise is driven by a PCG source seeded with seed.
//
// Parameters:
//   - seed: the noise seed; equal seeds give equal histories
//
// Returns:
//   - *Chart: the chart with an all-zero history
func NewChart(seed uint64) *Chart {
	return &Chart{
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		GridStep:   20,
		LineWidth:  2,
		Baseline:   10,
		Background: color.NRGBA{R: 0x05, G: 0x05, B: 0x05, A: 0xff},
		GridColor:  color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff},
		LineColor:  color.NRGBA{R: 0x00, G: 0xd4, B: 0xff, A: 0xff},
		GlowColor:  color.NRGBA{R: 0x00, G: 0xd4, B: 0xff, A: 0x40},
	}
}

// Push drops the oldest sample and appends a new one. One in five samples (on average)
// carries a spike of up to activity; every sample has up to 0.2 of background noise.
//
// Parameters:
//   - activity: spike amplitude as a fraction of chart height
func (c *Chart) Push(activity float64) {
	spike := 0.0
	if c.rng.Float64() > 0.8 {
		spike = c.rng.Float64() * activity
	}
	v := c.rng.Float64()*0.2 + spike
	copy(c.history[:], c.history[1:])
	c.history[ChartSamples-1] = v
}

// Samples returns a copy of the history, oldest first.
func (c *Chart) Samples() []float64 {
	out := make([]float64, ChartSamples)
	copy(out, c.history[:])
	return out
}

// Points maps the history into r: evenly spaced in x, value measured up from Baseline pixels
// above the bottom edge and clamped to r.
func (c *Chart) Points(r image.Rectangle) [][2]float64 {
	w, h := float64(r.Dx()), float64(r.Dy())
	step := w / float64(ChartSamples-1)
	pts := make([][2]float64, ChartSamples)
	for i, v := range c.history {
		y := float64(r.Max.Y) - v*h - c.Baseline
		y = max(float64(r.Min.Y), min(float64(r.Max.Y), y))
		pts[i] = [2]float64{float64(r.Min.X) + float64(i)*step, y}
	}
	return pts
}

// Draw paints the chart background, grid and line into r.
func (c *Chart) Draw(cv *Canvas, r image.Rectangle) {
	cv.FillRect(r, c.Background)
	if c.GridStep > 0 {
		for x := r.Min.X; x < r.Max.X; x += c.GridStep {
			cv.FillRect(image.Rect(x, r.Min.Y, x+1, r.Max.Y), c.GridColor)
		}
		for y := r.Min.Y; y < r.Max.Y; y += c.GridStep {
			cv.FillRect(image.Rect(r.Min.X, y, r.Max.X, y+1), c.GridColor)
		}
	}
	pts := c.Points(r)
	cv.Polyline(pts, c.LineWidth*3, c.GlowColor)
	cv.Polyline(pts, c.LineWidth, c.LineColor)
}
