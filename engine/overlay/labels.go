package overlay

import (
	"image"
	"image/color"
	"math"
)

// LabelStyle controls how DrawLabels renders annotations.
type LabelStyle struct {
	DotRadius  float64
	DotColor   color.NRGBA
	TextColor  color.NRGBA
	Background color.NRGBA
	Border     color.NRGBA
	OffsetX    int
	OffsetY    int
	Padding    int
}

// DefaultLabelStyle is a cyan dot with a dark tag to its right.
func DefaultLabelStyle() LabelStyle {
	return LabelStyle{
		DotRadius:  3,
		DotColor:   color.NRGBA{R: 0x00, G: 0xd4, B: 0xff, A: 0xff},
		TextColor:  color.NRGBA{R: 0xe0, G: 0xf8, B: 0xff, A: 0xff},
		Background: color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xb0},
		Border:     color.NRGBA{R: 0x00, G: 0xd4, B: 0xff, A: 0x80},
		OffsetX:    10,
		OffsetY:    -8,
		Padding:    4,
	}
}

// LabelRect returns the tag rectangle DrawLabels would use for l.
func LabelRect(c *Canvas, l *Label, style LabelStyle) image.Rectangle {
	x := int(math.Round(l.Placement.X)) + style.OffsetX
	y := int(math.Round(l.Placement.Y)) + style.OffsetY
	w := c.TextWidth(l.Text) + 2*style.Padding
	h := c.LineHeight() + 2*style.Padding
	return image.Rect(x, y-h/2, x+w, y-h/2+h)
}

// DrawLabels draws every visible label: a dot on the anchor and a tag beside it.
// Labels with zero opacity are skipped; labels off the canvas are clipped by the canvas.
//
// Parameters:
//   - c: the canvas to draw on
//   - labels: the projected labels
//   - style: colors and offsets
//
// Returns:
//   - int: the number of labels drawn
func DrawLabels(c *Canvas, labels []*Label, style LabelStyle) int {
	drawn := 0
	for _, l := range labels {
		if !l.Placement.Visible() {
			continue
		}
		r := LabelRect(c, l, style)
		if !r.Overlaps(c.Bounds()) && !image.Pt(int(l.Placement.X), int(l.Placement.Y)).In(c.Bounds()) {
			continue
		}
		c.Dot(l.Placement.X, l.Placement.Y, style.DotRadius, style.DotColor)
		c.FillRect(r, style.Background)
		c.StrokeRect(r, style.Border)
		c.Text(r.Min.X+style.Padding, r.Min.Y+style.Padding+c.Ascent(), l.Text, style.TextColor)
		drawn++
	}
	return drawn
}
