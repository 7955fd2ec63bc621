package overlay

import (
	"image"
	"image/color"
)

// PanelLine is one row of a text panel.
type PanelLine struct {
	Text      string
	Highlight bool
}

// TextPanel is a boxed block of text rows anchored to a canvas corner.
type TextPanel struct {
	Title string
	Lines []PanelLine

	Margin     int
	Padding    int
	MinWidth   int
	Background color.NRGBA
	Border     color.NRGBA
	TitleColor color.NRGBA
	TextColor  color.NRGBA
	HighColor  color.NRGBA
}

// NewTextPanel returns a panel with the overlay's default colors.
func NewTextPanel(title string) *TextPanel {
	return &TextPanel{
		Title:      title,
		Margin:     20,
		Padding:    8,
		MinWidth:   220,
		Background: color.NRGBA{R: 0x05, G: 0x05, B: 0x05, A: 0xd0},
		Border:     color.NRGBA{R: 0x00, G: 0xd4, B: 0xff, A: 0x60},
		TitleColor: color.NRGBA{R: 0x00, G: 0xd4, B: 0xff, A: 0xff},
		TextColor:  color.NRGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff},
		HighColor:  color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

// Size returns the panel's pixel size for canvas c.
func (p *TextPanel) Size(c *Canvas) (w, h int) {
	w = c.TextWidth(p.Title)
	for _, l := range p.Lines {
		w = max(w, c.TextWidth("> "+l.Text))
	}
	w = max(w+2*p.Padding, p.MinWidth)
	rows := len(p.Lines)
	if p.Title != "" {
		rows++
	}
	return w, rows*c.LineHeight() + 2*p.Padding
}

// TopRight returns the panel rectangle anchored Margin pixels from the canvas's top-right corner.
func (p *TextPanel) TopRight(c *Canvas) image.Rectangle {
	w, h := p.Size(c)
	b := c.Bounds()
	return image.Rect(b.Max.X-p.Margin-w, b.Min.Y+p.Margin, b.Max.X-p.Margin, b.Min.Y+p.Margin+h)
}

// Draw renders the panel into r. Highlighted rows get a marker and a brighter color.
func (p *TextPanel) Draw(c *Canvas, r image.Rectangle) {
	c.FillRect(r, p.Background)
	c.StrokeRect(r, p.Border)

	x := r.Min.X + p.Padding
	y := r.Min.Y + p.Padding + c.Ascent()
	if p.Title != "" {
		c.Text(x, y, p.Title, p.TitleColor)
		y += c.LineHeight()
	}
	for _, l := range p.Lines {
		if l.Highlight {
			c.Text(x, y, "> "+l.Text, p.HighColor)
		} else {
			c.Text(x, y, "  "+l.Text, p.TextColor)
		}
		y += c.LineHeight()
	}
}
