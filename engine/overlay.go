// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Overlay is the interface that 2D elements drawn on top
// of the renderers must implement.
// Draw is called once per frame, after every renderer
// was drawn. Labels are drawn last.
type Overlay interface {
	Draw(dc *gg.Context, w, h int) error
	Labels(w, h int) []Label
}

// Label is a line of text to be drawn in a window.
// X and Y are pixel coordinates of the label's center,
// with y pointing down.
type Label struct {
	X, Y  float64
	Text  string
	Color color.RGBA
}

// labelFace is the face used to draw labels.
var labelFace font.Face = basicfont.Face7x13

// MeasureLabel returns the size of s in pixels when drawn
// as a label.
func MeasureLabel(s string) (w, h int) {
	adv := font.MeasureString(labelFace, s)
	m := labelFace.Metrics()
	return adv.Ceil(), (m.Ascent + m.Descent).Ceil()
}

// drawLabels draws ls into dst.
func drawLabels(dst *image.RGBA, ls []Label) {
	m := labelFace.Metrics()
	for _, l := range ls {
		if l.Text == "" {
			continue
		}
		adv := font.MeasureString(labelFace, l.Text)
		x := fixed.Int26_6(l.X*64) - adv/2
		y := fixed.Int26_6(l.Y*64) + (m.Ascent-m.Descent)/2
		d := &font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(l.Color),
			Face: labelFace,
			Dot:  fixed.Point26_6{X: x, Y: y},
		}
		d.DrawString(l.Text)
	}
}
