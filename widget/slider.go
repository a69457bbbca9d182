// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package widget implements interactive 2D widgets drawn
// as window overlays.
package widget

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"github.com/gviegas/cellvis/colors"
	"github.com/gviegas/cellvis/engine"
)

// Style configures the colors of a slider.
type Style struct {
	Knob     color.RGBA
	Tube     color.RGBA
	Cap      color.RGBA
	Label    color.RGBA
	Title    color.RGBA
	Selected color.RGBA
}

// DefaultStyle returns a Peru knob over a Teal tube, with
// Silver text and a DeepPink selection color.
func DefaultStyle() Style {
	return Style{
		Knob:     colors.MustLookup("Peru"),
		Tube:     colors.MustLookup("Teal"),
		Cap:      colors.MustLookup("Teal"),
		Label:    colors.MustLookup("Silver"),
		Title:    colors.MustLookup("Silver"),
		Selected: colors.MustLookup("DeepPink"),
	}
}

// State identifies the part of a slider under the pointer.
type State int

// Slider parts.
const (
	Outside State = iota
	Tube
	LeftCap
	RightCap
	Slider
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Outside:
		return "Outside"
	case Tube:
		return "Tube"
	case LeftCap:
		return "LeftCap"
	case RightCap:
		return "RightCap"
	case Slider:
		return "Slider"
	default:
		return "[!] invalid State value"
	}
}

// SliderRepresentation is the geometry and value of a
// slider.
// Point1 and Point2 are the end points of the slider in
// normalized display coordinates (y pointing up). The
// lengths and widths of its parts are fractions of the
// distance between the end points.
type SliderRepresentation struct {
	Title string
	// LabelFormat formats the value label.
	// An empty string hides the label.
	LabelFormat  string
	Point1       [2]float64
	Point2       [2]float64
	SliderLength float64
	SliderWidth  float64
	EndCapLength float64
	EndCapWidth  float64
	TubeWidth    float64
	Style        Style

	min, max    float64
	value       float64
	highlighted bool
}

// NewSliderRepresentation creates a horizontal slider in
// the range [0, 1].
func NewSliderRepresentation() *SliderRepresentation {
	return &SliderRepresentation{
		LabelFormat:  "%0.3g",
		Point1:       [2]float64{0.2, 0.1},
		Point2:       [2]float64{0.8, 0.1},
		SliderLength: 0.05,
		SliderWidth:  0.05,
		EndCapLength: 0.025,
		EndCapWidth:  0.05,
		TubeWidth:    0.025,
		Style:        DefaultStyle(),
		max:          1,
	}
}

// SetRange sets the minimum and maximum values.
// The bounds are swapped if lo > hi. The current
// value is clamped to the new range.
func (r *SliderRepresentation) SetRange(lo, hi float64) {
	if lo > hi {
		lo, hi = hi, lo
	}
	r.min, r.max = lo, hi
	r.SetValue(r.value)
}

// Range returns the minimum and maximum values.
func (r *SliderRepresentation) Range() (lo, hi float64) { return r.min, r.max }

// SetValue sets the value, clamped to the range.
// NaN is ignored.
func (r *SliderRepresentation) SetValue(v float64) {
	if math.IsNaN(v) {
		return
	}
	r.value = math.Max(r.min, math.Min(v, r.max))
}

// Value returns the current value.
func (r *SliderRepresentation) Value() float64 { return r.value }

// Highlight toggles the selected color of the knob.
func (r *SliderRepresentation) Highlight(on bool) { r.highlighted = on }

// t returns the normalized position of the value
// along the tube.
func (r *SliderRepresentation) t() float64 {
	if r.max == r.min {
		return 0
	}
	return (r.value - r.min) / (r.max - r.min)
}

// setT sets the value from a normalized position.
func (r *SliderRepresentation) setT(t float64) {
	r.SetValue(r.min + math.Max(0, math.Min(t, 1))*(r.max-r.min))
}

// frame holds the pixel geometry of a slider.
type frame struct {
	p1     [2]float64
	u, n   [2]float64 // axis and normal
	length float64
	t0, t1 float64 // tube extent along the axis
}

func (r *SliderRepresentation) frame(w, h int) (f frame) {
	f.p1 = [2]float64{r.Point1[0] * float64(w), (1 - r.Point1[1]) * float64(h)}
	p2 := [2]float64{r.Point2[0] * float64(w), (1 - r.Point2[1]) * float64(h)}
	d := [2]float64{p2[0] - f.p1[0], p2[1] - f.p1[1]}
	f.length = math.Hypot(d[0], d[1])
	if f.length == 0 {
		f.u = [2]float64{1, 0}
	} else {
		f.u = [2]float64{d[0] / f.length, d[1] / f.length}
	}
	f.n = [2]float64{-f.u[1], f.u[0]}
	f.t0 = r.EndCapLength * f.length
	f.t1 = f.length - f.t0
	return
}

// at returns the point at distance s along the axis and
// distance o along the normal.
func (f *frame) at(s, o float64) [2]float64 {
	return [2]float64{
		f.p1[0] + s*f.u[0] + o*f.n[0],
		f.p1[1] + s*f.u[1] + o*f.n[1],
	}
}

// local returns the axis and normal distances of a pixel.
func (f *frame) local(x, y float64) (s, o float64) {
	dx, dy := x-f.p1[0], y-f.p1[1]
	return dx*f.u[0] + dy*f.u[1], dx*f.n[0] + dy*f.n[1]
}

// knob returns the distance along the axis of the knob's
// center.
func (r *SliderRepresentation) knob(f *frame) float64 {
	return f.t0 + r.t()*(f.t1-f.t0)
}

// InteractionState returns the part of r under the
// normalized display position (x, y), for a window of
// w by h pixels.
func (r *SliderRepresentation) InteractionState(x, y float64, w, h int) State {
	f := r.frame(w, h)
	s, o := f.local(x*float64(w), (1-y)*float64(h))
	o = math.Abs(o)
	k := r.knob(&f)
	if math.Abs(s-k) <= r.SliderLength*f.length/2 && o <= r.SliderWidth*f.length/2 {
		return Slider
	}
	switch cw := r.EndCapWidth * f.length / 2; {
	case s >= 0 && s < f.t0 && o <= cw:
		return LeftCap
	case s > f.t1 && s <= f.length && o <= cw:
		return RightCap
	}
	if s >= f.t0 && s <= f.t1 && o <= math.Max(r.TubeWidth, r.SliderWidth)*f.length/2 {
		return Tube
	}
	return Outside
}

// PickValue returns the value that corresponds to the
// normalized display position (x, y).
// Positions beyond the tube yield the bounds of the range.
func (r *SliderRepresentation) PickValue(x, y float64, w, h int) float64 {
	f := r.frame(w, h)
	s, _ := f.local(x*float64(w), (1-y)*float64(h))
	t := 0.0
	if f.t1 > f.t0 {
		t = (s - f.t0) / (f.t1 - f.t0)
	}
	t = math.Max(0, math.Min(t, 1))
	return r.min + t*(r.max-r.min)
}

func (f *frame) rect(dc *gg.Context, s0, s1, halfWidth float64) {
	a := f.at(s0, -halfWidth)
	b := f.at(s1, -halfWidth)
	c := f.at(s1, halfWidth)
	d := f.at(s0, halfWidth)
	dc.MoveTo(a[0], a[1])
	dc.LineTo(b[0], b[1])
	dc.LineTo(c[0], c[1])
	dc.LineTo(d[0], d[1])
	dc.ClosePath()
}

// Draw draws the tube, end caps and knob of r.
// It implements engine.Overlay.
func (r *SliderRepresentation) Draw(dc *gg.Context, w, h int) error {
	f := r.frame(w, h)
	if f.length == 0 {
		return nil
	}
	parts := [...]struct {
		s0, s1, hw float64
		color      color.RGBA
	}{
		{f.t0, f.t1, r.TubeWidth * f.length / 2, r.Style.Tube},
		{0, f.t0, r.EndCapWidth * f.length / 2, r.Style.Cap},
		{f.t1, f.length, r.EndCapWidth * f.length / 2, r.Style.Cap},
		{},
	}
	k := r.knob(&f)
	kl := r.SliderLength * f.length / 2
	parts[3].s0, parts[3].s1 = k-kl, k+kl
	parts[3].hw = r.SliderWidth * f.length / 2
	parts[3].color = r.Style.Knob
	if r.highlighted {
		parts[3].color = r.Style.Selected
	}
	for _, p := range parts {
		if p.s1 <= p.s0 || p.hw <= 0 {
			continue
		}
		dc.SetColor(p.color)
		f.rect(dc, p.s0, p.s1, p.hw)
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	return nil
}

// Labels returns the title and value labels of r.
// The title is placed below the tube and the value
// label above the knob.
// It implements engine.Overlay.
func (r *SliderRepresentation) Labels(w, h int) []engine.Label {
	f := r.frame(w, h)
	_, th := engine.MeasureLabel("M")
	off := math.Max(r.SliderWidth, r.EndCapWidth)*f.length/2 + float64(th)
	var ls []engine.Label
	if r.Title != "" {
		p := f.at(f.length/2, off)
		ls = append(ls, engine.Label{X: p[0], Y: p[1], Text: r.Title, Color: r.Style.Title})
	}
	if r.LabelFormat != "" {
		p := f.at(r.knob(&f), -off)
		ls = append(ls, engine.Label{X: p[0], Y: p[1], Text: fmt.Sprintf(r.LabelFormat, r.value), Color: r.Style.Label})
	}
	return ls
}
