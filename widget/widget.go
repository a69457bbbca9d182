// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package widget

import (
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/gogpu/gg"

	"github.com/gviegas/cellvis/engine"
	"github.com/gviegas/cellvis/interactor"
)

// WidgetState is the interaction state of a widget.
type WidgetState int

// Widget states.
const (
	Start WidgetState = iota
	Selected
	Animating
)

// String implements fmt.Stringer.
func (s WidgetState) String() string {
	switch s {
	case Start:
		return "Start"
	case Selected:
		return "Selected"
	case Animating:
		return "Animating"
	default:
		return "[!] invalid WidgetState value"
	}
}

// AnimationMode selects what a press on the tube does.
type AnimationMode int

// Animation modes.
const (
	// AnimateOff ignores presses on the tube.
	AnimateOff AnimationMode = iota
	// AnimateJump moves the knob to the press
	// and selects it.
	AnimateJump
	// AnimateSteps moves the knob to the press
	// in NumberOfAnimationSteps increments.
	AnimateSteps
)

// Size is the interface that provides the size of the
// window a widget is drawn into.
type Size interface {
	Size() (width, height int)
}

// SliderWidget handles pointer events for a slider
// representation.
// Handlers run on the interactor's goroutine, and
// observers are called synchronously from them.
type SliderWidget struct {
	Rep                    *SliderRepresentation
	Mode                   AnimationMode
	NumberOfAnimationSteps int
	Enabled                bool

	win       Size
	state     WidgetState
	observers []func(value float64)
}

// NewSliderWidget creates an enabled slider widget in
// AnimateSteps mode, drawn into win.
func NewSliderWidget(rep *SliderRepresentation, win Size) *SliderWidget {
	return &SliderWidget{
		Rep:                    rep,
		Mode:                   AnimateSteps,
		NumberOfAnimationSteps: 24,
		Enabled:                true,
		win:                    win,
	}
}

// Attach registers w with the interactor and adds its
// representation to win's overlays.
func (w *SliderWidget) Attach(i *interactor.Interactor, win interface{ AddOverlay(engine.Overlay) }) {
	i.AddPointerHandler(w)
	i.AddValueHandler(w)
	win.AddOverlay(w)
}

// OnInteraction adds an observer that is called with the
// new value whenever an interaction sets it.
func (w *SliderWidget) OnInteraction(f func(value float64)) {
	w.observers = append(w.observers, f)
}

// SetRange sets the range of w's representation.
func (w *SliderWidget) SetRange(lo, hi float64) { w.Rep.SetRange(lo, hi) }

// SetValue sets the value of w's representation without
// calling the observers.
func (w *SliderWidget) SetValue(v float64) { w.Rep.SetValue(v) }

// State returns the interaction state of w.
func (w *SliderWidget) State() WidgetState { return w.state }

func (w *SliderWidget) fire() {
	v := w.Rep.Value()
	for _, f := range w.observers {
		f(v)
	}
}

// PointerButton implements interactor.PointerHandler.
func (w *SliderWidget) PointerButton(btn interactor.Button, pressed bool, x, y float64) {
	if !w.Enabled || btn != interactor.BtnLeft {
		return
	}
	if !pressed {
		if w.state == Selected {
			w.Rep.Highlight(false)
			w.state = Start
		}
		return
	}
	if w.state != Start {
		return
	}
	width, height := w.win.Size()
	part := w.Rep.InteractionState(x, y, width, height)
	switch part {
	case Slider:
		w.state = Selected
		w.Rep.Highlight(true)
	case Tube, LeftCap, RightCap:
		target := w.Rep.PickValue(x, y, width, height)
		switch part {
		case LeftCap:
			target, _ = w.Rep.Range()
		case RightCap:
			_, target = w.Rep.Range()
		}
		switch w.Mode {
		case AnimateJump:
			w.Rep.SetValue(target)
			w.fire()
			w.state = Selected
			w.Rep.Highlight(true)
		case AnimateSteps:
			w.animate(target)
		}
	}
	logs.WithTag("part", part.String()).
		WithTag("state", w.state.String()).
		Debug("slider pressed")
}

// animate moves the value to target in steps, calling the
// observers after every step.
func (w *SliderWidget) animate(target float64) {
	w.state = Animating
	n := max(w.NumberOfAnimationSteps, 1)
	lo, hi := w.Rep.Range()
	from := w.Rep.t()
	to := 0.0
	if hi > lo {
		to = (target - lo) / (hi - lo)
	}
	for i := 1; i <= n; i++ {
		w.Rep.setT(from + (to-from)*float64(i)/float64(n))
		w.fire()
	}
	w.state = Start
}

// PointerMotion implements interactor.PointerHandler.
func (w *SliderWidget) PointerMotion(x, y float64) {
	if !w.Enabled || w.state != Selected {
		return
	}
	width, height := w.win.Size()
	w.Rep.SetValue(w.Rep.PickValue(x, y, width, height))
	w.fire()
}

// ValueEvent implements interactor.ValueHandler.
// It sets the value directly and calls the observers.
func (w *SliderWidget) ValueEvent(v float64) {
	if !w.Enabled {
		return
	}
	w.Rep.SetValue(v)
	w.fire()
}

// Draw implements engine.Overlay.
// Disabled widgets are not drawn.
func (w *SliderWidget) Draw(dc *gg.Context, width, height int) error {
	if !w.Enabled {
		return nil
	}
	return w.Rep.Draw(dc, width, height)
}

// Labels implements engine.Overlay.
func (w *SliderWidget) Labels(width, height int) []engine.Label {
	if !w.Enabled {
		return nil
	}
	return w.Rep.Labels(width, height)
}
