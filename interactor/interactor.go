// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package interactor provides the event loop that drives
// interaction with a window.
// Events are queued with Push and delivered one at a time
// by Start, on the goroutine that called it. A handler
// always runs to completion before the next event is
// delivered.
package interactor

import (
	"context"

	"github.com/aukilabs/go-tooling/pkg/logs"

	"github.com/gviegas/cellvis/engine"
)

// Window is the interface that defines a window
// driven by an interactor.
type Window interface {
	// Size returns the window's size in pixels.
	Size() (width, height int)

	// Redraw renders a new frame.
	Redraw()

	// Renderers returns the window's renderers.
	Renderers() []*engine.Renderer
}

// Kind is the type of events.
type Kind int

// Event kinds.
const (
	PointerPress Kind = iota
	PointerRelease
	PointerMove
	KeyPress
	KeyRelease
	// Value requests a widget to take a value
	// directly.
	Value
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case PointerPress:
		return "press"
	case PointerRelease:
		return "release"
	case PointerMove:
		return "move"
	case KeyPress:
		return "key"
	case KeyRelease:
		return "key release"
	case Value:
		return "value"
	default:
		return "[!] invalid Kind value"
	}
}

// Event is an input event.
// X and Y are normalized display coordinates, with the
// origin at the bottom left corner of the window.
type Event struct {
	Kind   Kind
	X, Y   float64
	Button Button
	Key    Key
	Value  float64
}

// Button is the type of pointer buttons.
type Button int

// Pointer buttons.
const (
	BtnUnknown Button = iota
	BtnLeft
	BtnRight
	BtnMiddle
)

// PointerHandler is the interface that defines the methods
// for handling pointer events.
type PointerHandler interface {
	// PointerButton is called when a button is pressed/released.
	PointerButton(btn Button, pressed bool, x, y float64)

	// PointerMotion is called when the pointer changes position.
	PointerMotion(x, y float64)
}

// KeyboardHandler is the interface that defines the methods
// for handling keyboard events.
type KeyboardHandler interface {
	// KeyboardKey is called when a key is pressed/released.
	KeyboardKey(key Key, pressed bool)
}

// ValueHandler is the interface that defines the method
// for handling Value events.
type ValueHandler interface {
	// ValueEvent is called with the requested value.
	ValueEvent(v float64)
}

// Interactor delivers events to handlers.
type Interactor struct {
	Window Window

	pointer  []PointerHandler
	keyboard []KeyboardHandler
	value    []ValueHandler
	queue    []Event
	done     bool
}

// New creates an interactor for win.
func New(win Window) *Interactor { return &Interactor{Window: win} }

// AddPointerHandler adds a pointer handler.
func (i *Interactor) AddPointerHandler(h PointerHandler) { i.pointer = append(i.pointer, h) }

// AddKeyboardHandler adds a keyboard handler.
func (i *Interactor) AddKeyboardHandler(h KeyboardHandler) { i.keyboard = append(i.keyboard, h) }

// AddValueHandler adds a value handler.
func (i *Interactor) AddValueHandler(h ValueHandler) { i.value = append(i.value, h) }

// Push queues events for delivery.
func (i *Interactor) Push(evs ...Event) { i.queue = append(i.queue, evs...) }

// Pending returns the number of queued events.
func (i *Interactor) Pending() int { return len(i.queue) }

// Stop makes Start return after the current event.
func (i *Interactor) Stop() { i.done = true }

// Start delivers queued events until the queue is empty,
// Stop is called, a KeyQ or KeyEsc press is delivered or
// ctx is done.
// Events pushed by handlers are delivered in the same
// call.
// KeyR presses reset the camera of the window's first
// renderer and redraw the window.
func (i *Interactor) Start(ctx context.Context) error {
	i.done = false
	n := 0
	for len(i.queue) > 0 && !i.done {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev := i.queue[0]
		i.queue = i.queue[1:]
		i.dispatch(ev)
		n++
	}
	logs.WithTag("events", n).
		WithTag("pending", len(i.queue)).
		Debug("interactor stopped")
	return nil
}

func (i *Interactor) dispatch(ev Event) {
	switch ev.Kind {
	case PointerPress, PointerRelease:
		btn := ev.Button
		if btn == BtnUnknown {
			btn = BtnLeft
		}
		for _, h := range i.pointer {
			h.PointerButton(btn, ev.Kind == PointerPress, ev.X, ev.Y)
		}
	case PointerMove:
		for _, h := range i.pointer {
			h.PointerMotion(ev.X, ev.Y)
		}
	case KeyPress, KeyRelease:
		pressed := ev.Kind == KeyPress
		for _, h := range i.keyboard {
			h.KeyboardKey(ev.Key, pressed)
		}
		if !pressed {
			break
		}
		switch ev.Key {
		case KeyQ, KeyEsc:
			i.done = true
		case KeyR:
			if rs := i.Window.Renderers(); len(rs) > 0 {
				rs[0].ResetCamera()
			}
			i.Window.Redraw()
		}
	case Value:
		for _, h := range i.value {
			h.ValueEvent(ev.Value)
		}
	default:
		logs.WithTag("kind", int(ev.Kind)).Warn("unknown event kind")
	}
}
