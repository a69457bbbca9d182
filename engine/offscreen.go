// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/gogpu/gg"
	"golang.org/x/image/bmp"
)

// Offscreen is a window that renders into memory.
type Offscreen struct {
	width, height int
	dc            *gg.Context
	renderers     []*Renderer
	overlays      []Overlay
	img           *image.RGBA
	frames        int
	sink          func(frame int, img image.Image) error
	err           error
}

// NewOffscreen creates an off-screen window of the given
// size in pixels.
func NewOffscreen(width, height int) (*Offscreen, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("invalid window size").
			WithType(ErrTypeConfig).
			WithTag("width", width).
			WithTag("height", height)
	}
	return &Offscreen{
		width:  width,
		height: height,
		dc:     gg.NewContext(width, height),
	}, nil
}

// Size returns the size of w in pixels.
func (w *Offscreen) Size() (width, height int) { return w.width, w.height }

// AddRenderer adds r to w.
// Renderers are drawn in the order they were added.
func (w *Offscreen) AddRenderer(r *Renderer) error {
	if len(w.renderers) >= MaxRenderer {
		return errors.New("too many renderers").
			WithType(ErrTypeConfig).
			WithTag("max", MaxRenderer)
	}
	w.renderers = append(w.renderers, r)
	return nil
}

// Renderers returns the renderers of w.
func (w *Offscreen) Renderers() []*Renderer { return w.renderers }

// AddOverlay adds o to w.
func (w *Offscreen) AddOverlay(o Overlay) { w.overlays = append(w.overlays, o) }

// SetSink sets a function to be called with every
// rendered frame.
// Frames are numbered from zero.
func (w *Offscreen) SetSink(f func(frame int, img image.Image) error) { w.sink = f }

// Render draws a new frame.
func (w *Offscreen) Render() error {
	w.dc.ClearWithColor(gg.RGB(0, 0, 0))
	for i, r := range w.renderers {
		if err := r.Render(w.dc, w.width, w.height); err != nil {
			return errors.New("rendering failed").
				WithType(ErrTypeOutput).
				WithTag("renderer", i).
				Wrap(err)
		}
	}
	var labels []Label
	for _, o := range w.overlays {
		if err := o.Draw(w.dc, w.width, w.height); err != nil {
			return errors.New("drawing overlay failed").
				WithType(ErrTypeOutput).
				Wrap(err)
		}
		labels = append(labels, o.Labels(w.width, w.height)...)
	}
	w.img = w.dc.Image().(*image.RGBA)
	drawLabels(w.img, labels)

	frame := w.frames
	w.frames++
	logs.WithTag("frame", frame).
		WithTag("renderers", len(w.renderers)).
		WithTag("overlays", len(w.overlays)).
		Debug("frame rendered")

	if w.sink != nil {
		if err := w.sink(frame, w.img); err != nil {
			return errors.New("frame sink failed").
				WithType(ErrTypeOutput).
				WithTag("frame", frame).
				Wrap(err)
		}
	}
	return nil
}

// Redraw renders a new frame.
// A failure is logged and recorded in w.Err.
func (w *Offscreen) Redraw() {
	if err := w.Render(); err != nil {
		logs.Warn(err)
		w.err = err
	}
}

// Err returns the most recent error that happened
// during Redraw.
func (w *Offscreen) Err() error { return w.err }

// Frames returns the number of frames rendered so far.
func (w *Offscreen) Frames() int { return w.frames }

// Image returns the most recent frame, or nil if no
// frame was rendered.
func (w *Offscreen) Image() *image.RGBA { return w.img }

// Save writes the most recent frame to a file.
// The format is chosen from the file extension
// (.png or .bmp).
func (w *Offscreen) Save(path string) error {
	if w.img == nil {
		return errors.New("no frame rendered").WithType(ErrTypeOutput)
	}
	return SaveImage(path, w.img)
}

// SaveImage writes img to a file whose format is chosen
// from the file extension (.png or .bmp).
func SaveImage(path string, img image.Image) error {
	var encode func(f *os.File) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		encode = func(f *os.File) error { return png.Encode(f, img) }
	case ".bmp":
		encode = func(f *os.File) error { return bmp.Encode(f, img) }
	default:
		return errors.New("unsupported image format").
			WithType(ErrTypeOutput).
			WithTag("ext", ext)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.New("creating image file failed").
			WithType(ErrTypeOutput).
			WithTag("path", path).
			Wrap(err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return errors.New("encoding image failed").
			WithType(ErrTypeOutput).
			WithTag("path", path).
			Wrap(err)
	}
	return f.Close()
}

// Close releases w's drawing context.
func (w *Offscreen) Close() error { return w.dc.Close() }
