// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"image/color"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/gogpu/gg"

	"github.com/gviegas/cellvis/linear"
	"github.com/gviegas/cellvis/scene"
)

// Renderer draws the actors of a scene from the point
// of view of a camera.
type Renderer struct {
	Background color.RGBA
	Scene      *scene.Scene
	Camera     *Camera
	// Viewport is the normalized display region
	// covered by the renderer, as
	// {xmin, ymin, xmax, ymax} with y pointing up.
	Viewport [4]float64

	lights []Light
	prims  *redblacktree.Tree
	seq    int

	// Scratch buffer for view-space points.
	vpts []linear.V3
}

// NewRenderer creates a renderer covering the whole
// window, with an empty scene, a default camera and
// a headlight.
func NewRenderer() *Renderer {
	return &Renderer{
		Background: color.RGBA{0, 0, 0, 255},
		Scene:      scene.New(),
		Camera:     NewCamera(),
		Viewport:   [4]float64{0, 0, 1, 1},
		lights:     []Light{Headlight()},
		prims:      redblacktree.NewWith(primComparator),
	}
}

// AddActor inserts a into r's scene.
// It returns the node that holds a.
func (r *Renderer) AddActor(a *Actor) *scene.Node {
	return r.Scene.Insert("actor", a)
}

// AddLight adds a light to r.
// It fails if r already has MaxLight lights.
func (r *Renderer) AddLight(l Light) error {
	if len(r.lights) >= MaxLight {
		return errors.New("too many lights").
			WithType(ErrTypeConfig).
			WithTag("max", MaxLight)
	}
	r.lights = append(r.lights, l)
	return nil
}

// RemoveLights removes all lights from r.
func (r *Renderer) RemoveLights() { r.lights = r.lights[:0] }

// Lights returns the number of lights in r.
func (r *Renderer) Lights() int { return len(r.lights) }

// Bounds returns the world bounds of r's visible actors.
func (r *Renderer) Bounds() linear.Box {
	box := linear.Empty()
	r.Scene.Walk(func(n *scene.Node, world *linear.M4) bool {
		if a, ok := n.Data.(*Actor); ok && a.Visible {
			b := a.bounds(world)
			box.Union(&b)
		}
		return true
	})
	return box
}

// ResetCamera repositions r's camera so that all visible
// actors are in view.
func (r *Renderer) ResetCamera() {
	r.Camera.Reset(r.Bounds())
}

// prim is a projected primitive.
type prim struct {
	pts    [][2]float64
	color  color.NRGBA
	fill   bool
	closed bool
	width  float64
}

// primKey orders primitives from far to near.
// View-space z decreases away from the camera.
type primKey struct {
	z   float32
	seq int
}

func primComparator(a, b any) int {
	x, y := a.(primKey), b.(primKey)
	switch {
	case x.z < y.z:
		return -1
	case x.z > y.z:
		return 1
	case x.seq < y.seq:
		return -1
	case x.seq > y.seq:
		return 1
	}
	return 0
}

// Render draws r into dc, whose size is w by h pixels.
func (r *Renderer) Render(dc *gg.Context, w, h int) error {
	x0 := r.Viewport[0] * float64(w)
	x1 := r.Viewport[2] * float64(w)
	y0 := (1 - r.Viewport[3]) * float64(h)
	y1 := (1 - r.Viewport[1]) * float64(h)
	vw, vh := x1-x0, y1-y0
	if vw <= 0 || vh <= 0 {
		return errors.New("empty viewport").
			WithType(ErrTypeConfig).
			WithTag("viewport", r.Viewport)
	}

	dc.SetColor(r.Background)
	dc.DrawRectangle(x0, y0, vw, vh)
	if err := dc.Fill(); err != nil {
		return err
	}

	r.Camera.ResetClippingRange(r.Bounds())
	var view, proj linear.M4
	r.Camera.view(&view)
	r.Camera.projection(&proj, float32(vw/vh))
	dirs := make([]linear.V3, len(r.lights))
	for i := range r.lights {
		dirs[i] = r.lights[i].viewDirection(&view)
	}

	toScreen := func(v *linear.V3) [2]float64 {
		c := linear.Point(v)
		c.Mul(&proj, &c)
		return [2]float64{
			x0 + (float64(c[0]/c[3])+1)/2*vw,
			y0 + (1-float64(c[1]/c[3]))/2*vh,
		}
	}

	r.prims.Clear()
	r.seq = 0
	r.Scene.Walk(func(n *scene.Node, world *linear.M4) bool {
		a, ok := n.Data.(*Actor)
		if !ok || !a.Visible || a.Mesh == nil {
			return true
		}
		var mv linear.M4
		mv.Mul(&view, world)
		r.project(a, &mv, dirs, toScreen)
		return true
	})

	var err error
	for it := r.prims.Iterator(); it.Next(); {
		p := it.Value().(*prim)
		if e := drawPrim(dc, p); e != nil && err == nil {
			err = e
		}
	}
	r.prims.Clear()
	return err
}

func (r *Renderer) push(z float32, p *prim) {
	r.prims.Put(primKey{z, r.seq}, p)
	r.seq++
}

// project transforms the cells of a into view space
// and queues them for drawing.
// Cells with a vertex in front of the near plane
// are culled.
func (r *Renderer) project(a *Actor, mv *linear.M4, dirs []linear.V3, toScreen func(*linear.V3) [2]float64) {
	pd := a.Mesh
	near := -r.Camera.Near
	r.vpts = r.vpts[:0]
	for i := range pd.Points {
		v := linear.Point(&pd.Points[i])
		v.Mul(mv, &v)
		r.vpts = append(r.vpts, linear.V3{v[0], v[1], v[2]})
	}
	prop := &a.Property

	cell := func(ids []int32) (pts [][2]float64, z float32, ok bool) {
		pts = make([][2]float64, len(ids))
		for i, id := range ids {
			v := &r.vpts[id]
			if v[2] > near {
				return nil, 0, false
			}
			pts[i] = toScreen(v)
			z += v[2]
		}
		return pts, z / float32(len(ids)), true
	}

	switch prop.Representation {
	case Surface:
		for _, ids := range pd.Polys {
			pts, z, ok := cell(ids)
			if !ok {
				continue
			}
			n := r.normal(ids)
			k := prop.Ambient
			for i := range r.lights {
				k += prop.Diffuse * r.lights[i].illuminate(&dirs[i], &n)
			}
			r.push(z, &prim{pts: pts, color: prop.shade(k), fill: true, closed: true, width: 0.5})
		}
		for _, l := range pd.Lines {
			pts, z, ok := cell(l[:])
			if !ok {
				continue
			}
			r.push(z, &prim{pts: pts, color: prop.shade(1), width: prop.LineWidth})
		}

	case Wireframe:
		for _, ids := range pd.Polys {
			pts, z, ok := cell(ids)
			if !ok {
				continue
			}
			r.push(z, &prim{pts: pts, color: prop.shade(1), closed: true, width: prop.LineWidth})
		}
		for _, l := range pd.Lines {
			pts, z, ok := cell(l[:])
			if !ok {
				continue
			}
			r.push(z, &prim{pts: pts, color: prop.shade(1), width: prop.LineWidth})
		}

	case Points:
		for i := range r.vpts {
			v := &r.vpts[i]
			if v[2] > near {
				continue
			}
			r.push(v[2], &prim{pts: [][2]float64{toScreen(v)}, color: prop.shade(1), width: prop.PointSize})
		}
	}
}

// normal computes the view-space normal of a polygon
// using Newell's method.
func (r *Renderer) normal(ids []int32) (n linear.V3) {
	for i, id := range ids {
		c := &r.vpts[id]
		d := &r.vpts[ids[(i+1)%len(ids)]]
		n[0] += (c[1] - d[1]) * (c[2] + d[2])
		n[1] += (c[2] - d[2]) * (c[0] + d[0])
		n[2] += (c[0] - d[0]) * (c[1] + d[1])
	}
	n.Norm(&n)
	return
}

func drawPrim(dc *gg.Context, p *prim) error {
	dc.SetColor(p.color)
	if len(p.pts) == 1 {
		dc.DrawCircle(p.pts[0][0], p.pts[0][1], p.width/2)
		return dc.Fill()
	}
	dc.MoveTo(p.pts[0][0], p.pts[0][1])
	for _, q := range p.pts[1:] {
		dc.LineTo(q[0], q[1])
	}
	if p.closed {
		dc.ClosePath()
	}
	dc.SetLineWidth(p.width)
	if p.fill {
		if err := dc.FillPreserve(); err != nil {
			dc.ClearPath()
			return err
		}
	}
	return dc.Stroke()
}
