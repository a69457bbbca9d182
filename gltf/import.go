// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"

	"github.com/gviegas/cellvis/internal/bitvec"
	"github.com/gviegas/cellvis/linear"
	"github.com/gviegas/cellvis/mesh"
)

// Load reads a .gltf or .glb file and flattens its
// triangle geometry into poly data.
// Buffers that refer to files are resolved relative to
// the directory of path.
func Load(path string) (*mesh.PolyData, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("reading glTF file failed").
			WithType(ErrTypeInvalid).
			WithTag("path", path).
			Wrap(err)
	}
	var (
		gltf *GLTF
		bin  []byte
	)
	if IsGLB(bytes.NewReader(b)) {
		gltf, bin, err = DecodeGLB(bytes.NewReader(b))
	} else {
		gltf, err = Decode(bytes.NewReader(b))
	}
	if err != nil {
		return nil, err
	}
	return Import(gltf, bin, filepath.Dir(path))
}

// Import flattens the triangle geometry of gltf into
// poly data.
// bin is the payload of the GLB BIN chunk, if any. dir is
// used to resolve buffers that refer to files; if empty,
// such buffers are an error.
//
// If gltf has scenes, the nodes of the default scene (or
// of the first one) are traversed and node transforms are
// applied. Otherwise every mesh is imported untransformed.
// Primitives whose mode is not a triangle mode are skipped.
func Import(gltf *GLTF, bin []byte, dir string) (*mesh.PolyData, error) {
	if err := gltf.Check(); err != nil {
		return nil, err
	}
	bufs, err := gltf.buffers(bin, dir)
	if err != nil {
		return nil, err
	}
	im := importer{gltf: gltf, bufs: bufs, pd: mesh.New()}

	if len(gltf.Scenes) == 0 {
		var id linear.M4
		id.I()
		for i := range gltf.Meshes {
			if err := im.mesh(i, &id); err != nil {
				return nil, err
			}
		}
	} else {
		scene := int64(0)
		if gltf.Scene != nil {
			scene = *gltf.Scene
		}
		im.visited.Grow(len(gltf.Nodes))
		var id linear.M4
		id.I()
		for _, n := range gltf.Scenes[scene].Nodes {
			if err := im.node(n, &id); err != nil {
				return nil, err
			}
		}
	}

	if err := im.pd.Check(); err != nil {
		return nil, errors.New("imported geometry is invalid").
			WithType(ErrTypeInvalid).
			Wrap(err)
	}
	logs.WithTag("points", len(im.pd.Points)).
		WithTag("polys", len(im.pd.Polys)).
		WithTag("skipped", im.skipped).
		Debug("glTF imported")
	return im.pd, nil
}

// buffers resolves the data of every buffer.
func (f *GLTF) buffers(bin []byte, dir string) ([][]byte, error) {
	bufs := make([][]byte, len(f.Buffers))
	for i := range f.Buffers {
		b := &f.Buffers[i]
		var data []byte
		switch uri := b.URI; {
		case uri == "":
			if i != 0 || bin == nil {
				return nil, newErr("buffer has no data", "buffer", i)
			}
			data = bin
		case strings.HasPrefix(uri, "data:"):
			comma := strings.IndexByte(uri, ',')
			if comma < 0 || !strings.HasSuffix(uri[:comma], ";base64") {
				return nil, newErr("unsupported data URI", "buffer", i)
			}
			var err error
			if data, err = base64.StdEncoding.DecodeString(uri[comma+1:]); err != nil {
				return nil, errors.New("decoding data URI failed").
					WithType(ErrTypeInvalid).
					WithTag("buffer", i).
					Wrap(err)
			}
		default:
			if dir == "" {
				return nil, newErr("external buffer without a base directory", "buffer", i)
			}
			name, err := url.PathUnescape(uri)
			if err != nil {
				name = uri
			}
			if data, err = os.ReadFile(filepath.Join(dir, filepath.FromSlash(name))); err != nil {
				return nil, errors.New("reading buffer file failed").
					WithType(ErrTypeInvalid).
					WithTag("buffer", i).
					WithTag("uri", uri).
					Wrap(err)
			}
		}
		if int64(len(data)) < b.ByteLength {
			return nil, newErr("buffer is shorter than its ByteLength", "buffer", i)
		}
		bufs[i] = data
	}
	return bufs, nil
}

type importer struct {
	gltf    *GLTF
	bufs    [][]byte
	pd      *mesh.PolyData
	visited bitvec.V[uint32]
	skipped int
}

func (im *importer) node(i int64, parent *linear.M4) error {
	if im.visited.IsSet(int(i)) {
		return newErr("node hierarchy has a cycle", "node", i)
	}
	im.visited.Set(int(i))
	n := &im.gltf.Nodes[i]
	var world linear.M4
	local := n.local()
	world.Mul(parent, &local)
	if n.Mesh != nil {
		if err := im.mesh(int(*n.Mesh), &world); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := im.node(c, &world); err != nil {
			return err
		}
	}
	return nil
}

// local returns the local transform of n.
func (n *Node) local() (m linear.M4) {
	if n.Matrix != nil {
		for i := range 16 {
			m[i/4][i%4] = n.Matrix[i]
		}
		return
	}
	m.I()
	if q := n.Rotation; q != nil {
		x, y, z, w := q[0], q[1], q[2], q[3]
		m[0] = linear.V4{1 - 2*(y*y+z*z), 2 * (x*y + z*w), 2 * (x*z - y*w), 0}
		m[1] = linear.V4{2 * (x*y - z*w), 1 - 2*(x*x+z*z), 2 * (y*z + x*w), 0}
		m[2] = linear.V4{2 * (x*z + y*w), 2 * (y*z - x*w), 1 - 2*(x*x+y*y), 0}
	}
	if s := n.Scale; s != nil {
		for i := range 3 {
			m[i].Scale(s[i], &m[i])
		}
	}
	if t := n.Translation; t != nil {
		m[3] = linear.V4{t[0], t[1], t[2], 1}
	}
	return
}

func (im *importer) mesh(i int, world *linear.M4) error {
	for j := range im.gltf.Meshes[i].Primitives {
		p := &im.gltf.Meshes[i].Primitives[j]
		mode := int64(TRIANGLES)
		if p.Mode != nil {
			mode = *p.Mode
		}
		switch mode {
		case TRIANGLES, TRIANGLE_STRIP, TRIANGLE_FAN:
		default:
			im.skipped++
			continue
		}
		pos, ok := p.Attributes["POSITION"]
		if !ok {
			return newErr("primitive has no POSITION attribute", "mesh", i)
		}
		pts, err := im.positions(pos)
		if err != nil {
			return err
		}
		var idx []uint32
		if p.Indices != nil {
			if idx, err = im.indices(*p.Indices, len(pts)); err != nil {
				return err
			}
		} else {
			idx = make([]uint32, len(pts))
			for k := range idx {
				idx[k] = uint32(k)
			}
		}

		base := int32(len(im.pd.Points))
		for k := range pts {
			v := linear.Point(&pts[k])
			v.Mul(world, &v)
			im.pd.AddPoint(linear.V3{v[0], v[1], v[2]})
		}
		tri := func(a, b, c uint32) {
			if a == b || b == c || a == c {
				return
			}
			im.pd.AddPoly(base+int32(a), base+int32(b), base+int32(c))
		}
		switch mode {
		case TRIANGLES:
			for k := 0; k+2 < len(idx); k += 3 {
				tri(idx[k], idx[k+1], idx[k+2])
			}
		case TRIANGLE_STRIP:
			for k := 0; k+2 < len(idx); k++ {
				if k%2 == 0 {
					tri(idx[k], idx[k+1], idx[k+2])
				} else {
					tri(idx[k+1], idx[k], idx[k+2])
				}
			}
		case TRIANGLE_FAN:
			for k := 1; k+1 < len(idx); k++ {
				tri(idx[0], idx[k], idx[k+1])
			}
		}
	}
	return nil
}

// view returns the bytes of an accessor's elements and
// the stride between them.
func (im *importer) view(a *Accessor, elem int64) ([]byte, int64) {
	v := &im.gltf.BufferViews[*a.BufferView]
	b := im.bufs[v.Buffer][v.ByteOffset : v.ByteOffset+v.ByteLength]
	return b[a.ByteOffset:], max(v.ByteStride, elem)
}

func (im *importer) positions(i int64) ([]linear.V3, error) {
	a := &im.gltf.Accessors[i]
	if a.Type != VEC3 || a.ComponentType != FLOAT {
		return nil, newErr("POSITION must be a VEC3 of FLOAT", "accessor", i)
	}
	if a.BufferView == nil {
		return nil, newErr("POSITION must be in a buffer view", "accessor", i)
	}
	pts := make([]linear.V3, a.Count)
	b, stride := im.view(a, 12)
	for k := range pts {
		e := b[int64(k)*stride:]
		for c := range 3 {
			pts[k][c] = math.Float32frombits(binary.LittleEndian.Uint32(e[c*4:]))
		}
	}
	return pts, nil
}

func (im *importer) indices(i int64, npoint int) ([]uint32, error) {
	a := &im.gltf.Accessors[i]
	if a.Type != SCALAR || a.BufferView == nil {
		return nil, newErr("indices must be a SCALAR in a buffer view", "accessor", i)
	}
	size := componentSize(a.ComponentType)
	switch a.ComponentType {
	case UNSIGNED_BYTE, UNSIGNED_SHORT, UNSIGNED_INT:
	default:
		return nil, newErr("invalid index component type", "accessor", i)
	}
	b, stride := im.view(a, size)
	idx := make([]uint32, a.Count)
	for k := range idx {
		e := b[int64(k)*stride:]
		switch size {
		case 1:
			idx[k] = uint32(e[0])
		case 2:
			idx[k] = uint32(binary.LittleEndian.Uint16(e))
		default:
			idx[k] = binary.LittleEndian.Uint32(e)
		}
		if idx[k] >= uint32(npoint) {
			return nil, newErr("index out of range", "accessor", i)
		}
	}
	return idx, nil
}
