// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
)

func newErr(reason string, tag string, value any) error {
	return errors.New("gltf: "+reason).
		WithType(ErrTypeInvalid).
		WithTag(tag, value)
}

// Check checks that the parts of f that describe
// geometry are valid glTF.
func (f *GLTF) Check() error {
	if s := f.Scene; s != nil && (*s < 0 || *s >= int64(len(f.Scenes))) {
		return newErr("invalid GLTF.Scene index", "scene", *s)
	}
	for i := range f.Scenes {
		for _, n := range f.Scenes[i].Nodes {
			if n < 0 || n >= int64(len(f.Nodes)) {
				return newErr("invalid Scene.Nodes index", "scene", i)
			}
		}
	}
	for i := range f.Nodes {
		if err := f.Nodes[i].Check(f); err != nil {
			return err
		}
	}
	for i := range f.Buffers {
		if f.Buffers[i].ByteLength < 1 {
			return newErr("invalid Buffer.ByteLength value", "buffer", i)
		}
	}
	for i := range f.BufferViews {
		if err := f.BufferViews[i].Check(f); err != nil {
			return err
		}
	}
	for i := range f.Accessors {
		if err := f.Accessors[i].Check(f); err != nil {
			return err
		}
	}
	for i := range f.Meshes {
		if err := f.Meshes[i].Check(f); err != nil {
			return err
		}
	}
	return nil
}

// Check checks that n is a valid glTF.nodes' element.
func (n *Node) Check(gltf *GLTF) error {
	for _, c := range n.Children {
		if c < 0 || c >= int64(len(gltf.Nodes)) {
			return newErr("invalid Node.Children index", "child", c)
		}
	}
	if m := n.Mesh; m != nil && (*m < 0 || *m >= int64(len(gltf.Meshes))) {
		return newErr("invalid Node.Mesh index", "mesh", *m)
	}
	return nil
}

// Check checks that v is a valid glTF.bufferViews' element.
func (v *BufferView) Check(gltf *GLTF) error {
	if v.Buffer < 0 || v.Buffer >= int64(len(gltf.Buffers)) {
		return newErr("invalid BufferView.Buffer index", "buffer", v.Buffer)
	}
	n := gltf.Buffers[v.Buffer].ByteLength
	if v.ByteOffset < 0 || v.ByteLength < 1 || v.ByteOffset > n || v.ByteLength > n-v.ByteOffset {
		return newErr("invalid BufferView range", "buffer", v.Buffer)
	}
	if v.ByteStride != 0 && (v.ByteStride < 4 || v.ByteStride > 252 || v.ByteStride%4 != 0) {
		return newErr("invalid BufferView.ByteStride value", "stride", v.ByteStride)
	}
	return nil
}

// Check checks that a is a valid glTF.accessors' element.
func (a *Accessor) Check(gltf *GLTF) error {
	if a.BufferView != nil {
		idx := *a.BufferView
		if idx < 0 || idx >= int64(len(gltf.BufferViews)) {
			return newErr("invalid Accessor.BufferView index", "bufferView", idx)
		}
	}
	if a.ByteOffset < 0 {
		return newErr("invalid Accessor.ByteOffset value", "byteOffset", a.ByteOffset)
	}
	switch a.ComponentType {
	case BYTE, UNSIGNED_BYTE, SHORT, UNSIGNED_SHORT, UNSIGNED_INT, FLOAT:
	default:
		return newErr("invalid Accessor.ComponentType value", "componentType", a.ComponentType)
	}
	if a.Count < 1 {
		return newErr("invalid Accessor.Count value", "count", a.Count)
	}
	n := components(a.Type)
	if n == 0 {
		return newErr("invalid Accessor.Type value", "type", a.Type)
	}
	if a.Sparse != nil {
		return newErr("sparse accessors are not supported", "name", a.Name)
	}
	if a.BufferView != nil {
		v := &gltf.BufferViews[*a.BufferView]
		elem := int64(n) * componentSize(a.ComponentType)
		stride := max(v.ByteStride, elem)
		// Count can be large enough to overflow a product.
		if a.ByteOffset > v.ByteLength-elem || a.Count-1 > (v.ByteLength-a.ByteOffset-elem)/stride {
			return newErr("Accessor exceeds BufferView", "bufferView", *a.BufferView)
		}
	}
	return nil
}

// Check checks that m is a valid glTF.meshes' element.
func (m *Mesh) Check(gltf *GLTF) error {
	if len(m.Primitives) == 0 {
		return newErr("Mesh has no primitives", "mesh", m.Name)
	}
	for i := range m.Primitives {
		p := &m.Primitives[i]
		for name, idx := range p.Attributes {
			if idx < 0 || idx >= int64(len(gltf.Accessors)) {
				return newErr("invalid Primitive.Attributes index", "attribute", name)
			}
		}
		if p.Indices != nil && (*p.Indices < 0 || *p.Indices >= int64(len(gltf.Accessors))) {
			return newErr("invalid Primitive.Indices index", "indices", *p.Indices)
		}
		if p.Mode != nil && (*p.Mode < POINTS || *p.Mode > TRIANGLE_FAN) {
			return newErr("invalid Primitive.Mode value", "mode", *p.Mode)
		}
	}
	return nil
}

// components returns the number of components of an
// accessor type, or 0 if typ is invalid.
func components(typ string) int {
	switch typ {
	case SCALAR:
		return 1
	case VEC2:
		return 2
	case VEC3:
		return 3
	case VEC4, MAT2:
		return 4
	case MAT3:
		return 9
	case MAT4:
		return 16
	}
	return 0
}

// componentSize returns the size in bytes of a
// component type.
func componentSize(ctype int64) int64 {
	switch ctype {
	case BYTE, UNSIGNED_BYTE:
		return 1
	case SHORT, UNSIGNED_SHORT:
		return 2
	default:
		return 4
	}
}
