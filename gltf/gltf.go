// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package gltf implements glTF 2.0 mesh import.
// Only the geometry of triangle primitives is read;
// materials, textures, animations and skins are ignored.
package gltf

import (
	"io"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// ErrTypeInvalid is the error type of invalid or
// unsupported glTF data.
const ErrTypeInvalid = "gltf_invalid"

// Root glTF object.
type GLTF struct {
	ExtensionsUsed     []string   `json:"extensionsUsed,omitempty"`
	ExtensionsRequired []string   `json:"extensionsRequired,omitempty"`
	Accessors          []Accessor `json:"accessors,omitempty"`
	Asset              struct {
		Copyright  string `json:"copyright,omitempty"`
		Generator  string `json:"generator,omitempty"`
		Version    string `json:"version"`
		MinVersion string `json:"minVersion,omitempty"`
	} `json:"asset"`
	Buffers     []Buffer     `json:"buffers,omitempty"`
	BufferViews []BufferView `json:"bufferViews,omitempty"`
	Meshes      []Mesh       `json:"meshes,omitempty"`
	Nodes       []Node       `json:"nodes,omitempty"`
	Scene       *int64       `json:"scene,omitempty"`
	Scenes      []Scene      `json:"scenes,omitempty"`
}

// glTF.accessors' element.
// Sparse accessors are not supported.
type Accessor struct {
	BufferView    *int64    `json:"bufferView,omitempty"`
	ByteOffset    int64     `json:"byteOffset,omitempty"` // Default is 0.
	ComponentType int64     `json:"componentType"`
	Normalized    bool      `json:"normalized,omitempty"`
	Count         int64     `json:"count"`
	Type          string    `json:"type"`
	Max           []float32 `json:"max,omitempty"`
	Min           []float32 `json:"min,omitempty"`
	Sparse        any       `json:"sparse,omitempty"`
	Name          string    `json:"name,omitempty"`
}

// accessor.*.componentType values.
const (
	BYTE           = 5120
	UNSIGNED_BYTE  = 5121
	SHORT          = 5122
	UNSIGNED_SHORT = 5123
	UNSIGNED_INT   = 5125
	FLOAT          = 5126
)

// accessor.type values.
const (
	SCALAR = "SCALAR"
	VEC2   = "VEC2"
	VEC3   = "VEC3"
	VEC4   = "VEC4"
	MAT2   = "MAT2"
	MAT3   = "MAT3"
	MAT4   = "MAT4"
)

// glTF.buffers' element.
type Buffer struct {
	URI        string `json:"uri,omitempty"`
	ByteLength int64  `json:"byteLength"`
	Name       string `json:"name,omitempty"`
}

// glTF.bufferViews' element.
type BufferView struct {
	Buffer     int64  `json:"buffer"`
	ByteOffset int64  `json:"byteOffset,omitempty"` // Default is 0.
	ByteLength int64  `json:"byteLength"`
	ByteStride int64  `json:"byteStride,omitempty"` // 0 for tightly packed.
	Target     int64  `json:"target,omitempty"`     // 0 for no hint.
	Name       string `json:"name,omitempty"`
}

// bufferView.target values.
const (
	ARRAY_BUFFER = iota + 34962
	ELEMENT_ARRAY_BUFFER
)

// glTF.meshes' element.
type Mesh struct {
	Primitives []Primitive `json:"primitives"`
	Name       string      `json:"name,omitempty"`
}

// mesh.primitives' element.
type Primitive struct {
	Attributes map[string]int64 `json:"attributes"`
	Indices    *int64           `json:"indices,omitempty"`
	Mode       *int64           `json:"mode,omitempty"` // Default is 4.
}

// mesh.primitive.mode values.
const (
	POINTS = iota
	LINES
	LINE_LOOP
	LINE_STRIP
	TRIANGLES
	TRIANGLE_STRIP
	TRIANGLE_FAN
)

// glTF.nodes' element.
type Node struct {
	Children    []int64      `json:"children,omitempty"`
	Matrix      *[16]float32 `json:"matrix,omitempty"` // Default is identity.
	Mesh        *int64       `json:"mesh,omitempty"`
	Rotation    *[4]float32  `json:"rotation,omitempty"`    // Default is [0, 0, 0, 1].
	Scale       *[3]float32  `json:"scale,omitempty"`       // Default is [1, 1, 1].
	Translation *[3]float32  `json:"translation,omitempty"` // Default is [0, 0, 0].
	Name        string       `json:"name,omitempty"`
}

// glTF.scenes' element.
type Scene struct {
	Nodes []int64 `json:"nodes,omitempty"`
	Name  string  `json:"name,omitempty"`
}

// Encode encodes gltf into w.
func Encode(w io.Writer, gltf *GLTF) error {
	return json.NewEncoder(w).Encode(gltf)
}

// Decode decodes r into a new GLTF instance.
func Decode(r io.Reader) (*GLTF, error) {
	var gltf GLTF
	if err := json.NewDecoder(r).Decode(&gltf); err != nil {
		return nil, errors.New("decoding glTF JSON failed").
			WithType(ErrTypeInvalid).
			Wrap(err)
	}
	return &gltf, nil
}
