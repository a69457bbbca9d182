// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// GLB header.
type glbHeader [3]uint32

// Indices in glbHeader.
const (
	headerMagic   = 0
	headerVersion = 1
	headerLength  = 2
)

// GLB chunk.
type glbChunk [2]uint32

// Indices in glbChunk.
const (
	chunkLength = 0
	chunkType   = 1
	// Then payload.
)

const (
	// glbHeader[headerMagic].
	magic = 0x46546c67

	// glbChunk[chunkType].
	typeJSON = 0x4e4f534a
	typeBIN  = 0x004e4942
)

// IsGLB returns whether r refers to a binary glTF (version 2).
// It assumes that r was positioned accordingly.
func IsGLB(r io.Reader) bool {
	var h glbHeader
	err := binary.Read(r, binary.LittleEndian, h[:])
	switch {
	case err != nil, h[headerMagic] != magic, h[headerVersion] != 2:
		return false
	default:
		return true
	}
}

// DecodeGLB decodes a GLB blob.
// It returns the decoded JSON chunk and the payload of
// the BIN chunk, if any.
func DecodeGLB(r io.Reader) (*GLTF, []byte, error) {
	var h glbHeader
	if err := binary.Read(r, binary.LittleEndian, h[:]); err != nil {
		return nil, nil, errors.New("reading GLB header failed").WithType(ErrTypeInvalid).Wrap(err)
	}
	if h[headerMagic] != magic || h[headerVersion] != 2 {
		return nil, nil, errors.New("not a GLB blob").WithType(ErrTypeInvalid).
			WithTag("magic", h[headerMagic]).
			WithTag("version", h[headerVersion])
	}
	remain := int64(h[headerLength]) - int64(len(h)*4)
	var (
		gltf *GLTF
		bin  []byte
	)
	for n := 0; remain > 0; n++ {
		var c glbChunk
		if err := binary.Read(r, binary.LittleEndian, c[:]); err != nil {
			return nil, nil, errors.New("reading GLB chunk failed").WithType(ErrTypeInvalid).WithTag("chunk", n).Wrap(err)
		}
		remain -= int64(len(c)*4) + int64(c[chunkLength])
		if remain < 0 {
			return nil, nil, errors.New("GLB chunk exceeds blob length").WithType(ErrTypeInvalid).WithTag("chunk", n)
		}
		data := make([]byte, c[chunkLength])
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, nil, errors.New("reading GLB chunk failed").WithType(ErrTypeInvalid).WithTag("chunk", n).Wrap(err)
		}
		switch {
		case n == 0 && c[chunkType] == typeJSON:
			var err error
			if gltf, err = Decode(bytes.NewReader(data)); err != nil {
				return nil, nil, err
			}
		case n == 0:
			return nil, nil, errors.New("first GLB chunk is not JSON").WithType(ErrTypeInvalid)
		case n == 1 && c[chunkType] == typeBIN:
			bin = data
		}
		// Unknown chunks are skipped.
	}
	if gltf == nil {
		return nil, nil, errors.New("GLB blob has no JSON chunk").WithType(ErrTypeInvalid)
	}
	return gltf, bin, nil
}
