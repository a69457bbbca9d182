// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"

	"github.com/gviegas/cellvis/linear"
)

// quadBuffer holds the four corners of the unit square
// followed by six uint16 indices (two triangles).
func quadBuffer() []byte {
	var b bytes.Buffer
	pos := [4][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	binary.Write(&b, binary.LittleEndian, pos)
	binary.Write(&b, binary.LittleEndian, [6]uint16{0, 1, 2, 0, 2, 3})
	return b.Bytes()
}

// quadJSON returns a glTF document for quadBuffer.
// uri is the buffer's URI; extra is spliced into the
// root object.
func quadJSON(uri, extra string) string {
	if uri != "" {
		uri = fmt.Sprintf(`"uri": %q,`, uri)
	}
	return fmt.Sprintf(`{
	"asset": {"version": "2.0"},
	"buffers": [{%s "byteLength": 60}],
	"bufferViews": [
		{"buffer": 0, "byteLength": 48, "target": 34962},
		{"buffer": 0, "byteOffset": 48, "byteLength": 12, "target": 34963}
	],
	"accessors": [
		{"bufferView": 0, "componentType": 5126, "count": 4, "type": "VEC3"},
		{"bufferView": 1, "componentType": 5123, "count": 6, "type": "SCALAR"}
	],
	"meshes": [{"primitives": [{"attributes": {"POSITION": 0}, "indices": 1}]}]
	%s
}`, uri, extra)
}

func dataURI(b []byte) string {
	return "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(b)
}

func decode(t *testing.T, s string) *GLTF {
	t.Helper()
	gltf, err := Decode(strings.NewReader(s))
	if err != nil {
		t.Fatalf("Decode: unexpected error: %v", err)
	}
	return gltf
}

func TestImport(t *testing.T) {
	gltf := decode(t, quadJSON(dataURI(quadBuffer()), ""))
	if v := gltf.Asset.Version; v != "2.0" {
		t.Fatalf("Decode: Asset.Version\nhave %s\nwant 2.0", v)
	}
	pd, err := Import(gltf, nil, "")
	if err != nil {
		t.Fatalf("Import: unexpected error: %v", err)
	}
	if len(pd.Points) != 4 || len(pd.Polys) != 2 {
		t.Fatalf("Import: cells\nhave %d points, %d polys\nwant 4, 2", len(pd.Points), len(pd.Polys))
	}
	if p := pd.Points[2]; p != (linear.V3{1, 1, 0}) {
		t.Fatalf("Import: Points[2]\nhave %v\nwant [1 1 0]", p)
	}
	if p := pd.Polys[1]; len(p) != 3 || p[0] != 0 || p[1] != 2 || p[2] != 3 {
		t.Fatalf("Import: Polys[1]\nhave %v\nwant [0 2 3]", p)
	}
}

func TestImportScene(t *testing.T) {
	const nodes = `,
	"scene": 0,
	"scenes": [{"nodes": [0]}],
	"nodes": [
		{"translation": [10, 0, 0], "children": [1]},
		{"mesh": 0, "scale": [2, 2, 2]}
	]`
	pd, err := Import(decode(t, quadJSON(dataURI(quadBuffer()), nodes)), nil, "")
	if err != nil {
		t.Fatalf("Import: unexpected error: %v", err)
	}
	b := pd.Bounds()
	want := linear.Box{Min: linear.V3{10, 0, 0}, Max: linear.V3{12, 2, 0}}
	if b != want {
		t.Fatalf("Import: bounds\nhave %v\nwant %v", b, want)
	}
}

func TestImportRotation(t *testing.T) {
	// 90 degrees about z.
	const nodes = `,
	"scenes": [{"nodes": [0]}],
	"nodes": [{"mesh": 0, "rotation": [0, 0, 0.70710677, 0.70710677]}]`
	pd, err := Import(decode(t, quadJSON(dataURI(quadBuffer()), nodes)), nil, "")
	if err != nil {
		t.Fatalf("Import: unexpected error: %v", err)
	}
	p := pd.Points[1]
	if d := p[0]*p[0] + (p[1]-1)*(p[1]-1) + p[2]*p[2]; d > 1e-10 {
		t.Fatalf("Import: rotated Points[1]\nhave %v\nwant [0 1 0]", p)
	}
}

func TestImportCycle(t *testing.T) {
	const nodes = `,
	"scenes": [{"nodes": [0]}],
	"nodes": [{"children": [1]}, {"mesh": 0, "children": [0]}]`
	_, err := Import(decode(t, quadJSON(dataURI(quadBuffer()), nodes)), nil, "")
	if !errors.IsType(err, ErrTypeInvalid) {
		t.Fatalf("Import: cycle\nhave %v\nwant %s error", err, ErrTypeInvalid)
	}
}

func TestImportModes(t *testing.T) {
	s := quadJSON(dataURI(quadBuffer()), "")
	fan := strings.Replace(s, `"indices": 1}`, `"mode": 6}`, 1)
	pd, err := Import(decode(t, fan), nil, "")
	if err != nil {
		t.Fatalf("Import: unexpected error: %v", err)
	}
	if len(pd.Polys) != 2 {
		t.Fatalf("Import: TRIANGLE_FAN polys\nhave %d\nwant 2", len(pd.Polys))
	}
	points := strings.Replace(s, `"indices": 1}`, `"mode": 0}`, 1)
	pd, err = Import(decode(t, points), nil, "")
	if err != nil {
		t.Fatalf("Import: unexpected error: %v", err)
	}
	if pd.NumCells() != 0 {
		t.Fatalf("Import: POINTS cells\nhave %d\nwant 0", pd.NumCells())
	}
}

func TestInvalid(t *testing.T) {
	uri := dataURI(quadBuffer())
	for _, s := range [...]string{
		strings.Replace(quadJSON(uri, ""), `"count": 6`, `"count": 7`, 1),
		strings.Replace(quadJSON(uri, ""), `"componentType": 5126`, `"componentType": 5127`, 1),
		strings.Replace(quadJSON(uri, ""), `"type": "VEC3"`, `"type": "VEC5"`, 1),
		strings.Replace(quadJSON(uri, ""), `"POSITION": 0`, `"POSITION": 2`, 1),
		strings.Replace(quadJSON(uri, ""), `"POSITION": 0`, `"NORMAL": 0`, 1),
		strings.Replace(quadJSON(uri, ""), `"byteLength": 60`, `"byteLength": 80`, 1),
		strings.Replace(quadJSON(uri, ""), `"byteOffset": 48, "byteLength": 12`, `"byteOffset": 52, "byteLength": 12`, 1),
		strings.Replace(quadJSON(uri, ""), `"count": 4`, `"count": 4611686018427387905`, 1),
		strings.Replace(quadJSON(uri, ""), `"byteOffset": 48, "byteLength": 12`, `"byteOffset": 48, "byteLength": 9223372036854775800`, 1),
		strings.Replace(quadJSON(uri, ""), `{"bufferView": 0, `, `{`, 1),
		quadJSON("data:text/plain,hello", ""),
		quadJSON("", ""),
		quadJSON("quad.bin", ""),
		quadJSON(uri, `, "scene": 1, "scenes": [{"nodes": [0]}], "nodes": [{"mesh": 0}]`),
	} {
		gltf, err := Decode(strings.NewReader(s))
		if err == nil {
			_, err = Import(gltf, nil, "")
		}
		if !errors.IsType(err, ErrTypeInvalid) {
			t.Fatalf("Import:\n%s\nhave %v\nwant %s error", s, err, ErrTypeInvalid)
		}
	}
	if _, err := Decode(strings.NewReader(`{"asset":`)); !errors.IsType(err, ErrTypeInvalid) {
		t.Fatalf("Decode: error type\nhave %s\nwant %s", errors.Type(err), ErrTypeInvalid)
	}
}

// glb assembles a GLB blob from a JSON document and a
// binary payload.
func glb(doc string, bin []byte) []byte {
	pad := func(b []byte, c byte) []byte {
		for len(b)%4 != 0 {
			b = append(b, c)
		}
		return b
	}
	js := pad([]byte(doc), ' ')
	bin = pad(append([]byte(nil), bin...), 0)
	var b bytes.Buffer
	binary.Write(&b, binary.LittleEndian, glbHeader{magic, 2, uint32(12 + 8 + len(js) + 8 + len(bin))})
	binary.Write(&b, binary.LittleEndian, glbChunk{uint32(len(js)), typeJSON})
	b.Write(js)
	binary.Write(&b, binary.LittleEndian, glbChunk{uint32(len(bin)), typeBIN})
	b.Write(bin)
	return b.Bytes()
}

func TestGLB(t *testing.T) {
	blob := glb(quadJSON("", ""), quadBuffer())
	if !IsGLB(bytes.NewReader(blob)) {
		t.Fatal("IsGLB(blob):\nwant true\nhave false")
	}
	r := bytes.NewReader([]byte(`{"asset":{"version":"2.0"}}`))
	if IsGLB(r) {
		t.Fatal("IsGLB(r):\nwant false\nhave true")
	}
	gltf, bin, err := DecodeGLB(bytes.NewReader(blob))
	if err != nil {
		t.Fatalf("DecodeGLB: unexpected error: %v", err)
	}
	if len(bin) != 60 {
		t.Fatalf("DecodeGLB: BIN chunk length\nhave %d\nwant 60", len(bin))
	}
	pd, err := Import(gltf, bin, "")
	if err != nil {
		t.Fatalf("Import: unexpected error: %v", err)
	}
	if len(pd.Polys) != 2 {
		t.Fatalf("Import: polys\nhave %d\nwant 2", len(pd.Polys))
	}

	if _, _, err := DecodeGLB(bytes.NewReader(blob[:len(blob)-8])); !errors.IsType(err, ErrTypeInvalid) {
		t.Fatalf("DecodeGLB: truncated\nhave %v\nwant %s error", err, ErrTypeInvalid)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "quad data.bin"), quadBuffer(), 0o644); err != nil {
		t.Fatal(err)
	}
	gltfPath := filepath.Join(dir, "quad.gltf")
	if err := os.WriteFile(gltfPath, []byte(quadJSON("quad%20data.bin", "")), 0o644); err != nil {
		t.Fatal(err)
	}
	glbPath := filepath.Join(dir, "quad.glb")
	if err := os.WriteFile(glbPath, glb(quadJSON("", ""), quadBuffer()), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, path := range [...]string{gltfPath, glbPath} {
		pd, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s): unexpected error: %v", path, err)
		}
		if len(pd.Points) != 4 || len(pd.Polys) != 2 {
			t.Fatalf("Load(%s): cells\nhave %d points, %d polys\nwant 4, 2", path, len(pd.Points), len(pd.Polys))
		}
	}
	if _, err := Load(filepath.Join(dir, "missing.gltf")); !errors.IsType(err, ErrTypeInvalid) {
		t.Fatalf("Load: missing file\nhave %v\nwant %s error", err, ErrTypeInvalid)
	}
}

func TestEncode(t *testing.T) {
	gltf := decode(t, quadJSON(dataURI(quadBuffer()), ""))
	var b bytes.Buffer
	if err := Encode(&b, gltf); err != nil {
		t.Fatalf("Encode: unexpected error: %v", err)
	}
	again := decode(t, b.String())
	if len(again.Accessors) != 2 || again.Buffers[0].URI != gltf.Buffers[0].URI {
		t.Fatal("Encode: decoded document differs")
	}
}
