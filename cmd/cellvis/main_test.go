// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gviegas/cellvis/interactor"
)

func testConfig(t *testing.T) config {
	return config{
		Theta:        10,
		Phi:          10,
		CellsPerNode: 25,
		MaxLevel:     8,
		Width:        64,
		Height:       48,
		Out:          t.TempDir(),
		Format:       "png",
		Animation:    "steps",
		LogLevel:     "error",
	}
}

func TestValidateConfig(t *testing.T) {
	require.NoError(t, validateConfig(testConfig(t)))

	for name, f := range map[string]func(*config){
		"low resolution": func(c *config) { c.Theta = 2 },
		"cells per node": func(c *config) { c.CellsPerNode = 0 },
		"max level":      func(c *config) { c.MaxLevel = -1 },
		"size":           func(c *config) { c.Width = 0 },
		"format":         func(c *config) { c.Format = "jpg" },
		"animation":      func(c *config) { c.Animation = "slow" },
		"depths":         func(c *config) { c.Depths = "0,x" },
		"both":           func(c *config) { c.Depths, c.Script = "1", "s.yaml" },
	} {
		t.Run(name, func(t *testing.T) {
			c := testConfig(t)
			f(&c)
			require.Error(t, validateConfig(c))
		})
	}

	// The sphere resolution does not matter for glTF input.
	c := testConfig(t)
	c.Theta, c.Input = 0, "mesh.glb"
	require.NoError(t, validateConfig(c))
}

func TestParseDepths(t *testing.T) {
	ds, err := parseDepths("")
	require.NoError(t, err)
	require.Nil(t, ds)

	ds, err = parseDepths("0, 1.6 ,2")
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1.6, 2}, ds)
}

func TestEvents(t *testing.T) {
	evs, err := events(testConfig(t), 2)
	require.NoError(t, err)
	require.Equal(t, []interactor.Event{
		{Kind: interactor.Value, Value: 0},
		{Kind: interactor.Value, Value: 1},
		{Kind: interactor.Value, Value: 2},
		{Kind: interactor.KeyPress, Key: interactor.KeyQ},
	}, evs)

	c := testConfig(t)
	c.Script = filepath.Join(c.Out, "script.yaml")
	require.NoError(t, os.WriteFile(c.Script, []byte("- value: 1\n- key: esc\n"), 0o644))
	evs, err = events(c, 2)
	require.NoError(t, err)
	require.Len(t, evs, 2)
	require.Equal(t, interactor.KeyEsc, evs[1].Key)

	c.Script = filepath.Join(c.Out, "missing.yaml")
	_, err = events(c, 2)
	require.Error(t, err)
}

func TestRun(t *testing.T) {
	c := testConfig(t)
	require.NoError(t, run(context.Background(), c))
	// The initial frame plus depths 0 and 1.
	for _, name := range []string{"frame-000.png", "frame-001.png", "frame-002.png"} {
		require.FileExists(t, filepath.Join(c.Out, name))
	}
	require.NoFileExists(t, filepath.Join(c.Out, "frame-003.png"))
}

func TestRunScript(t *testing.T) {
	c := testConfig(t)
	c.Format = "bmp"
	c.Script = filepath.Join(t.TempDir(), "drag.yaml")
	script := `
- press: [0.23, 0.1]
- move: [0.5, 0.1]
- move: [0.8, 0.1]
- release: [0.8, 0.1]
- key: q
- value: 0
`
	require.NoError(t, os.WriteFile(c.Script, []byte(script), 0o644))
	require.NoError(t, run(context.Background(), c))
	// The initial frame plus two drag moves. Events after q
	// are not delivered.
	require.FileExists(t, filepath.Join(c.Out, "frame-002.bmp"))
	require.NoFileExists(t, filepath.Join(c.Out, "frame-003.bmp"))
}

func TestRunAnimation(t *testing.T) {
	c := testConfig(t)
	c.Animation = "slow"
	require.Error(t, run(context.Background(), c))
	require.NoFileExists(t, filepath.Join(c.Out, "frame-000.png"))

	c = testConfig(t)
	c.Animation = "jump"
	c.Depths = "2"
	require.NoError(t, run(context.Background(), c))
	require.FileExists(t, filepath.Join(c.Out, "frame-001.png"))
}
