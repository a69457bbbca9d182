// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package engine implements off-screen rendering of
// poly data.
//
// A Renderer draws the actors of a scene into a viewport
// of an Offscreen window. Surfaces are flat shaded and
// drawn in back-to-front order; wireframes are drawn as
// edges interleaved with the surfaces by depth.
// Rasterization is done by gg's software renderer.
package engine

const (
	// The maximum number of lights per renderer.
	MaxLight = 8

	// The maximum number of renderers per window.
	MaxRenderer = 16
)

// Error types.
const (
	ErrTypeConfig = "engine_config"
	ErrTypeOutput = "engine_output"
)
