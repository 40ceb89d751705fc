// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SurfaceVertexShader transforms strip vertices and passes the unnormalized
// normal and light/view vectors on.
//
//go:embed surface.vert
var SurfaceVertexShader string

// SurfaceFragmentShader shades the surface with a point light.
//
//go:embed surface.frag
var SurfaceFragmentShader string
