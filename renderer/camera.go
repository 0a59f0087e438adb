package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gldraw/binding"
)

// Projection returns a perspective matrix for a vertical field of view in
// degrees.
func Projection(fovDeg, aspect, near, far float32) binding.Mat4 {
	return binding.Mat4(mgl32.Perspective(mgl32.DegToRad(fovDeg), aspect, near, far))
}

// Translation returns a model-view matrix moving the model by (x, y, z).
func Translation(x, y, z float32) binding.Mat4 {
	return binding.Mat4(mgl32.Translate3D(x, y, z))
}
