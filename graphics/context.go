package graphics

import "github.com/richinsley/gldraw/gpu"

// Context defines the interface for the host window that owns the OpenGL
// context.
type Context interface {
	gpu.Surface
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	EndFrame()
	Time() float64
	SetTitle(title string)
}
