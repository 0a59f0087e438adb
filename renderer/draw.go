package renderer

import (
	"fmt"

	"github.com/richinsley/gldraw/binding"
	"github.com/richinsley/gldraw/gpu"
	"github.com/richinsley/gldraw/shader"
)

// Color is an opaque background color with components in [0, 1].
type Color struct {
	R, G, B float32
}

// VertexBuffer is one buffer of float vertex data and the attributes that
// read from it. Components is the number of floats per vertex.
type VertexBuffer struct {
	Data       []float32
	Components int
	Attributes []binding.Attribute
}

// VertexCount returns the number of whole vertices in the buffer.
func (vb VertexBuffer) VertexCount() int {
	if vb.Components <= 0 {
		return 0
	}
	return len(vb.Data) / vb.Components
}

// Camera is a perspective projection. FOV is the vertical field of view in
// degrees.
type Camera struct {
	FOV  float32
	Near float32
	Far  float32
}

// DefaultCamera is a 45 degree perspective from 0.1 to 100.
var DefaultCamera = Camera{FOV: 45, Near: 0.1, Far: 100}

// TextureBinding names a pre-loaded image to upload for the draw.
type TextureBinding struct {
	// Key is the loader key of the image.
	Key string
	// Sampler is the sampler uniform reading texture unit 0. Empty skips the
	// uniform upload.
	Sampler string
	// MinFilter defaults to gpu.NearestMipmapLinear.
	MinFilter gpu.Enum
	// MagFilter defaults to gpu.Linear.
	MagFilter gpu.Enum
	// Wrap defaults to gpu.Repeat.
	Wrap gpu.Enum
}

// Draw describes one complete draw: program, geometry, uniforms and an
// optional texture. Every GPU object it needs is created and destroyed by
// a single Execute call.
type Draw struct {
	// Name identifies the routine in errors and logs.
	Name   string
	Source shader.Source
	Mode   gpu.Enum

	Buffers []VertexBuffer
	// Count overrides the vertex count derived from the first buffer.
	Count int

	// Camera defaults to DefaultCamera.
	Camera *Camera
	// Translate is the model-view translation.
	Translate [3]float32

	// ProjectionUniform defaults to "uProjectionMatrix".
	ProjectionUniform string
	// ModelViewUniform defaults to "uModelViewMatrix".
	ModelViewUniform string
	Uniforms         []binding.Uniform

	Texture *TextureBinding
}

const (
	defaultProjectionUniform = "uProjectionMatrix"
	defaultModelViewUniform  = "uModelViewMatrix"
)

// MissingTextureError reports a texture key with no decoded image.
type MissingTextureError struct {
	Key string
}

func (e *MissingTextureError) Error() string {
	return fmt.Sprintf("texture %q is not loaded", e.Key)
}

// DrawError wraps any failure of a draw routine with its name.
type DrawError struct {
	Routine string
	Err     error
}

func (e *DrawError) Error() string {
	return fmt.Sprintf("%s: %v", e.Routine, e.Err)
}

func (e *DrawError) Unwrap() error { return e.Err }
