package effects

import (
	"github.com/richinsley/gldraw/binding"
	"github.com/richinsley/gldraw/gpu"
	"github.com/richinsley/gldraw/renderer"
	"github.com/richinsley/gldraw/shader"
)

// DaisyTexture is the asset key DrawTexture samples.
const DaisyTexture = "tex/daisy.png"

const positionVertex = `#version 300 es
in vec4 aPosition;
in vec4 aColor;
uniform mat4 uModelViewMatrix;
uniform mat4 uProjectionMatrix;
void main(void) {
	gl_Position = uProjectionMatrix * uModelViewMatrix * aPosition;
}
`

const whiteFragment = `#version 300 es
precision mediump float;
out vec4 vColor;
void main(void) {
	vColor = vec4(1.0, 1.0, 1.0, 1.0);
}
`

const colorVertex = `#version 300 es
in vec4 aPosition;
in vec4 aColor;
uniform mat4 uModelViewMatrix;
uniform mat4 uProjectionMatrix;
out vec4 vColor;
void main(void) {
	gl_Position = uProjectionMatrix * uModelViewMatrix * aPosition;
	vColor = aColor;
}
`

const colorFragment = `#version 300 es
precision mediump float;
in vec4 vColor;
out vec4 outColor;
void main(void) {
	outColor = vColor;
}
`

const textureVertex = `#version 300 es
in vec4 aPosition;
in vec2 aTexCoord;
uniform mat4 uModelViewMatrix;
uniform mat4 uProjectionMatrix;
out vec2 vTexCoord;
void main() {
	gl_Position = uProjectionMatrix * uModelViewMatrix * aPosition;
	vTexCoord = aTexCoord;
}
`

const textureFragment = `#version 300 es
precision mediump float;
uniform sampler2D uTexture;
in vec2 vTexCoord;
out vec4 outColor;
void main() {
	outColor = texture(uTexture, vTexCoord);
}
`

// Regular polygons inscribed in the unit circle, first vertex at the top.
var (
	pentagonStrip = []float32{
		0.000, 1.000,
		-0.951, 0.309,
		0.951, 0.309,
		-0.588, -0.809,
		0.588, -0.809,
	}

	hexagonStrip = []float32{
		0.000, 1.0,
		-0.866, 0.5,
		0.866, 0.5,
		-0.866, -0.5,
		0.866, -0.5,
		0.000, -1.0,
	}

	hexagonColors = []float32{
		1, 0, 0, 1,
		1, 1, 0, 1,
		1, 0, 1, 1,
		0, 1, 0, 1,
		0, 0, 1, 1,
		0, 1, 1, 1,
	}

	// x, y, r, g, b, a
	heptagonFan = []float32{
		0.000, 0.000, 0.4, 0.4, 0.4, 1,
		0.000, 1.000, 1.0, 0.0, 0.0, 1,
		-0.782, 0.623, 1.0, 1.0, 0.0, 1,
		-0.975, -0.223, 0.0, 1.0, 0.0, 1,
		-0.434, -0.901, 0.0, 1.0, 1.0, 1,
		0.434, -0.901, 0.0, 0.0, 1.0, 1,
		0.975, -0.223, 0.5, 0.0, 1.0, 1,
		0.782, 0.623, 1.0, 0.0, 1.0, 1,
		0.000, 1.000, 1.0, 0.0, 0.0, 1,
	}

	// x, y, u, v
	texturedQuad = []float32{
		-1, 1, 0, 0,
		1, 1, 1, 0,
		-1, -1, 0, 1,
		1, -1, 1, 1,
	}
)

// ClearCanvas fills the canvas with bg.
func ClearCanvas(e *renderer.Executor, bg renderer.Color) error {
	return e.Execute(renderer.Draw{Name: "ClearCanvas"}, bg)
}

// DrawShape draws a white pentagon.
func DrawShape(e *renderer.Executor, bg renderer.Color) error {
	return e.Execute(renderer.Draw{
		Name:   "DrawShape",
		Source: shader.Source{Vertex: positionVertex, Fragment: whiteFragment},
		Mode:   gpu.TriangleStrip,
		Buffers: []renderer.VertexBuffer{{
			Data:       pentagonStrip,
			Components: 2,
			Attributes: []binding.Attribute{binding.Floats("aPosition", 2, 0, 0)},
		}},
		Translate: [3]float32{0, 0, -4},
	}, bg)
}

// DrawColorShape draws a hexagon with one color per vertex, positions and
// colors in separate buffers.
func DrawColorShape(e *renderer.Executor, bg renderer.Color) error {
	return e.Execute(renderer.Draw{
		Name:   "DrawColorShape",
		Source: shader.Source{Vertex: colorVertex, Fragment: colorFragment},
		Mode:   gpu.TriangleStrip,
		Buffers: []renderer.VertexBuffer{
			{
				Data:       hexagonStrip,
				Components: 2,
				Attributes: []binding.Attribute{binding.Floats("aPosition", 2, 0, 0)},
			},
			{
				Data:       hexagonColors,
				Components: 4,
				Attributes: []binding.Attribute{binding.Floats("aColor", 4, 0, 0)},
			},
		},
		Translate: [3]float32{0, 0, -4},
	}, bg)
}

// DrawColorShape2 draws a heptagon fan from one interleaved buffer.
func DrawColorShape2(e *renderer.Executor, bg renderer.Color) error {
	return e.Execute(renderer.Draw{
		Name:   "DrawColorShape2",
		Source: shader.Source{Vertex: colorVertex, Fragment: colorFragment},
		Mode:   gpu.TriangleFan,
		Buffers: []renderer.VertexBuffer{{
			Data:       heptagonFan,
			Components: 6,
			Attributes: []binding.Attribute{
				binding.Floats("aPosition", 2, 6, 0),
				binding.Floats("aColor", 4, 6, 2),
			},
		}},
		Translate: [3]float32{0, 0, -4},
	}, bg)
}

// DrawTexture draws the daisy texture on a quad filling the unit circle's
// bounding square.
func DrawTexture(e *renderer.Executor, bg renderer.Color) error {
	return e.Execute(renderer.Draw{
		Name:   "DrawTexture",
		Source: shader.Source{Vertex: textureVertex, Fragment: textureFragment},
		Mode:   gpu.TriangleStrip,
		Buffers: []renderer.VertexBuffer{{
			Data:       texturedQuad,
			Components: 4,
			Attributes: []binding.Attribute{
				binding.Floats("aPosition", 2, 4, 0),
				binding.Floats("aTexCoord", 2, 4, 2),
			},
		}},
		Translate: [3]float32{0, 0, -2.5},
		Texture:   &renderer.TextureBinding{Key: DaisyTexture, Sampler: "uTexture"},
	}, bg)
}
