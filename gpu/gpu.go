// Package gpu describes the slice of the OpenGL / WebGL2 API used by gldraw
// and the context handle every other package draws through.
package gpu

// Object handles. Zero is the null object for every kind.
type (
	Shader  uint32
	Program uint32
	Buffer  uint32
	Texture uint32
)

// Attrib is a vertex attribute location. Negative values mean the program
// does not declare the attribute.
type Attrib int32

// Uniform is a uniform location. Negative values mean the program does not
// declare the uniform.
type Uniform int32

// Valid reports whether the location was found in the program.
func (a Attrib) Valid() bool { return a >= 0 }

// Valid reports whether the location was found in the program.
func (u Uniform) Valid() bool { return u >= 0 }

// Enum is an OpenGL enumerant. The values below match the OpenGL headers so a
// backend can pass them through unchanged.
type Enum uint32

const (
	Points        Enum = 0x0000
	Lines         Enum = 0x0001
	Triangles     Enum = 0x0004
	TriangleStrip Enum = 0x0005
	TriangleFan   Enum = 0x0006

	SrcAlpha         Enum = 0x0302
	OneMinusSrcAlpha Enum = 0x0303
	Blend            Enum = 0x0BE2
	Texture2D        Enum = 0x0DE1

	Byte          Enum = 0x1400
	UnsignedByte  Enum = 0x1401
	Short         Enum = 0x1402
	UnsignedShort Enum = 0x1403
	Float         Enum = 0x1406
	RGBA          Enum = 0x1908

	Nearest              Enum = 0x2600
	Linear               Enum = 0x2601
	NearestMipmapNearest Enum = 0x2700
	LinearMipmapNearest  Enum = 0x2701
	NearestMipmapLinear  Enum = 0x2702
	LinearMipmapLinear   Enum = 0x2703
	TextureMagFilter     Enum = 0x2800
	TextureMinFilter     Enum = 0x2801
	TextureWrapS         Enum = 0x2802
	TextureWrapT         Enum = 0x2803
	Repeat               Enum = 0x2901
	ClampToEdge          Enum = 0x812F

	ColorBufferBit Enum = 0x4000
	RGBA8          Enum = 0x8058
	Texture0       Enum = 0x84C0
	ArrayBuffer    Enum = 0x8892
	StaticDraw     Enum = 0x88E4

	FragmentShader Enum = 0x8B30
	VertexShader   Enum = 0x8B31
	CompileStatus  Enum = 0x8B81
	LinkStatus     Enum = 0x8B82
)

// SizeOf returns the byte size of one component of the given data type.
func SizeOf(ty Enum) int {
	switch ty {
	case Byte, UnsignedByte:
		return 1
	case Short, UnsignedShort:
		return 2
	case Float:
		return 4
	default:
		return 0
	}
}

// Topology returns a readable name for a primitive mode.
func Topology(mode Enum) string {
	switch mode {
	case Points:
		return "points"
	case Lines:
		return "lines"
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle-strip"
	case TriangleFan:
		return "triangle-fan"
	default:
		return "unknown"
	}
}
