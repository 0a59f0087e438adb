package gpu

// Functions is the table of GPU entry points. Every call operates on the
// context current on the calling thread; implementations are not safe for
// concurrent use.
//
// The names follow the WebGL2 API: Create*/Delete* allocate and free single
// objects, Get*Location returns a negative location for undeclared names.
type Functions interface {
	CreateShader(ty Enum) Shader
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	DetachShader(p Program, s Shader)
	LinkProgram(p Program)
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	UseProgram(p Program)
	DeleteProgram(p Program)

	GetAttribLocation(p Program, name string) Attrib
	GetUniformLocation(p Program, name string) Uniform

	CreateBuffer() Buffer
	BindBuffer(target Enum, b Buffer)
	BufferData(target Enum, data []float32, usage Enum)
	DeleteBuffer(b Buffer)

	VertexAttribPointer(a Attrib, size int, ty Enum, normalized bool, stride, offset int)
	EnableVertexAttribArray(a Attrib)
	DisableVertexAttribArray(a Attrib)

	UniformMatrix4fv(u Uniform, m []float32)
	Uniform1i(u Uniform, v int)
	Uniform1f(u Uniform, v float32)

	CreateTexture() Texture
	ActiveTexture(unit Enum)
	BindTexture(target Enum, t Texture)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum, pixels []byte)
	TexParameteri(target, pname Enum, param int)
	GenerateMipmap(target Enum)
	DeleteTexture(t Texture)

	Enable(capability Enum)
	Disable(capability Enum)
	BlendFunc(sfactor, dfactor Enum)
	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	DrawArrays(mode Enum, first, count int)
}
