// Package gl41 implements gpu.Functions on top of desktop OpenGL 4.1 core.
package gl41

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/gldraw/gpu"
)

var glInitOnce sync.Once

// Functions forwards every call to go-gl. The core profile refuses vertex
// attribute calls without a bound vertex array, so one is created and kept
// bound for the lifetime of the value.
type Functions struct {
	vertexArray uint32
}

var _ gpu.Functions = (*Functions)(nil)

// New loads the OpenGL function pointers for the current context. The context
// must already be current on the calling thread.
func New() (*Functions, error) {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	f := &Functions{}
	gl.GenVertexArrays(1, &f.vertexArray)
	gl.BindVertexArray(f.vertexArray)
	return f, nil
}

// Version returns the GL_VERSION string of the current context.
func (f *Functions) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// Close releases the vertex array created by New.
func (f *Functions) Close() {
	if f.vertexArray == 0 {
		return
	}
	gl.BindVertexArray(0)
	gl.DeleteVertexArrays(1, &f.vertexArray)
	f.vertexArray = 0
}

func (f *Functions) CreateShader(ty gpu.Enum) gpu.Shader {
	return gpu.Shader(gl.CreateShader(uint32(ty)))
}

func (f *Functions) ShaderSource(s gpu.Shader, src string) {
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(uint32(s), 1, csources, nil)
	free()
}

func (f *Functions) CompileShader(s gpu.Shader) {
	gl.CompileShader(uint32(s))
}

func (f *Functions) GetShaderi(s gpu.Shader, pname gpu.Enum) int {
	var v int32
	gl.GetShaderiv(uint32(s), uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetShaderInfoLog(s gpu.Shader) string {
	var logLength int32
	gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(uint32(s), logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (f *Functions) DeleteShader(s gpu.Shader) {
	gl.DeleteShader(uint32(s))
}

func (f *Functions) CreateProgram() gpu.Program {
	return gpu.Program(gl.CreateProgram())
}

func (f *Functions) AttachShader(p gpu.Program, s gpu.Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (f *Functions) DetachShader(p gpu.Program, s gpu.Shader) {
	gl.DetachShader(uint32(p), uint32(s))
}

func (f *Functions) LinkProgram(p gpu.Program) {
	gl.LinkProgram(uint32(p))
}

func (f *Functions) GetProgrami(p gpu.Program, pname gpu.Enum) int {
	var v int32
	gl.GetProgramiv(uint32(p), uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetProgramInfoLog(p gpu.Program) string {
	var logLength int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(uint32(p), logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (f *Functions) UseProgram(p gpu.Program) {
	gl.UseProgram(uint32(p))
}

func (f *Functions) DeleteProgram(p gpu.Program) {
	gl.DeleteProgram(uint32(p))
}

func (f *Functions) GetAttribLocation(p gpu.Program, name string) gpu.Attrib {
	return gpu.Attrib(gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00")))
}

func (f *Functions) GetUniformLocation(p gpu.Program, name string) gpu.Uniform {
	return gpu.Uniform(gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00")))
}

func (f *Functions) CreateBuffer() gpu.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return gpu.Buffer(b)
}

func (f *Functions) BindBuffer(target gpu.Enum, b gpu.Buffer) {
	gl.BindBuffer(uint32(target), uint32(b))
}

func (f *Functions) BufferData(target gpu.Enum, data []float32, usage gpu.Enum) {
	if len(data) == 0 {
		gl.BufferData(uint32(target), 0, nil, uint32(usage))
		return
	}
	gl.BufferData(uint32(target), len(data)*4, gl.Ptr(data), uint32(usage))
}

func (f *Functions) DeleteBuffer(b gpu.Buffer) {
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

func (f *Functions) VertexAttribPointer(a gpu.Attrib, size int, ty gpu.Enum, normalized bool, stride, offset int) {
	gl.VertexAttribPointer(uint32(a), int32(size), uint32(ty), normalized, int32(stride), gl.PtrOffset(offset))
}

func (f *Functions) EnableVertexAttribArray(a gpu.Attrib) {
	gl.EnableVertexAttribArray(uint32(a))
}

func (f *Functions) DisableVertexAttribArray(a gpu.Attrib) {
	gl.DisableVertexAttribArray(uint32(a))
}

func (f *Functions) UniformMatrix4fv(u gpu.Uniform, m []float32) {
	gl.UniformMatrix4fv(int32(u), int32(len(m)/16), false, &m[0])
}

func (f *Functions) Uniform1i(u gpu.Uniform, v int) {
	gl.Uniform1i(int32(u), int32(v))
}

func (f *Functions) Uniform1f(u gpu.Uniform, v float32) {
	gl.Uniform1f(int32(u), v)
}

func (f *Functions) CreateTexture() gpu.Texture {
	var t uint32
	gl.GenTextures(1, &t)
	return gpu.Texture(t)
}

func (f *Functions) ActiveTexture(unit gpu.Enum) {
	gl.ActiveTexture(uint32(unit))
}

func (f *Functions) BindTexture(target gpu.Enum, t gpu.Texture) {
	gl.BindTexture(uint32(target), uint32(t))
}

func (f *Functions) TexImage2D(target gpu.Enum, level int, internalFormat gpu.Enum, width, height int, format, ty gpu.Enum, pixels []byte) {
	ptr := gl.Ptr(nil)
	if len(pixels) > 0 {
		ptr = gl.Ptr(pixels)
	}
	gl.TexImage2D(uint32(target), int32(level), int32(internalFormat), int32(width), int32(height), 0, uint32(format), uint32(ty), ptr)
}

func (f *Functions) TexParameteri(target, pname gpu.Enum, param int) {
	gl.TexParameteri(uint32(target), uint32(pname), int32(param))
}

func (f *Functions) GenerateMipmap(target gpu.Enum) {
	gl.GenerateMipmap(uint32(target))
}

func (f *Functions) DeleteTexture(t gpu.Texture) {
	id := uint32(t)
	gl.DeleteTextures(1, &id)
}

func (f *Functions) Enable(capability gpu.Enum) {
	gl.Enable(uint32(capability))
}

func (f *Functions) Disable(capability gpu.Enum) {
	gl.Disable(uint32(capability))
}

func (f *Functions) BlendFunc(sfactor, dfactor gpu.Enum) {
	gl.BlendFunc(uint32(sfactor), uint32(dfactor))
}

func (f *Functions) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (f *Functions) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (f *Functions) Clear(mask gpu.Enum) {
	gl.Clear(uint32(mask))
}

func (f *Functions) DrawArrays(mode gpu.Enum, first, count int) {
	gl.DrawArrays(uint32(mode), int32(first), int32(count))
}
