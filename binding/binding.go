// Package binding connects vertex buffers and uniform values to the named
// inputs of a linked program.
package binding

import (
	"fmt"

	"github.com/richinsley/gldraw/gpu"
	"github.com/richinsley/gldraw/shader"
)

// Attribute describes how one named vertex input reads from a buffer.
// Stride and Offset are in bytes; a zero Stride means tightly packed.
type Attribute struct {
	Name      string
	Size      int
	Type      gpu.Enum
	Normalize bool
	Stride    int
	Offset    int
}

// Floats returns an attribute of size float32 components, reading stride
// and offset given in floats rather than bytes.
func Floats(name string, size, stride, offset int) Attribute {
	n := gpu.SizeOf(gpu.Float)
	return Attribute{
		Name:   name,
		Size:   size,
		Type:   gpu.Float,
		Stride: stride * n,
		Offset: offset * n,
	}
}

// MissingAttributeError reports an attribute the program does not declare.
type MissingAttributeError struct {
	Name string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("attribute %q not found in program", e.Name)
}

// MissingUniformError reports a uniform the program does not declare.
type MissingUniformError struct {
	Name string
}

func (e *MissingUniformError) Error() string {
	return fmt.Sprintf("uniform %q not found in program", e.Name)
}

// Binder resolves names against programs built on one context.
type Binder struct {
	ctx *gpu.Context
}

// New returns a binder issuing calls on ctx.
func New(ctx *gpu.Context) *Binder {
	return &Binder{ctx: ctx}
}

// AttribLocation looks up name in p. Names are case sensitive.
func (b *Binder) AttribLocation(p *shader.Program, name string) (gpu.Attrib, error) {
	loc := b.ctx.GetAttribLocation(p.ID, p.Name(name))
	if !loc.Valid() {
		return -1, &MissingAttributeError{Name: name}
	}
	return loc, nil
}

// UniformLocation looks up name in p. Names are case sensitive.
func (b *Binder) UniformLocation(p *shader.Program, name string) (gpu.Uniform, error) {
	loc := b.ctx.GetUniformLocation(p.ID, p.Name(name))
	if !loc.Valid() {
		return -1, &MissingUniformError{Name: name}
	}
	return loc, nil
}

// BindAttribute points a at buf and enables its slot. The caller disables
// the returned slot when the draw is done. A zero Type means float.
func (b *Binder) BindAttribute(p *shader.Program, buf gpu.Buffer, a Attribute) (gpu.Attrib, error) {
	ty := a.Type
	if ty == 0 {
		ty = gpu.Float
	}
	if gpu.SizeOf(ty) == 0 {
		return -1, fmt.Errorf("attribute %q: unsupported component type %#x", a.Name, uint32(ty))
	}
	if a.Size < 1 || a.Size > 4 {
		return -1, fmt.Errorf("attribute %q: size %d outside 1..4", a.Name, a.Size)
	}
	loc, err := b.AttribLocation(p, a.Name)
	if err != nil {
		return -1, err
	}
	b.ctx.BindBuffer(gpu.ArrayBuffer, buf)
	b.ctx.VertexAttribPointer(loc, a.Size, ty, a.Normalize, a.Stride, a.Offset)
	b.ctx.EnableVertexAttribArray(loc)
	return loc, nil
}

// BindUniformMatrix4 uploads m to the mat4 uniform name of the current
// program p.
func (b *Binder) BindUniformMatrix4(p *shader.Program, name string, m Mat4) error {
	return b.BindUniform(p, Uniform{Name: name, Value: m})
}

// BindUniform uploads u to the current program p.
func (b *Binder) BindUniform(p *shader.Program, u Uniform) error {
	loc, err := b.UniformLocation(p, u.Name)
	if err != nil {
		return err
	}
	switch v := u.Value.(type) {
	case Mat4:
		b.ctx.UniformMatrix4fv(loc, v[:])
	case Scalar:
		b.ctx.Uniform1f(loc, float32(v))
	case Sampler:
		b.ctx.Uniform1i(loc, int(v))
	default:
		return fmt.Errorf("uniform %q: unsupported value type %T", u.Name, u.Value)
	}
	return nil
}
