// Package renderer runs draw commands. Each Execute call builds a program,
// uploads geometry and textures, draws once and destroys everything it
// created before returning, on success and on every error path.
package renderer

import (
	"fmt"

	"github.com/richinsley/gldraw/assets"
	"github.com/richinsley/gldraw/binding"
	"github.com/richinsley/gldraw/gpu"
	"github.com/richinsley/gldraw/shader"
	"github.com/sirupsen/logrus"
)

// TextureSource provides decoded images by key. *assets.Loader implements it.
type TextureSource interface {
	Get(key string) (*assets.Asset, bool)
}

// Executor runs draws on one context.
type Executor struct {
	ctx      *gpu.Context
	pipeline *shader.Pipeline
	binder   *binding.Binder
	textures TextureSource
	log      logrus.FieldLogger

	minFilter gpu.Enum
	magFilter gpu.Enum
	wrap      gpu.Enum
}

// NewExecutor returns an executor building programs with p. textures may be
// nil when no draw uses a texture.
func NewExecutor(p *shader.Pipeline, textures TextureSource, opts ...Option) *Executor {
	e := &Executor{
		ctx:       p.Context(),
		pipeline:  p,
		binder:    binding.New(p.Context()),
		textures:  textures,
		log:       logrus.StandardLogger(),
		minFilter: gpu.NearestMipmapLinear,
		magFilter: gpu.Linear,
		wrap:      gpu.Repeat,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Context returns the context draws are issued on.
func (e *Executor) Context() *gpu.Context { return e.ctx }

// Registry returns the registry of the executor's pipeline.
func (e *Executor) Registry() *shader.Registry { return e.pipeline.Registry() }

// Clear fills the surface with bg.
func (e *Executor) Clear(bg Color) {
	w, h := e.ctx.Size()
	e.ctx.Viewport(0, 0, w, h)
	e.ctx.ClearColor(bg.R, bg.G, bg.B, 1)
	e.ctx.Clear(gpu.ColorBufferBit)
}

// Execute runs d against a bg clear. A draw without shader source only
// clears. Errors are returned as *DrawError.
func (e *Executor) Execute(d Draw, bg Color) (err error) {
	var stack releaseStack
	defer stack.run()
	defer func() {
		if err != nil {
			err = &DrawError{Routine: d.Name, Err: err}
			e.log.WithField("routine", d.Name).WithError(err).Error("draw failed")
		}
	}()

	if d.Source.Empty() {
		e.Clear(bg)
		return nil
	}
	if gpu.Topology(d.Mode) == "unknown" {
		return fmt.Errorf("unsupported primitive mode 0x%x", uint32(d.Mode))
	}

	ctx := e.ctx
	prog, err := e.pipeline.CompileAndLink(d.Source)
	if err != nil {
		return err
	}
	stack.push(func() {
		prog.Dispose()
		ctx.UseProgram(0)
	})

	count := d.Count
	stack.push(func() { ctx.BindBuffer(gpu.ArrayBuffer, 0) })
	for i, vb := range d.Buffers {
		if vb.Components <= 0 {
			return fmt.Errorf("vertex buffer %d: %d components per vertex", i, vb.Components)
		}
		buf := ctx.CreateBuffer()
		stack.push(func() { ctx.DeleteBuffer(buf) })
		ctx.BindBuffer(gpu.ArrayBuffer, buf)
		ctx.BufferData(gpu.ArrayBuffer, vb.Data, gpu.StaticDraw)
		for _, a := range vb.Attributes {
			loc, err := e.binder.BindAttribute(prog, buf, a)
			if err != nil {
				return err
			}
			stack.push(func() { ctx.DisableVertexAttribArray(loc) })
		}
		if i == 0 && count == 0 {
			count = vb.VertexCount()
		}
	}

	if err := e.bindCamera(prog, d); err != nil {
		return err
	}
	for _, u := range d.Uniforms {
		if err := e.binder.BindUniform(prog, u); err != nil {
			return err
		}
	}

	if d.Texture != nil {
		if err := e.bindTexture(prog, d.Texture, &stack); err != nil {
			return err
		}
	}

	e.Clear(bg)
	ctx.DrawArrays(d.Mode, 0, count)
	e.log.WithFields(logrus.Fields{
		"routine":  d.Name,
		"program":  prog.ID,
		"topology": gpu.Topology(d.Mode),
		"vertices": count,
	}).Debug("draw")
	return nil
}

func (e *Executor) bindCamera(prog *shader.Program, d Draw) error {
	cam := DefaultCamera
	if d.Camera != nil {
		cam = *d.Camera
	}
	projName := d.ProjectionUniform
	if projName == "" {
		projName = defaultProjectionUniform
	}
	mvName := d.ModelViewUniform
	if mvName == "" {
		mvName = defaultModelViewUniform
	}
	proj := Projection(cam.FOV, e.ctx.Aspect(), cam.Near, cam.Far)
	if err := e.binder.BindUniformMatrix4(prog, projName, proj); err != nil {
		return err
	}
	mv := Translation(d.Translate[0], d.Translate[1], d.Translate[2])
	return e.binder.BindUniformMatrix4(prog, mvName, mv)
}

func (e *Executor) bindTexture(prog *shader.Program, tb *TextureBinding, stack *releaseStack) error {
	var asset *assets.Asset
	ok := false
	if e.textures != nil {
		asset, ok = e.textures.Get(tb.Key)
	}
	if !ok {
		return &MissingTextureError{Key: tb.Key}
	}

	ctx := e.ctx
	minFilter, magFilter, wrap := tb.MinFilter, tb.MagFilter, tb.Wrap
	if minFilter == 0 {
		minFilter = e.minFilter
	}
	if magFilter == 0 {
		magFilter = e.magFilter
	}
	if wrap == 0 {
		wrap = e.wrap
	}

	stack.push(func() { ctx.Disable(gpu.Blend) })
	tex := uploadTexture(ctx, asset.Image, minFilter, magFilter, wrap)
	stack.push(func() {
		ctx.DeleteTexture(tex)
		ctx.BindTexture(gpu.Texture2D, 0)
	})

	if tb.Sampler != "" {
		if err := e.binder.BindUniform(prog, binding.Uniform{Name: tb.Sampler, Value: binding.Sampler(0)}); err != nil {
			return err
		}
	}
	ctx.Enable(gpu.Blend)
	ctx.BlendFunc(gpu.SrcAlpha, gpu.OneMinusSrcAlpha)
	return nil
}
