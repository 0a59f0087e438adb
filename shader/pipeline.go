package shader

import (
	"github.com/richinsley/gldraw/gpu"
	"github.com/sirupsen/logrus"
)

// Translator rewrites a stage's source for the current backend. names maps
// source level identifiers to the names used by the translated code.
type Translator interface {
	Translate(src string, stage Stage) (code string, names map[string]string, err error)
}

// Pipeline compiles and links programs on a context.
type Pipeline struct {
	ctx        *gpu.Context
	registry   *Registry
	translator Translator
	log        logrus.FieldLogger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithTranslator runs every source through t before compiling.
func WithTranslator(t Translator) Option {
	return func(p *Pipeline) { p.translator = t }
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Pipeline) { p.log = log }
}

// NewPipeline returns a pipeline that registers its programs in registry.
func NewPipeline(ctx *gpu.Context, registry *Registry, opts ...Option) *Pipeline {
	p := &Pipeline{
		ctx:      ctx,
		registry: registry,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Context returns the context programs are built on.
func (pl *Pipeline) Context() *gpu.Context { return pl.ctx }

// Registry returns the registry programs are added to.
func (pl *Pipeline) Registry() *Registry { return pl.registry }

// CompileAndLink builds a program from src and makes it current. On success
// exactly one program object exists and no shader objects remain. On failure
// nothing allocated by the call is left behind.
func (pl *Pipeline) CompileAndLink(src Source) (*Program, error) {
	vertex, fragment := src.Vertex, src.Fragment
	names := make(map[string]string)
	if pl.translator != nil {
		var err error
		if vertex, err = pl.translate(vertex, StageVertex, names); err != nil {
			return nil, err
		}
		if fragment, err = pl.translate(fragment, StageFragment, names); err != nil {
			return nil, err
		}
	}

	vs, err := pl.compile(vertex, StageVertex)
	if err != nil {
		return nil, err
	}
	fs, err := pl.compile(fragment, StageFragment)
	if err != nil {
		pl.ctx.DeleteShader(vs.ID)
		return nil, err
	}

	id := pl.ctx.CreateProgram()
	prog := &Program{ID: id, units: []*Unit{vs, fs}, names: names}
	pl.ctx.AttachShader(id, vs.ID)
	pl.ctx.AttachShader(id, fs.ID)
	pl.ctx.LinkProgram(id)
	linked := pl.ctx.GetProgrami(id, gpu.LinkStatus) != 0
	var linkLog string
	if !linked {
		linkLog = pl.ctx.GetProgramInfoLog(id)
	}

	for _, u := range prog.units {
		pl.ctx.DetachShader(id, u.ID)
		pl.ctx.DeleteShader(u.ID)
	}
	prog.units = nil

	if !linked {
		pl.ctx.DeleteProgram(id)
		pl.log.WithField("program", id).Debug("program link failed")
		return nil, &LinkError{Log: linkLog}
	}

	pl.registry.Register(prog)
	pl.ctx.UseProgram(id)
	pl.log.WithField("program", id).Debug("program created")
	return prog, nil
}

func (pl *Pipeline) translate(src string, stage Stage, names map[string]string) (string, error) {
	code, mapped, err := pl.translator.Translate(src, stage)
	if err != nil {
		return "", &CompilationError{Stage: stage, Log: err.Error(), Err: err}
	}
	for k, v := range mapped {
		names[k] = v
	}
	return code, nil
}

func (pl *Pipeline) compile(src string, stage Stage) (*Unit, error) {
	id := pl.ctx.CreateShader(stage.shaderType())
	pl.ctx.ShaderSource(id, src)
	pl.ctx.CompileShader(id)
	u := &Unit{ID: id, Stage: stage}
	u.Compiled = pl.ctx.GetShaderi(id, gpu.CompileStatus) != 0
	if !u.Compiled {
		u.Log = pl.ctx.GetShaderInfoLog(id)
		pl.ctx.DeleteShader(id)
		return nil, &CompilationError{Stage: stage, Log: u.Log}
	}
	return u, nil
}
