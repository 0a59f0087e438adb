package shader

import (
	"fmt"

	"github.com/richinsley/gldraw/gpu"
)

// Stage identifies a programmable pipeline stage.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

func (s Stage) shaderType() gpu.Enum {
	if s == StageFragment {
		return gpu.FragmentShader
	}
	return gpu.VertexShader
}

// Source is a vertex/fragment source pair. It is not retained once the
// program has been built.
type Source struct {
	Vertex   string
	Fragment string
}

// Empty reports whether neither stage has any source.
func (s Source) Empty() bool {
	return s.Vertex == "" && s.Fragment == ""
}

// Unit is a compiled shader stage. Units only live inside CompileAndLink.
type Unit struct {
	ID       gpu.Shader
	Stage    Stage
	Compiled bool
	Log      string
}

// Program is a linked shader program. A Program value only exists once
// linking has succeeded.
type Program struct {
	ID gpu.Program

	registry *Registry
	live     bool
	units    []*Unit
	names    map[string]string
}

// Live reports whether the program object still exists on the GPU.
func (p *Program) Live() bool {
	if p.registry == nil {
		return p.live
	}
	p.registry.mu.Lock()
	defer p.registry.mu.Unlock()
	return p.live
}

// Units returns the stages still attached to the program. It is empty for
// every program returned by a Pipeline.
func (p *Program) Units() []*Unit {
	return p.units
}

// Name returns the name the program uses for a source level identifier.
// Translated programs may rename identifiers; untranslated names map to
// themselves.
func (p *Program) Name(name string) string {
	if mapped, ok := p.names[name]; ok && mapped != "" {
		return mapped
	}
	return name
}

// Dispose releases the program through its registry. Calling it more than
// once is harmless.
func (p *Program) Dispose() {
	if p.registry == nil {
		return
	}
	p.registry.Release(p)
}
