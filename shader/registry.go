package shader

import (
	"sync"

	"github.com/richinsley/gldraw/gpu"
	"github.com/sirupsen/logrus"
)

// Registry tracks every live program so a host can release them all at
// once. It is safe for concurrent use.
type Registry struct {
	ctx *gpu.Context
	log logrus.FieldLogger

	mu       sync.Mutex
	programs []*Program
}

// NewRegistry returns an empty registry for programs created on ctx.
func NewRegistry(ctx *gpu.Context, log logrus.FieldLogger) *Registry {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Registry{ctx: ctx, log: log}
}

// Register adds a linked program. Registering a program twice is ignored.
func (r *Registry) Register(p *Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.programs {
		if q == p {
			return
		}
	}
	p.registry = r
	p.live = true
	r.programs = append(r.programs, p)
}

// Release deletes p if it is still live and drops it from the registry.
func (r *Registry) Release(p *Program) {
	if p == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, q := range r.programs {
		if q == p {
			r.programs = append(r.programs[:i], r.programs[i+1:]...)
			r.destroy(p)
			return
		}
	}
}

// ReleaseAll deletes every live program, most recent first, and clears the
// current program binding.
func (r *Registry) ReleaseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.programs) == 0 {
		return
	}
	for i := len(r.programs) - 1; i >= 0; i-- {
		r.destroy(r.programs[i])
	}
	r.programs = nil
	r.ctx.UseProgram(0)
}

// Len returns the number of live programs.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.programs)
}

// Contains reports whether p is registered.
func (r *Registry) Contains(p *Program) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.programs {
		if q == p {
			return true
		}
	}
	return false
}

func (r *Registry) destroy(p *Program) {
	if !p.live {
		return
	}
	r.ctx.DeleteProgram(p.ID)
	p.live = false
	r.log.WithField("program", p.ID).Debug("program deleted")
}
