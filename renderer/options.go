package renderer

import (
	"github.com/richinsley/gldraw/gpu"
	"github.com/sirupsen/logrus"
)

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger draws are reported to.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Executor) { e.log = log }
}

// WithTextureFilter sets the filters used when a TextureBinding leaves them
// unset.
func WithTextureFilter(minFilter, magFilter gpu.Enum) Option {
	return func(e *Executor) {
		e.minFilter = minFilter
		e.magFilter = magFilter
	}
}

// WithTextureWrap sets the wrap mode used when a TextureBinding leaves it
// unset.
func WithTextureWrap(wrap gpu.Enum) Option {
	return func(e *Executor) { e.wrap = wrap }
}
