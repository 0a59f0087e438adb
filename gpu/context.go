package gpu

// Surface is the drawable the context renders into.
type Surface interface {
	GetFramebufferSize() (int, int)
}

// Context is the handle to the active rendering context. It embeds the
// function table so callers issue GPU commands directly on it.
type Context struct {
	Functions
	surface Surface
}

// NewContext wraps a function table and the surface it draws to.
func NewContext(f Functions, s Surface) *Context {
	return &Context{Functions: f, surface: s}
}

// Size returns the framebuffer size of the surface.
func (c *Context) Size() (int, int) {
	if c.surface == nil {
		return 0, 0
	}
	return c.surface.GetFramebufferSize()
}

// Aspect returns width/height of the surface, or 1 for a degenerate surface.
func (c *Context) Aspect() float32 {
	w, h := c.Size()
	if w <= 0 || h <= 0 {
		return 1
	}
	return float32(w) / float32(h)
}
