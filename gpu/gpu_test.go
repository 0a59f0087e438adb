package gpu_test

import (
	"testing"

	"github.com/richinsley/gldraw/gpu"
	"github.com/richinsley/gldraw/gpu/gputest"
	"github.com/stretchr/testify/assert"
)

func TestSizeOf(t *testing.T) {
	assert.Equal(t, 1, gpu.SizeOf(gpu.Byte))
	assert.Equal(t, 1, gpu.SizeOf(gpu.UnsignedByte))
	assert.Equal(t, 2, gpu.SizeOf(gpu.UnsignedShort))
	assert.Equal(t, 4, gpu.SizeOf(gpu.Float))
	assert.Equal(t, 0, gpu.SizeOf(gpu.RGBA))
}

func TestTopology(t *testing.T) {
	assert.Equal(t, "points", gpu.Topology(0))
	assert.Equal(t, "triangle-fan", gpu.Topology(gpu.TriangleFan))
	assert.Equal(t, "unknown", gpu.Topology(gpu.Enum(0x000A)))
}

func TestContextAspect(t *testing.T) {
	ctx, _ := gputest.NewContext(300, 150)
	w, h := ctx.Size()
	assert.Equal(t, 300, w)
	assert.Equal(t, 150, h)
	assert.Equal(t, float32(2), ctx.Aspect())

	ctx, _ = gputest.NewContext(300, 0)
	assert.Equal(t, float32(1), ctx.Aspect())

	assert.Equal(t, float32(1), gpu.NewContext(gputest.New(), nil).Aspect())
}
