package shader

import (
	"errors"
	"sync"
	"testing"

	"github.com/richinsley/gldraw/gpu"
	"github.com/richinsley/gldraw/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVertex = `#version 300 es
in vec4 aPosition;
in vec4 aColor;
uniform mat4 uModelViewMatrix;
uniform mat4 uProjectionMatrix;
out lowp vec4 vColor;
void main() {
  gl_Position = uProjectionMatrix * uModelViewMatrix * aPosition;
  vColor = aColor;
}
`

const testFragment = `#version 300 es
precision mediump float;
in lowp vec4 vColor;
out vec4 outColor;
void main() {
  outColor = vColor;
}
`

func newTestPipeline(t *testing.T, opts ...Option) (*Pipeline, *gputest.Device) {
	t.Helper()
	ctx, dev := gputest.NewContext(640, 480)
	return NewPipeline(ctx, NewRegistry(ctx, nil), opts...), dev
}

func TestCompileAndLink(t *testing.T) {
	pl, dev := newTestPipeline(t)

	prog, err := pl.CompileAndLink(Source{Vertex: testVertex, Fragment: testFragment})
	require.NoError(t, err)

	assert.True(t, prog.Live())
	assert.True(t, dev.IsProgram(prog.ID))
	assert.Empty(t, prog.Units())
	assert.Equal(t, 1, dev.Live(gputest.KindProgram))
	assert.Equal(t, 0, dev.Live(gputest.KindShader))
	assert.Equal(t, 2, dev.Created(gputest.KindShader))
	assert.Equal(t, prog.ID, dev.CurrentProgram)
	assert.True(t, pl.Registry().Contains(prog))
	assert.Equal(t, 1, pl.Registry().Len())
	assert.Empty(t, dev.Errors)
}

func TestVertexCompileFailure(t *testing.T) {
	pl, dev := newTestPipeline(t)

	_, err := pl.CompileAndLink(Source{Vertex: "#error broken\n", Fragment: testFragment})
	var cerr *CompilationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, StageVertex, cerr.Stage)
	assert.Contains(t, cerr.Log, "#error")

	// The fragment stage is never attempted.
	assert.Equal(t, 1, dev.Created(gputest.KindShader))
	assert.Equal(t, 0, dev.LiveTotal())
	assert.Equal(t, 0, pl.Registry().Len())
}

func TestFragmentCompileFailureLeaksNothing(t *testing.T) {
	pl, dev := newTestPipeline(t)

	_, err := pl.CompileAndLink(Source{Vertex: testVertex, Fragment: "void mian() {}"})
	var cerr *CompilationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, StageFragment, cerr.Stage)
	assert.NotEmpty(t, cerr.Log)

	assert.Equal(t, 2, dev.Created(gputest.KindShader))
	assert.Equal(t, 2, dev.Deleted(gputest.KindShader))
	assert.Equal(t, 0, dev.Created(gputest.KindProgram))
	assert.Equal(t, 0, dev.LiveTotal())
}

func TestLinkFailure(t *testing.T) {
	pl, dev := newTestPipeline(t)

	// The fragment stage reads a varying the vertex stage never writes.
	vertex := `#version 300 es
in vec4 aPosition;
void main() { gl_Position = aPosition; }
`
	_, err := pl.CompileAndLink(Source{Vertex: vertex, Fragment: testFragment})
	var lerr *LinkError
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, lerr.Log, "vColor")

	var cerr *CompilationError
	assert.False(t, errors.As(err, &cerr))
	assert.Equal(t, 1, dev.Created(gputest.KindProgram))
	assert.Equal(t, 0, dev.LiveTotal())
	assert.Equal(t, gpu.Program(0), dev.CurrentProgram)
	assert.Equal(t, 0, pl.Registry().Len())
	assert.Empty(t, dev.Errors)
}

func TestShadersDetachedBeforeDelete(t *testing.T) {
	pl, dev := newTestPipeline(t)
	_, err := pl.CompileAndLink(Source{Vertex: testVertex, Fragment: testFragment})
	require.NoError(t, err)

	var detach, del int
	for i, c := range dev.Calls {
		switch c {
		case "DetachShader":
			detach = i
		case "DeleteShader":
			del = i
		}
	}
	assert.Less(t, detach, del)
}

type fakeTranslator struct {
	fail  Stage
	err   error
	calls int
}

func (f *fakeTranslator) Translate(src string, stage Stage) (string, map[string]string, error) {
	f.calls++
	if f.err != nil && stage == f.fail {
		return "", nil, f.err
	}
	return src, map[string]string{"uProjectionMatrix": "_uuProjectionMatrix"}, nil
}

func TestTranslatorNames(t *testing.T) {
	tr := &fakeTranslator{}
	pl, _ := newTestPipeline(t, WithTranslator(tr))

	prog, err := pl.CompileAndLink(Source{Vertex: testVertex, Fragment: testFragment})
	require.NoError(t, err)
	assert.Equal(t, 2, tr.calls)
	assert.Equal(t, "_uuProjectionMatrix", prog.Name("uProjectionMatrix"))
	assert.Equal(t, "aPosition", prog.Name("aPosition"))
}

func TestTranslatorFailureAllocatesNothing(t *testing.T) {
	cause := errors.New("syntax error")
	tr := &fakeTranslator{fail: StageFragment, err: cause}
	pl, dev := newTestPipeline(t, WithTranslator(tr))

	_, err := pl.CompileAndLink(Source{Vertex: testVertex, Fragment: testFragment})
	var cerr *CompilationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, StageFragment, cerr.Stage)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to compile fragment shader: syntax error", err.Error())
	assert.Equal(t, 0, dev.Created(gputest.KindShader))
}

func TestRegistryRelease(t *testing.T) {
	pl, dev := newTestPipeline(t)
	prog, err := pl.CompileAndLink(Source{Vertex: testVertex, Fragment: testFragment})
	require.NoError(t, err)

	prog.Dispose()
	prog.Dispose()
	pl.Registry().Release(prog)

	assert.False(t, prog.Live())
	assert.False(t, dev.IsProgram(prog.ID))
	assert.Equal(t, 1, dev.Deleted(gputest.KindProgram))
	assert.Equal(t, 0, pl.Registry().Len())
	assert.False(t, pl.Registry().Contains(prog))
}

func TestRegistryReleaseAll(t *testing.T) {
	pl, dev := newTestPipeline(t)
	var progs []*Program
	for i := 0; i < 3; i++ {
		p, err := pl.CompileAndLink(Source{Vertex: testVertex, Fragment: testFragment})
		require.NoError(t, err)
		progs = append(progs, p)
	}
	require.Equal(t, 3, pl.Registry().Len())

	pl.Registry().ReleaseAll()
	assert.Equal(t, 0, pl.Registry().Len())
	assert.Equal(t, 0, dev.Live(gputest.KindProgram))
	assert.Equal(t, gpu.Program(0), dev.CurrentProgram)
	for _, p := range progs {
		assert.False(t, p.Live())
	}

	calls := len(dev.Calls)
	pl.Registry().ReleaseAll()
	assert.Equal(t, calls, len(dev.Calls))
	assert.Equal(t, 3, dev.Deleted(gputest.KindProgram))
}

func TestRegistryConcurrentRelease(t *testing.T) {
	pl, dev := newTestPipeline(t)
	prog, err := pl.CompileAndLink(Source{Vertex: testVertex, Fragment: testFragment})
	require.NoError(t, err)

	// The fake device is not goroutine safe; the registry lock serializes
	// the deletes.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); prog.Dispose() }()
		go func() { defer wg.Done(); pl.Registry().ReleaseAll() }()
	}
	wg.Wait()
	assert.Equal(t, 1, dev.Deleted(gputest.KindProgram))
}
