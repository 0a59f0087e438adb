package main

import (
	"context"
	"testing"

	"github.com/richinsley/gldraw/assets"
	"github.com/richinsley/gldraw/console"
	"github.com/richinsley/gldraw/effects"
	"github.com/richinsley/gldraw/gpu"
	"github.com/richinsley/gldraw/gpu/gputest"
	"github.com/richinsley/gldraw/renderer"
	"github.com/richinsley/gldraw/shader"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	gputest.Surface
	frames   int
	closeAt  int
	title    string
	shutdown bool
}

func (w *fakeWindow) MakeCurrent()          {}
func (w *fakeWindow) Shutdown()             { w.shutdown = true }
func (w *fakeWindow) ShouldClose() bool     { return w.closeAt > 0 && w.frames >= w.closeAt }
func (w *fakeWindow) EndFrame()             { w.frames++ }
func (w *fakeWindow) Time() float64         { return float64(w.frames) / 60 }
func (w *fakeWindow) SetTitle(title string) { w.title = title }

func newTestHost(t *testing.T, win *fakeWindow, effect string) (*host, *gputest.Device, *console.Buffer) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	loader := assets.NewLoader(assets.DataURLs, assets.WithLogger(logger))
	loader.Load(context.Background())
	loader.Wait()

	dev := gputest.New()
	ctx := gpu.NewContext(dev, win)
	pl := shader.NewPipeline(ctx, shader.NewRegistry(ctx, logger), shader.WithLogger(logger))
	executor := renderer.NewExecutor(pl, loader, renderer.WithLogger(logger))

	buf := &console.Buffer{}
	h, err := newHost(win, executor, buf, renderer.Color{}, effect)
	require.NoError(t, err)
	return h, dev, buf
}

func TestHostFrames(t *testing.T) {
	win := &fakeWindow{Surface: gputest.Surface{Width: 640, Height: 480}}
	h, dev, buf := newTestHost(t, win, "texture")

	assert.Equal(t, 3, h.run(3))
	assert.Equal(t, 3, win.frames)
	assert.Len(t, dev.Draws, 3)
	assert.Equal(t, 0, dev.LiveTotal())
	assert.Equal(t, []string{"texture"}, buf.Lines())
	assert.Equal(t, "texture", win.title)
}

func TestHostStopsWhenWindowCloses(t *testing.T) {
	win := &fakeWindow{Surface: gputest.Surface{Width: 64, Height: 64}, closeAt: 2}
	h, _, _ := newTestHost(t, win, "clear")
	assert.Equal(t, 2, h.run(0))
}

func TestHostSwitchesEffects(t *testing.T) {
	win := &fakeWindow{Surface: gputest.Surface{Width: 64, Height: 64}}
	h, dev, buf := newTestHost(t, win, "texture")

	h.next()
	h.frame()
	assert.Equal(t, []string{"clear"}, buf.Lines())
	assert.Equal(t, "clear", win.title)
	h.prev()
	h.prev()
	h.frame()
	assert.Equal(t, []string{"shape"}, buf.Lines())
	assert.Equal(t, "shape", win.title)
	assert.Equal(t, gpu.TriangleStrip, dev.Draws[len(dev.Draws)-1].Mode)
}

func TestHostReportsErrorsOnce(t *testing.T) {
	win := &fakeWindow{Surface: gputest.Surface{Width: 64, Height: 64}}
	h, dev, buf := newTestHost(t, win, "shape")
	dev.CompileFunc = func(gpu.Enum, string) (bool, string) { return false, "ERROR: 0:1: no GPU" }

	h.run(3)
	lines := buf.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "DrawShape")
	assert.Contains(t, lines[1], "no GPU")
	assert.Equal(t, "shape | "+lines[1], win.title)
	assert.Equal(t, 0, dev.LiveTotal())
}

func TestNewHostUnknownEffect(t *testing.T) {
	_, err := newHost(&fakeWindow{}, nil, &console.Buffer{}, renderer.Color{}, "cube")
	assert.Error(t, err)
}

func TestReportTextures(t *testing.T) {
	logger, _ := test.NewNullLogger()
	loader := assets.NewLoader(assets.DataURLs, assets.WithLogger(logger))
	loader.Load(context.Background())
	loader.Wait()

	buf := &console.Buffer{}
	assert.Equal(t, len(assets.DataURLs), reportTextures(loader, buf))
	assert.Empty(t, buf.Lines())

	loader = assets.NewLoader(map[string]string{
		effects.DaisyTexture: "data:image/png;base64,AAAA",
		"1px":                assets.DataURLs["1px"],
	}, assets.WithLogger(logger))
	loader.Load(context.Background())
	loader.Wait()

	buf = &console.Buffer{}
	assert.Equal(t, 1, reportTextures(loader, buf))
	lines := buf.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], effects.DaisyTexture)
	assert.Equal(t, "texture tex/daisy.png is unavailable", lines[1])
}
