package main

import (
	"fmt"
	"strings"

	"github.com/richinsley/gldraw/assets"
	"github.com/richinsley/gldraw/console"
	"github.com/richinsley/gldraw/effects"
	"github.com/richinsley/gldraw/graphics"
	"github.com/richinsley/gldraw/renderer"
)

// statusRows is how many console lines the window title shows.
const statusRows = 2

// host runs the selected effect once per frame until the window closes or
// the frame budget runs out.
type host struct {
	win      graphics.Context
	executor *renderer.Executor
	out      console.Console
	status   *console.Buffer
	bg       renderer.Color

	names   []string
	current int
	changed bool
	lastErr string
}

func newHost(win graphics.Context, executor *renderer.Executor, out console.Console, bg renderer.Color, effect string) (*host, error) {
	if _, err := effects.Lookup(effect); err != nil {
		return nil, err
	}
	h := &host{
		win:      win,
		executor: executor,
		status:   &console.Buffer{Rows: statusRows, Max: 64},
		bg:       bg,
		names:    effects.Names(),
		changed:  true,
	}
	h.out = console.Tee(out, h.status, console.Func(func(string) {
		win.SetTitle(strings.Join(h.status.Visible(), " | "))
	}))
	for i, name := range h.names {
		if name == effect {
			h.current = i
		}
	}
	return h, nil
}

func (h *host) next() {
	h.current = (h.current + 1) % len(h.names)
	h.changed = true
}

func (h *host) prev() {
	h.current = (h.current + len(h.names) - 1) % len(h.names)
	h.changed = true
}

// frame draws the current effect once. A failing effect is reported once
// until it changes or starts failing differently.
func (h *host) frame() {
	name := h.names[h.current]
	if h.changed {
		h.out.Clear()
		h.out.Println(name)
		h.changed = false
		h.lastErr = ""
	}
	routine, _ := effects.Lookup(name)
	if err := routine(h.executor, h.bg); err != nil && err.Error() != h.lastErr {
		h.lastErr = err.Error()
		h.out.Println(h.lastErr)
	}
	h.win.EndFrame()
}

// run draws frames until the window closes, or at most frames times when
// frames is positive. It returns the number of frames drawn.
func (h *host) run(frames int) int {
	n := 0
	for !h.win.ShouldClose() && (frames <= 0 || n < frames) {
		h.frame()
		n++
	}
	return n
}

// reportTextures prints every decode failure and every texture an effect
// reads that did not decode. It returns the number of textures ready.
func reportTextures(loader *assets.Loader, out console.Console) int {
	for _, err := range loader.Errors() {
		out.Println(err.Error())
	}
	for _, key := range effects.Textures() {
		if s, ok := loader.State(key); !ok || s != assets.Ready {
			out.Println(fmt.Sprintf("texture %s is unavailable", key))
		}
	}
	ready := 0
	for _, key := range loader.Keys() {
		if s, _ := loader.State(key); s == assets.Ready {
			ready++
		}
	}
	return ready
}
