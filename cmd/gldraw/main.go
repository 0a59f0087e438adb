package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/gldraw/assets"
	"github.com/richinsley/gldraw/console"
	"github.com/richinsley/gldraw/effects"
	"github.com/richinsley/gldraw/glfwcontext"
	"github.com/richinsley/gldraw/gpu"
	"github.com/richinsley/gldraw/gpu/gl41"
	"github.com/richinsley/gldraw/options"
	"github.com/richinsley/gldraw/renderer"
	"github.com/richinsley/gldraw/shader"
	"github.com/richinsley/gldraw/translator"
	"github.com/sirupsen/logrus"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts, err := options.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logrus.Fatalf("Invalid options: %v", err)
	}

	if *opts.Help {
		fmt.Println("gldraw: draws WebGL2 style geometry effects")
		flag.PrintDefaults()
		return
	}
	if *opts.List {
		for _, name := range effects.Names() {
			fmt.Println(name)
		}
		return
	}

	level, _ := opts.Level()
	logrus.SetLevel(level)

	if err := run(opts, logrus.StandardLogger()); err != nil {
		logrus.Fatal(err)
	}
}

func run(opts *options.DrawOptions, log *logrus.Logger) error {
	if _, err := effects.Lookup(*opts.Effect); err != nil {
		return err
	}

	// Decoding runs while the window and context come up.
	loader := assets.NewLoader(assets.DataURLs, assets.WithLogger(log))
	loader.Load(context.Background())

	if err := glfwcontext.InitGraphics(); err != nil {
		return err
	}
	defer glfwcontext.TerminateGraphics()

	win, err := glfwcontext.New(opts)
	if err != nil {
		return err
	}
	defer win.Shutdown()
	win.MakeCurrent()

	funcs, err := gl41.New()
	if err != nil {
		return err
	}
	defer funcs.Close()
	log.Infof("OpenGL version: %s", funcs.Version())

	ctx := gpu.NewContext(funcs, win)
	registry := shader.NewRegistry(ctx, log)
	defer registry.ReleaseAll()

	pipelineOpts := []shader.Option{shader.WithLogger(log)}
	if *opts.Translate {
		tr, err := translator.NewGLSL410()
		if err != nil {
			return err
		}
		pipelineOpts = append(pipelineOpts, shader.WithTranslator(tr))
	}
	pipeline := shader.NewPipeline(ctx, registry, pipelineOpts...)

	executorOpts := []renderer.Option{
		renderer.WithLogger(log),
		renderer.WithTextureWrap(renderer.WrapMode(*opts.Wrap)),
	}
	if *opts.Filter != "" {
		minFilter, magFilter := renderer.FilterMode(*opts.Filter)
		executorOpts = append(executorOpts, renderer.WithTextureFilter(minFilter, magFilter))
	}
	executor := renderer.NewExecutor(pipeline, loader, executorOpts...)

	r, g, b, _ := opts.BackgroundColor()
	bg := renderer.Color{R: r, G: g, B: b}

	out := console.NewLog(log)
	h, err := newHost(win, executor, out, bg, *opts.Effect)
	if err != nil {
		return err
	}
	win.RegisterKeyCallback(glfw.KeyRight, h.next)
	win.RegisterKeyCallback(glfw.KeyLeft, h.prev)

	log.Debugf("Waiting on %d textures", loader.Pending())
	loader.Wait()
	ready := reportTextures(loader, out)
	log.Debugf("%d of %d textures ready", ready, len(loader.Keys()))

	n := h.run(*opts.Frames)
	log.Debugf("Drew %d frames", n)
	return nil
}
