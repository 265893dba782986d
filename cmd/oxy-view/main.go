// Command oxy-view opens a window and draws a scene with the WebGPU forward pipeline.
// WASD or the arrow keys move, Space and Left Shift rise and sink, and dragging with the
// right mouse button looks around.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/config"
	"github.com/Carmen-Shannon/oxy-forward/engine"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-forward/engine/shading"
	"github.com/Carmen-Shannon/oxy-forward/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "oxy-view: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML scene description (default: the demo scene)")
	preset := flag.String("preset", "", "override the shading preset (basic, lit, ground)")
	msaa := flag.Bool("msaa", false, "enable 4x multisampling")
	uncapped := flag.Bool("uncapped", false, "present without vsync")
	cull := flag.Bool("cull-back", false, "cull back faces")
	profile := flag.Bool("profile", false, "log frame rate and memory once per second")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	common.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if *preset != "" {
		sc, err := shading.PresetConfig(shading.Preset(*preset))
		if err != nil {
			return err
		}
		cfg.Preset, cfg.Shading = shading.Preset(*preset), sc
	}

	eng := engine.NewEngine(
		engine.WithProfiling(*profile),
		engine.WithTickRate(60),
		engine.WithWindow(window.NewWindow(
			window.WithTitle("oxy-forward"),
			window.WithSize(cfg.Output.Width, cfg.Output.Height),
		)),
	)
	win := eng.Window()

	var rendererOpts []renderer.RendererBuilderOption
	if *msaa {
		rendererOpts = append(rendererOpts, renderer.WithMSAA(renderer.MSAA4x))
	}
	if *uncapped {
		rendererOpts = append(rendererOpts, renderer.WithPresentMode(renderer.PresentModeUncapped))
	}
	r := renderer.NewRenderer(renderer.BackendTypeWGPU, win, rendererOpts...)
	defer r.Release()

	sc, err := cfg.NewScene("oxy-view", win.Width(), win.Height())
	if err != nil {
		return err
	}
	defer sc.Release()

	var pipelineOpts []pipeline.PipelineBuilderOption
	if *cull {
		pipelineOpts = append(pipelineOpts, pipeline.WithCullMode(wgpu.CullModeBack))
	}
	if err := sc.AttachRenderer(r, pipelineOpts...); err != nil {
		return err
	}
	eng.AddScene(0, sc)

	eng.Run()
	return nil
}
