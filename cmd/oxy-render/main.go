// Command oxy-render renders a scene with the CPU forward stage and writes PNG frames.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/config"
	"github.com/Carmen-Shannon/oxy-forward/engine/raster"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-forward/engine/shading"
	"github.com/schollz/progressbar/v3"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "oxy-render: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML scene description (default: the demo scene)")
	out := flag.String("out", "frame.png", "output PNG; with -frames > 1 the frame number is inserted before the extension")
	width := flag.Int("width", 0, "override the output width")
	height := flag.Int("height", 0, "override the output height")
	frames := flag.Int("frames", 0, "override the number of frames")
	preset := flag.String("preset", "", "override the shading preset (basic, lit, ground)")
	emitWGSL := flag.String("emit-wgsl", "", "also write the generated WGSL for the scene configuration to this path")
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
	if *width > 0 {
		cfg.Output.Width = *width
	}
	if *height > 0 {
		cfg.Output.Height = *height
	}
	if *frames > 0 {
		cfg.Output.Frames = *frames
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if *emitWGSL != "" {
		if err := writeWGSL(*emitWGSL, cfg.Shading); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return render(ctx, cfg, *out)
}

// writeWGSL generates the forward shader, checks it against the Go records and with naga,
// then writes it.
func writeWGSL(path string, cfg shading.Config) error {
	src, err := shader.Generate(cfg)
	if err != nil {
		return err
	}
	if err := shader.ValidateLayout(src, shader.ForwardExpectations(cfg)); err != nil {
		return err
	}
	if _, err := shader.Compile(src); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	common.Logger().Info("wrote shader", "path", path, "bytes", len(src))
	return nil
}

func render(ctx context.Context, cfg config.Config, out string) error {
	w, h, n := cfg.Output.Width, cfg.Output.Height, cfg.Output.Frames
	sc, err := cfg.NewScene("oxy-render", w, h)
	if err != nil {
		return err
	}
	defer sc.Release()
	target := raster.NewColorBuffer(w, h)
	dt := 1 / cfg.Output.FPS

	var bar *progressbar.ProgressBar
	if n > 1 {
		bar = progressbar.Default(int64(n), "rendering")
		defer bar.Close()
	}

	var total raster.Stats
	for i := range n {
		if i > 0 {
			sc.Update(dt)
		}
		target.Clear(raster.ClearColor)
		stats, err := sc.RenderCPU(ctx, target)
		if err != nil {
			return err
		}
		total.Add(stats)

		path := framePath(out, i, n)
		if err := writePNG(path, target.RGBA()); err != nil {
			return err
		}
		if bar != nil {
			_ = bar.Add(1)
		} else {
			common.Logger().Info("wrote frame", "path", path, "fragments", stats.Fragments)
		}
	}

	common.Logger().Debug("render finished",
		"frames", n,
		"triangles", total.Triangles,
		"rejected", total.Rejected,
		"culled", total.Culled,
		"fragments", total.Fragments)
	return nil
}

// framePath numbers out when more than one frame is rendered: frame.png becomes frame_0003.png.
func framePath(out string, i, n int) string {
	if n <= 1 {
		return out
	}
	ext := filepath.Ext(out)
	return fmt.Sprintf("%s_%04d%s", strings.TrimSuffix(out, ext), i, ext)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
