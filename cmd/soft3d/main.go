// Command soft3d renders a scene file to an image.
//
// Usage:
//
//	soft3d -scene scene.toml [-output out.png] [-width 800 -height 800]
//
// With -watch the scene is rendered again whenever the scene file or one
// of its assets changes, until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/soft3d"
	"github.com/gogpu/soft3d/scene"
)

type flags struct {
	scene   string
	output  string
	width   int
	height  int
	rle     bool
	noAO    bool
	noSSAA  bool
	verbose bool
	watch   bool
}

func main() {
	var f flags
	flag.StringVar(&f.scene, "scene", "", "scene file (.toml, .yaml or .yml)")
	flag.StringVar(&f.output, "output", "", "output image, overrides the scene")
	flag.IntVar(&f.width, "width", 0, "output width, overrides the scene")
	flag.IntVar(&f.height, "height", 0, "output height, overrides the scene")
	flag.BoolVar(&f.rle, "rle", false, "run-length encode TGA output")
	flag.BoolVar(&f.noAO, "no-ao", false, "disable ambient occlusion")
	flag.BoolVar(&f.noSSAA, "no-ssaa", false, "disable supersampling")
	flag.BoolVar(&f.verbose, "v", false, "verbose logging")
	flag.BoolVar(&f.watch, "watch", false, "render again when inputs change")
	flag.Parse()

	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	soft3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, f); err != nil && !errors.Is(err, context.Canceled) {
		soft3d.Logger().Error("render failed", "err", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	if f.scene == "" {
		return errors.New("soft3d: -scene is required")
	}
	cache := scene.NewAssetCache()
	if !f.watch {
		return render(ctx, f, cache)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("soft3d: watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := render(ctx, f, cache); err != nil {
		soft3d.Logger().Error("render failed", "err", err)
	}
	if err := watchInputs(w, f.scene); err != nil {
		return err
	}

	// Editors often write a file in several steps; wait for them to settle.
	const settle = 200 * time.Millisecond
	timer := time.NewTimer(settle)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				soft3d.Logger().Debug("input changed", "path", ev.Name, "op", ev.Op.String())
				timer.Reset(settle)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			soft3d.Logger().Warn("watch error", "err", err)
		case <-timer.C:
			cache.Clear()
			if err := render(ctx, f, cache); err != nil {
				soft3d.Logger().Error("render failed", "err", err)
			}
			if err := watchInputs(w, f.scene); err != nil {
				return err
			}
		}
	}
}

// watchInputs watches the directories holding the scene file and its
// assets. Directories are watched instead of files so that editors which
// replace the file on save are still seen.
func watchInputs(w *fsnotify.Watcher, path string) error {
	dirs := map[string]bool{filepath.Dir(path): true}
	if cfg, err := scene.Load(path); err == nil {
		for _, o := range cfg.Objects {
			for _, p := range []string{o.Mesh, o.Diffuse, o.Normal, o.Specular} {
				if p != "" {
					dirs[filepath.Dir(p)] = true
				}
			}
		}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("soft3d: watch %s: %w", dir, err)
		}
	}
	return nil
}

func render(ctx context.Context, f flags, cache *scene.AssetCache) error {
	cfg, err := scene.Load(f.scene)
	if err != nil {
		return err
	}
	if f.output != "" {
		cfg.Output = f.output
	}
	if f.width > 0 {
		cfg.Width = f.width
	}
	if f.height > 0 {
		cfg.Height = f.height
	}
	if f.noAO {
		cfg.AmbientOcclusion = false
	}
	if f.noSSAA {
		cfg.Supersample = false
	}

	r, err := scene.NewRenderer(cfg, scene.WithAssetCache(cache))
	if err != nil {
		return err
	}
	frame, err := r.Render(ctx)
	if err != nil {
		return err
	}
	if err := scene.SaveImage(cfg.Output, frame, f.rle); err != nil {
		return err
	}
	soft3d.Logger().Info("image saved", "path", cfg.Output, "width", frame.Width(), "height", frame.Height())
	return nil
}
