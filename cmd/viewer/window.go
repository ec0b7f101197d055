package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"car-viewer/internal/app"
	"car-viewer/internal/commands"
	"car-viewer/internal/config"
	"car-viewer/internal/drive"
	"car-viewer/internal/fonts"
	"car-viewer/internal/graphics"
	"car-viewer/internal/hud"
	"car-viewer/internal/model"
	"car-viewer/internal/terminal"
	"car-viewer/internal/viewer"
	"car-viewer/internal/watch"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func runWindow(opts *options) error {
	log := newLogger(os.Stderr, opts.logLevel)
	slog.SetDefault(log)

	cfg, err := loadSettings(opts, log)
	if err != nil {
		return err
	}
	a, err := newApp(cfg, cfg.Chat.LogPath, log)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr := newTranscriber(cfg, log)
	reload := func() error {
		go loadModel(ctx, a, cfg.Model.Path)
		if cfg.Materials.File != "" {
			go loadMaterials(ctx, a, cfg)
		}
		return nil
	}
	if cfg.Model.Watch {
		if err := startWatcher(ctx, a, cfg, log); err != nil {
			log.Warn("Hot reload disabled", slog.String("error", err.Error()))
		}
	}
	go loadModel(ctx, a, cfg.Model.Path)

	var (
		view     *viewer.Viewer
		overlay  = hud.New(tr.Available())
		term     = terminal.New(a.Log(), commands.Configurator(a, reload), a)
		uploaded *model.Node
	)
	overlay.ShowFPS = true

	initGPU := func() error {
		view = viewer.New(log)
		if cfg.Window.Font != "" {
			path, err := fonts.Find(fonts.BaseDirs(), cfg.Window.Font)
			if err != nil {
				log.Warn("Using the default font", slog.String("error", err.Error()))
				return nil
			}
			font := rl.LoadFont(path)
			term.SetFont(font)
			overlay.SetFont(font)
		}
		return nil
	}
	update := func(dt float32) {
		term.Update()
		if !term.IsOpen() {
			hud.Controls(a)
			if rl.IsKeyPressed(rl.KeyV) {
				a.Listen(ctx, tr)
			}
		}
		a.Drain()
		if root := a.Root(); root != nil && root != uploaded {
			if err := view.Load(a.ModelPath(), root, a.Groups()); err != nil {
				log.Error("GPU upload failed", slog.String("error", err.Error()))
			}
			uploaded = root
		}
		a.Update(dt, driveInput(term.IsOpen()))
		view.Update(a)
	}
	draw := func() {
		view.Draw(a)
		overlay.Draw(a)
		term.Draw()
	}
	defer func() {
		if view != nil {
			view.Close()
		}
	}()
	return graphics.Run(cfg.Window, initGPU, update, draw)
}

func driveInput(typing bool) drive.Input {
	var in drive.Input
	if typing {
		return in
	}
	if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
		in.Throttle++
	}
	if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
		in.Throttle--
	}
	if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
		in.Steer++
	}
	if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
		in.Steer--
	}
	return in
}

func startWatcher(ctx context.Context, a *app.App, cfg *config.Config, log *slog.Logger) error {
	w, err := watch.New([]string{cfg.Model.Path, cfg.Materials.File}, cfg.Model.Debounce, log)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		_ = w.Stop()
		return err
	}
	modelAbs, _ := filepath.Abs(cfg.Model.Path)
	go func() {
		defer w.Stop()
		for ev := range w.Events() {
			if ev.Removed {
				log.Warn("Watched file removed", slog.String("path", ev.Path))
				continue
			}
			if ev.Path == modelAbs {
				log.Info("Model changed, reloading", slog.String("path", ev.Path))
				loadModel(ctx, a, cfg.Model.Path)
				continue
			}
			log.Info("Materials changed, reloading", slog.String("path", ev.Path))
			loadMaterials(ctx, a, cfg)
		}
	}()
	return nil
}
