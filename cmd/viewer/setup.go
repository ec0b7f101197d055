package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"car-viewer/internal/app"
	"car-viewer/internal/config"
	"car-viewer/internal/logger"
	"car-viewer/internal/material"
	"car-viewer/internal/model"
	"car-viewer/internal/voice"

	"github.com/joho/godotenv"
)

const defaultConfigHint = config.DefaultPath

// apiKeyEnv holds the transcription API key, read from the environment or .env.
const apiKeyEnv = "OPENAI_API_KEY"

func newLogger(w io.Writer, level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// loadSettings reads .env and the config file and applies command-line overrides.
func loadSettings(opts *options, log *slog.Logger) (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("Ignoring unreadable .env", slog.String("error", err.Error()))
	}
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.modelPath != "" {
		cfg.Model.Path = opts.modelPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadLibrary(cfg *config.Config) (*material.Library, error) {
	if cfg.Materials.File == "" {
		return material.Default(), nil
	}
	return material.Load(cfg.Materials.File)
}

func newTranscriber(cfg *config.Config, log *slog.Logger) voice.Transcriber {
	if cfg.Voice.Provider != config.VoiceWhisper {
		return voice.Unsupported{}
	}
	key := os.Getenv(apiKeyEnv)
	if key == "" {
		log.Warn("Voice input disabled: no API key", slog.String("env", apiKeyEnv))
		return voice.Unsupported{}
	}
	w := voice.NewWhisper(key, cfg.Voice.Endpoint, cfg.Voice.Model, voice.ClipSource{Path: cfg.Voice.ClipPath})
	return voice.WithTimeout(w, cfg.Voice.Timeout)
}

// newApp builds the configurator state with the conversation log from cfg.
func newApp(cfg *config.Config, logPath string, log *slog.Logger) (*app.App, error) {
	lib, err := loadLibrary(cfg)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, lib, logger.New(logPath), log)
}

// loadModel decodes path and delivers the result, successful or not.
func loadModel(ctx context.Context, a *app.App, path string) {
	root, err := model.LoadGLTF(path)
	a.Deliver(ctx, app.ModelLoaded{Root: root, Path: path, Err: err})
}

// loadMaterials re-reads the material library and delivers it.
func loadMaterials(ctx context.Context, a *app.App, cfg *config.Config) {
	lib, err := loadLibrary(cfg)
	if err != nil {
		err = fmt.Errorf("%s: %w", cfg.Materials.File, err)
	}
	a.Deliver(ctx, app.LibraryLoaded{Library: lib, Err: err})
}
