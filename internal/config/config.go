// Package config holds viewer preferences. Values come from built-in defaults, then a
// YAML file, then command-line overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"car-viewer/internal/lighting"
	"car-viewer/internal/logger"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file, relative to the process working directory.
const DefaultPath = "config/viewer.yaml"

// Config is the complete viewer configuration.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Model     ModelConfig     `yaml:"model"`
	Materials MaterialsConfig `yaml:"materials"`
	Lighting  LightingConfig  `yaml:"lighting"`
	Camera    CameraConfig    `yaml:"camera"`
	Chat      ChatConfig      `yaml:"chat"`
	Voice     VoiceConfig     `yaml:"voice"`
}

// WindowConfig sizes the render window. Zero width or height means the monitor size.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int    `yaml:"target_fps"`
	Fullscreen bool   `yaml:"fullscreen"`
	// Font is a font file or a family name under assets/fonts for the HUD and terminal.
	// Empty uses raylib's built-in font.
	Font string `yaml:"font"`
}

// ModelConfig points at the car asset (.gltf or .glb).
type ModelConfig struct {
	Path string `yaml:"path"`
	// Watch reloads the model when the file changes on disk.
	Watch bool `yaml:"watch"`
	// Debounce is how long to wait for more file changes before reloading.
	Debounce time.Duration `yaml:"debounce"`
}

// MaterialsConfig selects the material library and the initial picks.
type MaterialsConfig struct {
	// File is a YAML material library; empty uses the built-in palette.
	File  string `yaml:"file"`
	Body  string `yaml:"body"`
	Rims  string `yaml:"rims"`
	Glass string `yaml:"glass"`
}

// LightingConfig lists the presets and which one starts active.
type LightingConfig struct {
	Initial string            `yaml:"initial"`
	Presets []lighting.Preset `yaml:"presets"`
}

// CameraConfig tunes the follow camera.
type CameraConfig struct {
	Follow    bool    `yaml:"follow"`
	Distance  float32 `yaml:"distance"`
	Height    float32 `yaml:"height"`
	Smoothing float32 `yaml:"smoothing"`
}

// ChatConfig configures the conversation log.
type ChatConfig struct {
	LogPath string `yaml:"log_path"`
}

// VoiceConfig configures push-to-talk transcription.
type VoiceConfig struct {
	// Provider is "none" or "whisper".
	Provider string        `yaml:"provider"`
	Endpoint string        `yaml:"endpoint"`
	Model    string        `yaml:"model"`
	ClipPath string        `yaml:"clip_path"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Voice providers.
const (
	VoiceNone    = "none"
	VoiceWhisper = "whisper"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "car viewer",
			Width:     1280,
			Height:    720,
			TargetFPS: 60,
		},
		Model: ModelConfig{
			Path:     "assets/models/car.glb",
			Watch:    true,
			Debounce: 300 * time.Millisecond,
		},
		Materials: MaterialsConfig{
			Body:  "red",
			Rims:  "silver",
			Glass: "tinted",
		},
		Lighting: LightingConfig{
			Initial: "studio",
			Presets: lighting.DefaultPresets(),
		},
		Camera: CameraConfig{
			Follow:    true,
			Distance:  7,
			Height:    2.5,
			Smoothing: 4,
		},
		Chat: ChatConfig{
			LogPath: logger.DefaultPath,
		},
		Voice: VoiceConfig{
			Provider: VoiceNone,
			Endpoint: "https://api.openai.com/v1/audio/transcriptions",
			Model:    "whisper-1",
			ClipPath: "assets/voice/clip.wav",
			Timeout:  30 * time.Second,
		},
	}
}

// Validate checks values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if c.Model.Path == "" {
		return fmt.Errorf("model.path is required")
	}
	if c.Window.TargetFPS < 0 {
		return fmt.Errorf("window.target_fps must not be negative")
	}
	if c.Camera.Distance <= 0 {
		return fmt.Errorf("camera.distance must be positive")
	}
	if c.Camera.Smoothing < 0 {
		return fmt.Errorf("camera.smoothing must not be negative")
	}
	switch c.Voice.Provider {
	case "", VoiceNone, VoiceWhisper:
	default:
		return fmt.Errorf("voice.provider %q: use %q or %q", c.Voice.Provider, VoiceNone, VoiceWhisper)
	}
	return nil
}

// Load reads the config at path on top of Default. A missing file is not an error and
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Merge copies the non-zero values of other into c. A non-empty preset list replaces
// the current one as a whole.
func (c *Config) Merge(other *Config) error {
	if other == nil {
		return nil
	}
	if err := copier.CopyWithOption(c, other, copier.Option{IgnoreEmpty: true, DeepCopy: true}); err != nil {
		return fmt.Errorf("config: merge: %w", err)
	}
	if len(other.Lighting.Presets) > 0 {
		c.Lighting.Presets = other.Lighting.Presets
	}
	return nil
}
