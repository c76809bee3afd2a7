package easel

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the canvas and window settings. It is usually loaded from a
// YAML file and then overridden by command-line flags.
type Config struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	FPS        int    `yaml:"fps"`
	Background Color  `yaml:"background"` // "#rrggbb" or a palette name

	AutoCenter bool `yaml:"auto_center"` // keep the scene centered on resize
	AntiAlias  bool `yaml:"anti_alias"`
	ShowFPS    bool `yaml:"show_fps"`
	ShowInfo   bool `yaml:"show_info"` // cursor position and color readout

	Debug    bool   `yaml:"debug"`     // per-tick stats at debug level
	LogLevel string `yaml:"log_level"` // zerolog level name

	// Recording (ebiten host only)
	RecordDir string `yaml:"record_dir,omitempty"`
}

// DefaultConfig returns a 900x600 white canvas at 30 frames per second.
func DefaultConfig() Config {
	return Config{
		Title:      "easel",
		Width:      900,
		Height:     600,
		FPS:        30,
		Background: ColorWhite,
		AutoCenter: true,
		AntiAlias:  true,
		LogLevel:   "info",
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFrameRate, c.FPS)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("easel: canvas size must be positive, got %dx%d", c.Width, c.Height)
	}
	return nil
}

// LoadConfig reads a YAML file over DefaultConfig, so missing keys keep
// their defaults. A missing file is not an error: the defaults are returned
// along with an error wrapping os.ErrNotExist for the caller to log.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// IsNotExist reports whether err came from a missing config file.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

// SaveConfig writes cfg as YAML.
func SaveConfig(path string, cfg Config) error {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}
