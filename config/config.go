// Package config loads the trimmer settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete application configuration.
type Config struct {
	Trim      TrimConfig      `yaml:"trim"`
	Strip     StripConfig     `yaml:"strip"`
	Thumbnail ThumbnailConfig `yaml:"thumbnails"`
	Player    PlayerConfig    `yaml:"player"`
}

// TrimConfig holds the trim session defaults.
type TrimConfig struct {
	MinDuration    float64 `yaml:"min_duration"`
	MaxDuration    float64 `yaml:"max_duration"`
	FramesPerCycle int     `yaml:"frames_per_cycle"`
}

// StripConfig sizes the trimmer in terminal columns.
type StripConfig struct {
	HorizonInset   float64 `yaml:"horizon_inset"`
	HandleWidth    float64 `yaml:"handle_width"`
	IndicatorWidth float64 `yaml:"indicator_width"`
}

// ThumbnailConfig controls frame extraction.
type ThumbnailConfig struct {
	Workers  int    `yaml:"workers"`
	Width    int    `yaml:"width"`
	CacheDir string `yaml:"cache_dir"`
}

// PlayerConfig controls the mpv connection and the playback tick.
type PlayerConfig struct {
	SocketPath   string        `yaml:"socket_path"`
	TickInterval time.Duration `yaml:"tick_interval"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Trim: TrimConfig{
			MinDuration:    0,
			MaxDuration:    10,
			FramesPerCycle: 7,
		},
		Strip: StripConfig{
			HorizonInset:   0,
			HandleWidth:    1,
			IndicatorWidth: 1,
		},
		Thumbnail: ThumbnailConfig{
			Workers: 4,
			Width:   160,
		},
		Player: PlayerConfig{
			TickInterval: 10 * time.Millisecond,
		},
	}
}

// DefaultPath returns ~/.config/trim-timeline-cli/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "trim-timeline-cli", "config.yaml"), nil
}

// Load reads the configuration at path. A missing file yields the defaults.
// Values present in the file override the defaults; the result is normalized.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg.Normalize()
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Normalize()
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Normalize clamps out-of-range values instead of rejecting them.
func (c *Config) Normalize() {
	d := Default()

	if c.Trim.MinDuration < 0 {
		c.Trim.MinDuration = 0
	}
	if c.Trim.MaxDuration <= 0 {
		c.Trim.MaxDuration = d.Trim.MaxDuration
	}
	if c.Trim.MaxDuration < c.Trim.MinDuration {
		c.Trim.MaxDuration = c.Trim.MinDuration
	}
	if c.Trim.FramesPerCycle < 1 {
		c.Trim.FramesPerCycle = d.Trim.FramesPerCycle
	}

	if c.Strip.HorizonInset < 0 {
		c.Strip.HorizonInset = 0
	}
	if c.Strip.HandleWidth < 1 {
		c.Strip.HandleWidth = d.Strip.HandleWidth
	}
	if c.Strip.IndicatorWidth < 0 {
		c.Strip.IndicatorWidth = 0
	}

	if c.Thumbnail.Workers < 1 {
		c.Thumbnail.Workers = 1
	}
	if c.Thumbnail.Width < 16 {
		c.Thumbnail.Width = d.Thumbnail.Width
	}
	if c.Player.TickInterval <= 0 {
		c.Player.TickInterval = d.Player.TickInterval
	}
}

// ThumbnailCacheDir returns the configured cache directory or
// ~/.cache/trim-timeline-cli/thumbnails.
func (c *Config) ThumbnailCacheDir() (string, error) {
	if c.Thumbnail.CacheDir != "" {
		return c.Thumbnail.CacheDir, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "trim-timeline-cli", "thumbnails"), nil
}
