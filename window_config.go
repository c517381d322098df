package lumen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWindowWidth     = 1280
	DefaultWindowHeight    = 720
	DefaultWindowTitle     = "Lumen"
	DefaultTargetFramerate = 60
)

// WindowConfig describes the window NewWindow opens.
type WindowConfig struct {
	Width           uint32 `yaml:"width"`
	Height          uint32 `yaml:"height"`
	Fullscreen      bool   `yaml:"fullscreen"`
	Title           string `yaml:"title"`
	TargetFramerate uint64 `yaml:"target_framerate"`
	Debug           bool   `yaml:"debug"`
	LogPrefix       string `yaml:"log_prefix"`
	// IconPath is optional. A missing or unreadable icon is logged, not fatal.
	IconPath string `yaml:"icon_path"`

	// Logger overrides the default stdout/stderr logger.
	Logger Logger `yaml:"-"`
}

func NewWindowConfig() WindowConfig {
	return WindowConfig{
		Width:           DefaultWindowWidth,
		Height:          DefaultWindowHeight,
		Title:           DefaultWindowTitle,
		TargetFramerate: DefaultTargetFramerate,
		LogPrefix:       "lumen",
	}
}

// withDefaults fills zero fields the same way NewWindowConfig does.
func (c WindowConfig) withDefaults() WindowConfig {
	if c.Width == 0 {
		c.Width = DefaultWindowWidth
	}
	if c.Height == 0 {
		c.Height = DefaultWindowHeight
	}
	if c.Title == "" {
		c.Title = DefaultWindowTitle
	}
	if c.TargetFramerate == 0 {
		c.TargetFramerate = DefaultTargetFramerate
	}
	return c
}

// LoadWindowConfig reads a YAML file over NewWindowConfig's defaults. Keys
// absent from the file keep their default.
func LoadWindowConfig(path string) (WindowConfig, error) {
	cfg := NewWindowConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read window config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse window config %s: %w", path, err)
	}
	return cfg.withDefaults(), nil
}
