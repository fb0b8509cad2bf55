// Package config provides YAML-based configuration for the block path:
// layout constants, level definitions, picker setup and logging.
package config

import (
	"errors"
	"fmt"
)

// Config is the complete blockpath configuration.
type Config struct {
	Layout LayoutConfig  `yaml:"layout"`
	Levels []LevelConfig `yaml:"levels"`
	Picker PickerConfig  `yaml:"picker"`
	Scene  SceneConfig   `yaml:"scene"`
	Log    LogConfig     `yaml:"log"`
}

// LayoutConfig holds the generator constants.
type LayoutConfig struct {
	StepUnit              float64 `yaml:"step_unit"`
	LineCompensation      float64 `yaml:"line_compensation"`
	DoubleThreshold       float64 `yaml:"double_threshold"`        // draws above this give a single block
	MaxConsecutiveDoubles int     `yaml:"max_consecutive_doubles"` // 1 = never two doubles in a row
}

// LevelConfig defines one picker level.
type LevelConfig struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title"`
	Steps int    `yaml:"steps"` // 0 = hand-authored default layout
}

// Canned reports whether the level uses the fixed default layout.
func (l LevelConfig) Canned() bool {
	return l.Steps == 0
}

// PickerConfig configures the level picker.
type PickerConfig struct {
	DefaultLevel int      `yaml:"default_level"`
	Textures     []string `yaml:"textures"` // one per level, in order
}

// SceneConfig names the scene objects resolved at startup.
type SceneConfig struct {
	Blocks            int    `yaml:"blocks"` // ordinary blocks, home excluded
	ShadowAnchor      string `yaml:"shadow_anchor"`
	Segmentation      string `yaml:"segmentation"`
	ShadowButton      string `yaml:"shadow_button"`
	ShadowMaterial    string `yaml:"shadow_material"`
	ShadowTextureOn   string `yaml:"shadow_texture_on"`
	ShadowTextureOff  string `yaml:"shadow_texture_off"`
	ShadowInitiallyOn bool   `yaml:"shadow_initially_on"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty = stderr (discarded in the interactive view)
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Layout.StepUnit <= 0 {
		return fmt.Errorf("%w: step_unit must be positive", ErrInvalidConfig)
	}
	if c.Layout.LineCompensation < 0 || c.Layout.LineCompensation >= c.Layout.StepUnit {
		return fmt.Errorf("%w: line_compensation must be in [0, step_unit)", ErrInvalidConfig)
	}
	if c.Layout.DoubleThreshold < 0 || c.Layout.DoubleThreshold > 1 {
		return fmt.Errorf("%w: double_threshold must be in [0, 1]", ErrInvalidConfig)
	}
	if c.Layout.MaxConsecutiveDoubles < 0 {
		return fmt.Errorf("%w: max_consecutive_doubles must not be negative", ErrInvalidConfig)
	}
	if len(c.Levels) == 0 {
		return fmt.Errorf("%w: at least one level is required", ErrInvalidConfig)
	}
	for i, l := range c.Levels {
		if l.Steps < 0 {
			return fmt.Errorf("%w: level %d has negative steps", ErrInvalidConfig, i)
		}
	}
	if c.Picker.DefaultLevel < 0 || c.Picker.DefaultLevel >= len(c.Levels) {
		return fmt.Errorf("%w: default_level %d out of range", ErrInvalidConfig, c.Picker.DefaultLevel)
	}
	if len(c.Picker.Textures) != len(c.Levels) {
		return fmt.Errorf("%w: need one picker texture per level (%d levels, %d textures)",
			ErrInvalidConfig, len(c.Levels), len(c.Picker.Textures))
	}
	if c.Scene.Blocks < 1 {
		return fmt.Errorf("%w: scene needs at least one block", ErrInvalidConfig)
	}
	return nil
}

// LevelIndex resolves a level by name (case-sensitive) and reports whether it exists.
func (c Config) LevelIndex(name string) (int, bool) {
	for i, l := range c.Levels {
		if l.Name == name {
			return i, true
		}
	}
	return 0, false
}
