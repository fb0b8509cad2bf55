package config

import (
	_ "embed"
)

//go:embed defaults/blockpath.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Layout: LayoutConfig{
			StepUnit:              0.1,
			LineCompensation:      0.002469135802,
			DoubleThreshold:       0.6,
			MaxConsecutiveDoubles: 1,
		},
		Levels: []LevelConfig{
			{Name: "easy", Title: "Level 1", Steps: 0},
			{Name: "normal", Title: "Level 2", Steps: 10},
			{Name: "hard", Title: "Level 3", Steps: 15},
		},
		Picker: PickerConfig{
			DefaultLevel: 0,
			Textures:     []string{"level-1", "level-2", "level-3"},
		},
		Scene: SceneConfig{
			Blocks:           25,
			ShadowAnchor:     "shadowAnchor",
			Segmentation:     "segmentation",
			ShadowButton:     "button-shadow",
			ShadowMaterial:   "button-shadow",
			ShadowTextureOn:  "button-shadow-on",
			ShadowTextureOff: "button-shadow-off",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
