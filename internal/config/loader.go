package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadEvasion loads the arena configuration.
// Search order: customPath -> ~/.evasion/configs/evasion.yaml -> ./configs/evasion.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it changes.
func LoadEvasion(customPath string) (EvasionConfig, error) {
	cfg := DefaultEvasionConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("evasion.yaml"); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath, cfg); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryLoad(filepath.Join("configs", "evasion.yaml"), cfg); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultEvasionYAML, &cfg); err != nil {
		return DefaultEvasionConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad decodes path over base. Missing or malformed files are skipped.
func tryLoad(path string, base EvasionConfig) (EvasionConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, false
	}
	if err := yaml.Unmarshal(data, &base); err != nil {
		return base, false
	}
	return base, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".evasion", "configs", filename)
}

// ApplyEvasionPreset adjusts the hunter's wall resources for a difficulty preset.
// Harder presets give the hunter fewer walls and a longer cooldown.
func ApplyEvasionPreset(cfg *EvasionConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Walls.Max = 15
		cfg.Walls.PlacementDelay = 10
	case DifficultyHard:
		cfg.Walls.Max = 5
		cfg.Walls.PlacementDelay = 30
	}
}
