package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const tanksFile = "tanks.yaml"

// LoadTanks loads the match configuration.
// Search order: customPath -> ~/.arcade/configs/tanks.yaml -> ./configs/tanks.yaml -> embedded default
// Files only need to set the keys they change; everything else keeps its
// default.
func LoadTanks(customPath string) (TanksConfig, error) {
	cfg := DefaultTanksConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(tanksFile), filepath.Join("configs", tanksFile)} {
		if path == "" {
			continue
		}
		if loaded, ok := tryLoad(path); ok {
			return loaded, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultTanksYAML, &cfg); err != nil {
		return DefaultTanksConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Missing or broken files are
// skipped so the next location can be tried.
func tryLoad(path string) (TanksConfig, bool) {
	cfg := DefaultTanksConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if cfg.Validate() != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyTanksPreset modifies the config based on a difficulty preset.
func ApplyTanksPreset(cfg *TanksConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the enemy based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Enemy.FireInterval = cfg.Enemy.FireInterval * 3 / 2
		cfg.Enemy.TurnChance = max(cfg.Enemy.TurnChance-2, 0)
	case DifficultyHard:
		cfg.Enemy.FireInterval = cfg.Enemy.FireInterval * 3 / 5
		cfg.Enemy.TurnChance = min(cfg.Enemy.TurnChance+5, 1000)
	}
}
