package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadArena loads Ball Arena configuration.
// Search order: customPath -> ~/.arena/configs/arena.yaml -> ./configs/arena.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a file only needs the keys it
// changes. A custom path that cannot be read, parsed or validated is an
// error; the other locations are skipped silently when unusable.
func LoadArena(customPath string) (ArenaConfig, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return DefaultArenaConfig(), err
		}
		return cfg, nil
	}

	candidates := []string{
		userConfigPath("arena.yaml"),
		filepath.Join("configs", "arena.yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if cfg, err := loadFile(path); err == nil {
			return cfg, nil
		}
	}

	cfg := DefaultArenaConfig()
	if err := yaml.Unmarshal(defaultArenaYAML, &cfg); err != nil {
		return DefaultArenaConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the default configuration and validates it.
func Parse(data []byte) (ArenaConfig, error) {
	cfg := DefaultArenaConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string) (ArenaConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ArenaConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return ArenaConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arena", "configs", filename)
}

// ApplyArenaPreset modifies the config based on a difficulty preset.
func ApplyArenaPreset(cfg *ArenaConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Enemies.Count = max(cfg.Enemies.Count-1, 1)
		cfg.Player.Speed *= 1.2
	case DifficultyHard:
		cfg.Enemies.Count += 2
		cfg.Enemies.Max += 4
	}
}
