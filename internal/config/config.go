// Package config provides YAML-based game configuration loading and
// difficulty management for the arena.
package config

import (
	"errors"
	"fmt"
)

// ArenaConfig contains all configuration for the Ball Arena game.
// Sizes are in screen cells, speeds in cells per second and intervals
// in seconds.
type ArenaConfig struct {
	Player     PlayerConfig     `yaml:"player"`
	Enemies    EnemyConfig      `yaml:"enemies"`
	Stars      StarConfig       `yaml:"stars"`
	Audio      AudioConfig      `yaml:"audio"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// Size is a sprite footprint.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Extents returns the size as an ordered list of axis extents.
func (s Size) Extents() []float64 {
	return []float64{s.Width, s.Height}
}

// PlayerConfig defines the player-controlled ball.
type PlayerConfig struct {
	Size  Size    `yaml:"size"`
	Speed float64 `yaml:"speed"`
}

// EnemyConfig defines the wandering enemy balls.
type EnemyConfig struct {
	Size          Size    `yaml:"size"`
	Speed         float64 `yaml:"speed"`
	Count         int     `yaml:"count"`          // Enemies spawned at start
	Max           int     `yaml:"max"`            // Upper limit for timed spawns
	SpawnInterval float64 `yaml:"spawn_interval"` // 0 disables timed spawns
}

// StarConfig defines the collectible stars.
type StarConfig struct {
	Size          Size    `yaml:"size"`
	Count         int     `yaml:"count"`
	Max           int     `yaml:"max"`
	SpawnInterval float64 `yaml:"spawn_interval"`
	Points        int     `yaml:"points"` // Score per star
}

// AudioConfig defines sound effect settings.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"` // 0.0 - 1.0
	SampleRate int     `yaml:"sample_rate"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to enemy speed at max difficulty
	SpawnReduction  float64 `yaml:"spawn_reduction"`  // Fraction cut from enemy spawn interval at max difficulty
}

// Validate reports every setting that would make the game unplayable.
func (c ArenaConfig) Validate() error {
	var errs []error

	checkSize := func(name string, s Size) {
		if s.Width <= 0 || s.Height <= 0 {
			errs = append(errs, fmt.Errorf("%s.size must be positive, got %gx%g", name, s.Width, s.Height))
		}
	}
	checkSize("player", c.Player.Size)
	checkSize("enemies", c.Enemies.Size)
	checkSize("stars", c.Stars.Size)

	if c.Player.Speed <= 0 {
		errs = append(errs, fmt.Errorf("player.speed must be positive, got %g", c.Player.Speed))
	}
	if c.Enemies.Speed < 0 {
		errs = append(errs, fmt.Errorf("enemies.speed must not be negative, got %g", c.Enemies.Speed))
	}
	if c.Enemies.Count < 0 || c.Enemies.Max < 0 || c.Stars.Count < 0 || c.Stars.Max < 0 {
		errs = append(errs, errors.New("entity counts must not be negative"))
	}
	if c.Enemies.SpawnInterval < 0 || c.Stars.SpawnInterval < 0 {
		errs = append(errs, errors.New("spawn intervals must not be negative"))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume must be within [0, 1], got %g", c.Audio.Volume))
	}

	switch c.Difficulty.Progression.Type {
	case "", "score", "time", "none":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type %q is not one of score, time, none", c.Difficulty.Progression.Type))
	}

	return errors.Join(errs...)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
