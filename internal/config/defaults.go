package config

import (
	_ "embed"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// DefaultArenaConfig returns the hard-coded Ball Arena configuration.
// It mirrors defaults/arena.yaml and is used if the embedded file fails to parse.
func DefaultArenaConfig() ArenaConfig {
	return ArenaConfig{
		Player: PlayerConfig{
			Size:  Size{Width: 2, Height: 1},
			Speed: 30,
		},
		Enemies: EnemyConfig{
			Size:          Size{Width: 2, Height: 1},
			Speed:         14,
			Count:         4,
			Max:           12,
			SpawnInterval: 5,
		},
		Stars: StarConfig{
			Size:          Size{Width: 1, Height: 1},
			Count:         10,
			Max:           15,
			SpawnInterval: 1,
			Points:        1,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.5,
			SampleRate: 44100,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 100,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				SpawnReduction:  0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "arena", "arena_zen":
		return defaultArenaYAML
	default:
		return nil
	}
}
