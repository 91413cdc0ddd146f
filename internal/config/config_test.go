package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var fromYAML ArenaConfig
	require.NoError(t, yaml.Unmarshal(GetDefaultYAML("arena"), &fromYAML))
	assert.Equal(t, DefaultArenaConfig(), fromYAML)
	assert.NoError(t, fromYAML.Validate())
	assert.Nil(t, GetDefaultYAML("pong"))
}

func TestLoadArenaCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.yaml")
	data := []byte("enemies:\n  count: 7\n  speed: 20\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadArena(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Enemies.Count)
	assert.Equal(t, 20.0, cfg.Enemies.Speed)
	// Keys absent from the file keep their defaults
	assert.Equal(t, DefaultArenaConfig().Player, cfg.Player)
	assert.Equal(t, DefaultArenaConfig().Stars, cfg.Stars)
}

func TestLoadArenaCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadArena(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("player: [unclosed"), 0o600))
	_, err = LoadArena(broken)
	assert.ErrorContains(t, err, "failed to parse config")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("player:\n  speed: -1\n"), 0o600))
	_, err = LoadArena(invalid)
	assert.ErrorContains(t, err, "player.speed must be positive")
}

func TestLoadArenaFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadArena("")
	require.NoError(t, err)
	assert.Equal(t, DefaultArenaConfig(), cfg)
}

func TestLoadArenaLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", "arena.yaml"), []byte("stars:\n  count: 3\n"), 0o600))

	cfg, err := LoadArena("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Stars.Count)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ArenaConfig)
		wantErr string
	}{
		{"defaults are valid", func(*ArenaConfig) {}, ""},
		{"zero player width", func(c *ArenaConfig) { c.Player.Size.Width = 0 }, "player.size must be positive"},
		{"negative enemy speed", func(c *ArenaConfig) { c.Enemies.Speed = -2 }, "enemies.speed"},
		{"negative count", func(c *ArenaConfig) { c.Stars.Count = -1 }, "counts must not be negative"},
		{"negative interval", func(c *ArenaConfig) { c.Enemies.SpawnInterval = -1 }, "spawn intervals"},
		{"loud volume", func(c *ArenaConfig) { c.Audio.Volume = 2 }, "audio.volume"},
		{"bad progression", func(c *ArenaConfig) { c.Difficulty.Progression.Type = "level" }, "progression.type"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultArenaConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, name := range []string{"", "easy", "normal", "hard", "fixed"} {
		p, err := ParsePreset(name)
		assert.NoError(t, err)
		assert.Equal(t, DifficultyPreset(name), p)
	}
	_, err := ParsePreset("nightmare")
	assert.Error(t, err)
}

func TestApplyArenaPreset(t *testing.T) {
	cfg := DefaultArenaConfig()
	ApplyArenaPreset(&cfg, DifficultyFixed)
	assert.False(t, cfg.Difficulty.Enabled)

	cfg = DefaultArenaConfig()
	ApplyArenaPreset(&cfg, DifficultyHard)
	assert.True(t, cfg.Difficulty.Enabled)
	assert.Equal(t, 0.7, cfg.Difficulty.InitialLevel)
	assert.Equal(t, DefaultArenaConfig().Enemies.Count+2, cfg.Enemies.Count)

	cfg = DefaultArenaConfig()
	ApplyArenaPreset(&cfg, DifficultyEasy)
	assert.Equal(t, DefaultArenaConfig().Enemies.Count-1, cfg.Enemies.Count)

	cfg = DefaultArenaConfig()
	ApplyArenaPreset(&cfg, "")
	assert.Equal(t, DefaultArenaConfig(), cfg)
}
