package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/ball-arena/internal/audio"
	"github.com/vovakirdan/ball-arena/internal/config"
	"github.com/vovakirdan/ball-arena/internal/core"
	"github.com/vovakirdan/ball-arena/internal/games/arena"
)

// newLogger builds the process logger. Interactive commands own the
// terminal, so without --log-file they log to fallback (usually discard).
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	return logger, closeFn, nil
}

// applyGameFlags hands the shared flags to the arena package before any
// game is created.
func applyGameFlags(logger *log.Logger) error {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	arena.SetConfigPath(flagConfig)
	arena.SetDifficultyPreset(flagDifficulty)
	arena.SetLogger(logger)
	return nil
}

// newSoundPlayer starts the speaker unless sound is muted or disabled in
// config. Audio failures never stop the game.
func newSoundPlayer(logger *log.Logger) (audio.Player, func()) {
	if flagMute {
		return audio.Nop{}, func() {}
	}

	cfg, err := config.LoadArena(flagConfig)
	if err != nil {
		logger.Warn("using default audio settings", "error", err)
		cfg = config.DefaultArenaConfig()
	}
	if !cfg.Audio.Enabled {
		return audio.Nop{}, func() {}
	}

	sm := audio.NewSoundManager(cfg.Audio.Volume, cfg.Audio.SampleRate, logger)
	if err := sm.Initialize(); err != nil {
		logger.Warn("audio unavailable", "error", err)
		return audio.Nop{}, func() {}
	}
	return sm, sm.Close
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
