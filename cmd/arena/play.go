package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ball-arena/internal/platform/tui"
	"github.com/vovakirdan/ball-arena/internal/registry"
	"github.com/vovakirdan/ball-arena/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game mode",
	Long: `Start playing the specified mode (default: arena).

Controls:
  Arrows/WASD/HJKL - Move (keys stay held briefly after release)
  Space/X          - Stop
  P/Esc            - Pause
  R                - Restart (after game over)
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start slow, speeds up as you score
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arena play
  arena play arena_zen
  arena play --difficulty hard --seed 42
  arena play --config ./my-arena.yaml --mute`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "arena"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fail("unknown game %q\nRun 'arena list' to see available modes.", gameID)
	}

	logger, closeLog, err := newLogger(io.Discard, "")
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	if err := applyGameFlags(logger); err != nil {
		fail("%v", err)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	sound, closeSound := newSoundPlayer(logger)

	runErr := tui.Run(game, runtimeConfig(), tui.Options{
		Store:  store,
		Sound:  sound,
		Logger: logger,
	})

	closeSound()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		fail("running game: %v", runErr)
	}
}
