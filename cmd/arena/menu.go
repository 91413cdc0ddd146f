package main

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ball-arena/internal/platform/tui"
	"github.com/vovakirdan/ball-arena/internal/registry"
	"github.com/vovakirdan/ball-arena/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arena with a mode picker menu",
	Long: `Start the arena in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
After a game ends, B or Esc returns you to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter        - Select mode
  Tab          - Scoreboard
  Q            - Quit

Examples:
  arena menu
  arena menu --fps 30
  arena menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(io.Discard, "")
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	if err := applyGameFlags(logger); err != nil {
		closeLog()
		fail("%v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	sound, closeSound := newSoundPlayer(logger)
	defer closeSound()

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			logger.Error("menu failed", "error", err)
			return
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				logger.Error("scoreboard failed", "error", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		if menuResult.GameID == "" {
			return
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("cannot create game", "game", menuResult.GameID, "error", err)
			continue
		}

		// Fresh seed for each game unless --seed pins it
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, cfg, tui.Options{
			Store:  store,
			Sound:  sound,
			Logger: logger,
		}); err != nil {
			logger.Error("game failed", "game", game.ID(), "error", err)
		}
	}
}
