// arena is Ball Arena: steer a ball around your terminal, collect stars and
// dodge the enemy balls bouncing off the window edges.
//
// Usage:
//
//	arena list              - List available game modes
//	arena play [game]       - Play a game (default: arena)
//	arena menu              - Start menu to pick a mode interactively
//	arena serve             - Start SSH server for remote play
//	arena scores <game>     - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arena/scores.db)
//	--config <path>       - Use a custom arena.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
//	--mute                - Disable sound effects
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/ball-arena/internal/games/arena"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagMute       bool
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "Ball Arena - collect stars and dodge bouncing balls in your terminal",
	Long: `Ball Arena is a terminal game: move your ball around the window,
collect stars and keep away from the enemy balls that bounce off the edges.

Available commands:
  list     - Show all game modes
  play     - Play a game mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  arena play
  arena play arena_zen --difficulty easy
  arena menu --mute
  arena serve --ssh :2222
  arena scores arena`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arena/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom arena config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.BoolVar(&flagMute, "mute", false, "Disable sound effects")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
