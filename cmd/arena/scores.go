package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ball-arena/internal/registry"
	"github.com/vovakirdan/ball-arena/internal/storage"
)

var flagRecent int

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game mode",
	Long: `Display the top 10 high scores, lifetime totals and the most
recent runs for the specified mode.

Examples:
  arena scores arena
  arena scores arena_zen --recent 10`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 5, "Number of recent runs to show")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fail("unknown game %q\nRun 'arena list' to see available modes.", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		store.Close()
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arena play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Avg: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
		fmt.Printf("Stars: %d  Bounces: %d  Play time: %s\n", stats.TotalStars, stats.TotalBounces, stats.PlayTime)
	}

	if flagRecent <= 0 {
		return
	}
	runs, err := store.RecentRuns(gameID, flagRecent)
	if err != nil || len(runs) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent runs:")
	fmt.Printf("  %-10s  %-6s  %-8s  %-8s  %s\n", "Score", "Stars", "Bounces", "Time", "Date")
	for _, r := range runs {
		fmt.Printf("  %-10d  %-6d  %-8d  %-8s  %s\n",
			r.Score, r.Stars, r.Bounces, r.Duration.Round(100*time.Millisecond), r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
