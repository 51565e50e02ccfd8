package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/keyrunner/internal/games/keyrunner"
	"github.com/vovakirdan/keyrunner/internal/registry"
	"github.com/vovakirdan/keyrunner/internal/storage"
)

var (
	flagRuns  int
	flagClear bool
	flagAll   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores and recent runs",
	Long: `Display the top 10 scores (or every score with --all) and the most recent runs for a mode.

Examples:
  keyrunner scores
  keyrunner scores keyrunner_astar --runs 20
  keyrunner scores --all --runs 0
  keyrunner scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRuns, "runs", 5, "Number of recent runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and runs for the mode")
	scoresCmd.Flags().BoolVar(&flagAll, "all", false, "List every recorded score instead of the top 10")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := string(keyrunner.ModeClassic)
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'keyrunner list' to see modes", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s\n", game.Title())
		return nil
	}

	var scores []storage.ScoreEntry
	if flagAll {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, 10)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n\n", game.Title())
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Printf("\nPlay 'keyrunner play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil && stats != nil {
		fmt.Printf("\nBest: %d  Games: %d  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}

	if flagRuns <= 0 {
		return nil
	}
	runs, err := store.RecentRuns(gameID, flagRuns)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}
	if len(runs) == 0 {
		return nil
	}

	fmt.Printf("\nRecent runs\n\n")
	fmt.Printf("  %-16s  %-10s  %5s  %4s  %4s  %-7s  %-8s  %s\n", "Date", "Player", "Score", "Lvl", "Keys", "Hunter", "End", "Seed")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-10s  %5d  %4d  %4d  %-7s  %-8s  %d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Player, r.Score, r.Levels, r.Keys, r.Strategy, r.EndReason, r.Seed)
	}
	return nil
}
