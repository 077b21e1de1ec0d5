package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockmaster/internal/registry"
	"github.com/vovakirdan/blockmaster/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresPlayer string
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the top scores for the specified mode (default: blocks).

With --player, lists that player's most recent runs across every mode instead.
With --clear, deletes every recorded score for the mode.

Examples:
  blockmaster scores
  blockmaster scores blocks_classic
  blockmaster scores --limit 25
  blockmaster scores --player alice
  blockmaster scores blocks --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Show one player's most recent runs across modes")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every score for the mode")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresPlayer != "" {
		if err := printPlayerScores(store, flagScoresPlayer); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		return
	}

	gameID := "blocks"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blockmaster list' to see available modes.")
		store.Close()
		os.Exit(1)
	}

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		fmt.Printf("Cleared all scores for %s.\n", gameID)
		return
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		store.Close()
		os.Exit(1)
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		store.Close()
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'blockmaster play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-16s  %s\n", "Rank", "Score", "Player", "Date")
	fmt.Printf("  %-4s  %-10s  %-16s  %s\n", "----", "-----", "------", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %-16s  %s\n", i+1, entry.Score, playerName(entry.Player), entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GameStats(gameID); err == nil {
		fmt.Printf("Best: %d   Best run: %d   Games: %d   Average: %.0f\n", stats.HighScore, stats.BestRun, stats.GamesCount, stats.AvgScore)
	}
}

func printPlayerScores(store *storage.Store, player string) error {
	scores, err := store.PlayerScores(player, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Recent runs - %s\n", player)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-10s  %s\n", "Mode", "Score", "Date")
	fmt.Printf("  %-16s  %-10s  %s\n", "----", "-----", "----")
	for _, entry := range scores {
		fmt.Printf("  %-16s  %-10d  %s\n", entry.GameID, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func playerName(p string) string {
	if p == "" {
		return "local"
	}
	return p
}
