package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/stop-yourself/internal/platform/tui"
	"github.com/vovakirdan/stop-yourself/internal/registry"
	"github.com/vovakirdan/stop-yourself/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the top 10 high scores and round outcome totals for a variant.
With --tui, open the interactive scoreboard instead. With --clear, delete
the variant's scores and round history.

Examples:
  stopyourself scores
  stopyourself scores stopyourself_endless
  stopyourself scores --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the variant's scores and round history")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := "stopyourself"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'stopyourself list' to see available variants.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Cleared scores for %s\n", title)
		return
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'stopyourself play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Best: %d  Games: %d  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)

	if len(stats.Outcomes) > 0 {
		outcomes := make([]string, 0, len(stats.Outcomes))
		for o := range stats.Outcomes {
			outcomes = append(outcomes, o)
		}
		sort.Strings(outcomes)
		fmt.Print("Rounds:")
		for _, o := range outcomes {
			fmt.Printf("  %s %d", o, stats.Outcomes[o])
		}
		fmt.Println()
	}
}
