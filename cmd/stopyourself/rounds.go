package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stop-yourself/internal/registry"
	"github.com/vovakirdan/stop-yourself/internal/storage"
)

var flagRoundsLimit int

var roundsCmd = &cobra.Command{
	Use:   "rounds [variant]",
	Short: "Show recent round history",
	Long: `Display the most recent finished rounds, newest first.
Without a variant, rounds from every variant are listed.

Outcomes:
  survived  - you reached the goal in Survive
  died      - a hazard killed you in Survive
  defended  - your hazard stopped the replay (scores a point)
  breached  - the replay reached the goal

Examples:
  stopyourself rounds
  stopyourself rounds stopyourself --limit 50`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRounds,
}

func init() {
	roundsCmd.Flags().IntVar(&flagRoundsLimit, "limit", 20, "Number of rounds to show")
}

func runRounds(_ *cobra.Command, args []string) {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	rounds, err := store.RecentRounds(gameID, flagRoundsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving rounds: %v\n", err)
		return
	}

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		return
	}

	fmt.Printf("  %-22s  %-5s  %-8s  %-6s  %-7s  %s\n", "Variant", "Round", "Outcome", "Ticks", "Hazards", "Date")
	fmt.Printf("  %-22s  %-5s  %-8s  %-6s  %-7s  %s\n", "-------", "-----", "-------", "-----", "-------", "----")
	for _, r := range rounds {
		fmt.Printf("  %-22s  %-5d  %-8s  %-6d  %-7d  %s\n",
			r.GameID, r.Round, r.Outcome, r.Ticks, r.Hazards, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
