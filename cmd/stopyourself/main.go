// stopyourself is a terminal platformer where every successful run is
// replayed against you: reach the goal, then place hazards to stop your own
// recording from reaching it again.
//
// Usage:
//
//	stopyourself list               - List available variants
//	stopyourself play [variant]     - Play a variant (menu when omitted)
//	stopyourself serve              - Start SSH server for remote play
//	stopyourself scores [variant]   - Show high scores
//	stopyourself rounds [variant]   - Show recent round history
//	stopyourself trace              - Run a scripted game headless
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--log-level <level>   - debug, info, warn or error
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal or hard
//	--trail               - Draw the recorded track
//
// ARCADE_DB, ARCADE_SEED and ARCADE_LOG_LEVEL, read from the environment or
// an optional .env file, replace the defaults of the matching flags.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/stop-yourself/internal/games/stopyourself"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
	flagConfig     string
	flagDifficulty string
	flagTrail      bool
)

// logger is configured from --log-level before any command runs.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "stopyourself",
})

func main() {
	// A missing .env is the common case.
	//nolint:errcheck // Optional file
	godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stopyourself",
	Short: "Stop Yourself - outrun your own replay in the terminal",
	Long: `Stop Yourself is a terminal platformer built around record and replay.

Survive: run to the goal while your movement is recorded.
Defend:  place a spike or laser where your recording will pass.
Replay:  watch yourself run again. Stop yourself to score.

Available commands:
  list     - Show all variants
  play     - Play a variant directly, or pick one from the menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  rounds   - View recent round history
  trace    - Run a scripted game headless and print its timeline

Examples:
  stopyourself play
  stopyourself play stopyourself_endless --difficulty hard
  stopyourself serve --ssh :2222
  stopyourself scores --tui
  stopyourself trace --seed 42 --ticks 3000`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().BoolVar(&flagTrail, "trail", false, "Draw the recorded track while playing")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(roundsCmd)
	rootCmd.AddCommand(traceCmd)
}

// setup applies environment defaults and hands the shared settings to the game package.
func setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	if v := os.Getenv("ARCADE_DB"); v != "" && !flags.Changed("db") {
		flagDBPath = v
	}
	if v := os.Getenv("ARCADE_SEED"); v != "" && !flags.Changed("seed") {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ARCADE_SEED %q: %w", v, err)
		}
		flagSeed = seed
	}
	if v := os.Getenv("ARCADE_LOG_LEVEL"); v != "" && !flags.Changed("log-level") {
		flagLogLevel = v
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)

	if flagFPS <= 0 {
		return fmt.Errorf("invalid --fps %d", flagFPS)
	}

	stopyourself.SetConfigPath(flagConfig)
	stopyourself.SetDifficultyPreset(flagDifficulty)
	stopyourself.SetTrail(flagTrail)
	stopyourself.SetLogger(logger)
	return nil
}

// redirectLogs points the shared logger at w. The full-screen UI owns the
// terminal while a game runs, so play sessions log to a file instead.
func redirectLogs(w io.Writer) {
	logger.SetOutput(w)
}
