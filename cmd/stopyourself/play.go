package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/stop-yourself/internal/core"
	"github.com/vovakirdan/stop-yourself/internal/platform/tui"
	"github.com/vovakirdan/stop-yourself/internal/registry"
	"github.com/vovakirdan/stop-yourself/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant, or pick one from a menu.

Variants:
  stopyourself          - Limited lives
  stopyourself_endless  - Unlimited lives

Controls:
  A/D, Left/Right  - Run (Survive) / nudge pointer (Defend)
  Space, W/Up      - Jump (Survive) / nudge pointer (Defend)
  Mouse            - Aim the hazard (Defend)
  Enter, click     - Place the hazard (Defend)
  P/Esc            - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Logs go to ~/.arcade/stopyourself.log while the game owns the terminal.

Examples:
  stopyourself play
  stopyourself play stopyourself_endless
  stopyourself play --difficulty hard --trail
  stopyourself play --config ./my-level.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	if len(args) == 1 && !registry.Exists(args[0]) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'stopyourself list' to see available variants.")
		os.Exit(1)
	}

	closeLog := logToFile()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := runtimeConfig()

	if len(args) == 1 {
		if err := playGame(args[0], store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit || (menuResult.GameID == "" && !menuResult.WantsScoreboard) {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		// Fresh seed for each game unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		if err := playGame(menuResult.GameID, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}

func playGame(id string, store *storage.Store, cfg core.RuntimeConfig) error {
	game, err := registry.Create(id)
	if err != nil {
		return err
	}
	logger.Info("game started", "game", id, "seed", cfg.Seed)
	return tui.Run(game, store, cfg, logger)
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// logToFile sends logs to ~/.arcade/stopyourself.log, or discards them when
// the file cannot be opened. The returned func closes the file.
func logToFile() func() {
	home, err := os.UserHomeDir()
	if err != nil {
		redirectLogs(io.Discard)
		return func() {}
	}
	dir := filepath.Join(home, ".arcade")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		redirectLogs(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "stopyourself.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		redirectLogs(io.Discard)
		return func() {}
	}
	redirectLogs(f)
	return func() {
		redirectLogs(os.Stderr)
		f.Close()
	}
}
