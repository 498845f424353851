package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stop-yourself/internal/core"
	"github.com/vovakirdan/stop-yourself/internal/games/stopyourself"
)

var (
	flagTraceTicks     int
	flagTraceWidth     int
	flagTraceHeight    int
	flagTraceEndless   bool
	flagTraceJumpEvery int
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Run a scripted game headless and print its timeline",
	Long: `Drive the simulation with a built-in autopilot, without a terminal UI,
and print every notice with the frame and mode it happened in. The run
ends with the final state hash, so two traces with the same seed, size and
config can be compared for determinism.

The autopilot runs right (jumping every --jump-every ticks) while
surviving and places each hazard at the middle of the running path while
defending.

Examples:
  stopyourself trace
  stopyourself trace --seed 42 --ticks 5000
  stopyourself trace --endless --width 120 --height 30 --jump-every 0`,
	Args: cobra.NoArgs,
	Run:  runTrace,
}

func init() {
	traceCmd.Flags().IntVar(&flagTraceTicks, "ticks", 3600, "Number of ticks to simulate")
	traceCmd.Flags().IntVar(&flagTraceWidth, "width", 80, "Screen width in cells")
	traceCmd.Flags().IntVar(&flagTraceHeight, "height", 24, "Screen height in cells")
	traceCmd.Flags().BoolVar(&flagTraceEndless, "endless", false, "Trace the unlimited-lives variant")
	traceCmd.Flags().IntVar(&flagTraceJumpEvery, "jump-every", 45, "Autopilot jump interval in ticks (0 = never)")
}

func runTrace(_ *cobra.Command, _ []string) {
	g := stopyourself.New()
	if flagTraceEndless {
		g = stopyourself.NewEndless()
	}

	seed := flagSeed
	if seed == 0 {
		seed = 1 // Traces are meant to be repeatable
	}
	g.Reset(core.RuntimeConfig{
		ScreenW:  flagTraceWidth,
		ScreenH:  flagTraceHeight,
		TickRate: flagFPS,
		Seed:     seed,
	})

	pilot := stopyourself.NewAutopilot()
	pilot.JumpEvery = flagTraceJumpEvery

	fmt.Printf("trace %s seed=%d size=%dx%d ticks=%d\n", g.ID(), seed, flagTraceWidth, flagTraceHeight, flagTraceTicks)

	outcomes := make(map[string]int)
	ticks := 0
	for ; ticks < flagTraceTicks; ticks++ {
		sim := g.Simulation()
		res := g.Step(pilot.Next(sim))
		for _, r := range res.Rounds {
			outcomes[r.Outcome]++
		}
		for _, n := range res.Notices {
			fmt.Printf("%7d  %-8s  %s\n", sim.Frame(), sim.Mode(), n)
		}
		if res.State.GameOver {
			ticks++
			break
		}
	}

	snap := g.Snapshot()
	fmt.Println()
	fmt.Printf("ticks=%d frame=%d mode=%s round=%d score=%d game_over=%v\n",
		ticks, snap.Frame, snap.ModeName(), snap.Round, snap.Score, snap.GameOver)
	fmt.Printf("survived=%d died=%d defended=%d breached=%d\n",
		outcomes["survived"], outcomes["died"], outcomes["defended"], outcomes["breached"])
	fmt.Printf("hash=%016x\n", snap.Hash())

	if flagTraceTicks <= 0 {
		fmt.Fprintln(os.Stderr, "Warning: --ticks is not positive, nothing was simulated")
	}
}
