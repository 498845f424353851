// Package stopyourself adapts the record/replay simulation to the arcade
// platform: it loads configuration, turns simulation notifications into HUD
// notices and round results, and draws the level into a screen buffer.
package stopyourself

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stop-yourself/internal/config"
	"github.com/vovakirdan/stop-yourself/internal/core"
	"github.com/vovakirdan/stop-yourself/internal/game"
	"github.com/vovakirdan/stop-yourself/internal/registry"
)

// Variant selects how lives are counted.
type Variant int

const (
	VariantClassic Variant = iota // Limited lives from config
	VariantEndless                // Unlimited lives
)

// Minimum screen size the level layout needs.
const (
	MinScreenW = 30
	MinScreenH = 12
)

// noticeTicks is how long a notice stays in the HUD.
const noticeTicks = 90

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives simulation logs; nil discards them
var logger *log.Logger

// showTrail enables the recorded-track overlay
var showTrail bool

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLogger sets the logger handed to new simulations.
func SetLogger(l *log.Logger) {
	logger = l
}

// SetTrail toggles drawing of the recorded track.
func SetTrail(on bool) {
	showTrail = on
}

// Game implements registry.Game for Stop Yourself.
type Game struct {
	variant Variant
	runtime core.RuntimeConfig
	cfg     config.Config
	sim     *game.Simulation

	notice      string
	noticeTicks int
	jumpFlash   int

	screenTooSmall bool
}

// New creates a game with limited lives.
func New() *Game {
	return &Game{variant: VariantClassic}
}

// NewEndless creates a game with unlimited lives.
func NewEndless() *Game {
	return &Game{variant: VariantEndless}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.variant == VariantEndless {
		return "stopyourself_endless"
	}
	return "stopyourself"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.variant == VariantEndless {
		return "Stop Yourself (Endless)"
	}
	return "Stop Yourself"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.notice, g.noticeTicks, g.jumpFlash = "", 0, 0
	g.screenTooSmall = runtime.ScreenW < MinScreenW || runtime.ScreenH < MinScreenH

	cfg, err := config.Load(configPath)
	if err != nil {
		if logger != nil {
			logger.Warn("using default config", "err", err)
		}
		cfg = config.DefaultConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	if g.variant == VariantEndless {
		cfg.Gameplay.Lives = 0
	}
	g.cfg = cfg

	w, h := max(runtime.ScreenW, MinScreenW), max(runtime.ScreenH, MinScreenH)
	g.sim = newSimulation(cfg, w, h, runtime.Seed)
	g.setNotice("Reach the goal. You will have to stop yourself.")
}

// newSimulation builds a simulation from cfg, falling back to the default
// config when cfg is rejected.
func newSimulation(cfg config.Config, w, h int, seed int64) *game.Simulation {
	sim, err := game.New(cfg, w, h, seed, logger)
	if err == nil {
		return sim
	}
	if logger != nil {
		logger.Warn("invalid config, using defaults", "err", err)
	}
	sim, err = game.New(config.DefaultConfig(), w, h, seed, logger)
	if err != nil {
		panic(fmt.Sprintf("stopyourself: default config rejected: %v", err))
	}
	return sim
}

// Resize adapts the level to a new screen size from the next level reset on.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	g.screenTooSmall = w < MinScreenW || h < MinScreenH
	g.sim.Resize(max(w, MinScreenW), max(h, MinScreenH))
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.sim.Tick(in)

	if g.noticeTicks > 0 {
		g.noticeTicks--
	}
	if g.jumpFlash > 0 {
		g.jumpFlash--
	}

	var res core.StepResult
	for _, m := range g.sim.Drain() {
		if _, ok := m.(game.JumpCue); ok {
			g.jumpFlash = 6
			continue
		}
		if re, ok := m.(game.RoundEnded); ok {
			res.Rounds = append(res.Rounds, core.RoundResult{
				Round:   re.Round,
				Outcome: re.Outcome.String(),
				Ticks:   re.Ticks,
				Hazards: re.Hazards,
			})
		}
		if text := noticeText(m); text != "" {
			res.Notices = append(res.Notices, text)
			g.setNotice(text)
		}
	}
	res.State = g.State()
	return res
}

func (g *Game) setNotice(text string) {
	g.notice = text
	g.noticeTicks = noticeTicks
}

// noticeText returns the HUD line for a notification, or "" for none.
func noticeText(m game.Message) string {
	switch m := m.(type) {
	case game.ModeChanged:
		switch m.Transition.To {
		case game.ModeDefend:
			return "DEFEND: place a hazard to stop your recording"
		case game.ModeReplay:
			return "REPLAY: here you come..."
		default:
			return "SURVIVE: reach the goal"
		}
	case game.GhostSpawned:
		if m.Replaced {
			return fmt.Sprintf("new %s replaces the pending one", m.Kind)
		}
		return fmt.Sprintf("you got a %s", m.Kind)
	case game.HazardPlaced:
		if m.Kind == game.KindLaser {
			return fmt.Sprintf("laser placed, fires in %d ticks", m.Delay)
		}
		return "spike placed"
	case game.PlacementRejected:
		return "too close to the spawn point"
	case game.RoundEnded:
		return fmt.Sprintf("round %d: %s", m.Round, m.Outcome)
	}
	return ""
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.sim.Score(),
		GameOver: g.sim.GameOver(),
		Paused:   g.sim.Paused(),
	}
}

// Simulation exposes the underlying simulation for headless tools.
func (g *Game) Simulation() *game.Simulation {
	return g.sim
}

// Register the games with the registry
func init() {
	registry.Register("stopyourself", func() registry.Game {
		return New()
	})
	registry.Register("stopyourself_endless", func() registry.Game {
		return NewEndless()
	})
}
