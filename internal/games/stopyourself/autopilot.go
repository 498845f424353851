package stopyourself

import (
	"github.com/vovakirdan/stop-yourself/internal/core"
	"github.com/vovakirdan/stop-yourself/internal/game"
)

// Autopilot produces scripted input for headless runs: it runs right in
// Survive, aims at the middle of the running path in Defend and places the
// hazard once the ghost has had time to settle.
type Autopilot struct {
	JumpEvery int // Jump every N ticks while surviving; 0 = never
	AimTicks  int // Ticks to steer the ghost before placing

	tick   int
	aiming int
}

// NewAutopilot creates an autopilot with the default script.
func NewAutopilot() *Autopilot {
	return &Autopilot{JumpEvery: 45, AimTicks: 12}
}

// Next returns the input for the simulation's next tick.
func (a *Autopilot) Next(sim *game.Simulation) core.InputFrame {
	in := core.NewInputFrame()
	a.tick++

	switch sim.Mode() {
	case game.ModeSurvive:
		a.aiming = 0
		in.Set(core.ActionRight)
		if a.JumpEvery > 0 && a.tick%a.JumpEvery == 0 {
			in.Set(core.ActionJump)
		}
	case game.ModeDefend:
		level := sim.Level()
		in.SetPointer(core.V(level.W/2, level.GroundTop-1))
		a.aiming++
		if a.aiming >= a.AimTicks {
			in.Set(core.ActionPlace)
			a.aiming = 0
		}
	}
	return in
}
