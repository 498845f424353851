package game

import (
	"github.com/vovakirdan/stop-yourself/internal/config"
	"github.com/vovakirdan/stop-yourself/internal/core"
)

// Controller turns input into player velocity during Survive.
// Terminals only report key presses, so a left or right press keeps the
// player running for a few ticks.
type Controller struct {
	cfg      config.PhysicsConfig
	holdFor  int
	runDir   float64
	runTicks int
}

// NewController creates a controller with the given physics tuning.
func NewController(cfg config.PhysicsConfig, runHoldTicks int) *Controller {
	return &Controller{cfg: cfg, holdFor: runHoldTicks}
}

// Reset stops any running intent.
func (c *Controller) Reset() {
	c.runDir = 0
	c.runTicks = 0
}

// Update returns the new velocity for the player and whether a jump started.
func (c *Controller) Update(in core.InputFrame, vel core.Vec2, grounded bool) (core.Vec2, bool) {
	switch {
	case in.Has(core.ActionLeft):
		c.runDir, c.runTicks = -1, c.holdFor
	case in.Has(core.ActionRight):
		c.runDir, c.runTicks = 1, c.holdFor
	}
	if c.runTicks > 0 {
		vel.X += c.runDir * c.cfg.MoveAccel
		c.runTicks--
	}
	vel.X *= c.cfg.Damping

	jumped := false
	if in.Has(core.ActionJump) || in.Has(core.ActionUp) {
		if grounded {
			vel.Y = c.cfg.JumpImpulse
			jumped = true
		} else if vel.Y < 0 {
			vel.Y -= c.cfg.JumpBoost
		}
	}
	return vel, jumped
}
