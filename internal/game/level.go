package game

import (
	"github.com/vovakirdan/stop-yourself/internal/config"
	"github.com/vovakirdan/stop-yourself/internal/core"
	"github.com/vovakirdan/stop-yourself/internal/physics"
)

// Level is the static geometry of a round: ground, walls, optional ledges
// and the goal zone. It is rebuilt on every level reset.
type Level struct {
	W, H      float64
	GroundTop float64
	Spawn     core.Vec2 // Player center at respawn
	Goal      core.Box
	Terrain   []core.Box

	bodies []physics.BodyID
	goal   physics.BodyID
}

// BuildLevel lays out a level for a w x h cell viewport.
func BuildLevel(cfg config.Config, w, h int) *Level {
	fw, fh := float64(w), float64(h)
	ground := fh - float64(cfg.Level.GroundOffset)

	l := &Level{
		W:         fw,
		H:         fh,
		GroundTop: ground,
		Spawn:     core.V(cfg.Player.SpawnX, ground-cfg.Player.Height/2),
		Goal: core.NewBox(
			fw-1-cfg.Level.GoalWidth,
			ground-cfg.Level.GoalHeight,
			cfg.Level.GoalWidth,
			cfg.Level.GoalHeight,
		),
	}

	l.Terrain = append(l.Terrain,
		core.NewBox(0, ground, fw, float64(cfg.Level.GroundOffset)),
		core.NewBox(-1, 0, 1, fh), // Left wall
		core.NewBox(fw, 0, 1, fh), // Right wall
	)

	// Two ledges the player can jump onto or run under.
	ledgeY := ground - cfg.Player.Height - 2
	if cfg.Level.Ledges && fw >= 40 && ledgeY > 2 {
		ledgeW := fw / 8
		l.Terrain = append(l.Terrain,
			core.NewBox(fw*0.35, ledgeY, ledgeW, 1),
			core.NewBox(fw*0.6, ledgeY, ledgeW, 1),
		)
	}
	return l
}

// LaserAxis returns the row laser hazards are centered on. A laser spans
// from the top of the screen down to the ground.
func (l *Level) LaserAxis() float64 {
	return l.GroundTop / 2
}

// Bounds returns the playable area.
func (l *Level) Bounds() core.Box {
	return core.NewBox(0, 0, l.W, l.H)
}

// GoalBody returns the physics body of the goal sensor.
func (l *Level) GoalBody() physics.BodyID {
	return l.goal
}

// Install adds the level's bodies to world.
func (l *Level) Install(world *physics.World) {
	for _, b := range l.Terrain {
		l.bodies = append(l.bodies, world.Add(physics.BodySpec{
			Kind:   physics.Static,
			Center: b.Center(),
			W:      b.W,
			H:      b.H,
			Layer:  physics.LayerTerrain,
		}))
	}
	l.goal = world.Add(physics.BodySpec{
		Kind:   physics.Static,
		Center: l.Goal.Center(),
		W:      l.Goal.W,
		H:      l.Goal.H,
		Sensor: true,
		Layer:  physics.LayerGoal,
		Mask:   physics.LayerPlayer,
	})
	l.bodies = append(l.bodies, l.goal)
}

// Uninstall removes the level's bodies from world.
func (l *Level) Uninstall(world *physics.World) {
	for _, id := range l.bodies {
		world.Remove(id)
	}
	l.bodies = nil
	l.goal = 0
}
