// Package game implements the Stop Yourself simulation: a frame clock, the
// Survive/Defend/Replay mode machine, the recorded track, hazards with their
// flicker schedules and the collision resolver, stepped in a fixed order.
package game

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stop-yourself/internal/config"
	"github.com/vovakirdan/stop-yourself/internal/core"
	"github.com/vovakirdan/stop-yourself/internal/physics"
)

// Simulation owns every component of a game and advances them one tick at a
// time. It is not safe for concurrent use.
type Simulation struct {
	cfg           config.Config
	log           *log.Logger
	seed          int64
	rng           *rand.Rand
	width, height int
	laserFlicker  Flicker

	world    *physics.World
	clock    FrameClock
	modes    ModeMachine
	track    *RecordedTrack
	hazards  *HazardSet
	flicker  *FlickerScheduler
	resolver *Resolver
	ctrl     *Controller
	out      Outbox
	level    *Level
	player   physics.BodyID

	pointer  core.Vec2
	jumped   bool // Jump started this tick and not yet recorded
	grace    int  // Ticks left before a respawned player can move
	forceOff bool // Hold flickering hazards inactive
	idle     int  // Ticks since playback ran out

	round    int
	runTicks int
	deaths   int
	score    int
	gameOver bool
}

// New creates a simulation for a width x height cell viewport. A nil logger
// discards all output.
func New(cfg config.Config, width, height int, seed int64, logger *log.Logger) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	fl := cfg.Hazards.Flicker
	laser, err := NewFlicker(fl.Period, fl.DefaultDelay, fl.Duration)
	if err != nil {
		return nil, fmt.Errorf("game: laser flicker: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Simulation{
		cfg:          cfg,
		log:          logger,
		seed:         seed,
		width:        width,
		height:       height,
		laserFlicker: laser,
	}
	s.Reset()
	return s, nil
}

// Reset starts a new game from scratch with the original seed.
func (s *Simulation) Reset() {
	s.rng = rand.New(rand.NewSource(s.seed))
	s.world = physics.NewWorld(physics.Config{
		Gravity:      s.cfg.Physics.Gravity,
		MaxFallSpeed: s.cfg.Physics.MaxFallSpeed,
	})
	s.clock = FrameClock{}
	s.modes.Reset()
	s.track = NewRecordedTrack()
	s.hazards = NewHazardSet(s.world)
	s.flicker = NewFlickerScheduler(s.world)
	s.resolver = NewResolver(s.hazards)
	s.ctrl = NewController(s.cfg.Physics, s.cfg.Player.RunHoldTicks)
	s.out.Reset()
	s.level = nil

	s.player = s.world.Add(physics.BodySpec{
		Kind:  physics.Dynamic,
		W:     s.cfg.Player.Width,
		H:     s.cfg.Player.Height,
		Layer: physics.LayerPlayer,
	})
	s.resetLevel()
	s.pointer = core.V(s.level.W/2, s.level.LaserAxis())

	s.grace, s.forceOff, s.idle = 0, false, 0
	s.round, s.runTicks, s.deaths, s.score = 0, 0, 0, 0
	s.gameOver = false
}

// Resize records a new viewport size. It takes effect at the next level reset.
func (s *Simulation) Resize(width, height int) {
	s.width, s.height = width, height
}

// Tick advances the simulation by one platform tick.
func (s *Simulation) Tick(in core.InputFrame) {
	if s.gameOver {
		if in.Has(core.ActionRestart) {
			s.Reset()
		}
		return
	}

	if in.Has(core.ActionPause) {
		if !s.clock.Paused() {
			s.clock.Pause()
			s.clock.Advance()
			return
		}
		span := s.clock.Resume()
		s.track.Shift(span)
		s.log.Debug("resumed", "frame", s.clock.Now(), "span", span)
	}
	if s.clock.Paused() {
		s.clock.Advance()
		return
	}

	now := s.clock.Now()
	defer s.clock.Advance()

	s.applyInput(now, in)

	s.processPending(now)
	if s.gameOver {
		return
	}
	s.tickGrace()

	switch s.modes.Mode() {
	case ModeSurvive:
		s.record(now)
	case ModeReplay:
		s.play(now)
	}

	if s.modes.Mode() == ModeDefend {
		s.hazards.Follow(s.pointer, s.cfg.Hazards.GhostStep, s.cfg.Hazards.SnapDistance, s.level.Bounds())
		if in.Has(core.ActionPlace) {
			s.place(now)
		}
	}
	forceOff := s.forceOff || s.modes.Mode() == ModeDefend
	for _, h := range s.flicker.Update(now, s.track.FrameStart(), s.hazards.All(), forceOff) {
		s.out.Publish(HazardActivated{Frame: now, Hazard: h.ID})
	}

	cols := s.world.Step()

	s.resolve(now, cols)
	s.runTicks++
}

func (s *Simulation) applyInput(now int, in core.InputFrame) {
	if in.HasPointer {
		s.pointer = s.clampPointer(in.Pointer)
	}

	switch s.modes.Mode() {
	case ModeDefend:
		n := s.cfg.Hazards.PointerNudge
		var d core.Vec2
		if in.Has(core.ActionLeft) {
			d.X -= n
		}
		if in.Has(core.ActionRight) {
			d.X += n
		}
		if in.Has(core.ActionUp) {
			d.Y -= n
		}
		if in.Has(core.ActionDown) {
			d.Y += n
		}
		s.pointer = s.clampPointer(s.pointer.Add(d))

	case ModeSurvive:
		if s.grace > 0 {
			return
		}
		vel, jumped := s.ctrl.Update(in, s.world.Velocity(s.player), s.world.Grounded(s.player))
		s.world.SetVelocity(s.player, vel)
		if jumped {
			s.jumped = true
			s.out.Publish(JumpCue{Frame: now})
		}
	}
}

func (s *Simulation) clampPointer(p core.Vec2) core.Vec2 {
	return core.V(
		core.ClampF(p.X, 0, s.level.W-1),
		core.ClampF(p.Y, 0, s.level.H-1),
	)
}

// processPending applies the transitions requested by the previous tick.
func (s *Simulation) processPending(now int) {
	for _, m := range s.out.TakePending() {
		switch m := m.(type) {
		case GoalReached:
			s.onGoal(now)
		case PlayerDied:
			s.onDeath(now, m.Hazard)
		case HazardPlaced:
			s.onPlaced(now)
		}
	}
}

func (s *Simulation) onGoal(now int) {
	from := s.modes.Mode()
	t, err := s.modes.Goal()
	if err != nil {
		s.log.Warn("ignoring goal", "frame", now, "mode", from, "err", err)
		return
	}

	switch from {
	case ModeSurvive:
		// Closing sample inside the goal so the replay reaches it too.
		s.track.Record(now, s.world.Position(s.player), false)
		s.endRound(now, OutcomeSurvived)
	case ModeReplay:
		s.endRound(now, OutcomeBreached)
		if h := s.hazards.MakePermanent(); h != nil {
			s.log.Debug("hazard made permanent", "hazard", h.ID, "kind", h.Kind)
		}
	}

	s.resetLevel()
	s.setPlayer(physics.Kinematic, false)
	s.track.Unlock()
	s.forceOff = false
	s.spawnGhost(now)
	s.changed(now, t)
}

func (s *Simulation) onDeath(now int, hazard HazardID) {
	from := s.modes.Mode()
	switch from {
	case ModeSurvive:
		s.deaths++
		s.endRound(now, OutcomeDied)
	case ModeReplay:
		s.score++
		s.endRound(now, OutcomeDefended)
	}
	s.log.Debug("player died", "frame", now, "mode", from, "hazard", hazard)

	t := s.modes.Death()
	s.track.Clear()
	s.track.Lock()
	s.resetLevel()
	s.setPlayer(physics.Kinematic, false)
	s.grace = s.cfg.Gameplay.RespawnTicks
	s.forceOff = true
	s.changed(now, t)

	if lives := s.cfg.Gameplay.Lives; lives > 0 && s.deaths >= lives {
		s.gameOver = true
		s.log.Info("game over", "frame", now, "score", s.score, "rounds", s.round)
		return
	}
	if s.grace == 0 {
		s.startRun()
	}
}

func (s *Simulation) onPlaced(now int) {
	t, err := s.modes.Commit(s.hazards.Ghost() != nil)
	if err != nil {
		s.log.Warn("ignoring placement", "frame", now, "err", err)
		return
	}
	s.track.Rebase(now)
	s.setPlayer(physics.Kinematic, true)
	s.runTicks = 0
	s.idle = 0
	s.forceOff = false
	s.changed(now, t)
}

func (s *Simulation) tickGrace() {
	if s.grace == 0 {
		return
	}
	s.grace--
	if s.grace == 0 {
		s.startRun()
	}
}

// startRun hands control back to the player after a respawn.
func (s *Simulation) startRun() {
	if s.modes.Mode() != ModeSurvive {
		return
	}
	s.forceOff = false
	s.track.Unlock()
	s.setPlayer(physics.Dynamic, true)
	s.runTicks = 0
}

func (s *Simulation) record(now int) {
	if s.grace > 0 {
		return
	}
	s.track.Record(now, s.world.Position(s.player), s.jumped)
	s.jumped = false
}

func (s *Simulation) play(now int) {
	n := s.track.Play(now, func(smp Sample) {
		s.world.SetPosition(s.player, smp.Pos)
		if smp.Jumped {
			s.out.Publish(JumpCue{Frame: now, Replayed: true})
		}
	})
	if n == 0 && s.track.Finished() {
		s.idle++
	} else {
		s.idle = 0
	}
}

func (s *Simulation) place(now int) {
	g := s.hazards.Ghost()
	if g == nil {
		s.log.Warn("place without a ghost", "frame", now)
		return
	}
	if g.Kind == KindSpike && g.Box().Intersects(s.playerBoxAt(s.level.Spawn)) {
		s.log.Debug("placement over spawn rejected", "frame", now, "hazard", g.ID)
		s.out.Publish(PlacementRejected{Frame: now, Hazard: g.ID})
		return
	}

	body := g.Body
	overlaps := func(p core.Vec2) bool {
		return s.world.Intersects(body, s.playerBoxAt(p))
	}
	h, err := s.hazards.Commit(s.track, overlaps, s.cfg.Hazards.Flicker.DefaultDelay)
	if err != nil {
		s.log.Warn("commit failed", "frame", now, "err", err)
		return
	}

	delay := 0
	if h.Flicker != nil {
		delay = h.Flicker.Delay
	}
	s.log.Debug("hazard placed", "frame", now, "hazard", h.ID, "kind", h.Kind, "delay", delay)
	s.out.Emit(HazardPlaced{Frame: now, Hazard: h.ID, Kind: h.Kind, Delay: delay})
}

func (s *Simulation) resolve(now int, cols []physics.Collision) {
	mode := s.modes.Mode()
	res := s.resolver.Resolve(cols, s.player, s.level.GoalBody(), mode)
	if res.Ignored > 0 {
		s.log.Debug("hazard hits ignored", "frame", now, "mode", mode, "count", res.Ignored)
	}

	switch {
	case res.Death != nil:
		s.out.Emit(PlayerDied{Frame: now, Hazard: res.Death.ID})
		s.track.Lock()
		s.forceOff = true
	case res.Goal:
		s.out.Emit(GoalReached{Frame: now})
	case mode == ModeReplay && s.idle > s.cfg.Gameplay.RespawnTicks:
		s.log.Warn("playback ended outside the goal", "frame", now, "samples", s.track.Len())
		s.idle = 0
		s.out.Emit(GoalReached{Frame: now})
	}
}

func (s *Simulation) resetLevel() {
	if s.level != nil {
		s.level.Uninstall(s.world)
	}
	s.level = BuildLevel(s.cfg, s.width, s.height)
	s.level.Install(s.world)
	s.hazards.SetLaserAxis(s.level.LaserAxis())

	s.world.SetPosition(s.player, s.level.Spawn)
	s.world.SetVelocity(s.player, core.Vec2{})
	s.ctrl.Reset()
	s.jumped = false
	s.pointer = s.clampPointer(s.pointer)
}

func (s *Simulation) setPlayer(kind physics.Kind, enabled bool) {
	s.world.SetKind(s.player, kind)
	s.world.SetEnabled(s.player, enabled)
}

func (s *Simulation) spawnGhost(now int) {
	kind := KindSpike
	shape := HazardShape{W: s.cfg.Hazards.SpikeWidth, H: s.cfg.Hazards.SpikeHeight}
	if s.rng.Float64() < s.cfg.Hazards.LaserWeight {
		f := s.laserFlicker
		kind = KindLaser
		shape = HazardShape{W: s.cfg.Hazards.LaserWidth, H: s.level.GroundTop, Flicker: &f}
	}

	g, replaced := s.hazards.SpawnGhost(kind, s.pointer, shape)
	if replaced {
		s.log.Warn("replaced pending ghost", "frame", now, "hazard", g.ID)
	}
	s.out.Publish(GhostSpawned{Frame: now, Hazard: g.ID, Kind: kind, Replaced: replaced})
}

func (s *Simulation) endRound(now int, outcome Outcome) {
	s.round++
	s.out.Publish(RoundEnded{
		Frame:   now,
		Round:   s.round,
		Outcome: outcome,
		Ticks:   s.runTicks,
		Hazards: s.hazards.Committed(),
	})
	s.log.Info("round ended", "round", s.round, "outcome", outcome, "ticks", s.runTicks)
}

func (s *Simulation) changed(now int, t Transition) {
	s.out.Publish(ModeChanged{Frame: now, Transition: t})
	s.log.Debug("mode changed", "frame", now, "from", t.From, "to", t.To, "cause", t.Cause)
}

func (s *Simulation) playerBoxAt(center core.Vec2) core.Box {
	return core.BoxAround(center, s.cfg.Player.Width, s.cfg.Player.Height)
}

// Drain returns the notifications published since the last call.
func (s *Simulation) Drain() []Message {
	return s.out.Drain()
}

// Mode returns the current mode.
func (s *Simulation) Mode() Mode { return s.modes.Mode() }

// Frame returns the current frame.
func (s *Simulation) Frame() int { return s.clock.Now() }

// Paused reports whether the simulation is paused.
func (s *Simulation) Paused() bool { return s.clock.Paused() }

// GameOver reports whether the player ran out of lives.
func (s *Simulation) GameOver() bool { return s.gameOver }

// Score returns the number of successful defenses.
func (s *Simulation) Score() int { return s.score }

// Round returns the number of finished rounds.
func (s *Simulation) Round() int { return s.round }

// Lives returns the remaining lives, or -1 when lives are unlimited.
func (s *Simulation) Lives() int {
	if s.cfg.Gameplay.Lives == 0 {
		return -1
	}
	return max(0, s.cfg.Gameplay.Lives-s.deaths)
}

// Respawning reports whether the player is waiting to respawn.
func (s *Simulation) Respawning() bool { return s.grace > 0 }

// Track returns the recorded track. Callers must not modify it.
func (s *Simulation) Track() *RecordedTrack { return s.track }

// Hazards returns every hazard, ghost included.
func (s *Simulation) Hazards() []*Hazard { return s.hazards.All() }

// Level returns the current level geometry.
func (s *Simulation) Level() *Level { return s.level }

// Pointer returns the placement pointer.
func (s *Simulation) Pointer() core.Vec2 { return s.pointer }

// PlayerBox returns the player's collider.
func (s *Simulation) PlayerBox() core.Box {
	return s.playerBoxAt(s.world.Position(s.player))
}

// PlayerPos returns the player's center.
func (s *Simulation) PlayerPos() core.Vec2 {
	return s.world.Position(s.player)
}
