package game

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/stop-yourself/internal/config"
	"github.com/vovakirdan/stop-yourself/internal/core"
)

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Hazards.LaserWeight = 0
	cfg.Gameplay.RespawnTicks = 5
	return cfg
}

func newTestSim(t *testing.T, cfg config.Config) *Simulation {
	t.Helper()
	s, err := New(cfg, 30, 12, 1, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func pointerInput(p core.Vec2, actions ...core.Action) core.InputFrame {
	in := input(actions...)
	in.SetPointer(p)
	return in
}

func runUntil(t *testing.T, s *Simulation, in core.InputFrame, mode Mode) {
	t.Helper()
	for i := 0; i < 2000; i++ {
		if s.Mode() == mode {
			return
		}
		s.Tick(in)
	}
	t.Fatalf("mode %v not reached, still %v", mode, s.Mode())
}

func transitions(msgs []Message) []Transition {
	var out []Transition
	for _, m := range msgs {
		if mc, ok := m.(ModeChanged); ok {
			out = append(out, mc.Transition)
		}
	}
	return out
}

func outcomes(msgs []Message) []Outcome {
	var out []Outcome
	for _, m := range msgs {
		if re, ok := m.(RoundEnded); ok {
			out = append(out, re.Outcome)
		}
	}
	return out
}

// placeOnPath moves the ghost onto the running path and commits it.
func placeOnPath(s *Simulation) {
	at := core.V(15, 9)
	for i := 0; i < 5; i++ {
		s.Tick(pointerInput(at))
	}
	s.Tick(pointerInput(at, core.ActionPlace))
}

func TestNewRejectsZeroPeriod(t *testing.T) {
	cfg := testConfig()
	cfg.Hazards.Flicker.Period = 0
	if _, err := New(cfg, 30, 12, 1, nil); !errors.Is(err, config.ErrBadPeriod) {
		t.Errorf("New() error = %v, expected ErrBadPeriod", err)
	}
}

func TestSurviveRecordsUntilGoal(t *testing.T) {
	s := newTestSim(t, testConfig())
	runUntil(t, s, input(core.ActionRight), ModeDefend)

	samples := s.Track().Samples()
	if len(samples) == 0 {
		t.Fatal("nothing recorded")
	}
	for i, smp := range samples {
		if smp.Frame != i {
			t.Fatalf("sample %d has frame %d, expected contiguous frames", i, smp.Frame)
		}
	}
	last := samples[len(samples)-1]
	if !s.Level().Goal.Intersects(core.BoxAround(last.Pos, 2, 3)) {
		t.Errorf("closing sample %v is not inside the goal", last.Pos)
	}

	hazards := s.Hazards()
	if len(hazards) != 1 || !hazards[0].Ghost || hazards[0].Kind != KindSpike {
		t.Errorf("expected one spike ghost, got %+v", hazards)
	}
	if s.PlayerPos() != s.Level().Spawn {
		t.Errorf("player at %v, expected respawn at %v", s.PlayerPos(), s.Level().Spawn)
	}

	msgs := s.Drain()
	want := []Transition{{From: ModeSurvive, To: ModeDefend, Cause: CauseGoal}}
	if got := transitions(msgs); !reflect.DeepEqual(got, want) {
		t.Errorf("transitions = %v, expected %v", got, want)
	}
	if got := outcomes(msgs); !reflect.DeepEqual(got, []Outcome{OutcomeSurvived}) {
		t.Errorf("outcomes = %v, expected [survived]", got)
	}
}

func TestReplayReproducesRecording(t *testing.T) {
	s := newTestSim(t, testConfig())
	runUntil(t, s, input(core.ActionRight), ModeDefend)
	recorded := append([]Sample(nil), s.Track().Samples()...)

	// Default pointer keeps the spike above the running path.
	s.Tick(input(core.ActionPlace))

	var replayed []core.Vec2
	for i := 0; i < 2000; i++ {
		s.Tick(input())
		if s.Mode() == ModeReplay {
			replayed = append(replayed, s.PlayerPos())
		} else if len(replayed) > 0 {
			break
		}
	}

	if len(replayed) != len(recorded) {
		t.Fatalf("replayed %d positions, expected %d", len(replayed), len(recorded))
	}
	for i := range recorded {
		if replayed[i] != recorded[i].Pos {
			t.Fatalf("replay tick %d at %v, expected %v", i, replayed[i], recorded[i].Pos)
		}
	}

	if s.Mode() != ModeDefend {
		t.Errorf("mode after breach = %v, expected Defend", s.Mode())
	}
	if s.Track().Rebases() != 1 {
		t.Errorf("Rebases() = %d, expected 1", s.Track().Rebases())
	}
	if s.Score() != 0 {
		t.Errorf("Score() = %d, expected 0", s.Score())
	}

	var permanent, ghosts int
	for _, h := range s.Hazards() {
		switch {
		case h.Ghost:
			ghosts++
		case !h.LastPlaced:
			permanent++
		}
	}
	if permanent != 1 || ghosts != 1 {
		t.Errorf("permanent=%d ghosts=%d, expected 1 and 1", permanent, ghosts)
	}

	msgs := s.Drain()
	if got := outcomes(msgs); !reflect.DeepEqual(got, []Outcome{OutcomeSurvived, OutcomeBreached}) {
		t.Errorf("outcomes = %v, expected [survived breached]", got)
	}

	// Another placement rebases once more.
	s.Tick(input(core.ActionPlace))
	s.Tick(input())
	if s.Mode() != ModeReplay || s.Track().Rebases() != 2 {
		t.Errorf("second cycle: mode=%v rebases=%d", s.Mode(), s.Track().Rebases())
	}
}

func TestDefendedReplayScores(t *testing.T) {
	s := newTestSim(t, testConfig())
	runUntil(t, s, input(core.ActionRight), ModeDefend)
	placeOnPath(s)
	runUntil(t, s, input(), ModeSurvive)

	if s.Score() != 1 {
		t.Errorf("Score() = %d, expected 1", s.Score())
	}
	tr := s.Track()
	if tr.Len() != 0 || !tr.Locked() {
		t.Errorf("track after death: len=%d locked=%v", tr.Len(), tr.Locked())
	}
	if tr.Rebases() != 1 {
		t.Errorf("Rebases() = %d, expected 1", tr.Rebases())
	}
	if !s.Respawning() {
		t.Error("player should be respawning after a death")
	}

	msgs := s.Drain()
	want := []Transition{
		{From: ModeSurvive, To: ModeDefend, Cause: CauseGoal},
		{From: ModeDefend, To: ModeReplay, Cause: CauseCommit},
		{From: ModeReplay, To: ModeSurvive, Cause: CauseDeath},
	}
	if got := transitions(msgs); !reflect.DeepEqual(got, want) {
		t.Errorf("transitions = %v, expected %v", got, want)
	}
	if got := outcomes(msgs); !reflect.DeepEqual(got, []Outcome{OutcomeSurvived, OutcomeDefended}) {
		t.Errorf("outcomes = %v, expected [survived defended]", got)
	}

	for i := 0; i < 5; i++ {
		s.Tick(input())
	}
	if s.Respawning() || s.Track().Locked() {
		t.Errorf("after grace: respawning=%v locked=%v", s.Respawning(), s.Track().Locked())
	}
}

func TestLaserStrikesOnFirstActivation(t *testing.T) {
	cfg := testConfig()
	cfg.Hazards.LaserWeight = 1
	s := newTestSim(t, cfg)
	runUntil(t, s, input(core.ActionRight), ModeDefend)

	ghost := s.Hazards()[0]
	if ghost.Kind != KindLaser {
		t.Fatalf("ghost kind = %v, expected laser", ghost.Kind)
	}
	s.Tick(input(core.ActionPlace))
	runUntil(t, s, input(), ModeSurvive)

	if s.Score() != 1 {
		t.Errorf("Score() = %d, expected the laser to stop the replay", s.Score())
	}

	activations := 0
	for _, m := range s.Drain() {
		if _, ok := m.(HazardActivated); ok {
			activations++
		}
	}
	if activations != 1 {
		t.Errorf("activations before the kill = %d, expected 1", activations)
	}
}

func TestLaserHeldOffDuringRespawn(t *testing.T) {
	cfg := testConfig()
	cfg.Hazards.LaserWeight = 1
	s := newTestSim(t, cfg)
	runUntil(t, s, input(core.ActionRight), ModeDefend)
	s.Tick(input(core.ActionPlace))
	runUntil(t, s, input(), ModeSurvive)
	s.Drain()

	laser := s.Hazards()[0]
	if laser.Active {
		t.Error("laser should be switched off by the kill")
	}
	for i := 0; i < 3; i++ {
		s.Tick(input())
		if !s.Respawning() {
			t.Fatalf("tick %d: expected the respawn grace to be running", i)
		}
		if laser.Active || s.world.Body(laser.Body).Enabled {
			t.Errorf("tick %d: laser active = %v, expected it held off after the kill", i, laser.Active)
		}
		for _, m := range s.Drain() {
			if _, ok := m.(HazardActivated); ok {
				t.Errorf("tick %d: unexpected activation during respawn", i)
			}
		}
	}
}

func TestSurviveDeathsEndGame(t *testing.T) {
	cfg := testConfig()
	cfg.Gameplay.Lives = 1
	s := newTestSim(t, cfg)
	runUntil(t, s, input(core.ActionRight), ModeDefend)
	placeOnPath(s)
	runUntil(t, s, input(), ModeSurvive)

	right := input(core.ActionRight)
	for i := 0; i < 2000 && !s.GameOver(); i++ {
		s.Tick(right)
	}
	if !s.GameOver() {
		t.Fatal("running into the spike should end the game")
	}
	if s.Lives() != 0 || s.Score() != 1 {
		t.Errorf("lives=%d score=%d, expected 0 and 1", s.Lives(), s.Score())
	}

	frame := s.Frame()
	s.Tick(right)
	if s.Frame() != frame {
		t.Error("game over should stop the clock")
	}

	s.Tick(input(core.ActionRestart))
	if s.GameOver() || s.Score() != 0 || s.Mode() != ModeSurvive || s.Frame() != 0 {
		t.Errorf("restart: over=%v score=%d mode=%v frame=%d", s.GameOver(), s.Score(), s.Mode(), s.Frame())
	}
}

func TestUnlimitedLives(t *testing.T) {
	cfg := testConfig()
	cfg.Gameplay.Lives = 0
	s := newTestSim(t, cfg)
	if s.Lives() != -1 {
		t.Errorf("Lives() = %d, expected -1 for unlimited", s.Lives())
	}
}

func TestPlacementOverSpawnRejected(t *testing.T) {
	s := newTestSim(t, testConfig())
	runUntil(t, s, input(core.ActionRight), ModeDefend)
	s.Drain()

	spawn := s.Level().Spawn
	for i := 0; i < 10; i++ {
		s.Tick(pointerInput(spawn))
	}
	s.Tick(pointerInput(spawn, core.ActionPlace))
	s.Tick(input())

	if s.Mode() != ModeDefend {
		t.Errorf("mode = %v, expected to stay in Defend", s.Mode())
	}
	rejected := false
	for _, m := range s.Drain() {
		if _, ok := m.(PlacementRejected); ok {
			rejected = true
		}
	}
	if !rejected {
		t.Error("expected a placement rejection")
	}
}

func TestPauseKeepsRecordingContinuous(t *testing.T) {
	s := newTestSim(t, testConfig())
	for i := 0; i < 10; i++ {
		s.Tick(input())
	}
	s.Tick(input(core.ActionPause))
	if !s.Paused() {
		t.Fatal("simulation should be paused")
	}
	for i := 0; i < 4; i++ {
		s.Tick(input(core.ActionRight))
	}
	if s.Track().Len() != 10 {
		t.Errorf("recorded %d samples while paused, expected 10", s.Track().Len())
	}

	s.Tick(input(core.ActionPause))
	for i := 0; i < 4; i++ {
		s.Tick(input())
	}

	samples := s.Track().Samples()
	if len(samples) != 15 {
		t.Fatalf("recorded %d samples, expected 15", len(samples))
	}
	for i, smp := range samples {
		if smp.Frame != i {
			t.Errorf("sample %d has frame %d, expected %d", i, smp.Frame, i)
		}
	}
	if s.Frame() != 20 {
		t.Errorf("Frame() = %d, expected 20", s.Frame())
	}
}

func TestDeterministicRuns(t *testing.T) {
	script := func() ([]Sample, []Message) {
		cfg := config.DefaultConfig()
		s, err := New(cfg, 60, 16, 42, nil)
		if err != nil {
			t.Fatal(err)
		}
		var msgs []Message
		right, jump := input(core.ActionRight), input(core.ActionRight, core.ActionJump)
		for i := 0; i < 2000 && s.Mode() != ModeDefend; i++ {
			if i%40 == 10 {
				s.Tick(jump)
			} else {
				s.Tick(right)
			}
			msgs = append(msgs, s.Drain()...)
		}
		samples := append([]Sample(nil), s.Track().Samples()...)
		s.Tick(pointerInput(core.V(30, 12), core.ActionPlace))
		for i := 0; i < 600; i++ {
			s.Tick(input())
			msgs = append(msgs, s.Drain()...)
		}
		return samples, msgs
	}

	samplesA, msgsA := script()
	samplesB, msgsB := script()
	if len(samplesA) == 0 {
		t.Fatal("scripted run recorded nothing")
	}
	if !reflect.DeepEqual(samplesA, samplesB) {
		t.Error("recorded tracks differ between identical runs")
	}
	if !reflect.DeepEqual(msgsA, msgsB) {
		t.Error("notifications differ between identical runs")
	}
}
