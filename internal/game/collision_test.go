package game

import (
	"testing"

	"github.com/vovakirdan/stop-yourself/internal/core"
	"github.com/vovakirdan/stop-yourself/internal/physics"
)

func addPlayer(w *physics.World, at core.Vec2) physics.BodyID {
	return w.Add(physics.BodySpec{
		Kind:   physics.Kinematic,
		Center: at,
		W:      2,
		H:      3,
		Layer:  physics.LayerPlayer,
	})
}

func TestGhostNeverKills(t *testing.T) {
	for _, mode := range []Mode{ModeSurvive, ModeDefend, ModeReplay} {
		t.Run(mode.String(), func(t *testing.T) {
			w, s := newTestSet()
			player := addPlayer(w, core.V(10, 10))
			s.SpawnGhost(KindSpike, core.V(10, 10), spikeShape)

			cols := w.Step()
			if len(cols) != 1 {
				t.Fatalf("expected the ghost overlap to be reported, got %d", len(cols))
			}
			res := NewResolver(s).Resolve(cols, player, 0, mode)
			if res.Death != nil {
				t.Errorf("ghost registered a death in %v", mode)
			}
			if res.Ignored != 1 {
				t.Errorf("Ignored = %d, expected 1", res.Ignored)
			}

			never := func(core.Vec2) bool { return false }
			h, err := s.Commit(NewRecordedTrack(), never, 0)
			if err != nil {
				t.Fatalf("Commit() error = %v", err)
			}
			deaths := 0
			for i := 0; i < 3; i++ {
				if res := NewResolver(s).Resolve(w.Step(), player, 0, mode); res.Death != nil {
					if res.Death != h {
						t.Errorf("death by %v, expected the committed hazard", res.Death.ID)
					}
					deaths++
				}
			}
			if deaths != 1 {
				t.Errorf("deaths after commit = %d, expected 1", deaths)
			}
		})
	}
}

func TestReplayOnlyRegistersLastPlaced(t *testing.T) {
	w, s := newTestSet()
	player := addPlayer(w, core.V(50, 50))
	track := NewRecordedTrack()
	never := func(core.Vec2) bool { return false }

	s.SpawnGhost(KindSpike, core.V(10, 10), spikeShape)
	a, _ := s.Commit(track, never, 0)
	s.SpawnGhost(KindSpike, core.V(20, 10), spikeShape)
	b, _ := s.Commit(track, never, 0)

	r := NewResolver(s)
	hitA := []physics.Collision{{A: player, B: a.Body}}
	hitB := []physics.Collision{{A: player, B: b.Body}}

	if res := r.Resolve(hitA, player, 0, ModeReplay); res.Death != nil {
		t.Error("hazard that is not last placed killed the replay")
	}
	if res := r.Resolve(hitA, player, 0, ModeSurvive); res.Death != a {
		t.Error("any committed hazard kills in Survive")
	}

	res := r.Resolve(append(hitB, hitB...), player, 0, ModeReplay)
	if res.Death != b {
		t.Fatal("last placed hazard should kill the replay")
	}

	s.MakePermanent()
	if res := r.Resolve(hitA, player, 0, ModeReplay); res.Death != a {
		t.Error("with no last-placed hazard every hit registers")
	}
}

func TestResolveOneDeathAndDeathMasksGoal(t *testing.T) {
	w, s := newTestSet()
	player := addPlayer(w, core.V(50, 50))
	goal := physics.BodyID(999)
	never := func(core.Vec2) bool { return false }

	s.SpawnGhost(KindSpike, core.V(10, 10), spikeShape)
	a, _ := s.Commit(NewRecordedTrack(), never, 0)
	s.SpawnGhost(KindSpike, core.V(20, 10), spikeShape)
	b, _ := s.Commit(NewRecordedTrack(), never, 0)

	r := NewResolver(s)
	res := r.Resolve([]physics.Collision{
		{A: player, B: goal},
		{A: player, B: a.Body},
		{A: player, B: b.Body},
	}, player, goal, ModeSurvive)
	if res.Death != a {
		t.Errorf("Death = %v, expected first hazard", res.Death)
	}
	if res.Goal {
		t.Error("death should mask the goal")
	}

	res = r.Resolve([]physics.Collision{{A: player, B: goal}}, player, goal, ModeSurvive)
	if !res.Goal || res.Death != nil {
		t.Errorf("Resolve(goal) = %+v", res)
	}

	// Collisions not involving the player are ignored
	res = r.Resolve([]physics.Collision{{A: a.Body, B: b.Body}}, player, goal, ModeSurvive)
	if res.Death != nil || res.Goal {
		t.Errorf("unrelated collision resolved to %+v", res)
	}
}

func TestFlickerSchedulerEdges(t *testing.T) {
	w, s := newTestSet()
	f := Flicker{Period: 10, Duration: 4}
	s.SpawnGhost(KindLaser, core.V(10, 0), HazardShape{W: 2, H: 10, Flicker: &f})
	laser, _ := s.Commit(NewRecordedTrack(), func(core.Vec2) bool { return false }, 0)
	s.SpawnGhost(KindSpike, core.V(20, 10), spikeShape)
	spike, _ := s.Commit(NewRecordedTrack(), func(core.Vec2) bool { return false }, 0)

	sched := NewFlickerScheduler(w)
	start := 500
	activations := 0
	for e := 0; e < 30; e++ {
		for _, h := range sched.Update(start+e, start, s.All(), false) {
			if h != laser {
				t.Errorf("unexpected activation of %v", h.Kind)
			}
			if e%10 != 0 {
				t.Errorf("activation at elapsed %d, expected only on period start", e)
			}
			activations++
		}
		want := e%10 < 4
		if laser.Active != want || w.Body(laser.Body).Enabled != want {
			t.Errorf("elapsed %d: active=%v enabled=%v, expected %v",
				e, laser.Active, w.Body(laser.Body).Enabled, want)
		}
		if !spike.Active {
			t.Errorf("elapsed %d: unscheduled hazard should stay active", e)
		}
	}
	if activations != 3 {
		t.Errorf("activations = %d, expected 3", activations)
	}

	if got := sched.Update(start+40, start, s.All(), true); len(got) != 0 {
		t.Error("forced-off update should not activate")
	}
	if laser.Active || !spike.Active {
		t.Errorf("forced off: laser=%v spike=%v", laser.Active, spike.Active)
	}
}
