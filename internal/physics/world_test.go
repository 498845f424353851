package physics

import (
	"testing"

	"github.com/vovakirdan/stop-yourself/internal/core"
)

func newTestWorld() (*World, BodyID, BodyID) {
	w := NewWorld(Config{Gravity: 0.1, MaxFallSpeed: 0.8})
	ground := w.Add(BodySpec{
		Kind:   Static,
		Center: core.V(20, 21),
		W:      40,
		H:      2,
		Layer:  LayerTerrain,
	})
	player := w.Add(BodySpec{
		Kind:   Dynamic,
		Center: core.V(5, 10),
		W:      2,
		H:      3,
		Layer:  LayerPlayer,
	})
	return w, ground, player
}

func TestDynamicBodyLandsOnGround(t *testing.T) {
	w, _, player := newTestWorld()

	for i := 0; i < 200; i++ {
		w.Step()
	}

	pos := w.Position(player)
	// Ground top is y=20, player half height is 1.5
	if pos.Y != 18.5 {
		t.Errorf("player rests at y=%f, expected 18.5", pos.Y)
	}
	if !w.Grounded(player) {
		t.Error("player should be grounded after landing")
	}
	if v := w.Velocity(player); v.Y != 0 {
		t.Errorf("vertical velocity after landing = %f, expected 0", v.Y)
	}
}

func TestMaxFallSpeed(t *testing.T) {
	w, _, player := newTestWorld()
	w.SetPosition(player, core.V(5, -100))

	for i := 0; i < 50; i++ {
		w.Step()
	}
	if v := w.Velocity(player); v.Y > 0.8 {
		t.Errorf("fall speed = %f, expected at most 0.8", v.Y)
	}
}

func TestWallBlocksHorizontalMovement(t *testing.T) {
	w, _, player := newTestWorld()
	w.Add(BodySpec{Kind: Static, Center: core.V(10, 15), W: 2, H: 10, Layer: LayerTerrain})
	w.SetPosition(player, core.V(5, 18.5))

	for i := 0; i < 30; i++ {
		v := w.Velocity(player)
		v.X = 0.5
		w.SetVelocity(player, v)
		w.Step()
	}

	// Wall left edge is x=9, player half width is 1
	if pos := w.Position(player); pos.X != 8 {
		t.Errorf("player x = %f, expected 8 (against wall)", pos.X)
	}
}

func TestSensorCollisionStartReportedOnce(t *testing.T) {
	w, _, player := newTestWorld()
	w.SetKind(player, Kinematic)
	spike := w.Add(BodySpec{Kind: Static, Center: core.V(5, 10), W: 3, H: 2, Sensor: true, Layer: LayerHazard})

	events := w.Step()
	if len(events) != 1 {
		t.Fatalf("expected 1 collision-start, got %d", len(events))
	}
	other, ok := events[0].Other(player)
	if !ok || other != spike {
		t.Errorf("collision = %+v, expected player/spike", events[0])
	}

	// Still overlapping: no new start event
	if events := w.Step(); len(events) != 0 {
		t.Errorf("expected no collision-start while overlap persists, got %d", len(events))
	}

	// Separate and re-enter
	w.SetPosition(player, core.V(30, 10))
	w.Step()
	w.SetPosition(player, core.V(5, 10))
	if events := w.Step(); len(events) != 1 {
		t.Errorf("expected collision-start on re-entry, got %d", len(events))
	}
}

func TestToggleEnabledReportsOverlapAgain(t *testing.T) {
	w, _, player := newTestWorld()
	w.SetKind(player, Kinematic)
	laser := w.Add(BodySpec{Kind: Static, Center: core.V(5, 10), W: 2, H: 20, Sensor: true, Layer: LayerHazard})

	w.SetEnabled(laser, false)
	if events := w.Step(); len(events) != 0 {
		t.Fatalf("disabled sensor should not collide, got %d events", len(events))
	}

	w.SetEnabled(laser, true)
	if events := w.Step(); len(events) != 1 {
		t.Errorf("re-enabled sensor should report overlap, got %d events", len(events))
	}

	w.ResetContacts(laser)
	if events := w.Step(); len(events) != 1 {
		t.Errorf("reset contacts should report overlap again, got %d events", len(events))
	}
}

func TestLayerMaskFiltersPairs(t *testing.T) {
	w, _, player := newTestWorld()
	w.SetKind(player, Kinematic)
	w.Add(BodySpec{
		Kind:   Static,
		Center: core.V(5, 10),
		W:      2,
		H:      2,
		Sensor: true,
		Layer:  LayerHazard,
		Mask:   LayerTerrain,
	})

	if events := w.Step(); len(events) != 0 {
		t.Errorf("masked-out pair should not collide, got %d events", len(events))
	}
}

func TestShapeQueries(t *testing.T) {
	w, ground, _ := newTestWorld()

	if w.Intersects(ground, core.BoxAround(core.V(10, 17), 2, 2)) {
		t.Error("box above the ground should not intersect")
	}
	if !w.Intersects(ground, core.BoxAround(core.V(10, 19.5), 2, 2)) {
		t.Error("box overlapping ground top should intersect")
	}

	w.Remove(ground)
	if w.Intersects(ground, core.BoxAround(core.V(10, 20), 2, 2)) {
		t.Error("removed body should not answer queries")
	}
	if w.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", w.Len())
	}
}
