package game

import (
	"math"
	"testing"
)

func soloState() *State {
	return &State{
		Players: map[string]*Player{"p1": {ID: "p1"}},
	}
}

func TestStepMovesPlayerAndAdvancesTick(t *testing.T) {
	s := soloState()
	inputs := map[string]Input{"p1": {Ax: 1}}

	Step(s, inputs)
	if s.Tick != 1 {
		t.Fatalf("tick after 1 step = %d, want 1", s.Tick)
	}
	x1 := s.Players["p1"].X
	if x1 <= 0 {
		t.Fatalf("expected x to increase after 1 step, got %f", x1)
	}

	for i := 0; i < 4; i++ {
		Step(s, inputs)
	}
	if s.Tick != 5 {
		t.Fatalf("tick after 5 steps = %d, want 5", s.Tick)
	}
	if x2 := s.Players["p1"].X; x2 <= x1 {
		t.Fatalf("expected x to keep increasing: x1=%f x2=%f", x1, x2)
	}
}

func TestStepIgnoresDeadzoneInput(t *testing.T) {
	s := soloState()
	Step(s, map[string]Input{"p1": {Ax: Deadzone / 2, Ay: Deadzone / 2}})
	p := s.Players["p1"]
	if p.VX != 0 || p.VY != 0 {
		t.Fatalf("deadzone input should not accelerate, got v=(%f,%f)", p.VX, p.VY)
	}
}

func TestStepCapsSpeed(t *testing.T) {
	// Seed a velocity far above either cap so a single step must clamp it.
	s := soloState()
	s.Players["p1"].VX = 100

	Step(s, map[string]Input{"p1": {}})
	p := s.Players["p1"]
	if speed := math.Hypot(p.VX, p.VY); math.Abs(speed-MaxSpeedNormal) > 1e-9 {
		t.Fatalf("normal speed cap: got %f, want %f", speed, MaxSpeedNormal)
	}

	s = soloState()
	s.Players["p1"].VX = 100
	Step(s, map[string]Input{"p1": {Ax: 1, Boost: true}})
	p = s.Players["p1"]
	if speed := math.Hypot(p.VX, p.VY); math.Abs(speed-MaxSpeedSprint) > 1e-9 {
		t.Fatalf("sprint speed cap: got %f, want %f", speed, MaxSpeedSprint)
	}
}

func TestStepClampsToMapBounds(t *testing.T) {
	s := soloState()
	p := s.Players["p1"]
	p.X = MapWidth / 2
	p.Y = -MapHeight / 2
	p.VX = 50
	p.VY = -50

	Step(s, map[string]Input{"p1": {}})
	if p.X != MapWidth/2 {
		t.Fatalf("x past right edge: got %f, want %f", p.X, MapWidth/2)
	}
	if p.Y != -MapHeight/2 {
		t.Fatalf("y past bottom edge: got %f, want %f", p.Y, -MapHeight/2)
	}
}
