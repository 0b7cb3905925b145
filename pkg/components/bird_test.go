package components

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/decker502/flappy/pkg/config"
	"github.com/decker502/flappy/pkg/game/gametest"
)

func newTestBird(t *testing.T, loader *gametest.Loader, x, y float64) *Bird {
	t.Helper()
	bird, err := NewBird(loader, config.DefaultGameConfig(), x, y)
	if err != nil {
		t.Fatalf("NewBird() error: %v", err)
	}
	return bird
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewBirdBounds(t *testing.T) {
	bird := newTestBird(t, gametest.NewLoader(), 50, 300)

	b := bird.Bounds()
	if b.X != 50 || b.Y != 300 {
		t.Errorf("bounds position: got (%v, %v), want (50, 300)", b.X, b.Y)
	}
	if b.W != 34 || b.H != 24 {
		t.Errorf("bounds size: got %vx%v, want 34x24", b.W, b.H)
	}
}

func TestBirdUpdateZeroDeltaKeepsState(t *testing.T) {
	bird := newTestBird(t, gametest.NewLoader(), 50, 100)

	bird.Update(0)

	if bird.Position() != (Vec2{X: 50, Y: 100}) {
		t.Errorf("position changed: %+v", bird.Position())
	}
	v := bird.Velocity()
	if v.X != 0 || v.Y != 0 || math.IsNaN(v.Y) {
		t.Errorf("velocity changed: %+v", v)
	}
}

func TestBirdUpdateAppliesGravity(t *testing.T) {
	bird := newTestBird(t, gametest.NewLoader(), 50, 300)

	bird.Update(0.1)

	pos := bird.Position()
	if !almostEqual(pos.X, 60) {
		t.Errorf("x: got %v, want 60", pos.X)
	}
	if !almostEqual(pos.Y, 298.5) {
		t.Errorf("y: got %v, want 298.5", pos.Y)
	}
	if !almostEqual(bird.Velocity().Y, -15) {
		t.Errorf("velocity restored to per-second units: got %v, want -15", bird.Velocity().Y)
	}
	if b := bird.Bounds(); b.X != pos.X || b.Y != pos.Y {
		t.Errorf("bounds not moved with position: %+v vs %+v", b, pos)
	}
}

func TestBirdNoGravityOnFloor(t *testing.T) {
	bird := newTestBird(t, gametest.NewLoader(), 0, 0)

	bird.Update(0.016)

	if bird.Velocity().Y != 0 {
		t.Errorf("velocity on the floor: got %v, want 0", bird.Velocity().Y)
	}
	if bird.Position().Y != 0 {
		t.Errorf("y on the floor: got %v, want 0", bird.Position().Y)
	}
}

func TestBirdJumpResetsVelocity(t *testing.T) {
	loader := gametest.NewLoader()
	bird := newTestBird(t, loader, 50, 300)

	for i := 0; i < 20; i++ {
		bird.Update(1.0 / 60)
	}
	if bird.Velocity().Y >= 0 {
		t.Fatalf("expected falling velocity, got %v", bird.Velocity().Y)
	}

	bird.Jump()
	if bird.Velocity().Y != 250 {
		t.Errorf("after jump: got %v, want 250", bird.Velocity().Y)
	}

	bird.Jump()
	if bird.Velocity().Y != 250 {
		t.Errorf("after second jump: got %v, want 250", bird.Velocity().Y)
	}

	flap := bird.flap.(*gametest.Sound)
	if flap.Plays != 2 {
		t.Errorf("flap plays: got %d, want 2", flap.Plays)
	}
	if flap.LastVolume != 0.5 {
		t.Errorf("flap volume: got %v, want 0.5", flap.LastVolume)
	}
}

func TestBirdNeverBelowFloor(t *testing.T) {
	bird := newTestBird(t, gametest.NewLoader(), 50, 40)
	rng := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 2000; i++ {
		if rng.IntN(10) == 0 {
			bird.Jump()
		}
		bird.Update(rng.Float64() * 0.1)
		if bird.Position().Y < 0 {
			t.Fatalf("step %d: y = %v", i, bird.Position().Y)
		}
		if bird.Bounds().Y != bird.Position().Y {
			t.Fatalf("step %d: bounds out of sync", i)
		}
	}
}

func TestBirdDisposeReleasesOnce(t *testing.T) {
	loader := gametest.NewLoader()
	bird := newTestBird(t, loader, 50, 300)

	bird.Dispose()
	bird.Dispose()

	if loader.Outstanding() != 0 {
		t.Errorf("outstanding handles: got %d, want 0", loader.Outstanding())
	}
	if loader.OverReleased() != 0 {
		t.Errorf("handles released twice: %d", loader.OverReleased())
	}
}

func TestNewBirdLoadFailureReleasesTexture(t *testing.T) {
	loader := gametest.NewLoader()
	loader.Fail["sfx_wing.ogg"] = errors.New("missing")

	if _, err := NewBird(loader, config.DefaultGameConfig(), 50, 300); err == nil {
		t.Fatal("expected error")
	}
	if loader.Outstanding() != 0 {
		t.Errorf("outstanding handles after failure: %d", loader.Outstanding())
	}
}
