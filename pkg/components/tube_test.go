package components

import (
	"testing"

	"github.com/decker502/flappy/pkg/config"
	"github.com/decker502/flappy/pkg/game/gametest"
)

func newTestTube(t *testing.T, x float64, rng RandomSource) *Tube {
	t.Helper()
	tube, err := NewTube(gametest.NewLoader(), config.DefaultGameConfig(), x, rng)
	if err != nil {
		t.Fatalf("NewTube() error: %v", err)
	}
	return tube
}

func checkTubeInvariant(t *testing.T, tube *Tube) {
	t.Helper()
	want := tube.PosTop().Y - tube.Gap() - tube.BottomHeight()
	if tube.PosBot().Y != want {
		t.Errorf("bottom y: got %v, want %v", tube.PosBot().Y, want)
	}
	if tube.boundsTop.Y != tube.PosTop().Y || tube.boundsBot.Y != tube.PosBot().Y {
		t.Error("collision boxes do not track positions")
	}
	if tube.boundsTop.X != tube.PosTop().X || tube.boundsBot.X != tube.PosBot().X {
		t.Error("collision boxes do not track x")
	}
}

func TestTubeOpeningRange(t *testing.T) {
	tests := []struct {
		name string
		rng  RandomSource
		want float64
	}{
		{"lowest", gametest.FixedRand{Value: 0}, 220},
		{"highest", gametest.FixedRand{Value: 129}, 349},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tube := newTestTube(t, 177, tt.rng)
			if tube.PosTop().Y != tt.want {
				t.Errorf("top y: got %v, want %v", tube.PosTop().Y, tt.want)
			}
			if tube.PosTop().X != 177 {
				t.Errorf("x: got %v, want 177", tube.PosTop().X)
			}
			checkTubeInvariant(t, tube)
		})
	}
}

func TestTubeRepositionKeepsInvariant(t *testing.T) {
	rng := &gametest.SequenceRand{Values: []int{10, 90, 0, 129, 64}}
	tube := newTestTube(t, 100, rng)
	checkTubeInvariant(t, tube)

	for i := 1; i <= 4; i++ {
		x := 100 + float64(i)*708
		tube.Reposition(x)
		if tube.PosTop().X != x || tube.PosBot().X != x {
			t.Errorf("reposition %d: x not moved", i)
		}
		checkTubeInvariant(t, tube)
	}
}

func TestTubeCollides(t *testing.T) {
	// opening spans y in (220-100, 220) = (120, 220)
	tube := newTestTube(t, 100, gametest.FixedRand{Value: 0})

	tests := []struct {
		name   string
		player Rect
		want   bool
	}{
		{"far left", Rect{X: 0, Y: 150, W: 34, H: 24}, false},
		{"inside the opening", Rect{X: 110, Y: 150, W: 34, H: 24}, false},
		{"hits top pipe", Rect{X: 110, Y: 210, W: 34, H: 24}, true},
		{"hits bottom pipe", Rect{X: 110, Y: 110, W: 34, H: 24}, true},
		{"touches left edge", Rect{X: 66, Y: 300, W: 34, H: 24}, false},
		{"past the tube", Rect{X: 153, Y: 300, W: 34, H: 24}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tube.Collides(tt.player); got != tt.want {
				t.Errorf("Collides() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTubeMarkPassed(t *testing.T) {
	tube := newTestTube(t, 100, gametest.FixedRand{Value: 0})

	if tube.MarkPassed(140) {
		t.Error("bird over the tube should not count")
	}
	if !tube.MarkPassed(153) {
		t.Error("first pass should count")
	}
	if tube.MarkPassed(160) {
		t.Error("second pass should not count")
	}

	tube.Reposition(900)
	if tube.MarkPassed(160) {
		t.Error("recycled tube ahead of the bird should not count")
	}
	if !tube.MarkPassed(953) {
		t.Error("recycled tube should count again")
	}
}

func TestTubeDispose(t *testing.T) {
	loader := gametest.NewLoader()
	tube, err := NewTube(loader, config.DefaultGameConfig(), 0, gametest.FixedRand{})
	if err != nil {
		t.Fatalf("NewTube() error: %v", err)
	}

	tube.Dispose()
	tube.Dispose()

	if loader.Outstanding() != 0 || loader.OverReleased() != 0 {
		t.Errorf("outstanding=%d overReleased=%d", loader.Outstanding(), loader.OverReleased())
	}
}
