package game

import "github.com/hajimehoshi/ebiten/v2"

// Sound is a one-shot sound effect handle owned by whoever loaded it.
type Sound interface {
	// Play restarts the sound from the beginning at the given volume (0.0 ~ 1.0).
	Play(volume float64)
	// Close releases the handle. Calling Play afterwards is a programmer error.
	Close() error
}

// Loader hands out asset handles by file name.
//
// Every call returns a fresh handle that belongs to the caller, who must give it back through
// the matching Release method exactly once. Two callers loading the same name never share a
// handle, so one owner releasing its copy never invalidates another owner's copy.
type Loader interface {
	LoadTexture(name string) (*ebiten.Image, error)
	ReleaseTexture(img *ebiten.Image)
	LoadSound(name string) (Sound, error)
	ReleaseSound(s Sound)
}

// Input is the only input query the game needs.
type Input interface {
	// JustActivated reports whether a pointer (mouse, touch or the jump key) went down this frame.
	JustActivated() bool
}
