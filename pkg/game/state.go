package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// State is one screen of the game (menu, play session).
// Only the state on top of the StateManager stack receives Update and Render calls.
type State interface {
	// HandleInput polls input and either mutates the state or asks the manager for a transition.
	HandleInput() error

	// Update handles input and advances the simulation.
	// deltaTime is the wall-clock time elapsed since the last update in seconds.
	// A returned error is fatal for the game loop.
	Update(deltaTime float64) error

	// Render draws the state to screen through the state's own camera.
	Render(screen *ebiten.Image)

	// Dispose releases every handle the state loaded. The manager calls it exactly once,
	// when the state leaves the stack.
	Dispose()
}
