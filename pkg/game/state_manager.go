package game

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// StateManager owns a stack of states. The last pushed state is the active one; the ones
// beneath it are suspended but keep their resources until they are popped.
//
// Transitions happen immediately on the caller's stack. A state that calls Set or Pop on
// itself from Update must not touch its own fields afterwards: it has already been disposed.
type StateManager struct {
	states []State
	logger *log.Logger
}

// NewStateManager creates a manager with an empty stack; Push the first state before the loop starts.
func NewStateManager() *StateManager {
	return &StateManager{
		logger: log.WithPrefix("StateManager"),
	}
}

// Push places state on top of the stack and makes it active.
// The previously active state stays on the stack, suspended and not disposed.
func (sm *StateManager) Push(state State) {
	sm.states = append(sm.states, state)
	sm.logger.Debug("push", "depth", len(sm.states))
}

// Pop disposes the active state and resumes the one beneath it.
// Popping the last state is unsupported and panics.
func (sm *StateManager) Pop() {
	if len(sm.states) < 2 {
		panic("game: StateManager.Pop would leave the state stack empty")
	}
	sm.popAndDispose()
	sm.logger.Debug("pop", "depth", len(sm.states))
}

// Set disposes the active state and replaces it with state.
// Calling Set on an empty stack panics.
func (sm *StateManager) Set(state State) {
	if len(sm.states) == 0 {
		panic("game: StateManager.Set on an empty state stack")
	}
	sm.popAndDispose()
	sm.states = append(sm.states, state)
	sm.logger.Debug("set", "depth", len(sm.states))
}

// popAndDispose moves the top state out of the stack before disposing it, so it can never be
// reached again through the manager.
func (sm *StateManager) popAndDispose() {
	last := len(sm.states) - 1
	top := sm.states[last]
	sm.states[last] = nil
	sm.states = sm.states[:last]
	top.Dispose()
}

// Current returns the active state, or nil before the first Push.
func (sm *StateManager) Current() State {
	if len(sm.states) == 0 {
		return nil
	}
	return sm.states[len(sm.states)-1]
}

// Len returns the stack depth.
func (sm *StateManager) Len() int {
	return len(sm.states)
}

// Update updates the active state.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *StateManager) Update(deltaTime float64) error {
	if current := sm.Current(); current != nil {
		return current.Update(deltaTime)
	}
	return nil
}

// Render draws the active state.
func (sm *StateManager) Render(screen *ebiten.Image) {
	if current := sm.Current(); current != nil {
		current.Render(screen)
	}
}

// DisposeAll empties the stack from the top down, disposing every state once.
// Used on application shutdown.
func (sm *StateManager) DisposeAll() {
	for len(sm.states) > 0 {
		sm.popAndDispose()
	}
	sm.logger.Debug("all states disposed")
}
