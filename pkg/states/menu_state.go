package states

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/decker502/flappy/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// MenuState is the title screen. Any tap starts a game.
type MenuState struct {
	env    *Env
	camera *game.Camera

	background *ebiten.Image
	playButton *ebiten.Image
	best       int

	logger *log.Logger
}

// NewMenuState loads the menu textures and reads the best score, if scores are kept.
func NewMenuState(env *Env) (*MenuState, error) {
	m := &MenuState{
		env:    env,
		camera: env.newCamera(),
		logger: log.WithPrefix("MenuState"),
	}

	var err error
	if m.background, err = env.Loader.LoadTexture(env.Config.Assets.Background); err != nil {
		return nil, fmt.Errorf("failed to load menu background: %w", err)
	}
	if m.playButton, err = env.Loader.LoadTexture(env.Config.Assets.PlayButton); err != nil {
		env.Loader.ReleaseTexture(m.background)
		return nil, fmt.Errorf("failed to load play button: %w", err)
	}

	if env.Scores != nil {
		if m.best, err = env.Scores.Best(); err != nil {
			m.logger.Warn("failed to read best score", "err", err)
		}
	}

	return m, nil
}

// HandleInput replaces the menu with a new game on tap.
func (m *MenuState) HandleInput() error {
	if !m.env.Input.JustActivated() {
		return nil
	}
	play, err := NewPlayState(m.env)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	m.env.Manager.Set(play)
	return nil
}

func (m *MenuState) Update(deltaTime float64) error {
	return m.HandleInput()
}

func (m *MenuState) Render(screen *ebiten.Image) {
	m.camera.Draw(screen, m.background, 0, 0)
	w := float64(m.playButton.Bounds().Dx())
	m.camera.Draw(screen, m.playButton, m.camera.X-w/2, m.camera.Y)

	if m.best > 0 {
		_, y := m.camera.ToScreen(m.camera.X, m.camera.Y)
		drawCentered(screen, fmt.Sprintf("BEST %d", m.best), m.camera.Width()/2, y+16)
	}
}

func (m *MenuState) Dispose() {
	m.env.Loader.ReleaseTexture(m.background)
	m.env.Loader.ReleaseTexture(m.playButton)
	m.logger.Debug("menu state disposed")
}
