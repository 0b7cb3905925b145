package states

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/decker502/flappy/pkg/components"
	"github.com/decker502/flappy/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// PlayState runs one game: the bird flies right, the camera follows it, tubes are recycled
// ahead of it and any crash starts a fresh game.
type PlayState struct {
	env    *Env
	camera *game.Camera

	background *ebiten.Image
	ground     *ebiten.Image
	groundPos1 components.Vec2
	groundPos2 components.Vec2

	bird  *components.Bird
	tubes []*components.Tube
	score int

	logger *log.Logger
}

// NewPlayState loads everything a game needs. On failure nothing stays loaded.
func NewPlayState(env *Env) (*PlayState, error) {
	cfg := env.Config
	s := &PlayState{
		env:    env,
		camera: env.newCamera(),
		logger: log.WithPrefix("PlayState"),
	}

	if err := s.load(); err != nil {
		s.release()
		return nil, err
	}

	groundY := cfg.World.GroundYOffset
	groundW := float64(s.ground.Bounds().Dx())
	s.groundPos1 = components.Vec2{X: s.camera.Left(), Y: groundY}
	s.groundPos2 = components.Vec2{X: s.camera.Left() + groundW, Y: groundY}

	s.logger.Debug("play state created", "tubes", len(s.tubes))
	return s, nil
}

func (s *PlayState) load() error {
	cfg := s.env.Config
	loader := s.env.Loader

	var err error
	if s.background, err = loader.LoadTexture(cfg.Assets.Background); err != nil {
		return fmt.Errorf("failed to load background: %w", err)
	}
	if s.ground, err = loader.LoadTexture(cfg.Assets.Ground); err != nil {
		return fmt.Errorf("failed to load ground: %w", err)
	}
	if s.bird, err = components.NewBird(loader, cfg, cfg.Bird.StartX, cfg.Bird.StartY); err != nil {
		return err
	}

	s.tubes = make([]*components.Tube, 0, cfg.Tube.Count)
	for i := 1; i <= cfg.Tube.Count; i++ {
		x := float64(i) * (cfg.Tube.Spacing + cfg.Tube.Width)
		tube, err := components.NewTube(loader, cfg, x, s.env.Rand)
		if err != nil {
			return err
		}
		s.tubes = append(s.tubes, tube)
	}
	return nil
}

// HandleInput makes the bird flap on tap.
func (s *PlayState) HandleInput() error {
	if s.env.Input.JustActivated() {
		s.bird.Jump()
	}
	return nil
}

// Update advances the game by deltaTime seconds.
//
// A crash into a tube or the ground replaces this state with a new game and returns at once:
// after gameOver the state is disposed and none of its fields may be used.
func (s *PlayState) Update(deltaTime float64) error {
	if err := s.HandleInput(); err != nil {
		return err
	}
	s.updateGround()

	s.bird.Update(deltaTime)
	s.camera.X = s.bird.Position().X + s.env.Config.World.CameraLead

	bounds := s.bird.Bounds()
	for _, tube := range s.tubes {
		if s.camera.Left() > tube.PosTop().X+tube.TopWidth() {
			tube.Reposition(tube.PosTop().X + s.env.Config.CycleLength())
		}
		if tube.MarkPassed(bounds.X) {
			s.score++
		}
		if tube.Collides(bounds) {
			return s.gameOver("tube")
		}
	}

	if s.bird.Position().Y <= s.groundTop() {
		return s.gameOver("ground")
	}

	s.camera.Update()
	return nil
}

// updateGround leapfrogs a ground tile that scrolled off the left edge.
func (s *PlayState) updateGround() {
	w := float64(s.ground.Bounds().Dx())
	left := s.camera.Left()
	if left > s.groundPos1.X+w {
		s.groundPos1.X += w * 2
	}
	if left > s.groundPos2.X+w {
		s.groundPos2.X += w * 2
	}
}

func (s *PlayState) groundTop() float64 {
	return float64(s.ground.Bounds().Dy()) + s.env.Config.World.GroundYOffset
}

// gameOver records the run and replaces this state with a new game.
func (s *PlayState) gameOver(cause string) error {
	s.logger.Debug("game over", "cause", cause, "score", s.score)
	if s.env.Scores != nil {
		if _, err := s.env.Scores.SaveScore(s.score); err != nil {
			s.logger.Warn("failed to save score", "score", s.score, "err", err)
		}
	}

	next, err := NewPlayState(s.env)
	if err != nil {
		return fmt.Errorf("failed to restart game: %w", err)
	}
	s.env.Manager.Set(next)
	return nil
}

// Score returns the number of tubes passed in this game.
func (s *PlayState) Score() int {
	return s.score
}

func (s *PlayState) Render(screen *ebiten.Image) {
	cam := s.camera
	cam.Draw(screen, s.background, cam.Left(), 0)

	pos := s.bird.Position()
	cam.Draw(screen, s.bird.Texture(), pos.X, pos.Y)

	for _, tube := range s.tubes {
		top, bot := tube.PosTop(), tube.PosBot()
		cam.Draw(screen, tube.TopTexture(), top.X, top.Y)
		cam.Draw(screen, tube.BottomTexture(), bot.X, bot.Y)
	}

	cam.Draw(screen, s.ground, s.groundPos1.X, s.groundPos1.Y)
	cam.Draw(screen, s.ground, s.groundPos2.X, s.groundPos2.Y)

	drawCentered(screen, strconv.Itoa(s.score), cam.Width()/2, 24)
}

func (s *PlayState) Dispose() {
	s.release()
	s.logger.Debug("play state disposed")
}

func (s *PlayState) release() {
	loader := s.env.Loader
	if s.background != nil {
		loader.ReleaseTexture(s.background)
		s.background = nil
	}
	if s.ground != nil {
		loader.ReleaseTexture(s.ground)
		s.ground = nil
	}
	if s.bird != nil {
		s.bird.Dispose()
	}
	for _, tube := range s.tubes {
		tube.Dispose()
	}
}
