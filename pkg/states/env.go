// Package states holds the screens of the game: the title menu and the running game.
package states

import (
	"image/color"

	"github.com/decker502/flappy/pkg/components"
	"github.com/decker502/flappy/pkg/config"
	"github.com/decker502/flappy/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// ScoreRecorder keeps the results of finished runs.
type ScoreRecorder interface {
	SaveScore(score int) (int64, error)
	Best() (int, error)
}

// Env is everything a state needs from the outside world. States never own anything in it.
type Env struct {
	Manager *game.StateManager
	Loader  game.Loader
	Input   game.Input
	Rand    components.RandomSource
	Config  *config.GameConfig
	Scores  ScoreRecorder // nil disables score history
}

func (e *Env) newCamera() *game.Camera {
	return game.NewCamera(e.Config.ViewportWidth(), e.Config.ViewportHeight())
}

var hudFace = text.NewGoXFace(basicfont.Face7x13)

// drawCentered draws s horizontally centred on x with its top at y, in screen pixels.
func drawCentered(screen *ebiten.Image, s string, x, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, s, hudFace, op)
}
