package components

import (
	"fmt"

	"github.com/decker502/flappy/pkg/config"
	"github.com/decker502/flappy/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// RandomSource picks gap positions. *math/rand/v2.Rand satisfies it.
type RandomSource interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// Tube is a pair of blocking pipes with an opening between them.
//
// posTop is the bottom-left corner of the upper pipe, which is also the top of the opening.
// posBot is the bottom-left corner of the lower pipe. The lower pipe's top edge is always
// exactly gap units below posTop.
type Tube struct {
	posTop    Vec2
	posBot    Vec2
	boundsTop Rect
	boundsBot Rect
	scored    bool

	fluctuation   int
	gap           float64
	lowestOpening float64

	rng        RandomSource
	loader     game.Loader
	topTexture *ebiten.Image
	botTexture *ebiten.Image
}

// NewTube loads the pipe textures and places the tube at x with a random opening.
func NewTube(loader game.Loader, cfg *config.GameConfig, x float64, rng RandomSource) (*Tube, error) {
	top, err := loader.LoadTexture(cfg.Assets.TopTube)
	if err != nil {
		return nil, fmt.Errorf("failed to load top tube texture: %w", err)
	}
	bot, err := loader.LoadTexture(cfg.Assets.BottomTube)
	if err != nil {
		loader.ReleaseTexture(top)
		return nil, fmt.Errorf("failed to load bottom tube texture: %w", err)
	}

	t := &Tube{
		fluctuation:   cfg.Tube.Fluctuation,
		gap:           cfg.Tube.Gap,
		lowestOpening: cfg.Tube.LowestOpening,
		rng:           rng,
		loader:        loader,
		topTexture:    top,
		botTexture:    bot,
	}
	topSize, botSize := top.Bounds(), bot.Bounds()
	t.boundsTop = Rect{W: float64(topSize.Dx()), H: float64(topSize.Dy())}
	t.boundsBot = Rect{W: float64(botSize.Dx()), H: float64(botSize.Dy())}
	t.Reposition(x)
	return t, nil
}

// Reposition moves the tube to x and draws a new opening. Used to recycle a tube that
// scrolled off the left edge instead of allocating a new one.
func (t *Tube) Reposition(x float64) {
	t.posTop = Vec2{X: x, Y: t.genTopY()}
	t.posBot = Vec2{X: x, Y: t.posTop.Y - t.gap - t.boundsBot.H}

	t.boundsTop.SetPosition(t.posTop.X, t.posTop.Y)
	t.boundsBot.SetPosition(t.posBot.X, t.posBot.Y)
	t.scored = false
}

func (t *Tube) genTopY() float64 {
	return float64(t.rng.IntN(t.fluctuation)) + t.gap + t.lowestOpening
}

// Collides reports whether player overlaps either pipe.
func (t *Tube) Collides(player Rect) bool {
	return player.Overlaps(t.boundsTop) || player.Overlaps(t.boundsBot)
}

// MarkPassed records the first time a body whose left edge is at x has cleared the tube.
// It returns true only on that first call since the last Reposition.
func (t *Tube) MarkPassed(x float64) bool {
	if t.scored || x <= t.boundsTop.Right() {
		return false
	}
	t.scored = true
	return true
}

// PosTop returns the bottom-left corner of the upper pipe.
func (t *Tube) PosTop() Vec2 {
	return t.posTop
}

// PosBot returns the bottom-left corner of the lower pipe.
func (t *Tube) PosBot() Vec2 {
	return t.posBot
}

// Gap returns the height of the opening.
func (t *Tube) Gap() float64 {
	return t.gap
}

// BottomHeight returns the height of the lower pipe.
func (t *Tube) BottomHeight() float64 {
	return t.boundsBot.H
}

// TopWidth returns the width of the upper pipe texture.
func (t *Tube) TopWidth() float64 {
	return t.boundsTop.W
}

func (t *Tube) TopTexture() *ebiten.Image    { return t.topTexture }
func (t *Tube) BottomTexture() *ebiten.Image { return t.botTexture }

// Dispose releases both pipe textures.
func (t *Tube) Dispose() {
	if t.topTexture != nil {
		t.loader.ReleaseTexture(t.topTexture)
		t.topTexture = nil
	}
	if t.botTexture != nil {
		t.loader.ReleaseTexture(t.botTexture)
		t.botTexture = nil
	}
}
