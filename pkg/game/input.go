package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenInput reads the pointer from ebiten: a new touch, a left click or the space key.
type EbitenInput struct {
	touchIDs []ebiten.TouchID
}

var _ Input = (*EbitenInput)(nil)

// NewEbitenInput creates an input reader. Query it at most once per frame.
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{}
}

func (in *EbitenInput) JustActivated() bool {
	// Touch first (mobile), then mouse and keyboard (desktop).
	in.touchIDs = inpututil.AppendJustPressedTouchIDs(in.touchIDs[:0])
	if len(in.touchIDs) > 0 {
		return true
	}
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace)
}
