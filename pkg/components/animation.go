package components

import (
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrInvalidFrameCount is returned when an animation strip cannot be cut into the requested frames.
var ErrInvalidFrameCount = errors.New("invalid animation frame count")

// Animation cycles through equal-width sub-frames of a horizontal sprite strip.
type Animation struct {
	frames           []*ebiten.Image // sub-images of the strip, left to right
	maxFrameTime     float64         // seconds a frame stays visible
	currentFrameTime float64         // seconds spent on the current frame
	frame            int             // index into frames, always in [0, len(frames))
}

// NewAnimation cuts strip into frameCount frames of equal width.
//
// Parameters:
//   - strip: the sprite strip; the animation keeps sub-images of it but does not own it
//   - frameCount: number of frames in the strip, must be positive and not exceed the strip width
//   - cycleTime: seconds for one full pass through all frames
func NewAnimation(strip *ebiten.Image, frameCount int, cycleTime float64) (*Animation, error) {
	if strip == nil {
		return nil, fmt.Errorf("%w: nil strip", ErrInvalidFrameCount)
	}
	bounds := strip.Bounds()
	if frameCount <= 0 || frameCount > bounds.Dx() {
		return nil, fmt.Errorf("%w: %d frames in a %dpx strip", ErrInvalidFrameCount, frameCount, bounds.Dx())
	}

	frameWidth := bounds.Dx() / frameCount
	frames := make([]*ebiten.Image, 0, frameCount)
	for i := 0; i < frameCount; i++ {
		x := bounds.Min.X + i*frameWidth
		rect := image.Rect(x, bounds.Min.Y, x+frameWidth, bounds.Max.Y)
		frames = append(frames, strip.SubImage(rect).(*ebiten.Image))
	}

	return &Animation{
		frames:       frames,
		maxFrameTime: cycleTime / float64(frameCount),
	}, nil
}

// Update advances the animation clock.
//
// At most one frame is advanced per call: a dt spanning several frame times still moves a
// single frame and the surplus time is dropped.
func (a *Animation) Update(dt float64) {
	a.currentFrameTime += dt
	if a.currentFrameTime > a.maxFrameTime {
		a.frame++
		a.currentFrameTime = 0
	}
	if a.frame >= len(a.frames) {
		a.frame = 0
	}
}

// Frame returns the sub-image currently on display.
func (a *Animation) Frame() *ebiten.Image {
	return a.frames[a.frame]
}

// Index returns the position of the current frame in the strip.
func (a *Animation) Index() int {
	return a.frame
}

// FrameCount returns the number of frames.
func (a *Animation) FrameCount() int {
	return len(a.frames)
}

// FrameTime returns how long each frame stays visible.
func (a *Animation) FrameTime() float64 {
	return a.maxFrameTime
}
