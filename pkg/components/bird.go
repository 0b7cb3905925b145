package components

import (
	"fmt"

	"github.com/decker502/flappy/pkg/config"
	"github.com/decker502/flappy/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// Bird is the player sprite: a body falling under gravity and moving right at constant speed.
type Bird struct {
	position Vec2
	velocity Vec2
	bounds   Rect

	gravity      float64
	movement     float64
	jumpVelocity float64
	flapVolume   float64

	loader    game.Loader
	texture   *ebiten.Image
	animation *Animation
	flap      game.Sound
}

// NewBird loads the bird strip and flap sound and places the bird at (x, y).
//
// The returned bird owns both handles; call Dispose to give them back to loader.
func NewBird(loader game.Loader, cfg *config.GameConfig, x, y float64) (*Bird, error) {
	texture, err := loader.LoadTexture(cfg.Assets.Bird)
	if err != nil {
		return nil, fmt.Errorf("failed to load bird texture: %w", err)
	}

	animation, err := NewAnimation(texture, cfg.Bird.FrameCount, cfg.Bird.CycleTime)
	if err != nil {
		loader.ReleaseTexture(texture)
		return nil, fmt.Errorf("failed to build bird animation: %w", err)
	}

	flap, err := loader.LoadSound(cfg.Assets.Wing)
	if err != nil {
		loader.ReleaseTexture(texture)
		return nil, fmt.Errorf("failed to load flap sound: %w", err)
	}

	size := texture.Bounds()
	return &Bird{
		position:     Vec2{X: x, Y: y},
		bounds:       Rect{X: x, Y: y, W: float64(size.Dx()) / float64(cfg.Bird.FrameCount), H: float64(size.Dy())},
		gravity:      cfg.Bird.Gravity,
		movement:     cfg.Bird.Movement,
		jumpVelocity: cfg.Bird.JumpVelocity,
		flapVolume:   cfg.Bird.FlapVolume,
		loader:       loader,
		texture:      texture,
		animation:    animation,
		flap:         flap,
	}, nil
}

// Update advances the wing animation and integrates one physics step.
//
// Velocity is kept in units per second. It is scaled by dt for the position update and then
// scaled back by 1/dt. A non-positive dt leaves position and velocity untouched.
func (b *Bird) Update(dt float64) {
	b.animation.Update(dt)

	if dt <= 0 {
		return
	}

	if b.position.Y > 0 {
		b.velocity.Y += b.gravity
	}
	b.velocity = b.velocity.Scale(dt)
	b.position = b.position.Add(Vec2{X: b.movement * dt, Y: b.velocity.Y})
	if b.position.Y < 0 {
		b.position.Y = 0
	}
	b.velocity = b.velocity.Scale(1 / dt)

	b.bounds.SetPosition(b.position.X, b.position.Y)
}

// Jump sets the vertical velocity to the flap impulse and plays the wing sound.
func (b *Bird) Jump() {
	b.velocity.Y = b.jumpVelocity
	b.flap.Play(b.flapVolume)
}

// Position returns a copy of the bird position.
func (b *Bird) Position() Vec2 {
	return b.position
}

// Velocity returns a copy of the bird velocity in units per second.
func (b *Bird) Velocity() Vec2 {
	return b.velocity
}

// Bounds returns the collision box, which always sits at the bird position.
func (b *Bird) Bounds() Rect {
	return b.bounds
}

// Texture returns the current animation frame.
func (b *Bird) Texture() *ebiten.Image {
	return b.animation.Frame()
}

// Dispose releases the strip and the flap sound.
func (b *Bird) Dispose() {
	if b.texture != nil {
		b.loader.ReleaseTexture(b.texture)
		b.texture = nil
	}
	if b.flap != nil {
		b.loader.ReleaseSound(b.flap)
		b.flap = nil
	}
}
