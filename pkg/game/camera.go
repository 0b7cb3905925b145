package game

import "github.com/hajimehoshi/ebiten/v2"

// Camera is an orthographic camera over a y-up world.
//
// X and Y are the world point shown at the centre of the viewport. Moving the camera has no
// visual effect until Update is called; Left and Bottom always follow X and Y.
type Camera struct {
	X, Y float64

	width  float64
	height float64

	// viewX and viewY are captured by the last Update and used for drawing.
	viewX, viewY float64
}

// NewCamera creates a camera with the given viewport size, centred on the viewport.
func NewCamera(width, height float64) *Camera {
	c := &Camera{
		X:      width / 2,
		Y:      height / 2,
		width:  width,
		height: height,
	}
	c.Update()
	return c
}

// Width returns the viewport width in world units.
func (c *Camera) Width() float64 { return c.width }

// Height returns the viewport height in world units.
func (c *Camera) Height() float64 { return c.height }

// Left returns the world x of the left viewport edge.
func (c *Camera) Left() float64 {
	return c.X - c.width/2
}

// Bottom returns the world y of the bottom viewport edge.
func (c *Camera) Bottom() float64 {
	return c.Y - c.height/2
}

// Update applies the current position to subsequent draws.
func (c *Camera) Update() {
	c.viewX, c.viewY = c.X, c.Y
}

// ToScreen converts a world point to screen pixels of a viewport-sized screen.
func (c *Camera) ToScreen(x, y float64) (float64, float64) {
	left := c.viewX - c.width/2
	bottom := c.viewY - c.height/2
	return x - left, c.height - (y - bottom)
}

// Draw draws img with its bottom-left corner at world point (x, y).
func (c *Camera) Draw(screen, img *ebiten.Image, x, y float64) {
	if img == nil {
		return
	}
	sx, sy := c.ToScreen(x, y)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(sx, sy-float64(img.Bounds().Dy()))
	screen.DrawImage(img, op)
}
