// Package gametest provides in-memory stand-ins for the host engine, shared by the tests of
// the components and states packages.
package gametest

import (
	"fmt"
	"image"

	"github.com/decker502/flappy/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultSizes are the pixel sizes of the stock assets.
var DefaultSizes = map[string]image.Point{
	"bg.png":            {X: 272, Y: 512},
	"ground.png":        {X: 336, Y: 112},
	"birdanimation.png": {X: 102, Y: 24},
	"toptube.png":       {X: 52, Y: 320},
	"bottomtube.png":    {X: 52, Y: 320},
	"playbtn.png":       {X: 104, Y: 58},
}

type handle struct {
	name     string
	releases int
}

// Loader is a game.Loader that creates blank textures and silent sounds and counts releases.
type Loader struct {
	Sizes map[string]image.Point
	Fail  map[string]error // names whose load fails with the given error

	textures map[*ebiten.Image]*handle
	sounds   map[*Sound]*handle
	order    []*handle
}

var _ game.Loader = (*Loader)(nil)

// NewLoader returns a loader that knows DefaultSizes.
func NewLoader() *Loader {
	sizes := make(map[string]image.Point, len(DefaultSizes))
	for k, v := range DefaultSizes {
		sizes[k] = v
	}
	return &Loader{
		Sizes:    sizes,
		Fail:     map[string]error{},
		textures: map[*ebiten.Image]*handle{},
		sounds:   map[*Sound]*handle{},
	}
}

func (l *Loader) LoadTexture(name string) (*ebiten.Image, error) {
	if err := l.Fail[name]; err != nil {
		return nil, err
	}
	size, ok := l.Sizes[name]
	if !ok {
		return nil, fmt.Errorf("gametest: unknown texture %q", name)
	}
	img := ebiten.NewImage(size.X, size.Y)
	h := &handle{name: name}
	l.textures[img] = h
	l.order = append(l.order, h)
	return img, nil
}

func (l *Loader) ReleaseTexture(img *ebiten.Image) {
	if h, ok := l.textures[img]; ok {
		h.releases++
	}
}

func (l *Loader) LoadSound(name string) (game.Sound, error) {
	if err := l.Fail[name]; err != nil {
		return nil, err
	}
	s := &Sound{Name: name}
	h := &handle{name: name}
	l.sounds[s] = h
	l.order = append(l.order, h)
	return s, nil
}

func (l *Loader) ReleaseSound(s game.Sound) {
	fs, ok := s.(*Sound)
	if !ok {
		return
	}
	if h, ok := l.sounds[fs]; ok {
		h.releases++
	}
}

// Loaded returns how many handles were ever loaded.
func (l *Loader) Loaded() int {
	return len(l.order)
}

// Outstanding returns how many handles are loaded and not yet released.
func (l *Loader) Outstanding() int {
	n := 0
	for _, h := range l.order {
		if h.releases == 0 {
			n++
		}
	}
	return n
}

// OverReleased returns how many handles were released more than once.
func (l *Loader) OverReleased() int {
	n := 0
	for _, h := range l.order {
		if h.releases > 1 {
			n++
		}
	}
	return n
}

// Snapshot returns a marker for ReleasedExactlyOnce.
func (l *Loader) Snapshot() int {
	return len(l.order)
}

// ReleasedExactlyOnce reports whether every handle loaded in [from, to) was released once.
func (l *Loader) ReleasedExactlyOnce(from, to int) bool {
	for _, h := range l.order[from:to] {
		if h.releases != 1 {
			return false
		}
	}
	return true
}

// TextureReleases returns how many times img was released.
func (l *Loader) TextureReleases(img *ebiten.Image) int {
	if h, ok := l.textures[img]; ok {
		return h.releases
	}
	return 0
}

// Sound records every Play call.
type Sound struct {
	Name       string
	Plays      int
	LastVolume float64
	Closed     int
}

func (s *Sound) Play(volume float64) {
	s.Plays++
	s.LastVolume = volume
}

func (s *Sound) Close() error {
	s.Closed++
	return nil
}

// Input reports Pressed once per frame in which it is set. Tap arms it for one frame.
type Input struct {
	Pressed bool
}

var _ game.Input = (*Input)(nil)

// Tap makes the next JustActivated call return true.
func (i *Input) Tap() {
	i.Pressed = true
}

func (i *Input) JustActivated() bool {
	pressed := i.Pressed
	i.Pressed = false
	return pressed
}

// FixedRand always returns the same value, clamped into range.
type FixedRand struct {
	Value int
}

func (r FixedRand) IntN(n int) int {
	if r.Value >= n {
		return n - 1
	}
	return r.Value
}

// SequenceRand returns its values in order and then repeats the last one.
type SequenceRand struct {
	Values []int
	next   int
}

func (r *SequenceRand) IntN(n int) int {
	v := r.Values[len(r.Values)-1]
	if r.next < len(r.Values) {
		v = r.Values[r.next]
		r.next++
	}
	return v % n
}
