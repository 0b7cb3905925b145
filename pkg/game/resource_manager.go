package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png" // Register PNG decoder
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
)

// ResourceManager loads textures, sound effects and music from a file system.
//
// Decoded pixels and raw audio bytes are cached by name, but every Load call hands out a new
// GPU image or audio player that belongs to the caller. Releasing one owner's handle therefore
// never invalidates a handle held by another owner, which matters when a new state loads its
// assets before the state it replaces has been disposed.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. It is only used from the ebiten game loop.
//
// Usage:
//
//	audioContext := audio.NewContext(48000)
//	rm := NewResourceManager(audioContext, os.DirFS("assets"))
//	img, err := rm.LoadTexture("bg.png")
//	if err != nil {
//	    return err
//	}
//	defer rm.ReleaseTexture(img)
type ResourceManager struct {
	fsys         fs.FS
	audioContext *audio.Context             // nil disables sound and music loading
	pixelCache   map[string]image.Image     // name -> decoded pixels
	audioCache   map[string][]byte          // name -> encoded audio file
	live         map[*ebiten.Image]struct{} // textures handed out and not yet released

	soundVolume  float64
	soundEnabled bool

	logger *log.Logger
}

var _ Loader = (*ResourceManager)(nil)

// NewResourceManager creates a ResourceManager reading assets from fsys.
//
// Parameters:
//   - audioContext: the process-wide audio context; nil makes LoadSound and LoadMusic fail.
//   - fsys: the asset directory, usually os.DirFS of the configured assets dir.
//
// Returns:
//   - A ResourceManager with empty caches, sound volume 1.0 and sounds enabled.
func NewResourceManager(audioContext *audio.Context, fsys fs.FS) *ResourceManager {
	return &ResourceManager{
		fsys:         fsys,
		audioContext: audioContext,
		pixelCache:   make(map[string]image.Image),
		audioCache:   make(map[string][]byte),
		live:         make(map[*ebiten.Image]struct{}),
		soundVolume:  1.0,
		soundEnabled: true,
		logger:       log.WithPrefix("ResourceManager"),
	}
}

// SetSoundVolume sets the multiplier applied to every sound effect volume.
func (rm *ResourceManager) SetSoundVolume(volume float64) {
	rm.soundVolume = clampVolume(volume)
}

// SetSoundEnabled mutes or unmutes every sound effect handed out by this manager.
func (rm *ResourceManager) SetSoundEnabled(enabled bool) {
	rm.soundEnabled = enabled
}

// LoadTexture returns a new GPU image with the pixels of the named file.
//
// The file is decoded once; later calls reuse the decoded pixels.
//
// Parameters:
//   - name: file name relative to the asset file system (e.g. "bg.png").
//
// Returns:
//   - A new *ebiten.Image owned by the caller. Give it back with ReleaseTexture.
//   - An error if the file cannot be opened or decoded.
func (rm *ResourceManager) LoadTexture(name string) (*ebiten.Image, error) {
	pixels, ok := rm.pixelCache[name]
	if !ok {
		file, err := rm.fsys.Open(name)
		if err != nil {
			return nil, fmt.Errorf("failed to open image file %s: %w", name, err)
		}
		defer file.Close()

		pixels, _, err = image.Decode(file)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image %s: %w", name, err)
		}
		rm.pixelCache[name] = pixels
		rm.logger.Debug("image decoded", "name", name, "size", pixels.Bounds().Size())
	}

	img := ebiten.NewImageFromImage(pixels)
	rm.live[img] = struct{}{}
	return img, nil
}

// ReleaseTexture frees the GPU memory of a texture returned by LoadTexture.
// Releasing an image this manager did not hand out, or releasing it twice, is a no-op.
func (rm *ResourceManager) ReleaseTexture(img *ebiten.Image) {
	if _, ok := rm.live[img]; !ok {
		return
	}
	delete(rm.live, img)
	img.Deallocate()
}

// LiveTextures returns the number of textures handed out and not yet released.
func (rm *ResourceManager) LiveTextures() int {
	return len(rm.live)
}

// LoadSound returns a new one-shot sound effect player for the named file.
// Supported formats: MP3 (.mp3) and OGG Vorbis (.ogg).
//
// Returns:
//   - A Sound owned by the caller. Give it back with ReleaseSound.
//   - An error if there is no audio context or the file cannot be read or decoded.
func (rm *ResourceManager) LoadSound(name string) (Sound, error) {
	stream, err := rm.openAudio(name)
	if err != nil {
		return nil, err
	}

	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", name, err)
	}
	return &soundEffect{name: name, player: player, owner: rm}, nil
}

// ReleaseSound closes a sound returned by LoadSound.
func (rm *ResourceManager) ReleaseSound(s Sound) {
	if s == nil {
		return
	}
	if err := s.Close(); err != nil {
		rm.logger.Warn("failed to close sound", "err", err)
	}
}

// LoadMusic returns a new player that loops the named file forever.
// The player is not started; the caller owns it and must Close it.
func (rm *ResourceManager) LoadMusic(name string) (*audio.Player, error) {
	stream, err := rm.openAudio(name)
	if err != nil {
		return nil, err
	}

	loop := audio.NewInfiniteLoop(stream, stream.Length())
	player, err := rm.audioContext.NewPlayer(loop)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", name, err)
	}
	return player, nil
}

type audioStream interface {
	io.ReadSeeker
	Length() int64
}

// openAudio decodes the named file from the cached bytes into a fresh stream.
func (rm *ResourceManager) openAudio(name string) (audioStream, error) {
	if rm.audioContext == nil {
		return nil, fmt.Errorf("cannot load audio %s: no audio context", name)
	}

	ext := strings.ToLower(path.Ext(name))
	if ext != ".mp3" && ext != ".ogg" {
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg)", ext)
	}

	data, ok := rm.audioCache[name]
	if !ok {
		var err error
		data, err = fs.ReadFile(rm.fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read audio file %s: %w", name, err)
		}
		rm.audioCache[name] = data
	}

	reader := bytes.NewReader(data)
	switch ext {
	case ".mp3":
		stream, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", name, err)
		}
		return stream, nil
	default:
		stream, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", name, err)
		}
		return stream, nil
	}
}

// soundEffect plays a one-shot player, scaled by the owner's sound settings.
type soundEffect struct {
	name   string
	player *audio.Player
	owner  *ResourceManager
	closed bool
}

func (s *soundEffect) Play(volume float64) {
	if s.closed || !s.owner.soundEnabled {
		return
	}
	s.player.SetVolume(clampVolume(volume * s.owner.soundVolume))
	if err := s.player.Rewind(); err != nil {
		s.owner.logger.Warn("failed to rewind sound", "name", s.name, "err", err)
	}
	s.player.Play()
}

func (s *soundEffect) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.player.Close()
}
