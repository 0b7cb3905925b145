package game

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Global audio context shared by all tests
// Ebitengine only allows one audio context to be created
var testAudioContext *audio.Context

// TestMain sets up the shared audio context before running tests
func TestMain(m *testing.M) {
	testAudioContext = audio.NewContext(48000)
	os.Exit(m.Run())
}

// encodeTestImage returns a PNG of the given size filled with blue.
func encodeTestImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	blue := color.RGBA{R: 0, G: 0, B: 255, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, blue)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func testAssets(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"bg.png":       {Data: encodeTestImage(t, 27, 51)},
		"broken.png":   {Data: []byte("not a png")},
		"broken.ogg":   {Data: []byte("not vorbis")},
		"readme.txt":   {Data: []byte("hello")},
		"theme.wav":    {Data: []byte("RIFF")},
		"nested/a.png": {Data: encodeTestImage(t, 4, 4)},
	}
}

// TestNewResourceManager tests the creation of a new ResourceManager instance.
func TestNewResourceManager(t *testing.T) {
	rm := NewResourceManager(testAudioContext, testAssets(t))

	if rm == nil {
		t.Fatal("NewResourceManager returned nil")
	}
	if rm.pixelCache == nil || rm.audioCache == nil {
		t.Error("caches not initialised")
	}
	if rm.audioContext != testAudioContext {
		t.Error("audioContext not set correctly")
	}
	if rm.soundVolume != 1.0 || !rm.soundEnabled {
		t.Errorf("sound defaults: volume=%v enabled=%v", rm.soundVolume, rm.soundEnabled)
	}
}

// TestLoadTexture_Success tests successful image loading.
func TestLoadTexture_Success(t *testing.T) {
	rm := NewResourceManager(testAudioContext, testAssets(t))

	img, err := rm.LoadTexture("bg.png")
	if err != nil {
		t.Fatalf("LoadTexture failed: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 27 || bounds.Dy() != 51 {
		t.Errorf("Image dimensions incorrect: got %dx%d, want 27x51", bounds.Dx(), bounds.Dy())
	}

	img, err = rm.LoadTexture("nested/a.png")
	if err != nil {
		t.Fatalf("LoadTexture nested failed: %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("nested image width: got %d, want 4", img.Bounds().Dx())
	}
}

// TestLoadTexture_FreshHandles verifies every load returns a handle of its own.
func TestLoadTexture_FreshHandles(t *testing.T) {
	rm := NewResourceManager(testAudioContext, testAssets(t))

	first, err := rm.LoadTexture("bg.png")
	if err != nil {
		t.Fatalf("LoadTexture failed: %v", err)
	}
	second, err := rm.LoadTexture("bg.png")
	if err != nil {
		t.Fatalf("LoadTexture failed: %v", err)
	}

	if first == second {
		t.Fatal("two loads of the same name returned the same handle")
	}
	if rm.LiveTextures() != 2 {
		t.Errorf("LiveTextures: got %d, want 2", rm.LiveTextures())
	}

	rm.ReleaseTexture(first)
	rm.ReleaseTexture(first)

	if rm.LiveTextures() != 1 {
		t.Errorf("LiveTextures after release: got %d, want 1", rm.LiveTextures())
	}
	if second.Bounds().Dx() != 27 {
		t.Error("releasing one handle affected the other")
	}
}

// TestLoadTexture_CachesPixels verifies the file is decoded once.
func TestLoadTexture_CachesPixels(t *testing.T) {
	assets := testAssets(t)
	rm := NewResourceManager(testAudioContext, assets)

	if _, err := rm.LoadTexture("bg.png"); err != nil {
		t.Fatalf("LoadTexture failed: %v", err)
	}
	delete(assets, "bg.png")

	if _, err := rm.LoadTexture("bg.png"); err != nil {
		t.Errorf("second load should be served from the pixel cache: %v", err)
	}
}

// TestLoadTexture_Errors tests missing and corrupted files.
func TestLoadTexture_Errors(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		errContains string
	}{
		{name: "missing", file: "missing.png", errContains: "failed to open"},
		{name: "corrupted", file: "broken.png", errContains: "failed to decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rm := NewResourceManager(testAudioContext, testAssets(t))
			_, err := rm.LoadTexture(tt.file)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
			}
			if rm.LiveTextures() != 0 {
				t.Error("failed load must not register a texture")
			}
		})
	}
}

// TestLoadSound_Errors tests the failure paths of sound and music loading.
func TestLoadSound_Errors(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		errContains string
	}{
		{name: "missing", file: "missing.ogg", errContains: "failed to read"},
		{name: "unsupported format", file: "theme.wav", errContains: "unsupported audio format"},
		{name: "no extension", file: "readme.txt", errContains: "unsupported audio format"},
		{name: "corrupted", file: "broken.ogg", errContains: "failed to decode OGG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rm := NewResourceManager(testAudioContext, testAssets(t))

			if _, err := rm.LoadSound(tt.file); err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("LoadSound(%q): got %v, want error containing %q", tt.file, err, tt.errContains)
			}
			if _, err := rm.LoadMusic(tt.file); err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("LoadMusic(%q): got %v, want error containing %q", tt.file, err, tt.errContains)
			}
		})
	}
}

// TestLoadSound_NoAudioContext verifies audio loading fails cleanly without a context.
func TestLoadSound_NoAudioContext(t *testing.T) {
	rm := NewResourceManager(nil, testAssets(t))

	if _, err := rm.LoadSound("broken.ogg"); err == nil {
		t.Error("expected error without audio context")
	}
	if _, err := rm.LoadMusic("broken.ogg"); err == nil {
		t.Error("expected error without audio context")
	}
}

// TestSoundSettings verifies the sound volume multiplier is clamped.
func TestSoundSettings(t *testing.T) {
	rm := NewResourceManager(testAudioContext, testAssets(t))

	rm.SetSoundVolume(1.5)
	if rm.soundVolume != 1.0 {
		t.Errorf("soundVolume: got %v, want 1.0", rm.soundVolume)
	}
	rm.SetSoundVolume(-1)
	if rm.soundVolume != 0 {
		t.Errorf("soundVolume: got %v, want 0", rm.soundVolume)
	}
	rm.SetSoundEnabled(false)
	if rm.soundEnabled {
		t.Error("SetSoundEnabled(false) did not mute")
	}

	rm.ReleaseSound(nil)
}
