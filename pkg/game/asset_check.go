package game

import (
	"bytes"
	"fmt"
	"image"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
)

// AssetReport describes one checked asset file.
type AssetReport struct {
	Name   string
	Detail string // "WxH" for images, duration for audio
	Err    error
}

// CheckAssets decodes every named file without touching the GPU or the audio device.
// Image names must be PNG files; sound names must be .mp3 or .ogg files.
func CheckAssets(fsys fs.FS, images, sounds []string) []AssetReport {
	reports := make([]AssetReport, 0, len(images)+len(sounds))
	for _, name := range images {
		reports = append(reports, checkImage(fsys, name))
	}
	for _, name := range sounds {
		reports = append(reports, checkSound(fsys, name))
	}
	return reports
}

func checkImage(fsys fs.FS, name string) AssetReport {
	r := AssetReport{Name: name}
	file, err := fsys.Open(name)
	if err != nil {
		r.Err = fmt.Errorf("failed to open image file %s: %w", name, err)
		return r
	}
	defer file.Close()

	cfg, format, err := image.DecodeConfig(file)
	if err != nil {
		r.Err = fmt.Errorf("failed to decode image %s: %w", name, err)
		return r
	}
	r.Detail = fmt.Sprintf("%s %dx%d", format, cfg.Width, cfg.Height)
	return r
}

func checkSound(fsys fs.FS, name string) AssetReport {
	r := AssetReport{Name: name}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		r.Err = fmt.Errorf("failed to read audio file %s: %w", name, err)
		return r
	}

	var length int64
	var sampleRate int
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".mp3":
		stream, err := mp3.DecodeWithoutResampling(bytes.NewReader(data))
		if err != nil {
			r.Err = fmt.Errorf("failed to decode MP3 audio %s: %w", name, err)
			return r
		}
		length, sampleRate = stream.Length(), stream.SampleRate()
	case ".ogg":
		stream, err := vorbis.DecodeWithoutResampling(bytes.NewReader(data))
		if err != nil {
			r.Err = fmt.Errorf("failed to decode OGG audio %s: %w", name, err)
			return r
		}
		length, sampleRate = stream.Length(), stream.SampleRate()
	default:
		r.Err = fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg)", ext)
		return r
	}

	// Decoded streams are 16-bit stereo.
	frames := length / 4
	if sampleRate > 0 {
		d := time.Duration(frames) * time.Second / time.Duration(sampleRate)
		r.Detail = fmt.Sprintf("%d Hz %s", sampleRate, d.Round(time.Millisecond))
	}
	return r
}
