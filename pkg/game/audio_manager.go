package game

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// musicPlayer is the part of *audio.Player the AudioManager drives.
type musicPlayer interface {
	Play()
	Pause()
	IsPlaying() bool
	SetVolume(volume float64)
	Rewind() error
	Close() error
}

// AudioManager plays the looping background music and applies the audio settings.
//
// Sound effects are owned by the states that load them; the manager only pushes the sound
// volume and mute settings down to the ResourceManager that creates them.
type AudioManager struct {
	resourceManager *ResourceManager
	settingsManager *SettingsManager // may be nil
	loadMusic       func(name string) (musicPlayer, error)

	currentMusic   musicPlayer
	currentMusicID string

	logger *log.Logger
}

// NewAudioManager creates an audio manager.
//
// Parameters:
//   - rm: loads the music tracks and creates sound effects
//   - sm: provides volumes and mute flags, may be nil (defaults apply)
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	am := &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		logger:          log.WithPrefix("AudioManager"),
	}
	am.loadMusic = func(name string) (musicPlayer, error) {
		player, err := rm.LoadMusic(name)
		if err != nil {
			return nil, err
		}
		return player, nil
	}
	am.ApplySettings()
	return am
}

var _ musicPlayer = (*audio.Player)(nil)

// PlayMusic starts looping the named track at the music volume.
// Only one track plays at a time; requesting the current track again is a no-op.
//
// Returns:
//   - bool: whether the track is playing
func (am *AudioManager) PlayMusic(musicID string) bool {
	settings := am.settings()
	if !settings.MusicEnabled {
		return false
	}

	if am.currentMusicID == musicID && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		return true
	}

	am.StopMusic()

	player, err := am.loadMusic(musicID)
	if err != nil {
		am.logger.Warn("failed to load music", "name", musicID, "err", err)
		return false
	}

	player.SetVolume(settings.MusicVolume)
	if err := player.Rewind(); err != nil {
		am.logger.Warn("failed to rewind music", "name", musicID, "err", err)
	}
	player.Play()

	am.currentMusic = player
	am.currentMusicID = musicID

	am.logger.Debug("playing music", "name", musicID, "volume", settings.MusicVolume)
	return true
}

// StopMusic stops and closes the current track.
func (am *AudioManager) StopMusic() {
	if am.currentMusic == nil {
		return
	}
	am.currentMusic.Pause()
	if err := am.currentMusic.Close(); err != nil {
		am.logger.Warn("failed to close music", "name", am.currentMusicID, "err", err)
	}
	am.currentMusic = nil
	am.currentMusicID = ""
}

// CurrentMusic returns the name of the playing track, or "".
func (am *AudioManager) CurrentMusic() string {
	return am.currentMusicID
}

// ApplySettings pushes the current settings to the playing track and to sound effects.
// Disabling music stops the track.
func (am *AudioManager) ApplySettings() {
	settings := am.settings()

	if am.resourceManager != nil {
		am.resourceManager.SetSoundVolume(settings.SoundVolume)
		am.resourceManager.SetSoundEnabled(settings.SoundEnabled)
	}

	if am.currentMusic == nil {
		return
	}
	if !settings.MusicEnabled {
		am.StopMusic()
		return
	}
	am.currentMusic.SetVolume(settings.MusicVolume)
}

func (am *AudioManager) settings() *GameSettings {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings()
	}
	return DefaultSettings()
}
