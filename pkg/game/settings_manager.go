package game

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName is the gdata application name; settings live in the per-user data dir under it.
const AppName = "flappy"

// GameSettings holds the player's audio preferences.
type GameSettings struct {
	MusicVolume  float64 `yaml:"musicVolume"`  // 0.0 ~ 1.0
	SoundVolume  float64 `yaml:"soundVolume"`  // multiplier for effect volumes, 0.0 ~ 1.0
	MusicEnabled bool    `yaml:"musicEnabled"`
	SoundEnabled bool    `yaml:"soundEnabled"`
}

// DefaultSettings returns the settings used before anything is saved.
func DefaultSettings() *GameSettings {
	return &GameSettings{
		MusicVolume:  0.1,
		SoundVolume:  1.0,
		MusicEnabled: true,
		SoundEnabled: true,
	}
}

// SettingsManager loads, edits and saves GameSettings.
type SettingsManager struct {
	gdataManager *gdata.Manager // may be nil (degraded mode, in-memory only)
	defaults     GameSettings
	settings     *GameSettings
	logger       *log.Logger
}

const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// OpenSettingsStorage opens the gdata storage of the game.
// A failure is logged and yields nil, which puts SettingsManager in degraded mode.
func OpenSettingsStorage(appName string) *gdata.Manager {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Warn("settings storage unavailable, settings will not persist", "err", err)
		return nil
	}
	return m
}

// NewSettingsManager creates a settings manager and loads the saved settings.
//
// Parameters:
//   - gdataManager: persistent storage, may be nil (degraded mode, in-memory settings only)
//   - defaults: values used when nothing is saved; nil means DefaultSettings()
//
// Returns:
//   - *SettingsManager: the manager, never nil
//   - error: always nil; a failed load is logged and falls back to defaults
func NewSettingsManager(gdataManager *gdata.Manager, defaults *GameSettings) (*SettingsManager, error) {
	if defaults == nil {
		defaults = DefaultSettings()
	}
	sm := &SettingsManager{
		gdataManager: gdataManager,
		defaults:     *defaults,
		logger:       log.WithPrefix("SettingsManager"),
	}
	sm.settings = sm.defaultCopy()

	if err := sm.Load(); err != nil {
		sm.logger.Warn("failed to load settings, using defaults", "err", err)
	}

	return sm, nil
}

func (sm *SettingsManager) defaultCopy() *GameSettings {
	s := sm.defaults
	return &s
}

// Load reads the settings from gdata.
//
// Missing storage or a missing settings file yields the defaults without an error.
//
// Returns:
//   - error: if the stored data cannot be read or decoded
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = sm.defaultCopy()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = sm.defaultCopy()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = sm.defaultCopy()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := sm.defaultCopy()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = sm.defaultCopy()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.MusicVolume = clampVolume(loaded.MusicVolume)
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)

	sm.settings = loaded
	sm.logger.Debug("settings loaded")
	return nil
}

// Save writes the settings to gdata. In degraded mode it does nothing and returns nil.
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	sm.logger.Debug("settings saved")
	return nil
}

// Persistent reports whether Save writes to disk.
func (sm *SettingsManager) Persistent() bool {
	return sm.gdataManager != nil
}

// GetSettings returns the live settings. Changes made through it are visible to the manager.
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetMusicVolume sets the music volume, clamped to 0.0 ~ 1.0. Call Save to persist.
func (sm *SettingsManager) SetMusicVolume(volume float64) {
	sm.settings.MusicVolume = clampVolume(volume)
}

// SetSoundVolume sets the effect volume multiplier, clamped to 0.0 ~ 1.0. Call Save to persist.
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

func (sm *SettingsManager) SetMusicEnabled(enabled bool) {
	sm.settings.MusicEnabled = enabled
}

func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// Reset restores the defaults in memory. Call Save to persist.
func (sm *SettingsManager) Reset() {
	sm.settings = sm.defaultCopy()
}

// clampVolume limits volume to 0.0 ~ 1.0.
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
