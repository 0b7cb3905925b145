package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decker502/flappy/pkg/config"
	"github.com/decker502/flappy/pkg/game"
)

var (
	flagMusicVolume float64
	flagSoundVolume float64
	flagMusic       bool
	flagSound       bool
	flagReset       bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the audio settings",
	Long: `Print the saved audio settings, or change them when flags are given.
Volumes are clamped to 0.0 - 1.0.

Examples:
  flappy settings
  flappy settings --music-volume 0.3
  flappy settings --sound=false
  flappy settings --reset`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

func init() {
	settingsCmd.Flags().Float64Var(&flagMusicVolume, "music-volume", 0, "Background music volume")
	settingsCmd.Flags().Float64Var(&flagSoundVolume, "sound-volume", 0, "Sound effect volume")
	settingsCmd.Flags().BoolVar(&flagMusic, "music", true, "Enable background music")
	settingsCmd.Flags().BoolVar(&flagSound, "sound", true, "Enable sound effects")
	settingsCmd.Flags().BoolVar(&flagReset, "reset", false, "Restore the default settings")
}

func runSettings(cmd *cobra.Command, args []string) error {
	gameCfg, err := config.LoadGameConfig(flagConfig)
	if err != nil {
		return err
	}

	defaults := game.DefaultSettings()
	defaults.MusicVolume = gameCfg.Audio.MusicVolume
	sm, err := game.NewSettingsManager(game.OpenSettingsStorage(game.AppName), defaults)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	changed := false
	if flagReset {
		sm.Reset()
		changed = true
	}
	if flags.Changed("music-volume") {
		sm.SetMusicVolume(flagMusicVolume)
		changed = true
	}
	if flags.Changed("sound-volume") {
		sm.SetSoundVolume(flagSoundVolume)
		changed = true
	}
	if flags.Changed("music") {
		sm.SetMusicEnabled(flagMusic)
		changed = true
	}
	if flags.Changed("sound") {
		sm.SetSoundEnabled(flagSound)
		changed = true
	}

	if changed {
		if !sm.Persistent() {
			return fmt.Errorf("settings storage is unavailable, nothing was saved")
		}
		if err := sm.Save(); err != nil {
			return err
		}
	}

	s := sm.GetSettings()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "music:         %s (volume %.2f)\n", onOff(s.MusicEnabled), s.MusicVolume)
	fmt.Fprintf(out, "sound effects: %s (volume %.2f)\n", onOff(s.SoundEnabled), s.SoundVolume)
	return nil
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
