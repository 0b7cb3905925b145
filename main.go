// flappy is a side-scrolling arcade game: tap to keep the bird in the air and fly it through
// the gaps between the tubes.
//
// Usage:
//
//	flappy                  - Play the game
//	flappy scores           - Show the best finished runs
//	flappy settings         - Show or change the audio settings
//	flappy check            - Verify that every asset file decodes
//
// Global flags:
//
//	--config <path> - Game config YAML (default: ~/.flappy/flappy.yaml, then ./configs/flappy.yaml)
//	--assets <dir>  - Asset directory (overrides assets.dir from the config)
//	--seed <value>  - RNG seed for a reproducible tube layout
//	--db <path>     - Score database (default: ~/.flappy/scores.db)
//	--verbose       - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/decker502/flappy/internal/storage"
	"github.com/decker502/flappy/pkg/app"
	"github.com/decker502/flappy/pkg/config"
)

var (
	flagConfig  string
	flagAssets  string
	flagSeed    int64
	flagDBPath  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Bird - tap to fly through the tubes",
	Long: `Flappy Bird opens a game window. Click, tap or press Space to flap.
Touching a tube or the ground starts a new game. F11 toggles fullscreen.

Examples:
  flappy
  flappy --seed 42
  flappy --assets ./assets --config ./configs/flappy.yaml
  flappy scores --limit 5`,
	Args:             cobra.NoArgs,
	PersistentPreRun: setupLogging,
	SilenceUsage:     true,
	RunE:             runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "Asset directory (overrides assets.dir)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database (empty disables score history)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(checkCmd)
}

// setupLogging installs the default logger before any component derives its prefixed logger.
func setupLogging(cmd *cobra.Command, args []string) {
	level := log.WarnLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	log.SetDefault(log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
	}))
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameCfg, err := config.LoadGameConfig(flagConfig)
	if err != nil {
		return err
	}

	game, err := app.NewApp(app.Config{
		Game:      gameCfg,
		AssetsDir: flagAssets,
		Seed:      flagSeed,
		DBPath:    flagDBPath,
	})
	if err != nil {
		log.Fatal("failed to start game", "err", err)
	}
	defer game.Close()

	ebiten.SetWindowSize(gameCfg.Window.Width, gameCfg.Window.Height)
	ebiten.SetWindowTitle(gameCfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Error("game stopped", "err", err)
		return err
	}
	return nil
}
