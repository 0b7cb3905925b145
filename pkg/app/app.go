// Package app wires the game together and implements ebiten.Game.
package app

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/decker502/flappy/internal/storage"
	"github.com/decker502/flappy/pkg/config"
	"github.com/decker502/flappy/pkg/game"
	"github.com/decker502/flappy/pkg/states"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config holds the start-up options chosen on the command line.
type Config struct {
	// Game is the loaded tuning. Required.
	Game *config.GameConfig
	// AssetsDir overrides Game.Assets.Dir when not empty.
	AssetsDir string
	// Seed seeds the tube layout; 0 picks a time based seed.
	Seed int64
	// DBPath is the score database; empty disables score history.
	DBPath string
}

// App owns every long-lived manager of the game.
type App struct {
	cfg             *config.GameConfig
	stateManager    *game.StateManager
	resourceManager *game.ResourceManager
	audioManager    *game.AudioManager
	settingsManager *game.SettingsManager
	store           *storage.Store
	clock           *frameClock
	logger          *log.Logger
}

// NewApp loads the menu and starts the music.
//
// Missing menu textures are fatal. Missing music, settings storage or score database only
// degrade the game and are logged.
func NewApp(cfg Config) (*App, error) {
	if cfg.Game == nil {
		return nil, fmt.Errorf("app: no game config")
	}
	gameCfg := cfg.Game
	logger := log.WithPrefix("App")

	assetsDir := gameCfg.Assets.Dir
	if cfg.AssetsDir != "" {
		assetsDir = cfg.AssetsDir
	}
	if abs, err := filepath.Abs(assetsDir); err == nil {
		assetsDir = abs
	}
	logger.Debug("assets", "dir", assetsDir)

	audioContext := audio.NewContext(48000)
	resourceManager := game.NewResourceManager(audioContext, os.DirFS(assetsDir))

	defaults := game.DefaultSettings()
	defaults.MusicVolume = gameCfg.Audio.MusicVolume
	settingsManager, err := game.NewSettingsManager(game.OpenSettingsStorage(game.AppName), defaults)
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}

	a := &App{
		cfg:             gameCfg,
		stateManager:    game.NewStateManager(),
		resourceManager: resourceManager,
		audioManager:    game.NewAudioManager(resourceManager, settingsManager),
		settingsManager: settingsManager,
		clock:           newFrameClock(time.Now, gameCfg.Loop.MaxDeltaTime),
		logger:          logger,
	}

	env := &states.Env{
		Manager: a.stateManager,
		Loader:  resourceManager,
		Input:   game.NewEbitenInput(),
		Rand:    newRand(cfg.Seed),
		Config:  gameCfg,
	}

	if cfg.DBPath != "" {
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("score history disabled", "err", err)
		} else {
			a.store = store
			env.Scores = store
		}
	}

	menu, err := states.NewMenuState(env)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.stateManager.Push(menu)

	if !a.audioManager.PlayMusic(gameCfg.Assets.Music) {
		logger.Warn("background music not playing", "name", gameCfg.Assets.Music)
	}

	return a, nil
}

// newRand returns the tube layout source. The same non-zero seed always yields the same run.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

// Update is called once per tick. An error from the active state ends the game loop.
func (a *App) Update() error {
	// F11 toggles fullscreen
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	return a.stateManager.Update(a.clock.Tick())
}

func (a *App) Draw(screen *ebiten.Image) {
	a.stateManager.Render(screen)
}

// DrawFinalScreen letterboxes the scaled game with black bars.
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterNearest // keep pixel art sharp
	screen.DrawImage(offscreen, op)
}

// Layout returns the world viewport; ebiten scales it to the window.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(a.cfg.ViewportWidth()), int(a.cfg.ViewportHeight())
}

// Close disposes every state, stops the music and closes the score database.
func (a *App) Close() {
	a.stateManager.DisposeAll()
	a.audioManager.StopMusic()
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("failed to close score database", "err", err)
		}
		a.store = nil
	}
}

// frameClock measures wall-clock seconds between ticks.
type frameClock struct {
	now      func() time.Time
	last     time.Time
	maxDelta float64 // 0 means unclamped
}

func newFrameClock(now func() time.Time, maxDelta float64) *frameClock {
	return &frameClock{now: now, maxDelta: maxDelta}
}

// Tick returns the seconds since the previous Tick. The first Tick returns one nominal tick.
func (c *frameClock) Tick() float64 {
	now := c.now()
	var dt float64
	if c.last.IsZero() {
		dt = 1 / float64(ebiten.DefaultTPS)
	} else {
		dt = now.Sub(c.last).Seconds()
	}
	c.last = now

	if dt < 0 {
		dt = 0
	}
	if c.maxDelta > 0 && dt > c.maxDelta {
		dt = c.maxDelta
	}
	return dt
}
