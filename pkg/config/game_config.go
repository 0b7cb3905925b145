package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every error returned from GameConfig.Validate.
var ErrInvalidConfig = errors.New("invalid game config")

// GameConfig holds every tunable of the game: window, physics, obstacle layout and asset names.
//
// Configuration file location (first match wins):
//
//	--config <path>
//	~/.flappy/flappy.yaml
//	./configs/flappy.yaml
//
// Fields missing from the file keep the values of DefaultGameConfig.
type GameConfig struct {
	Window WindowConfig `yaml:"window"`
	Bird   BirdConfig   `yaml:"bird"`
	Tube   TubeConfig   `yaml:"tube"`
	World  WorldConfig  `yaml:"world"`
	Audio  AudioConfig  `yaml:"audio"`
	Assets AssetsConfig `yaml:"assets"`
	Loop   LoopConfig   `yaml:"loop"`
}

// WindowConfig describes the host window. The world viewport is half the window size.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// BirdConfig holds the player sprite physics.
type BirdConfig struct {
	StartX       float64 `yaml:"startX"`
	StartY       float64 `yaml:"startY"`
	Gravity      float64 `yaml:"gravity"`      // added to vertical velocity every update while airborne
	Movement     float64 `yaml:"movement"`     // horizontal speed, units per second
	JumpVelocity float64 `yaml:"jumpVelocity"` // vertical velocity set by a flap
	FlapVolume   float64 `yaml:"flapVolume"`
	FrameCount   int     `yaml:"frameCount"` // sub-frames in the bird strip
	CycleTime    float64 `yaml:"cycleTime"`  // seconds for a full animation cycle
}

// TubeConfig holds the obstacle layout.
type TubeConfig struct {
	Width         float64 `yaml:"width"`
	Fluctuation   int     `yaml:"fluctuation"`   // random range of the gap position
	Gap           float64 `yaml:"gap"`           // vertical opening between the two tubes
	LowestOpening float64 `yaml:"lowestOpening"` // lowest possible top of the bottom tube
	Spacing       float64 `yaml:"spacing"`       // horizontal space between two tubes
	Count         int     `yaml:"count"`
}

// WorldConfig holds ground and camera placement.
type WorldConfig struct {
	GroundYOffset float64 `yaml:"groundYOffset"`
	CameraLead    float64 `yaml:"cameraLead"` // camera centre distance in front of the bird
}

// AudioConfig holds default volumes used before any user setting exists.
type AudioConfig struct {
	MusicVolume float64 `yaml:"musicVolume"`
}

// AssetsConfig maps every asset role to a file name inside Dir.
type AssetsConfig struct {
	Dir        string `yaml:"dir"`
	Background string `yaml:"background"`
	Ground     string `yaml:"ground"`
	Bird       string `yaml:"bird"`
	TopTube    string `yaml:"topTube"`
	BottomTube string `yaml:"bottomTube"`
	PlayButton string `yaml:"playButton"`
	Music      string `yaml:"music"`
	Wing       string `yaml:"wing"`
}

// Textures returns the image file names in load order.
func (a AssetsConfig) Textures() []string {
	return []string{a.Background, a.Ground, a.Bird, a.TopTube, a.BottomTube, a.PlayButton}
}

// Sounds returns the audio file names.
func (a AssetsConfig) Sounds() []string {
	return []string{a.Music, a.Wing}
}

// LoopConfig controls the frame clock.
type LoopConfig struct {
	// MaxDeltaTime caps the wall-clock delta handed to the states. 0 disables the cap.
	MaxDeltaTime float64 `yaml:"maxDeltaTime"`
}

// DefaultGameConfig returns the stock tuning of the game.
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Window: WindowConfig{
			Width:  480,
			Height: 800,
			Title:  "Flappy Bird",
		},
		Bird: BirdConfig{
			StartX:       50,
			StartY:       300,
			Gravity:      -15,
			Movement:     100,
			JumpVelocity: 250,
			FlapVolume:   0.5,
			FrameCount:   3,
			CycleTime:    0.5,
		},
		Tube: TubeConfig{
			Width:         52,
			Fluctuation:   130,
			Gap:           100,
			LowestOpening: 120,
			Spacing:       125,
			Count:         4,
		},
		World: WorldConfig{
			GroundYOffset: -50,
			CameraLead:    80,
		},
		Audio: AudioConfig{
			MusicVolume: 0.1,
		},
		Assets: AssetsConfig{
			Dir:        "assets",
			Background: "bg.png",
			Ground:     "ground.png",
			Bird:       "birdanimation.png",
			TopTube:    "toptube.png",
			BottomTube: "bottomtube.png",
			PlayButton: "playbtn.png",
			Music:      "music.mp3",
			Wing:       "sfx_wing.ogg",
		},
	}
}

// ViewportWidth returns the width of the world visible through a state camera.
func (c *GameConfig) ViewportWidth() float64 {
	return float64(c.Window.Width) / 2
}

// ViewportHeight returns the height of the world visible through a state camera.
func (c *GameConfig) ViewportHeight() float64 {
	return float64(c.Window.Height) / 2
}

// CycleLength is the distance a tube travels when it is recycled.
func (c *GameConfig) CycleLength() float64 {
	return (c.Tube.Width + c.Tube.Spacing) * float64(c.Tube.Count)
}

// Validate checks the values the simulation divides by or allocates from.
func (c *GameConfig) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d must be positive", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Bird.FrameCount <= 0:
		return fmt.Errorf("%w: bird frameCount must be positive, got %d", ErrInvalidConfig, c.Bird.FrameCount)
	case c.Bird.CycleTime <= 0:
		return fmt.Errorf("%w: bird cycleTime must be positive, got %.2f", ErrInvalidConfig, c.Bird.CycleTime)
	case c.Tube.Fluctuation <= 0:
		return fmt.Errorf("%w: tube fluctuation must be positive, got %d", ErrInvalidConfig, c.Tube.Fluctuation)
	case c.Tube.Count < 0:
		return fmt.Errorf("%w: tube count must not be negative, got %d", ErrInvalidConfig, c.Tube.Count)
	case c.Tube.Width <= 0:
		return fmt.Errorf("%w: tube width must be positive, got %.1f", ErrInvalidConfig, c.Tube.Width)
	case c.Loop.MaxDeltaTime < 0:
		return fmt.Errorf("%w: loop maxDeltaTime must not be negative, got %.3f", ErrInvalidConfig, c.Loop.MaxDeltaTime)
	}
	return nil
}

// LoadGameConfig loads the game configuration.
//
// Parameters:
//   - customPath: explicit file path, may be empty. A non-empty path that cannot be read is an error.
//
// Returns:
//   - *GameConfig: defaults overlaid with the first config file found
//   - error: read, parse or validation failure
func LoadGameConfig(customPath string) (*GameConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		return ParseGameConfig(data)
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg, err := ParseGameConfig(data)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		return cfg, nil
	}

	return DefaultGameConfig(), nil
}

// ParseGameConfig overlays yaml data on the defaults and validates the result.
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".flappy", "flappy.yaml"))
	}
	return append(paths, filepath.Join("configs", "flappy.yaml"))
}
