package util

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/DaanHessen/moonlit/internal/story"
)

// Config holds runtime settings. Environment variables provide defaults
// that command-line flags override.
type Config struct {
	Variant        string        `env:"MOONLIT_VARIANT" envDefault:"bloom"`
	Audio          bool          `env:"MOONLIT_AUDIO" envDefault:"true"`
	TrackDir       string        `env:"MOONLIT_TRACK_DIR" envDefault:"tracks"`
	Volume         int           `env:"MOONLIT_VOLUME" envDefault:"-1"` // -1 keeps each narrative's own level
	Theme          string        `env:"MOONLIT_THEME"`
	SwipeThreshold float64       `env:"MOONLIT_SWIPE_THRESHOLD" envDefault:"50"`
	SecretCode     string        `env:"MOONLIT_SECRET_CODE" envDefault:"14082012"`
	TickOverride   time.Duration `env:"MOONLIT_TICK"`
	LogFile        string        `env:"MOONLIT_LOG_FILE"`
	Seed           string        `env:"MOONLIT_SEED"`
	AltScreen      bool          `env:"MOONLIT_ALT_SCREEN" envDefault:"true"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadConfig reads the environment into a Config.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// BindFlags registers flags on fs whose defaults are the current values.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Variant, "variant", c.Variant, "Narrative to play: bloom|phases")
	fs.BoolVar(&c.Audio, "audio", c.Audio, "Play chapter tracks and sound cues")
	fs.StringVar(&c.TrackDir, "tracks", c.TrackDir, "Directory holding <track-id>.wav files")
	fs.IntVar(&c.Volume, "volume", c.Volume, "Track volume 0-100, -1 for the narrative's default")
	fs.StringVar(&c.Theme, "theme", c.Theme, "Force a palette instead of each chapter's own")
	fs.Float64Var(&c.SwipeThreshold, "swipe", c.SwipeThreshold, "Horizontal drag distance that counts as a swipe")
	fs.StringVar(&c.SecretCode, "code", c.SecretCode, "Secret code accepted on the final chapter")
	fs.DurationVar(&c.TickOverride, "tick", c.TickOverride, "Reveal cadence override (0 keeps the narrative's own)")
	fs.StringVar(&c.LogFile, "log", c.LogFile, "Write logs to this file")
	fs.StringVar(&c.Seed, "seed", c.Seed, "Seed for ambient particles (random if omitted)")
	fs.BoolVar(&c.AltScreen, "fullscreen", c.AltScreen, "Allow full screen on immersive chapters")
}

// Validate rejects values the session cannot play with.
func (c Config) Validate() error {
	if !story.Variant(c.Variant).Valid() {
		return fmt.Errorf("unknown variant %q; use bloom|phases", c.Variant)
	}
	if c.Volume < -1 || c.Volume > 100 {
		return fmt.Errorf("volume %d out of range 0-100", c.Volume)
	}
	if c.SwipeThreshold <= 0 {
		return fmt.Errorf("swipe threshold must be positive")
	}
	if c.TickOverride < 0 {
		return fmt.Errorf("tick must not be negative")
	}
	if c.SecretCode == "" || len([]rune(c.SecretCode)) > 8 {
		return fmt.Errorf("secret code must be 1-8 characters")
	}
	return nil
}
