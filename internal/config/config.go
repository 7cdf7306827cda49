package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config carries everything the CLI passes into the core. Flags win over
// BOOKDEPTH_* environment variables, which win over defaults.
type Config struct {
	FEN         string
	NumGames    int
	Speed       string
	Rating      string
	CachePath   string
	PresetsPath string
	Verbose     bool
}

func Load(args []string) (Config, error) {
	fs := pflag.NewFlagSet("bookdepth", pflag.ContinueOnError)
	fs.String("fen", "", "starting position FEN, or the name of a preset")
	fs.Int("num-games", 40, "number of games to simulate")
	fs.String("speed", "rapid", "rated-player database speed filter")
	fs.String("rating", "2000", "rated-player database rating bracket")
	fs.String("cache-path", "", "SQLite explorer cache file (empty disables caching)")
	fs.String("presets-path", "", "JSON file of extra named FEN presets")
	fs.Bool("verbose", false, "log every game and the final board")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}
	v.SetEnvPrefix("BOOKDEPTH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg := Config{
		FEN:         v.GetString("fen"),
		NumGames:    v.GetInt("num-games"),
		Speed:       v.GetString("speed"),
		Rating:      v.GetString("rating"),
		CachePath:   v.GetString("cache-path"),
		PresetsPath: v.GetString("presets-path"),
		Verbose:     v.GetBool("verbose"),
	}

	if cfg.NumGames <= 0 {
		return Config{}, fmt.Errorf("num-games must be positive, got %d", cfg.NumGames)
	}
	if cfg.Speed == "" || cfg.Rating == "" {
		return Config{}, fmt.Errorf("speed and rating must not be empty")
	}
	return cfg, nil
}
