package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings are the runtime knobs read from the environment (optionally via a
// .env file). Tuning constants stay in the const blocks above.
type Settings struct {
	RelayAddr    string // listen address of the relay server
	RelayURL     string // websocket URL the clients dial
	Seed         int64  // 0 means "pick from the clock"
	AssetDir     string
	AudioEnabled bool
}

// DefaultSettings returns settings for a local setup.
func DefaultSettings() Settings {
	return Settings{
		RelayAddr:    ":3000",
		RelayURL:     "ws://localhost:3000/ws",
		Seed:         0,
		AssetDir:     "assets",
		AudioEnabled: true,
	}
}

// LoadSettings loads the given env files (".env" when none are given) and
// overlays ARENA_* variables on top of the defaults. A missing .env file is
// not an error.
func LoadSettings(files ...string) (Settings, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, fmt.Errorf("failed to load env file: %w", err)
	}

	s := DefaultSettings()
	if v := os.Getenv("ARENA_RELAY_ADDR"); v != "" {
		s.RelayAddr = v
	}
	if v := os.Getenv("ARENA_RELAY_URL"); v != "" {
		s.RelayURL = v
	}
	if v := os.Getenv("ARENA_ASSET_DIR"); v != "" {
		s.AssetDir = v
	}
	if v := os.Getenv("ARENA_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Settings{}, fmt.Errorf("invalid ARENA_SEED %q: %w", v, err)
		}
		s.Seed = seed
	}
	if v := os.Getenv("ARENA_AUDIO"); v != "" {
		on, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Settings{}, fmt.Errorf("invalid ARENA_AUDIO %q: %w", v, err)
		}
		s.AudioEnabled = on
	}

	log.Printf("Settings: relay=%s url=%s seed=%d assets=%s audio=%v", s.RelayAddr, s.RelayURL, s.Seed, s.AssetDir, s.AudioEnabled)
	return s, nil
}
