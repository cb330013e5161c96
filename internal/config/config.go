// Package config holds process configuration for the tmstats commands.
//
// Precedence, low to high: built-in defaults, an optional YAML file
// (--config flag or TMSTATS_CONFIG), then TMSTATS_-prefixed environment
// variables. A .env file in the working directory is loaded best-effort
// before the environment is read.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config contains the settings shared by every command.
type Config struct {
	// ReplaysDir is the default input tree of replay JSON files.
	ReplaysDir string `koanf:"replays_dir"`

	// DBPath is the SQLite database file.
	DBPath string `koanf:"db_path"`

	// OutputDir is where CSV reports are written.
	OutputDir string `koanf:"output_dir"`

	// Preludes overrides the built-in prelude exclusion list for the card
	// analysis when non-empty.
	Preludes []string `koanf:"preludes"`

	// MinElo and MinOpponentElo are the default rating filters; 0 disables
	// them.
	MinElo         int `koanf:"min_elo"`
	MinOpponentElo int `koanf:"min_opponent_elo"`

	// AnthropicModel selects the model used by the analyze command.
	AnthropicModel string `koanf:"anthropic_model"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		ReplaysDir:     "replays",
		DBPath:         "tmstats.db",
		OutputDir:      ".",
		AnthropicModel: "claude-sonnet-4-5",
	}
}

// Load layers defaults, the optional YAML file and TMSTATS_ environment
// variables. path may be empty; TMSTATS_CONFIG is the fallback.
func Load(path string) (*Config, error) {
	// Best-effort: a missing .env is not an error.
	_ = godotenv.Load()

	k := koanf.New(".")

	if path == "" {
		path = os.Getenv("TMSTATS_CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// TMSTATS_DB_PATH -> db_path, underscores preserved to match the koanf
	// tags.
	envProvider := env.Provider("TMSTATS_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "tmstats_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *Defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
