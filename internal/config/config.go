// Package config loads runtime settings from the environment and optional
// .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config captures runtime configuration. Command-line flags take precedence
// over these values.
type Config struct {
	DBPath            string        `env:"NUTRIPET_DB_PATH"`
	FoodProvider      string        `env:"NUTRIPET_FOOD_PROVIDER" envDefault:"nutritionix"`
	LookupTimeout     time.Duration `env:"NUTRIPET_LOOKUP_TIMEOUT" envDefault:"15s"`
	NutritionixAppID  string        `env:"NUTRITIONIX_APP_ID"`
	NutritionixAppKey string        `env:"NUTRITIONIX_APP_KEY"`
	USDAAPIKey        string        `env:"NUTRIPET_USDA_API_KEY"`
	HTTPAddr          string        `env:"NUTRIPET_HTTP_ADDR" envDefault:"127.0.0.1:8787"`
	LogLevel          string        `env:"NUTRIPET_LOG_LEVEL" envDefault:"info"`
	LogFormat         string        `env:"NUTRIPET_LOG_FORMAT" envDefault:"text"`
}

// DefaultEnvFiles are read, if present, before the environment is parsed.
var DefaultEnvFiles = []string{".env"}

// Load reads any existing env files, then parses the environment. Variables
// already set in the process win over values from files.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = DefaultEnvFiles
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("stat env file %s: %w", f, err)
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("load env file %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.LookupTimeout <= 0 {
		return Config{}, fmt.Errorf("NUTRIPET_LOOKUP_TIMEOUT must be > 0")
	}
	return cfg, nil
}
