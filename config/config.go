package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string        `env:"ADDR" envDefault:":8080"`
	DatabasePath   string        `env:"DATABASE_PATH" envDefault:"./attendance.db"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	SweepInterval  time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`
	EventBuffer    int           `env:"EVENT_BUFFER" envDefault:"256"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the environment, with an optional .env
// file taking lowest precedence.
func Load() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
