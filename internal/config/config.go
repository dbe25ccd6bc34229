package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds everything the server reads at startup. Values come
// from the YAML file with environment-variable overrides.
type Config struct {
	LogLevel string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string   `yaml:"http-port" env:"HTTP_PORT" env-default:"8080"`
	Postgres Postgres `yaml:"postgres"`
}

// Postgres configures the optional game archive. An empty DSN disables
// archiving entirely.
type Postgres struct {
	DSN string `yaml:"dsn" env:"POSTGRES_DSN" env-default:""`
}

// Load reads the config file at path, falling back to environment
// variables only when the file does not exist.
func Load(path string) (*Config, error) {
	conf := &Config{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := cleanenv.ReadEnv(conf); err != nil {
			return nil, fmt.Errorf("read config from env: %w", err)
		}
		return conf, nil
	}

	if err := cleanenv.ReadConfig(path, conf); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	return conf, nil
}
