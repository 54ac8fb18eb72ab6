package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"

	"github.com/charleshuang3/taskvault/internal/gormw"
	"github.com/charleshuang3/taskvault/internal/tokens"
)

var (
	logger = log.With().Str("component", "config").Logger()
)

type Config struct {
	Port    uint         `yaml:"port"`
	GinMode string       `yaml:"gin_mode"`
	DB      gormw.Config `yaml:"db"`

	// Token secrets and lifetimes come from the environment, never the
	// config file.
	Tokens tokens.Config `yaml:"-"`
}

func LoadConfig(path string) *Config {
	cfg := &Config{}

	file, err := os.Open(path)
	if err != nil {
		logger.Fatal().Err(err).Msgf("failed to open config file: %s", path)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil {
		logger.Fatal().Err(err).Msg("failed to decode config file")
	}

	if err := env.Parse(&cfg.Tokens); err != nil {
		logger.Fatal().Err(err).Msg("failed to parse token config from environment")
	}

	cfg.validate()

	return cfg
}

func (c *Config) validate() {
	if c.Port == 0 {
		logger.Fatal().Msg("Port is missing")
	}

	if c.GinMode == "" {
		logger.Fatal().Msg("GinMode is missing")
	}

	if err := c.Tokens.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid token config")
	}
}
