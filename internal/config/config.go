// Package config loads the rbloom command's settings from a YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/jpl-au/rbloom"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the file.
const (
	EnvRedisURL      = "RBLOOM_REDIS_URL"
	EnvRedisPassword = "RBLOOM_REDIS_PASSWORD"
	EnvBucket        = "RBLOOM_BUCKET"
)

type Config struct {
	Filter  rbloom.Config      `yaml:"filter"`
	Redis   rbloom.RedisConfig `yaml:"redis"`
	Logging LoggingConfig      `yaml:"logging"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // zerolog level name
	Format string `yaml:"format"` // "text" or "json"
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Filter: rbloom.Config{
			BitSpace: rbloom.DefaultBitSpace,
			Hashes:   slices.Clone(rbloom.DefaultHashes),
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads path over the defaults and applies environment overrides. An
// empty path skips the file. Unknown keys are an error so a misspelt
// setting is not silently ignored.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		decoder := yaml.NewDecoder(file)
		decoder.KnownFields(true)
		if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	// Override with environment variables
	if url := os.Getenv(EnvRedisURL); url != "" {
		config.Redis.URL = url
	}
	if password := os.Getenv(EnvRedisPassword); password != "" {
		config.Redis.Password = password
	}
	if bucket := os.Getenv(EnvBucket); bucket != "" {
		config.Filter.Bucket = bucket
	}

	return config, nil
}
