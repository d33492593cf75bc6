// Package config loads process settings from the environment and board
// layouts from YAML files.
package config

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the server configuration. Command-line flags may override any
// field after Load.
type Config struct {
	Addr       string `env:"TSC_ADDR" envDefault:":8080"`
	Seed       uint64 `env:"TSC_SEED"`
	LogLevel   string `env:"TSC_LOG_LEVEL" envDefault:"info"`
	PrettyLogs bool   `env:"TSC_PRETTY_LOGS"`
	LayoutFile string `env:"TSC_LAYOUT_FILE"`
}

// Load reads Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ResolveSeed returns the configured seed, or a fresh one from crypto/rand
// when the seed is zero.
func (c Config) ResolveSeed() (uint64, error) {
	if c.Seed != 0 {
		return c.Seed, nil
	}
	return NewSeed()
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
