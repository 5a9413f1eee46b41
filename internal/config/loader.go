package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if SOUK_CONFIG is set
//  3. env (prefix SOUK_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SOUK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// Environment variables: SOUK_INPUT, SOUK_CUSTOMER_CAPACITY, ...
	// Map env keys like SOUK_CUSTOMER_CAPACITY -> customer_capacity, keeping
	// underscores to match the koanf tags on the struct.
	envProvider := env.Provider("SOUK_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "souk_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy so defaults survive partial overrides.
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Input == "" {
		return fmt.Errorf("%w: input must not be empty", ErrInvalidConfig)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output must not be empty", ErrInvalidConfig)
	}
	if c.CustomerCapacity <= 0 {
		return fmt.Errorf("%w: customer_capacity must be positive", ErrInvalidConfig)
	}
	if c.FreelancerCapacity <= 0 {
		return fmt.Errorf("%w: freelancer_capacity must be positive", ErrInvalidConfig)
	}
	if c.EmploymentCapacity <= 0 {
		return fmt.Errorf("%w: employment_capacity must be positive", ErrInvalidConfig)
	}
	if c.BlacklistCapacity <= 0 {
		return fmt.Errorf("%w: blacklist_capacity must be positive", ErrInvalidConfig)
	}
	return nil
}
