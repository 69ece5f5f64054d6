package config

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if SIRELINE_CONFIG is set
//  3. env (prefix SIRELINE_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SIRELINE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: SIRELINE_WORKER_COUNT, SIRELINE_QUEUE_SIZE, ...
	// Map env keys like SIRELINE_QUEUE_SIZE -> queue_size (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SIRELINE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "sireline_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	// Basic validation
	if cfg.WorkerCount <= 0 {
		return nil, errors.New("worker_count must be positive")
	}
	if cfg.BirthQueueSize <= 0 {
		return nil, errors.New("queue_size must be positive")
	}
	if cfg.AffinityThreshold <= 0 {
		return nil, errors.New("affinity_threshold must be positive")
	}
	if cfg.LegacyTalentChance < 0 || cfg.LegacyTalentChance > 1 {
		return nil, errors.New("legacy_talent_chance must be within [0, 1]")
	}
	if cfg.SevereAt < cfg.ModerateAt {
		return nil, errors.New("severe_at must not be below moderate_at")
	}
	return &cfg, nil
}
