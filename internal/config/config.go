// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MetricsAddr configures the optional Prometheus listen address,
	// e.g. ":9090". Empty disables the metrics endpoint.
	MetricsAddr string `koanf:"metrics_addr"`

	// BirthQueueSize bounds the in-memory birth event queue.
	BirthQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of assignment workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the birth-event deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// AffinityThreshold is the ancestor count needed for a discipline affinity.
	AffinityThreshold int `koanf:"affinity_threshold"`

	// LegacyTalentMin is the same-discipline ancestor count that triggers a
	// legacy talent roll.
	LegacyTalentMin int `koanf:"legacy_talent_min"`

	// LegacyTalentChance is the probability of granting legacy talent once
	// the roll triggers.
	LegacyTalentChance float64 `koanf:"legacy_talent_chance"`

	// StressCalmMax and FeedRichMin bound the optimal maternal-care rule.
	StressCalmMax float64 `koanf:"stress_calm_max"`
	FeedRichMin   float64 `koanf:"feed_rich_min"`

	// StressHighMin and FeedPoorMax bound the adverse maternal-care rules.
	StressHighMin float64 `koanf:"stress_high_min"`
	FeedPoorMax   float64 `koanf:"feed_poor_max"`

	// ModerateAt and SevereAt band inbreeding severity by duplicate count.
	ModerateAt int `koanf:"moderate_at"`
	SevereAt   int `koanf:"severe_at"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and is
// currently unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:           "info",
		MetricsAddr:        "",
		BirthQueueSize:     10_000,
		WorkerCount:        runtime.NumCPU() * 2,
		DedupeSize:         50_000,
		AffinityThreshold:  3,
		LegacyTalentMin:    4,
		LegacyTalentChance: 0.25,
		StressCalmMax:      20,
		FeedRichMin:        80,
		StressHighMin:      80,
		FeedPoorMax:        30,
		ModerateAt:         2,
		SevereAt:           4,
	}
	return c
}
