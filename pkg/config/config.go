// Package config provides the configuration surface for spawnpool: logging
// settings and the declarative warm-up list of (prefab, size) pairs with
// its lifecycle-mode selector.
//
// Example usage:
//
//	cfg, err := config.Load("spawnpool.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config

import (
	"github.com/glasswing-dev/spawnpool/pkg/errors"
	"github.com/glasswing-dev/spawnpool/pkg/logger"
)

// WarmupMode selects when the declarative warm-up list is applied relative
// to the host lifecycle.
type WarmupMode string

const (
	// WarmupModeLoad applies the warm-up list at the earliest lifecycle hook
	WarmupModeLoad WarmupMode = "load"
	// WarmupModeStart applies the warm-up list at the second lifecycle hook
	WarmupModeStart WarmupMode = "start"
	// WarmupModeManual applies the warm-up list only on an explicit trigger
	WarmupModeManual WarmupMode = "manual"
)

// Config is the top-level configuration structure.
type Config struct {
	// Logging configures the zap logger
	Logging logger.Config `yaml:"logging" json:"logging"`

	// Warmup declares the pools to pre-populate at startup
	Warmup WarmupConfig `yaml:"warmup" json:"warmup"`
}

// WarmupConfig declares the startup pool pre-population.
type WarmupConfig struct {
	// Mode selects the lifecycle hook that triggers pre-population
	Mode WarmupMode `yaml:"mode" json:"mode"`
	// Pools lists the (prefab, size) pairs to create exactly once
	Pools []PoolSpec `yaml:"pools" json:"pools"`
}

// PoolSpec declares one startup pool.
type PoolSpec struct {
	// Prefab names the template the pool belongs to
	Prefab string `yaml:"prefab" json:"prefab"`
	// Size is the number of inactive copies to pre-instantiate
	Size int `yaml:"size" json:"size"`
}

// Default returns a configuration with sensible defaults: info-level JSON
// logging and manual warm-up with no pools.
func Default() *Config {
	return &Config{
		Logging: logger.Config{
			Level:    "info",
			Encoding: "json",
		},
		Warmup: WarmupConfig{
			Mode: WarmupModeManual,
		},
	}
}

// Validate checks the configuration for contradictions. A missing warm-up
// mode defaults to manual.
func (c *Config) Validate() error {
	switch c.Warmup.Mode {
	case WarmupModeLoad, WarmupModeStart, WarmupModeManual:
	case "":
		c.Warmup.Mode = WarmupModeManual
	default:
		return errors.Newf(errors.ErrorTypeConfig, "unknown warmup mode %q", c.Warmup.Mode)
	}

	seen := make(map[string]bool, len(c.Warmup.Pools))
	for i, spec := range c.Warmup.Pools {
		if spec.Prefab == "" {
			return errors.Newf(errors.ErrorTypeConfig, "warmup pool %d: prefab name is empty", i)
		}
		if spec.Size < 0 {
			return errors.Newf(errors.ErrorTypeConfig, "warmup pool %q: negative size %d", spec.Prefab, spec.Size)
		}
		if seen[spec.Prefab] {
			return errors.Newf(errors.ErrorTypeConfig, "warmup pool %q declared twice", spec.Prefab)
		}
		seen[spec.Prefab] = true
	}
	return nil
}

// String implements fmt.Stringer for log output.
func (m WarmupMode) String() string {
	return string(m)
}
