// Package bootstrap wires the declarative warm-up configuration into a
// pool registry and decides when pre-population runs relative to the host
// lifecycle: at the earliest hook, at the second hook, or only on an
// explicit trigger.
package bootstrap

import (
	"go.uber.org/zap"

	"github.com/glasswing-dev/spawnpool/pkg/config"
	"github.com/glasswing-dev/spawnpool/pkg/logger"
	"github.com/glasswing-dev/spawnpool/pkg/spawnpool"
)

// Resolver maps a prefab name from configuration to a template handle.
// It reports false when no template with that name exists.
type Resolver[T comparable] func(prefab string) (T, bool)

// Bootstrapper applies a warm-up configuration to a registry. The registry
// itself guarantees the warm-up runs at most once, so calling more than one
// lifecycle hook is harmless.
type Bootstrapper[T comparable] struct {
	registry *spawnpool.Registry[T]
	mode     config.WarmupMode
	logger   *zap.Logger
}

// New registers the configured startup pools on the registry. Pool specs
// naming a prefab the resolver cannot find are skipped with a warning; a
// missing prefab in configuration must not prevent the rest of the warm-up.
func New[T comparable](registry *spawnpool.Registry[T], cfg config.WarmupConfig, resolve Resolver[T]) *Bootstrapper[T] {
	b := &Bootstrapper[T]{
		registry: registry,
		mode:     cfg.Mode,
		logger:   logger.Get().With(zap.String("component", "bootstrap")),
	}
	if b.mode == "" {
		b.mode = config.WarmupModeManual
	}

	for _, spec := range cfg.Pools {
		template, ok := resolve(spec.Prefab)
		if !ok {
			b.logger.Warn("warmup pool references unknown prefab, skipping",
				zap.String("prefab", spec.Prefab))
			continue
		}
		registry.RegisterStartupPool(template, spec.Size)
	}
	return b
}

// Mode returns the configured warm-up mode.
func (b *Bootstrapper[T]) Mode() config.WarmupMode {
	return b.mode
}

// OnLoad is the earliest lifecycle hook. It triggers warm-up in load mode.
func (b *Bootstrapper[T]) OnLoad() {
	if b.mode == config.WarmupModeLoad {
		b.registry.EnsureStartupPoolsCreated()
	}
}

// OnStart is the second lifecycle hook. It triggers warm-up in start mode.
func (b *Bootstrapper[T]) OnStart() {
	if b.mode == config.WarmupModeStart {
		b.registry.EnsureStartupPoolsCreated()
	}
}

// Trigger runs warm-up regardless of mode. Intended for manual mode, where
// no lifecycle hook fires the warm-up.
func (b *Bootstrapper[T]) Trigger() {
	b.registry.EnsureStartupPoolsCreated()
}
