package spawnpool

import (
	"go.uber.org/zap"

	"github.com/glasswing-dev/spawnpool/pkg/transform"
)

// SpawnOptions configures placement of a spawned instance. The zero value
// spawns at the root with zero position and identity rotation; there is one
// Spawn signature instead of a family of positional overloads.
type SpawnOptions[T comparable] struct {
	// Parent is the node the instance is parented under. The zero handle
	// places the instance at the root.
	Parent T
	// Position is the instance's local position. Defaults to zero.
	Position transform.Vec3
	// Rotation is the instance's local rotation. The zero quaternion is
	// treated as the identity rotation.
	Rotation transform.Quat
}

// StartupPool declares a pool to pre-populate exactly once at startup via
// EnsureStartupPoolsCreated.
type StartupPool[T comparable] struct {
	Template T
	Size     int
}

// Option configures a Registry.
type Option[T comparable] func(*Registry[T])

// WithHolder sets the holding area recycled instances are parked under.
// Without it, recycled instances are parked at the root.
func WithHolder[T comparable](holder T) Option[T] {
	return func(r *Registry[T]) {
		r.holder = holder
	}
}

// WithLogger sets the registry's logger.
func WithLogger[T comparable](l *zap.Logger) Option[T] {
	return func(r *Registry[T]) {
		r.logger = l
	}
}

// WithStartupPools registers the declarative warm-up list applied by
// EnsureStartupPoolsCreated.
func WithStartupPools[T comparable](pools []StartupPool[T]) Option[T] {
	return func(r *Registry[T]) {
		r.startup = append(r.startup, pools...)
	}
}
