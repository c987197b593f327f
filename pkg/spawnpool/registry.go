package spawnpool

import (
	"go.uber.org/zap"

	"github.com/glasswing-dev/spawnpool/pkg/errors"
	"github.com/glasswing-dev/spawnpool/pkg/logger"
	"github.com/glasswing-dev/spawnpool/pkg/metrics"
	"github.com/glasswing-dev/spawnpool/pkg/transform"
)

// Registry is the central authority for creating pools, spawning instances,
// recycling instances, and querying pool state. Construct one explicitly
// with New and pass it to call sites; there is no hidden process-global.
//
// Registry is not safe for concurrent use. All operations must run on one
// logical thread.
type Registry[T comparable] struct {
	world World[T]

	// free maps each template to its FIFO free list: recycled instances
	// are appended at the back, spawns pop from the front.
	free map[T][]T

	// spawned maps each live instance to its originating template.
	spawned map[T]T

	holder      T
	startup     []StartupPool[T]
	startupDone bool
	logger      *zap.Logger
}

// New creates a registry backed by the given world.
func New[T comparable](world World[T], opts ...Option[T]) *Registry[T] {
	r := &Registry[T]{
		world:   world,
		free:    make(map[T][]T),
		spawned: make(map[T]T),
		logger:  logger.Get().With(zap.String("component", "spawnpool")),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreatePool creates a pool for the template and pre-populates it with
// initialSize inactive copies. A second call for the same template is a
// no-op that leaves the existing pool untouched. Instantiation happens with
// the template temporarily deactivated so the copies inherit the inactive
// state; the template's prior active state is restored afterwards.
//
// Passing the zero template handle is a contract violation and returns a
// validation error.
func (r *Registry[T]) CreatePool(template T, initialSize int) error {
	var zero T
	if template == zero {
		return errors.New(errors.ErrorTypeValidation, "create pool: template handle is unset")
	}
	if _, exists := r.free[template]; exists {
		return nil
	}

	name := r.world.Name(template)
	pool := make([]T, 0, max(initialSize, 0))
	if initialSize > 0 {
		wasActive := r.world.Active(template)
		if wasActive {
			r.world.SetActive(template, false)
		}
		for i := 0; i < initialSize; i++ {
			inst := r.world.Instantiate(template)
			if inst == zero {
				continue
			}
			r.world.SetParent(inst, r.holder)
			pool = append(pool, inst)
		}
		if wasActive {
			r.world.SetActive(template, true)
		}
	}
	r.free[template] = pool

	metrics.PooledInstances.WithLabelValues(name).Set(float64(len(pool)))
	r.logger.Debug("pool created",
		zap.String("prefab", name),
		zap.Int("initial_size", len(pool)))
	return nil
}

// Spawn returns a ready-to-use instance of the template: reparented,
// placed, rescaled to the template's current local scale, and activated.
// It reuses the oldest free instance when the pool has one, silently
// skipping destroyed handles, and instantiates a fresh copy when the pool
// is empty. Pools grow without bound on demand.
//
// Spawning a template that has no pool is self-healing: a warning is
// logged, a pool of size 1 is created, and the spawn proceeds.
func (r *Registry[T]) Spawn(template T, opts SpawnOptions[T]) (T, error) {
	var zero T
	if template == zero {
		return zero, errors.New(errors.ErrorTypeValidation, "spawn: template handle is unset")
	}

	name := r.world.Name(template)

	pool, ok := r.free[template]
	if !ok {
		r.logger.Warn("spawn requested for prefab without a pool, creating one",
			zap.String("prefab", name))
		if err := r.CreatePool(template, 1); err != nil {
			return zero, err
		}
		pool = r.free[template]
	}

	var inst T
	for len(pool) > 0 {
		candidate := pool[0]
		pool = pool[1:]
		if candidate == zero || !r.world.Valid(candidate) {
			// Stale handle destroyed outside the registry. Routine
			// cleanup, not a user error.
			metrics.StaleHandlesTotal.Inc()
			continue
		}
		inst = candidate
		break
	}
	r.free[template] = pool

	source := metrics.SourcePooled
	if inst == zero {
		inst = r.world.Instantiate(template)
		if inst == zero {
			return zero, errors.Newf(errors.ErrorTypeInternal, "spawn: instantiate of prefab %q failed", name)
		}
		source = metrics.SourceFresh
	}

	r.place(inst, template, opts)
	r.spawned[inst] = template

	metrics.SpawnsTotal.WithLabelValues(name, source).Inc()
	metrics.PooledInstances.WithLabelValues(name).Set(float64(len(pool)))
	metrics.SpawnedInstances.WithLabelValues(name).Inc()
	return inst, nil
}

// place applies parent, position, rotation, and the template's current
// local scale, then activates the instance. Scale is read from the
// template at spawn time, not frozen at pool creation.
func (r *Registry[T]) place(inst T, template T, opts SpawnOptions[T]) {
	r.world.SetParent(inst, opts.Parent)
	rot := opts.Rotation
	if rot.IsZero() {
		rot = transform.Identity()
	}
	r.world.SetLocalTransform(inst, opts.Position, rot, r.world.LocalScale(template))
	r.world.SetActive(inst, true)
}

// Recycle moves a spawned instance back to its template's free list,
// parks it under the holding area, and deactivates it.
//
// Recycling an instance the registry never spawned (or recycling twice) is
// a usage error: the instance's originating template is unknown, so it is
// destroyed instead of pooled, with an error-level diagnostic. The call
// never fails hard.
func (r *Registry[T]) Recycle(instance T) {
	var zero T
	if instance == zero {
		r.logger.Error("recycle of unset instance handle")
		metrics.MisusesTotal.Inc()
		return
	}

	template, ok := r.spawned[instance]
	if !ok {
		r.logger.Error("recycle of untracked instance, destroying it",
			zap.String("instance", r.world.Name(instance)))
		metrics.MisusesTotal.Inc()
		r.world.Destroy(instance)
		return
	}

	delete(r.spawned, instance)
	r.free[template] = append(r.free[template], instance)
	r.world.SetParent(instance, r.holder)
	r.world.SetActive(instance, false)

	name := r.world.Name(template)
	metrics.RecyclesTotal.WithLabelValues(name).Inc()
	metrics.PooledInstances.WithLabelValues(name).Set(float64(len(r.free[template])))
	metrics.SpawnedInstances.WithLabelValues(name).Dec()
}

// RecycleAll recycles every currently spawned instance. Targets are
// snapshotted before any recycling because Recycle mutates the live set.
func (r *Registry[T]) RecycleAll() {
	targets := make([]T, 0, len(r.spawned))
	for inst := range r.spawned {
		targets = append(targets, inst)
	}
	for _, inst := range targets {
		r.Recycle(inst)
	}
}

// RecycleAllOf recycles every currently spawned instance of one template.
func (r *Registry[T]) RecycleAllOf(template T) {
	targets := make([]T, 0)
	for inst, tpl := range r.spawned {
		if tpl == template {
			targets = append(targets, inst)
		}
	}
	for _, inst := range targets {
		r.Recycle(inst)
	}
}

// RegisterStartupPool appends a (template, size) pair to the declarative
// warm-up list. Registrations after EnsureStartupPoolsCreated has run are
// ignored with a warning.
func (r *Registry[T]) RegisterStartupPool(template T, size int) {
	if r.startupDone {
		r.logger.Warn("startup pool registered after warm-up already ran",
			zap.String("prefab", r.world.Name(template)))
		return
	}
	r.startup = append(r.startup, StartupPool[T]{Template: template, Size: size})
}

// EnsureStartupPoolsCreated applies the registered warm-up list exactly
// once. Subsequent calls are no-ops regardless of which lifecycle hook
// triggered the first one.
func (r *Registry[T]) EnsureStartupPoolsCreated() {
	if r.startupDone {
		return
	}
	r.startupDone = true

	timer := metrics.NewTimer("warmup")
	for _, sp := range r.startup {
		if err := r.CreatePool(sp.Template, sp.Size); err != nil {
			r.logger.Error("startup pool creation failed",
				zap.String("prefab", r.world.Name(sp.Template)),
				zap.Error(err))
		}
	}
	metrics.WarmupDuration.Observe(timer.Stop().Seconds())
	r.logger.Info("startup pools created", zap.Int("pools", len(r.startup)))
}

// IsSpawned reports whether the instance is currently tracked in the live
// set.
func (r *Registry[T]) IsSpawned(instance T) bool {
	_, ok := r.spawned[instance]
	return ok
}

// CountPooled returns the free-list size for a template, 0 if it has no
// pool.
func (r *Registry[T]) CountPooled(template T) int {
	return len(r.free[template])
}

// CountSpawned returns the number of live instances of a template.
func (r *Registry[T]) CountSpawned(template T) int {
	n := 0
	for _, tpl := range r.spawned {
		if tpl == template {
			n++
		}
	}
	return n
}

// CountAllPooled returns the total free-list size across all pools.
func (r *Registry[T]) CountAllPooled() int {
	n := 0
	for _, pool := range r.free {
		n += len(pool)
	}
	return n
}

// Pooled returns a copy of a template's free list, oldest first. Empty for
// unknown templates.
func (r *Registry[T]) Pooled(template T) []T {
	pool := r.free[template]
	out := make([]T, len(pool))
	copy(out, pool)
	return out
}

// Spawned returns the live instances of a template. Empty for unknown
// templates. Order is unspecified.
func (r *Registry[T]) Spawned(template T) []T {
	out := make([]T, 0)
	for inst, tpl := range r.spawned {
		if tpl == template {
			out = append(out, inst)
		}
	}
	return out
}
