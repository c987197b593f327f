// Package spawnpool provides a runtime object-recycling pool for scene
// objects: reusable instances of a template ("prefab") are handed out on
// demand and reclaimed for reuse instead of being destroyed and recreated.
//
// # Architecture
//
// The repository is organized around one core component and its glue:
//
//   - pkg/spawnpool: the pool registry. Per-template FIFO free lists plus
//     a live set mapping spawned instances to their originating template,
//     generic over any comparable handle type.
//   - pkg/scene: an in-memory scene graph implementing the capability
//     surface the registry requires (instantiate, activate, reparent,
//     transform, destroy).
//   - pkg/transform: position/rotation/scale value types.
//   - internal/bootstrap: declarative warm-up of startup pools, keyed to a
//     configurable lifecycle hook.
//   - pkg/config, pkg/logger, pkg/metrics, pkg/errors: YAML configuration,
//     zap logging, Prometheus metrics, structured errors.
//
// # Quick Start
//
//	world := scene.NewWorld("game")
//	registry := spawnpool.New[*scene.Node](world)
//
//	bullet := world.NewNode("bullet")
//	_ = registry.CreatePool(bullet, 32)
//
//	inst, err := registry.Spawn(bullet, spawnpool.SpawnOptions[*scene.Node]{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	registry.Recycle(inst)
//
// The cmd/spawnpool CLI runs a churn simulation against the in-memory
// scene and reports pool statistics.
package spawnpool
