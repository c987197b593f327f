// Package spawnpool implements a runtime object-recycling pool for scene
// objects. Instead of destroying and recreating instances of a template
// ("prefab"), the registry keeps a per-template free list of inactive
// instances and a live set of spawned instances, giving O(1) amortized
// spawn and recycle.
//
// # Architecture
//
// The registry is generic over a comparable handle type T and talks to the
// hosting environment exclusively through the World[T] capability
// interface. The package ships with no engine bindings; pkg/scene provides
// an in-memory World used by the CLI and tests.
//
// Every instance is in exactly one of two states: free (parked in its
// template's pool, inactive) or spawned (active, tracked in the live set
// with its originating template). The free lists and the live set are
// disjoint at all times.
//
// # Usage
//
//	world := scene.NewWorld("game")
//	reg := spawnpool.New[*scene.Node](world)
//
//	bullet := world.NewNode("bullet")
//	if err := reg.CreatePool(bullet, 32); err != nil {
//		return err
//	}
//
//	inst, err := reg.Spawn(bullet, spawnpool.SpawnOptions[*scene.Node]{
//		Position: transform.Vec3{X: 1},
//	})
//	if err != nil {
//		return err
//	}
//	// ... later
//	reg.Recycle(inst)
//
// # Failure model
//
// The registry degrades gracefully rather than failing: spawning from a
// template without a pool creates one on the fly, recycling an instance it
// never spawned destroys the instance with an error-level diagnostic, and
// destroyed handles found in a free list are skipped silently. The only
// escalated errors are contract violations: a zero template handle passed
// to CreatePool or Spawn.
//
// The registry is single-threaded by design. All operations are
// synchronous and must run on one logical thread, typically the host's
// update loop.
package spawnpool
