package spawnpool

import "github.com/glasswing-dev/spawnpool/pkg/transform"

// World is the capability surface the registry requires from the hosting
// environment. T is an opaque comparable handle; the zero value of T means
// "no object" (for example a nil pointer) and is never a valid handle.
//
// pkg/scene implements World[*scene.Node].
type World[T comparable] interface {
	// Instantiate deep-copies a template into a new live object. The copy
	// inherits the template's active state. Returns the zero handle on
	// failure.
	Instantiate(template T) T

	// SetActive activates or deactivates an object.
	SetActive(obj T, active bool)

	// Active reports whether an object is active.
	Active(obj T) bool

	// SetParent reparents an object. The zero handle parents at the root.
	SetParent(obj T, parent T)

	// SetLocalTransform sets an object's local position, rotation, and scale.
	SetLocalTransform(obj T, position transform.Vec3, rotation transform.Quat, scale transform.Vec3)

	// LocalScale returns an object's current local scale.
	LocalScale(obj T) transform.Vec3

	// Valid reports whether a handle refers to a live, non-destroyed object.
	Valid(obj T) bool

	// Name returns a human-readable name for diagnostics.
	Name(obj T) string

	// Destroy irreversibly removes an object.
	Destroy(obj T)
}
