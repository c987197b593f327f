package scene

import (
	"github.com/google/uuid"

	"github.com/glasswing-dev/spawnpool/pkg/transform"
)

// Node is a scene-graph object. A node serves both as a template (a prefab
// other nodes are instantiated from) and as a live instance. Identity is
// pointer identity; the uuid exists for diagnostics and lookups only.
type Node struct {
	id        uuid.UUID
	name      string
	active    bool
	destroyed bool

	parent   *Node
	children []*Node

	position transform.Vec3
	rotation transform.Quat
	scale    transform.Vec3
}

// ID returns the node's unique identifier.
func (n *Node) ID() uuid.UUID {
	return n.id
}

// Name returns the node's name.
func (n *Node) Name() string {
	return n.name
}

// Active reports whether the node is active.
func (n *Node) Active() bool {
	return n.active
}

// Destroyed reports whether the node has been destroyed. A destroyed node
// is a stale handle; the world rejects all further operations on it.
func (n *Node) Destroyed() bool {
	return n.destroyed
}

// Parent returns the node's parent, or nil for root-level nodes.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the node's child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Position returns the node's local position.
func (n *Node) Position() transform.Vec3 {
	return n.position
}

// Rotation returns the node's local rotation.
func (n *Node) Rotation() transform.Quat {
	return n.rotation
}

// Scale returns the node's local scale.
func (n *Node) Scale() transform.Vec3 {
	return n.scale
}
