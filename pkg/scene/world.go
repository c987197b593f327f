// Package scene provides an in-memory scene graph. It implements the
// capability surface the pool registry requires from its hosting
// environment: instantiation from templates, activation, reparenting,
// local transforms, and destruction.
package scene

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/glasswing-dev/spawnpool/pkg/logger"
	"github.com/glasswing-dev/spawnpool/pkg/transform"
)

// World owns a scene graph rooted at a single hidden root node. All nodes
// belong to exactly one world. World is not safe for concurrent use; it is
// designed for a single-threaded update loop.
type World struct {
	name   string
	root   *Node
	nodes  map[uuid.UUID]*Node
	logger *zap.Logger
}

// NewWorld creates an empty world with the given name.
func NewWorld(name string) *World {
	root := &Node{
		id:     uuid.New(),
		name:   name,
		active: true,
		scale:  transform.One(),
	}
	w := &World{
		name:   name,
		root:   root,
		nodes:  map[uuid.UUID]*Node{root.id: root},
		logger: logger.Get().With(zap.String("component", "scene"), zap.String("scene", name)),
	}
	return w
}

// Root returns the world's root node.
func (w *World) Root() *Node {
	return w.root
}

// Len returns the number of live nodes in the world, including the root.
func (w *World) Len() int {
	return len(w.nodes)
}

// NewNode creates an active node with identity transform, parented to the
// world root.
func (w *World) NewNode(name string) *Node {
	n := &Node{
		id:       uuid.New(),
		name:     name,
		active:   true,
		rotation: transform.Identity(),
		scale:    transform.One(),
	}
	w.nodes[n.id] = n
	w.attach(n, w.root)
	return n
}

// Find returns the first live node with the given name, or nil.
func (w *World) Find(name string) *Node {
	for _, n := range w.nodes {
		if n.name == name && n != w.root {
			return n
		}
	}
	return nil
}

// Instantiate deep-copies a template subtree into a new live node parented
// to the world root. The copy inherits the template's active flag and local
// transform.
func (w *World) Instantiate(template *Node) *Node {
	if !w.Valid(template) {
		w.logger.Error("instantiate of invalid template")
		return nil
	}
	clone := w.clone(template)
	w.attach(clone, w.root)
	return clone
}

func (w *World) clone(src *Node) *Node {
	n := &Node{
		id:       uuid.New(),
		name:     src.name,
		active:   src.active,
		position: src.position,
		rotation: src.rotation,
		scale:    src.scale,
	}
	w.nodes[n.id] = n
	for _, child := range src.children {
		c := w.clone(child)
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// SetActive activates or deactivates a node. No-op on invalid handles.
func (w *World) SetActive(n *Node, active bool) {
	if !w.Valid(n) {
		return
	}
	n.active = active
}

// Active reports whether a node is active. Invalid handles report false.
func (w *World) Active(n *Node) bool {
	return w.Valid(n) && n.active
}

// SetParent reparents a node. A nil parent places the node at the root.
func (w *World) SetParent(n *Node, parent *Node) {
	if !w.Valid(n) || n == w.root {
		return
	}
	if parent == nil || !w.Valid(parent) {
		parent = w.root
	}
	w.detach(n)
	w.attach(n, parent)
}

// SetLocalTransform sets a node's local position, rotation, and scale.
func (w *World) SetLocalTransform(n *Node, position transform.Vec3, rotation transform.Quat, scale transform.Vec3) {
	if !w.Valid(n) {
		return
	}
	n.position = position
	n.rotation = rotation
	n.scale = scale
}

// LocalScale returns a node's local scale. Invalid handles report zero.
func (w *World) LocalScale(n *Node) transform.Vec3 {
	if !w.Valid(n) {
		return transform.Vec3{}
	}
	return n.scale
}

// Valid reports whether the handle refers to a live node in this world.
func (w *World) Valid(n *Node) bool {
	return n != nil && !n.destroyed
}

// Name returns a node's name for diagnostic context.
func (w *World) Name(n *Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.name
}

// Destroy irreversibly removes a node and its subtree from the world.
// Destroyed handles remain comparable but fail Valid.
func (w *World) Destroy(n *Node) {
	if !w.Valid(n) || n == w.root {
		return
	}
	w.detach(n)
	w.destroyTree(n)
}

func (w *World) destroyTree(n *Node) {
	n.destroyed = true
	n.active = false
	delete(w.nodes, n.id)
	for _, child := range n.children {
		w.destroyTree(child)
	}
	n.children = nil
	n.parent = nil
}

func (w *World) attach(n *Node, parent *Node) {
	n.parent = parent
	parent.children = append(parent.children, n)
}

func (w *World) detach(n *Node) {
	p := n.parent
	if p == nil {
		return
	}
	for i, child := range p.children {
		if child == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}
