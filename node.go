package refraction

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// nodeIDCounter is a plain counter (the scene is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Component is behaviour attached to a Node. Components opt into lifecycle
// callbacks by implementing Enabler, Disabler, Destroyer, Updater or
// WillRenderObserver.
type Component interface{}

// Enabler is notified when its node becomes active in the scene hierarchy.
type Enabler interface {
	OnEnable()
}

// Disabler is notified when its node stops being active in the scene hierarchy.
type Disabler interface {
	OnDisable()
}

// Destroyer is notified once when its node is disposed or the component is removed.
type Destroyer interface {
	OnDestroy()
}

// Updater is advanced once per Scene.Update.
type Updater interface {
	Update(dt float64)
}

// WillRenderObserver is notified once per camera per frame, before that
// camera draws the node.
type WillRenderObserver interface {
	OnWillRenderObject(cam *Camera)
}

// Node is a scene graph element. A single flat struct is used for all nodes;
// a nil Image makes the node a container.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node
	scene    *Scene // set on the root; descendants resolve it through Parent

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	worldTransform [6]float64
	worldAlpha     float64

	// Visibility
	Alpha      float64
	Visible    bool
	Renderable bool
	active     bool

	// Appearance
	Image     *ebiten.Image
	Color     Color
	BlendMode BlendMode
	Layer     Layer
	// Material, when set on a transparent node, draws the node through the
	// material's shader with the published blur tiers bound.
	Material *Material

	components []Component
	// enabledNotified tracks whether components saw OnEnable without a
	// matching OnDisable yet.
	enabledNotified bool

	disposed bool
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.Renderable = true
	n.active = true
	n.worldTransform = identityTransform
	n.worldAlpha = 1
}

// NewContainer creates a node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewSprite creates a node that draws img.
func NewSprite(name string, img *ebiten.Image) *Node {
	n := &Node{Name: name, Image: img}
	nodeDefaults(n)
	return n
}

// --- Hierarchy ---

// AddChild appends child to n, detaching it from any previous parent first.
// Components on the child subtree are enabled if the subtree became active
// in a scene.
func (n *Node) AddChild(child *Node) {
	if child == nil || child == n || child.disposed || isAncestor(child, n) {
		return
	}
	if child.Parent != nil {
		child.RemoveFromParent()
	}
	child.Parent = n
	n.children = append(n.children, child)
	child.refreshActivity()
}

// RemoveChild detaches child from n. Components on the child subtree are
// disabled.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.Parent != n {
		return
	}
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			break
		}
	}
	child.Parent = nil
	child.refreshActivity()
}

// RemoveFromParent detaches n from its parent, if any.
func (n *Node) RemoveFromParent() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Children returns the child list. The returned slice MUST NOT be mutated.
func (n *Node) Children() []*Node {
	return n.children
}

// Scene returns the scene this node is attached to, or nil.
func (n *Node) Scene() *Scene {
	for p := n; p != nil; p = p.Parent {
		if p.scene != nil {
			return p.scene
		}
	}
	return nil
}

// --- Activity ---

// SetActive activates or deactivates the node. An inactive node and its
// descendants are not drawn and their components are disabled.
func (n *Node) SetActive(active bool) {
	if n.active == active {
		return
	}
	n.active = active
	n.refreshActivity()
}

// ActiveSelf reports the node's own active flag.
func (n *Node) ActiveSelf() bool {
	return n.active
}

// ActiveInHierarchy reports whether this node and all of its ancestors are
// active and the node is attached to a scene.
func (n *Node) ActiveInHierarchy() bool {
	if n.disposed {
		return false
	}
	for p := n; p != nil; p = p.Parent {
		if !p.active {
			return false
		}
		if p.scene != nil {
			return true
		}
	}
	return false
}

// refreshActivity delivers OnEnable/OnDisable to every component in the
// subtree whose effective activity changed.
func (n *Node) refreshActivity() {
	active := n.ActiveInHierarchy()
	if active != n.enabledNotified {
		n.enabledNotified = active
		for _, c := range n.components {
			notifyActivity(c, active)
		}
	}
	for _, child := range n.children {
		child.refreshActivity()
	}
}

func notifyActivity(c Component, active bool) {
	if active {
		if e, ok := c.(Enabler); ok {
			e.OnEnable()
		}
		return
	}
	if d, ok := c.(Disabler); ok {
		d.OnDisable()
	}
}

// --- Components ---

// componentOwner is implemented by components that want to know their node.
type componentOwner interface {
	setOwner(n *Node)
}

// AddComponent attaches c to the node. If the node is active in a scene, c
// receives OnEnable immediately.
func (n *Node) AddComponent(c Component) {
	if c == nil || n.disposed {
		return
	}
	for _, existing := range n.components {
		if existing == c {
			return
		}
	}
	if o, ok := c.(componentOwner); ok {
		o.setOwner(n)
	}
	n.components = append(n.components, c)
	if n.enabledNotified {
		notifyActivity(c, true)
	}
}

// RemoveComponent detaches c, delivering OnDisable (if it was enabled) and
// OnDestroy.
func (n *Node) RemoveComponent(c Component) {
	for i, existing := range n.components {
		if existing != c {
			continue
		}
		n.components = append(n.components[:i], n.components[i+1:]...)
		if n.enabledNotified {
			notifyActivity(c, false)
		}
		if d, ok := c.(Destroyer); ok {
			d.OnDestroy()
		}
		if o, ok := c.(componentOwner); ok {
			o.setOwner(nil)
		}
		return
	}
}

// Components returns the attached components. The returned slice MUST NOT be mutated.
func (n *Node) Components() []Component {
	return n.components
}

// --- Disposal ---

// Dispose removes the node from its parent, disables and destroys its
// components, and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	if n.enabledNotified {
		n.enabledNotified = false
		for _, c := range n.components {
			notifyActivity(c, false)
		}
	}
	for _, c := range n.components {
		if d, ok := c.(Destroyer); ok {
			d.OnDestroy()
		}
	}
	n.components = nil
	n.disposed = true
	n.ID = 0
	n.Parent = nil
	n.Image = nil
	n.Material = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// nodeSize returns the untransformed size of the node's image.
func nodeSize(n *Node) (w, h float64) {
	if n.Image == nil {
		return 0, 0
	}
	b := n.Image.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}
