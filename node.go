package sprig

import "sync/atomic"

// --- ID counter ---

// nodeIDCounter is atomic so nodes can be built off the frame goroutine and
// handed to Scene.Do.
var nodeIDCounter atomic.Uint32

func nextNodeID() uint32 {
	return nodeIDCounter.Add(1)
}

// --- Node ---

// Node is the fundamental scene graph element. It owns a local transform, an
// ordered list of children, and an optional Drawable that renders the node
// itself. Children are drawn after their parent, in insertion order, so later
// children appear on top.
//
// A node has at most one parent. The parent link is a plain back-reference;
// children are owned exclusively by their parent and disposed with it.
type Node struct {
	Transformable

	// Identity
	ID   uint32
	Name string

	// Drawable is the rendering hook. Nil for pure containers.
	Drawable Drawable

	// Visible controls whether the node and its subtree are drawn.
	Visible bool

	// Metadata
	UserData any

	// Hierarchy
	parent   *Node
	children []*Node

	// custom overrides the Transformable when hasCustom is set.
	custom    Transform
	hasCustom bool

	disposed bool
}

// NewNode creates a node that renders d. d may be nil.
func NewNode(name string, d Drawable) *Node {
	return &Node{
		Transformable: NewTransformable(),
		ID:            nextNodeID(),
		Name:          name,
		Drawable:      d,
		Visible:       true,
	}
}

// NewContainer creates a node with no visual representation.
func NewContainer(name string) *Node {
	return NewNode(name, nil)
}

// --- Local transform ---

// LocalTransform returns the node's transform relative to its parent: the
// custom transform if one is set, otherwise the embedded Transformable's.
func (n *Node) LocalTransform() Transform {
	if n.hasCustom {
		return n.custom
	}
	return n.Transformable.Transform()
}

// SetLocalTransform replaces the decomposed position/rotation/scale/origin
// with an explicit matrix until ClearLocalTransform is called.
func (n *Node) SetLocalTransform(t Transform) {
	n.custom = t
	n.hasCustom = true
}

// ClearLocalTransform switches back to the embedded Transformable.
func (n *Node) ClearLocalTransform() {
	n.custom = Transform{}
	n.hasCustom = false
}

// HasLocalTransform reports whether a custom matrix is in effect.
func (n *Node) HasLocalTransform() bool {
	return n.hasCustom
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
//
// It fails with an *OwnershipError if child already has a parent, ErrCycle if
// child is n or one of its ancestors, and ErrNilNode / ErrDisposed for
// unusable nodes. Use Reparent to move a node between parents.
func (n *Node) AddChild(child *Node) error {
	return n.AddChildAt(child, len(n.children))
}

// AddChildAt inserts child at the given index. Same checks as AddChild, plus
// ErrIndexOutOfRange.
func (n *Node) AddChildAt(child *Node, index int) error {
	if err := n.checkAttach(child); err != nil {
		return err
	}
	if index < 0 || index > len(n.children) {
		return ErrIndexOutOfRange
	}
	child.parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	if globalDebug.Load() {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
	return nil
}

func (n *Node) checkAttach(child *Node) error {
	if n == nil || child == nil {
		return ErrNilNode
	}
	if n.disposed || child.disposed {
		return ErrDisposed
	}
	if isAncestor(child, n) {
		return ErrCycle
	}
	if child.parent != nil {
		return &OwnershipError{Child: child, Owner: child.parent, Target: n}
	}
	return nil
}

// Reparent detaches n from its current parent (if any) and appends it to
// newParent. On failure n stays where it was.
func (n *Node) Reparent(newParent *Node) error {
	if n == nil || newParent == nil {
		return ErrNilNode
	}
	if n.parent == newParent {
		return nil
	}
	old := n.parent
	n.parent = nil
	if err := newParent.checkAttach(n); err != nil {
		n.parent = old
		return err
	}
	if old != nil {
		old.removeChildByPtr(n)
	}
	return newParent.AddChild(n)
}

// RemoveChild detaches child from this node. The child is not disposed.
func (n *Node) RemoveChild(child *Node) error {
	if child == nil {
		return ErrNilNode
	}
	if child.parent != n {
		return ErrNotChild
	}
	n.removeChildByPtr(child)
	child.parent = nil
	return nil
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) (*Node, error) {
	if index < 0 || index >= len(n.children) {
		return nil, ErrIndexOutOfRange
	}
	child := n.children[index]
	copy(n.children[index:], n.children[index+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.parent = nil
	return child, nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	_ = n.parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for i, child := range n.children {
		child.parent = nil
		n.children[i] = nil
	}
	n.children = n.children[:0]
}

// Parent returns the owning node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Root returns the topmost ancestor (n itself when detached).
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Depth returns the number of ancestors.
func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index. Panics when out of range.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Walk visits n and its descendants depth-first in draw order. Returning false
// from fn skips that node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, child := range n.children {
		child.walk(fn, depth+1)
	}
}

// Find returns the first node named name in n's subtree (including n), or nil.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(c *Node, _ int) bool {
		if found != nil {
			return false
		}
		if c.Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}

// --- Drawing ---

// Draw renders the subtree rooted at n. The node's local transform is
// combined with parent, the Drawable (if any) is drawn with the result, and
// then every child is drawn with that same combined transform, in insertion
// order.
//
// The tree must not be mutated while Draw is running.
func (n *Node) Draw(target RenderTarget, parent Transform) {
	if !n.Visible {
		return
	}
	combined := parent.Combine(n.LocalTransform())
	if globalDebug.Load() {
		debugCheckTransform(n, combined)
	}
	n.drawContent(target, combined)
}

// --- Coordinates and bounds ---

// GlobalTransform returns the product of every ancestor's local transform and
// this node's own, from the root down.
func (n *Node) GlobalTransform() Transform {
	t := n.LocalTransform()
	for p := n.parent; p != nil; p = p.parent {
		t = p.LocalTransform().Combine(t)
	}
	return t
}

// LocalBounds returns the Drawable's bounds before any transform. Containers
// report an empty rectangle.
func (n *Node) LocalBounds() Rect {
	if n.Drawable == nil {
		return Rect{}
	}
	return n.Drawable.LocalBounds()
}

// GlobalBounds returns the axis-aligned box enclosing LocalBounds after the
// full root-to-node transform chain is applied.
func (n *Node) GlobalBounds() Rect {
	return n.GlobalTransform().TransformRect(n.LocalBounds())
}

// LocalToWorld converts a local-space point to root space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return n.GlobalTransform().TransformPoint(lx, ly)
}

// WorldToLocal converts a root-space point to this node's local space. Fails
// with ErrSingularTransform when any scale in the chain is zero.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64, err error) {
	inv, err := n.GlobalTransform().Inverse()
	if err != nil {
		return 0, 0, err
	}
	lx, ly = inv.TransformPoint(wx, wy)
	return lx, ly, nil
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.parent = nil
		child.dispose()
	}
	n.children = nil
	n.parent = nil
	n.Drawable = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
