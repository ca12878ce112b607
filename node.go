package fixmath

import (
	"fmt"
	"slices"
)

// noParent marks a root slot.
const noParent = ^uint32(0)

// Tree owns a forest of transform nodes stored in a flat arena. Nodes are
// addressed by [Node] handles; the tree recycles the slots of disposed nodes.
//
// A Tree is not safe for concurrent use. Reads mutate caches, so even
// getters must be serialized by the caller.
type Tree struct {
	slots []slot
	free  []uint32
	live  int

	stats       Stats
	debug       bool
	legacyScale bool
}

// slot is the storage for one node.
type slot struct {
	name  string
	gen   uint32
	alive bool

	// Hierarchy
	parent   uint32
	children []uint32

	// Local state
	localPosition Vec2
	localAngle    Angle
	localScale    Vec2

	// Caches, valid when the matching dirty bit is clear
	localRight   Vec2
	localToWorld Affine2x3
	worldToLocal Affine3x3
	angle        Angle
	right        Vec2
	scale        Vec2

	dirty dirtyFlags
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// NewNode creates a detached node with an identity local transform.
func (t *Tree) NewNode(name string) Node {
	var idx, gen uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
		gen = t.slots[idx].gen
	} else {
		idx = uint32(len(t.slots))
		t.slots = append(t.slots, slot{})
		gen = 1
	}
	t.slots[idx] = slot{
		name:         name,
		gen:          gen,
		alive:        true,
		parent:       noParent,
		localScale:   Vec2One,
		localRight:   Vec2Right,
		localToWorld: Identity2x3(),
		worldToLocal: Identity3x3(),
		right:        Vec2Right,
		scale:        Vec2One,
		dirty:        dirtyAllWorld,
	}
	t.live++
	return Node{tree: t, idx: idx, gen: gen}
}

// Len returns the number of live nodes.
func (t *Tree) Len() int {
	return t.live
}

// Roots returns every live node without a parent, in creation-slot order.
func (t *Tree) Roots() []Node {
	var roots []Node
	for i := range t.slots {
		s := &t.slots[i]
		if s.alive && s.parent == noParent {
			roots = append(roots, Node{tree: t, idx: uint32(i), gen: s.gen})
		}
	}
	return roots
}

// SetLegacyScale selects how WorldScale is derived from the world matrix.
// By default the Y scale is the length of column 1 (the transformed Y axis).
// In legacy mode it is the length of column 2 (the translation), which
// reproduces older saved results. Switching marks every node's scale dirty.
func (t *Tree) SetLegacyScale(legacy bool) {
	if t.legacyScale == legacy {
		return
	}
	t.legacyScale = legacy
	for i := range t.slots {
		t.slots[i].dirty |= dirtyScale
	}
}

// LegacyScale reports whether legacy scale mode is enabled.
func (t *Tree) LegacyScale() bool {
	return t.legacyScale
}

func (t *Tree) handle(i uint32) Node {
	return Node{tree: t, idx: i, gen: t.slots[i].gen}
}

// --- Node ---

// Node is a handle to a transform node in a [Tree]. Handles are small values
// and compare equal when they refer to the same node. The zero Node refers
// to no node.
//
// Calling a method on a handle whose node has been disposed panics.
type Node struct {
	tree *Tree
	idx  uint32
	gen  uint32
}

// slot returns the node storage, panicking on a nil or stale handle. The
// pointer is valid until the next NewNode call.
func (n Node) slot() *slot {
	if n.tree == nil {
		panic("fixmath: use of nil node")
	}
	s := &n.tree.slots[n.idx]
	if !s.alive || s.gen != n.gen {
		panic("fixmath: use of disposed node")
	}
	return s
}

// IsNil reports whether n is the zero Node.
func (n Node) IsNil() bool {
	return n.tree == nil
}

// IsDisposed reports whether n once referred to a node that has since been
// disposed.
func (n Node) IsDisposed() bool {
	if n.tree == nil {
		return false
	}
	s := &n.tree.slots[n.idx]
	return !s.alive || s.gen != n.gen
}

// Tree returns the tree that owns the node.
func (n Node) Tree() *Tree {
	return n.tree
}

// Name returns the node's name.
func (n Node) Name() string {
	return n.slot().name
}

// SetName renames the node.
func (n Node) SetName(name string) {
	n.slot().name = name
}

func (n Node) String() string {
	switch {
	case n.tree == nil:
		return "Node(nil)"
	case n.IsDisposed():
		return "Node(disposed)"
	}
	return fmt.Sprintf("Node(%q)", n.tree.slots[n.idx].name)
}

// --- Tree manipulation ---

// Parent returns the parent node, or the zero Node for a root.
func (n Node) Parent() Node {
	s := n.slot()
	if s.parent == noParent {
		return Node{}
	}
	return n.tree.handle(s.parent)
}

// Children returns a fresh slice of the node's children in order.
func (n Node) Children() []Node {
	s := n.slot()
	out := make([]Node, len(s.children))
	for i, c := range s.children {
		out[i] = n.tree.handle(c)
	}
	return out
}

// NumChildren returns the number of children.
func (n Node) NumChildren() int {
	return len(n.slot().children)
}

// ChildAt returns the child at the given index.
func (n Node) ChildAt(index int) Node {
	s := n.slot()
	if index < 0 || index >= len(s.children) {
		panic("fixmath: child index out of range")
	}
	return n.tree.handle(s.children[index])
}

// FindChild returns the first direct child matching pred.
func (n Node) FindChild(pred func(Node) bool) (Node, bool) {
	for _, c := range n.slot().children {
		h := n.tree.handle(c)
		if pred(h) {
			return h, true
		}
	}
	return Node{}, false
}

// Depth returns the number of ancestors; a root has depth 0.
func (n Node) Depth() int {
	n.slot()
	return n.tree.depth(n.idx)
}

// IsAncestorOf reports whether n is o or one of o's ancestors.
func (n Node) IsAncestorOf(o Node) bool {
	n.slot()
	o.slot()
	return n.tree == o.tree && n.tree.isAncestor(n.idx, o.idx)
}

// AddChild appends child to this node's children. A child with another
// parent is detached from it first; a node that is already a child is left
// in place. The child's world state is marked dirty.
func (n Node) AddChild(child Node) error {
	return n.insertChild("add child", child, -1)
}

// AddChildAt inserts child at the given index. A node that is already a
// child is only moved among its siblings and keeps its caches. Panics if
// index is out of range.
func (n Node) AddChildAt(child Node, index int) error {
	return n.insertChild("add child", child, index)
}

// SetParent attaches the node under p, or detaches it when p is the zero
// Node. A no-op when p is already the parent.
func (n Node) SetParent(p Node) error {
	n.slot()
	if p.tree == nil {
		n.RemoveFromParent()
		return nil
	}
	return p.insertChild("set parent", n, -1)
}

func (n Node) insertChild(op string, child Node, index int) error {
	ps := n.slot()
	if err := n.checkLink(op, child); err != nil {
		return err
	}
	cs := child.slot()
	t := n.tree
	already := cs.parent == n.idx
	if already && index < 0 {
		return nil
	}
	if t.isAncestor(child.idx, n.idx) {
		return fmt.Errorf("%s %q to %q: %w", op, cs.name, ps.name, ErrCycle)
	}
	limit := len(ps.children)
	if already {
		limit--
	}
	if index < 0 {
		index = limit
	} else if index > limit {
		panic("fixmath: child index out of range")
	}
	if already {
		// Reordering siblings leaves every world value unchanged.
		if old := slices.Index(ps.children, child.idx); old != index {
			ps.children = slices.Delete(ps.children, old, old+1)
			ps.children = slices.Insert(ps.children, index, child.idx)
		}
		return nil
	}

	t.detach(child.idx)
	ps.children = slices.Insert(ps.children, index, child.idx)
	cs.parent = n.idx
	t.markSubtree(child.idx, dirtyAllWorld)
	if t.debug {
		t.debugCheckTreeDepth(child.idx)
		t.debugCheckChildCount(n.idx)
	}
	return nil
}

// RemoveChild detaches child from this node. Returns ErrNotChild if child
// has a different parent.
func (n Node) RemoveChild(child Node) error {
	ps := n.slot()
	if err := n.checkLink("remove child", child); err != nil {
		return err
	}
	cs := child.slot()
	if cs.parent != n.idx {
		return fmt.Errorf("remove child %q from %q: %w", cs.name, ps.name, ErrNotChild)
	}
	n.tree.detach(child.idx)
	n.tree.markSubtree(child.idx, dirtyAllWorld)
	return nil
}

// RemoveChildAt removes and returns the child at the given index.
func (n Node) RemoveChildAt(index int) Node {
	child := n.ChildAt(index)
	n.tree.detach(child.idx)
	n.tree.markSubtree(child.idx, dirtyAllWorld)
	return child
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n Node) RemoveFromParent() {
	if n.slot().parent == noParent {
		return
	}
	n.tree.detach(n.idx)
	n.tree.markSubtree(n.idx, dirtyAllWorld)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n Node) RemoveChildren() {
	s := n.slot()
	t := n.tree
	for _, c := range s.children {
		t.slots[c].parent = noParent
		t.markSubtree(c, dirtyAllWorld)
	}
	s.children = s.children[:0]
}

// SetChildIndex moves child to a new index among its siblings.
func (n Node) SetChildIndex(child Node, index int) error {
	ps := n.slot()
	cs := child.slot()
	if child.tree != n.tree || cs.parent != n.idx {
		return fmt.Errorf("set child index of %q in %q: %w", cs.name, ps.name, ErrNotChild)
	}
	if index < 0 || index >= len(ps.children) {
		panic("fixmath: child index out of range")
	}
	old := slices.Index(ps.children, child.idx)
	if old == index {
		return nil
	}
	ps.children = slices.Delete(ps.children, old, old+1)
	ps.children = slices.Insert(ps.children, index, child.idx)
	return nil
}

// --- Disposal ---

// Dispose detaches the node from its parent and disposes it together with
// every descendant. Handles to any of them become stale. Disposing an
// already disposed node is a no-op.
func (n Node) Dispose() {
	if n.tree == nil || n.IsDisposed() {
		return
	}
	n.tree.detach(n.idx)
	n.tree.dispose(n.idx)
}

func (t *Tree) dispose(i uint32) {
	children := t.slots[i].children
	for _, c := range children {
		t.slots[c].parent = noParent
		t.dispose(c)
	}
	t.slots[i] = slot{gen: t.slots[i].gen + 1, parent: noParent}
	t.free = append(t.free, i)
	t.live--
}

// --- Helpers ---

func (n Node) checkLink(op string, other Node) error {
	if other.tree == nil {
		return fmt.Errorf("%s: %w", op, ErrNilNode)
	}
	if other.tree != n.tree {
		return fmt.Errorf("%s %q: %w", op, other.Name(), ErrForeignTree)
	}
	return nil
}

// isAncestor reports whether candidate is node or one of its ancestors.
func (t *Tree) isAncestor(candidate, node uint32) bool {
	for p := node; p != noParent; p = t.slots[p].parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// detach unlinks slot i from its parent without marking anything dirty.
func (t *Tree) detach(i uint32) {
	s := &t.slots[i]
	if s.parent == noParent {
		return
	}
	ps := &t.slots[s.parent]
	if k := slices.Index(ps.children, i); k >= 0 {
		ps.children = slices.Delete(ps.children, k, k+1)
	}
	s.parent = noParent
}

func (t *Tree) depth(i uint32) int {
	d := 0
	for p := t.slots[i].parent; p != noParent; p = t.slots[p].parent {
		d++
	}
	return d
}
