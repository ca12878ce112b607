package ecs

import (
	"github.com/phanxgames/fixmath"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// Transform is the component holding an entity's node handle.
var Transform = donburi.NewComponentType[fixmath.Node]()

// NodeDisposed is published when DisposeEntity removes an entity.
type NodeDisposed struct {
	Entity donburi.Entity
	Name   string
}

// NodeDisposedEvent is the Donburi event type for NodeDisposed.
// Subscribe to it in your systems and call ProcessEvents once per tick.
var NodeDisposedEvent = events.NewEventType[NodeDisposed]()

var transformQuery = donburi.NewQuery(filter.Contains(Transform))

// NewEntity creates a node in tree and an entity in w that refers to it.
func NewEntity(w donburi.World, tree *fixmath.Tree, name string) donburi.Entity {
	e := w.Create(Transform)
	Transform.SetValue(w.Entry(e), tree.NewNode(name))
	return e
}

// Attach adds a Transform component for an existing node to entity e.
func Attach(w donburi.World, e donburi.Entity, node fixmath.Node) {
	entry := w.Entry(e)
	if !entry.HasComponent(Transform) {
		entry.AddComponent(Transform)
	}
	Transform.SetValue(entry, node)
}

// NodeOf returns the node of entity e. The second result is false when the
// entity is gone, has no Transform, or its node has been disposed.
func NodeOf(w donburi.World, e donburi.Entity) (fixmath.Node, bool) {
	if !w.Valid(e) {
		return fixmath.Node{}, false
	}
	entry := w.Entry(e)
	if !entry.HasComponent(Transform) {
		return fixmath.Node{}, false
	}
	n := *Transform.Get(entry)
	if n.IsNil() || n.IsDisposed() {
		return fixmath.Node{}, false
	}
	return n, true
}

// Each calls fn for every entity with a live node.
func Each(w donburi.World, fn func(e donburi.Entity, n fixmath.Node)) {
	transformQuery.Each(w, func(entry *donburi.Entry) {
		n := *Transform.Get(entry)
		if n.IsNil() || n.IsDisposed() {
			return
		}
		fn(entry.Entity(), n)
	})
}

// DisposeEntity disposes the entity's node with its descendants, removes
// the entity and publishes NodeDisposed. Descendant nodes owned by other
// entities become stale; those entities are skipped by Each and can be
// collected with Prune.
func DisposeEntity(w donburi.World, e donburi.Entity) {
	if !w.Valid(e) {
		return
	}
	entry := w.Entry(e)
	ev := NodeDisposed{Entity: e}
	if entry.HasComponent(Transform) {
		n := *Transform.Get(entry)
		if !n.IsNil() && !n.IsDisposed() {
			ev.Name = n.Name()
			n.Dispose()
		}
	}
	w.Remove(e)
	NodeDisposedEvent.Publish(w, ev)
}

// Prune removes every entity whose node has been disposed and returns how
// many were removed.
func Prune(w donburi.World) int {
	var stale []donburi.Entity
	transformQuery.Each(w, func(entry *donburi.Entry) {
		if n := *Transform.Get(entry); n.IsNil() || n.IsDisposed() {
			stale = append(stale, entry.Entity())
		}
	})
	for _, e := range stale {
		w.Remove(e)
		NodeDisposedEvent.Publish(w, NodeDisposed{Entity: e})
	}
	return len(stale)
}
