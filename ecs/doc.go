// Package ecs stores fixmath transform nodes in a [Donburi] world.
//
// Each entity created with [NewEntity] carries a [Transform] component
// holding a [fixmath.Node] handle. The node itself lives in a
// [fixmath.Tree]; the world only stores the handle, so hierarchy and dirty
// propagation stay in the tree.
//
// Usage:
//
//	tree := fixmath.NewTree()
//	world := donburi.NewWorld()
//	e := ecs.NewEntity(world, tree, "ship")
//	node, _ := ecs.NodeOf(world, e)
//	node.SetLocalPosition(fixmath.V2i(10, 0))
//
// [DisposeEntity] disposes the node, removes the entity and publishes a
// [NodeDisposed] event. Process it with [NodeDisposedEvent].ProcessEvents.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
