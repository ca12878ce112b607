// Package fixmath provides deterministic fixed-point 2D spatial math for
// simulations that must produce bit-identical results on every platform,
// such as networked lockstep games.
//
// All arithmetic runs on the 16.16 scalar in package
// [github.com/phanxgames/fixmath/fixed]; no floating point is used on the
// simulation path.
//
// # Value types
//
// [Angle] is a rotation in degrees, always normalized to [0, 360). [Vec2]
// is a 2D vector. [Affine2x3] is a 2D affine matrix (linear part plus
// translation column) and [Affine3x3] a full homogeneous matrix, used for
// inverses.
//
//	m := fixmath.FromTRS(fixmath.V2i(10, 0), fixmath.AngleFromInt(90), fixmath.Vec2One)
//	p := m.MultiplyPoint(fixmath.V2i(1, 0)) // (10, 1)
//
// # Transform hierarchy
//
// A [Tree] owns transform nodes. Each [Node] handle carries a local position,
// angle and scale plus a parent; world-space values are derived and cached.
//
//	tree := fixmath.NewTree()
//	ship := tree.NewNode("ship")
//	turret := tree.NewNode("turret")
//	_ = ship.AddChild(turret)
//	turret.SetLocalPosition(fixmath.V2i(2, 0))
//	ship.SetLocalAngle(fixmath.AngleFromInt(90))
//	pos := turret.WorldPosition() // (0, 2)
//
// Mutations only mark caches dirty, on the node and all its descendants.
// Reads recompute a cached value when its dirty bit is set, pulling the
// parent chain as needed, then clear the bit. Recomputation is counted in
// [Tree.Stats].
//
// Handles are generational: once a node is disposed, every handle to it
// panics on use. The zero [Node] means "no node".
//
// # Precision and degenerate input
//
// Division by zero saturates to [fixed.MaxValue] (or [fixed.MinValue]).
// Normalizing a zero vector returns the zero vector. Inverting a singular
// matrix yields deterministic saturated values; use InverseChecked to detect
// it.
//
// # Diagnostics
//
// fixmath is silent until [SetLogger] installs a [log/slog] logger. Two
// things write to it:
//
//   - [Tree.LogStats] logs the recompute counters at debug level. Call it
//     once per tick after [Tree.ResetStats] to see how much of the tree a
//     tick touched.
//   - With [Tree.SetDebug] on, linking a node deeper than 32 levels or
//     under a parent with more than 1000 children, and inverting a
//     singular world matrix, log warnings naming the node.
//
// # Extras
//
// [TweenGroup] animates node state with [gween] easing functions. The ecs
// subpackage stores node handles in a [Donburi] world.
//
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package fixmath
