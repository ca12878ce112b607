package fixmath

import (
	"github.com/phanxgames/fixmath/fixed"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 2 fixed-point components of a node's local state.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenAngle) and call Update(dt) each frame. Intermediate values are
// quantized to fixed point and written through the node setters, so dirty
// propagation happens as for any other mutation. When the group finishes the
// node holds the exact fixed-point target. If the target node is disposed,
// the group stops immediately.
//
// Easing runs in float32, so intermediate frames are presentation only and
// must not feed lockstep state; only the final value is exact.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	to     [2]fixed.F32
	apply  func(v [2]fixed.F32)
	target Node
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target node. If the target node has been disposed, Done is set to true and
// no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target.IsNil() || g.target.IsDisposed() {
		g.Done = true
		return
	}

	var vals [2]fixed.F32
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		if finished {
			vals[i] = g.to[i]
		} else {
			vals[i] = fixed.FromFloat32(val)
			allDone = false
		}
	}
	g.Done = allDone
	g.apply(vals)
}

// TweenPosition creates a TweenGroup that animates the node's local position
// to the given target over duration seconds using the easing function.
func TweenPosition(node Node, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := node.LocalPosition()
	g := newTween2(node, from, to, duration, fn)
	g.apply = func(v [2]fixed.F32) { node.SetLocalPosition(Vec2{v[0], v[1]}) }
	return g
}

// TweenScale creates a TweenGroup that animates the node's local scale to the
// given target over duration seconds using the easing function.
func TweenScale(node Node, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := node.LocalScale()
	g := newTween2(node, from, to, duration, fn)
	g.apply = func(v [2]fixed.F32) { node.SetLocalScale(Vec2{v[0], v[1]}) }
	return g
}

// TweenAngle creates a TweenGroup that rotates the node's local angle to the
// target along the shortest arc over duration seconds.
func TweenAngle(node Node, to Angle, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := node.LocalAngle()
	end := from.Degrees() + from.Delta(to)
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(from.Degrees().Float32(), end.Float32(), duration, fn)
	g.to[0] = end
	g.apply = func(v [2]fixed.F32) { node.SetLocalAngle(AngleFrom(v[0])) }
	return g
}

func newTween2(node Node, from, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node, to: [2]fixed.F32{to.X, to.Y}}
	g.tweens[0] = gween.New(from.X.Float32(), to.X.Float32(), duration, fn)
	g.tweens[1] = gween.New(from.Y.Float32(), to.Y.Float32(), duration, fn)
	return g
}
