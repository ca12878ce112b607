package fixmath

import "github.com/phanxgames/fixmath/fixed"

// dirtyFlags marks which cached values of a node must be recomputed.
type dirtyFlags uint8

const (
	dirtyLocalRight dirtyFlags = 1 << iota
	dirtyLocalToWorld
	dirtyWorldToLocal
	dirtyAngle
	dirtyRight
	dirtyScale

	dirtyMatrix   = dirtyLocalToWorld | dirtyWorldToLocal
	dirtyAllWorld = dirtyLocalToWorld | dirtyWorldToLocal | dirtyAngle | dirtyRight | dirtyScale
)

// markSubtreeWith sets self on node i and at least desc on every
// descendant.
func (t *Tree) markSubtreeWith(i uint32, self, desc dirtyFlags) {
	s := &t.slots[i]
	s.dirty |= self
	down := desc | s.dirty&dirtyAllWorld
	for _, c := range s.children {
		t.propagate(c, down)
	}
}

// markSubtree sets flags on node i and every descendant.
func (t *Tree) markSubtree(i uint32, flags dirtyFlags) {
	t.markSubtreeWith(i, flags, flags)
}

// propagate sets flags on node i and its descendants.
//
// A node always hands its whole world dirty set down, and any read below a
// node with LocalToWorld dirty cleans that ancestor first. So while a node
// has LocalToWorld dirty, each child's bits cover the node's world bits,
// and a child that already has every flag can be skipped with its subtree.
func (t *Tree) propagate(i uint32, flags dirtyFlags) {
	s := &t.slots[i]
	if s.dirty&flags == flags {
		return
	}
	s.dirty |= flags
	down := s.dirty & dirtyAllWorld
	for _, c := range s.children {
		t.propagate(c, down)
	}
}

// --- Recomputation ---

func (t *Tree) localRight(i uint32) Vec2 {
	s := &t.slots[i]
	if s.dirty&dirtyLocalRight != 0 {
		s.localRight = s.localAngle.Right()
		s.dirty &^= dirtyLocalRight
		t.stats.LocalRight++
	}
	return s.localRight
}

func (t *Tree) localToWorld(i uint32) Affine2x3 {
	s := &t.slots[i]
	if s.dirty&dirtyLocalToWorld == 0 {
		return s.localToWorld
	}
	if s.parent == noParent {
		t.syncRoot(i)
		s.localToWorld = fromTRS(s.localPosition, s.localRight, s.localScale)
	} else {
		p := t.localToWorld(s.parent)
		s.localToWorld = p.Mul(fromTRS(s.localPosition, t.localRight(i), s.localScale))
	}
	s.dirty &^= dirtyLocalToWorld
	t.stats.LocalToWorld++
	return s.localToWorld
}

// syncRoot copies a root's local rotation and scale into its world caches.
func (t *Tree) syncRoot(i uint32) {
	r := t.localRight(i)
	s := &t.slots[i]
	s.right = r
	s.angle = s.localAngle
	s.scale = s.localScale
	s.dirty &^= dirtyAngle | dirtyRight | dirtyScale
}

func (t *Tree) worldToLocal(i uint32) Affine3x3 {
	s := &t.slots[i]
	if s.dirty&dirtyWorldToLocal != 0 {
		m := t.localToWorld(i)
		s.worldToLocal = m.Inverse()
		s.dirty &^= dirtyWorldToLocal
		t.stats.WorldToLocal++
		if t.debug {
			t.debugCheckSingular(i, m)
		}
	}
	return s.worldToLocal
}

func (t *Tree) right(i uint32) Vec2 {
	s := &t.slots[i]
	if s.dirty&dirtyRight != 0 {
		if s.parent == noParent {
			t.syncRoot(i)
		} else {
			s.right = t.localToWorld(i).Column0().Normalize()
			s.dirty &^= dirtyRight
			t.stats.Right++
		}
	}
	return s.right
}

func (t *Tree) angle(i uint32) Angle {
	s := &t.slots[i]
	if s.dirty&dirtyAngle != 0 {
		if s.parent == noParent {
			t.syncRoot(i)
		} else {
			s.angle = AngleOf(t.right(i))
			s.dirty &^= dirtyAngle | dirtyRight
			t.stats.Angle++
		}
	}
	return s.angle
}

func (t *Tree) scale(i uint32) Vec2 {
	s := &t.slots[i]
	if s.dirty&dirtyScale != 0 {
		if s.parent == noParent {
			t.syncRoot(i)
		} else {
			m := t.localToWorld(i)
			y := m.Column1()
			if t.legacyScale {
				y = m.Column2()
			}
			s.scale = Vec2{m.Column0().Length(), y.Length()}
			s.dirty &^= dirtyScale
			t.stats.Scale++
		}
	}
	return s.scale
}

// parentAngle returns the world angle of i's parent, zero for a root.
func (t *Tree) parentAngle(i uint32) Angle {
	if p := t.slots[i].parent; p != noParent {
		return t.angle(p)
	}
	return Angle{}
}

// positionFlags are the bits a translation change invalidates.
func (t *Tree) positionFlags() dirtyFlags {
	if t.legacyScale {
		return dirtyMatrix | dirtyScale
	}
	return dirtyMatrix
}

// --- Local state ---

// LocalPosition returns the position relative to the parent.
func (n Node) LocalPosition() Vec2 { return n.slot().localPosition }

// LocalAngle returns the rotation relative to the parent.
func (n Node) LocalAngle() Angle { return n.slot().localAngle }

// LocalScale returns the scale relative to the parent.
func (n Node) LocalScale() Vec2 { return n.slot().localScale }

// LocalRight returns the unit X axis of the local rotation.
func (n Node) LocalRight() Vec2 {
	n.slot()
	return n.tree.localRight(n.idx)
}

// LocalUp returns the unit Y axis of the local rotation.
func (n Node) LocalUp() Vec2 {
	return n.LocalRight().Perp()
}

// SetLocalPosition sets the position relative to the parent.
func (n Node) SetLocalPosition(v Vec2) {
	s := n.slot()
	if s.localPosition == v {
		return
	}
	s.localPosition = v
	n.tree.markSubtree(n.idx, n.tree.positionFlags())
}

// SetLocalAngle sets the rotation relative to the parent.
func (n Node) SetLocalAngle(a Angle) {
	s := n.slot()
	if s.localAngle == a {
		return
	}
	s.localAngle = a
	n.tree.markSubtreeWith(n.idx, dirtyLocalRight|dirtyAllWorld, dirtyAllWorld)
}

// SetLocalScale sets the scale relative to the parent.
func (n Node) SetLocalScale(v Vec2) {
	s := n.slot()
	if s.localScale == v {
		return
	}
	s.localScale = v
	n.tree.markSubtree(n.idx, dirtyAllWorld)
}

// SetLocalRight rotates the node so its local X axis points along dir.
// dir is normalized; a zero dir means angle 0.
func (n Node) SetLocalRight(dir Vec2) {
	n.slot()
	n.setLocalRight(dir.Normalize())
}

// SetLocalUp rotates the node so its local Y axis points along dir.
func (n Node) SetLocalUp(dir Vec2) {
	n.slot()
	up := dir.Normalize()
	n.setLocalRight(Vec2{up.Y, -up.X})
}

func (n Node) setLocalRight(r Vec2) {
	if r.IsZero() {
		r = Vec2Right
	}
	t := n.tree
	if t.localRight(n.idx) == r {
		return
	}
	s := &t.slots[n.idx]
	s.localRight = r
	s.localAngle = AngleOf(r)
	s.dirty &^= dirtyLocalRight
	t.markSubtree(n.idx, dirtyAllWorld)
}

// --- World state ---

// WorldPosition returns the position in world space.
func (n Node) WorldPosition() Vec2 {
	n.slot()
	return n.tree.localToWorld(n.idx).Column2()
}

// WorldAngle returns the rotation in world space.
func (n Node) WorldAngle() Angle {
	n.slot()
	return n.tree.angle(n.idx)
}

// WorldRight returns the unit X axis in world space.
func (n Node) WorldRight() Vec2 {
	n.slot()
	return n.tree.right(n.idx)
}

// WorldUp returns the unit Y axis in world space, perpendicular to
// WorldRight.
func (n Node) WorldUp() Vec2 {
	return n.WorldRight().Perp()
}

// WorldScale returns the lengths of the world matrix axes. See
// [Tree.SetLegacyScale].
func (n Node) WorldScale() Vec2 {
	n.slot()
	return n.tree.scale(n.idx)
}

// LocalToWorld returns the matrix mapping local space to world space.
func (n Node) LocalToWorld() Affine2x3 {
	n.slot()
	return n.tree.localToWorld(n.idx)
}

// WorldToLocal returns the matrix mapping world space to local space.
func (n Node) WorldToLocal() Affine3x3 {
	n.slot()
	return n.tree.worldToLocal(n.idx)
}

// SetWorldPosition moves the node to v in world space by solving for the
// local position through the parent's inverse world matrix.
func (n Node) SetWorldPosition(v Vec2) {
	n.slot()
	t, i := n.tree, n.idx
	m := t.localToWorld(i)
	if m.Column2() == v {
		return
	}
	s := &t.slots[i]
	s.localToWorld.SetColumn2(v)
	if s.parent == noParent {
		s.localPosition = v
	} else {
		s.localPosition = t.worldToLocal(s.parent).MultiplyPoint(v)
	}
	self := dirtyWorldToLocal
	if t.legacyScale {
		self |= dirtyScale
	}
	t.markSubtreeWith(i, self, t.positionFlags())
}

// SetWorldAngle rotates the node to a in world space.
func (n Node) SetWorldAngle(a Angle) {
	n.slot()
	t, i := n.tree, n.idx
	if t.angle(i) == a {
		return
	}
	local := a.Sub(t.parentAngle(i))
	s := &t.slots[i]
	s.angle = a
	s.localAngle = local
	t.markSubtreeWith(i, dirtyLocalRight|dirtyMatrix|dirtyRight|dirtyScale, dirtyAllWorld)
	s.dirty &^= dirtyAngle
}

// SetWorldRight rotates the node so its world X axis points along dir.
//
// The normalized dir is cached as the world right, and on a root also as
// the local right, so later reads return it exactly. A fresh tree built
// from the resulting local angle may differ from it by a few ulp. Reading
// world values never changes what later reads return.
func (n Node) SetWorldRight(dir Vec2) {
	n.slot()
	n.setWorldRight(dir.Normalize())
}

// SetWorldUp rotates the node so its world Y axis points along dir.
func (n Node) SetWorldUp(dir Vec2) {
	n.slot()
	up := dir.Normalize()
	n.setWorldRight(Vec2{up.Y, -up.X})
}

func (n Node) setWorldRight(r Vec2) {
	if r.IsZero() {
		r = Vec2Right
	}
	t, i := n.tree, n.idx
	if t.right(i) == r {
		return
	}
	a := AngleOf(r)
	local := a.Sub(t.parentAngle(i))
	s := &t.slots[i]
	s.right = r
	s.angle = a
	s.localAngle = local
	self := dirtyLocalRight | dirtyMatrix | dirtyScale
	if s.parent == noParent {
		// A root's world right is its local right; syncRoot copies it back.
		s.localRight = r
		self &^= dirtyLocalRight
	}
	t.markSubtreeWith(i, self, dirtyAllWorld)
	s.dirty &^= dirtyAngle | dirtyRight
}

// --- Coordinate conversion ---

// TransformPoint maps a local point to world space.
func (n Node) TransformPoint(p Vec2) Vec2 {
	return n.LocalToWorld().MultiplyPoint(p)
}

// TransformVector maps a local vector to world space, ignoring translation.
func (n Node) TransformVector(v Vec2) Vec2 {
	return n.LocalToWorld().MultiplyVector(v)
}

// TransformDirection rotates a local direction into world space. Scale is
// ignored and the result has unit length.
func (n Node) TransformDirection(dir Vec2) Vec2 {
	r := n.WorldRight()
	d := dir.Normalize()
	return Vec2{
		fixed.Dot2(r.X, -r.Y, d.X, d.Y),
		fixed.Dot2(r.Y, r.X, d.X, d.Y),
	}
}

// InverseTransformPoint maps a world point to local space.
func (n Node) InverseTransformPoint(p Vec2) Vec2 {
	return n.WorldToLocal().MultiplyPoint(p)
}

// InverseTransformVector maps a world vector to local space, ignoring
// translation.
func (n Node) InverseTransformVector(v Vec2) Vec2 {
	return n.WorldToLocal().MultiplyVector(v)
}

// InverseTransformDirection rotates a world direction into local space.
// Scale is ignored and the result has unit length.
func (n Node) InverseTransformDirection(dir Vec2) Vec2 {
	r := n.WorldRight()
	d := dir.Normalize()
	inv := fixed.Rcp(r.LengthSqr())
	c, s := fixed.Mul(r.X, inv), fixed.Mul(r.Y, inv)
	return Vec2{
		fixed.Dot2(c, s, d.X, d.Y),
		fixed.Dot2(c, -s, d.Y, d.X),
	}
}
