package fixmath

import (
	"testing"

	"github.com/phanxgames/fixmath/fixed"
)

func assertFixedNear(t *testing.T, name string, got, want fixed.F32, ulps int32) {
	t.Helper()
	d := int32(got) - int32(want)
	if d < 0 {
		d = -d
	}
	if d > ulps {
		t.Errorf("%s = %v, want %v (off by %d ulp)", name, got, want, d)
	}
}

func assertVecNear(t *testing.T, name string, got, want Vec2, ulps int32) {
	t.Helper()
	assertFixedNear(t, name+".X", got.X, want.X, ulps)
	assertFixedNear(t, name+".Y", got.Y, want.Y, ulps)
}

// chain builds root -> ... -> leaf and returns the nodes in order.
func chain(tree *Tree, names ...string) []Node {
	nodes := make([]Node, len(names))
	for i, name := range names {
		nodes[i] = tree.NewNode(name)
		if i > 0 {
			if err := nodes[i-1].AddChild(nodes[i]); err != nil {
				panic(err)
			}
		}
	}
	return nodes
}

// --- Initial state ---

func TestNewNodeIdentity(t *testing.T) {
	n := NewTree().NewNode("a")
	if got := n.LocalScale(); got != Vec2One {
		t.Errorf("LocalScale = %v", got)
	}
	if got := n.WorldPosition(); got != (Vec2{}) {
		t.Errorf("WorldPosition = %v", got)
	}
	if got := n.WorldAngle(); got != (Angle{}) {
		t.Errorf("WorldAngle = %v", got)
	}
	if got := n.WorldRight(); got != Vec2Right {
		t.Errorf("WorldRight = %v", got)
	}
	if got := n.WorldUp(); got != Vec2Up {
		t.Errorf("WorldUp = %v", got)
	}
	if got := n.WorldScale(); got != Vec2One {
		t.Errorf("WorldScale = %v", got)
	}
	if got := n.LocalToWorld(); got != Identity2x3() {
		t.Errorf("LocalToWorld = %v", got)
	}
	if got := n.WorldToLocal(); got != Identity3x3() {
		t.Errorf("WorldToLocal = %v", got)
	}
}

func TestRootWorldEqualsLocal(t *testing.T) {
	n := NewTree().NewNode("root")
	n.SetLocalPosition(V2i(3, 4))
	n.SetLocalAngle(AngleFromInt(30))
	n.SetLocalScale(V2i(2, 5))
	// Read order must not matter for a root.
	if got := n.WorldScale(); got != V2i(2, 5) {
		t.Errorf("WorldScale = %v", got)
	}
	if got := n.WorldAngle(); got != AngleFromInt(30) {
		t.Errorf("WorldAngle = %v", got)
	}
	if got := n.WorldRight(); got != AngleFromInt(30).Right() {
		t.Errorf("WorldRight = %v", got)
	}
	if got := n.WorldPosition(); got != V2i(3, 4) {
		t.Errorf("WorldPosition = %v", got)
	}
}

// --- Composition ---

func TestChildOfRotatedParent(t *testing.T) {
	tree := NewTree()
	n := chain(tree, "parent", "child")
	n[0].SetLocalPosition(V2i(10, 0))
	n[0].SetLocalAngle(AngleFromInt(90))
	n[1].SetLocalPosition(V2i(2, 0))

	if got := n[1].WorldPosition(); got != V2i(10, 2) {
		t.Errorf("WorldPosition = %v, want (10, 2)", got)
	}
	if got := n[1].WorldAngle(); got != AngleFromInt(90) {
		t.Errorf("WorldAngle = %v, want 90", got)
	}
	if got := n[1].WorldRight(); got != V2i(0, 1) {
		t.Errorf("WorldRight = %v", got)
	}
	if got := n[1].WorldUp(); got != V2i(-1, 0) {
		t.Errorf("WorldUp = %v", got)
	}
	if got := n[1].TransformPoint(V2i(1, 0)); got != V2i(10, 3) {
		t.Errorf("TransformPoint = %v", got)
	}
	if got := n[1].InverseTransformPoint(V2i(10, 3)); got != V2i(1, 0) {
		t.Errorf("InverseTransformPoint = %v", got)
	}
	if got := n[1].TransformVector(V2i(1, 0)); got != V2i(0, 1) {
		t.Errorf("TransformVector = %v", got)
	}
	if got := n[1].InverseTransformVector(V2i(0, 1)); got != V2i(1, 0) {
		t.Errorf("InverseTransformVector = %v", got)
	}
}

func TestAnglesAccumulate(t *testing.T) {
	tree := NewTree()
	n := chain(tree, "a", "b", "c")
	n[0].SetLocalAngle(AngleFromInt(90))
	n[1].SetLocalAngle(AngleFromInt(90))
	n[2].SetLocalAngle(AngleFromInt(90))
	if got := n[2].WorldAngle(); got != AngleFromInt(270) {
		t.Errorf("WorldAngle = %v, want 270", got)
	}
	n[2].SetLocalAngle(AngleFromInt(180))
	if got := n[2].WorldAngle(); got != AngleFromInt(0) {
		t.Errorf("WorldAngle = %v, want 0", got)
	}
}

func TestWorldScale(t *testing.T) {
	tree := NewTree()
	n := chain(tree, "parent", "child")
	n[0].SetLocalScale(V2i(2, 2))
	n[1].SetLocalPosition(V2i(3, 0))
	if got := n[1].WorldPosition(); got != V2i(6, 0) {
		t.Errorf("WorldPosition = %v", got)
	}
	if got := n[1].WorldScale(); got != V2i(2, 2) {
		t.Errorf("WorldScale = %v, want (2, 2)", got)
	}

	tree.SetLegacyScale(true)
	if !tree.LegacyScale() {
		t.Fatal("LegacyScale should be true")
	}
	if got := n[1].WorldScale(); got != V2i(2, 6) {
		t.Errorf("legacy WorldScale = %v, want (2, 6)", got)
	}
	// In legacy mode a move changes the derived scale.
	n[1].SetLocalPosition(V2i(4, 0))
	if got := n[1].WorldScale(); got != V2i(2, 8) {
		t.Errorf("legacy WorldScale after move = %v, want (2, 8)", got)
	}
	n[1].SetWorldPosition(V2i(0, 0))
	if got := n[1].WorldScale(); got != V2i(2, 0) {
		t.Errorf("legacy WorldScale at origin = %v, want (2, 0)", got)
	}

	tree.SetLegacyScale(false)
	if got := n[1].WorldScale(); got != V2i(2, 2) {
		t.Errorf("WorldScale after leaving legacy = %v", got)
	}
}

func TestRightAndUpStayOrthogonal(t *testing.T) {
	tree := NewTree()
	n := chain(tree, "a", "b")
	for deg := 0; deg < 360; deg += 17 {
		n[0].SetLocalAngle(AngleFromInt(deg))
		n[1].SetLocalAngle(AngleFromInt(deg / 2))
		if d := n[1].WorldRight().Dot(n[1].WorldUp()); d != 0 {
			t.Errorf("Right·Up at %d = %v, want 0", deg, d)
		}
	}
}

// --- Lazy propagation ---

func TestPropagationStats(t *testing.T) {
	tree := NewTree()
	n := chain(tree, "a", "b", "c")
	n[2].WorldPosition()

	tree.ResetStats()
	n[2].WorldPosition()
	if got := tree.Stats().Total(); got != 0 {
		t.Errorf("clean read recomputed %d values", got)
	}

	n[0].SetLocalPosition(V2i(1, 0))
	if got := tree.Stats().Total(); got != 0 {
		t.Errorf("mutation recomputed %d values eagerly", got)
	}
	if got := n[2].WorldPosition(); got != V2i(1, 0) {
		t.Errorf("WorldPosition = %v", got)
	}
	if got := tree.Stats(); got != (Stats{LocalToWorld: 3}) {
		t.Errorf("Stats = %+v, want 3 LocalToWorld", got)
	}
}

func TestMutationOnlyDirtiesSubtree(t *testing.T) {
	tree := NewTree()
	root := tree.NewNode("root")
	left, right := tree.NewNode("left"), tree.NewNode("right")
	_ = root.AddChild(left)
	_ = root.AddChild(right)
	left.WorldPosition()
	right.WorldPosition()

	tree.ResetStats()
	left.SetLocalPosition(V2i(5, 5))
	right.WorldPosition()
	root.WorldPosition()
	if got := tree.Stats().Total(); got != 0 {
		t.Errorf("sibling read recomputed %d values", got)
	}
	left.WorldPosition()
	if got := tree.Stats().LocalToWorld; got != 1 {
		t.Errorf("LocalToWorld = %d, want 1", got)
	}
}

func TestAngleStaysFreshThroughPartiallyCleanChain(t *testing.T) {
	tree := NewTree()
	n := chain(tree, "p", "x", "d")
	n[1].SetLocalAngle(AngleFromInt(90))
	n[2].WorldPosition()
	n[2].WorldAngle()
	n[1].SetLocalPosition(V2i(1, 0))
	n[0].SetLocalAngle(AngleFromInt(90))
	if got := n[2].WorldAngle(); got != AngleFromInt(180) {
		t.Errorf("WorldAngle = %v, want 180", got)
	}
	if got := n[2].WorldPosition(); got != V2i(0, 1) {
		t.Errorf("WorldPosition = %v, want (0, 1)", got)
	}
}

func TestReparentMarksDirty(t *testing.T) {
	tree := NewTree()
	a, b, c := tree.NewNode("a"), tree.NewNode("b"), tree.NewNode("c")
	a.SetLocalPosition(V2i(10, 0))
	b.SetLocalPosition(V2i(0, 10))
	c.SetLocalPosition(V2i(1, 1))
	_ = a.AddChild(c)
	if got := c.WorldPosition(); got != V2i(11, 1) {
		t.Errorf("under a: %v", got)
	}
	_ = b.AddChild(c)
	if got := c.WorldPosition(); got != V2i(1, 11) {
		t.Errorf("under b: %v", got)
	}
	c.RemoveFromParent()
	if got := c.WorldPosition(); got != V2i(1, 1) {
		t.Errorf("detached: %v", got)
	}
}

// --- World setters ---

func TestSetWorldPosition(t *testing.T) {
	tree := NewTree()
	n := chain(tree, "parent", "child", "grandchild")
	n[0].SetLocalPosition(V2i(10, 0))
	n[0].SetLocalAngle(AngleFromInt(90))
	n[2].SetLocalPosition(V2i(1, 0))
	n[2].WorldPosition()

	n[1].SetWorldPosition(V2i(10, 5))
	if got := n[1].WorldPosition(); got != V2i(10, 5) {
		t.Errorf("WorldPosition = %v", got)
	}
	if got := n[1].LocalPosition(); got != V2i(5, 0) {
		t.Errorf("LocalPosition = %v, want (5, 0)", got)
	}
	if got := n[2].WorldPosition(); got != V2i(10, 6) {
		t.Errorf("grandchild WorldPosition = %v, want (10, 6)", got)
	}
	if got := n[1].InverseTransformPoint(V2i(10, 6)); got != V2i(1, 0) {
		t.Errorf("InverseTransformPoint = %v", got)
	}

	root := tree.NewNode("root")
	root.SetWorldPosition(V2i(-3, 7))
	if got := root.LocalPosition(); got != V2i(-3, 7) {
		t.Errorf("root LocalPosition = %v", got)
	}
}

func TestSetWorldPositionRoundTrip(t *testing.T) {
	tree := NewTree()
	n := chain(tree, "a", "b", "c")
	n[0].SetLocalAngle(AngleFromInt(37))
	n[0].SetLocalScale(V2f(1.5, 0.5))
	n[1].SetLocalPosition(V2i(4, -2))
	n[1].SetLocalAngle(AngleFromInt(-71))
	target := V2i(20, 30)
	n[2].SetWorldPosition(target)

	fresh := NewTree()
	m := chain(fresh, "a", "b", "c")
	m[0].SetLocalAngle(n[0].LocalAngle())
	m[0].SetLocalScale(n[0].LocalScale())
	m[1].SetLocalPosition(n[1].LocalPosition())
	m[1].SetLocalAngle(n[1].LocalAngle())
	m[2].SetLocalPosition(n[2].LocalPosition())
	assertVecNear(t, "rebuilt WorldPosition", m[2].WorldPosition(), target, 256)
}

func TestSetWorldAngle(t *testing.T) {
	tree := NewTree()
	n := chain(tree, "parent", "child", "grandchild")
	n[0].SetLocalAngle(AngleFromInt(30))
	n[1].SetWorldAngle(AngleFromInt(100))
	if got := n[1].LocalAngle(); got != AngleFromInt(70) {
		t.Errorf("LocalAngle = %v, want 70", got)
	}
	if got := n[1].WorldAngle(); got != AngleFromInt(100) {
		t.Errorf("WorldAngle = %v, want 100", got)
	}
	assertVecNear(t, "WorldRight", n[1].WorldRight(), AngleFromInt(100).Right(), 8)
	assertAngleNear(t, "grandchild WorldAngle", n[2].WorldAngle(), 100, 1024)

	root := tree.NewNode("root")
	root.SetWorldAngle(AngleFromInt(45))
	if got := root.LocalAngle(); got != AngleFromInt(45) {
		t.Errorf("root LocalAngle = %v", got)
	}
}

func TestSetWorldRightAndUp(t *testing.T) {
	tree := NewTree()
	n := chain(tree, "parent", "child")
	n[1].SetWorldRight(V2i(0, 5))
	if got := n[1].WorldRight(); got != V2i(0, 1) {
		t.Errorf("WorldRight = %v", got)
	}
	if got := n[1].WorldAngle(); got != AngleFromInt(90) {
		t.Errorf("WorldAngle = %v", got)
	}
	if got := n[1].LocalAngle(); got != AngleFromInt(90) {
		t.Errorf("LocalAngle = %v", got)
	}

	n[0].SetLocalAngle(AngleFromInt(90))
	n[1].SetWorldUp(V2i(-3, 0))
	if got := n[1].WorldAngle(); got != AngleFromInt(90) {
		t.Errorf("WorldAngle after SetWorldUp = %v", got)
	}
	if got := n[1].LocalAngle(); got != AngleFromInt(0) {
		t.Errorf("LocalAngle after SetWorldUp = %v, want 0", got)
	}

	n[1].SetWorldRight(Vec2{})
	if got := n[1].WorldAngle(); got != AngleFromInt(0) {
		t.Errorf("WorldAngle for zero dir = %v, want 0", got)
	}
}

func TestSetLocalRightAndUp(t *testing.T) {
	n := NewTree().NewNode("a")
	n.SetLocalRight(V2i(0, -2))
	if got := n.LocalAngle(); got != AngleFromInt(270) {
		t.Errorf("LocalAngle = %v, want 270", got)
	}
	if got := n.LocalRight(); got != V2i(0, -1) {
		t.Errorf("LocalRight = %v", got)
	}
	if got := n.LocalUp(); got != V2i(1, 0) {
		t.Errorf("LocalUp = %v", got)
	}

	n.SetLocalUp(V2i(-4, 0))
	if got := n.LocalAngle(); got != AngleFromInt(90) {
		t.Errorf("LocalAngle after SetLocalUp = %v, want 90", got)
	}
	if got := n.WorldRight(); got != V2i(0, 1) {
		t.Errorf("WorldRight = %v", got)
	}

	n.SetLocalRight(Vec2{})
	if got := n.LocalAngle(); got != AngleFromInt(0) {
		t.Errorf("LocalAngle for zero dir = %v, want 0", got)
	}
}

// --- Directions ---

func TestTransformDirectionIgnoresScale(t *testing.T) {
	n := NewTree().NewNode("a")
	n.SetLocalAngle(AngleFromInt(90))
	n.SetLocalScale(V2i(3, 3))
	n.SetLocalPosition(V2i(100, 100))
	if got := n.TransformDirection(V2i(2, 0)); got != V2i(0, 1) {
		t.Errorf("TransformDirection = %v", got)
	}
	if got := n.InverseTransformDirection(V2i(0, 7)); got != V2i(1, 0) {
		t.Errorf("InverseTransformDirection = %v", got)
	}
	if got := n.TransformVector(V2i(1, 0)); got != V2i(0, 3) {
		t.Errorf("TransformVector = %v", got)
	}
}

func TestDirectionRoundTrip(t *testing.T) {
	n := NewTree().NewNode("a")
	n.SetLocalAngle(AngleFromInt(33))
	d := V2i(3, 4).Normalize()
	assertVecNear(t, "round trip", n.InverseTransformDirection(n.TransformDirection(d)), d, 8)
}
