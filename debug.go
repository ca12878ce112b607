package fixmath

// Stats counts cache recomputations since the last ResetStats. Each counter
// is incremented once per recomputed value of that kind.
type Stats struct {
	LocalRight   int
	LocalToWorld int
	WorldToLocal int
	Angle        int
	Right        int
	Scale        int
}

// Total returns the sum of all counters.
func (s Stats) Total() int {
	return s.LocalRight + s.LocalToWorld + s.WorldToLocal + s.Angle + s.Right + s.Scale
}

// Stats returns the recompute counters.
func (t *Tree) Stats() Stats {
	return t.stats
}

// ResetStats zeroes the recompute counters.
func (t *Tree) ResetStats() {
	t.stats = Stats{}
}

// LogStats writes the recompute counters to the library logger at debug
// level.
func (t *Tree) LogStats() {
	s := t.stats
	Logger().Debug("fixmath recompute stats",
		"nodes", t.live,
		"localRight", s.LocalRight,
		"localToWorld", s.LocalToWorld,
		"worldToLocal", s.WorldToLocal,
		"angle", s.Angle,
		"right", s.Right,
		"scale", s.Scale,
	)
}

// SetDebug enables tree diagnostics. In debug mode the tree warns through
// the library logger about deep hierarchies, nodes with very many children
// and singular world matrices.
func (t *Tree) SetDebug(enabled bool) {
	t.debug = enabled
}

// Debug reports whether debug mode is enabled.
func (t *Tree) Debug() bool {
	return t.debug
}

// debugMaxTreeDepth is the depth above which attaching a node warns.
const debugMaxTreeDepth = 32

func (t *Tree) debugCheckTreeDepth(i uint32) {
	if d := t.depth(i) + 1; d > debugMaxTreeDepth {
		t.warn("fixmath: tree depth exceeds threshold", i, "depth", d, "threshold", debugMaxTreeDepth)
	}
}

// debugMaxChildCount is the child count above which attaching a node warns.
const debugMaxChildCount = 1000

func (t *Tree) debugCheckChildCount(i uint32) {
	if n := len(t.slots[i].children); n > debugMaxChildCount {
		t.warn("fixmath: node has many children", i, "children", n, "threshold", debugMaxChildCount)
	}
}

func (t *Tree) debugCheckSingular(i uint32, m Affine2x3) {
	if m.Determinant() == 0 {
		t.warn("fixmath: singular world matrix, inverse saturated", i, "matrix", m)
	}
}
