package scenario

import (
	"encoding/binary"
	"fmt"
	"hash"
	"hash/fnv"

	"github.com/phanxgames/fixmath"

	"go.uber.org/zap"
)

// Probe is the world state of one node at one point of a run.
type Probe struct {
	Step     int
	Label    string
	Node     string
	Position fixmath.Vec2
	Angle    fixmath.Angle
	Right    fixmath.Vec2
	Scale    fixmath.Vec2
}

func (p Probe) String() string {
	label := p.Label
	if label == "" {
		label = p.Node
	}
	return fmt.Sprintf("#%d %s pos=%v angle=%v right=%v scale=%v",
		p.Step, label, p.Position, p.Angle, p.Right, p.Scale)
}

// Result is the outcome of a run.
type Result struct {
	Probes   []Probe
	Checksum Checksum
	Stats    fixmath.Stats
	Steps    int
}

// Verify compares the checksum against the scenario's expected value, if
// any.
func (r *Result) Verify(sc *Scenario) error {
	if sc.ExpectChecksum == nil || *sc.ExpectChecksum == r.Checksum {
		return nil
	}
	return fmt.Errorf("checksum %v, expected %v: %w", r.Checksum, *sc.ExpectChecksum, ErrChecksumMismatch)
}

type runner struct {
	tree  *fixmath.Tree
	nodes map[string]fixmath.Node
	log   *zap.Logger
	sum   hash.Hash64
	res   *Result
}

// Run executes sc on a fresh tree. log may be nil.
func Run(sc *Scenario, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &runner{
		tree:  fixmath.NewTree(),
		nodes: make(map[string]fixmath.Node, len(sc.Nodes)),
		log:   log,
		sum:   fnv.New64a(),
		res:   &Result{},
	}
	r.tree.SetLegacyScale(sc.LegacyScale)
	r.tree.SetDebug(sc.Debug)

	for _, def := range sc.Nodes {
		if err := r.create(def); err != nil {
			return nil, err
		}
	}
	if err := r.steps(sc.Steps); err != nil {
		return nil, err
	}

	r.res.Checksum = Checksum(r.sum.Sum64())
	r.res.Stats = r.tree.Stats()
	if sc.Debug {
		r.tree.LogStats()
	}
	log.Debug("scenario finished",
		zap.String("name", sc.Name),
		zap.Int("steps", r.res.Steps),
		zap.Int("probes", len(r.res.Probes)),
		zap.Int("recomputes", r.res.Stats.Total()),
		zap.Stringer("checksum", r.res.Checksum))
	return r.res, nil
}

func (r *runner) create(def NodeDef) error {
	if def.Name == "" {
		return fmt.Errorf("create node: empty name: %w", ErrBadStep)
	}
	if old, ok := r.nodes[def.Name]; ok && !old.IsDisposed() {
		return fmt.Errorf("create node %q: %w", def.Name, ErrDuplicateNode)
	}
	n := r.tree.NewNode(def.Name)
	if def.Parent != "" {
		p, err := r.lookup(def.Parent)
		if err != nil {
			n.Dispose()
			return err
		}
		if err := p.AddChild(n); err != nil {
			n.Dispose()
			return err
		}
	}
	if def.Position != nil {
		n.SetLocalPosition(def.Position.Vec2())
	}
	if def.Angle != nil {
		n.SetLocalAngle(fixmath.AngleFrom(def.Angle.F32()))
	}
	if def.Scale != nil {
		n.SetLocalScale(def.Scale.Vec2())
	}
	r.nodes[def.Name] = n
	return nil
}

func (r *runner) lookup(name string) (fixmath.Node, error) {
	n, ok := r.nodes[name]
	if !ok || n.IsDisposed() {
		return fixmath.Node{}, fmt.Errorf("%q: %w", name, ErrUnknownNode)
	}
	return n, nil
}

func (r *runner) steps(steps []Step) error {
	for i := range steps {
		if err := r.step(&steps[i]); err != nil {
			return fmt.Errorf("step %d (%s): %w", r.res.Steps, steps[i].Op, err)
		}
	}
	return nil
}

func (r *runner) step(s *Step) error {
	if s.Op == "repeat" {
		if s.Count < 0 {
			return fmt.Errorf("negative count: %w", ErrBadStep)
		}
		for range s.Count {
			if err := r.steps(s.Steps); err != nil {
				return err
			}
		}
		return nil
	}

	r.res.Steps++
	if s.Op == "node" {
		return r.create(NodeDef{Name: s.Name, Parent: s.Parent})
	}

	n, err := r.lookup(s.Node)
	if err != nil {
		return err
	}
	if r.log.Core().Enabled(zap.DebugLevel) {
		r.log.Debug("step", zap.Int("index", r.res.Steps), zap.String("op", s.Op), zap.String("node", s.Node))
	}

	switch s.Op {
	case "local_position":
		v, err := s.vec()
		if err != nil {
			return err
		}
		n.SetLocalPosition(v)
	case "translate":
		v, err := s.vec()
		if err != nil {
			return err
		}
		n.SetLocalPosition(n.LocalPosition().Add(v))
	case "local_scale":
		v, err := s.vec()
		if err != nil {
			return err
		}
		n.SetLocalScale(v)
	case "world_position":
		v, err := s.vec()
		if err != nil {
			return err
		}
		n.SetWorldPosition(v)
	case "world_right":
		v, err := s.vec()
		if err != nil {
			return err
		}
		n.SetWorldRight(v)
	case "local_angle":
		a, err := s.angle()
		if err != nil {
			return err
		}
		n.SetLocalAngle(a)
	case "rotate":
		if s.Value == nil {
			return fmt.Errorf("missing value: %w", ErrBadStep)
		}
		n.SetLocalAngle(n.LocalAngle().AddDegrees(s.Value.F32()))
	case "world_angle":
		a, err := s.angle()
		if err != nil {
			return err
		}
		n.SetWorldAngle(a)
	case "parent":
		if s.Parent == "" {
			n.RemoveFromParent()
			return nil
		}
		p, err := r.lookup(s.Parent)
		if err != nil {
			return err
		}
		return n.SetParent(p)
	case "detach":
		n.RemoveFromParent()
	case "dispose":
		n.Dispose()
	case "probe":
		r.probe(n, s.Label)
	default:
		return fmt.Errorf("%q: %w", s.Op, ErrUnknownOp)
	}
	return nil
}

func (s *Step) vec() (fixmath.Vec2, error) {
	if s.Vec == nil {
		return fixmath.Vec2{}, fmt.Errorf("missing vec: %w", ErrBadStep)
	}
	return s.Vec.Vec2(), nil
}

func (s *Step) angle() (fixmath.Angle, error) {
	if s.Value == nil {
		return fixmath.Angle{}, fmt.Errorf("missing value: %w", ErrBadStep)
	}
	return fixmath.AngleFrom(s.Value.F32()), nil
}

func (r *runner) probe(n fixmath.Node, label string) {
	p := Probe{
		Step:     r.res.Steps,
		Label:    label,
		Node:     n.Name(),
		Position: n.WorldPosition(),
		Angle:    n.WorldAngle(),
		Right:    n.WorldRight(),
		Scale:    n.WorldScale(),
	}
	r.res.Probes = append(r.res.Probes, p)

	var buf [7 * 4]byte
	for i, v := range []int32{
		p.Position.X.Raw(), p.Position.Y.Raw(),
		p.Angle.Degrees().Raw(),
		p.Right.X.Raw(), p.Right.Y.Raw(),
		p.Scale.X.Raw(), p.Scale.Y.Raw(),
	} {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	_, _ = r.sum.Write(buf[:])
}
