// Package scenario replays scripted transform-hierarchy sessions and
// reduces the probed results to a checksum, so two machines can confirm
// they compute bit-identical results.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/phanxgames/fixmath"
	"github.com/phanxgames/fixmath/fixed"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownNode   = errors.New("scenario: unknown node")
	ErrDuplicateNode = errors.New("scenario: duplicate node name")
	ErrUnknownOp     = errors.New("scenario: unknown op")
	ErrBadStep       = errors.New("scenario: invalid step")

	// ErrChecksumMismatch reports a run whose checksum differs from the
	// expected one.
	ErrChecksumMismatch = errors.New("scenario: checksum mismatch")
)

// Scenario is a scripted session: an initial set of nodes and a list of
// steps applied to them in order.
type Scenario struct {
	Name           string    `yaml:"name"`
	LegacyScale    bool      `yaml:"legacy_scale"`
	Debug          bool      `yaml:"debug"`
	Nodes          []NodeDef `yaml:"nodes"`
	Steps          []Step    `yaml:"steps"`
	ExpectChecksum *Checksum `yaml:"expect_checksum"`
}

// NodeDef declares a node. Parents must be declared before their children.
type NodeDef struct {
	Name     string  `yaml:"name"`
	Parent   string  `yaml:"parent"`
	Position *Vec    `yaml:"position"`
	Angle    *Scalar `yaml:"angle"`
	Scale    *Vec    `yaml:"scale"`
}

// Step is one operation. Which fields are read depends on Op:
//
//	node            create node Name under Parent
//	local_position  Vec
//	local_angle     Value (degrees)
//	local_scale     Vec
//	world_position  Vec
//	world_angle     Value (degrees)
//	world_right     Vec
//	rotate          Value added to the local angle
//	translate       Vec added to the local position
//	parent          reparent Node under Parent, detach when empty
//	detach          detach Node
//	dispose         dispose Node with its descendants
//	probe           record the world state of Node
//	repeat          run Steps Count times
type Step struct {
	Op     string  `yaml:"op"`
	Node   string  `yaml:"node"`
	Name   string  `yaml:"name"`
	Parent string  `yaml:"parent"`
	Label  string  `yaml:"label"`
	Vec    *Vec    `yaml:"vec"`
	Value  *Scalar `yaml:"value"`
	Count  int     `yaml:"count"`
	Steps  []Step  `yaml:"steps"`
}

// Scalar is a fixed-point value read from YAML. Both plain numbers and
// quoted decimal strings are parsed exactly, never through float.
type Scalar fixed.F32

func (s *Scalar) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", value.Line)
	}
	v, err := fixed.Parse(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*s = Scalar(v)
	return nil
}

// F32 returns the value.
func (s Scalar) F32() fixed.F32 { return fixed.F32(s) }

// Vec is a 2D vector written as a two element sequence, [x, y].
type Vec fixmath.Vec2

func (v *Vec) UnmarshalYAML(value *yaml.Node) error {
	var parts []Scalar
	if err := value.Decode(&parts); err != nil {
		return err
	}
	if len(parts) != 2 {
		return fmt.Errorf("line %d: vector needs 2 components, got %d", value.Line, len(parts))
	}
	*v = Vec{X: parts[0].F32(), Y: parts[1].F32()}
	return nil
}

// Vec2 returns the vector.
func (v Vec) Vec2() fixmath.Vec2 { return fixmath.Vec2(v) }

// Checksum is a 64-bit result digest, written in YAML as a hex string.
type Checksum uint64

func (c *Checksum) UnmarshalYAML(value *yaml.Node) error {
	v, err := strconv.ParseUint(value.Value, 0, 64)
	if err != nil {
		return fmt.Errorf("line %d: checksum: %w", value.Line, err)
	}
	*c = Checksum(v)
	return nil
}

func (c Checksum) String() string {
	return fmt.Sprintf("0x%016x", uint64(c))
}

// Parse decodes a scenario document.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	return &sc, nil
}

// Load reads and decodes a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = path
	}
	return sc, nil
}
