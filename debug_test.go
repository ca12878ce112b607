package fixmath

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// captureLog routes the library logger into a buffer for the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func TestDebugMode_DeepTreeWarns(t *testing.T) {
	buf := captureLog(t)
	tree := NewTree()
	tree.SetDebug(true)
	if !tree.Debug() {
		t.Fatal("Debug should be true")
	}
	names := make([]string, debugMaxTreeDepth+2)
	for i := range names {
		names[i] = "n"
	}
	chain(tree, names...)
	if !strings.Contains(buf.String(), "tree depth exceeds threshold") {
		t.Errorf("expected depth warning, got: %s", buf.String())
	}
}

func TestDebugMode_ManyChildrenWarns(t *testing.T) {
	buf := captureLog(t)
	tree := NewTree()
	tree.SetDebug(true)
	p := tree.NewNode("wide")
	for range debugMaxChildCount + 1 {
		_ = p.AddChild(tree.NewNode("c"))
	}
	if !strings.Contains(buf.String(), "node has many children") {
		t.Errorf("expected child count warning, got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "node=wide") {
		t.Errorf("warning should name the node, got: %s", buf.String())
	}
}

func TestDebugMode_SingularMatrixWarns(t *testing.T) {
	buf := captureLog(t)
	tree := NewTree()
	tree.SetDebug(true)
	n := tree.NewNode("flat")
	n.SetLocalScale(Vec2{})
	n.WorldToLocal()
	if !strings.Contains(buf.String(), "singular world matrix") {
		t.Errorf("expected singular warning, got: %s", buf.String())
	}
}

func TestDebugOff_NoOutput(t *testing.T) {
	buf := captureLog(t)
	tree := NewTree()
	n := tree.NewNode("flat")
	n.SetLocalScale(Vec2{})
	n.WorldToLocal()
	if buf.Len() != 0 {
		t.Errorf("expected no output, got: %s", buf.String())
	}
}

func TestLogStats(t *testing.T) {
	buf := captureLog(t)
	tree := NewTree()
	chain(tree, "a", "b")[1].WorldPosition()
	tree.LogStats()
	out := buf.String()
	if !strings.Contains(out, "localToWorld=2") {
		t.Errorf("stats output missing counter: %s", out)
	}
	if !strings.Contains(out, "nodes=2") {
		t.Errorf("stats output missing node count: %s", out)
	}
}

func TestStatsTotal(t *testing.T) {
	s := Stats{LocalRight: 1, LocalToWorld: 2, WorldToLocal: 3, Angle: 4, Right: 5, Scale: 6}
	if s.Total() != 21 {
		t.Errorf("Total = %d", s.Total())
	}
	tree := NewTree()
	tree.NewNode("a").WorldToLocal()
	if tree.Stats().Total() == 0 {
		t.Fatal("expected recomputation")
	}
	tree.ResetStats()
	if tree.Stats() != (Stats{}) {
		t.Errorf("Stats after reset = %+v", tree.Stats())
	}
}
