package sprig

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// setupBenchScene creates a Scene with n rectangle nodes laid out on a grid.
func setupBenchScene(n int) *Scene {
	s := NewScene()
	root := s.Root()
	for i := 0; i < n; i++ {
		node := NewNode("r", NewRectangleShape(32, 32))
		node.SetPosition(float64(i%100)*40, float64(i/100)*40)
		_ = root.AddChild(node)
	}
	return s
}

// setupBenchChain returns the deepest node of a depth-long parent chain.
func setupBenchChain(depth int) *Node {
	n := NewContainer("0")
	for i := 1; i < depth; i++ {
		c := NewContainer("c")
		c.SetPosition(1, 0)
		c.SetRotation(5)
		_ = n.AddChild(c)
		n = c
	}
	return n
}

// --- Transform ---

func BenchmarkTransformCombine(b *testing.B) {
	t1 := Translation(10, 20).Rotate(30).Scale(2, 2)
	t2 := Rotation(45).Translate(3, 4)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		t1 = t1.Combine(t2)
	}
	_ = t1
}

func BenchmarkTransformableRebuild(b *testing.B) {
	n := NewContainer("n")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		n.Rotate(0.5)
		_ = n.LocalTransform()
	}
}

func BenchmarkGlobalTransform_Depth32(b *testing.B) {
	leaf := setupBenchChain(32)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = leaf.GlobalTransform()
	}
}

// --- Traversal ---

func BenchmarkDraw_10000Nodes_Recorder(b *testing.B) {
	s := setupBenchScene(10000)
	var rec CommandRecorder
	s.Draw(&rec)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		rec.Reset()
		s.Draw(&rec)
	}
}

func BenchmarkDraw_10000Nodes_Culled(b *testing.B) {
	s := setupBenchScene(10000)
	s.NewCamera(Rect{Width: 1280, Height: 720})
	var rec CommandRecorder

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		rec.Reset()
		s.Draw(&rec)
	}
}

func BenchmarkDraw_10000Nodes_Image(b *testing.B) {
	s := setupBenchScene(10000)
	screen := ebiten.NewImage(1280, 720)
	s.DrawImage(screen) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.DrawImage(screen)
	}
}

func BenchmarkSubtreeBounds_10000Nodes(b *testing.B) {
	s := setupBenchScene(10000)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = s.Root().SubtreeBounds()
	}
}
