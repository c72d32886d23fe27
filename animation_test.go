package sprig

import (
	"math"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	node := NewContainer("pos")
	node.SetPosition(10, 20)

	g := TweenPosition(node, 100, 200, time.Second, ease.Linear)
	g.Update(500 * time.Millisecond)
	if g.Done {
		t.Fatal("Done after half the duration")
	}
	p := node.Position()
	if math.Abs(p.X-55) > 0.01 || math.Abs(p.Y-110) > 0.01 {
		t.Errorf("midpoint = %v, want ~(55, 110)", p)
	}

	g.Update(500 * time.Millisecond)
	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if node.Position() != (Vec2{100, 200}) {
		t.Errorf("Position = %v, want exactly (100, 200)", node.Position())
	}
}

func TestTweenScaleReachesTarget(t *testing.T) {
	node := NewContainer("scale")
	g := TweenScale(node, 2, 3, 500*time.Millisecond, ease.Linear)
	g.Update(250 * time.Millisecond)
	g.Update(250 * time.Millisecond)
	if !g.Done || node.Scale() != (Vec2{2, 3}) {
		t.Errorf("Done = %v, Scale = %v", g.Done, node.Scale())
	}
}

func TestTweenOriginReachesTarget(t *testing.T) {
	node := NewContainer("origin")
	g := TweenOrigin(node, 8, 4, 100*time.Millisecond, ease.OutQuad)
	g.Update(time.Second)
	if !g.Done || node.Origin() != (Vec2{8, 4}) {
		t.Errorf("Done = %v, Origin = %v", g.Done, node.Origin())
	}
}

func TestTweenRotationNormalizes(t *testing.T) {
	node := NewContainer("rot")
	g := TweenRotation(node, 720, time.Second, ease.Linear)

	g.Update(750 * time.Millisecond)
	assertNear(t, "rotation at 3/4", node.Rotation(), 180)

	g.Update(250 * time.Millisecond)
	if !g.Done {
		t.Fatal("expected Done")
	}
	assertNear(t, "final rotation", node.Rotation(), 0)
}

func TestTweenInvalidatesTransform(t *testing.T) {
	node := NewNode("n", NewRectangleShape(1, 1))
	_ = node.Transform()
	g := TweenPosition(node, 50, 0, time.Second, ease.Linear)
	g.Update(time.Second)
	x, _ := node.Transform().TransformPoint(0, 0)
	assertNear(t, "x", x, 50)
}

func TestTweenZeroDuration(t *testing.T) {
	node := NewContainer("zero")
	g := TweenPosition(node, 7, 9, 0, ease.Linear)
	g.Update(0)
	if !g.Done || node.Position() != (Vec2{7, 9}) {
		t.Errorf("Done = %v, Position = %v", g.Done, node.Position())
	}
}

func TestTweenNegativeDtIgnored(t *testing.T) {
	node := NewContainer("neg")
	g := TweenPosition(node, 100, 0, time.Second, ease.Linear)
	g.Update(-time.Second)
	if g.Done || node.Position().X != 0 {
		t.Errorf("negative dt moved the tween: %v", node.Position())
	}
}

func TestTweenStopsOnDisposedNode(t *testing.T) {
	node := NewContainer("gone")
	g := TweenPosition(node, 100, 100, time.Second, ease.Linear)
	node.Dispose()
	g.Update(500 * time.Millisecond)
	if !g.Done {
		t.Error("expected Done on disposed node")
	}
	if node.Position() != (Vec2{}) {
		t.Error("disposed node should not be written")
	}
}

func TestTweenDoneIsSticky(t *testing.T) {
	node := NewContainer("sticky")
	g := TweenPosition(node, 10, 0, 100*time.Millisecond, ease.Linear)
	g.Update(time.Second)
	node.SetPosition(-1, -1)
	g.Update(time.Second)
	if node.Position() != (Vec2{-1, -1}) {
		t.Error("finished tween should not write again")
	}
}
