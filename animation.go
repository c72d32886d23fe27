package sprig

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 2 transform properties of a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenRotation, TweenOrigin) and either call Update(dt) each frame or hand it
// to Scene.AddTween. The group writes values through the node's setters, so
// the cached transform is always invalidated. If the target node is disposed,
// the group stops immediately.
type TweenGroup struct {
	tweens [2]*gween.Tween
	to     [2]float64
	count  int
	apply  func(vals [2]float64)
	target *Node
	Done   bool
}

func newTweenGroup(node *Node, from, to []float64, duration time.Duration, fn ease.TweenFunc, apply func([2]float64)) *TweenGroup {
	g := &TweenGroup{count: len(from), target: node, apply: apply}
	secs := float32(duration.Seconds())
	for i := range from {
		g.tweens[i] = gween.New(float32(from[i]), float32(to[i]), secs, fn)
		g.to[i] = to[i]
	}
	return g
}

// Update advances all tweens by dt and writes the values to the node. If the
// target node has been disposed, Done is set to true and no writes occur.
func (g *TweenGroup) Update(dt time.Duration) {
	if g.Done {
		return
	}
	if g.target == nil || g.target.IsDisposed() {
		g.Done = true
		return
	}
	if dt < 0 {
		dt = 0
	}

	secs := float32(dt.Seconds())
	var vals [2]float64
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(secs)
		vals[i] = float64(val)
		if finished {
			// Land exactly on the target; float32 easing drifts.
			vals[i] = g.to[i]
		} else {
			allDone = false
		}
	}
	g.apply(vals)
	g.Done = allDone
}

// TweenPosition animates the node's position to (toX, toY).
func TweenPosition(node *Node, toX, toY float64, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	p := node.Position()
	return newTweenGroup(node, []float64{p.X, p.Y}, []float64{toX, toY}, duration, fn, func(v [2]float64) {
		node.SetPosition(v[0], v[1])
	})
}

// TweenScale animates the node's scale to (toSX, toSY).
func TweenScale(node *Node, toSX, toSY float64, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	s := node.Scale()
	return newTweenGroup(node, []float64{s.X, s.Y}, []float64{toSX, toSY}, duration, fn, func(v [2]float64) {
		node.SetScale(v[0], v[1])
	})
}

// TweenRotation animates the node's rotation from its current value to toDeg.
// The path is not wrapped: tweening from 0 to 720 spins twice, and from 350
// to 10 turns back through 180. The stored rotation is normalized each step.
func TweenRotation(node *Node, toDeg float64, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, []float64{node.Rotation()}, []float64{toDeg}, duration, fn, func(v [2]float64) {
		node.SetRotation(v[0])
	})
}

// TweenOrigin animates the node's origin to (toX, toY).
func TweenOrigin(node *Node, toX, toY float64, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	o := node.Origin()
	return newTweenGroup(node, []float64{o.X, o.Y}, []float64{toX, toY}, duration, fn, func(v [2]float64) {
		node.SetOrigin(v[0], v[1])
	})
}
