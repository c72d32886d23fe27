package sprig

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// RenderTexture is an offscreen canvas. Nodes drawn into it keep their full
// transform chain, and the result can be shown in a scene through Sprite.
type RenderTexture struct {
	img    *ebiten.Image
	target *ImageTarget
	w, h   int
}

// NewRenderTexture creates a w x h offscreen canvas. Sizes below one pixel are
// raised to one.
func NewRenderTexture(w, h int) *RenderTexture {
	w, h = max(w, 1), max(h, 1)
	img := ebiten.NewImage(w, h)
	return &RenderTexture{img: img, target: NewImageTarget(img), w: w, h: h}
}

// Image returns the backing ebiten image.
func (rt *RenderTexture) Image() *ebiten.Image { return rt.img }

// Width returns the canvas width in pixels.
func (rt *RenderTexture) Width() int { return rt.w }

// Height returns the canvas height in pixels.
func (rt *RenderTexture) Height() int { return rt.h }

// Target returns the RenderTarget that draws into the canvas.
func (rt *RenderTexture) Target() *ImageTarget { return rt.target }

// Clear makes every pixel transparent.
func (rt *RenderTexture) Clear() { rt.img.Clear() }

// Fill fills the whole canvas with c.
func (rt *RenderTexture) Fill(c Color) { rt.img.Fill(c.toRGBA()) }

// DrawNode draws the subtree rooted at n into the canvas with parent as the
// starting transform, exactly as Node.Draw would.
func (rt *RenderTexture) DrawNode(n *Node, parent Transform) {
	n.Draw(rt.target, parent)
}

// Sprite returns a sprite showing the canvas. Later draws into the canvas show
// up through the sprite.
func (rt *RenderTexture) Sprite() *Sprite {
	return NewSprite(rt.img)
}

// Dispose releases the GPU image. The texture must not be used afterwards.
func (rt *RenderTexture) Dispose() {
	rt.img.Deallocate()
}

// --- Subtree bounds ---

// boundsTarget accumulates the union of the transformed bounds of every
// primitive drawn into it.
type boundsTarget struct {
	bounds Rect
	any    bool
}

func (b *boundsTarget) Draw(p Primitive, t Transform) {
	r := t.TransformRect(p.LocalBounds())
	if r.IsEmpty() {
		return
	}
	if !b.any {
		b.bounds, b.any = r, true
		return
	}
	b.bounds = b.bounds.Union(r)
}

// SubtreeBounds returns the box enclosing the drawables of n and every visible
// descendant, in n's own local space (n's local transform is not applied).
// Invisible descendants are skipped. A subtree with nothing to draw returns an
// empty Rect.
func (n *Node) SubtreeBounds() Rect {
	var bt boundsTarget
	n.drawContent(&bt, Identity())
	return bt.bounds
}

// drawContent draws n's drawable and children with t standing in for n's
// combined transform.
func (n *Node) drawContent(target RenderTarget, t Transform) {
	if n.Drawable != nil {
		n.Drawable.Draw(target, t)
	}
	for _, child := range n.children {
		child.Draw(target, t)
	}
}

// ToTexture renders n's content into a new RenderTexture sized to its
// SubtreeBounds. The top-left of the bounds lands at the texture's origin, so
// a sprite of the result placed at (bounds.X, bounds.Y) in n's space matches
// the live subtree. The texture is nil when there is nothing to draw.
func (n *Node) ToTexture() (*RenderTexture, Rect) {
	b := n.SubtreeBounds()
	if b.IsEmpty() {
		return nil, b
	}
	rt := NewRenderTexture(int(math.Ceil(b.Width)), int(math.Ceil(b.Height)))
	n.drawContent(rt.target, Translation(-b.X, -b.Y))
	return rt, b
}
