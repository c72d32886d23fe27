package sprig

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	toX    float64
	toY    float64
	doneX  bool
	doneY  bool
}

// Camera controls the view into the scene: position, zoom, rotation, and viewport.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Rotation is the camera rotation in degrees (clockwise). The world
	// appears rotated the opposite way.
	Rotation float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	// CullEnabled skips primitives whose screen bounds miss the viewport.
	CullEnabled bool

	followTarget  *Node
	followOffsetX float64
	followOffsetY float64
	followLerp    float64

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the camera is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	scrollTween *scrollAnim
}

// NewCamera creates a camera with the given viewport, centered on the
// viewport's own center so that it initially shows world = screen.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		X:           viewport.X + viewport.Width/2,
		Y:           viewport.Y + viewport.Height/2,
		Zoom:        1.0,
		Viewport:    viewport,
		CullEnabled: true,
	}
}

// Follow makes the camera track a target node with the given offset and lerp factor.
// A lerp of 1.0 snaps immediately; lower values give smoother following.
func (c *Camera) Follow(node *Node, offsetX, offsetY, lerp float64) {
	c.followTarget = node
	c.followOffsetX = offsetX
	c.followOffsetY = offsetY
	c.followLerp = lerp
}

// Unfollow stops tracking the current target node.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// ScrollTo animates the camera to the given world position.
func (c *Camera) ScrollTo(x, y float64, duration time.Duration, easeFn ease.TweenFunc) {
	secs := float32(duration.Seconds())
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), secs, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), secs, easeFn),
		toX:    x,
		toY:    y,
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// update advances follow, scroll, and bounds clamping. It reports whether a
// ScrollTo animation finished during this call.
func (c *Camera) update(dt time.Duration) (scrollDone bool) {
	if c.followTarget != nil && !c.followTarget.IsDisposed() {
		p := c.followTarget.GlobalTransform().TransformVec(c.followTarget.Origin())
		targetX := p.X + c.followOffsetX
		targetY := p.Y + c.followOffsetY
		c.X += (targetX - c.X) * c.followLerp
		c.Y += (targetY - c.Y) * c.followLerp
	}

	if c.scrollTween != nil {
		secs := float32(dt.Seconds())
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(secs)
			c.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(secs)
			c.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.X, c.Y = c.scrollTween.toX, c.scrollTween.toY
			c.scrollTween = nil
			scrollDone = true
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}
	return scrollDone
}

// clampToBounds restricts camera position so the visible area stays within Bounds.
func (c *Camera) clampToBounds() {
	halfW := c.Viewport.Width / (2 * c.Zoom)
	halfH := c.Viewport.Height / (2 * c.Zoom)

	minX := c.Bounds.X + halfW
	maxX := c.Bounds.Right() - halfW
	minY := c.Bounds.Y + halfH
	maxY := c.Bounds.Bottom() - halfH

	// If bounds are smaller than visible area, center the camera.
	if minX > maxX {
		c.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
}

// ViewTransform maps world coordinates to screen coordinates:
//
//	Translate(viewport center) * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
func (c *Camera) ViewTransform() Transform {
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	return Translation(cx, cy).
		Scale(c.Zoom, c.Zoom).
		Rotate(-c.Rotation).
		Translate(-c.X, -c.Y)
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return c.ViewTransform().TransformPoint(wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates. Fails with
// ErrSingularTransform when Zoom is zero.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64, err error) {
	inv, err := c.ViewTransform().Inverse()
	if err != nil {
		return 0, 0, err
	}
	wx, wy = inv.TransformPoint(sx, sy)
	return wx, wy, nil
}

// VisibleBounds returns the axis-aligned bounding rect of the camera's visible
// area in world space. A zero zoom yields an empty rectangle.
func (c *Camera) VisibleBounds() Rect {
	inv, err := c.ViewTransform().Inverse()
	if err != nil {
		return Rect{}
	}
	return inv.TransformRect(c.Viewport)
}
