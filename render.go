package sprig

// Primitive is anything a RenderTarget knows how to draw. LocalBounds is the
// primitive's extent before any transform.
type Primitive interface {
	LocalBounds() Rect
}

// Drawable is the per-node rendering hook. Implementations issue their draw
// primitives to target using t as the final placement.
type Drawable interface {
	Primitive
	Draw(target RenderTarget, t Transform)
}

// RenderTarget accepts a primitive together with its effective transform.
type RenderTarget interface {
	Draw(p Primitive, t Transform)
}

// Clipper is implemented by targets that can restrict drawing to a
// screen-space rectangle. Scene uses it for camera viewports.
type Clipper interface {
	Clip(r Rect) RenderTarget
}

// DrawCommand is a single recorded draw instruction.
type DrawCommand struct {
	Primitive Primitive
	Transform Transform
	Order     int // position in the frame, starting at 0
}

// Bounds returns the primitive's screen-space bounding box.
func (c DrawCommand) Bounds() Rect {
	return c.Transform.TransformRect(c.Primitive.LocalBounds())
}

// CommandRecorder is a RenderTarget that records draw commands in order
// instead of rasterizing them.
type CommandRecorder struct {
	Commands []DrawCommand
}

// Draw appends a command.
func (r *CommandRecorder) Draw(p Primitive, t Transform) {
	r.Commands = append(r.Commands, DrawCommand{Primitive: p, Transform: t, Order: len(r.Commands)})
}

// Reset clears recorded commands, keeping the buffer.
func (r *CommandRecorder) Reset() {
	r.Commands = r.Commands[:0]
}

// Clip returns r itself; recordings are not clipped.
func (r *CommandRecorder) Clip(Rect) RenderTarget {
	return r
}

// cullTarget drops primitives whose screen-space bounds miss the viewport.
// Primitives with empty bounds are never culled since their size is unknown.
type cullTarget struct {
	inner    RenderTarget
	viewport Rect
	stats    *frameStats
}

func (c *cullTarget) Draw(p Primitive, t Transform) {
	lb := p.LocalBounds()
	if !(lb.Width == 0 && lb.Height == 0) && !t.TransformRect(lb).Intersects(c.viewport) {
		if c.stats != nil {
			c.stats.culled++
		}
		return
	}
	if c.stats != nil {
		c.stats.commands++
	}
	c.inner.Draw(p, t)
}

// countTarget counts commands for debug stats when no camera culling applies.
type countTarget struct {
	inner RenderTarget
	stats *frameStats
}

func (c *countTarget) Draw(p Primitive, t Transform) {
	c.stats.commands++
	c.inner.Draw(p, t)
}
