package sprig

import "math"

// Transformable holds decomposed transform state: position, rotation, scale,
// and origin. The four properties are independent; changing one never alters
// the others.
//
// The origin is the pivot for rotation and scale, and the point that Position
// refers to. The derived matrix is
//
//	Translate(position) * Rotate(rotation) * Scale(scale) * Translate(-origin)
//
// Use NewTransformable; the zero value has a (0, 0) scale. Setters accept NaN
// and infinite values as-is; check Transform().Validate() to reject them.
type Transformable struct {
	position Vec2
	rotation float64 // degrees, kept in [0, 360)
	scale    Vec2
	origin   Vec2

	transform      Transform
	transformDirty bool
}

// NewTransformable returns a Transformable at the origin with unit scale.
func NewTransformable() Transformable {
	return Transformable{
		scale:          Vec2{1, 1},
		transformDirty: true,
	}
}

// SetPosition sets the absolute position.
func (t *Transformable) SetPosition(x, y float64) {
	t.position = Vec2{x, y}
	t.transformDirty = true
}

// Move offsets the position by (dx, dy).
func (t *Transformable) Move(dx, dy float64) {
	t.position.X += dx
	t.position.Y += dy
	t.transformDirty = true
}

// Position returns the current position.
func (t *Transformable) Position() Vec2 {
	return t.position
}

// SetRotation sets the absolute rotation in degrees. The stored value is
// normalized into [0, 360).
func (t *Transformable) SetRotation(deg float64) {
	t.rotation = normalizeDegrees(deg)
	t.transformDirty = true
}

// Rotate adds delta degrees to the current rotation.
func (t *Transformable) Rotate(delta float64) {
	t.SetRotation(t.rotation + delta)
}

// Rotation returns the rotation in degrees, always in [0, 360) for finite input.
func (t *Transformable) Rotation() float64 {
	return t.rotation
}

// SetScale sets the absolute scale factors. Negative factors mirror.
func (t *Transformable) SetScale(sx, sy float64) {
	t.scale = Vec2{sx, sy}
	t.transformDirty = true
}

// ScaleBy multiplies the current scale component-wise by (fx, fy).
func (t *Transformable) ScaleBy(fx, fy float64) {
	t.scale.X *= fx
	t.scale.Y *= fy
	t.transformDirty = true
}

// Scale returns the current scale factors.
func (t *Transformable) Scale() Vec2 {
	return t.scale
}

// SetOrigin sets the local pivot point.
func (t *Transformable) SetOrigin(x, y float64) {
	t.origin = Vec2{x, y}
	t.transformDirty = true
}

// Origin returns the local pivot point.
func (t *Transformable) Origin() Vec2 {
	return t.origin
}

// Transform returns the combined matrix, recomputing it if any property
// changed since the last call.
func (t *Transformable) Transform() Transform {
	if t.transformDirty {
		t.transform = composeTransform(t.position, t.rotation, t.scale, t.origin)
		t.transformDirty = false
	}
	return t.transform
}

// InverseTransform returns the inverse of Transform. It fails with
// ErrSingularTransform when either scale factor is zero.
func (t *Transformable) InverseTransform() (Transform, error) {
	return t.Transform().Inverse()
}

// composeTransform expands
// Translate(pos) * Rotate(rot) * Scale(scale) * Translate(-origin)
// in closed form.
func composeTransform(pos Vec2, rot float64, scale, origin Vec2) Transform {
	sin, cos := sincosDeg(rot)

	// Rotate * Scale
	a := cos * scale.X
	b := sin * scale.X
	c := -sin * scale.Y
	d := cos * scale.Y

	// * Translate(-origin), then Translate(pos)
	tx := pos.X - a*origin.X - c*origin.Y
	ty := pos.Y - b*origin.X - d*origin.Y

	return Transform{[6]float64{a, b, c, d, tx, ty}}
}

// normalizeDegrees maps deg into [0, 360). NaN and infinities pass through
// math.Mod as NaN.
func normalizeDegrees(deg float64) float64 {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	// -1e-20 + 360 rounds to 360.
	if r >= 360 {
		r = 0
	}
	return r
}
