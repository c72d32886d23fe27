package sprig

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// singularEpsilon is the determinant magnitude below which a transform is
// treated as non-invertible.
const singularEpsilon = 1e-12

// Transform is an immutable 2D affine matrix. The zero value is NOT the
// identity; use Identity.
//
// Matrix layout: [a, b, c, d, tx, ty]
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
//
// Angles are in degrees. Positive rotation is clockwise on screen, since the
// Y axis points down.
type Transform struct {
	m [6]float64
}

var identity = Transform{[6]float64{1, 0, 0, 1, 0, 0}}

// Identity returns the neutral transform.
func Identity() Transform { return identity }

// NewTransform builds a transform from its six free parameters.
func NewTransform(a, b, c, d, tx, ty float64) Transform {
	return Transform{[6]float64{a, b, c, d, tx, ty}}
}

// Translation returns a transform that moves points by (dx, dy).
func Translation(dx, dy float64) Transform {
	return Transform{[6]float64{1, 0, 0, 1, dx, dy}}
}

// Rotation returns a clockwise rotation by deg degrees around (0, 0).
func Rotation(deg float64) Transform {
	sin, cos := sincosDeg(deg)
	return Transform{[6]float64{cos, sin, -sin, cos, 0, 0}}
}

// RotationAround returns a clockwise rotation by deg degrees around (cx, cy).
func RotationAround(deg, cx, cy float64) Transform {
	sin, cos := sincosDeg(deg)
	return Transform{[6]float64{
		cos, sin, -sin, cos,
		cx - cos*cx + sin*cy,
		cy - sin*cx - cos*cy,
	}}
}

// Scaling returns a transform that scales by (sx, sy) relative to (0, 0).
func Scaling(sx, sy float64) Transform {
	return Transform{[6]float64{sx, 0, 0, sy, 0, 0}}
}

// ScalingAround returns a transform that scales by (sx, sy) relative to (cx, cy).
func ScalingAround(sx, sy, cx, cy float64) Transform {
	return Transform{[6]float64{sx, 0, 0, sy, cx - sx*cx, cy - sy*cy}}
}

// sincosDeg returns sin and cos of an angle in degrees. Multiples of 90 are
// exact so that axis-aligned rotations don't leak tiny residues into bounds.
func sincosDeg(deg float64) (sin, cos float64) {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	switch r {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	return math.Sincos(r * math.Pi / 180)
}

// Combine returns t * o: o is applied first, then t.
// Combine is associative but not commutative.
func (t Transform) Combine(o Transform) Transform {
	p, c := t.m, o.m
	return Transform{[6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}}
}

// Translate returns t combined with a translation.
func (t Transform) Translate(dx, dy float64) Transform {
	return t.Combine(Translation(dx, dy))
}

// Rotate returns t combined with a clockwise rotation around (0, 0).
func (t Transform) Rotate(deg float64) Transform {
	return t.Combine(Rotation(deg))
}

// RotateAround returns t combined with a clockwise rotation around (cx, cy).
func (t Transform) RotateAround(deg, cx, cy float64) Transform {
	return t.Combine(RotationAround(deg, cx, cy))
}

// Scale returns t combined with a scaling relative to (0, 0).
func (t Transform) Scale(sx, sy float64) Transform {
	return t.Combine(Scaling(sx, sy))
}

// ScaleAround returns t combined with a scaling relative to (cx, cy).
func (t Transform) ScaleAround(sx, sy, cx, cy float64) Transform {
	return t.Combine(ScalingAround(sx, sy, cx, cy))
}

// TransformPoint applies the matrix to the point (x, y).
func (t Transform) TransformPoint(x, y float64) (float64, float64) {
	m := &t.m
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// TransformVec applies the matrix to p.
func (t Transform) TransformVec(p Vec2) Vec2 {
	x, y := t.TransformPoint(p.X, p.Y)
	return Vec2{x, y}
}

// TransformRect returns the axis-aligned bounding box of r after
// transformation. Rotated rectangles grow to enclose all four corners.
func (t Transform) TransformRect(r Rect) Rect {
	return boundsOf([]Vec2{
		t.TransformVec(Vec2{r.X, r.Y}),
		t.TransformVec(Vec2{r.Right(), r.Y}),
		t.TransformVec(Vec2{r.Right(), r.Bottom()}),
		t.TransformVec(Vec2{r.X, r.Bottom()}),
	})
}

// Determinant returns the determinant of the linear part.
func (t Transform) Determinant() float64 {
	return t.m[0]*t.m[3] - t.m[2]*t.m[1]
}

// Inverse returns the inverse transform, or ErrSingularTransform when the
// determinant is within 1e-12 of zero or is not finite.
func (t Transform) Inverse() (Transform, error) {
	m := t.m
	det := t.Determinant()
	if math.IsNaN(det) || math.IsInf(det, 0) || math.Abs(det) < singularEpsilon {
		return Transform{}, ErrSingularTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Transform{[6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}}, nil
}

// IsIdentity reports whether t is exactly the identity.
func (t Transform) IsIdentity() bool {
	return t == identity
}

// ApproxEqual reports whether every element of t is within eps of o.
func (t Transform) ApproxEqual(o Transform, eps float64) bool {
	for i := range t.m {
		if math.Abs(t.m[i]-o.m[i]) > eps {
			return false
		}
	}
	return true
}

// Validate returns a *NonFiniteError for the first NaN or infinite element.
// Transforms built from NaN or infinite inputs are otherwise passed through
// unchanged.
func (t Transform) Validate() error {
	for i, v := range t.m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &NonFiniteError{Index: i, Value: v}
		}
	}
	return nil
}

// Matrix returns the six free parameters [a, b, c, d, tx, ty].
func (t Transform) Matrix() [6]float64 {
	return t.m
}

// Matrix3 returns the full 3x3 matrix in row-major order.
func (t Transform) Matrix3() [9]float64 {
	m := t.m
	return [9]float64{
		m[0], m[2], m[4],
		m[1], m[3], m[5],
		0, 0, 1,
	}
}

// GeoM converts t to an ebiten.GeoM.
func (t Transform) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, t.m[0])
	g.SetElement(0, 1, t.m[2])
	g.SetElement(0, 2, t.m[4])
	g.SetElement(1, 0, t.m[1])
	g.SetElement(1, 1, t.m[3])
	g.SetElement(1, 2, t.m[5])
	return g
}

func (t Transform) String() string {
	m := t.m
	return fmt.Sprintf("[%g %g %g; %g %g %g]", m[0], m[2], m[4], m[1], m[3], m[5])
}
