package sprig

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Vec2 is a 2D vector used for positions, offsets, sizes, and scale factors
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns v scaled component-wise by o.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
//
// All collision queries on Rect are boundary-inclusive: a point on an edge is
// contained, and rectangles that only share an edge intersect.
type Rect struct {
	X, Y, Width, Height float64
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Min returns the top-left corner.
func (r Rect) Min() Vec2 { return Vec2{r.X, r.Y} }

// Max returns the bottom-right corner.
func (r Rect) Max() Vec2 { return Vec2{r.Right(), r.Bottom()} }

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.Right() &&
		y >= r.Y && y <= r.Bottom()
}

// ContainsPoint is Contains for a Vec2.
func (r Rect) ContainsPoint(p Vec2) bool {
	return r.Contains(p.X, p.Y)
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.Right() &&
		r.Right() >= other.X &&
		r.Y <= other.Bottom() &&
		r.Bottom() >= other.Y
}

// Intersection returns the overlapping area of r and other. The second result
// is false when the rectangles do not intersect. Edge-adjacent rectangles
// yield a zero-area rectangle and true.
func (r Rect) Intersection(other Rect) (Rect, bool) {
	if !r.Intersects(other) {
		return Rect{}, false
	}
	x0 := math.Max(r.X, other.X)
	y0 := math.Max(r.Y, other.Y)
	x1 := math.Min(r.Right(), other.Right())
	y1 := math.Min(r.Bottom(), other.Bottom())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, true
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	x0 := math.Min(r.X, other.X)
	y0 := math.Min(r.Y, other.Y)
	x1 := math.Max(r.Right(), other.Right())
	y1 := math.Max(r.Bottom(), other.Bottom())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// boundsOf returns the smallest Rect enclosing pts.
func boundsOf(pts []Vec2) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

var (
	// ColorWhite is the default tint (no color modification).
	ColorWhite = Color{1, 1, 1, 1}
	// ColorBlack is opaque black.
	ColorBlack = Color{0, 0, 0, 1}
	// ColorTransparent disables a fill or outline.
	ColorTransparent = Color{}
)

// RGBA converts 8-bit channels to a Color.
func RGBA(r, g, b, a uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, float64(a) / 255}
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	clamp := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return color.RGBA{
		R: clamp(c.R * c.A),
		G: clamp(c.G * c.A),
		B: clamp(c.B * c.A),
		A: clamp(c.A),
	}
}

// premultiplied returns float32 premultiplied components for vertex colors.
func (c Color) premultiplied() (r, g, b, a float32) {
	return float32(c.R * c.A), float32(c.G * c.A), float32(c.B * c.A), float32(c.A)
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                       // additive / lighter
	BlendMultiply                  // multiply (source * destination; only darkens)
	BlendErase                     // destination-out (punch transparent holes)
	BlendNone                      // opaque copy (skip blending)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendErase:
		return ebiten.BlendDestinationOut
	case BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}
