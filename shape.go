package sprig

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// defaultCirclePoints is the polygon resolution used when
// CircleShape.Sides is zero.
const defaultCirclePoints = 30

// ShapeStyle holds the fill and outline of a shape. A positive
// OutlineThickness extrudes the outline outward; a negative one extrudes it
// inward. Set Fill to ColorTransparent for outline-only shapes.
//
// A non-nil Texture is stretched over the bounding box of the shape's points
// and tinted by Fill. TextureRect selects the part of Texture to use, in
// pixels relative to its bounds; the zero value uses all of it. The outline
// is never textured.
type ShapeStyle struct {
	Fill             Color
	Outline          Color
	OutlineThickness float64
	Texture          *ebiten.Image
	TextureRect      image.Rectangle
}

// textureRect returns the source rectangle in the texture's own coordinate
// space.
func (s ShapeStyle) textureRect() image.Rectangle {
	b := s.Texture.Bounds()
	if s.TextureRect.Empty() {
		return b
	}
	return s.TextureRect.Add(b.Min)
}

// Style returns s. It lets shapes expose their embedded style through the
// Shape interface.
func (s ShapeStyle) Style() ShapeStyle { return s }

// Shape is a filled polygon described by its points in local space, in
// clockwise or counter-clockwise order. The polygon must be drawable as a
// triangle fan from its center.
type Shape interface {
	Drawable
	PointCount() int
	Point(i int) Vec2
	Style() ShapeStyle
}

// shapePoints collects every point of s.
func shapePoints(s Shape) []Vec2 {
	n := s.PointCount()
	pts := make([]Vec2, n)
	for i := range pts {
		pts[i] = s.Point(i)
	}
	return pts
}

// shapeBounds returns the local bounds of s including its outline.
func shapeBounds(s Shape) Rect {
	pts := shapePoints(s)
	th := s.Style().OutlineThickness
	if th == 0 || len(pts) < 3 {
		return boundsOf(pts)
	}
	return boundsOf(append(pts, outlineRing(pts, th)...))
}

// outlineRing returns the extruded outline vertices of a closed polygon, one
// per input point, offset by thickness along the miter normal. Pair each with
// the original point to build a triangle strip.
func outlineRing(pts []Vec2, thickness float64) []Vec2 {
	n := len(pts)
	center := boundsOf(pts)
	cx, cy := center.X+center.Width/2, center.Y+center.Height/2
	out := make([]Vec2, n)
	for i := range pts {
		p0 := pts[(i+n-1)%n]
		p1 := pts[i]
		p2 := pts[(i+1)%n]

		n1 := edgeNormal(p0, p1)
		n2 := edgeNormal(p1, p2)

		// Point normals away from the center.
		if n1.X*(cx-p1.X)+n1.Y*(cy-p1.Y) > 0 {
			n1 = Vec2{-n1.X, -n1.Y}
		}
		if n2.X*(cx-p1.X)+n2.Y*(cy-p1.Y) > 0 {
			n2 = Vec2{-n2.X, -n2.Y}
		}

		factor := 1 + (n1.X*n2.X + n1.Y*n2.Y)
		normal := n1
		if factor != 0 {
			normal = Vec2{(n1.X + n2.X) / factor, (n1.Y + n2.Y) / factor}
		}
		out[i] = Vec2{p1.X + normal.X*thickness, p1.Y + normal.Y*thickness}
	}
	return out
}

// edgeNormal returns the unit normal of the segment p1->p2, or zero for a
// degenerate segment.
func edgeNormal(p1, p2 Vec2) Vec2 {
	nx, ny := p1.Y-p2.Y, p2.X-p1.X
	l := math.Hypot(nx, ny)
	if l == 0 {
		return Vec2{}
	}
	return Vec2{nx / l, ny / l}
}

// --- RectangleShape ---

// RectangleShape is an axis-aligned rectangle of the given size with its
// top-left corner at (0, 0).
type RectangleShape struct {
	ShapeStyle
	Size Vec2
}

// NewRectangleShape creates a white rectangle.
func NewRectangleShape(w, h float64) *RectangleShape {
	return &RectangleShape{ShapeStyle: ShapeStyle{Fill: ColorWhite}, Size: Vec2{w, h}}
}

func (r *RectangleShape) PointCount() int { return 4 }

func (r *RectangleShape) Point(i int) Vec2 {
	switch i {
	case 1:
		return Vec2{r.Size.X, 0}
	case 2:
		return r.Size
	case 3:
		return Vec2{0, r.Size.Y}
	default:
		return Vec2{}
	}
}

func (r *RectangleShape) LocalBounds() Rect { return shapeBounds(r) }

func (r *RectangleShape) Draw(target RenderTarget, t Transform) { target.Draw(r, t) }

// --- CircleShape ---

// CircleShape approximates a circle of the given radius by a regular polygon.
// Its bounding square has its top-left corner at (0, 0). Small side counts
// give regular polygons: 3 is a triangle, 4 a square (diamond), and so on.
type CircleShape struct {
	ShapeStyle
	Radius float64
	Sides  int // zero means 30
}

// NewCircleShape creates a white circle.
func NewCircleShape(radius float64) *CircleShape {
	return &CircleShape{ShapeStyle: ShapeStyle{Fill: ColorWhite}, Radius: radius}
}

func (c *CircleShape) PointCount() int {
	if c.Sides <= 0 {
		return defaultCirclePoints
	}
	return c.Sides
}

// Point returns vertex i; vertex 0 is at the top.
func (c *CircleShape) Point(i int) Vec2 {
	angle := float64(i)*2*math.Pi/float64(c.PointCount()) - math.Pi/2
	sin, cos := math.Sincos(angle)
	return Vec2{c.Radius + cos*c.Radius, c.Radius + sin*c.Radius}
}

func (c *CircleShape) LocalBounds() Rect { return shapeBounds(c) }

func (c *CircleShape) Draw(target RenderTarget, t Transform) { target.Draw(c, t) }

// --- ConvexShape ---

// ConvexShape is an arbitrary polygon drawable as a triangle fan from its
// center (convex shapes, and star-like shapes around their center).
type ConvexShape struct {
	ShapeStyle
	Points []Vec2
}

// NewConvexShape creates a white polygon from pts.
func NewConvexShape(pts ...Vec2) *ConvexShape {
	return &ConvexShape{ShapeStyle: ShapeStyle{Fill: ColorWhite}, Points: pts}
}

func (c *ConvexShape) PointCount() int { return len(c.Points) }

func (c *ConvexShape) Point(i int) Vec2 { return c.Points[i] }

func (c *ConvexShape) LocalBounds() Rect { return shapeBounds(c) }

func (c *ConvexShape) Draw(target RenderTarget, t Transform) { target.Draw(c, t) }
