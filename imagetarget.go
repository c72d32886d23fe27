package sprig

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage = ebiten.NewImage(3, 3)

	// whitePixel is the center pixel of whiteImage, used as the source for
	// untextured triangles. Sampling the center avoids edge bleeding.
	whitePixel *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	whitePixel = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// EbitenPrimitive is implemented by custom primitives that draw themselves
// onto an ebiten image. ImageTarget prefers it over the built-in primitives.
type EbitenPrimitive interface {
	Primitive
	DrawEbiten(dst *ebiten.Image, geoM ebiten.GeoM)
}

// ImageTarget is a RenderTarget that rasterizes primitives onto an
// *ebiten.Image.
type ImageTarget struct {
	dst *ebiten.Image

	// reused scratch buffers
	verts []ebiten.Vertex
	inds  []uint32
}

// NewImageTarget wraps dst.
func NewImageTarget(dst *ebiten.Image) *ImageTarget {
	return &ImageTarget{dst: dst}
}

// Image returns the destination image.
func (it *ImageTarget) Image() *ebiten.Image {
	return it.dst
}

// Clip returns a target that draws into the part of the destination inside r.
// Coordinates stay those of the full destination.
func (it *ImageTarget) Clip(r Rect) RenderTarget {
	rect := image.Rect(int(r.X), int(r.Y), int(r.Right()), int(r.Bottom()))
	return &ImageTarget{dst: it.dst.SubImage(rect).(*ebiten.Image)}
}

// Draw rasterizes p with transform t.
func (it *ImageTarget) Draw(p Primitive, t Transform) {
	switch v := p.(type) {
	case EbitenPrimitive:
		v.DrawEbiten(it.dst, t.GeoM())
	case *Sprite:
		it.drawSprite(v, t)
	case Shape:
		it.drawShape(v, t)
	case *VertexArray:
		it.drawVertexArray(v, t)
	default:
		Logger().Debug("skipping unsupported primitive", "type", fmt.Sprintf("%T", p))
	}
}

func (it *ImageTarget) drawSprite(s *Sprite, t Transform) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM = t.GeoM()
	r, g, b, a := s.Color.premultiplied()
	op.ColorScale.Scale(r, g, b, a)
	op.Blend = s.Blend.EbitenBlend()
	it.dst.DrawImage(s.source(), op)
}

func (it *ImageTarget) drawShape(s Shape, t Transform) {
	pts := shapePoints(s)
	if len(pts) < 3 {
		return
	}
	style := s.Style()
	it.verts = it.verts[:0]
	it.inds = it.inds[:0]

	it.appendShapeFill(pts, style, t)
	if style.Texture != nil {
		it.flushTriangles(style.Texture)
	}
	it.appendShapeOutline(pts, style, t)
	it.flushTriangles(whitePixel)
}

// appendShapeFill adds a triangle fan around the bounding-box center of pts.
// Textured fills map the box onto the style's texture rect.
func (it *ImageTarget) appendShapeFill(pts []Vec2, style ShapeStyle, t Transform) {
	if style.Fill.A <= 0 {
		return
	}
	b := boundsOf(pts)
	srcOf := func(Vec2) (float32, float32) { return 1, 1 }
	if style.Texture != nil {
		tr := style.textureRect()
		srcOf = func(p Vec2) (float32, float32) {
			u, v := 0.0, 0.0
			if b.Width > 0 {
				u = (p.X - b.X) / b.Width
			}
			if b.Height > 0 {
				v = (p.Y - b.Y) / b.Height
			}
			return float32(float64(tr.Min.X) + u*float64(tr.Dx())),
				float32(float64(tr.Min.Y) + v*float64(tr.Dy()))
		}
	}

	base := uint32(len(it.verts))
	center := Vec2{b.X + b.Width/2, b.Y + b.Height/2}
	sx, sy := srcOf(center)
	it.appendVertex(t, center, style.Fill, sx, sy)
	for _, p := range pts {
		sx, sy := srcOf(p)
		it.appendVertex(t, p, style.Fill, sx, sy)
	}
	n := uint32(len(pts))
	for i := uint32(1); i <= n; i++ {
		it.inds = append(it.inds, base, base+i, base+i%n+1)
	}
}

// appendShapeOutline adds the quad strip between pts and their extruded ring.
func (it *ImageTarget) appendShapeOutline(pts []Vec2, style ShapeStyle, t Transform) {
	if style.OutlineThickness == 0 || style.Outline.A <= 0 {
		return
	}
	ring := outlineRing(pts, style.OutlineThickness)
	base := uint32(len(it.verts))
	for i := range pts {
		it.appendVertex(t, pts[i], style.Outline, 1, 1)
		it.appendVertex(t, ring[i], style.Outline, 1, 1)
	}
	n := uint32(len(pts))
	for i := uint32(0); i < n; i++ {
		j := (i + 1) % n
		in0, out0 := base+2*i, base+2*i+1
		in1, out1 := base+2*j, base+2*j+1
		it.inds = append(it.inds, in0, out0, in1, in1, out0, out1)
	}
}

// flushTriangles draws the pending triangles from src and empties the
// buffers.
func (it *ImageTarget) flushTriangles(src *ebiten.Image) {
	if len(it.inds) > 0 {
		op := &ebiten.DrawTrianglesOptions{ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha}
		it.dst.DrawTriangles32(it.verts, it.inds, src, op)
	}
	it.verts = it.verts[:0]
	it.inds = it.inds[:0]
}

func (it *ImageTarget) appendVertex(t Transform, p Vec2, c Color, srcX, srcY float32) {
	x, y := t.TransformPoint(p.X, p.Y)
	r, g, b, a := c.premultiplied()
	it.verts = append(it.verts, ebiten.Vertex{
		DstX: float32(x), DstY: float32(y),
		SrcX: srcX, SrcY: srcY,
		ColorR: r, ColorG: g, ColorB: b, ColorA: a,
	})
}

func (it *ImageTarget) drawVertexArray(va *VertexArray, t Transform) {
	switch va.Type {
	case Points:
		for i := range va.Vertices {
			v := &va.Vertices[i]
			x, y := t.TransformPoint(v.Position.X, v.Position.Y)
			vector.DrawFilledRect(it.dst, float32(x), float32(y), 1, 1, v.Color.toRGBA(), false)
		}
		return
	case Lines, LineStrip:
		for _, seg := range va.Segments() {
			a, b := &va.Vertices[seg[0]], &va.Vertices[seg[1]]
			x0, y0 := t.TransformPoint(a.Position.X, a.Position.Y)
			x1, y1 := t.TransformPoint(b.Position.X, b.Position.Y)
			vector.StrokeLine(it.dst, float32(x0), float32(y0), float32(x1), float32(y1), 1, a.Color.toRGBA(), false)
		}
		return
	}

	inds := va.Triangles()
	if len(inds) == 0 {
		return
	}
	src := whitePixel
	var origin image.Point
	if va.Texture != nil {
		src = va.Texture
		origin = va.Texture.Bounds().Min
	}
	it.verts = transformVertices(va.Vertices, it.verts[:0], t, va.Texture != nil, origin)
	op := &ebiten.DrawTrianglesOptions{
		Blend:          va.Blend.EbitenBlend(),
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
	}
	it.dst.DrawTriangles(it.verts, inds, src, op)
}

// transformVertices applies t to src positions and appends ebiten vertices
// to dst. Untextured vertices sample the white pixel.
func transformVertices(src []Vertex, dst []ebiten.Vertex, t Transform, textured bool, origin image.Point) []ebiten.Vertex {
	m := t.Matrix()
	a, b, c, d, tx, ty := m[0], m[1], m[2], m[3], m[4], m[5]
	for i := range src {
		s := &src[i]
		ox, oy := s.Position.X, s.Position.Y
		r, g, bl, al := s.Color.premultiplied()
		v := ebiten.Vertex{
			DstX:   float32(a*ox + c*oy + tx),
			DstY:   float32(b*ox + d*oy + ty),
			SrcX:   1,
			SrcY:   1,
			ColorR: r,
			ColorG: g,
			ColorB: bl,
			ColorA: al,
		}
		if textured {
			v.SrcX = float32(s.TexCoords.X) + float32(origin.X)
			v.SrcY = float32(s.TexCoords.Y) + float32(origin.Y)
		}
		dst = append(dst, v)
	}
	return dst
}
