package sprig

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite draws a rectangular region of an image. A sprite with a nil Image
// draws a 1x1 solid-color square and ignores Region; scale the node to size
// it.
type Sprite struct {
	Image *ebiten.Image
	// Region selects part of Image in pixels. The zero value uses the
	// whole image.
	Region image.Rectangle
	Color  Color
	Blend  BlendMode
}

// NewSprite creates a white-tinted sprite showing all of img.
func NewSprite(img *ebiten.Image) *Sprite {
	return &Sprite{Image: img, Color: ColorWhite}
}

// NewSpriteRegion creates a sprite showing region of img.
func NewSpriteRegion(img *ebiten.Image, region image.Rectangle) *Sprite {
	return &Sprite{Image: img, Region: region, Color: ColorWhite}
}

// LocalBounds returns (0, 0, w, h) where w, h is the region size.
func (s *Sprite) LocalBounds() Rect {
	if s.Image == nil {
		return Rect{Width: 1, Height: 1}
	}
	if !s.Region.Empty() {
		return Rect{Width: float64(s.Region.Dx()), Height: float64(s.Region.Dy())}
	}
	b := s.Image.Bounds()
	return Rect{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// Draw forwards the sprite to target.
func (s *Sprite) Draw(target RenderTarget, t Transform) {
	target.Draw(s, t)
}

// source returns the image to draw, already cut to Region.
func (s *Sprite) source() *ebiten.Image {
	if s.Image == nil {
		return whitePixel
	}
	if s.Region.Empty() {
		return s.Image
	}
	r := s.Region.Add(s.Image.Bounds().Min)
	return s.Image.SubImage(r).(*ebiten.Image)
}
