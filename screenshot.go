package sprig

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultScreenshotDir is the directory NewScene assigns to ScreenshotDir.
const DefaultScreenshotDir = "screenshots"

// Screenshot queues a labeled capture of the next frame Run draws. The PNG is
// written to ScreenshotDir as <timestamp>_<label>.png. Safe to call from any
// goroutine, including the update func.
func (s *Scene) Screenshot(label string) {
	s.stateMu.Lock()
	s.screenshots = append(s.screenshots, label)
	s.stateMu.Unlock()
}

// PendingScreenshots returns the number of queued captures.
func (s *Scene) PendingScreenshots() int {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return len(s.screenshots)
}

func (s *Scene) takeScreenshots() []string {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	labels := s.screenshots
	s.screenshots = nil
	return labels
}

// flushScreenshots captures screen once for every queued label. Failures are
// logged, not returned, since they happen inside ebiten's Draw.
func (s *Scene) flushScreenshots(screen *ebiten.Image) {
	labels := s.takeScreenshots()
	if len(labels) == 0 {
		return
	}
	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, b.Dx(), b.Dy())

	stamp := time.Now().Format("20060102_150405")
	for _, path := range writeScreenshots(s.ScreenshotDir, stamp, labels, img) {
		Logger().Info("screenshot saved", "path", path)
	}
}

// writeScreenshots writes img once per label and returns the paths written.
func writeScreenshots(dir, stamp string, labels []string, img image.Image) []string {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		Logger().Error("screenshot: create directory", "dir", dir, "err", err)
		return nil
	}
	var written []string
	for _, label := range labels {
		path := filepath.Join(dir, stamp+"_"+sanitizeLabel(label)+".png")
		if err := writePNG(path, img); err != nil {
			Logger().Error("screenshot", "err", err)
			continue
		}
		written = append(written, path)
	}
	return written
}

// unpremultiply converts ebiten's premultiplied RGBA pixels to straight
// alpha.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.', replacing anything else
// with '_'. Blank labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, label)
}
