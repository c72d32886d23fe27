package sprig

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"arm-45", "arm-45"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#", "special___"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueue(t *testing.T) {
	s := NewScene()
	if s.ScreenshotDir != DefaultScreenshotDir {
		t.Errorf("ScreenshotDir = %q, want %q", s.ScreenshotDir, DefaultScreenshotDir)
	}
	s.Screenshot("a")
	s.Screenshot("b")
	if n := s.PendingScreenshots(); n != 2 {
		t.Fatalf("pending = %d, want 2", n)
	}
	labels := s.takeScreenshots()
	if len(labels) != 2 || labels[0] != "a" || labels[1] != "b" {
		t.Errorf("labels = %v, want [a b]", labels)
	}
	if n := s.PendingScreenshots(); n != 0 {
		t.Errorf("pending after take = %d, want 0", n)
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		128, 64, 0, 128, // half alpha
		255, 255, 255, 255, // opaque
		0, 0, 0, 0, // transparent
		200, 200, 200, 100, // over-bright after division clamps to 255
	}
	img := unpremultiply(pixels, 2, 2)
	want := []byte{
		255, 127, 0, 128,
		255, 255, 255, 255,
		0, 0, 0, 0,
		255, 255, 255, 100,
	}
	for i := range want {
		if img.Pix[i] != want[i] {
			t.Errorf("Pix[%d] = %d, want %d", i, img.Pix[i], want[i])
		}
	}
}

func TestWriteScreenshots(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))

	paths := writeScreenshots(dir, "20260101_120000", []string{"first", "a b"}, img)
	want := []string{
		filepath.Join(dir, "20260101_120000_first.png"),
		filepath.Join(dir, "20260101_120000_a_b.png"),
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i, p := range paths {
		if p != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, p, want[i])
		}
		f, err := os.Open(p)
		if err != nil {
			t.Fatal(err)
		}
		decoded, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", p, err)
		}
		if b := decoded.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
			t.Errorf("%s bounds = %v", p, b)
		}
	}
}

func TestWriteScreenshotsBadDir(t *testing.T) {
	buf := captureLogger(t)
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	if paths := writeScreenshots(file, "x", []string{"a"}, img); len(paths) != 0 {
		t.Errorf("paths = %v, want none", paths)
	}
	if buf.Len() == 0 {
		t.Error("expected the failure to be logged")
	}
}
