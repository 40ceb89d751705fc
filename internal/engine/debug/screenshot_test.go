package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCaptureFromPixelsFlipsRows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "surface")
	sc.now = func() time.Time { return time.Date(2026, 10, 18, 12, 30, 0, 0, time.UTC) }

	// 1x2 image: bottom row red, top row blue (GL order).
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels: %v", err)
	}
	if want := filepath.Join(dir, "surface_2026-10-18_12-30-00.000.png"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	r, _, b, _ := img.At(0, 0).RGBA()
	if b != 0xffff || r != 0 {
		t.Errorf("top pixel should be blue, got r=%x b=%x", r, b)
	}
	r, _, b, _ = img.At(0, 1).RGBA()
	if r != 0xffff || b != 0 {
		t.Errorf("bottom pixel should be red, got r=%x b=%x", r, b)
	}
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "surface")
	_, err := sc.CaptureFromPixels(make([]byte, 7), 1, 2)
	if err == nil || !strings.Contains(err.Error(), "size mismatch") {
		t.Errorf("expected size mismatch error, got %v", err)
	}
}
