package imagefile

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	xtiff "golang.org/x/image/tiff"

	"github.com/echoflaresat/pathtracer/ppm"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	return img
}

func assertSamePixels(t *testing.T, got, want image.Image) {
	t.Helper()
	if got.Bounds() != want.Bounds() {
		t.Fatalf("bounds = %v, want %v", got.Bounds(), want.Bounds())
	}
	b := want.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.NRGBAModel.Convert(got.At(x, y))
			w := color.NRGBAModel.Convert(want.At(x, y))
			if g != w {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, g, w)
			}
		}
	}
}

func TestSaveLoadLossless(t *testing.T) {
	dir := t.TempDir()
	want := gradient(20, 10)

	for _, ext := range []string{".ppm", ".png", ".bmp"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "img"+ext)
			if err := Save(path, want); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			img, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			defer img.Close()
			assertSamePixels(t, img, want)
		})
	}
}

func TestLoadPPMIsMapped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.ppm")
	if err := Save(path, gradient(4, 4)); err != nil {
		t.Fatal(err)
	}
	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer img.Close()
	if _, ok := img.Image.(*ppm.File); !ok {
		t.Errorf("PPM loaded as %T, want *ppm.File", img.Image)
	}
}

func TestSaveTIFF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.TIF")
	want := gradient(16, 16)
	if err := Save(path, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := xtiff.Decode(f)
	if err != nil {
		t.Fatalf("written TIFF does not decode: %v", err)
	}
	assertSamePixels(t, got, want)
}

func TestSaveJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.jpeg")
	if err := Save(path, gradient(32, 8)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer img.Close()
	if img.Bounds() != image.Rect(0, 0, 32, 8) {
		t.Errorf("bounds = %v", img.Bounds())
	}
}

func TestUnsupportedFormats(t *testing.T) {
	dir := t.TempDir()

	if err := Save(filepath.Join(dir, "img.gif"), gradient(2, 2)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save .gif: err = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "img.gif")); !os.IsNotExist(err) {
		t.Error("unsupported Save left a file behind")
	}

	text := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(text, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(text); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load text: err = %v, want ErrUnsupportedFormat", err)
	}

	if _, err := Load(filepath.Join(dir, "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load missing: err = %v", err)
	}
}

func TestSupported(t *testing.T) {
	tests := map[string]bool{
		"out.ppm":  true,
		"out.PNG":  true,
		"a/b.jpg":  true,
		"x.tiff":   true,
		"x.bmp":    true,
		"x.gif":    false,
		"noext":    false,
		"dir.png/": false,
	}
	for path, want := range tests {
		if got := Supported(path); got != want {
			t.Errorf("Supported(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestThumbnail(t *testing.T) {
	img := gradient(64, 32)

	thumb := Thumbnail(img, 16)
	if got := thumb.Bounds().Size(); got != image.Pt(16, 8) {
		t.Errorf("thumbnail size = %v, want 16x8", got)
	}
	if Thumbnail(img, 0) != image.Image(img) {
		t.Error("width 0 should return the image unchanged")
	}
	if Thumbnail(img, 100) != image.Image(img) {
		t.Error("upscaling should return the image unchanged")
	}
}
