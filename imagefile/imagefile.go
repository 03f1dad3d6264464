// Package imagefile loads and saves images by file name, picking the codec
// from the content on load and from the extension on save.
package imagefile

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/echoflaresat/tiff"
	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
	xtiff "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP with image.Decode

	"github.com/echoflaresat/pathtracer/ppm"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// Image is a loaded image that may still be backed by its file.
type Image struct {
	image.Image
	closer io.Closer
}

// Close releases the file behind the image, if any.
func (i *Image) Close() error {
	if i.closer != nil {
		return i.closer.Close()
	}
	return nil
}

var (
	tiffLittleEndian = []byte("II*\x00")
	tiffBigEndian    = []byte("MM\x00*")
)

// Load opens path as a PPM (memory-mapped), a TIFF, or any format registered
// with image.Decode.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var magic [4]byte
	n, _ := io.ReadFull(f, magic[:])
	sniffed := magic[:n]

	if bytes.HasPrefix(sniffed, []byte("P3")) || bytes.HasPrefix(sniffed, []byte("P6")) {
		f.Close()
		pf, err := ppm.Open(path)
		if err != nil {
			return nil, err
		}
		return &Image{Image: pf, closer: pf}, nil
	}

	if bytes.Equal(sniffed, tiffLittleEndian) || bytes.Equal(sniffed, tiffBigEndian) {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			f.Close()
			return nil, err
		}
		img, err := tiff.Decode(f)
		if err == nil {
			return &Image{Image: img, closer: f}, nil
		}
		slog.Warn("failed to load TIFF, falling back to image codecs", "path", path, "error", err)
	}

	// fallback to image codecs
	defer f.Close()
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(f)
	if errors.Is(err, image.ErrFormat) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Image{Image: img}, nil
}

type encodeFunc func(w io.Writer, img image.Image) error

// encoders maps lower-case file extensions to encoders.
var encoders = map[string]encodeFunc{
	".ppm": ppm.Encode,
	".png": func(w io.Writer, img image.Image) error {
		return (&png.Encoder{CompressionLevel: png.BestSpeed}).Encode(w, img)
	},
	".jpg":  encodeJPEG,
	".jpeg": encodeJPEG,
	".tif":  encodeTIFF,
	".tiff": encodeTIFF,
	".bmp":  bmp.Encode,
}

func encodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
}

func encodeTIFF(w io.Writer, img image.Image) error {
	return xtiff.Encode(w, img, &xtiff.Options{Compression: xtiff.Deflate})
}

// Encode writes img in the format named by ext (".png", ".ppm", ...).
func Encode(w io.Writer, img image.Image, ext string) error {
	enc, ok := encoders[strings.ToLower(ext)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return enc(w, img)
}

// Supported reports whether Save can write a file named path.
func Supported(path string) bool {
	_, ok := encoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Save writes img to path in the format implied by its extension.
func Save(path string, img image.Image) error {
	if !Supported(path) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, img, filepath.Ext(path)); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// Thumbnail scales img down to width pixels, keeping its aspect ratio.
// Images already that narrow are returned unchanged.
func Thumbnail(img image.Image, width uint) image.Image {
	if width == 0 || int(width) >= img.Bounds().Dx() {
		return img
	}
	return resize.Resize(width, 0, img, resize.Lanczos3)
}
