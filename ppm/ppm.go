// Package ppm reads and writes Netpbm pixmaps. Plain (P3) files are what the
// renderer produces; raw (P6) files are accepted on input.
package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
)

var (
	ErrInvalidHeader     = errors.New("ppm: invalid header")
	ErrUnsupportedFormat = errors.New("ppm: unsupported format")
)

const (
	plain = '3'
	raw   = '6'

	// maxDimension bounds width and height so a corrupt header cannot ask for
	// an absurd allocation.
	maxDimension = 1 << 16
)

func init() {
	image.RegisterFormat("ppm", "P3", Decode, DecodeConfig)
	image.RegisterFormat("ppm", "P6", Decode, DecodeConfig)
}

// AppendHeader appends the plain PPM header for a w×h image with 8-bit channels.
func AppendHeader(dst []byte, w, h int) []byte {
	dst = append(dst, "P3\n"...)
	dst = strconv.AppendInt(dst, int64(w), 10)
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, int64(h), 10)
	return append(dst, "\n255\n"...)
}

// Encode writes img as a plain PPM, one "r g b" line per pixel. Alpha is
// dropped.
func Encode(w io.Writer, img image.Image) error {
	b := img.Bounds()
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(AppendHeader(nil, b.Dx(), b.Dy())); err != nil {
		return err
	}

	line := make([]byte, 0, 12*b.Dx())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		line = line[:0]
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			line = appendPixel(line, c)
		}
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func appendPixel(dst []byte, c color.NRGBA) []byte {
	dst = strconv.AppendUint(dst, uint64(c.R), 10)
	dst = append(dst, ' ')
	dst = strconv.AppendUint(dst, uint64(c.G), 10)
	dst = append(dst, ' ')
	dst = strconv.AppendUint(dst, uint64(c.B), 10)
	return append(dst, '\n')
}

// DecodeConfig returns the dimensions of a P3 or P6 image without reading
// its pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := readHeader(newTokenReader(bufio.NewReader(r)))
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: h.width, Height: h.height}, nil
}

// Decode reads a whole P3 or P6 image into an *image.NRGBA.
func Decode(r io.Reader) (image.Image, error) {
	tr := newTokenReader(bufio.NewReader(r))
	h, err := readHeader(tr)
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, h.width, h.height))
	for y := 0; y < h.height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+4*h.width]
		if err := h.readRow(tr, row); err != nil {
			return nil, fmt.Errorf("ppm: row %d: %w", y, err)
		}
	}
	return img, nil
}

type header struct {
	format        byte
	width, height int
	maxVal        int
}

func readHeader(t *tokenReader) (header, error) {
	var magic [2]byte
	for i := range magic {
		b, err := t.readByte()
		if err != nil {
			return header{}, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
		}
		magic[i] = b
	}
	if magic[0] != 'P' {
		return header{}, fmt.Errorf("%w: bad magic %q", ErrInvalidHeader, magic[:])
	}
	switch magic[1] {
	case plain, raw:
	case '1', '2', '4', '5', '7':
		return header{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, magic[:])
	default:
		return header{}, fmt.Errorf("%w: bad magic %q", ErrInvalidHeader, magic[:])
	}

	h := header{format: magic[1]}
	for _, field := range []*int{&h.width, &h.height, &h.maxVal} {
		v, err := t.readInt(true)
		if err != nil {
			return header{}, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
		}
		*field = v
	}

	if h.width <= 0 || h.height <= 0 || h.width > maxDimension || h.height > maxDimension {
		return header{}, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidHeader, h.width, h.height)
	}
	if h.maxVal <= 0 || h.maxVal > 65535 {
		return header{}, fmt.Errorf("%w: max value %d", ErrInvalidHeader, h.maxVal)
	}
	if h.maxVal > 255 {
		return header{}, fmt.Errorf("%w: 16-bit samples (max value %d)", ErrUnsupportedFormat, h.maxVal)
	}
	return h, nil
}

// rowBytes is the size of one raw row.
func (h header) rowBytes() int { return 3 * h.width }

// readRow decodes one row into dst, 4 bytes (NRGBA) per pixel.
func (h header) readRow(t *tokenReader, dst []byte) error {
	for x := 0; x < h.width; x++ {
		px := dst[4*x : 4*x+4]
		for c := 0; c < 3; c++ {
			var v int
			if h.format == raw {
				b, err := t.readByte()
				if err != nil {
					return noEOF(err)
				}
				v = int(b)
			} else {
				var err error
				if v, err = t.readInt(false); err != nil {
					return noEOF(err)
				}
			}
			if v > h.maxVal {
				return fmt.Errorf("sample %d exceeds max value %d", v, h.maxVal)
			}
			px[c] = h.scale(v)
		}
		px[3] = 0xff
	}
	return nil
}

func (h header) scale(v int) uint8 {
	if h.maxVal == 255 {
		return uint8(v)
	}
	return uint8((v*255 + h.maxVal/2) / h.maxVal)
}

func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// tokenReader reads header fields and plain samples, counting consumed bytes
// so callers can locate the pixel data.
type tokenReader struct {
	r io.ByteReader
	n int64
}

func newTokenReader(r io.ByteReader) *tokenReader {
	return &tokenReader{r: r}
}

func (t *tokenReader) readByte() (byte, error) {
	b, err := t.r.ReadByte()
	if err == nil {
		t.n++
	}
	return b, err
}

// readInt skips leading whitespace (and '#' comments when comments is set),
// then reads a decimal number and the single byte that terminates it.
func (t *tokenReader) readInt(comments bool) (int, error) {
	b, err := t.readByte()
	for err == nil {
		if comments && b == '#' {
			for err == nil && b != '\n' && b != '\r' {
				b, err = t.readByte()
			}
			continue
		}
		if !isSpace(b) {
			break
		}
		b, err = t.readByte()
	}
	if err != nil {
		return 0, err
	}
	if b < '0' || b > '9' {
		return 0, fmt.Errorf("unexpected byte %q at offset %d", b, t.n-1)
	}

	v := 0
	for {
		v = v*10 + int(b-'0')
		if v > 1<<24 {
			return 0, fmt.Errorf("number too large at offset %d", t.n-1)
		}
		b, err = t.readByte()
		if err == io.EOF {
			return v, nil
		}
		if err != nil {
			return 0, err
		}
		if b < '0' || b > '9' {
			if !isSpace(b) {
				return 0, fmt.Errorf("unexpected byte %q at offset %d", b, t.n-1)
			}
			return v, nil
		}
	}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
