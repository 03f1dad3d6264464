package render

import (
	"image"
	"image/color"

	"github.com/echoflaresat/pathtracer/colors"
	"github.com/echoflaresat/pathtracer/ppm"
)

// Frame holds the linear colors of a rendered rectangle. It implements
// image.Image, returning gamma-encoded pixels.
type Frame struct {
	Rect image.Rectangle
	// Pix is row-major, starting at Rect.Min.
	Pix []colors.Color
}

func NewFrame(r image.Rectangle) *Frame {
	return &Frame{
		Rect: r,
		Pix:  make([]colors.Color, r.Dx()*r.Dy()),
	}
}

// Row returns the slice of Pix backing row y. Writes through it modify f.
func (f *Frame) Row(y int) []colors.Color {
	start := (y - f.Rect.Min.Y) * f.Rect.Dx()
	return f.Pix[start : start+f.Rect.Dx()]
}

func (f *Frame) Pixel(x, y int) colors.Color {
	return f.Pix[f.offset(x, y)]
}

func (f *Frame) SetPixel(x, y int, c colors.Color) {
	f.Pix[f.offset(x, y)] = c
}

func (f *Frame) offset(x, y int) int {
	return (y-f.Rect.Min.Y)*f.Rect.Dx() + (x - f.Rect.Min.X)
}

func (f *Frame) ColorModel() color.Model { return color.NRGBAModel }

func (f *Frame) Bounds() image.Rectangle { return f.Rect }

func (f *Frame) At(x, y int) color.Color {
	if !image.Pt(x, y).In(f.Rect) {
		return color.NRGBA{}
	}
	return f.Pixel(x, y).ToNRGBA()
}

// AppendPPM appends the plain PPM encoding of f to dst: the header, then one
// "r g b" line per pixel, top row first.
func (f *Frame) AppendPPM(dst []byte) []byte {
	dst = ppm.AppendHeader(dst, f.Rect.Dx(), f.Rect.Dy())
	for y := f.Rect.Min.Y; y < f.Rect.Max.Y; y++ {
		for _, c := range f.Row(y) {
			dst = c.AppendPPM(dst)
		}
	}
	return dst
}
