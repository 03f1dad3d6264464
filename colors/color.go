package colors

import (
	"image/color"
	"math"
	"strconv"

	"github.com/echoflaresat/pathtracer/rays"
)

// Color is a linear RGB color. Components are unbounded while light is being
// accumulated and only get clamped when the color is encoded.
type Color struct {
	R, G, B float64
}

func New(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

func White() Color {
	return Color{R: 1, G: 1, B: 1}
}

func Black() Color {
	return Color{R: 0, G: 0, B: 0}
}

// Add returns c + o (component-wise).
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Mul returns c * o (component-wise).
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Scale returns c * s (scalar).
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Mix returns lerp(c, o, t) = c*(1-t) + o*t.
func (c Color) Mix(o Color, t float64) Color {
	return c.Scale(1.0 - t).Add(o.Scale(t))
}

// ApproxEqual reports whether c and o differ by at most tol on every channel.
func (c Color) ApproxEqual(o Color, tol float64) bool {
	return math.Abs(c.R-o.R) <= tol &&
		math.Abs(c.G-o.G) <= tol &&
		math.Abs(c.B-o.B) <= tol
}

// Bytes returns the gamma-encoded 8-bit channels.
func (c Color) Bytes() (r, g, b uint8) {
	return to8bit(c.R), to8bit(c.G), to8bit(c.B)
}

// Encode returns the plain PPM pixel line "r g b\n".
func (c Color) Encode() string {
	return string(c.AppendPPM(nil))
}

// AppendPPM appends the plain PPM pixel line for c to dst.
func (c Color) AppendPPM(dst []byte) []byte {
	r, g, b := c.Bytes()
	dst = strconv.AppendUint(dst, uint64(r), 10)
	dst = append(dst, ' ')
	dst = strconv.AppendUint(dst, uint64(g), 10)
	dst = append(dst, ' ')
	dst = strconv.AppendUint(dst, uint64(b), 10)
	return append(dst, '\n')
}

// ToNRGBA returns the gamma-encoded opaque color.
func (c Color) ToNRGBA() color.NRGBA {
	r, g, b := c.Bytes()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// RGBA implements color.Color using the same gamma encoding as Encode.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.ToNRGBA().RGBA()
}

// --- helpers ---

// intensity is the range a component is clamped to before encoding.
var intensity = rays.NewInterval(0, 0.999)

// to8bit clamps x into intensity, applies gamma 2 and truncates 255.999*x.
func to8bit(x float64) uint8 {
	if math.IsNaN(x) {
		return 0
	}
	return uint8(255.999 * math.Sqrt(intensity.Clamp(x)))
}
