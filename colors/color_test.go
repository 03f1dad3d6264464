package colors

import (
	"image/color"
	"math"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		want  string
	}{
		{"clamps and gamma corrects", New(2.0, 0.5, -1.0), "255 181 0\n"},
		{"black", Black(), "0 0 0\n"},
		{"white saturates below 256", White(), "255 255 255\n"},
		{"quarter is half after gamma", New(0.25, 0.25, 0.25), "127 127 127\n"},
		{"nan encodes as zero", New(math.NaN(), 0, 0), "0 0 0\n"},
		{"infinities clamp to the ends", New(math.Inf(1), math.Inf(-1), 0.999), "255 0 255\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.color.Encode(); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppendPPM(t *testing.T) {
	buf := []byte("P3\n")
	buf = New(0.25, 0, 1).AppendPPM(buf)
	if got, want := string(buf), "P3\n127 0 255\n"; got != want {
		t.Errorf("AppendPPM = %q, want %q", got, want)
	}
}

func TestArithmetic(t *testing.T) {
	a := New(0.5, 1, 2)
	b := New(2, 0.5, 0.25)

	if got := a.Add(b); got != New(2.5, 1.5, 2.25) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Mul(b); got != New(1, 0.5, 0.5) {
		t.Errorf("Mul = %v", got)
	}
	if got := a.Scale(2); got != New(1, 2, 4) {
		t.Errorf("Scale = %v", got)
	}
	if got := White().Mix(New(0.5, 0.7, 1.0), 0.5); !got.ApproxEqual(New(0.75, 0.85, 1.0), 1e-12) {
		t.Errorf("Mix = %v", got)
	}
}

func TestImplementsColor(t *testing.T) {
	var c color.Color = New(1, 0, 0)
	r, g, b, a := c.RGBA()
	if r != 0xffff || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("RGBA() = %d %d %d %d", r, g, b, a)
	}
}
