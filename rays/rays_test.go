package rays

import (
	"math"
	"testing"

	"github.com/echoflaresat/pathtracer/vectors"
)

func TestRayAt(t *testing.T) {
	tests := []struct {
		name     string
		ray      Ray
		param    float64
		expected vectors.Vec3
	}{
		{
			name:     "t=0 returns origin",
			ray:      New(vectors.New(1, 2, 3), vectors.New(4, 5, 6)),
			param:    0,
			expected: vectors.New(1, 2, 3),
		},
		{
			name:     "unit direction",
			ray:      New(vectors.New(1, 2, 3), vectors.New(1, 0, 0)),
			param:    1,
			expected: vectors.New(2, 2, 3),
		},
		{
			name:     "scaled direction",
			ray:      New(vectors.Zero(), vectors.New(2, 3, 4)),
			param:    2,
			expected: vectors.New(4, 6, 8),
		},
		{
			name:     "negative t walks backwards",
			ray:      New(vectors.New(5, 5, 5), vectors.New(1, -1, 2)),
			param:    -2,
			expected: vectors.New(3, 7, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.ray.At(tt.param)
			if !got.ApproxEqual(tt.expected, 1e-12) {
				t.Errorf("At(%v) = %v, want %v", tt.param, got, tt.expected)
			}
			want := tt.ray.Origin.Add(tt.ray.Direction.Scale(tt.param))
			if got != want {
				t.Errorf("At(%v) = %v, want origin + direction*t = %v", tt.param, got, want)
			}
		})
	}
}

func TestIntervalMembership(t *testing.T) {
	iv := Universe().WithMin(-1).WithMax(2)

	tests := []struct {
		x         float64
		contains  bool
		surrounds bool
	}{
		{1.0, true, true},
		{-0.5, true, true},
		{-1.0, true, false},
		{2.0, true, false},
		{2.5, false, false},
		{-1.5, false, false},
	}

	for _, tt := range tests {
		if got := iv.Contains(tt.x); got != tt.contains {
			t.Errorf("Contains(%v) = %v, want %v", tt.x, got, tt.contains)
		}
		if got := iv.Surrounds(tt.x); got != tt.surrounds {
			t.Errorf("Surrounds(%v) = %v, want %v", tt.x, got, tt.surrounds)
		}
	}
}

func TestIntervalClamp(t *testing.T) {
	iv := NewInterval(-1, 2)

	tests := []struct {
		x, want float64
	}{
		{1.0, 1.0},
		{-0.5, -0.5},
		{-1.0, -1.0},
		{2.0, 2.0},
		{2.5, 2.0},
		{-1.5, -1.0},
	}

	for _, tt := range tests {
		if got := iv.Clamp(tt.x); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestIntervalSentinels(t *testing.T) {
	for _, x := range []float64{0, -1e300, 1e300, math.Inf(1)} {
		if Empty().Contains(x) {
			t.Errorf("Empty contains %v", x)
		}
		if !Universe().Contains(x) {
			t.Errorf("Universe does not contain %v", x)
		}
	}
	if Empty().Size() >= 0 {
		t.Errorf("Empty size = %v, want negative", Empty().Size())
	}
}

func TestIntervalWithBoundsDoesNotMutate(t *testing.T) {
	iv := NewInterval(0, 10)
	narrowed := iv.WithMax(5)
	if iv.Max != 10 {
		t.Errorf("original interval changed to %v", iv)
	}
	if narrowed != NewInterval(0, 5) {
		t.Errorf("WithMax = %v", narrowed)
	}
}

func TestNewHitRecordOrientsNormal(t *testing.T) {
	outward := vectors.New(0, 0, 1)

	front := NewHitRecord(New(vectors.New(0, 0, 5), vectors.New(0, 0, -1)), vectors.Zero(), outward, 5)
	if !front.FrontFace || front.Normal != outward {
		t.Errorf("ray from outside: got front=%v normal=%v", front.FrontFace, front.Normal)
	}

	back := NewHitRecord(New(vectors.New(0, 0, -5), vectors.New(0, 0, 1)), vectors.Zero(), outward, 5)
	if back.FrontFace || back.Normal != outward.Negate() {
		t.Errorf("ray from inside: got front=%v normal=%v", back.FrontFace, back.Normal)
	}
	if back.T != 5 {
		t.Errorf("T = %v, want 5", back.T)
	}
}
