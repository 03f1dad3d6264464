package rays

import "math"

// Interval is the range [Min, Max] of ray parameters or channel values.
//
// Universe and Empty deliberately break Min <= Max: nothing is inside Empty,
// and everything is inside Universe.
type Interval struct {
	Min, Max float64
}

func NewInterval(min, max float64) Interval {
	return Interval{Min: min, Max: max}
}

func Universe() Interval {
	return Interval{Min: math.Inf(-1), Max: math.Inf(1)}
}

func Empty() Interval {
	return Interval{Min: math.Inf(1), Max: math.Inf(-1)}
}

// Size returns Max - Min.
func (i Interval) Size() float64 {
	return i.Max - i.Min
}

// Contains reports whether Min <= x <= Max.
func (i Interval) Contains(x float64) bool {
	return i.Min <= x && x <= i.Max
}

// Surrounds reports whether Min < x < Max. Roots sitting exactly on a bound are
// rejected, which is what keeps a scattered ray from hitting its own origin.
func (i Interval) Surrounds(x float64) bool {
	return i.Min < x && x < i.Max
}

// Clamp clamps x into the inclusive range [Min, Max].
func (i Interval) Clamp(x float64) float64 {
	if x < i.Min {
		return i.Min
	}
	if x > i.Max {
		return i.Max
	}
	return x
}

// WithMin returns a copy of i with a new lower bound.
func (i Interval) WithMin(min float64) Interval {
	return Interval{Min: min, Max: i.Max}
}

// WithMax returns a copy of i with a new upper bound.
func (i Interval) WithMax(max float64) Interval {
	return Interval{Min: i.Min, Max: max}
}
