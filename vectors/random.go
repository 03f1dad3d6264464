package vectors

import (
	"math"
	"math/rand/v2"
)

// RandomFloat returns a uniform sample in [0,1).
func RandomFloat(rng *rand.Rand) float64 {
	return rng.Float64()
}

// RandomRange returns a uniform sample in [min,max).
func RandomRange(rng *rand.Rand, min, max float64) float64 {
	return min + (max-min)*rng.Float64()
}

// Random returns a vector with independent components in [0,1).
func Random(rng *rand.Rand) Vec3 {
	return Vec3{rng.Float64(), rng.Float64(), rng.Float64()}
}

// RandomVecRange returns a vector with independent components in [min,max).
func RandomVecRange(rng *rand.Rand, min, max float64) Vec3 {
	return Vec3{
		RandomRange(rng, min, max),
		RandomRange(rng, min, max),
		RandomRange(rng, min, max),
	}
}

// RandomUnitVector returns a direction uniformly distributed on the unit sphere,
// built by normalizing three standard-normal draws.
func RandomUnitVector(rng *rand.Rand) Vec3 {
	for {
		p := Vec3{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
		if lsq := p.LengthSquared(); lsq > 1e-160 {
			return p.DivScalar(math.Sqrt(lsq))
		}
	}
}

// RandomInUnitDisk returns a point uniformly distributed in the unit disk on
// the z=0 plane, sampled in polar coordinates.
func RandomInUnitDisk(rng *rand.Rand) Vec3 {
	r := math.Sqrt(rng.Float64())
	theta := 2 * math.Pi * rng.Float64()
	return Vec3{r * math.Cos(theta), r * math.Sin(theta), 0}
}
