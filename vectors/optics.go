package vectors

import "math"

// Reflect mirrors v about the surface normal n: v - 2(v·n)n.
func Reflect(v, n Vec3) Vec3 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// Refract bends the unit direction uv through a surface with unit normal n
// following Snell's law. ratio is the incident over transmitted refractive index.
func Refract(uv, n Vec3, ratio float64) Vec3 {
	cosTheta := math.Min(n.Dot(uv.Negate()), 1.0)
	perp := uv.Add(n.Scale(cosTheta)).Scale(ratio)
	parallel := n.Scale(-math.Sqrt(math.Abs(1.0 - perp.LengthSquared())))
	return perp.Add(parallel)
}
