// Package material holds the closed set of scattering models a surface can
// have: Lambertian, Metal and Dielectric.
package material

import (
	"math/rand/v2"

	"github.com/echoflaresat/pathtracer/colors"
	"github.com/echoflaresat/pathtracer/rays"
)

// Material decides what happens to a ray at a surface. Scatter returns the
// outgoing ray and its attenuation, or ok=false when the ray is absorbed.
//
// The set of implementations is closed; only this package can add one.
type Material interface {
	Scatter(in rays.Ray, rec rays.HitRecord, rng *rand.Rand) (out rays.Ray, attenuation colors.Color, ok bool)
	sealed()
}
