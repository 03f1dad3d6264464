package material

import (
	"math/rand/v2"

	"github.com/echoflaresat/pathtracer/colors"
	"github.com/echoflaresat/pathtracer/rays"
	"github.com/echoflaresat/pathtracer/vectors"
)

// Metal is a specular reflector. Fuzz in [0,1] roughens the reflection.
type Metal struct {
	Albedo colors.Color
	Fuzz   float64
}

func NewMetal(albedo colors.Color, fuzz float64) Metal {
	return Metal{Albedo: albedo, Fuzz: fuzz}
}

// Scatter reflects the incoming ray. Rays that the fuzz pushed below the
// surface are absorbed.
func (m Metal) Scatter(in rays.Ray, rec rays.HitRecord, rng *rand.Rand) (rays.Ray, colors.Color, bool) {
	reflected := vectors.Reflect(in.Direction, rec.Normal).Unit()
	reflected = reflected.Add(vectors.RandomUnitVector(rng).Scale(m.Fuzz))

	if reflected.Dot(rec.Normal) < 0 {
		return rays.Ray{}, colors.Black(), false
	}
	return rays.New(rec.Point, reflected), m.Albedo, true
}

func (Metal) sealed() {}
