package material

import (
	"math/rand/v2"

	"github.com/echoflaresat/pathtracer/colors"
	"github.com/echoflaresat/pathtracer/rays"
	"github.com/echoflaresat/pathtracer/vectors"
)

// Lambertian is an ideal diffuse surface.
type Lambertian struct {
	Albedo colors.Color
}

func NewLambertian(albedo colors.Color) Lambertian {
	return Lambertian{Albedo: albedo}
}

// Scatter always scatters around the normal with a cosine-weighted lobe.
func (l Lambertian) Scatter(in rays.Ray, rec rays.HitRecord, rng *rand.Rand) (rays.Ray, colors.Color, bool) {
	direction := diffuseDirection(rec.Normal, vectors.RandomUnitVector(rng))
	return rays.New(rec.Point, direction), l.Albedo, true
}

// diffuseDirection offsets normal by a unit sample, falling back to normal
// when the sample cancels it out.
func diffuseDirection(normal, sample vectors.Vec3) vectors.Vec3 {
	direction := normal.Add(sample)
	if direction.NearZero() {
		return normal
	}
	return direction
}

func (Lambertian) sealed() {}
