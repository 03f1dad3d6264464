package material

import (
	"math"
	"math/rand/v2"

	"github.com/echoflaresat/pathtracer/colors"
	"github.com/echoflaresat/pathtracer/rays"
	"github.com/echoflaresat/pathtracer/vectors"
)

// Dielectric is a clear refracting material such as glass (1.5) or water
// (1.33). RefractionIndex is relative to the surrounding medium, so a value
// below 1 models an air bubble inside glass.
type Dielectric struct {
	RefractionIndex float64
}

func NewDielectric(refractionIndex float64) Dielectric {
	return Dielectric{RefractionIndex: refractionIndex}
}

// Scatter refracts or reflects the ray; glass never absorbs.
func (d Dielectric) Scatter(in rays.Ray, rec rays.HitRecord, rng *rand.Rand) (rays.Ray, colors.Color, bool) {
	ratio := d.RefractionIndex
	if rec.FrontFace {
		ratio = 1.0 / d.RefractionIndex
	}

	unitDirection := in.Direction.Unit()
	cosTheta := math.Min(rec.Normal.Dot(unitDirection.Negate()), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	var direction vectors.Vec3
	if cannotRefract(ratio, sinTheta) || Reflectance(cosTheta, ratio) > rng.Float64() {
		direction = vectors.Reflect(unitDirection, rec.Normal)
	} else {
		direction = vectors.Refract(unitDirection, rec.Normal, ratio)
	}

	return rays.New(rec.Point, direction), colors.White(), true
}

func (Dielectric) sealed() {}

// cannotRefract reports total internal reflection.
func cannotRefract(ratio, sinTheta float64) bool {
	return ratio*sinTheta > 1.0
}

// Reflectance is Schlick's approximation of the Fresnel reflectance:
// R(θ) = R0 + (1 - R0)(1 - cos θ)^5 with R0 = ((1 - n) / (1 + n))².
func Reflectance(cosine, ratio float64) float64 {
	r0 := (1 - ratio) / (1 + ratio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
