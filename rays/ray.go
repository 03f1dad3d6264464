package rays

import "github.com/echoflaresat/pathtracer/vectors"

// Ray is the half-line Origin + t*Direction.
type Ray struct {
	Origin    vectors.Vec3
	Direction vectors.Vec3
}

func New(origin, direction vectors.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray. Negative t is allowed.
func (r Ray) At(t float64) vectors.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}
