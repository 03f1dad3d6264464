package rays

import "github.com/echoflaresat/pathtracer/vectors"

// HitRecord describes where a ray met a surface.
type HitRecord struct {
	Point vectors.Vec3
	// Normal is a unit vector that always points against the incoming ray.
	Normal vectors.Vec3
	T      float64
	// FrontFace is true when the ray hit the outside of the surface, i.e. the
	// geometric outward normal already opposed the ray.
	FrontFace bool
}

// NewHitRecord orients outwardNormal against the ray. outwardNormal must be a
// unit vector.
func NewHitRecord(r Ray, point vectors.Vec3, outwardNormal vectors.Vec3, t float64) HitRecord {
	frontFace := r.Direction.Dot(outwardNormal) < 0
	normal := outwardNormal
	if !frontFace {
		normal = outwardNormal.Negate()
	}
	return HitRecord{
		Point:     point,
		Normal:    normal,
		T:         t,
		FrontFace: frontFace,
	}
}
