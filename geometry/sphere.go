package geometry

import (
	"math"

	"github.com/echoflaresat/pathtracer/material"
	"github.com/echoflaresat/pathtracer/rays"
	"github.com/echoflaresat/pathtracer/vectors"
)

type Sphere struct {
	Center   vectors.Vec3
	Radius   float64
	Material material.Material
}

func NewSphere(center vectors.Vec3, radius float64, mat material.Material) Sphere {
	return Sphere{Center: center, Radius: radius, Material: mat}
}

// Hit solves |O + tD - C|² = r² using the half-b form of the quadratic:
//
//	a = D·D, h = D·(C - O), c = |C - O|² - r², disc = h² - ac, t = (h ∓ √disc) / a
//
// The near root is tried first and the far one only when the near root is
// not strictly inside iv.
func (s Sphere) Hit(r rays.Ray, iv rays.Interval) (rays.HitRecord, material.Material, bool) {
	oc := s.Center.Sub(r.Origin)
	a := r.Direction.LengthSquared()
	h := r.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return rays.HitRecord{}, nil, false
	}

	sqrtd := math.Sqrt(discriminant)
	root := (h - sqrtd) / a
	if !iv.Surrounds(root) {
		root = (h + sqrtd) / a
		if !iv.Surrounds(root) {
			return rays.HitRecord{}, nil, false
		}
	}

	point := r.At(root)
	outwardNormal := point.Sub(s.Center).DivScalar(s.Radius)
	return rays.NewHitRecord(r, point, outwardNormal, root), s.Material, true
}

func (Sphere) object() {}
