// Package geometry holds the intersectable primitives and the scene that
// aggregates them.
package geometry

import (
	"github.com/echoflaresat/pathtracer/material"
	"github.com/echoflaresat/pathtracer/rays"
)

// Hittable is anything a ray can be intersected with. Hit reports the nearest
// intersection whose parameter lies strictly inside iv, together with the
// material of the surface that was hit.
type Hittable interface {
	Hit(r rays.Ray, iv rays.Interval) (rays.HitRecord, material.Material, bool)
}

// Object is a primitive that can be placed in a Scene. The set of primitives
// is closed; Sphere is the only one.
type Object interface {
	Hittable
	object()
}
