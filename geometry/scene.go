package geometry

import (
	"github.com/echoflaresat/pathtracer/material"
	"github.com/echoflaresat/pathtracer/rays"
)

// Scene is an ordered list of primitives. It must be fully populated before
// rendering starts and is only read afterwards, so it can be shared between
// goroutines without locking.
type Scene struct {
	objects []Object
}

func NewScene(objects ...Object) *Scene {
	s := &Scene{}
	s.objects = append(s.objects, objects...)
	return s
}

// Add appends o to the scene.
func (s *Scene) Add(o Object) {
	s.objects = append(s.objects, o)
}

func (s *Scene) Len() int {
	return len(s.objects)
}

// Objects returns a copy of the objects in insertion order.
func (s *Scene) Objects() []Object {
	out := make([]Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// Hit scans every object and keeps the closest hit. Each test is restricted
// to an upper bound narrowed to the closest hit so far, so a later object can
// only win by being strictly closer.
func (s *Scene) Hit(r rays.Ray, iv rays.Interval) (rays.HitRecord, material.Material, bool) {
	var (
		closest    rays.HitRecord
		closestMat material.Material
		hit        bool
	)
	closestSoFar := iv.Max

	for _, o := range s.objects {
		rec, mat, ok := o.Hit(r, iv.WithMax(closestSoFar))
		if !ok {
			continue
		}
		closestSoFar = rec.T
		closest, closestMat, hit = rec, mat, true
	}
	return closest, closestMat, hit
}
