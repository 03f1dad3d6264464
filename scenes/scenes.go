// Package scenes is a catalogue of ready-made worlds, each paired with the
// camera it is meant to be seen through.
package scenes

import (
	"errors"
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"

	"github.com/echoflaresat/pathtracer/colors"
	"github.com/echoflaresat/pathtracer/geometry"
	"github.com/echoflaresat/pathtracer/material"
	"github.com/echoflaresat/pathtracer/render"
	"github.com/echoflaresat/pathtracer/vectors"
)

var ErrUnknownScene = errors.New("unknown scene")

// Builder creates a world and its camera config. Random scenes draw from rng.
type Builder func(rng *rand.Rand) (*geometry.Scene, render.Config)

var catalogue = map[string]Builder{
	"final":       Final,
	"penultimate": Penultimate,
	"simple":      Simple,
	"ground":      Ground,
}

func Lookup(name string) (Builder, error) {
	b, ok := catalogue[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownScene, name, Names())
	}
	return b, nil
}

// Names returns the catalogue in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(catalogue))
}

// Final is a field of small random spheres around three large ones: glass,
// diffuse and polished metal.
func Final(rng *rand.Rand) (*geometry.Scene, render.Config) {
	world := geometry.NewScene(
		geometry.NewSphere(vectors.New(0, -1000, 0), 1000, material.NewLambertian(colors.New(0.5, 0.5, 0.5))),
	)

	clearing := vectors.New(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			choose := vectors.RandomFloat(rng)
			center := vectors.New(
				float64(a)+0.9*vectors.RandomFloat(rng),
				0.2,
				float64(b)+0.9*vectors.RandomFloat(rng),
			)
			if vectors.Distance(center, clearing) <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case choose < 0.8:
				mat = material.NewLambertian(randomColor(rng).Mul(randomColor(rng)))
			case choose < 0.95:
				albedo := randomColor(rng).Scale(0.5).Add(colors.New(0.5, 0.5, 0.5))
				mat = material.NewMetal(albedo, vectors.RandomRange(rng, 0, 0.5))
			default:
				mat = material.NewDielectric(1.5)
			}
			world.Add(geometry.NewSphere(center, 0.2, mat))
		}
	}

	world.Add(geometry.NewSphere(vectors.New(0, 1, 0), 1, material.NewDielectric(1.5)))
	world.Add(geometry.NewSphere(vectors.New(-4, 1, 0), 1, material.NewLambertian(colors.New(0.4, 0.2, 0.1))))
	world.Add(geometry.NewSphere(vectors.New(4, 1, 0), 1, material.NewMetal(colors.New(0.7, 0.6, 0.5), 0)))

	cfg := render.DefaultConfig()
	cfg.ImageWidth = 1200
	cfg.SamplesPerPixel = 500
	cfg.VerticalFOV = 20
	cfg.LookFrom = vectors.New(13, 2, 3)
	cfg.LookAt = vectors.Zero()
	cfg.DefocusAngle = 0.6
	cfg.FocusDistance = 10
	return world, cfg
}

// Penultimate shows a hollow glass sphere next to diffuse and fuzzy metal
// ones, seen from above with a shallow depth of field.
func Penultimate(_ *rand.Rand) (*geometry.Scene, render.Config) {
	world := threeSpheres(material.NewMetal(colors.New(0.05, 0.05, 0.8), 0.2))
	world.Add(geometry.NewSphere(vectors.New(-1, 0, -1), 0.4, material.NewDielectric(1/1.5)))

	cfg := render.DefaultConfig()
	cfg.ImageWidth = 1200
	cfg.SamplesPerPixel = 500
	cfg.VerticalFOV = 20
	cfg.LookFrom = vectors.New(-2, 2, 1)
	cfg.LookAt = vectors.New(0, 0, -1)
	cfg.DefocusAngle = 2
	cfg.FocusDistance = 3.4
	return world, cfg
}

// Simple is three spheres on a ground sphere viewed head-on.
func Simple(_ *rand.Rand) (*geometry.Scene, render.Config) {
	return threeSpheres(material.NewMetal(colors.New(0.8, 0.6, 0.2), 0.3)), render.DefaultConfig()
}

// Ground is a single large diffuse sphere under the camera, everything else
// is sky.
func Ground(_ *rand.Rand) (*geometry.Scene, render.Config) {
	world := geometry.NewScene(
		geometry.NewSphere(vectors.New(0, -100.5, -1), 100, material.NewLambertian(colors.New(0.5, 0.5, 0.5))),
	)
	return world, render.DefaultConfig()
}

func threeSpheres(right material.Material) *geometry.Scene {
	return geometry.NewScene(
		geometry.NewSphere(vectors.New(0, -100.5, -1), 100, material.NewLambertian(colors.New(0.1, 0.6, 0.1))),
		geometry.NewSphere(vectors.New(0, 0, -1.2), 0.5, material.NewLambertian(colors.New(0.6, 0, 0))),
		geometry.NewSphere(vectors.New(-1, 0, -1), 0.5, material.NewDielectric(1.5)),
		geometry.NewSphere(vectors.New(1, 0, -1), 0.5, right),
	)
}

func randomColor(rng *rand.Rand) colors.Color {
	v := vectors.Random(rng)
	return colors.New(v.X, v.Y, v.Z)
}
