package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/echoflaresat/pathtracer/colors"
	"github.com/echoflaresat/pathtracer/geometry"
	"github.com/echoflaresat/pathtracer/rays"
	"github.com/echoflaresat/pathtracer/vectors"
)

// hitEpsilon is the smallest accepted ray parameter. Scattered rays start on
// a surface, and without it rounding error lets them hit that surface again.
const hitEpsilon = 0.001

var skyBlue = colors.New(0.5, 0.7, 1.0)

// ErrEmptyRegion is returned when Options.Region does not overlap the image.
var ErrEmptyRegion = errors.New("region does not overlap the image")

// Options control how a frame is rendered, not what it looks like.
type Options struct {
	// Workers bounds the number of rows rendered concurrently. Zero or less
	// means runtime.GOMAXPROCS(0).
	Workers int

	// Seed derives the random stream of every row. Zero draws a fresh seed,
	// so two renders differ; any other value makes renders reproducible.
	Seed uint64

	// Region restricts rendering to a sub-rectangle of the image. Nil renders
	// the whole frame.
	Region *image.Rectangle

	// Progress receives percentage milestones. Nil disables them.
	Progress io.Writer

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Renderer turns a scene into pixels through a camera.
type Renderer struct {
	camera Camera
	opts   Options
}

func NewRenderer(camera Camera, opts Options) *Renderer {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Renderer{camera: camera, opts: opts}
}

func (r *Renderer) Camera() Camera { return r.camera }

// Bounds returns the pixel rectangle the renderer produces: the whole image,
// or Options.Region clipped to it. The result is empty when the region lies
// outside the image.
func (r *Renderer) Bounds() image.Rectangle {
	full := image.Rect(0, 0, r.camera.Width(), r.camera.Height())
	if r.opts.Region == nil {
		return full
	}
	return r.opts.Region.Intersect(full)
}

// Render returns the frame as a plain PPM buffer.
func (r *Renderer) Render(ctx context.Context, world geometry.Hittable) ([]byte, error) {
	frame, err := r.RenderFrame(ctx, world)
	if err != nil {
		return nil, err
	}
	return frame.AppendPPM(nil), nil
}

// RenderFrame renders every row of Bounds as an independent task. Each row
// owns a random stream derived from the seed and its index, so the result
// does not depend on scheduling. ctx is checked between rows only.
func (r *Renderer) RenderFrame(ctx context.Context, world geometry.Hittable) (*Frame, error) {
	bounds := r.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: %v in %dx%d", ErrEmptyRegion, r.opts.Region, r.camera.Width(), r.camera.Height())
	}
	frame := NewFrame(bounds)

	seed := r.opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	logger := r.opts.Logger
	logger.Info("render started",
		"width", bounds.Dx(),
		"height", bounds.Dy(),
		"samples", r.camera.Config().SamplesPerPixel,
		"max_depth", r.camera.Config().MaxDepth,
		"workers", r.opts.Workers,
		"seed", seed,
	)
	start := time.Now()
	prog := newProgress(r.opts.Progress, bounds.Dy())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rowRNG(seed, y)
			row := frame.Row(y)
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				row[x-bounds.Min.X] = r.SamplePixel(world, x, y, rng)
			}
			prog.rowDone()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Warn("render aborted", "error", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		logger.Warn("render aborted", "error", err)
		return nil, err
	}

	prog.finish()
	logger.Info("render finished", "elapsed", time.Since(start))
	return frame, nil
}

// SamplePixel averages SamplesPerPixel independent estimates for pixel (i, j).
func (r *Renderer) SamplePixel(world geometry.Hittable, i, j int, rng *rand.Rand) colors.Color {
	cfg := r.camera.Config()
	sum := colors.Black()
	for s := 0; s < cfg.SamplesPerPixel; s++ {
		ray := r.camera.Ray(i, j, rng)
		sum = sum.Add(RayColor(ray, cfg.MaxDepth, world, rng))
	}
	return sum.Scale(r.camera.SampleScale())
}

// RayColor estimates the light arriving along ray. The path is followed
// iteratively: every scatter multiplies the running attenuation, a miss
// multiplies in the sky, and absorption or running out of depth yields black.
func RayColor(ray rays.Ray, depth int, world geometry.Hittable, rng *rand.Rand) colors.Color {
	attenuation := colors.White()
	valid := rays.NewInterval(hitEpsilon, math.Inf(1))

	for ; depth > 0; depth-- {
		rec, mat, ok := world.Hit(ray, valid)
		if !ok {
			return attenuation.Mul(SkyColor(ray.Direction))
		}

		scattered, a, ok := mat.Scatter(ray, rec, rng)
		if !ok {
			return colors.Black()
		}
		attenuation = attenuation.Mul(a)
		ray = scattered
	}

	// no more light is gathered
	return colors.Black()
}

// SkyColor is the background light: a vertical blend from white at the
// horizon below to light blue overhead.
func SkyColor(direction vectors.Vec3) colors.Color {
	unit := direction.Unit()
	a := 0.5 * (unit.Y + 1.0)
	return colors.White().Mix(skyBlue, a)
}

func rowRNG(seed uint64, row int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(row)))
}
