package render

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/echoflaresat/pathtracer/rays"
	"github.com/echoflaresat/pathtracer/vectors"
)

// ErrInvalidConfig is wrapped by every error Config.Validate returns.
var ErrInvalidConfig = errors.New("invalid camera config")

// Config holds the user-facing camera options.
type Config struct {
	AspectRatio     float64
	ImageWidth      int
	SamplesPerPixel int
	MaxDepth        int

	// VerticalFOV is the vertical field of view in degrees.
	VerticalFOV float64
	LookFrom    vectors.Vec3
	LookAt      vectors.Vec3
	Up          vectors.Vec3

	// DefocusAngle is the cone angle in degrees of rays through each pixel;
	// 0 disables depth of field.
	DefocusAngle float64
	// FocusDistance is the distance from LookFrom to the plane of perfect focus.
	FocusDistance float64
}

// DefaultConfig returns a 400px wide 16:9 camera at the origin looking down -z.
func DefaultConfig() Config {
	return Config{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		VerticalFOV:     90,
		LookFrom:        vectors.Zero(),
		LookAt:          vectors.New(0, 0, -1),
		Up:              vectors.New(0, 1, 0),
		DefocusAngle:    0,
		FocusDistance:   1,
	}
}

// Validate reports every way c breaks the camera contract. NewCamera does not
// call it; a camera built from an invalid config renders garbage (NaNs) rather
// than failing.
func (c Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	if !(c.AspectRatio > 0) {
		add("aspect ratio must be > 0, got %v", c.AspectRatio)
	}
	if c.ImageWidth <= 0 {
		add("image width must be > 0, got %d", c.ImageWidth)
	}
	if c.SamplesPerPixel <= 0 {
		add("samples per pixel must be > 0, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		add("max depth must be >= 0, got %d", c.MaxDepth)
	}
	if !(c.VerticalFOV > 0 && c.VerticalFOV < 180) {
		add("vertical FOV must be in (0, 180) degrees, got %v", c.VerticalFOV)
	}
	if !(c.DefocusAngle >= 0) {
		add("defocus angle must be >= 0, got %v", c.DefocusAngle)
	}
	if !(c.FocusDistance > 0) {
		add("focus distance must be > 0, got %v", c.FocusDistance)
	}

	view := c.LookFrom.Sub(c.LookAt)
	if view.NearZero() {
		add("look-from and look-at must differ, both are %v", c.LookFrom)
	} else if c.Up.Cross(view).NearZero() {
		add("up %v must not be parallel to the view direction %v", c.Up, view)
	}

	return errors.Join(errs...)
}

// Camera is the finalized, read-only camera state derived from a Config.
type Camera struct {
	cfg Config

	imageHeight       int
	pixelSamplesScale float64
	center            vectors.Vec3
	pixel00           vectors.Vec3
	pixelDeltaU       vectors.Vec3
	pixelDeltaV       vectors.Vec3

	// orthonormal basis: u right, v up, w opposite the view direction
	u, v, w vectors.Vec3

	defocusDiskU vectors.Vec3
	defocusDiskV vectors.Vec3
}

// NewCamera derives the camera geometry from cfg.
func NewCamera(cfg Config) Camera {
	height := int(float64(cfg.ImageWidth) / cfg.AspectRatio)
	if height < 1 {
		height = 1
	}

	center := cfg.LookFrom

	theta := degreesToRadians(cfg.VerticalFOV)
	viewportHeight := 2 * math.Tan(theta/2) * cfg.FocusDistance
	viewportWidth := viewportHeight * float64(cfg.ImageWidth) / float64(height)

	w := cfg.LookFrom.Sub(cfg.LookAt).Unit()
	u := cfg.Up.Cross(w).Unit()
	v := w.Cross(u)

	// viewport edges; v runs down the image
	viewportU := u.Scale(viewportWidth)
	viewportV := v.Negate().Scale(viewportHeight)
	pixelDeltaU := viewportU.DivScalar(float64(cfg.ImageWidth))
	pixelDeltaV := viewportV.DivScalar(float64(height))

	upperLeft := center.
		Sub(w.Scale(cfg.FocusDistance)).
		Sub(viewportU.Scale(0.5)).
		Sub(viewportV.Scale(0.5))
	pixel00 := upperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Scale(0.5))

	defocusRadius := cfg.FocusDistance * math.Tan(degreesToRadians(cfg.DefocusAngle/2))

	return Camera{
		cfg:               cfg,
		imageHeight:       height,
		pixelSamplesScale: 1.0 / float64(cfg.SamplesPerPixel),
		center:            center,
		pixel00:           pixel00,
		pixelDeltaU:       pixelDeltaU,
		pixelDeltaV:       pixelDeltaV,
		u:                 u,
		v:                 v,
		w:                 w,
		defocusDiskU:      u.Scale(defocusRadius),
		defocusDiskV:      v.Scale(defocusRadius),
	}
}

func (c Camera) Config() Config { return c.cfg }

func (c Camera) Width() int { return c.cfg.ImageWidth }

func (c Camera) Height() int { return c.imageHeight }

// SampleScale is 1/SamplesPerPixel.
func (c Camera) SampleScale() float64 { return c.pixelSamplesScale }

func (c Camera) Center() vectors.Vec3 { return c.center }

// Basis returns the camera frame: u points right, v up, w backwards.
func (c Camera) Basis() (u, v, w vectors.Vec3) { return c.u, c.v, c.w }

// PixelCenter returns the center of pixel (i, j) on the focus plane; i counts
// columns from the left, j rows from the top.
func (c Camera) PixelCenter(i, j int) vectors.Vec3 {
	return c.pixel00.
		Add(c.pixelDeltaU.Scale(float64(i))).
		Add(c.pixelDeltaV.Scale(float64(j)))
}

// Ray returns a camera ray through a random point of pixel (i, j), starting at
// a random point of the defocus disk when depth of field is enabled.
func (c Camera) Ray(i, j int, rng *rand.Rand) rays.Ray {
	offsetX, offsetY := sampleSquare(rng)
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Scale(float64(i) + offsetX)).
		Add(c.pixelDeltaV.Scale(float64(j) + offsetY))

	origin := c.center
	if c.cfg.DefocusAngle > 0 {
		origin = c.defocusDiskSample(rng)
	}
	return rays.New(origin, pixelSample.Sub(origin))
}

// sampleSquare returns a jitter offset in [-0.5, 0.5)².
func sampleSquare(rng *rand.Rand) (float64, float64) {
	return rng.Float64() - 0.5, rng.Float64() - 0.5
}

func (c Camera) defocusDiskSample(rng *rand.Rand) vectors.Vec3 {
	p := vectors.RandomInUnitDisk(rng)
	return c.center.Add(c.defocusDiskU.Scale(p.X)).Add(c.defocusDiskV.Scale(p.Y))
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
