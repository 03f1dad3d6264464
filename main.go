package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/echoflaresat/pathtracer/imagefile"
	"github.com/echoflaresat/pathtracer/output"
	"github.com/echoflaresat/pathtracer/render"
	"github.com/echoflaresat/pathtracer/scenes"
)

type config struct {
	scene                 *string
	width, samples, depth *int
	aspect                *float64
	workers               *int
	seed                  *uint64
	tiles                 *string
	tile                  *int
	out                   *string
	thumb                 *uint
	bucket, prefix        *string
	quiet                 *bool
	showHelp              *bool
}

func defineFlags() config {
	return config{
		scene:   flag.String("scene", getEnv("PATHTRACER_SCENE", "final"), "Scene to render: "+strings.Join(scenes.Names(), ", ")),
		width:   flag.Int("width", getEnvInt("PATHTRACER_WIDTH", 0), "Image width in pixels (0 keeps the scene default)"),
		aspect:  flag.Float64("aspect", getEnvFloat("PATHTRACER_ASPECT", 0), "Aspect ratio width/height (0 keeps the scene default)"),
		samples: flag.Int("spp", getEnvInt("PATHTRACER_SPP", 0), "Samples per pixel (0 keeps the scene default)"),
		depth:   flag.Int("depth", getEnvInt("PATHTRACER_DEPTH", 0), "Maximum bounces per path (0 keeps the scene default)"),

		workers: flag.Int("workers", getEnvInt("PATHTRACER_WORKERS", 0), "Rows rendered in parallel (0 uses all CPUs)"),
		seed:    flag.Uint64("seed", getEnvUint("PATHTRACER_SEED", 0), "Random seed for reproducible renders (0 picks one)"),
		tiles:   flag.String("tiles", getEnv("PATHTRACER_TILES", ""), "Split the frame into <cols>x<rows> tiles and render one of them"),
		tile:    flag.Int("tile", getEnvInt("PATHTRACER_TILE", 0), "Index of the tile to render, row-major from the top left"),

		out:   flag.String("out", getEnv("PATHTRACER_OUT", "image.ppm"), "Output file (.ppm, .png, .jpg, .tif, .bmp)"),
		thumb: flag.Uint("thumb", uint(getEnvUint("PATHTRACER_THUMB", 0)), "Also write a PNG thumbnail this many pixels wide"),

		bucket: flag.String("s3-bucket", getEnv("S3_BUCKET", ""), "Upload to this S3 bucket instead of the local disk"),
		prefix: flag.String("s3-prefix", getEnv("S3_PREFIX", ""), "Key prefix for uploaded files"),

		quiet:    flag.Bool("q", false, "Do not print progress"),
		showHelp: flag.Bool("h", false, "Show this help message"),
	}
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `Path Tracer - renders sphere scenes to PPM and other image formats

Usage:
  %[1]s [options]

Options default to PATHTRACER_* environment variables, also read from .env.

`, os.Args[0])

	printGroup("Scene", []string{"scene", "width", "aspect", "spp", "depth"})
	printGroup("Rendering", []string{"workers", "seed", "tiles", "tile"})
	printGroup("Output", []string{"out", "thumb", "s3-bucket", "s3-prefix"})
	printGroup("Misc", []string{"q", "h"})
}

func printGroup(title string, keys []string) {
	fmt.Fprintf(os.Stderr, "%s:\n", title)
	for _, name := range keys {
		if f := flag.Lookup(name); f != nil {
			fmt.Fprintf(os.Stderr, "  -%-10s %s (default %q)\n", f.Name, f.Usage, f.DefValue)
		}
	}
	fmt.Fprintln(os.Stderr)
}

func main() {
	_ = godotenv.Load()

	cfg := defineFlags()
	flag.Usage = printHelp
	flag.Parse()

	if *cfg.showHelp {
		printHelp()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sink, err := newSink(*cfg.out, *cfg.bucket, *cfg.prefix)
	if err != nil {
		log.Fatalf("Failed to set up output: %v", err)
	}

	j := job{
		scene:   *cfg.scene,
		width:   *cfg.width,
		aspect:  *cfg.aspect,
		samples: *cfg.samples,
		depth:   *cfg.depth,
		workers: *cfg.workers,
		seed:    *cfg.seed,
		tiles:   *cfg.tiles,
		tile:    *cfg.tile,
		out:     filepath.Base(*cfg.out),
		thumb:   *cfg.thumb,
	}
	if !*cfg.quiet {
		j.progress = os.Stderr
		fmt.Fprintf(os.Stderr, "Generating %s ", *cfg.out)
	}

	if err := j.run(ctx, sink); err != nil {
		log.Fatal(err)
	}
}

// newSink writes next to out, or to the bucket when one is given.
func newSink(out, bucket, prefix string) (output.Sink, error) {
	if bucket == "" {
		return output.FileSink{Dir: filepath.Dir(out)}, nil
	}
	return output.NewS3Sink(output.S3Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    getEnv("S3_REGION", "us-east-1"),
		Bucket:    bucket,
		Prefix:    prefix,
		ACL:       os.Getenv("S3_ACL"),
	})
}

// job is one render: a scene, the overrides applied to its camera and where
// the result goes. Zero overrides keep the scene defaults.
type job struct {
	scene          string
	width          int
	aspect         float64
	samples, depth int
	workers        int
	seed           uint64
	tiles          string
	tile           int
	out            string
	thumb          uint
	progress       io.Writer
}

func (j job) run(ctx context.Context, sink output.Sink) error {
	if !imagefile.Supported(j.out) {
		return fmt.Errorf("%w: %s", imagefile.ErrUnsupportedFormat, j.out)
	}

	build, err := scenes.Lookup(j.scene)
	if err != nil {
		return err
	}
	world, camCfg := build(j.sceneRNG())
	j.apply(&camCfg)
	if err := camCfg.Validate(); err != nil {
		return err
	}
	cam := render.NewCamera(camCfg)

	opts := render.Options{Workers: j.workers, Seed: j.seed, Progress: j.progress}
	if j.tiles != "" {
		cols, rows, err := render.ParseGrid(j.tiles)
		if err != nil {
			return err
		}
		full := image.Rect(0, 0, cam.Width(), cam.Height())
		region, err := render.TileRect(full, cols, rows, j.tile)
		if err != nil {
			return err
		}
		opts.Region = &region
	}

	frame, err := render.NewRenderer(cam, opts).RenderFrame(ctx, world)
	if err != nil {
		return fmt.Errorf("render %s: %w", j.scene, err)
	}

	data, err := encode(frame, filepath.Ext(j.out))
	if err != nil {
		return err
	}
	if err := sink.Put(ctx, j.out, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", j.out, err)
	}

	if j.thumb > 0 {
		thumb, err := encode(imagefile.Thumbnail(frame, j.thumb), ".png")
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(j.out, filepath.Ext(j.out)) + "_thumb.png"
		if err := sink.Put(ctx, name, thumb); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}

func (j job) apply(cfg *render.Config) {
	if j.width > 0 {
		cfg.ImageWidth = j.width
	}
	if j.aspect > 0 {
		cfg.AspectRatio = j.aspect
	}
	if j.samples > 0 {
		cfg.SamplesPerPixel = j.samples
	}
	if j.depth > 0 {
		cfg.MaxDepth = j.depth
	}
}

// sceneRNG seeds random scenes from the render seed so a seeded run
// reproduces the whole image, not just the sampling.
func (j job) sceneRNG() *rand.Rand {
	if j.seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(j.seed, 0))
}

func encode(img image.Image, ext string) ([]byte, error) {
	if f, ok := img.(*render.Frame); ok && strings.EqualFold(ext, ".ppm") {
		return f.AppendPPM(nil), nil
	}
	var buf bytes.Buffer
	if err := imagefile.Encode(&buf, img, ext); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvUint(key string, fallback uint64) uint64 {
	v, err := strconv.ParseUint(getEnv(key, ""), 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return fallback
	}
	return v
}
