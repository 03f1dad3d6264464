package main

import (
	"fmt"
	"image"
	"image/draw"
	"log"
	"os"

	"github.com/echoflaresat/pathtracer/imagefile"
	"github.com/echoflaresat/pathtracer/render"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Fprintf(os.Stderr, "Usage: %s <cols>x<rows> <output> <tile0> <tile1> ...\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Tiles are listed row-major from the top left, as rendered with -tiles/-tile.\n")
		os.Exit(1)
	}

	cols, rows, err := render.ParseGrid(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	output := os.Args[2]
	inputFiles := os.Args[3:]
	if len(inputFiles) != cols*rows {
		log.Fatalf("Expected %d input files, got %d", cols*rows, len(inputFiles))
	}
	if !imagefile.Supported(output) {
		log.Fatalf("Unsupported output format: %s", output)
	}

	tiles := make([]image.Image, len(inputFiles))
	for idx, path := range inputFiles {
		fmt.Printf("Processing %s\n", path)
		tile, err := imagefile.Load(path)
		if err != nil {
			log.Fatalf("Could not load input file %q: %v", path, err)
		}
		defer tile.Close()
		tiles[idx] = tile
	}

	canvas, err := merge(tiles, cols, rows)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("-> creating %s\n", output)
	if err := imagefile.Save(output, canvas); err != nil {
		log.Fatalf("Could not create %s: %v", output, err)
	}
}

// merge stitches a cols×rows grid of tiles. Every tile in a column must share
// its width and every tile in a row its height; neighbouring columns and rows
// may differ, as render.TileRect produces them.
func merge(tiles []image.Image, cols, rows int) (*image.NRGBA, error) {
	if len(tiles) != cols*rows {
		return nil, fmt.Errorf("expected %d tiles, got %d", cols*rows, len(tiles))
	}

	xs := make([]int, cols+1)
	for c := 0; c < cols; c++ {
		xs[c+1] = xs[c] + tiles[c].Bounds().Dx()
	}
	ys := make([]int, rows+1)
	for r := 0; r < rows; r++ {
		ys[r+1] = ys[r] + tiles[r*cols].Bounds().Dy()
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, xs[cols], ys[rows]))
	for idx, tile := range tiles {
		col, row := idx%cols, idx/cols
		dst := image.Rect(xs[col], ys[row], xs[col+1], ys[row+1])
		if tile.Bounds().Size() != dst.Size() {
			return nil, fmt.Errorf("tile %d size mismatch: expected %dx%d, got %dx%d",
				idx, dst.Dx(), dst.Dy(), tile.Bounds().Dx(), tile.Bounds().Dy())
		}
		draw.Draw(canvas, dst, tile, tile.Bounds().Min, draw.Src)
	}
	return canvas, nil
}
