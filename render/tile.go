package render

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// ParseGrid parses a tile layout written as "<cols>x<rows>".
func ParseGrid(s string) (cols, rows int, err error) {
	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid tile layout %q (expected NxM)", s)
	}
	if cols, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("invalid cols: %w", err)
	}
	if rows, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("invalid rows: %w", err)
	}
	if cols <= 0 || rows <= 0 {
		return 0, 0, fmt.Errorf("invalid tile layout %q: cols and rows must be > 0", s)
	}
	return cols, rows, nil
}

// TileRect splits bounds into a cols×rows grid and returns tile index,
// counting row-major from the top left. Edges are spread so tiles differ in
// size by at most one pixel. A grid with more columns or rows than bounds
// has pixels is rejected, so every tile is non-empty.
func TileRect(bounds image.Rectangle, cols, rows, index int) (image.Rectangle, error) {
	if cols <= 0 || rows <= 0 {
		return image.Rectangle{}, fmt.Errorf("invalid grid %dx%d", cols, rows)
	}
	if cols > bounds.Dx() || rows > bounds.Dy() {
		return image.Rectangle{}, fmt.Errorf("grid %dx%d has more tiles than the %dx%d image has pixels", cols, rows, bounds.Dx(), bounds.Dy())
	}
	if index < 0 || index >= cols*rows {
		return image.Rectangle{}, fmt.Errorf("tile %d out of range [0, %d)", index, cols*rows)
	}

	col, row := index%cols, index/cols
	w, h := bounds.Dx(), bounds.Dy()
	return image.Rect(
		bounds.Min.X+col*w/cols,
		bounds.Min.Y+row*h/rows,
		bounds.Min.X+(col+1)*w/cols,
		bounds.Min.Y+(row+1)*h/rows,
	), nil
}
