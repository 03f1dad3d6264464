package render

import (
	"image"
	"testing"
)

func TestParseGrid(t *testing.T) {
	tests := []struct {
		in         string
		cols, rows int
		ok         bool
	}{
		{"2x3", 2, 3, true},
		{"1x1", 1, 1, true},
		{"2", 0, 0, false},
		{"ax2", 0, 0, false},
		{"2x0", 0, 0, false},
		{"2x2x2", 0, 0, false},
	}
	for _, tt := range tests {
		cols, rows, err := ParseGrid(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseGrid(%q) err = %v", tt.in, err)
			continue
		}
		if cols != tt.cols || rows != tt.rows {
			t.Errorf("ParseGrid(%q) = %d, %d, want %d, %d", tt.in, cols, rows, tt.cols, tt.rows)
		}
	}
}

func TestTileRectCoversBounds(t *testing.T) {
	bounds := image.Rect(0, 0, 400, 225)
	cols, rows := 3, 4

	covered := make(map[image.Point]int)
	for i := 0; i < cols*rows; i++ {
		r, err := TileRect(bounds, cols, rows, i)
		if err != nil {
			t.Fatalf("tile %d: %v", i, err)
		}
		if r.Dx() < 400/cols || r.Dx() > 400/cols+1 || r.Dy() < 225/rows || r.Dy() > 225/rows+1 {
			t.Errorf("tile %d has uneven size %v", i, r.Size())
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				covered[image.Pt(x, y)]++
			}
		}
	}

	if len(covered) != 400*225 {
		t.Errorf("tiles cover %d pixels, want %d", len(covered), 400*225)
	}
	for p, n := range covered {
		if n != 1 {
			t.Fatalf("pixel %v covered %d times", p, n)
		}
	}

	if _, err := TileRect(bounds, cols, rows, cols*rows); err == nil {
		t.Error("tile index past the grid accepted")
	}
	if _, err := TileRect(bounds, 0, rows, 0); err == nil {
		t.Error("empty grid accepted")
	}
}

func TestTileRectRejectsGridFinerThanImage(t *testing.T) {
	bounds := image.Rect(0, 0, 16, 9)
	tests := []struct {
		cols, rows int
		ok         bool
	}{
		{16, 9, true},
		{32, 1, false},
		{1, 10, false},
		{17, 9, false},
	}
	for _, tt := range tests {
		r, err := TileRect(bounds, tt.cols, tt.rows, 0)
		if (err == nil) != tt.ok {
			t.Errorf("TileRect(%dx%d) = %v, err = %v", tt.cols, tt.rows, r, err)
			continue
		}
		if tt.ok && r.Empty() {
			t.Errorf("TileRect(%dx%d) returned an empty tile", tt.cols, tt.rows)
		}
	}
}
