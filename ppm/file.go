package ppm

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/exp/mmap"
)

// rowCacheSize is the number of decoded rows File keeps around.
const rowCacheSize = 256

// File is a memory-mapped PPM decoded one row at a time. Large renders and
// tiles can be read without holding the whole image in memory.
type File struct {
	header header
	reader *mmap.ReaderAt
	cache  *lru.Cache // row -> []byte (NRGBA)

	// rowOffsets[y] is the byte offset of row y; len(rowOffsets) == height.
	rowOffsets []int64
}

// Open maps path and indexes its rows. Plain files are scanned once to find
// where each row starts; raw rows are located arithmetically.
func Open(path string) (*File, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	f, err := newFile(reader)
	if err != nil {
		reader.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func newFile(reader *mmap.ReaderAt) (*File, error) {
	section := io.NewSectionReader(reader, 0, int64(reader.Len()))
	tr := newTokenReader(bufio.NewReader(section))

	h, err := readHeader(tr)
	if err != nil {
		return nil, err
	}

	offsets := make([]int64, h.height)
	if h.format == raw {
		need := tr.n + int64(h.height)*int64(h.rowBytes())
		if int64(reader.Len()) < need {
			return nil, fmt.Errorf("ppm: raw data truncated: %d bytes, want %d", reader.Len(), need)
		}
		for y := range offsets {
			offsets[y] = tr.n + int64(y)*int64(h.rowBytes())
		}
	} else {
		scratch := make([]byte, 4*h.width)
		for y := range offsets {
			offsets[y] = tr.n
			if err := h.readRow(tr, scratch); err != nil {
				return nil, fmt.Errorf("ppm: row %d: %w", y, err)
			}
		}
	}

	cache, _ := lru.New(rowCacheSize)

	return &File{
		header:     h,
		reader:     reader,
		cache:      cache,
		rowOffsets: offsets,
	}, nil
}

func (f *File) Close() error {
	return f.reader.Close()
}

func (f *File) ColorModel() color.Model {
	return color.NRGBAModel
}

func (f *File) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.header.width, f.header.height)
}

// At panics if the mapped file can no longer be read.
func (f *File) At(x, y int) color.Color {
	if !image.Pt(x, y).In(f.Bounds()) {
		return color.NRGBA{}
	}
	row, err := f.Row(y)
	if err != nil {
		panic(fmt.Sprintf("ppm: could not read row %d: %v", y, err))
	}
	px := row[4*x : 4*x+4]
	return color.NRGBA{R: px[0], G: px[1], B: px[2], A: px[3]}
}

// Row returns row y as NRGBA bytes. The slice is shared with the cache and
// must not be modified.
func (f *File) Row(y int) ([]byte, error) {
	if y < 0 || y >= f.header.height {
		return nil, fmt.Errorf("ppm: row %d out of range [0, %d)", y, f.header.height)
	}
	if val, ok := f.cache.Get(y); ok {
		return val.([]byte), nil
	}

	row, err := f.loadRow(y)
	if err != nil {
		return nil, err
	}
	f.cache.Add(y, row)
	return row, nil
}

func (f *File) loadRow(y int) ([]byte, error) {
	start := f.rowOffsets[y]
	end := int64(f.reader.Len())
	if y+1 < len(f.rowOffsets) {
		end = f.rowOffsets[y+1]
	}

	tr := newTokenReader(bufio.NewReader(io.NewSectionReader(f.reader, start, end-start)))
	row := make([]byte, 4*f.header.width)
	if err := f.header.readRow(tr, row); err != nil {
		return nil, fmt.Errorf("ppm: row %d: %w", y, err)
	}
	return row, nil
}
