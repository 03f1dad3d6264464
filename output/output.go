// Package output publishes rendered files.
package output

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// Sink stores a named blob.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) error
}

// FileSink writes into a local directory, creating it when needed.
type FileSink struct {
	Dir string
}

func (s FileSink) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), data, 0o644)
}

var contentTypes = map[string]string{
	".ppm":  "image/x-portable-pixmap",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".bmp":  "image/bmp",
}

// ContentType returns the MIME type for name's extension.
func ContentType(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}
