// Package files stores product preview images on local disk.
package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Storage abstracts where product images live.
type Storage interface {
	Save(path string, contents io.Reader) error
	Get(path string) (*os.File, error)
}

// ErrUnsupportedImageType is returned for uploads that are not a known
// image format.
var ErrUnsupportedImageType = fmt.Errorf("unsupported image type")

var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".webp": {},
	".svg":  {},
}

// Local stores images under a base directory with a per-file size cap.
type Local struct {
	maxFileSize int // maximum number of bytes per image
	basePath    string
}

// maxBytesWriter is a writer that errors when more than N bytes are written
type maxBytesWriter struct {
	w io.Writer // underlying writer
	n int       // max bytes remaining
}

func (l *maxBytesWriter) Write(p []byte) (int, error) {
	if l.n <= 0 {
		return 0, io.EOF
	}
	if len(p) > l.n {
		p = p[:l.n]
	}
	n, err := l.w.Write(p)
	l.n -= n
	if err != nil {
		return n, err
	}
	if l.n <= 0 {
		return n, io.EOF
	}
	return n, nil
}

// NewLocal creates a Local image store rooted at basePath. maxSize is the
// largest accepted image in bytes.
func NewLocal(basePath string, maxSize int) (*Local, error) {
	p, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}

	return &Local{basePath: p, maxFileSize: maxSize}, nil
}

// Save writes an image atomically: contents go to a temp file that is
// renamed into place only after the size check passes, so a failed or
// oversized upload never leaves a partial image visible.
func (l *Local) Save(path string, contents io.Reader) error {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := allowedExtensions[ext]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedImageType, ext)
	}

	fp := l.fullPath(path)
	dir := filepath.Dir(fp)

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("unable to create directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, "upload-*")
	if err != nil {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath)

	writer := &maxBytesWriter{w: tempFile, n: l.maxFileSize}
	written, err := io.Copy(writer, contents)
	if err != nil && err != io.EOF {
		tempFile.Close()
		return fmt.Errorf("unable to write image: %w", err)
	}

	if err = tempFile.Close(); err != nil {
		return fmt.Errorf("unable to close temporary file: %w", err)
	}

	if written >= int64(l.maxFileSize) {
		return fmt.Errorf("image exceeds maximum allowed size of %d bytes", l.maxFileSize)
	}

	if err := os.Rename(tempPath, fp); err != nil {
		return fmt.Errorf("unable to move image into place: %w", err)
	}

	return nil
}

func (l *Local) Get(path string) (*os.File, error) {
	fp := l.fullPath(path)

	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("unable to open the image: %w", err)
	}

	return f, nil
}

// returns the absolute full path
func (l *Local) fullPath(path string) string {
	return filepath.Join(l.basePath, path)
}
