package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// maxLineBytes bounds a single trace line; blkparse lines carry process names and can be long.
const maxLineBytes = 1 << 20

// Open opens a trace file for sequential reading.
// Files ending in .gz or .zst/.zstd are decompressed on the fly.
func Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(file)
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("reading gzip header of %s: %w", path, err)
		}
		return &stackedReader{Reader: zr, closers: []io.Closer{zr, file}}, nil
	case ".zst", ".zstd":
		dec, err := zstd.NewReader(file)
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("creating zstd decoder for %s: %w", path, err)
		}
		return &stackedReader{Reader: dec, closers: []io.Closer{dec.IOReadCloser(), file}}, nil
	default:
		return file, nil
	}
}

// stackedReader reads from a decompressor and closes it before the underlying file.
type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReader) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NewScanner returns a line scanner sized for trace lines.
func NewScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return scanner
}
