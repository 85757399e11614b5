// Package testutil provides shared test infrastructure for the blocksim packages.
// It builds small trace files and compares hit ratios with a tolerance.
package testutil

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Access is one line of a synthetic csv trace.
type Access struct {
	Op     string
	Offset uint64
	Length uint64
}

// CSVLine renders an access in the delimited trace format.
func (a Access) CSVLine(seq int) string {
	return fmt.Sprintf("0,%s,%d,%d,%d", a.Op, a.Offset, a.Length, seq)
}

// CSVTrace renders accesses as a delimited trace, one per line.
func CSVTrace(accesses ...Access) string {
	lines := make([]string, len(accesses))
	for i, a := range accesses {
		lines[i] = a.CSVLine(i)
	}
	return strings.Join(lines, "\n") + "\n"
}

// WriteTraceFile writes content to a file in a per-test temp dir and returns its path.
func WriteTraceFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write trace file: %v", err)
	}
	return path
}

// StringOpener returns an opener yielding a fresh reader over content on every call.
func StringOpener(content string) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(content)), nil
	}
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
