package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileConfig_AllKeys(t *testing.T) {
	// GIVEN a config file using every key
	path := writeFile(t, "blocksim.yaml", `
cache_size: 1073741824
block_size: 4096
trace_format: blktrace
policies: [write-only]
max_lines: 0
report_interval: 500
workers: 2
results: out.json
exact_end_block: true
ratios: [0.01, 0.05]
device_size: 1000000
`)

	// WHEN it is loaded
	fc, err := loadFileConfig(path)

	// THEN every value is present, explicit zeros included
	require.NoError(t, err)
	require.NotNil(t, fc.CacheSize)
	assert.Equal(t, uint64(1<<30), *fc.CacheSize)
	assert.Equal(t, uint64(4096), *fc.BlockSize)
	assert.Equal(t, "blktrace", *fc.TraceFormat)
	assert.Equal(t, []string{"write-only"}, fc.Policies)
	require.NotNil(t, fc.MaxLines)
	assert.Zero(t, *fc.MaxLines)
	assert.Equal(t, 2, *fc.Workers)
	assert.True(t, *fc.ExactEndBlock)
	assert.Equal(t, []float64{0.01, 0.05}, fc.Ratios)
	assert.True(t, fc.hasCacheSize())
}

func TestLoadFileConfig_RejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "blocksim.yaml", "cache_sise: 10\n")

	_, err := loadFileConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache_sise")
}

func TestLoadFileConfig_MissingFile(t *testing.T) {
	_, err := loadFileConfig(filepath.Join(t.TempDir(), "none.yaml"))

	assert.Error(t, err)
}

func TestFileConfig_ExplicitFlagsWin(t *testing.T) {
	// GIVEN flag values and a file that sets two of them
	cacheSize, blockSize, policies = 100, 8192, []string{"read-only"}
	t.Cleanup(func() { cacheSize, blockSize, policies = 0, 65536, []string{"cache-everything", "write-only", "read-only"} })
	size, block := uint64(5000), uint64(512)
	fc := &FileConfig{CacheSize: &size, BlockSize: &block}

	// WHEN applied with --block-size set on the command line
	fc.applyTo(func(name string) bool { return name == "block-size" })

	// THEN the file fills cache size but leaves the explicit block size alone
	assert.Equal(t, uint64(5000), cacheSize)
	assert.Equal(t, uint64(8192), blockSize)
	assert.Equal(t, []string{"read-only"}, policies, "absent keys change nothing")
}

func TestFileConfig_NilHasNoCacheSize(t *testing.T) {
	var fc *FileConfig

	assert.False(t, fc.hasCacheSize())
}
