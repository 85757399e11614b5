package sim

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *Report {
	return &Report{
		Policy:         "write-only",
		CacheSizeBytes: 1 << 20,
		BlockSize:      4096,
		RangeMode:      "inclusive-end",
		CapacityBlocks: 256,
		ResidentBlocks: 17,
		Evictions:      3,
		ReadHitRatio:   12.345,
		WriteHitRatio:  50,
		StopReason:     StateEndOfFile.String(),
		Metrics:        Metrics{Lines: 40, SkippedLines: 2},
	}
}

func TestReport_Print(t *testing.T) {
	var buf bytes.Buffer

	sampleReport().Print(&buf)

	out := buf.String()
	assert.Contains(t, out, "Read Cache Hit Ratio : 12.35%")
	assert.Contains(t, out, "Write Cache Hit Ratio: 50.00%")
	assert.Contains(t, out, "cache_len = 17 max_cache_size = 256")
}

func TestPrintSummaryTable_OneRowPerReport(t *testing.T) {
	var buf bytes.Buffer
	other := sampleReport()
	other.Policy = "read-only"

	PrintSummaryTable(&buf, []*Report{sampleReport(), other})

	out := buf.String()
	assert.Contains(t, out, "Read Hit %")
	assert.Contains(t, out, "write-only")
	assert.Contains(t, out, "read-only")
	assert.Contains(t, out, "12.35")
}

func TestSaveResults_WritesJSON(t *testing.T) {
	// GIVEN a report
	path := filepath.Join(t.TempDir(), "results.json")

	// WHEN it is saved
	require.NoError(t, SaveResults([]*Report{sampleReport()}, path))

	// THEN the file decodes back into the same report
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded []*Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []*Report{sampleReport()}, decoded)
	assert.Contains(t, string(data), `"read_hit_ratio"`)
}

func TestSaveResults_BadPath(t *testing.T) {
	err := SaveResults(nil, filepath.Join(t.TempDir(), "missing", "results.json"))

	assert.Error(t, err)
}
