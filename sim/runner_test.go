package sim

import (
	"errors"
	"io"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blocksim/blocksim/sim/internal/testutil"
	"github.com/blocksim/blocksim/sim/policy"
	"github.com/blocksim/blocksim/sim/trace"
)

func policyConfigs(cacheBytes uint64) []Config {
	var configs []Config
	for _, name := range policy.DefaultPolicyNames() {
		configs = append(configs, testConfig(cacheBytes, name))
	}
	return configs
}

func TestRunPasses_ReportsInConfigOrder(t *testing.T) {
	// GIVEN a small trace and the three default policies
	content := testutil.CSVTrace(
		testutil.Access{Op: "W", Offset: 0, Length: 1000},
		testutil.Access{Op: "R", Offset: 0, Length: 1000},
		testutil.Access{Op: "R", Offset: 0, Length: 1000},
	)

	// WHEN all passes run concurrently
	reports, err := RunPasses(testutil.StringOpener(content), policyConfigs(1<<20), 0)

	// THEN each report belongs to the matching config
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, policy.NameCacheEverything, reports[0].Policy)
	assert.Equal(t, policy.NameWriteOnly, reports[1].Policy)
	assert.Equal(t, policy.NameReadOnly, reports[2].Policy)
	assert.Equal(t, 100.0, reports[1].ReadHitRatio)
	assert.Equal(t, 50.0, reports[2].ReadHitRatio)
}

func TestRunPasses_WorkerLimitDoesNotChangeResults(t *testing.T) {
	content := testutil.CSVTrace(
		testutil.Access{Op: "R", Offset: 0, Length: 9000},
		testutil.Access{Op: "W", Offset: 4096, Length: 4096},
		testutil.Access{Op: "R", Offset: 100, Length: 100},
	)
	configs := append(policyConfigs(4096), policyConfigs(3*4096)...)

	serial, err := RunPasses(testutil.StringOpener(content), configs, 1)
	require.NoError(t, err)
	parallel, err := RunPasses(testutil.StringOpener(content), configs, 0)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

func TestRunPasses_EachPassOpensItsOwnReader(t *testing.T) {
	var opens atomic.Int32
	open := func() (io.ReadCloser, error) {
		opens.Add(1)
		return testutil.StringOpener("0,R,0,1,0\n")()
	}

	_, err := RunPasses(open, policyConfigs(4096), 2)

	require.NoError(t, err)
	assert.Equal(t, int32(3), opens.Load())
}

func TestRunPasses_OpenErrorIsReturned(t *testing.T) {
	missing := errors.New("no such trace")
	open := func() (io.ReadCloser, error) { return nil, missing }

	reports, err := RunPasses(open, policyConfigs(4096), 0)

	assert.Nil(t, reports)
	assert.ErrorIs(t, err, missing)
}

func TestRunPasses_InvalidConfigFailsBeforeAnyPass(t *testing.T) {
	var opens atomic.Int32
	open := func() (io.ReadCloser, error) {
		opens.Add(1)
		return testutil.StringOpener("")()
	}
	configs := []Config{testConfig(4096, policy.NameAll), {BlockSize: 4096, Format: trace.FormatDelimited, Policy: "mru"}}

	_, err := RunPasses(open, configs, 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pass 1")
	assert.Zero(t, opens.Load())
}

func TestRunPasses_ReadsTraceFilesFromDisk(t *testing.T) {
	path := testutil.WriteTraceFile(t, "trace.csv", "0,W,0,512,0\n0,R,0,512,1\n")

	reports, err := RunPasses(func() (io.ReadCloser, error) { return trace.Open(path) }, policyConfigs(4096), 0)

	require.NoError(t, err)
	assert.Equal(t, 100.0, reports[0].ReadHitRatio)
	assert.Equal(t, 0.0, reports[2].ReadHitRatio)
}
