package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blocksim/blocksim/sim/internal/testutil"
	"github.com/blocksim/blocksim/sim/trace"
)

func TestHitRatio_ZeroTotalIsZero(t *testing.T) {
	assert.Equal(t, 0.0, HitRatio(0, 0))
	assert.Equal(t, 0.0, NewMetrics().ReadHitRatio())
	assert.Equal(t, 0.0, NewMetrics().WriteHitRatio())
	assert.Equal(t, 0.0, NewMetrics().OverallHitRatio())
}

func TestMetrics_Record_ClassifiesByOpType(t *testing.T) {
	// GIVEN one request of every op type
	m := NewMetrics()

	// WHEN they are recorded
	m.Record(trace.OpRead, 100, 50)
	m.Record(trace.OpReadStream, 300, 0)
	m.Record(trace.OpWrite, 200, 200)
	m.Record(trace.OpWriteStream, 600, 100)

	// THEN streams count with their plain counterparts
	assert.Equal(t, int64(2), m.ReadOps)
	assert.Equal(t, int64(1), m.ReadHitOps)
	assert.Equal(t, uint64(400), m.ReadBytes)
	assert.Equal(t, uint64(50), m.ReadHitBytes)
	assert.Equal(t, int64(2), m.WriteOps)
	assert.Equal(t, int64(2), m.WriteHitOps)
	assert.Equal(t, uint64(800), m.WriteBytes)
	assert.Equal(t, uint64(300), m.WriteHitBytes)

	testutil.AssertFloat64Equal(t, "read", 12.5, m.ReadHitRatio(), 1e-9)
	testutil.AssertFloat64Equal(t, "write", 37.5, m.WriteHitRatio(), 1e-9)
	testutil.AssertFloat64Equal(t, "overall", 350.0/1200*100, m.OverallHitRatio(), 1e-9)
}
