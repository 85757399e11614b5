// Tracks per-pass read/write traffic and byte-accurate hit totals.

package sim

import "github.com/blocksim/blocksim/sim/trace"

// Metrics aggregates the counters of a single simulation pass.
// All fields only grow during a pass and are never shared between passes.
type Metrics struct {
	ReadOps      int64  `json:"read_ops"`
	ReadHitOps   int64  `json:"read_hit_ops"` // reads with at least one hit byte
	ReadBytes    uint64 `json:"read_bytes"`
	ReadHitBytes uint64 `json:"read_hit_bytes"`

	WriteOps      int64  `json:"write_ops"`
	WriteHitOps   int64  `json:"write_hit_ops"`
	WriteBytes    uint64 `json:"write_bytes"`
	WriteHitBytes uint64 `json:"write_hit_bytes"`

	Lines        int64 `json:"lines"`         // trace lines consumed
	SkippedLines int64 `json:"skipped_lines"` // lines that produced no record
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

// Record adds one processed request.
func (m *Metrics) Record(op trace.OpType, length, hitBytes uint64) {
	if op.IsRead() {
		m.ReadOps++
		m.ReadBytes += length
		m.ReadHitBytes += hitBytes
		if hitBytes > 0 {
			m.ReadHitOps++
		}
		return
	}
	m.WriteOps++
	m.WriteBytes += length
	m.WriteHitBytes += hitBytes
	if hitBytes > 0 {
		m.WriteHitOps++
	}
}

// HitRatio returns 100*hit/total, or 0 when total is 0.
func HitRatio(hit, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(hit) / float64(total)
}

func (m *Metrics) ReadHitRatio() float64 {
	return HitRatio(m.ReadHitBytes, m.ReadBytes)
}

func (m *Metrics) WriteHitRatio() float64 {
	return HitRatio(m.WriteHitBytes, m.WriteBytes)
}

// OverallHitRatio combines read and write traffic.
func (m *Metrics) OverallHitRatio() float64 {
	return HitRatio(m.ReadHitBytes+m.WriteHitBytes, m.ReadBytes+m.WriteBytes)
}
