// sim/simulator.go
package sim

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/blocksim/blocksim/sim/cache"
	"github.com/blocksim/blocksim/sim/policy"
	"github.com/blocksim/blocksim/sim/trace"
)

// State is the position of a pass in its lifecycle:
// Streaming → {EndOfFile, LineLimitReached} → Reporting → Done.
type State int

const (
	StateStreaming State = iota
	StateEndOfFile
	StateLineLimitReached
	StateReporting
	StateDone
)

func (s State) String() string {
	switch s {
	case StateStreaming:
		return "streaming"
	case StateEndOfFile:
		return "end-of-file"
	case StateLineLimitReached:
		return "line-limit"
	case StateReporting:
		return "reporting"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Simulator owns the cache, admission policy and counters of a single pass.
// Nothing in it is shared, so independent passes can run on separate goroutines.
type Simulator struct {
	Config  Config
	Store   *cache.LRUStore
	Policy  policy.AdmissionPolicy
	Metrics *Metrics
	State   State

	log *logrus.Entry
}

// NewSimulator creates a pass for cfg. cfg must pass Validate.
func NewSimulator(cfg Config) *Simulator {
	return &Simulator{
		Config:  cfg,
		Store:   cache.NewLRUStore(cfg.CapacityBlocks()),
		Policy:  policy.NewAdmissionPolicy(cfg.Policy),
		Metrics: NewMetrics(),
		State:   StateStreaming,
		log: logrus.WithFields(logrus.Fields{
			"policy":     cfg.Policy,
			"cache_size": cfg.CacheSizeBytes,
		}),
	}
}

// Process runs one record through hit accounting, metrics and admission, and
// returns the record's hit bytes.
func (sim *Simulator) Process(rec trace.TraceRecord) uint64 {
	blocks := sim.Config.RangeMode.RangeOf(rec.Offset, rec.Length, sim.Config.BlockSize)
	hit := cache.OverlapBytes(sim.Store, blocks, rec.Offset, rec.Length, sim.Config.BlockSize)
	sim.Metrics.Record(rec.Op, rec.Length, hit)
	if sim.Policy.ShouldCache(rec.Op) {
		sim.Store.Admit(blocks)
	}
	return hit
}

// ProcessLine parses and processes one trace line. ok is false when the line was skipped.
func (sim *Simulator) ProcessLine(line string) (hit uint64, ok bool) {
	res := trace.Parse(line, sim.Config.Format)
	if res.Skipped() {
		sim.Metrics.SkippedLines++
		if sim.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
			sim.log.Debugf("skipping line %d: %s", sim.Metrics.Lines, res.SkipReason)
		}
		return 0, false
	}
	return sim.Process(res.Record), true
}

// Run streams r line by line until end of input or the line ceiling, then
// builds the final report. Read errors end the pass and are returned.
func (sim *Simulator) Run(r io.Reader) (*Report, error) {
	scanner := trace.NewScanner(r)
	sim.log.Infof("Starting pass: %d blocks of %d bytes, format=%s, range=%s",
		sim.Store.Capacity(), sim.Config.BlockSize, sim.Config.Format, sim.Config.RangeMode)

	for sim.State == StateStreaming {
		if sim.Config.MaxLines > 0 && sim.Metrics.Lines >= sim.Config.MaxLines {
			sim.State = StateLineLimitReached
			break
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("reading trace line %d: %w", sim.Metrics.Lines+1, err)
			}
			sim.State = StateEndOfFile
			break
		}
		sim.Metrics.Lines++
		sim.ProcessLine(scanner.Text())

		if sim.Config.ReportInterval > 0 && sim.Metrics.Lines%sim.Config.ReportInterval == 0 {
			sim.logSnapshot()
		}
	}

	stop := sim.State
	sim.State = StateReporting
	report := sim.Report(stop)
	sim.log.Infof("Pass ended (%s) after %d lines: read hit %.2f%%, write hit %.2f%%",
		stop, sim.Metrics.Lines, report.ReadHitRatio, report.WriteHitRatio)
	sim.State = StateDone
	return report, nil
}

// logSnapshot reports running ratios. It never changes simulation state.
func (sim *Simulator) logSnapshot() {
	sim.log.Infof("line_count: %d read hit %.2f%% write hit %.2f%% cache_len=%d max_cache_size=%d",
		sim.Metrics.Lines, sim.Metrics.ReadHitRatio(), sim.Metrics.WriteHitRatio(),
		sim.Store.Len(), sim.Store.Capacity())
}

// Report captures the current counters and cache occupancy.
func (sim *Simulator) Report(stop State) *Report {
	return &Report{
		Policy:         sim.Policy.Name(),
		CacheSizeBytes: sim.Config.CacheSizeBytes,
		BlockSize:      sim.Config.BlockSize,
		RangeMode:      sim.Config.RangeMode.String(),
		CapacityBlocks: sim.Store.Capacity(),
		ResidentBlocks: sim.Store.Len(),
		Evictions:      sim.Store.Evictions(),
		ReadHitRatio:   sim.Metrics.ReadHitRatio(),
		WriteHitRatio:  sim.Metrics.WriteHitRatio(),
		StopReason:     stop.String(),
		Metrics:        *sim.Metrics,
	}
}
