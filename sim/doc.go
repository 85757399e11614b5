// Package sim provides the trace-driven block cache simulation engine for blocksim.
//
// # Reading Guide
//
// Start with these files to understand one simulation pass:
//   - simulator.go: the pass state machine (streaming → end-of-file/line-limit → reporting → done)
//   - metrics.go: read/write traffic and hit-byte counters
//   - runner.go: independent passes (policy x cache size) run concurrently
//
// # Architecture
//
// The sim package drives passes; the building blocks live in sub-packages:
//   - sim/trace/: trace line parsing, compressed trace files, single-scan summaries
//   - sim/cache/: the LRU block store and the byte-accurate hit accountant
//   - sim/policy/: admission policies (cache-everything, write-only, read-only)
//
// A pass processes records strictly in trace order because that order is the
// LRU order. Parallelism only exists between passes, which share no state.
package sim
