// Package trace decodes block-I/O access traces into TraceRecords.
// This package has no dependencies on sim/ or sim/cache/: it only knows about lines and records.
package trace

import "fmt"

// OpType is the operation kind carried by a trace record.
type OpType int

const (
	OpRead OpType = iota
	OpWrite
	OpReadStream
	OpWriteStream
)

// opCodes maps the op code column of a trace line to an OpType.
var opCodes = map[string]OpType{
	"R":  OpRead,
	"W":  OpWrite,
	"RS": OpReadStream,
	"WS": OpWriteStream,
}

// ParseOpType returns the OpType for an op code such as "R" or "WS".
func ParseOpType(code string) (OpType, bool) {
	op, ok := opCodes[code]
	return op, ok
}

// IsRead is true for Read and ReadStream.
func (o OpType) IsRead() bool {
	return o == OpRead || o == OpReadStream
}

// IsWrite is true for Write and WriteStream.
func (o OpType) IsWrite() bool {
	return o == OpWrite || o == OpWriteStream
}

func (o OpType) String() string {
	switch o {
	case OpRead:
		return "R"
	case OpWrite:
		return "W"
	case OpReadStream:
		return "RS"
	case OpWriteStream:
		return "WS"
	default:
		return fmt.Sprintf("OpType(%d)", int(o))
	}
}

// TraceRecord is a single block access decoded from one trace line.
// Offset and Length are always in bytes regardless of the source format.
type TraceRecord struct {
	DeviceID  string
	Op        OpType
	Offset    uint64
	Length    uint64
	Timestamp string
}

// End returns the first byte past the accessed range.
func (r TraceRecord) End() uint64 {
	return r.Offset + r.Length
}

// Outcome tags the result of parsing one line.
type Outcome int

const (
	// OutcomeRecord means the line produced a record.
	OutcomeRecord Outcome = iota
	// OutcomeSkip means the line was malformed and must be dropped.
	OutcomeSkip
)

// ParseResult is the two-outcome result of Parse.
// Record is only meaningful when Outcome is OutcomeRecord; SkipReason only when it is OutcomeSkip.
type ParseResult struct {
	Outcome    Outcome
	Record     TraceRecord
	SkipReason string
}

// Skipped reports whether the line was dropped.
func (p ParseResult) Skipped() bool {
	return p.Outcome == OutcomeSkip
}

func skip(reason string) ParseResult {
	return ParseResult{Outcome: OutcomeSkip, SkipReason: reason}
}

func parsed(rec TraceRecord) ParseResult {
	return ParseResult{Outcome: OutcomeRecord, Record: rec}
}
