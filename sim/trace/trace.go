package trace

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Format selects the wire format of a trace file.
type Format string

const (
	// FormatDelimited is a comma separated line: device,op,offset,length,timestamp (bytes).
	FormatDelimited Format = "csv"
	// FormatWhitespaceLog is a blkparse-style line; offset and length are in sectors.
	FormatWhitespaceLog Format = "blktrace"
)

const (
	// Delimiter separates fields of a FormatDelimited line.
	Delimiter = ","
	// SectorSize converts FormatWhitespaceLog sector units to bytes.
	SectorSize = 512

	minDelimitedFields     = 5
	minWhitespaceLogFields = 10
)

// ErrUnknownFormat is returned by ParseFormat for unrecognized names.
var ErrUnknownFormat = errors.New("unknown trace format")

// validFormats maps accepted format strings.
var validFormats = map[Format]bool{
	FormatDelimited:     true,
	FormatWhitespaceLog: true,
}

// IsValidFormat returns true if the given name is a recognized trace format.
func IsValidFormat(name string) bool {
	return validFormats[Format(name)]
}

// ParseFormat converts a CLI/config name into a Format.
// An empty name defaults to FormatDelimited.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatDelimited, nil
	}
	if !IsValidFormat(name) {
		return "", fmt.Errorf("%w %q; valid formats: [%s, %s]", ErrUnknownFormat, name, FormatDelimited, FormatWhitespaceLog)
	}
	return Format(name), nil
}

// Parse decodes one trace line. It never fails: malformed lines come back as OutcomeSkip.
func Parse(line string, format Format) ParseResult {
	switch format {
	case FormatWhitespaceLog:
		return parseWhitespaceLog(line)
	default:
		return parseDelimited(line)
	}
}

func parseDelimited(line string) ParseResult {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), Delimiter)
	if len(fields) < minDelimitedFields {
		return skip(fmt.Sprintf("expected at least %d fields, got %d", minDelimitedFields, len(fields)))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	op, ok := ParseOpType(fields[1])
	if !ok {
		return skip(fmt.Sprintf("unknown op code %q", fields[1]))
	}
	offset, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return skip("offset is not an unsigned integer")
	}
	length, err := strconv.ParseUint(fields[3], 10, 64)
	if err != nil {
		return skip("length is not an unsigned integer")
	}
	if _, carry := bits.Add64(offset, length, 0); carry != 0 {
		return skip("offset+length overflows the byte address space")
	}
	return parsed(TraceRecord{
		DeviceID:  fields[0],
		Op:        op,
		Offset:    offset,
		Length:    length,
		Timestamp: fields[4],
	})
}

// parseWhitespaceLog reads blkparse output, e.g.
//
//	8,0    3        1     0.000000000  697  Q  WS 3981224 + 8 [jbd2/sda1-8]
//
// where field 6 is the RWBS op code, 7 the start sector and 9 the sector count.
func parseWhitespaceLog(line string) ParseResult {
	fields := strings.Fields(line)
	if len(fields) < minWhitespaceLogFields {
		return skip(fmt.Sprintf("expected at least %d fields, got %d", minWhitespaceLogFields, len(fields)))
	}
	op, ok := ParseOpType(fields[6])
	if !ok {
		return skip(fmt.Sprintf("unknown op code %q", fields[6]))
	}
	sector, err := strconv.ParseUint(fields[7], 10, 64)
	if err != nil {
		return skip("offset is not an unsigned integer")
	}
	sectors, err := strconv.ParseUint(fields[9], 10, 64)
	if err != nil {
		return skip("length is not an unsigned integer")
	}
	offset, ok := sectorsToBytes(sector)
	if !ok {
		return skip("sector overflows the byte address space")
	}
	length, ok := sectorsToBytes(sectors)
	if !ok {
		return skip("sector count overflows the byte address space")
	}
	if _, carry := bits.Add64(offset, length, 0); carry != 0 {
		return skip("offset+length overflows the byte address space")
	}
	return parsed(TraceRecord{
		DeviceID:  fields[0],
		Op:        op,
		Offset:    offset,
		Length:    length,
		Timestamp: fields[3],
	})
}

func sectorsToBytes(n uint64) (uint64, bool) {
	hi, lo := bits.Mul64(n, SectorSize)
	return lo, hi == 0
}
