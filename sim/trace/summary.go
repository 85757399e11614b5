package trace

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// TraceSummary aggregates statistics from one forward scan of a trace.
type TraceSummary struct {
	Lines      int64
	Records    int64
	Skipped    int64
	Reads      int64
	Writes     int64
	ReadBytes  uint64
	WriteBytes uint64
	// MaxEnd is the largest Offset+Length seen; it approximates the device size.
	MaxEnd  uint64
	Devices map[string]int64 // device ID → record count
}

// Summarize scans r once, stopping after maxLines lines (0 means no limit).
// A progress line is logged every reportInterval lines (0 disables it).
// Safe for empty input (returns zero-value fields).
func Summarize(r io.Reader, format Format, maxLines, reportInterval int64) (*TraceSummary, error) {
	summary := &TraceSummary{
		Devices: make(map[string]int64),
	}
	scanner := NewScanner(r)
	for scanner.Scan() {
		if maxLines > 0 && summary.Lines >= maxLines {
			break
		}
		summary.Lines++
		if reportInterval > 0 && summary.Lines%reportInterval == 0 {
			logrus.Infof("line_count: %d max_end: %d", summary.Lines, summary.MaxEnd)
		}

		res := Parse(scanner.Text(), format)
		if res.Skipped() {
			summary.Skipped++
			continue
		}
		rec := res.Record
		summary.Records++
		summary.Devices[rec.DeviceID]++
		if rec.Op.IsRead() {
			summary.Reads++
			summary.ReadBytes += rec.Length
		} else {
			summary.Writes++
			summary.WriteBytes += rec.Length
		}
		summary.MaxEnd = max(summary.MaxEnd, rec.End())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning trace after %d lines: %w", summary.Lines, err)
	}
	return summary, nil
}

// EstimateDeviceSize returns the largest byte address touched within maxLines lines.
func EstimateDeviceSize(r io.Reader, format Format, maxLines, reportInterval int64) (uint64, error) {
	summary, err := Summarize(r, format, maxLines, reportInterval)
	if err != nil {
		return 0, err
	}
	return summary.MaxEnd, nil
}
