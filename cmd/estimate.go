package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/blocksim/blocksim/sim/trace"
)

// estimateCmd approximates the device size of a trace by its highest byte address.
var estimateCmd = &cobra.Command{
	Use:   "estimate <trace>",
	Short: "Estimate the device size touched by a trace",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		format, err := trace.ParseFormat(traceFormat)
		if err != nil {
			logrus.Fatalf("Invalid --trace-format: %v", err)
		}
		if err := printEstimate(cmd.OutOrStdout(), args[0], format); err != nil {
			logrus.Fatalf("Estimation failed: %v", err)
		}
	},
}

// summarizeTrace scans the trace file once within --max-lines.
func summarizeTrace(path string, format trace.Format) (*trace.TraceSummary, error) {
	rc, err := trace.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return trace.Summarize(rc, format, maxLines, reportInterval)
}

// estimateDeviceSize opens the trace and hands it to trace.EstimateDeviceSize.
func estimateDeviceSize(path string, format trace.Format) (uint64, error) {
	rc, err := trace.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = rc.Close() }()
	return trace.EstimateDeviceSize(rc, format, maxLines, reportInterval)
}

func printEstimate(out io.Writer, path string, format trace.Format) error {
	summary, err := summarizeTrace(path, format)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Estimated Device Size: %d bytes\n", summary.MaxEnd)
	_, _ = fmt.Fprintf(out, "Lines: %d (records %d, skipped %d)\n", summary.Lines, summary.Records, summary.Skipped)
	_, _ = fmt.Fprintf(out, "Reads: %d (%d bytes)  Writes: %d (%d bytes)\n", summary.Reads, summary.ReadBytes, summary.Writes, summary.WriteBytes)
	_, _ = fmt.Fprintf(out, "Devices: %d\n", len(summary.Devices))
	return nil
}
