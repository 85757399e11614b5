package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/blocksim/blocksim/sim"
	"github.com/blocksim/blocksim/sim/cache"
	"github.com/blocksim/blocksim/sim/policy"
	"github.com/blocksim/blocksim/sim/trace"
)

var (
	// CLI flags shared by run and sweep
	configPath     string   // Optional YAML file with flag defaults
	logLevel       string   // Log verbosity level
	blockSize      uint64   // Cache block size in bytes
	traceFormat    string   // Trace wire format (csv, blktrace)
	policies       []string // Admission policies, one pass each
	maxLines       int64    // Line ceiling per pass (0 = whole trace)
	reportInterval int64    // Progress snapshot cadence in lines
	workers        int      // Max passes running at once (0 = all)
	resultsPath    string   // Optional JSON file receiving all reports
	exactEndBlock  bool     // Stop candidate ranges at the block holding the last byte

	// run only
	cacheSize uint64 // Cache size in bytes

	// sweep only
	ratios     []float64 // Cache size as fractions of the device size
	deviceSize uint64    // Device size in bytes (0 = estimate from the trace)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "blocksim",
	Short: "Trace-driven block cache simulator",
}

// runCmd simulates one cache size under each requested admission policy
var runCmd = &cobra.Command{
	Use:   "run <trace>",
	Short: "Compute read/write cache hit ratios for a trace",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		fc := applyConfigFile(cmd)

		if !cmd.Flags().Changed("cache-size") && !fc.hasCacheSize() {
			logrus.Fatalf("Cache size not provided (--cache-size or cache_size in --config). Exiting simulation.")
		}
		base := baseConfig()
		base.CacheSizeBytes = cacheSize
		configs := make([]sim.Config, 0, len(policies))
		for _, name := range policies {
			cfg := base
			cfg.Policy = name
			configs = append(configs, cfg)
		}

		if err := runPasses(cmd.OutOrStdout(), args[0], configs); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// setupLogging applies --log.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// applyConfigFile loads --config, if given, underneath the explicitly set flags.
func applyConfigFile(cmd *cobra.Command) *FileConfig {
	if configPath == "" {
		return nil
	}
	fc, err := loadFileConfig(configPath)
	if err != nil {
		logrus.Fatalf("Invalid --config: %v", err)
	}
	fc.applyTo(cmd.Flags().Changed)
	logrus.Debugf("Loaded defaults from %s", configPath)
	return fc
}

// baseConfig builds the pass settings shared by every pass from the flags.
// It exits on invalid values so no pass state is ever created from them.
func baseConfig() sim.Config {
	format, err := trace.ParseFormat(traceFormat)
	if err != nil {
		logrus.Fatalf("Invalid --trace-format: %v", err)
	}
	if blockSize == 0 {
		logrus.Fatalf("--block-size must be positive")
	}
	if len(policies) == 0 {
		logrus.Fatalf("At least one --policy is required")
	}
	for _, name := range policies {
		if !policy.IsValidPolicy(name) {
			logrus.Fatalf("Unknown admission policy %q; valid policies: %v", name, policy.ValidPolicyNames())
		}
	}
	mode := cache.RangeInclusiveEnd
	if exactEndBlock {
		mode = cache.RangeExactEnd
	}
	return sim.Config{
		BlockSize:      blockSize,
		Format:         format,
		MaxLines:       maxLines,
		ReportInterval: reportInterval,
		RangeMode:      mode,
	}
}

// runPasses checks the trace, runs every pass and prints their reports.
func runPasses(out io.Writer, tracePath string, configs []sim.Config) error {
	if _, err := os.Stat(tracePath); err != nil {
		return fmt.Errorf("trace file: %w", err)
	}
	for _, cfg := range configs {
		logrus.Infof("Queued pass: policy=%s cache_size=%d bytes (%d blocks of %d)",
			cfg.Policy, cfg.CacheSizeBytes, cfg.CapacityBlocks(), cfg.BlockSize)
	}

	reports, err := sim.RunPasses(func() (io.ReadCloser, error) { return trace.Open(tracePath) }, configs, workers)
	if err != nil {
		return err
	}

	for _, r := range reports {
		r.Print(out)
		_, _ = fmt.Fprintln(out)
	}
	sim.PrintSummaryTable(out, reports)

	if resultsPath != "" {
		if err := sim.SaveResults(reports, resultsPath); err != nil {
			return err
		}
		logrus.Infof("Results written to %s", resultsPath)
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addPassFlags registers the flags every simulating command understands.
func addPassFlags(c *cobra.Command) {
	c.Flags().StringVar(&configPath, "config", "", "YAML file providing defaults for these flags")
	c.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	c.Flags().Uint64Var(&blockSize, "block-size", sim.DefaultBlockSize, "Cache block size in bytes")
	c.Flags().StringVar(&traceFormat, "trace-format", string(trace.FormatDelimited), "Trace format: csv or blktrace")
	c.Flags().StringSliceVar(&policies, "policy", policy.DefaultPolicyNames(), "Admission policies to simulate, one pass each (cache-everything|all, write-only, read-only)")
	c.Flags().Int64Var(&maxLines, "max-lines", sim.DefaultMaxLines, "Stop each pass after this many trace lines (0 = no limit)")
	c.Flags().Int64Var(&reportInterval, "report-interval", sim.DefaultReportInterval, "Log intermediate hit ratios every N lines (0 = never)")
	c.Flags().IntVar(&workers, "workers", 0, "Maximum passes simulated concurrently (0 = all)")
	c.Flags().StringVar(&resultsPath, "results", "", "Write all pass reports to this JSON file")
	c.Flags().BoolVar(&exactEndBlock, "exact-end-block", false, "End each request's block range at its last byte instead of at (offset+length)/block_size")
}

// init sets up CLI flags and subcommands
func init() {
	addPassFlags(runCmd)
	runCmd.Flags().Uint64Var(&cacheSize, "cache-size", 0, "Cache size in bytes")

	addPassFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&ratios, "ratios", []float64{0.023}, "Cache sizes as fractions of the device size")
	sweepCmd.Flags().Uint64Var(&deviceSize, "device-size", 0, "Device size in bytes (0 = estimate by scanning the trace)")

	estimateCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	estimateCmd.Flags().StringVar(&traceFormat, "trace-format", string(trace.FormatDelimited), "Trace format: csv or blktrace")
	estimateCmd.Flags().Int64Var(&maxLines, "max-lines", sim.DefaultMaxLines, "Stop scanning after this many trace lines (0 = no limit)")
	estimateCmd.Flags().Int64Var(&reportInterval, "report-interval", sim.DefaultReportInterval, "Log progress every N lines (0 = never)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(estimateCmd)
}
