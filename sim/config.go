package sim

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blocksim/blocksim/sim/cache"
	"github.com/blocksim/blocksim/sim/policy"
	"github.com/blocksim/blocksim/sim/trace"
)

const (
	DefaultBlockSize      = 64 * 1024
	DefaultMaxLines       = 10_000_000
	DefaultReportInterval = 10_000
)

// Config describes one simulation pass: one cache size under one admission policy.
type Config struct {
	CacheSizeBytes uint64
	BlockSize      uint64
	Format         trace.Format
	Policy         string
	// MaxLines stops the pass after this many trace lines; 0 means no limit.
	MaxLines int64
	// ReportInterval is the line cadence of progress snapshots; 0 disables them.
	ReportInterval int64
	// RangeMode picks the last candidate block of a request; the zero value is
	// cache.RangeInclusiveEnd.
	RangeMode cache.RangeMode
}

// CapacityBlocks is the number of whole blocks that fit in the cache.
func (c Config) CapacityBlocks() int64 {
	if c.BlockSize == 0 {
		return 0
	}
	return int64(c.CacheSizeBytes / c.BlockSize)
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var errs []error
	if c.BlockSize == 0 {
		errs = append(errs, errors.New("block size must be positive"))
	}
	if !trace.IsValidFormat(string(c.Format)) {
		errs = append(errs, fmt.Errorf("%w %q", trace.ErrUnknownFormat, c.Format))
	}
	if !policy.IsValidPolicy(c.Policy) {
		errs = append(errs, fmt.Errorf("unknown admission policy %q; valid policies: [%s]",
			c.Policy, strings.Join(policy.ValidPolicyNames(), ", ")))
	}
	if c.MaxLines < 0 {
		errs = append(errs, fmt.Errorf("max lines must not be negative, got %d", c.MaxLines))
	}
	if c.RangeMode != cache.RangeInclusiveEnd && c.RangeMode != cache.RangeExactEnd {
		errs = append(errs, fmt.Errorf("unknown range mode %d", int(c.RangeMode)))
	}
	if c.ReportInterval < 0 {
		errs = append(errs, fmt.Errorf("report interval must not be negative, got %d", c.ReportInterval))
	}
	return errors.Join(errs...)
}

// SweepConfigs expands a base configuration into one pass per (ratio, policy),
// with cache size = deviceSize * ratio. Ratios vary slowest.
func SweepConfigs(base Config, deviceSize uint64, ratios []float64, policies []string) []Config {
	configs := make([]Config, 0, len(ratios)*len(policies))
	for _, ratio := range ratios {
		for _, name := range policies {
			cfg := base
			cfg.CacheSizeBytes = uint64(float64(deviceSize) * ratio)
			cfg.Policy = name
			configs = append(configs, cfg)
		}
	}
	return configs
}
