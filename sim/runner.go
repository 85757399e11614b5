package sim

import (
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

// TraceOpener returns a fresh reader positioned at the start of the trace.
// Each pass calls it once and closes what it gets.
type TraceOpener func() (io.ReadCloser, error)

// RunPasses runs one independent pass per config, at most workers at a time
// (workers <= 0 means all at once). Reports come back in config order.
// Passes share nothing but the opener; the first failure is returned.
func RunPasses(open TraceOpener, configs []Config, workers int) ([]*Report, error) {
	for i, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("pass %d: %w", i, err)
		}
	}

	reports := make([]*Report, len(configs))
	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, cfg := range configs {
		i, cfg := i, cfg
		g.Go(func() error {
			report, err := runPass(open, cfg)
			if err != nil {
				return fmt.Errorf("pass %d (%s, %d bytes): %w", i, cfg.Policy, cfg.CacheSizeBytes, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func runPass(open TraceOpener, cfg Config) (report *Report, err error) {
	rc, err := open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing trace: %w", closeErr)
		}
	}()
	return NewSimulator(cfg).Run(rc)
}
