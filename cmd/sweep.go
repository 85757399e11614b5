package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/blocksim/blocksim/sim"
)

// sweepCmd simulates cache sizes given as fractions of the device size.
var sweepCmd = &cobra.Command{
	Use:   "sweep <trace>",
	Short: "Compute hit ratios for several cache sizes relative to the device size",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		applyConfigFile(cmd)
		base := baseConfig()

		if len(ratios) == 0 {
			logrus.Fatalf("At least one --ratios value is required")
		}
		for _, r := range ratios {
			if r < 0 {
				logrus.Fatalf("Cache ratio must not be negative, got %v", r)
			}
		}

		size := deviceSize
		if size == 0 {
			var err error
			size, err = estimateDeviceSize(args[0], base.Format)
			if err != nil {
				logrus.Fatalf("Device size estimation failed: %v", err)
			}
		}
		logrus.Infof("Device size: %d bytes", size)

		configs := sim.SweepConfigs(base, size, ratios, policies)
		for i, cfg := range configs {
			logrus.Debugf("Sweep pass %d: ratio=%.5f%% policy=%s", i, ratios[i/len(policies)]*100, cfg.Policy)
		}
		if err := runPasses(cmd.OutOrStdout(), args[0], configs); err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
		logrus.Info("Sweep complete.")
	},
}
