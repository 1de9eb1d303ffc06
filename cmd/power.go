package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xl0/nvml-tool/internal/gpu"
	"github.com/xl0/nvml-tool/internal/ui"
)

var powerCmd = &cobra.Command{
	Use:   "power",
	Short: "Show or set the power usage and limits of the selected devices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(session gpu.Session) error {
			return forEachTarget(session, func(device gpu.Device) error {
				usage, err := device.PowerUsage()
				if err != nil {
					return fmt.Errorf("cannot read power usage: %w", err)
				}
				ui.Printfln("%d:%.2f", device.Index(), float64(usage)/1000.0)
				return nil
			})
		})
	},
}

var powerSetCmd = &cobra.Command{
	Use:   "set WATTS",
	Short: "Set the power management limit of the selected devices",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		watts, err := strconv.Atoi(args[0])
		if err != nil || watts <= 0 {
			return fmt.Errorf("invalid power limit '%s', must be a positive integer in watts", args[0])
		}
		limit := uint32(watts) * 1000

		return withSession(func(session gpu.Session) error {
			return forEachTarget(session, func(device gpu.Device) error {
				constraints, err := device.PowerLimitConstraints()
				if err != nil {
					return fmt.Errorf("cannot get power limit constraints: %w", err)
				}

				if limit < constraints.Min || limit > constraints.Max {
					return fmt.Errorf("power limit %dW outside valid range (%.2f-%.2fW)",
						watts, float64(constraints.Min)/1000.0, float64(constraints.Max)/1000.0)
				}

				if err := device.SetPowerLimit(limit); err != nil {
					return fmt.Errorf("failed to set power limit: %w", err)
				}
				ui.Printfln("%d:Power limit set to %dW", device.Index(), watts)
				return nil
			})
		})
	},
}

func init() {
	powerCmd.AddCommand(powerSetCmd)
	rootCmd.AddCommand(powerCmd)
}
