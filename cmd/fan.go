package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xl0/nvml-tool/internal/gpu"
	"github.com/xl0/nvml-tool/internal/ui"
)

var fanCmd = &cobra.Command{
	Use:   "fan",
	Short: "Show or set the fan speed of the selected devices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(session gpu.Session) error {
			return forEachTarget(session, func(device gpu.Device) error {
				speed, err := device.FanSpeed()
				if err != nil {
					return fmt.Errorf("cannot read fan speed: %w", err)
				}
				ui.Printfln("%d:%d", device.Index(), speed)
				return nil
			})
		})
	},
}

var fanSetCmd = &cobra.Command{
	Use:   "set DUTY",
	Short: "Pin all fans of the selected devices to a fixed duty cycle (0-100%)",
	Long: `Pins every fan of the selected devices to the given duty cycle,
switching them to manual control. The hardware will no longer adjust fan
speeds on its own; use 'nvml-tool fan restore' to hand control back.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		duty, err := strconv.Atoi(args[0])
		if err != nil || duty < 0 || duty > 100 {
			return fmt.Errorf("invalid fan duty '%s', must be in 0-100%%", args[0])
		}

		return withSession(func(session gpu.Session) error {
			return forEachTarget(session, func(device gpu.Device) error {
				fanCount, err := controllableFanCount(device)
				if err != nil {
					return err
				}

				fanErrors := 0
				for fan := 0; fan < fanCount; fan++ {
					if err := device.SetFanDuty(fan, duty); err != nil {
						ui.Error("%d:Fan%d:Error: %v", device.Index(), fan, err)
						fanErrors++
						continue
					}
					ui.Printfln("%d:Fan%d:Set to %d%%", device.Index(), fan, duty)
				}
				if fanErrors > 0 {
					return fmt.Errorf("failed to set %d of %d fans", fanErrors, fanCount)
				}

				ui.Printfln("%d:Warning: Fan control is now MANUAL - monitor temperatures!", device.Index())
				ui.Printfln("%d:Note: Use 'nvml-tool fan restore -d %d' to restore automatic control", device.Index(), device.Index())
				return nil
			})
		})
	},
}

var fanRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore automatic fan control on the selected devices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(session gpu.Session) error {
			return forEachTarget(session, func(device gpu.Device) error {
				fanCount, err := controllableFanCount(device)
				if err != nil {
					return err
				}

				fanErrors := 0
				for fan := 0; fan < fanCount; fan++ {
					if err := device.RestoreAutomatic(fan); err != nil {
						ui.Error("%d:Fan%d:Error: %v", device.Index(), fan, err)
						fanErrors++
						continue
					}
					ui.Printfln("%d:Fan%d:Restored to automatic control", device.Index(), fan)
				}
				if fanErrors > 0 {
					return fmt.Errorf("failed to restore %d of %d fans", fanErrors, fanCount)
				}

				ui.Printfln("%d:All fans restored to automatic temperature-based control", device.Index())
				return nil
			})
		})
	},
}

func controllableFanCount(device gpu.Device) (int, error) {
	fanCount, err := device.FanCount()
	if err != nil {
		return 0, fmt.Errorf("cannot get number of fans: %w", err)
	}
	if fanCount == 0 {
		return 0, fmt.Errorf("device has no controllable fans")
	}
	return fanCount, nil
}

func init() {
	fanCmd.AddCommand(fanSetCmd)
	fanCmd.AddCommand(fanRestoreCmd)
	rootCmd.AddCommand(fanCmd)
}
