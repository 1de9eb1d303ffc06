package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xl0/nvml-tool/internal/gpu"
	"github.com/xl0/nvml-tool/internal/report"
	"github.com/xl0/nvml-tool/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a compact status overview of the selected devices",
	Long:  `Prints one line per device: index, temperature, fan speed and power draw.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, err := displayUnit()
		if err != nil {
			return err
		}

		return withSession(func(session gpu.Session) error {
			return forEachTarget(session, func(device gpu.Device) error {
				r := report.Collect(device, unit)
				ui.Printfln("%d:%.1f%s,%d%%,%.1fW", r.DeviceID, r.Temperature, r.TemperatureUnit, r.FanSpeedPercent, r.PowerUsageWatts)
				return nil
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
