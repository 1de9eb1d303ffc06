package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/xl0/nvml-tool/internal/gpu"
	"github.com/xl0/nvml-tool/internal/report"
	"github.com/xl0/nvml-tool/internal/ui"
)

var infoJson bool

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show comprehensive information about the selected devices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, err := displayUnit()
		if err != nil {
			return err
		}

		return withSession(func(session gpu.Session) error {
			if infoJson {
				reports := []report.DeviceReport{}
				err := forEachTarget(session, func(device gpu.Device) error {
					reports = append(reports, report.Collect(device, unit))
					return nil
				})

				rendered, jsonErr := json.MarshalIndent(reports, "", "  ")
				if jsonErr != nil {
					return jsonErr
				}
				ui.Printfln("%s", rendered)
				return err
			}

			return forEachTarget(session, func(device gpu.Device) error {
				printDeviceInfo(report.Collect(device, unit))
				return nil
			})
		})
	},
}

func printDeviceInfo(r report.DeviceReport) {
	if r.HasName {
		ui.Printfln("=== Device %d: %s ===", r.DeviceID, r.Name)
	} else {
		ui.Printfln("=== Device %d ===", r.DeviceID)
	}

	if r.HasUUID {
		ui.Printfln("UUID:        %s", r.UUID)
	}
	if r.HasTemp {
		ui.Printfln("Temperature: %.1f%s", r.Temperature, r.TemperatureUnit)
	}
	if r.HasMem {
		ui.Printfln("Memory:      %d MB / %d MB (%.1f%%)", r.MemoryUsedMB, r.MemoryTotalMB, r.MemoryUsedPercent())
	}
	if r.HasFan {
		ui.Printfln("Fan Speed:   %d%%", r.FanSpeedPercent)
	}
	if r.HasPower {
		ui.Printfln("Power:       %.2fW / %.2fW (%.1f%%)", r.PowerUsageWatts, r.PowerLimitWatts, r.PowerUsedPercent())
	}
	ui.Printfln("")
}

func init() {
	infoCmd.Flags().BoolVar(&infoJson, "json", false, "Output as JSON")
	rootCmd.AddCommand(infoCmd)
}
