package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xl0/nvml-tool/internal/gpu"
	"github.com/xl0/nvml-tool/internal/ui"
)

var tempCmd = &cobra.Command{
	Use:   "temp",
	Short: "Show the current temperature of the selected devices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, err := displayUnit()
		if err != nil {
			return err
		}

		return withSession(func(session gpu.Session) error {
			return forEachTarget(session, func(device gpu.Device) error {
				temperature, err := device.Temperature()
				if err != nil {
					return fmt.Errorf("cannot read temperature: %w", err)
				}
				ui.Printfln("%d:%.1f", device.Index(), unit.Convert(temperature))
				return nil
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(tempCmd)
}
