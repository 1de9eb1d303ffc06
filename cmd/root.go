package cmd

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/xl0/nvml-tool/cmd/global"
	"github.com/xl0/nvml-tool/internal/configuration"
	"github.com/xl0/nvml-tool/internal/ui"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nvml-tool",
	Short: "Inspect and control NVIDIA GPU telemetry",
	Long: `nvml-tool is a command line utility to inspect NVIDIA GPU telemetry
(temperature, power, fan speed) and to drive GPU cooling fans
dynamically based on temperature setpoints.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is $HOME/nvml-tool.yaml)")
	rootCmd.PersistentFlags().StringVarP(&global.DeviceSelector, "device", "d", "", "Select devices, e.g. 0, 0-2 or 0,2,4 (default: all)")
	rootCmd.PersistentFlags().StringVarP(&global.UUID, "uuid", "u", "", "Select a single device by UUID substring")
	rootCmd.PersistentFlags().StringVarP(&global.TempUnit, "temp-unit", "t", "", "Temperature display unit: C, F or K")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")
}

func setupUi() {
	ui.SetDebugEnabled(global.Verbose)

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		configuration.InitConfig(global.CfgFile)
		setupUi()
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
