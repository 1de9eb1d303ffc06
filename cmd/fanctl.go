package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/xl0/nvml-tool/cmd/global"
	"github.com/xl0/nvml-tool/internal/configuration"
	"github.com/xl0/nvml-tool/internal/console"
	"github.com/xl0/nvml-tool/internal/fanctl"
	"github.com/xl0/nvml-tool/internal/gpu"
	"github.com/xl0/nvml-tool/internal/setpoint"
	"github.com/xl0/nvml-tool/internal/statistics"
	"github.com/xl0/nvml-tool/internal/targets"
)

var fanctlMetrics bool

var fanctlCmd = &cobra.Command{
	Use:   "fanctl TEMP:DUTY...",
	Short: "Drive the fans of the selected devices dynamically based on temperature",
	Long: `Runs a control loop that periodically samples the temperature of every
selected device, interpolates a target fan duty cycle from the given
temperature:duty setpoints and applies it to all fans of the device.

On exit (Ctrl-C, SIGTERM or a telemetry/actuation failure) every fan is
returned to the hardware's own automatic control policy.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		curve, err := setpoint.Parse(args)
		if err != nil {
			return err
		}

		unit, err := displayUnit()
		if err != nil {
			return err
		}

		return withSession(func(session gpu.Session) error {
			indices, err := targets.Resolve(session, global.DeviceSelector, global.UUID)
			if err != nil {
				return err
			}

			controlled, err := fanctl.Prepare(session, indices)
			if err != nil {
				return err
			}

			metricsPort := 0
			var stats *statistics.FanctlCollector
			if fanctlMetrics || configuration.CurrentConfig.Statistics.Enabled {
				stats = statistics.NewFanctlCollector()
				statistics.Register(stats)
				metricsPort = configuration.CurrentConfig.Statistics.Port
			}

			controller := fanctl.NewController(controlled, curve, fanctl.Options{
				Interval: configuration.CurrentConfig.FanctlInterval,
				Unit:     unit,
				Surface:  console.Detect(os.Stdout),
				Stats:    stats,
			})

			return fanctl.Supervise(controller, fanctl.SuperviseOptions{
				MetricsPort: metricsPort,
			})
		})
	},
}

func init() {
	fanctlCmd.Flags().BoolVar(&fanctlMetrics, "metrics", false, "Serve prometheus metrics while the loop runs")
	rootCmd.AddCommand(fanctlCmd)
}
