package cmd

import (
	"bytes"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"

	"github.com/xl0/nvml-tool/cmd/global"
	"github.com/xl0/nvml-tool/internal/setpoint"
	"github.com/xl0/nvml-tool/internal/ui"
)

var curveCmd = &cobra.Command{
	Use:   "curve TEMP:DUTY...",
	Short: "Preview a setpoint curve without touching any device",
	Long: `Parses the given temperature:duty setpoints exactly like fanctl does
and renders the resulting interpolated control curve.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		curve, err := setpoint.Parse(args)
		if err != nil {
			return err
		}

		points := curve.Points()

		var rows [][]string
		for _, point := range points {
			rows = append(rows, []string{
				strconv.Itoa(point.Temperature),
				strconv.Itoa(point.Duty),
			})
		}
		tab := table.Table{
			Headers: []string{"Temperature °C", "Duty %"},
			Rows:    rows,
		}
		var buf bytes.Buffer
		tableErr := tab.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if tableErr != nil {
			return tableErr
		}
		ui.Println(buf.String())

		first := points[0].Temperature
		last := points[len(points)-1].Temperature
		values := make([]float64, 0, last-first+1)
		for temperature := first; temperature <= last; temperature++ {
			values = append(values, float64(curve.DutyFor(temperature)))
		}

		caption := "Duty % over " + strconv.Itoa(first) + "-" + strconv.Itoa(last) + " °C"
		graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
		ui.Println(graph)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(curveCmd)
}
