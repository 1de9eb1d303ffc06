package cmd

import (
	"bytes"
	"strconv"

	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"

	"github.com/xl0/nvml-tool/cmd/global"
	"github.com/xl0/nvml-tool/internal/gpu"
	"github.com/xl0/nvml-tool/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all GPUs with index, UUID and name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(session gpu.Session) error {
			var rows [][]string
			err := forEachTarget(session, func(device gpu.Device) error {
				uuid, err := device.UUID()
				if err != nil {
					uuid = "Unknown"
				}
				name, err := device.Name()
				if err != nil {
					name = "Unknown"
				}
				rows = append(rows, []string{strconv.Itoa(device.Index()), uuid, name})
				return nil
			})

			tab := table.Table{
				Headers: []string{"Index", "UUID", "Name"},
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

			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
