package request

import (
	"fmt"
	"os"

	"github.com/felixgeelhaar/parley/adapter/cli"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export accepted meetings as iCalendar",
	Long: `Write your accepted meetings as an iCalendar feed.

Examples:
  parley request export
  parley request export --output meetings.ics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ICalExporter == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Export requires a configured store.")
			return nil
		}

		out := cmd.OutOrStdout()
		if exportOutput != "" {
			file, err := os.Create(exportOutput)
			if err != nil {
				return err
			}
			defer file.Close()
			out = file
		}

		if err := app.ICalExporter.Export(cmd.Context(), currentActor(cmd, app), out); err != nil {
			return err
		}

		if exportOutput != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", exportOutput)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write the feed to a file instead of stdout")
}
