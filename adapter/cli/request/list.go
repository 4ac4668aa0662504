package request

import (
	"fmt"

	"github.com/felixgeelhaar/parley/adapter/cli"
	negotiationQueries "github.com/felixgeelhaar/parley/internal/negotiation/application/queries"
	"github.com/felixgeelhaar/parley/internal/negotiation/domain"
	"github.com/spf13/cobra"
)

var listStatus string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List incoming meeting requests",
	Long: `List meeting requests addressed to you.

Examples:
  parley request list
  parley request list --status pending`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListRequestsHandler == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Request listing requires a configured store.")
			return nil
		}

		status := domain.Status(listStatus)
		if listStatus != "" && !status.IsValid() {
			return fmt.Errorf("unknown status %q", listStatus)
		}

		query := negotiationQueries.ListRequestsQuery{
			ResponderID: currentActor(cmd, app),
			Status:      status,
		}

		views, err := app.ListRequestsHandler.Handle(cmd.Context(), query)
		if err != nil {
			return err
		}

		if len(views) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No requests found.")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Requests (%d):\n", len(views))
		for _, view := range views {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", view.Title)
			fmt.Fprintf(cmd.OutOrStdout(), "    ID: %s\n", view.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "    From: %s\n", view.RequesterName)
			if view.SubjectName != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "    Subject: %s\n", view.SubjectName)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "    When: %s %s\n", view.Date, view.Window)
			fmt.Fprintf(cmd.OutOrStdout(), "    Status: %s\n", view.Status)
			if view.Note != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "    Note: %s\n", view.Note)
			}
		}

		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "filter by status (pending, accepted, rejected, rescheduled)")
}
