package request

import (
	"fmt"

	"github.com/felixgeelhaar/parley/adapter/cli"
	negotiationQueries "github.com/felixgeelhaar/parley/internal/negotiation/application/queries"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [request-id]",
	Short: "Show a meeting request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetRequestHandler == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Request commands require a configured store.")
			return nil
		}

		requestID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid request id: %w", err)
		}

		view, err := app.GetRequestHandler.Handle(cmd.Context(), negotiationQueries.GetRequestQuery{
			RequestID: requestID,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", view.Title)
		fmt.Fprintf(cmd.OutOrStdout(), "  ID: %s\n", view.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "  From: %s\n", view.RequesterName)
		fmt.Fprintf(cmd.OutOrStdout(), "  To: %s\n", view.ResponderName)
		if view.SubjectName != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  Subject: %s\n", view.SubjectName)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  When: %s %s (%d mins)\n", view.Date, view.Window, view.DurationMinutes)
		fmt.Fprintf(cmd.OutOrStdout(), "  Status: %s\n", view.Status)
		if view.Note != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  Note: %s\n", view.Note)
		}

		return nil
	},
}
