package request

import (
	"fmt"

	"github.com/felixgeelhaar/parley/adapter/cli"
	negotiationCommands "github.com/felixgeelhaar/parley/internal/negotiation/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var acceptCmd = &cobra.Command{
	Use:   "accept [request-id]",
	Short: "Accept a meeting request",
	Long: `Accept a pending or rescheduled request, making its slot final.

Examples:
  parley request accept 4f7a...`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AcceptRequestHandler == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Request commands require a configured store.")
			return nil
		}

		requestID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid request id: %w", err)
		}

		command := negotiationCommands.AcceptRequestCommand{
			ResponderID: currentActor(cmd, app),
			RequestID:   requestID,
		}

		if err := app.AcceptRequestHandler.Handle(cmd.Context(), command); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Accepted request: %s\n", requestID)
		return nil
	},
}
