package request

import (
	"fmt"

	"github.com/felixgeelhaar/parley/adapter/cli"
	negotiationCommands "github.com/felixgeelhaar/parley/internal/negotiation/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var rejectReason string

var rejectCmd = &cobra.Command{
	Use:   "reject [request-id]",
	Short: "Reject a meeting request",
	Long: `Decline a pending or rescheduled request.

Examples:
  parley request reject 4f7a... --reason "conflicting hearing"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RejectRequestHandler == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Request commands require a configured store.")
			return nil
		}

		requestID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid request id: %w", err)
		}

		command := negotiationCommands.RejectRequestCommand{
			ResponderID: currentActor(cmd, app),
			RequestID:   requestID,
			Reason:      rejectReason,
		}

		if err := app.RejectRequestHandler.Handle(cmd.Context(), command); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Rejected request: %s\n", requestID)
		return nil
	},
}

func init() {
	rejectCmd.Flags().StringVar(&rejectReason, "reason", "", "why the request is declined")
}
