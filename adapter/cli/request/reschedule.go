package request

import (
	"fmt"

	"github.com/felixgeelhaar/parley/adapter/cli"
	negotiationCommands "github.com/felixgeelhaar/parley/internal/negotiation/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	rescheduleDate  string
	rescheduleStart string
	rescheduleEnd   string
	rescheduleNote  string
)

var rescheduleCmd = &cobra.Command{
	Use:   "reschedule [request-id]",
	Short: "Counter a request with a different slot",
	Long: `Propose a different slot for a pending request. Each request allows
one counter-proposal; the requester then accepts or the meeting is off.

Examples:
  parley request reschedule 4f7a... --date 2025-06-19 --start 14:00 --end 15:00 --note "morning is blocked"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RescheduleRequestHandler == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Request commands require a configured store.")
			return nil
		}

		requestID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid request id: %w", err)
		}

		command := negotiationCommands.RescheduleRequestCommand{
			ResponderID: currentActor(cmd, app),
			RequestID:   requestID,
			Date:        rescheduleDate,
			Start:       rescheduleStart,
			End:         rescheduleEnd,
			Note:        rescheduleNote,
		}

		result, err := app.RescheduleRequestHandler.Handle(cmd.Context(), command)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Rescheduled request: %s\n", requestID)
		if result.Conflict {
			fmt.Fprintln(cmd.OutOrStdout(), "Warning: the counter-proposal overlaps one of your commitments.")
		}
		return nil
	},
}

func init() {
	rescheduleCmd.Flags().StringVar(&rescheduleDate, "date", "", "new date (YYYY-MM-DD)")
	rescheduleCmd.Flags().StringVar(&rescheduleStart, "start", "", "new start time (HH:MM)")
	rescheduleCmd.Flags().StringVar(&rescheduleEnd, "end", "", "new end time (HH:MM)")
	rescheduleCmd.Flags().StringVar(&rescheduleNote, "note", "", "note to the requester")
	_ = rescheduleCmd.MarkFlagRequired("date")
	_ = rescheduleCmd.MarkFlagRequired("start")
	_ = rescheduleCmd.MarkFlagRequired("end")
}
