package request

import (
	"fmt"

	"github.com/felixgeelhaar/parley/adapter/cli"
	negotiationCommands "github.com/felixgeelhaar/parley/internal/negotiation/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	createResponder string
	createSubject   string
	createDate      string
	createStart     string
	createEnd       string
)

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Propose a meeting to another party",
	Long: `Propose a meeting. The responder can accept, reject, or counter
with one reschedule.

Examples:
  parley request create "Deposition prep" --to b3c1... --date 2025-06-17 --start 09:00 --end 10:00
  parley request create "Settlement call" --to b3c1... --subject 9f2e... --date 2025-06-18 --start 14:00 --end 15:30`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateRequestHandler == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Request commands require a configured store.")
			return nil
		}

		responderID, err := uuid.Parse(createResponder)
		if err != nil {
			return fmt.Errorf("invalid responder id: %w", err)
		}

		var subjectID *uuid.UUID
		if createSubject != "" {
			parsed, err := uuid.Parse(createSubject)
			if err != nil {
				return fmt.Errorf("invalid subject id: %w", err)
			}
			subjectID = &parsed
		}

		command := negotiationCommands.CreateRequestCommand{
			RequesterID: currentActor(cmd, app),
			ResponderID: responderID,
			SubjectID:   subjectID,
			Title:       args[0],
			Date:        createDate,
			Start:       createStart,
			End:         createEnd,
		}

		result, err := app.CreateRequestHandler.Handle(cmd.Context(), command)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created request: %s\n", result.RequestID)
		if result.Conflict {
			fmt.Fprintln(cmd.OutOrStdout(), "Warning: the proposed slot overlaps one of the responder's commitments.")
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createResponder, "to", "", "responder id (required)")
	createCmd.Flags().StringVar(&createSubject, "subject", "", "case/matter id")
	createCmd.Flags().StringVar(&createDate, "date", "", "meeting date (YYYY-MM-DD)")
	createCmd.Flags().StringVar(&createStart, "start", "09:00", "start time (HH:MM)")
	createCmd.Flags().StringVar(&createEnd, "end", "10:00", "end time (HH:MM)")
	_ = createCmd.MarkFlagRequired("to")
	_ = createCmd.MarkFlagRequired("date")
}
