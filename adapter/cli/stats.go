package cli

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/parley/internal/identity"
	negotiationQueries "github.com/felixgeelhaar/parley/internal/negotiation/application/queries"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize your meeting requests",
	Long: `Show counts by status and how many effective meetings fall within
the next seven days.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.SummarizeRequestsHandler == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Stats require a configured store.")
			return nil
		}

		responderID := app.CurrentActorID
		if actor, err := identity.ActorFromContext(cmd.Context()); err == nil {
			responderID = actor.ID
		}

		summary, err := app.SummarizeRequestsHandler.Handle(cmd.Context(), negotiationQueries.SummarizeRequestsQuery{
			ResponderID: responderID,
			Today:       time.Now(),
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Requests: %d\n", summary.Total)
		fmt.Fprintf(cmd.OutOrStdout(), "  Pending:     %d\n", summary.Pending)
		fmt.Fprintf(cmd.OutOrStdout(), "  Accepted:    %d\n", summary.Accepted)
		fmt.Fprintf(cmd.OutOrStdout(), "  Rejected:    %d\n", summary.Rejected)
		fmt.Fprintf(cmd.OutOrStdout(), "  Rescheduled: %d\n", summary.Rescheduled)
		fmt.Fprintf(cmd.OutOrStdout(), "Within next week: %d\n", summary.WithinNextWeek)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
