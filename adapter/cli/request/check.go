package request

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/parley/adapter/cli"
	negotiationQueries "github.com/felixgeelhaar/parley/internal/negotiation/application/queries"
	"github.com/felixgeelhaar/parley/internal/negotiation/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	checkDate    string
	checkStart   string
	checkEnd     string
	checkExclude string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a candidate slot for conflicts",
	Long: `Check whether a candidate window overlaps any of your non-rejected
commitments. The answer is advisory.

Examples:
  parley request check --date 2025-06-17 --start 09:30 --end 10:30
  parley request check --date 2025-06-17 --start 09:30 --end 10:30 --exclude 4f7a...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CheckConflictHandler == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Request commands require a configured store.")
			return nil
		}

		day, err := time.Parse("2006-01-02", checkDate)
		if err != nil {
			return fmt.Errorf("invalid date, use YYYY-MM-DD: %w", err)
		}
		start, err := domain.ParseTimeOfDay(checkStart)
		if err != nil {
			return err
		}
		end, err := domain.ParseTimeOfDay(checkEnd)
		if err != nil {
			return err
		}

		var excludeID uuid.UUID
		if checkExclude != "" {
			excludeID, err = uuid.Parse(checkExclude)
			if err != nil {
				return fmt.Errorf("invalid exclude id: %w", err)
			}
		}

		conflict, err := app.CheckConflictHandler.Handle(cmd.Context(), negotiationQueries.CheckConflictQuery{
			ResponderID: currentActor(cmd, app),
			Window:      domain.Window{Date: day, Start: start, End: end},
			ExcludeID:   excludeID,
		})
		if err != nil {
			return err
		}

		if conflict {
			fmt.Fprintln(cmd.OutOrStdout(), "Conflict: the window overlaps an existing commitment.")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No conflict.")
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkDate, "date", "", "candidate date (YYYY-MM-DD)")
	checkCmd.Flags().StringVar(&checkStart, "start", "", "start time (HH:MM)")
	checkCmd.Flags().StringVar(&checkEnd, "end", "", "end time (HH:MM)")
	checkCmd.Flags().StringVar(&checkExclude, "exclude", "", "request id to ignore")
	_ = checkCmd.MarkFlagRequired("date")
	_ = checkCmd.MarkFlagRequired("start")
	_ = checkCmd.MarkFlagRequired("end")
}
