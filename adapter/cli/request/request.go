package request

import (
	"github.com/felixgeelhaar/parley/adapter/cli"
	"github.com/felixgeelhaar/parley/internal/identity"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Cmd is the request command group.
var Cmd = &cobra.Command{
	Use:   "request",
	Short: "Negotiate meeting requests",
	Long:  `Propose, accept, reject, reschedule, and inspect meeting requests.`,
}

// currentActor resolves the acting party, preferring the identity the root
// command attached to the context.
func currentActor(cmd *cobra.Command, app *cli.App) uuid.UUID {
	if actor, err := identity.ActorFromContext(cmd.Context()); err == nil {
		return actor.ID
	}
	return app.CurrentActorID
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(acceptCmd)
	Cmd.AddCommand(rejectCmd)
	Cmd.AddCommand(rescheduleCmd)
	Cmd.AddCommand(checkCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(exportCmd)
}
