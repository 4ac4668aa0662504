package cli

import (
	negotiationCommands "github.com/felixgeelhaar/parley/internal/negotiation/application/commands"
	negotiationQueries "github.com/felixgeelhaar/parley/internal/negotiation/application/queries"
	"github.com/felixgeelhaar/parley/internal/negotiation/infrastructure/export"
	"github.com/google/uuid"
)

// App holds the CLI application dependencies.
type App struct {
	// Command Handlers
	CreateRequestHandler     *negotiationCommands.CreateRequestHandler
	AcceptRequestHandler     *negotiationCommands.AcceptRequestHandler
	RejectRequestHandler     *negotiationCommands.RejectRequestHandler
	RescheduleRequestHandler *negotiationCommands.RescheduleRequestHandler

	// Query Handlers
	GetRequestHandler        *negotiationQueries.GetRequestHandler
	ListRequestsHandler      *negotiationQueries.ListRequestsHandler
	SummarizeRequestsHandler *negotiationQueries.SummarizeRequestsHandler
	CheckConflictHandler     *negotiationQueries.CheckConflictHandler

	// Export
	ICalExporter *export.ICalExporter

	// Current actor (configured per environment)
	CurrentActorID uuid.UUID
}

// NewApp creates a new CLI application with the provided handlers.
func NewApp(
	createRequestHandler *negotiationCommands.CreateRequestHandler,
	acceptRequestHandler *negotiationCommands.AcceptRequestHandler,
	rejectRequestHandler *negotiationCommands.RejectRequestHandler,
	rescheduleRequestHandler *negotiationCommands.RescheduleRequestHandler,
	getRequestHandler *negotiationQueries.GetRequestHandler,
	listRequestsHandler *negotiationQueries.ListRequestsHandler,
	summarizeRequestsHandler *negotiationQueries.SummarizeRequestsHandler,
	checkConflictHandler *negotiationQueries.CheckConflictHandler,
	icalExporter *export.ICalExporter,
) *App {
	return &App{
		CreateRequestHandler:     createRequestHandler,
		AcceptRequestHandler:     acceptRequestHandler,
		RejectRequestHandler:     rejectRequestHandler,
		RescheduleRequestHandler: rescheduleRequestHandler,
		GetRequestHandler:        getRequestHandler,
		ListRequestsHandler:      listRequestsHandler,
		SummarizeRequestsHandler: summarizeRequestsHandler,
		CheckConflictHandler:     checkConflictHandler,
		ICalExporter:             icalExporter,
		CurrentActorID:           uuid.Nil,
	}
}

// SetCurrentActorID updates the current actor ID.
func (a *App) SetCurrentActorID(id uuid.UUID) {
	a.CurrentActorID = id
}

var appInstance *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	appInstance = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return appInstance
}
