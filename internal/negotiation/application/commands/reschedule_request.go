package commands

import (
	"context"

	"github.com/felixgeelhaar/parley/internal/negotiation/domain"
	sharedApplication "github.com/felixgeelhaar/parley/internal/shared/application"
	"github.com/felixgeelhaar/parley/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// RescheduleRequestCommand contains the responder's counter-proposal.
type RescheduleRequestCommand struct {
	ResponderID uuid.UUID
	RequestID   uuid.UUID
	Date        string // YYYY-MM-DD
	Start       string // HH:MM
	End         string // HH:MM
	Note        string
}

// RescheduleRequestResult reports the advisory conflict state of the
// counter-proposal against the responder's other commitments.
type RescheduleRequestResult struct {
	Conflict bool
}

// RescheduleRequestHandler handles the RescheduleRequestCommand.
type RescheduleRequestHandler struct {
	repo       domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewRescheduleRequestHandler creates a new RescheduleRequestHandler.
func NewRescheduleRequestHandler(repo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *RescheduleRequestHandler {
	return &RescheduleRequestHandler{repo: repo, outboxRepo: outboxRepo, uow: uow}
}

// Handle executes the RescheduleRequestCommand.
func (h *RescheduleRequestHandler) Handle(ctx context.Context, cmd RescheduleRequestCommand) (*RescheduleRequestResult, error) {
	window, err := parseWindow(cmd.Date, cmd.Start, cmd.End)
	if err != nil {
		return nil, err
	}

	var result *RescheduleRequestResult

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		request, err := h.repo.FindByID(txCtx, cmd.RequestID)
		if err != nil {
			return err
		}
		if request == nil {
			return ErrRequestNotFound
		}
		if request.ResponderID() != cmd.ResponderID {
			return ErrNotResponder
		}

		if err := request.Reschedule(window, cmd.Note); err != nil {
			return err
		}

		existing, err := h.repo.FindByResponderID(txCtx, cmd.ResponderID)
		if err != nil {
			return err
		}
		conflict := domain.HasConflict(window, existing, request.ID())

		if err := h.repo.Save(txCtx, request); err != nil {
			return err
		}

		if err := stageEvents(txCtx, h.outboxRepo, request, cmd.ResponderID); err != nil {
			return err
		}

		result = &RescheduleRequestResult{Conflict: conflict}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
