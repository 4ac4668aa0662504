package commands

import (
	"context"

	"github.com/felixgeelhaar/parley/internal/negotiation/domain"
	sharedApplication "github.com/felixgeelhaar/parley/internal/shared/application"
	"github.com/felixgeelhaar/parley/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// RejectRequestCommand contains the data needed to reject a request.
// Reason may be empty.
type RejectRequestCommand struct {
	ResponderID uuid.UUID
	RequestID   uuid.UUID
	Reason      string
}

// RejectRequestHandler handles the RejectRequestCommand.
type RejectRequestHandler struct {
	repo       domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewRejectRequestHandler creates a new RejectRequestHandler.
func NewRejectRequestHandler(repo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *RejectRequestHandler {
	return &RejectRequestHandler{repo: repo, outboxRepo: outboxRepo, uow: uow}
}

// Handle executes the RejectRequestCommand.
func (h *RejectRequestHandler) Handle(ctx context.Context, cmd RejectRequestCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
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

		if err := request.Reject(cmd.Reason); err != nil {
			return err
		}

		if err := h.repo.Save(txCtx, request); err != nil {
			return err
		}

		return stageEvents(txCtx, h.outboxRepo, request, cmd.ResponderID)
	})
}
