package commands

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/parley/internal/negotiation/domain"
	sharedApplication "github.com/felixgeelhaar/parley/internal/shared/application"
	"github.com/felixgeelhaar/parley/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

var (
	ErrRequestNotFound = errors.New("meeting request not found")
	ErrNotResponder    = errors.New("actor is not the responder for this request")
)

// AcceptRequestCommand contains the data needed to accept a request.
type AcceptRequestCommand struct {
	ResponderID uuid.UUID
	RequestID   uuid.UUID
}

// AcceptRequestHandler handles the AcceptRequestCommand.
type AcceptRequestHandler struct {
	repo       domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewAcceptRequestHandler creates a new AcceptRequestHandler.
func NewAcceptRequestHandler(repo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *AcceptRequestHandler {
	return &AcceptRequestHandler{repo: repo, outboxRepo: outboxRepo, uow: uow}
}

// Handle executes the AcceptRequestCommand.
func (h *AcceptRequestHandler) Handle(ctx context.Context, cmd AcceptRequestCommand) error {
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

		if err := request.Accept(); err != nil {
			return err
		}

		if err := h.repo.Save(txCtx, request); err != nil {
			return err
		}

		return stageEvents(txCtx, h.outboxRepo, request, cmd.ResponderID)
	})
}
