package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/parley/internal/negotiation/domain"
	sharedApplication "github.com/felixgeelhaar/parley/internal/shared/application"
	"github.com/felixgeelhaar/parley/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// CreateRequestCommand contains the data needed to propose a meeting.
type CreateRequestCommand struct {
	RequesterID uuid.UUID
	ResponderID uuid.UUID
	SubjectID   *uuid.UUID
	Title       string
	Date        string // YYYY-MM-DD
	Start       string // HH:MM
	End         string // HH:MM
}

// CreateRequestResult contains the result of proposing a meeting.
// Conflict is advisory: the request is created either way and the caller
// decides whether to surface a warning.
type CreateRequestResult struct {
	RequestID uuid.UUID
	Conflict  bool
}

// CreateRequestHandler handles the CreateRequestCommand.
type CreateRequestHandler struct {
	repo       domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCreateRequestHandler creates a new CreateRequestHandler.
func NewCreateRequestHandler(repo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateRequestHandler {
	return &CreateRequestHandler{
		repo:       repo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the CreateRequestCommand.
func (h *CreateRequestHandler) Handle(ctx context.Context, cmd CreateRequestCommand) (*CreateRequestResult, error) {
	window, err := parseWindow(cmd.Date, cmd.Start, cmd.End)
	if err != nil {
		return nil, err
	}

	var result *CreateRequestResult

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		request, err := domain.NewMeetingRequest(cmd.RequesterID, cmd.ResponderID, cmd.SubjectID, cmd.Title, window)
		if err != nil {
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

		if err := stageEvents(txCtx, h.outboxRepo, request, cmd.RequesterID); err != nil {
			return err
		}

		result = &CreateRequestResult{RequestID: request.ID(), Conflict: conflict}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// stageEvents writes the aggregate's uncommitted events to the outbox within
// the current transaction.
func stageEvents(ctx context.Context, outboxRepo outbox.Repository, request *domain.MeetingRequest, actorID uuid.UUID) error {
	events := request.DomainEvents()
	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(ctx, actorID))

	msgs := make([]*outbox.Message, 0, len(events))
	for _, event := range events {
		msg, err := outbox.NewMessage(event)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	if err := outboxRepo.SaveBatch(ctx, msgs); err != nil {
		return err
	}
	request.ClearDomainEvents()
	return nil
}

func parseWindow(date, start, end string) (domain.Window, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return domain.Window{}, fmt.Errorf("invalid date, use YYYY-MM-DD: %w", err)
	}

	startTod, err := domain.ParseTimeOfDay(start)
	if err != nil {
		return domain.Window{}, err
	}

	endTod, err := domain.ParseTimeOfDay(end)
	if err != nil {
		return domain.Window{}, err
	}

	return domain.Window{Date: day, Start: startTod, End: endTod}, nil
}
