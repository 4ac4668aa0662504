package commands

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/parley/internal/negotiation/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingRequest(t *testing.T, responderID uuid.UUID) *domain.MeetingRequest {
	t.Helper()

	start, err := domain.NewTimeOfDay(9, 0)
	require.NoError(t, err)
	end, err := domain.NewTimeOfDay(10, 0)
	require.NoError(t, err)

	request, err := domain.NewMeetingRequest(uuid.New(), responderID, nil, "Case review", domain.Window{
		Date:  time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC),
		Start: start,
		End:   end,
	})
	require.NoError(t, err)
	request.ClearDomainEvents()
	return request
}

func TestAcceptRequestHandler_Handle(t *testing.T) {
	responderID := uuid.New()

	t.Run("accepts a pending request", func(t *testing.T) {
		repo := new(mockRequestRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewAcceptRequestHandler(repo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := testTxContext(ctx)
		request := pendingRequest(t, responderID)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		repo.On("FindByID", txCtx, request.ID()).Return(request, nil)
		repo.On("Save", txCtx, request).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.Anything).Return(nil)

		err := handler.Handle(ctx, AcceptRequestCommand{
			ResponderID: responderID,
			RequestID:   request.ID(),
		})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusAccepted, request.Status())
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("fails when request does not exist", func(t *testing.T) {
		repo := new(mockRequestRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewAcceptRequestHandler(repo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := testTxContext(ctx)
		requestID := uuid.New()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("FindByID", txCtx, requestID).Return(nil, nil)

		err := handler.Handle(ctx, AcceptRequestCommand{
			ResponderID: responderID,
			RequestID:   requestID,
		})

		assert.ErrorIs(t, err, ErrRequestNotFound)
	})

	t.Run("fails when actor is not the responder", func(t *testing.T) {
		repo := new(mockRequestRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewAcceptRequestHandler(repo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := testTxContext(ctx)
		request := pendingRequest(t, responderID)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("FindByID", txCtx, request.ID()).Return(request, nil)

		err := handler.Handle(ctx, AcceptRequestCommand{
			ResponderID: uuid.New(),
			RequestID:   request.ID(),
		})

		assert.ErrorIs(t, err, ErrNotResponder)
		assert.Equal(t, domain.StatusPending, request.Status())
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("fails on terminal state without saving", func(t *testing.T) {
		repo := new(mockRequestRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewAcceptRequestHandler(repo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := testTxContext(ctx)
		request := pendingRequest(t, responderID)
		require.NoError(t, request.Reject("declined"))
		request.ClearDomainEvents()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("FindByID", txCtx, request.ID()).Return(request, nil)

		err := handler.Handle(ctx, AcceptRequestCommand{
			ResponderID: responderID,
			RequestID:   request.ID(),
		})

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Equal(t, domain.StatusRejected, request.Status())
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("accepts from rescheduled", func(t *testing.T) {
		repo := new(mockRequestRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewAcceptRequestHandler(repo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := testTxContext(ctx)
		request := pendingRequest(t, responderID)

		start, err := domain.NewTimeOfDay(14, 0)
		require.NoError(t, err)
		end, err := domain.NewTimeOfDay(15, 0)
		require.NoError(t, err)
		require.NoError(t, request.Reschedule(domain.Window{
			Date:  time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC),
			Start: start,
			End:   end,
		}, ""))
		request.ClearDomainEvents()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		repo.On("FindByID", txCtx, request.ID()).Return(request, nil)
		repo.On("Save", txCtx, request).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.Anything).Return(nil)

		require.NoError(t, handler.Handle(ctx, AcceptRequestCommand{
			ResponderID: responderID,
			RequestID:   request.ID(),
		}))
		assert.Equal(t, domain.StatusAccepted, request.Status())
	})
}
