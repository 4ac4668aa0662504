package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/parley/internal/negotiation/domain"
	"github.com/google/uuid"
)

// SummarizeRequestsQuery aggregates a responder's requests by status and by
// proximity to the supplied reference date.
type SummarizeRequestsQuery struct {
	ResponderID uuid.UUID
	Today       time.Time
}

// SummarizeRequestsHandler handles the SummarizeRequestsQuery.
type SummarizeRequestsHandler struct {
	repo domain.Repository
}

// NewSummarizeRequestsHandler creates a new SummarizeRequestsHandler.
func NewSummarizeRequestsHandler(repo domain.Repository) *SummarizeRequestsHandler {
	return &SummarizeRequestsHandler{repo: repo}
}

// Handle executes the SummarizeRequestsQuery.
func (h *SummarizeRequestsHandler) Handle(ctx context.Context, query SummarizeRequestsQuery) (domain.Summary, error) {
	requests, err := h.repo.FindByResponderID(ctx, query.ResponderID)
	if err != nil {
		return domain.Summary{}, err
	}

	return domain.Summarize(requests, query.Today), nil
}
