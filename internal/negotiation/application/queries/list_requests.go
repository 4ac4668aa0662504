package queries

import (
	"context"

	directoryDomain "github.com/felixgeelhaar/parley/internal/directory/domain"
	"github.com/felixgeelhaar/parley/internal/negotiation/domain"
	"github.com/google/uuid"
)

// ListRequestsQuery lists a responder's requests, optionally filtered by
// status.
type ListRequestsQuery struct {
	ResponderID uuid.UUID
	Status      domain.Status // empty means all
}

// ListRequestsHandler handles the ListRequestsQuery.
type ListRequestsHandler struct {
	repo      domain.Repository
	directory directoryDomain.Directory
}

// NewListRequestsHandler creates a new ListRequestsHandler.
func NewListRequestsHandler(repo domain.Repository, directory directoryDomain.Directory) *ListRequestsHandler {
	return &ListRequestsHandler{repo: repo, directory: directory}
}

// Handle executes the ListRequestsQuery.
func (h *ListRequestsHandler) Handle(ctx context.Context, query ListRequestsQuery) ([]RequestView, error) {
	requests, err := h.repo.FindByResponderID(ctx, query.ResponderID)
	if err != nil {
		return nil, err
	}

	views := make([]RequestView, 0, len(requests))
	for _, request := range requests {
		if query.Status != "" && request.Status() != query.Status {
			continue
		}
		views = append(views, newRequestView(ctx, request, h.directory))
	}

	return views, nil
}
