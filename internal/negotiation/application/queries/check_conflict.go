package queries

import (
	"context"

	"github.com/felixgeelhaar/parley/internal/negotiation/domain"
	"github.com/google/uuid"
)

// CheckConflictQuery tests a candidate window against a responder's
// non-rejected commitments. ExcludeID skips the request being evaluated,
// typically when probing a reschedule of an existing request.
type CheckConflictQuery struct {
	ResponderID uuid.UUID
	Window      domain.Window
	ExcludeID   uuid.UUID
}

// CheckConflictHandler handles the CheckConflictQuery.
type CheckConflictHandler struct {
	repo domain.Repository
}

// NewCheckConflictHandler creates a new CheckConflictHandler.
func NewCheckConflictHandler(repo domain.Repository) *CheckConflictHandler {
	return &CheckConflictHandler{repo: repo}
}

// Handle executes the CheckConflictQuery. The answer is advisory and
// snapshot-based: it reflects the stored requests at read time and takes no
// locks.
func (h *CheckConflictHandler) Handle(ctx context.Context, query CheckConflictQuery) (bool, error) {
	requests, err := h.repo.FindByResponderID(ctx, query.ResponderID)
	if err != nil {
		return false, err
	}

	return domain.HasConflict(query.Window, requests, query.ExcludeID), nil
}
