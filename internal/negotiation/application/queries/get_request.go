package queries

import (
	"context"
	"errors"

	directoryDomain "github.com/felixgeelhaar/parley/internal/directory/domain"
	"github.com/felixgeelhaar/parley/internal/negotiation/domain"
	"github.com/google/uuid"
)

var ErrRequestNotFound = errors.New("meeting request not found")

// RequestView is a display-ready projection of a meeting request. Names are
// resolved through the directory; unresolvable refs degrade to the raw id
// rather than failing the query.
type RequestView struct {
	ID              uuid.UUID
	Title           string
	Status          domain.Status
	RequesterName   string
	ResponderName   string
	SubjectName     string
	Date            string
	Window          string
	DurationMinutes int
	Note            string
}

// GetRequestQuery fetches a single request by id.
type GetRequestQuery struct {
	RequestID uuid.UUID
}

// GetRequestHandler handles the GetRequestQuery.
type GetRequestHandler struct {
	repo      domain.Repository
	directory directoryDomain.Directory
}

// NewGetRequestHandler creates a new GetRequestHandler.
func NewGetRequestHandler(repo domain.Repository, directory directoryDomain.Directory) *GetRequestHandler {
	return &GetRequestHandler{repo: repo, directory: directory}
}

// Handle executes the GetRequestQuery.
func (h *GetRequestHandler) Handle(ctx context.Context, query GetRequestQuery) (*RequestView, error) {
	request, err := h.repo.FindByID(ctx, query.RequestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}

	view := newRequestView(ctx, request, h.directory)
	return &view, nil
}

func newRequestView(ctx context.Context, request *domain.MeetingRequest, directory directoryDomain.Directory) RequestView {
	window := request.EffectiveWindow()

	view := RequestView{
		ID:              request.ID(),
		Title:           request.Title(),
		Status:          request.Status(),
		RequesterName:   resolvePartyName(ctx, directory, request.RequesterID()),
		ResponderName:   resolvePartyName(ctx, directory, request.ResponderID()),
		Date:            window.Date.Format("2006-01-02"),
		Window:          window.Format(),
		DurationMinutes: window.DurationMinutes(),
		Note:            request.Note(),
	}

	if subjectID := request.SubjectID(); subjectID != nil {
		name, err := directory.SubjectName(ctx, *subjectID)
		if err != nil {
			name = subjectID.String()
		}
		view.SubjectName = name
	}

	return view
}

func resolvePartyName(ctx context.Context, directory directoryDomain.Directory, id uuid.UUID) string {
	name, err := directory.PartyName(ctx, id)
	if err != nil {
		return id.String()
	}
	return name
}
