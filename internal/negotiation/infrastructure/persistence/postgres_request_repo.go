package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/parley/internal/negotiation/domain"
	sharedPersistence "github.com/felixgeelhaar/parley/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRequestRepository implements domain.Repository using PostgreSQL.
type PostgresRequestRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRequestRepository creates a new PostgreSQL request repository.
func NewPostgresRequestRepository(pool *pgxpool.Pool) *PostgresRequestRepository {
	return &PostgresRequestRepository{pool: pool}
}

type requestRow struct {
	ID                uuid.UUID
	RequesterID       uuid.UUID
	ResponderID       uuid.UUID
	SubjectID         *uuid.UUID
	Title             string
	OriginalDate      time.Time
	OriginalStartMins int
	OriginalEndMins   int
	RescheduledDate   *time.Time
	RescheduledStart  *int
	RescheduledEnd    *int
	Status            string
	Note              string
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

const requestColumns = `
	id, requester_id, responder_id, subject_id, title,
	original_date, original_start_minutes, original_end_minutes,
	rescheduled_date, rescheduled_start_minutes, rescheduled_end_minutes,
	status, note, version, created_at, updated_at
`

// Save persists the request. The upsert carries an optimistic precondition:
// an existing row is only updated when its version still matches the
// version the aggregate was loaded at.
func (r *PostgresRequestRepository) Save(ctx context.Context, request *domain.MeetingRequest) error {
	exec := sharedPersistence.Executor(ctx, r.pool)

	query := `
		INSERT INTO meeting_requests (
			id, requester_id, responder_id, subject_id, title,
			original_date, original_start_minutes, original_end_minutes,
			rescheduled_date, rescheduled_start_minutes, rescheduled_end_minutes,
			status, note, version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			rescheduled_date = EXCLUDED.rescheduled_date,
			rescheduled_start_minutes = EXCLUDED.rescheduled_start_minutes,
			rescheduled_end_minutes = EXCLUDED.rescheduled_end_minutes,
			status = EXCLUDED.status,
			note = EXCLUDED.note,
			version = EXCLUDED.version,
			updated_at = NOW()
		WHERE meeting_requests.version = $17
	`

	original := request.Original()
	var rescheduledDate *time.Time
	var rescheduledStart, rescheduledEnd *int
	if w := request.Rescheduled(); w != nil {
		date := w.Date
		start := w.Start.MinutesFromMidnight()
		end := w.End.MinutesFromMidnight()
		rescheduledDate, rescheduledStart, rescheduledEnd = &date, &start, &end
	}

	tag, err := exec.Exec(ctx, query,
		request.ID(),
		request.RequesterID(),
		request.ResponderID(),
		request.SubjectID(),
		request.Title(),
		original.Date,
		original.Start.MinutesFromMidnight(),
		original.End.MinutesFromMidnight(),
		rescheduledDate,
		rescheduledStart,
		rescheduledEnd,
		string(request.Status()),
		request.Note(),
		request.Version()+1,
		request.CreatedAt(),
		request.UpdatedAt(),
		request.Version(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrentModification
	}

	request.IncrementVersion()
	return nil
}

// FindByID retrieves a request by its ID, or nil when absent.
func (r *PostgresRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.MeetingRequest, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)

	query := `SELECT ` + requestColumns + ` FROM meeting_requests WHERE id = $1`

	var row requestRow
	err := exec.QueryRow(ctx, query, id).Scan(
		&row.ID, &row.RequesterID, &row.ResponderID, &row.SubjectID, &row.Title,
		&row.OriginalDate, &row.OriginalStartMins, &row.OriginalEndMins,
		&row.RescheduledDate, &row.RescheduledStart, &row.RescheduledEnd,
		&row.Status, &row.Note, &row.Version, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return rowToRequest(row), nil
}

// FindByResponderID retrieves all requests addressed to a responder.
func (r *PostgresRequestRepository) FindByResponderID(ctx context.Context, responderID uuid.UUID) ([]*domain.MeetingRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM meeting_requests WHERE responder_id = $1 ORDER BY created_at`
	return r.findAll(ctx, query, responderID)
}

// FindByRequesterID retrieves all requests proposed by a requester.
func (r *PostgresRequestRepository) FindByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]*domain.MeetingRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM meeting_requests WHERE requester_id = $1 ORDER BY created_at`
	return r.findAll(ctx, query, requesterID)
}

func (r *PostgresRequestRepository) findAll(ctx context.Context, query string, arg any) ([]*domain.MeetingRequest, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)

	rows, err := exec.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*domain.MeetingRequest
	for rows.Next() {
		var row requestRow
		if err := rows.Scan(
			&row.ID, &row.RequesterID, &row.ResponderID, &row.SubjectID, &row.Title,
			&row.OriginalDate, &row.OriginalStartMins, &row.OriginalEndMins,
			&row.RescheduledDate, &row.RescheduledStart, &row.RescheduledEnd,
			&row.Status, &row.Note, &row.Version, &row.CreatedAt, &row.UpdatedAt,
		); err != nil {
			return nil, err
		}
		requests = append(requests, rowToRequest(row))
	}
	return requests, rows.Err()
}

func rowToRequest(row requestRow) *domain.MeetingRequest {
	original := domain.Window{
		Date:  row.OriginalDate,
		Start: domain.TimeOfDayFromMinutes(row.OriginalStartMins),
		End:   domain.TimeOfDayFromMinutes(row.OriginalEndMins),
	}

	var rescheduled *domain.Window
	if row.RescheduledDate != nil && row.RescheduledStart != nil && row.RescheduledEnd != nil {
		rescheduled = &domain.Window{
			Date:  *row.RescheduledDate,
			Start: domain.TimeOfDayFromMinutes(*row.RescheduledStart),
			End:   domain.TimeOfDayFromMinutes(*row.RescheduledEnd),
		}
	}

	return domain.RehydrateMeetingRequest(
		row.ID,
		row.RequesterID,
		row.ResponderID,
		row.SubjectID,
		row.Title,
		original,
		rescheduled,
		domain.Status(row.Status),
		row.Note,
		row.Version,
		row.CreatedAt,
		row.UpdatedAt,
	)
}
