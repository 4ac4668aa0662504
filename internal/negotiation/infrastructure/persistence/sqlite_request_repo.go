package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/felixgeelhaar/parley/internal/negotiation/domain"
	sharedPersistence "github.com/felixgeelhaar/parley/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
)

const sqliteRequestSchema = `
CREATE TABLE IF NOT EXISTS meeting_requests (
	id TEXT PRIMARY KEY,
	requester_id TEXT NOT NULL,
	responder_id TEXT NOT NULL,
	subject_id TEXT,
	title TEXT NOT NULL,
	original_date TEXT NOT NULL,
	original_start_minutes INTEGER NOT NULL,
	original_end_minutes INTEGER NOT NULL,
	rescheduled_date TEXT,
	rescheduled_start_minutes INTEGER,
	rescheduled_end_minutes INTEGER,
	status TEXT NOT NULL,
	note TEXT NOT NULL DEFAULT '',
	version INTEGER NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_meeting_requests_responder ON meeting_requests(responder_id);
CREATE INDEX IF NOT EXISTS idx_meeting_requests_requester ON meeting_requests(requester_id);
`

// SQLiteRequestRepository implements domain.Repository using SQLite for
// local mode.
type SQLiteRequestRepository struct {
	db *sql.DB
}

// NewSQLiteRequestRepository creates a new SQLite request repository,
// initializing the schema if needed.
func NewSQLiteRequestRepository(db *sql.DB) (*SQLiteRequestRepository, error) {
	if _, err := db.Exec(sqliteRequestSchema); err != nil {
		return nil, err
	}
	return &SQLiteRequestRepository{db: db}, nil
}

type sqliteQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *SQLiteRequestRepository) querier(ctx context.Context) sqliteQuerier {
	if info, ok := sharedPersistence.SQLiteTxInfoFromContext(ctx); ok {
		return info.Tx
	}
	return r.db
}

// Save persists the request with the same optimistic precondition as the
// PostgreSQL store.
func (r *SQLiteRequestRepository) Save(ctx context.Context, request *domain.MeetingRequest) error {
	query := `
		INSERT INTO meeting_requests (
			id, requester_id, responder_id, subject_id, title,
			original_date, original_start_minutes, original_end_minutes,
			rescheduled_date, rescheduled_start_minutes, rescheduled_end_minutes,
			status, note, version, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			rescheduled_date = excluded.rescheduled_date,
			rescheduled_start_minutes = excluded.rescheduled_start_minutes,
			rescheduled_end_minutes = excluded.rescheduled_end_minutes,
			status = excluded.status,
			note = excluded.note,
			version = excluded.version,
			updated_at = excluded.updated_at
		WHERE meeting_requests.version = ?
	`

	original := request.Original()

	var subjectID sql.NullString
	if s := request.SubjectID(); s != nil {
		subjectID = sql.NullString{String: s.String(), Valid: true}
	}

	var rescheduledDate sql.NullString
	var rescheduledStart, rescheduledEnd sql.NullInt64
	if w := request.Rescheduled(); w != nil {
		rescheduledDate = sql.NullString{String: w.Date.Format("2006-01-02"), Valid: true}
		rescheduledStart = sql.NullInt64{Int64: int64(w.Start.MinutesFromMidnight()), Valid: true}
		rescheduledEnd = sql.NullInt64{Int64: int64(w.End.MinutesFromMidnight()), Valid: true}
	}

	result, err := r.querier(ctx).ExecContext(ctx, query,
		request.ID().String(),
		request.RequesterID().String(),
		request.ResponderID().String(),
		subjectID,
		request.Title(),
		original.Date.Format("2006-01-02"),
		original.Start.MinutesFromMidnight(),
		original.End.MinutesFromMidnight(),
		rescheduledDate,
		rescheduledStart,
		rescheduledEnd,
		string(request.Status()),
		request.Note(),
		request.Version()+1,
		request.CreatedAt().Format(time.RFC3339),
		request.UpdatedAt().Format(time.RFC3339),
		request.Version(),
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrConcurrentModification
	}

	request.IncrementVersion()
	return nil
}

// FindByID retrieves a request by its ID, or nil when absent.
func (r *SQLiteRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.MeetingRequest, error) {
	query := `SELECT ` + sqliteRequestColumns + ` FROM meeting_requests WHERE id = ?`

	row := r.querier(ctx).QueryRowContext(ctx, query, id.String())
	request, err := scanRequest(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return request, nil
}

// FindByResponderID retrieves all requests addressed to a responder.
func (r *SQLiteRequestRepository) FindByResponderID(ctx context.Context, responderID uuid.UUID) ([]*domain.MeetingRequest, error) {
	query := `SELECT ` + sqliteRequestColumns + ` FROM meeting_requests WHERE responder_id = ? ORDER BY created_at`
	return r.findAll(ctx, query, responderID.String())
}

// FindByRequesterID retrieves all requests proposed by a requester.
func (r *SQLiteRequestRepository) FindByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]*domain.MeetingRequest, error) {
	query := `SELECT ` + sqliteRequestColumns + ` FROM meeting_requests WHERE requester_id = ? ORDER BY created_at`
	return r.findAll(ctx, query, requesterID.String())
}

const sqliteRequestColumns = `
	id, requester_id, responder_id, subject_id, title,
	original_date, original_start_minutes, original_end_minutes,
	rescheduled_date, rescheduled_start_minutes, rescheduled_end_minutes,
	status, note, version, created_at, updated_at
`

func (r *SQLiteRequestRepository) findAll(ctx context.Context, query string, arg any) ([]*domain.MeetingRequest, error) {
	rows, err := r.querier(ctx).QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*domain.MeetingRequest
	for rows.Next() {
		request, err := scanRequest(rows.Scan)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

func scanRequest(scan func(dest ...any) error) (*domain.MeetingRequest, error) {
	var idStr, requesterStr, responderStr string
	var subjectID sql.NullString
	var title, originalDate string
	var originalStart, originalEnd int
	var rescheduledDate sql.NullString
	var rescheduledStart, rescheduledEnd sql.NullInt64
	var status, note, createdAtStr, updatedAtStr string
	var version int

	err := scan(
		&idStr, &requesterStr, &responderStr, &subjectID, &title,
		&originalDate, &originalStart, &originalEnd,
		&rescheduledDate, &rescheduledStart, &rescheduledEnd,
		&status, &note, &version, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	requesterID, err := uuid.Parse(requesterStr)
	if err != nil {
		return nil, err
	}
	responderID, err := uuid.Parse(responderStr)
	if err != nil {
		return nil, err
	}

	var subject *uuid.UUID
	if subjectID.Valid {
		parsed, err := uuid.Parse(subjectID.String)
		if err != nil {
			return nil, err
		}
		subject = &parsed
	}

	origDate, err := time.Parse("2006-01-02", originalDate)
	if err != nil {
		return nil, err
	}
	original := domain.Window{
		Date:  origDate,
		Start: domain.TimeOfDayFromMinutes(originalStart),
		End:   domain.TimeOfDayFromMinutes(originalEnd),
	}

	var rescheduled *domain.Window
	if rescheduledDate.Valid && rescheduledStart.Valid && rescheduledEnd.Valid {
		date, err := time.Parse("2006-01-02", rescheduledDate.String)
		if err != nil {
			return nil, err
		}
		rescheduled = &domain.Window{
			Date:  date,
			Start: domain.TimeOfDayFromMinutes(int(rescheduledStart.Int64)),
			End:   domain.TimeOfDayFromMinutes(int(rescheduledEnd.Int64)),
		}
	}

	createdAt, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, err
	}
	updatedAt, err := time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateMeetingRequest(
		id, requesterID, responderID, subject, title,
		original, rescheduled,
		domain.Status(status), note, version,
		createdAt, updatedAt,
	), nil
}
