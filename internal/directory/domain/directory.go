// Package domain defines the case/client directory contract. The
// negotiation core treats party and subject references as opaque ids; the
// directory supplies cached display strings for presentation only.
package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNameNotFound is returned when the directory has no entry for an id.
// Callers fall back to rendering the raw id.
var ErrNameNotFound = errors.New("no directory entry for id")

// Directory resolves opaque references to human-readable display names.
type Directory interface {
	// PartyName resolves a requester or responder reference.
	PartyName(ctx context.Context, id uuid.UUID) (string, error)

	// SubjectName resolves a case or matter reference.
	SubjectName(ctx context.Context, id uuid.UUID) (string, error)
}
