package infrastructure

import (
	"context"
	"sync"

	"github.com/felixgeelhaar/parley/internal/directory/domain"
	"github.com/google/uuid"
)

// StaticDirectory serves names from an in-memory table. Used in local mode
// and when no directory service is configured.
type StaticDirectory struct {
	mu       sync.RWMutex
	parties  map[uuid.UUID]string
	subjects map[uuid.UUID]string
}

// NewStaticDirectory creates an empty static directory.
func NewStaticDirectory() *StaticDirectory {
	return &StaticDirectory{
		parties:  make(map[uuid.UUID]string),
		subjects: make(map[uuid.UUID]string),
	}
}

// AddParty registers a party display name.
func (d *StaticDirectory) AddParty(id uuid.UUID, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.parties[id] = name
}

// AddSubject registers a subject display name.
func (d *StaticDirectory) AddSubject(id uuid.UUID, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subjects[id] = name
}

// PartyName resolves a requester or responder reference.
func (d *StaticDirectory) PartyName(_ context.Context, id uuid.UUID) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	name, ok := d.parties[id]
	if !ok {
		return "", domain.ErrNameNotFound
	}
	return name, nil
}

// SubjectName resolves a case or matter reference.
func (d *StaticDirectory) SubjectName(_ context.Context, id uuid.UUID) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	name, ok := d.subjects[id]
	if !ok {
		return "", domain.ErrNameNotFound
	}
	return name, nil
}
