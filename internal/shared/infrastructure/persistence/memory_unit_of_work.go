package persistence

import "context"

// MemoryUnitOfWork is a no-op unit of work for the in-memory store, which
// applies each save atomically on its own.
type MemoryUnitOfWork struct{}

// NewMemoryUnitOfWork creates a new MemoryUnitOfWork.
func NewMemoryUnitOfWork() *MemoryUnitOfWork {
	return &MemoryUnitOfWork{}
}

func (u *MemoryUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	return ctx, nil
}

func (u *MemoryUnitOfWork) Commit(ctx context.Context) error {
	return nil
}

func (u *MemoryUnitOfWork) Rollback(ctx context.Context) error {
	return nil
}
