package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	directoryDomain "github.com/felixgeelhaar/parley/internal/directory/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL is how long resolved names stay cached.
const DefaultCacheTTL = 15 * time.Minute

// CachedDirectory decorates a Directory with a Redis read-through cache.
// Cache failures are logged and the lookup falls through to the inner
// directory.
type CachedDirectory struct {
	inner  directoryDomain.Directory
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedDirectory wraps a directory with a Redis cache.
func NewCachedDirectory(inner directoryDomain.Directory, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedDirectory {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedDirectory{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// PartyName resolves a requester or responder reference.
func (d *CachedDirectory) PartyName(ctx context.Context, id uuid.UUID) (string, error) {
	return d.resolve(ctx, "party", id, d.inner.PartyName)
}

// SubjectName resolves a case or matter reference.
func (d *CachedDirectory) SubjectName(ctx context.Context, id uuid.UUID) (string, error) {
	return d.resolve(ctx, "subject", id, d.inner.SubjectName)
}

func (d *CachedDirectory) resolve(
	ctx context.Context,
	kind string,
	id uuid.UUID,
	lookup func(context.Context, uuid.UUID) (string, error),
) (string, error) {
	key := fmt.Sprintf("parley:directory:%s:%s", kind, id)

	cached, err := d.client.Get(ctx, key).Result()
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, redis.Nil) {
		d.logger.Warn("directory cache read failed", "key", key, "error", err)
	}

	name, err := lookup(ctx, id)
	if err != nil {
		return "", err
	}

	if err := d.client.Set(ctx, key, name, d.ttl).Err(); err != nil {
		d.logger.Warn("directory cache write failed", "key", key, "error", err)
	}

	return name, nil
}
