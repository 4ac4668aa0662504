// Package app wires configuration, storage, messaging, and handlers into a
// runnable container.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	directoryDomain "github.com/felixgeelhaar/parley/internal/directory/domain"
	directoryInfra "github.com/felixgeelhaar/parley/internal/directory/infrastructure"
	negotiationCommands "github.com/felixgeelhaar/parley/internal/negotiation/application/commands"
	negotiationQueries "github.com/felixgeelhaar/parley/internal/negotiation/application/queries"
	negotiationDomain "github.com/felixgeelhaar/parley/internal/negotiation/domain"
	"github.com/felixgeelhaar/parley/internal/negotiation/infrastructure/export"
	negotiationPersistence "github.com/felixgeelhaar/parley/internal/negotiation/infrastructure/persistence"
	sharedApplication "github.com/felixgeelhaar/parley/internal/shared/application"
	"github.com/felixgeelhaar/parley/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/parley/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/parley/internal/shared/infrastructure/outbox"
	sharedPersistence "github.com/felixgeelhaar/parley/internal/shared/infrastructure/persistence"
	"github.com/felixgeelhaar/parley/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database
	DB       *pgxpool.Pool
	SQLiteDB *sql.DB

	// Redis
	RedisClient *redis.Client

	// Repositories
	RequestRepo negotiationDomain.Repository
	OutboxRepo  outbox.Repository

	// Directory
	Directory directoryDomain.Directory

	// Publishers
	EventPublisher  eventbus.Publisher
	OutboxProcessor *outbox.Processor

	// Unit of Work
	UnitOfWork sharedApplication.UnitOfWork

	// Command Handlers
	CreateRequestHandler     *negotiationCommands.CreateRequestHandler
	AcceptRequestHandler     *negotiationCommands.AcceptRequestHandler
	RejectRequestHandler     *negotiationCommands.RejectRequestHandler
	RescheduleRequestHandler *negotiationCommands.RescheduleRequestHandler

	// Query Handlers
	GetRequestHandler        *negotiationQueries.GetRequestHandler
	ListRequestsHandler      *negotiationQueries.ListRequestsHandler
	SummarizeRequestsHandler *negotiationQueries.SummarizeRequestsHandler
	CheckConflictHandler     *negotiationQueries.CheckConflictHandler

	// Export
	ICalExporter *export.ICalExporter
}

// NewContainer creates and wires all dependencies. With DATABASE_URL set it
// runs against PostgreSQL; otherwise it falls back to a local SQLite file.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	if err := c.connectStorage(ctx); err != nil {
		return nil, err
	}

	c.connectRedis(ctx)
	c.wireDirectory()
	c.connectPublisher()

	c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, c.EventPublisher, outbox.ProcessorConfig{
		PollInterval: cfg.OutboxPollInterval,
		BatchSize:    cfg.OutboxBatchSize,
	}, c.Logger)

	c.CreateRequestHandler = negotiationCommands.NewCreateRequestHandler(c.RequestRepo, c.OutboxRepo, c.UnitOfWork)
	c.AcceptRequestHandler = negotiationCommands.NewAcceptRequestHandler(c.RequestRepo, c.OutboxRepo, c.UnitOfWork)
	c.RejectRequestHandler = negotiationCommands.NewRejectRequestHandler(c.RequestRepo, c.OutboxRepo, c.UnitOfWork)
	c.RescheduleRequestHandler = negotiationCommands.NewRescheduleRequestHandler(c.RequestRepo, c.OutboxRepo, c.UnitOfWork)

	c.GetRequestHandler = negotiationQueries.NewGetRequestHandler(c.RequestRepo, c.Directory)
	c.ListRequestsHandler = negotiationQueries.NewListRequestsHandler(c.RequestRepo, c.Directory)
	c.SummarizeRequestsHandler = negotiationQueries.NewSummarizeRequestsHandler(c.RequestRepo)
	c.CheckConflictHandler = negotiationQueries.NewCheckConflictHandler(c.RequestRepo)

	c.ICalExporter = export.NewICalExporter(c.RequestRepo)

	return c, nil
}

func (c *Container) connectStorage(ctx context.Context) error {
	cfg := c.Config

	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return fmt.Errorf("failed to ping database: %w", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		c.DB = pool
		c.RequestRepo = negotiationPersistence.NewPostgresRequestRepository(pool)
		c.OutboxRepo = outbox.NewPostgresRepository(pool)
		c.UnitOfWork = sharedPersistence.NewPostgresUnitOfWork(pool)
		c.Logger.Info("connected to database")
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.SQLitePath)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	requestRepo, err := negotiationPersistence.NewSQLiteRequestRepository(db)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize request store: %w", err)
	}
	outboxRepo, err := outbox.NewSQLiteRepository(db)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize outbox store: %w", err)
	}

	c.SQLiteDB = db
	c.RequestRepo = requestRepo
	c.OutboxRepo = outboxRepo
	c.UnitOfWork = sharedPersistence.NewSQLiteUnitOfWork(db)
	c.Logger.Info("using local sqlite database", "path", cfg.SQLitePath)
	return nil
}

// connectRedis is best-effort: the cache is an optimization, not a
// requirement, outside production.
func (c *Container) connectRedis(ctx context.Context) {
	cfg := c.Config
	if cfg.RedisURL == "" {
		return
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		c.Logger.Warn("invalid Redis URL, directory cache disabled", "error", err)
		return
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		c.Logger.Warn("Redis not available, directory cache disabled", "error", err)
		return
	}

	c.RedisClient = client
	c.Logger.Info("connected to Redis")
}

func (c *Container) wireDirectory() {
	cfg := c.Config

	if cfg.DirectoryURL == "" {
		c.Directory = directoryInfra.NewStaticDirectory()
		return
	}

	var directory directoryDomain.Directory = directoryInfra.NewHTTPDirectory(
		directoryInfra.DefaultHTTPDirectoryConfig(cfg.DirectoryURL), c.Logger)
	if c.RedisClient != nil {
		directory = directoryInfra.NewCachedDirectory(directory, c.RedisClient, cfg.DirectoryCacheTTL, c.Logger)
	}
	c.Directory = directory
}

func (c *Container) connectPublisher() {
	cfg := c.Config

	if cfg.RabbitMQURL == "" {
		c.EventPublisher = eventbus.NewNoopPublisher(c.Logger)
		return
	}

	publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, c.Logger)
	if err != nil {
		c.Logger.Warn("RabbitMQ not available, using noop publisher", "error", err)
		c.EventPublisher = eventbus.NewNoopPublisher(c.Logger)
		return
	}
	c.EventPublisher = publisher
}

// Close releases all container resources.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis client", "error", err)
		}
	}
	if c.SQLiteDB != nil {
		if err := c.SQLiteDB.Close(); err != nil {
			c.Logger.Warn("error closing sqlite database", "error", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
