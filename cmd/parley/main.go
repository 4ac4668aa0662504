package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/parley/adapter/cli"
	"github.com/felixgeelhaar/parley/adapter/cli/request"
	"github.com/felixgeelhaar/parley/internal/app"
	"github.com/felixgeelhaar/parley/pkg/config"
	"github.com/google/uuid"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		// In development without .env, use defaults
		logger.Warn("failed to load config, using development mode", "error", err)
		cfg = &config.Config{AppEnv: "development"}
	}

	if cfg.IsDevelopment() {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	cli.SetLogger(logger)

	var cliApp *cli.App
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if cfg.IsDevelopment() {
			logger.Warn("failed to initialize container, running in limited mode", "error", err)
			// In development, allow CLI to run without a store
			cliApp = nil
		} else {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
	} else {
		defer container.Close()

		// Relay staged events in the background so single-binary installs
		// publish without a separate worker.
		if cfg.OutboxProcessorEnabled {
			if err := container.OutboxProcessor.Start(ctx); err != nil {
				logger.Warn("failed to start outbox processor", "error", err)
			}
			defer container.OutboxProcessor.Stop()
		} else {
			logger.Info("outbox processor disabled in CLI")
		}

		cliApp = cli.NewApp(
			container.CreateRequestHandler,
			container.AcceptRequestHandler,
			container.RejectRequestHandler,
			container.RescheduleRequestHandler,
			container.GetRequestHandler,
			container.ListRequestsHandler,
			container.SummarizeRequestsHandler,
			container.CheckConflictHandler,
			container.ICalExporter,
		)

		actorID, err := uuid.Parse(cfg.ActorID)
		if err != nil {
			logger.Error("invalid PARLEY_ACTOR_ID", "error", err)
			os.Exit(1)
		}
		cliApp.SetCurrentActorID(actorID)
	}

	cli.SetApp(cliApp)

	cli.AddCommand(request.Cmd)

	cli.Execute()
}
