package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/bembemg/lista-de-tarefas/app/tarefas/api"
	"github.com/bembemg/lista-de-tarefas/app/tarefas/config"
	"github.com/bembemg/lista-de-tarefas/bridge/scaffolding/mid"
	"github.com/bembemg/lista-de-tarefas/core/repositories/tasksrepo"
	"github.com/bembemg/lista-de-tarefas/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/bembemg/lista-de-tarefas/infrastructure/postgresdb"
	"github.com/bembemg/lista-de-tarefas/infrastructure/web"
	"github.com/bembemg/lista-de-tarefas/sdk/logger"
	"github.com/bembemg/lista-de-tarefas/sdk/telemetry"
)

var build = "develop"
var appName = "TAREFAS"

func main() {
	godotenv.Load()
	ctx := context.Background()

	log, err := logger.NewFromEnv(appName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating logger: %s\n", err)
		os.Exit(1)
	}

	if err := run(ctx, log); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	// :*: START DATABASES :*:
	pg, err := postgresdb.NewFromEnv(appName, postgresdb.WithLogger(log.Logger))
	if err != nil {
		return fmt.Errorf("configuring postgres support: %w", err)
	}
	defer func() {
		log.InfoContext(ctx, "shutdown", "status", "closing database connection")
		pg.Close()
	}()

	// REPOSITORIES //
	log.InfoContext(ctx, "startup", "status", "initializing repository support")
	tasksRepository := tasksrepo.NewRepository(log, taskspgxstore.NewStore(log, pg))

	cfg := config.Tarefas{
		Build:  build,
		Logger: log,
		Repositories: config.Repositories{
			Tasks: tasksRepository,
		},
		Telemetry: telemetry.NewTelemetry(),
		DB:        pg,
	}

	server, err := web.NewServerFromEnv(appName,
		web.WithHandler(webHandler(cfg)),
		web.WithErrorLog(logger.NewStdLogger(log, slog.LevelError)),
	)
	if err != nil {
		return fmt.Errorf("webserver: %w", err)
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "startup", "status", "api router started", "host", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.InfoContext(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, server.Config.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func webHandler(cfg config.Tarefas) http.Handler {
	wh := web.NewWebHandler(
		web.WithLogging(cfg.Logger),
		web.WithTelemetry(cfg.Telemetry),
		web.WithGlobalMiddleware(
			mid.PublicCORS(),
			mid.Logger(cfg.Logger),
			mid.Errors(cfg.Logger),
			mid.Panics(),
		),
	)

	api.AddHandlers(wh, cfg)

	return wh
}
