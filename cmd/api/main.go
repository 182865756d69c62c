package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jaekwang-park/todolist/internal/config"
	todohttp "github.com/jaekwang-park/todolist/internal/http"
	"github.com/jaekwang-park/todolist/internal/logging"
	"github.com/jaekwang-park/todolist/internal/repository"
	"github.com/jaekwang-park/todolist/internal/service"
)

func main() {
	// Initial logger at info level; reconfigured after config load
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background()); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(os.Stdout, cfg.LogFormat, cfg.ParseLogLevel())
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"env", cfg.AppEnv,
		"port", cfg.ServerPort,
		"db_driver", cfg.DB.Driver,
		"log_level", cfg.LogLevel,
		"static_dir", cfg.StaticDir,
	)

	todoRepo, closeRepo, err := openRepository(ctx, cfg.DB, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	todoSvc := service.NewTodoService(todoRepo)

	srv := todohttp.NewServer(todohttp.ServerOptions{
		Port:      cfg.ServerPort,
		StaticDir: cfg.StaticDir,
	}, logger, todoSvc)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	logger.Info("server starting", "port", cfg.ServerPort)

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}

// openRepository returns the store selected by cfg.Driver and a func that
// releases it.
func openRepository(ctx context.Context, cfg config.DBConfig, logger *slog.Logger) (repository.TodoRepository, func(), error) {
	if cfg.Driver == repository.DriverMemory {
		logger.Warn("using in-memory store: records are lost on restart")
		return repository.NewMemoryTodo(), func() {}, nil
	}

	db, err := repository.Open(ctx, cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, nil, err
	}
	logger.Info("database connected", "driver", cfg.Driver)

	if cfg.AutoMigrate {
		if err := repository.Migrate(ctx, db, cfg.Driver); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("database schema ready")
	}

	return repository.NewSQLTodo(db), func() { db.Close() }, nil
}
