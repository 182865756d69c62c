package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jaekwang-park/todolist/internal/middleware"
	"github.com/jaekwang-park/todolist/internal/service"
)

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

type ServerOptions struct {
	Port      string
	StaticDir string
}

func NewServer(opts ServerOptions, logger *slog.Logger, todoSvc *service.TodoService) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", opts.Port),
			Handler:           NewHandler(logger, todoSvc, opts.StaticDir),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
	}
}

// NewHandler returns the router wrapped in the middleware chain:
// request id -> recovery -> logging -> router.
func NewHandler(logger *slog.Logger, todoSvc *service.TodoService, staticDir string) http.Handler {
	router := NewRouter(todoSvc, staticDir)
	return middleware.RequestID(middleware.Recovery(logger)(middleware.Logging(logger)(router)))
}

func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}
