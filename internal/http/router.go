package http

import (
	"net/http"
	"os"

	"github.com/jaekwang-park/todolist/internal/http/handler"
	"github.com/jaekwang-park/todolist/internal/service"
)

// NewRouter wires the API routes. When staticDir is non-empty, every other
// path is served from it with an index.html fallback.
func NewRouter(todoSvc *service.TodoService, staticDir string) http.Handler {
	mux := http.NewServeMux()

	health := handler.NewHealthHandler(todoSvc)
	mux.Handle("/health", health)

	// Todo CRUD API
	todoHandler := handler.NewTodoHandler(todoSvc)
	mux.Handle(handler.BasePath, todoHandler)
	mux.Handle(handler.BasePath+"/", todoHandler)

	if staticDir != "" {
		mux.Handle("/", handler.NewStaticHandler(os.DirFS(staticDir)))
	}

	return mux
}
