package handler

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// StaticHandler serves a single-page app. Existing files are served as-is;
// any other path falls back to index.html so client-side routes resolve.
type StaticHandler struct {
	fsys  fs.FS
	files http.Handler
}

func NewStaticHandler(fsys fs.FS) *StaticHandler {
	return &StaticHandler{fsys: fsys, files: http.FileServerFS(fsys)}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		WriteMethodNotAllowed(w, http.MethodGet, http.MethodHead)
		return
	}

	// unknown API paths must not turn into the app shell
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeNotFound(w)
		return
	}

	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if name != "" {
		if info, err := fs.Stat(h.fsys, name); err == nil && !info.IsDir() {
			h.files.ServeHTTP(w, r)
			return
		}
	}

	http.ServeFileFS(w, r, h.fsys, "index.html")
}
