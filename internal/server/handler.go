package server

import (
	"net/http"
	"os"

	"github.com/spf13/afero"
)

// noStore stamps the cache suppression headers on every response so
// clients always revalidate against the working tree.
func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Cache-Control", "no-store, must-revalidate")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

// serveFiles resolves a request against the served tree. Content types
// for regular files come from the override table; everything else is
// the file server's default behavior.
func (s *Server) serveFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "405 - Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	// The mux has already redirected unclean paths, so a surviving
	// traversal segment means the request skipped normal routing.
	if err := validateRequestPath(r.URL.Path); err != nil {
		http.Error(w, "403 - Forbidden: Invalid path", http.StatusForbidden)
		return
	}

	name := normalizeRequestPath(r.URL.Path)

	info, err := s.fs.Stat(name)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			s.serveNotFound(w)
		case os.IsPermission(err):
			http.Error(w, "403 - Forbidden", http.StatusForbidden)
		default:
			http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	// Directories keep the file server's redirect/index/listing
	// behavior, which sets its own content type.
	if !info.IsDir() {
		w.Header().Set("Content-Type", s.table.Resolve(name))
	}

	s.files.ServeHTTP(w, r)
}

// serveNotFound serves the custom not-found page when the tree has
// one, and a plain fallback otherwise.
func (s *Server) serveNotFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
	if content, err := afero.ReadFile(s.fs, s.tunables.NotFoundPage); err == nil {
		_, _ = w.Write(content)
	} else {
		_, _ = w.Write([]byte("404 - Page Not Found"))
	}
}
