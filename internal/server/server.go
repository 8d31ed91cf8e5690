package server

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/yonutiyo/weft/internal/config"
	"github.com/yonutiyo/weft/internal/mime"
	"github.com/yonutiyo/weft/internal/watch"
)

// Server serves one directory tree over HTTP with module-correct
// content types and caching disabled.
type Server struct {
	root     string
	fs       afero.Fs
	cfg      *config.Config
	tunables *config.Tunables
	table    *mime.Table
	hub      *hub
	files    http.Handler

	mu       sync.Mutex
	lastHash string
}

// New builds a Server rooted at the absolute directory root on base.
// The served view is read-only and cannot reach outside root.
func New(root string, base afero.Fs, cfg *config.Config, tunables *config.Tunables) *Server {
	serveFs := afero.NewReadOnlyFs(afero.NewBasePathFs(base, root))
	s := &Server{
		root:     root,
		fs:       serveFs,
		cfg:      cfg,
		tunables: tunables,
		table:    mime.NewTable(),
		files:    http.FileServer(afero.NewHttpFs(serveFs).Dir("/")),
	}
	if cfg.Reload {
		s.hub = newHub()
	}
	return s
}

// Handler assembles the full middleware chain.
func (s *Server) Handler() http.Handler {
	var files http.Handler = http.HandlerFunc(s.serveFiles)
	if s.cfg.Compress {
		files = compressHandler(files)
	}

	mux := http.NewServeMux()
	if s.hub != nil {
		mux.HandleFunc("/events", s.hub.handleEvents)
	}
	mux.Handle("/", files)

	return noStore(mux)
}

// primeTreeHash records the current tree fingerprint so startup noise
// does not trigger a reload.
func (s *Server) primeTreeHash() {
	hash, err := watch.TreeHash([]string{s.root})
	if err != nil {
		slog.Warn("Failed to fingerprint serving directory", "error", err)
		return
	}
	s.mu.Lock()
	s.lastHash = hash
	s.mu.Unlock()
}

// notifyChanged broadcasts a reload unless the tree fingerprint is
// unchanged, which happens when editors fire spurious events.
func (s *Server) notifyChanged() {
	hash, err := watch.TreeHash([]string{s.root})
	if err != nil {
		slog.Warn("Failed to fingerprint serving directory", "error", err)
		hash = ""
	}

	s.mu.Lock()
	changed := hash == "" || hash != s.lastHash
	s.lastHash = hash
	s.mu.Unlock()

	if changed && s.hub != nil {
		s.hub.broadcast()
	}
}

// resolveRoot returns the absolute directory containing the running
// binary, with symlinks resolved.
func resolveRoot() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable path: %w", err)
	}
	return filepath.Dir(resolved), nil
}

// Run starts the file server rooted at the directory containing the
// running binary. It blocks until ctx is cancelled or a startup
// failure stops the process.
func Run(ctx context.Context, args []string) {
	cfg := config.Load(args)

	root, err := resolveRoot()
	if err != nil {
		log.Fatalf("Failed to resolve serving directory: %v", err)
	}
	if err := os.Chdir(root); err != nil {
		log.Fatalf("Failed to enter serving directory %s: %v", root, err)
	}

	tunables := config.LoadTunables()

	srv := New(root, afero.NewOsFs(), cfg, tunables)

	if srv.hub != nil {
		srv.primeTreeHash()
		watcher, err := watch.New([]string{root}, tunables.DebounceDuration, func(watch.Event) {
			srv.notifyChanged()
		})
		if err != nil {
			slog.Warn("Live reload disabled", "error", err)
		} else {
			go watcher.Start()
			defer watcher.Stop()
		}
	}

	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Handler(),
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("Failed to bind %s: %v", addr, err)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), tunables.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("HTTP server shutdown error", "error", err)
		}
	}()

	fmt.Printf("Serving %s on http://%s:%d\n", root, config.Host, config.Port)

	if err := httpServer.Serve(ln); err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
