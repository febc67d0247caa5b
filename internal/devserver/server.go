package devserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/vango-dev/approuter/internal/errors"
	"github.com/vango-dev/approuter/pkg/manifest"
	"github.com/vango-dev/approuter/pkg/navigator"
	"github.com/vango-dev/approuter/pkg/router"
)

// Options configures the preview server.
type Options struct {
	// Source lists and reads the route tree.
	Source manifest.Source

	// BuildOptions are passed to router.Build on every rebuild.
	BuildOptions []router.Option

	// Origin is the origin navigators accept for absolute URLs. Empty
	// derives it from each WebSocket request's Host.
	Origin string

	// Title is the shell page title.
	Title string

	// WatchDir enables rebuilds when files below it change.
	WatchDir string

	// Debounce is the delay before a burst of changes triggers a rebuild.
	Debounce time.Duration

	// Registry collects navigator metrics and is served on /metrics. Nil
	// disables both.
	Registry *prometheus.Registry

	// MetricsNamespace prefixes metric names.
	MetricsNamespace string

	Logger *slog.Logger
}

// Server is the preview server.
type Server struct {
	opts     Options
	logger   *slog.Logger
	metrics  *navigator.Metrics
	hub      *hub
	table    atomic.Pointer[router.Table]
	upgrader websocket.Upgrader
}

// New creates a preview server. Call Rebuild or Start before serving.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Title == "" {
		opts.Title = "approuter"
	}
	s := &Server{
		opts:   opts,
		logger: opts.Logger.With("component", "devserver"),
		hub:    newHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	if opts.Registry != nil {
		var mopts []navigator.MetricsOption
		if opts.MetricsNamespace != "" {
			mopts = append(mopts, navigator.WithNamespace(opts.MetricsNamespace))
		}
		s.metrics = navigator.NewMetrics(opts.Registry, mopts...)
	}
	return s
}

// Table returns the current route table, or nil before the first build.
func (s *Server) Table() *router.Table {
	return s.table.Load()
}

// Sessions returns the number of connected clients.
func (s *Server) Sessions() int {
	return s.hub.count()
}

// Rebuild lists the source, builds a new table and hands it to every
// connected navigator. Build errors are returned alongside the table; a
// listing failure leaves the current table in place.
func (s *Server) Rebuild(ctx context.Context) (*router.Table, error) {
	files, err := s.opts.Source.List(ctx)
	if err != nil {
		return nil, apperrors.New("C004").WithDetail(err.Error()).Wrap(err)
	}
	table, buildErr := router.Build(files, Registry(s.opts.Source, files), s.opts.BuildOptions...)
	s.table.Store(table)
	s.hub.setTable(table)
	s.logger.Info("route table built",
		"routes", len(table.Routes()),
		"files", len(files),
		"errors", len(apperrors.FromBuild(buildErr)))
	return table, buildErr
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	if s.opts.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.opts.Registry, promhttp.HandlerOpts{}))
	}
	r.Get(WebSocketPath, s.handleWebSocket)
	r.Get("/*", s.handleShell)
	return r
}

func (s *Server) handleShell(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	fmt.Fprint(w, renderShell(s.opts.Title))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("upgrade failed", "error", err)
		return
	}

	sess := newSession(uuid.NewString(), conn, s.logger)
	nav := navigator.New(s.Table(), sess, sess,
		navigator.WithLogger(sess.logger),
		navigator.WithMetrics(s.metrics),
		navigator.WithOrigin(s.origin(r)))
	sess.attach(nav)

	s.hub.add(sess)
	defer s.hub.remove(sess)
	s.logger.Debug("session opened", "session", sess.id, "sessions", s.hub.count())

	if table := s.Table(); table != nil && table.Errors() != nil {
		for _, d := range apperrors.FromBuild(table.Errors()) {
			sess.sendError(d)
		}
	}

	go sess.writeLoop()
	sess.readLoop()
	sess.close()
	s.logger.Debug("session closed", "session", sess.id)
}

// origin is the configured origin or the one the request was made to.
func (s *Server) origin(r *http.Request) string {
	if s.opts.Origin != "" {
		return s.opts.Origin
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// onChange rebuilds after files changed and tells clients to reload.
func (s *Server) onChange(ctx context.Context, paths []string) {
	s.logger.Info("routes changed", "files", len(paths))
	if _, err := s.Rebuild(ctx); err != nil && apperrors.Code(err) == "C004" {
		s.logger.Error("rebuild failed", "error", err)
		return
	}
	s.hub.broadcast(ServerMessage{Type: MsgReload})
}

// Start builds the table, starts the watcher and serves on addr until ctx
// is done.
func (s *Server) Start(ctx context.Context, addr string) error {
	if _, err := s.Rebuild(ctx); err != nil && apperrors.Code(err) == "C004" {
		return err
	}

	if s.opts.WatchDir != "" {
		w, err := NewWatcher(s.opts.WatchDir, s.opts.Debounce, s.opts.Logger)
		if err != nil {
			return fmt.Errorf("watching %s: %w", s.opts.WatchDir, err)
		}
		w.OnChange(func(paths []string) { s.onChange(ctx, paths) })
		go func() {
			_ = w.Run(ctx)
		}()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.hub.closeAll()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		s.hub.closeAll()
		return err
	}
}
