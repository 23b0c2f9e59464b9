// Package server exposes editing sessions over HTTP.
//
// Each client creates its own editor and drives it with the same pointer
// and keyboard events a terminal front end would send, or with raw edit
// commands. Responses carry the editor view, including the graph in the
// JSON exchange format.
//
//	POST   /v1/editors                     create an editor
//	GET    /v1/editors                     list editor ids
//	GET    /v1/editors/{id}                view
//	DELETE /v1/editors/{id}                close
//	POST   /v1/editors/{id}/events         pointer/key events
//	POST   /v1/editors/{id}/commands       edit commands by name
//	PUT    /v1/editors/{id}/weight         submit the pending weight edit
//	DELETE /v1/editors/{id}/weight         cancel it
//	POST   /v1/editors/{id}/reset          clear the graph
//	GET    /v1/editors/{id}/export         ?format=json|yaml
//	POST   /v1/editors/{id}/import         ?format=json|yaml
//	GET    /v1/editors/{id}/render.{fmt}   svg, png or dot
//	GET    /healthz
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/graphsketch/pkg/interact"
	"github.com/matzehuels/graphsketch/pkg/render/nodelink"
	"github.com/matzehuels/graphsketch/pkg/session"
)

// Options configures a [Server].
type Options struct {
	Logger *log.Logger

	// Sessions holds the editors. Default: an in-memory store with
	// [session.DefaultTTL].
	Sessions session.Store

	// Renderer renders exports. Default: no cache.
	Renderer *nodelink.Renderer

	// Dwell is the click/drag threshold for new editors.
	Dwell time.Duration

	// Weighted and Directed are the initial flags of new editors.
	Weighted bool
	Directed bool

	// CleanupInterval is how often expired sessions are dropped while
	// serving. Default one minute.
	CleanupInterval time.Duration
}

// Server is the HTTP facade over editing sessions.
type Server struct {
	opts     Options
	logger   *log.Logger
	sessions session.Store
	renderer *nodelink.Renderer
}

// New returns a server with defaults filled in.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Sessions == nil {
		opts.Sessions = session.NewMemoryStore(session.DefaultTTL)
	}
	if opts.Renderer == nil {
		opts.Renderer = &nodelink.Renderer{}
	}
	if opts.Dwell <= 0 {
		opts.Dwell = interact.DefaultDwell
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = time.Minute
	}
	return &Server{
		opts:     opts,
		logger:   opts.Logger,
		sessions: opts.Sessions,
		renderer: opts.Renderer,
	}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.health)

	r.Route("/v1/editors", func(r chi.Router) {
		r.Post("/", s.createEditor)
		r.Get("/", s.listEditors)

		r.Route("/{id}", func(r chi.Router) {
			r.Use(s.withSession)
			r.Get("/", s.getEditor)
			r.Delete("/", s.deleteEditor)
			r.Post("/events", s.postEvents)
			r.Post("/commands", s.postCommand)
			r.Put("/weight", s.putWeight)
			r.Delete("/weight", s.cancelWeight)
			r.Post("/reset", s.reset)
			r.Get("/export", s.export)
			r.Post("/import", s.importGraph)
			r.Get("/render.{format}", s.render)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.cleanupLoop(ctx)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) cleanupLoop(ctx context.Context) {
	t := time.NewTicker(s.opts.CleanupInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n, err := s.sessions.Cleanup(ctx); err != nil {
				s.logger.Warn("session cleanup failed", "err", err)
			} else if n > 0 {
				s.logger.Debug("expired sessions removed", "count", n)
			}
		}
	}
}

func (s *Server) newEditor() *interact.Controller {
	return interact.New(
		interact.WithDwell(s.opts.Dwell),
		interact.WithLogger(s.logger.With("component", "editor")),
	)
}
