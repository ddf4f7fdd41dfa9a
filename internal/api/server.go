// Package api serves the rundown services as a JSON HTTP API.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/example/newsroom/internal/logging"
	"github.com/example/newsroom/internal/metrics"
	"github.com/example/newsroom/internal/ports/primary"
)

// Services bundles the primary ports the API calls into.
type Services struct {
	Rundowns primary.RundownService
	Programs primary.ProgramService
	Comments primary.CommentService
	Trash    primary.TrashService
	Logs     primary.LogService
	Auth     primary.AuthService
	Users    primary.UserService
}

// Options tunes the router.
type Options struct {
	RateLimit  int           // requests per window and client IP; 0 disables limiting
	RateWindow time.Duration // time.Minute when zero
	Now        func() time.Time
}

type handler struct {
	svc *Services
	now func() time.Time
}

// NewRouter builds the HTTP handler with the middleware stack applied.
func NewRouter(svc *Services, opts Options) http.Handler {
	h := &handler{svc: svc, now: opts.Now}
	if h.now == nil {
		h.now = time.Now
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(requestID)
	r.Use(metrics.Middleware())
	r.Use(logging.AccessLog())
	if opts.RateLimit > 0 {
		r.Use(rateLimit(opts.RateLimit, opts.RateWindow))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(authenticate(svc.Auth))

			r.Get("/auth/me", h.me)

			r.Get("/programs", h.listPrograms)
			r.Post("/programs", h.createProgram)

			r.Post("/rundowns/load", h.loadRundown)
			r.Get("/rundowns", h.listRundowns)
			r.Route("/rundowns/{id}", func(r chi.Router) {
				r.Get("/", h.getRundown)
				r.Patch("/", h.updateRundown)
				r.Delete("/", h.deleteRundown)
				r.Post("/status", h.transitionRundown)
				r.Get("/timing", h.timing)
				r.Post("/blocks", h.addBlock)
				r.Get("/comments", h.listComments)
				r.Post("/comments", h.addComment)
			})

			r.Route("/blocks/{id}", func(r chi.Router) {
				r.Patch("/", h.renameBlock)
				r.Delete("/", h.deleteBlock)
				r.Post("/move", h.moveBlock)
				r.Post("/items", h.addItem)
			})

			r.Route("/items/{id}", func(r chi.Router) {
				r.Patch("/", h.updateItem)
				r.Delete("/", h.deleteItem)
				r.Post("/status", h.setItemStatus)
				r.Post("/move", h.moveItem)
			})

			r.Get("/trash", h.listTrash)
			r.Post("/trash/{id}/restore", h.restoreRundown)
			r.Get("/audit", h.listAudit)
		})
	})

	return r
}

// Server runs the API until its context is cancelled.
type Server struct {
	srv             *http.Server
	shutdownTimeout time.Duration
}

// NewServer creates a server listening on addr.
func NewServer(addr string, handler http.Handler) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		shutdownTimeout: 10 * time.Second,
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	logger := logging.WithComponent("api")
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", ln.Addr().String()).Msg("listening")
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		logger.Info().Msg("shutting down")
		return s.srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
