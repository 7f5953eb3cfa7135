package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/B3RT1337/lookup-bot/internal/command"
	"github.com/B3RT1337/lookup-bot/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

// Handler runs one command line. *command.Dispatcher implements it.
type Handler interface {
	Handle(ctx context.Context, command string) command.Result
}

// Server is the HTTP transport in front of a command Handler.
type Server struct {
	router  *http.ServeMux
	chain   http.Handler
	handler Handler
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New creates a Server with its routes and request instrumentation.
func New(handler Handler, m *metrics.Metrics, logger *slog.Logger) *Server {
	s := &Server{
		router:  http.NewServeMux(),
		handler: handler,
		metrics: m,
		logger:  logger,
	}
	s.routes()
	s.chain = s.instrument(s.router)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.chain.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.HandleFunc("POST /execute-command", s.handleExecuteCommand())
	s.router.HandleFunc("GET /health", s.handleHealth())
	s.router.Handle("GET /metrics", s.metrics.Handler())
}

// Start listens on addr and serves until ctx is canceled, then drains
// in-flight requests for up to 10 seconds.
func (s *Server) Start(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("starting server", slog.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
