// Package api exposes the render orchestration surface over HTTP. All
// responses use a JSON envelope; render submission is asynchronous and
// returns 202 with a job id to poll.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"clipforge/internal/logging"
	"clipforge/internal/metrics"
	"clipforge/internal/projects"
	"clipforge/internal/render"
)

// Version reported by the health endpoint.
const Version = "0.1.0"

// ServerConfig wires the HTTP surface to the underlying services.
type ServerConfig struct {
	Bind      string
	Projects  *projects.Service
	Queue     *render.Queue
	Registry  *metrics.Registry
	Logger    *slog.Logger
	StartTime time.Time
}

// Server owns the HTTP listener lifecycle. Listen binds the address so the
// resolved port is known before Serve blocks; a bind of "host:0" picks a
// free port.
type Server struct {
	bind       string
	httpServer *http.Server
	listener   net.Listener
	logger     *slog.Logger
}

// NewServer constructs the HTTP server with routes and middleware attached.
func NewServer(cfg ServerConfig) *Server {
	logger := logging.WithComponent(cfg.Logger, "api")
	cfg.Logger = logger
	return &Server{
		bind: cfg.Bind,
		httpServer: &http.Server{
			Handler:      NewRouter(cfg),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Listen binds the configured address.
func (s *Server) Listen() error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.bind, err)
	}
	s.listener = listener
	s.logger.Info("http server listening", logging.String("addr", listener.Addr().String()))
	return nil
}

// Serve blocks handling requests until Shutdown. Listen must have been
// called first.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}
	if err := s.httpServer.Serve(s.listener); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and closes the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the bound address, or the configured bind when the server is
// not listening yet.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.bind
}
