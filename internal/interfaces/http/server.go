package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/config"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/logging"
)

// Server wraps the standard HTTP server with the service's lifecycle
// conventions.
type Server struct {
	srv             *http.Server
	logger          logging.Logger
	shutdownTimeout time.Duration
}

// NewServer builds a Server from the server configuration and a fully wired
// handler.
func NewServer(cfg config.ServerConfig, handler http.Handler, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Server{
		srv: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		logger:          logger.Named("http.server"),
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Start blocks serving requests until the listener fails or Stop is called.
// A server closed by Stop returns nil.
func (s *Server) Start() error {
	s.logger.Info("http server listening", logging.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop drains in-flight requests, waiting at most the configured shutdown
// timeout.
func (s *Server) Stop(ctx context.Context) error {
	if s.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.shutdownTimeout)
		defer cancel()
	}
	s.logger.Info("http server shutting down")
	return s.srv.Shutdown(ctx)
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}
