// Package server is a reference implementation of the life summary service.
// It serves the same routes the wizard calls so the client can be exercised
// end to end without an external deployment.
package server

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/Iron-Ham/lifespan/internal/logging"
	"github.com/Iron-Ham/lifespan/internal/server/store"
)

const (
	// DefaultAddr is the listen address of `lifespan serve`.
	DefaultAddr = "127.0.0.1:8000"

	// DefaultPrefix is the path prefix of every API route.
	DefaultPrefix = "/api/"
)

// Server serves the summary API over a Store.
type Server struct {
	store   store.Store
	metrics *Metrics
	logger  *logging.Logger
	prefix  string
	srv     *fasthttp.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPrefix sets the API path prefix.
func WithPrefix(prefix string) Option {
	return func(s *Server) {
		if !strings.HasPrefix(prefix, "/") {
			prefix = "/" + prefix
		}
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		s.prefix = prefix
	}
}

// New creates a server over st.
func New(st store.Store, opts ...Option) *Server {
	s := &Server{
		store:   st,
		metrics: NewMetrics(),
		logger:  logging.NopLogger(),
		prefix:  DefaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.srv = &fasthttp.Server{
		Handler:            s.Handler,
		Name:               "lifespan",
		ReadTimeout:        15 * time.Second,
		WriteTimeout:       15 * time.Second,
		MaxRequestBodySize: 64 * 1024,
	}
	return s
}

// Metrics returns the server's instruments.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// ListenAndServe serves on addr until Shutdown is called.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("summary service listening", "addr", addr, "prefix", s.prefix)
	return s.srv.ListenAndServe(addr)
}

// Serve serves on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	return s.srv.Serve(ln)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.ShutdownWithContext(ctx)
}
