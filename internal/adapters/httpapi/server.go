package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrescamacho/craftchain-go/internal/adapters/api"
	"github.com/andrescamacho/craftchain-go/internal/application/common"
)

// Server serves the planner over REST
type Server struct {
	httpServer *http.Server
	service    api.Service
	logger     common.Logger
}

// NewServer creates a server for addr. registry may be nil, in which case
// /metrics is not mounted.
func NewServer(addr string, service api.Service, logger common.Logger, registry *prometheus.Registry) *Server {
	s := &Server{
		service: service,
		logger:  logger,
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.routes(registry),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes(registry *prometheus.Registry) http.Handler {
	r := chi.NewRouter()

	r.Use(recoverMiddleware(s.logger))
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	r.Get("/healthz", handleHealthz)
	if registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/items", s.handleListItems)
		r.Get("/items/{itemID}", s.handleGetItem)
		r.Get("/items/{itemID}/chain", s.handleBuildChain)
		r.Post("/plans", s.handleComputePlan)
	})

	return r
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Serve accepts connections on l until Shutdown is called
func (s *Server) Serve(l net.Listener) error {
	s.logger.Log(common.LevelInfo, "HTTP server listening", map[string]interface{}{
		"action":  "http_listen",
		"address": l.Addr().String(),
	})
	if err := s.httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe listens on the configured address
func (s *Server) ListenAndServe() error {
	l, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(l)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
