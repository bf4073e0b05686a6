package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bhataasim1/integrations-technical-assessment/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// frontendURL, when set, receives the browser redirect after a
	// completed OAuth callback.
	frontendURL string

	// Services
	integrationService driving.IntegrationService

	// Infrastructure
	store Pinger // credential store backend health check (optional)
}

// Config holds server configuration
type Config struct {
	Host               string
	Port               int
	Version            string
	FrontendURL        string
	CORSAllowedOrigins []string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:               "0.0.0.0",
		Port:               8080,
		Version:            "dev",
		CORSAllowedOrigins: []string{"*"},
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	integrationService driving.IntegrationService,
	store Pinger, // can be nil
) *Server {
	s := &Server{
		router:             http.NewServeMux(),
		version:            cfg.Version,
		frontendURL:        cfg.FrontendURL,
		integrationService: integrationService,
		store:              store,
	}

	s.setupRoutes()

	// Middleware chain, outermost first: recovery, request ID, logging,
	// metrics, CORS.
	var handler http.Handler = s.router
	handler = NewCORSMiddleware(cfg.CORSAllowedOrigins).Handler(handler)
	handler = NewMetricsMiddleware().Handler(handler)
	handler = NewLoggingMiddleware().Handler(handler)
	handler = NewRequestIDMiddleware().Handler(handler)
	handler = NewRecoveryMiddleware().Handler(handler)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health and telemetry
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.Handle("GET /metrics", promhttp.Handler())

	// OAuth flow endpoints
	s.router.HandleFunc("GET /integrations/{provider}/authorize", s.handleAuthorize)
	s.router.HandleFunc("GET /integrations/{provider}/oauth2callback", s.handleOAuthCallback)

	// Item fetch and credential inspection
	s.router.HandleFunc("POST /integrations/{provider}", s.handleFetchItems)
	s.router.HandleFunc("GET /integrations/{provider}/credentials", s.handleGetCredentials)
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
