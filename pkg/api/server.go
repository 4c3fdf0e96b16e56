package api

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/aegis-protocol/aegis-indexer/internal/config"
	"github.com/aegis-protocol/aegis-indexer/internal/logger"
	"github.com/aegis-protocol/aegis-indexer/pkg/api/docs"
)

// Ensure docs are initialized
var _ = docs.SwaggerInfo

const shutdownCtxTimeout = 10 * time.Second

// Server represents the API HTTP server.
type Server struct {
	config  *config.APIConfig
	handler *Handler
	server  *http.Server
	log     *logger.Logger
}

// NewServer creates a new API server over the projection database.
func NewServer(cfg *config.APIConfig, database *sql.DB, log *logger.Logger) *Server {
	handler := NewHandler(database, log)

	mux := http.NewServeMux()

	// Health endpoint
	mux.HandleFunc("GET /health", handler.Health)

	// Projection query endpoints
	mux.HandleFunc("GET /api/v1/jobs", handler.ListJobs)
	mux.HandleFunc("GET /api/v1/jobs/{id}", handler.GetJob)
	mux.HandleFunc("GET /api/v1/disputes", handler.ListDisputes)
	mux.HandleFunc("GET /api/v1/disputes/{id}", handler.GetDispute)
	mux.HandleFunc("GET /api/v1/templates", handler.ListTemplates)
	mux.HandleFunc("GET /api/v1/arbitrators", handler.ListArbitrators)
	mux.HandleFunc("GET /api/v1/agents", handler.ListAgents)

	// Aggregate endpoints
	mux.HandleFunc("GET /api/v1/stats", handler.GetStats)
	mux.HandleFunc("GET /api/v1/stats/daily", handler.GetDailyStats)

	// Audit trail endpoint
	mux.HandleFunc("GET /api/v1/audit", handler.ListAuditEvents)

	// Swagger documentation endpoints
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
	))

	// Apply middleware
	var h http.Handler = mux
	h = RecoveryMiddleware(log)(h)
	h = LoggingMiddleware(log)(h)
	h = CORSMiddleware(cfg.CORSOrigins)(h)

	httpServer := &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout.Duration,
		WriteTimeout: cfg.WriteTimeout.Duration,
	}

	return &Server{
		config:  cfg,
		handler: handler,
		server:  httpServer,
		log:     log,
	}
}

// Start runs the API server until ctx is cancelled, then shuts it down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.log.Info("API server is disabled")
		return nil
	}

	s.log.Infof("Starting API server on %s", s.config.ListenAddress)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Errorf("API server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownCtxTimeout)
	defer cancel()

	s.log.Info("Shutting down API server...")
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("API server shutdown error: %w", err)
	}

	s.log.Info("API server stopped")
	return nil
}
