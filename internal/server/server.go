package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/gameinventory/internal/auth"
	"github.com/osse101/gameinventory/internal/database"
	"github.com/osse101/gameinventory/internal/handler"
	"github.com/osse101/gameinventory/internal/inventory"
	"github.com/osse101/gameinventory/internal/item"
	"github.com/osse101/gameinventory/internal/logger"
	"github.com/osse101/gameinventory/internal/metrics"
)

// Server is the HTTP front of the service
type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(port int, decoder *auth.Decoder, dbPool database.Pool, itemService item.Service, inventoryService inventory.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack, outermost first
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)
	r.Use(requestSizeLimitMiddleware(1 << 20)) // 1MB limit

	// Health check routes (unversioned, unauthenticated)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes, all behind bearer authentication
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(decoder))

		r.Route("/items", func(r chi.Router) {
			r.Get("/", handler.HandleGetAllItems(itemService))
			r.Post("/", handler.HandleCreateItem(itemService))
			r.Get("/{id}", handler.HandleGetItem(itemService))
			r.Delete("/{id}", handler.HandleDeleteItem(itemService))
			r.Get("/{id}/inventories", handler.HandleGetInventoriesWithItem(inventoryService))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Post("/", handler.HandleCreateInventory(inventoryService))
			r.Get("/", handler.HandleGetInventory(inventoryService))
			r.Post("/items", handler.HandleAddToInventory(inventoryService))
			r.Post("/use", handler.HandleUseItem(inventoryService))
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start starts the server
func (s *Server) Start() error {
	logger.FromContext(context.Background()).Info("Server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info("Request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// requestSizeLimitMiddleware caps request body size to prevent resource
// exhaustion from oversized payloads
func requestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
