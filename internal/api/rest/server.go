package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fortuna/argus/internal/metrics"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
	router  *mux.Router
}

// NewServer creates a new REST API server. A nil metrics manager disables
// request metrics and the /metrics endpoint.
func NewServer(port string, handler *Handler, m *metrics.Manager) *Server {
	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)
	if m != nil {
		router.Use(MetricsMiddleware(m))
		router.Handle("/metrics", m.Handler()).Methods("GET")
	}

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Games
	api.HandleFunc("/games", handler.GetTodaysGames).Methods("GET")
	api.HandleFunc("/games/{gameID}/roster", handler.GetGameRoster).Methods("GET")
	api.HandleFunc("/games/{gameID}/log", handler.GetGameLog).Methods("GET")

	// Tracker
	api.HandleFunc("/tracker", handler.GetTracker).Methods("GET")
	api.HandleFunc("/tracker", handler.SelectTracker).Methods("PUT", "OPTIONS")
	api.HandleFunc("/tracker/refresh", handler.RefreshTracker).Methods("POST", "OPTIONS")
	api.HandleFunc("/tracker/scheduler", handler.GetSchedulerStatus).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		router:  router,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Handler returns the router, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
