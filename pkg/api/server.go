package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/threadnet-protocol/threadnet-go/pkg/dataset"
	"github.com/threadnet-protocol/threadnet-go/pkg/log"
)

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	// ListenAddress is the host:port the server binds to.
	ListenAddress string

	// Store is the dataset store commands operate on. Required.
	Store *dataset.Store

	// Hub provides router discovery subscriptions. Required.
	Hub *RouterHub

	// Version is reported by the health endpoint.
	Version string

	// Logger receives operational logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Audit receives audit events. Defaults to log.NoopLogger.
	Audit log.Logger
}

// Server is the HTTP server carrying the WebSocket API.
type Server struct {
	config   ServerConfig
	mux      *http.ServeMux
	server   *http.Server
	upgrader websocket.Upgrader
}

// NewServer creates a new server with the given configuration.
func NewServer(cfg ServerConfig) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Audit == nil {
		cfg.Audit = log.NoopLogger{}
	}

	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:    cfg.ListenAddress,
		Handler: s.mux,
	}

	return s
}

// registerRoutes sets up all HTTP routes.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/api/v1/health", s.handleHealth)
	s.mux.HandleFunc("/api/v1/ws", s.handleWebSocket)
}

// ListenAndServe runs the server until Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.config.Logger.Info("api server listening", "address", s.config.ListenAddress)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler returns the server's HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	version := s.config.Version
	if version == "" {
		version = "dev"
	}

	resp := map[string]string{
		"status":  "ok",
		"version": version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.config.Logger.Debug("failed to encode health response", "error", err)
	}
}

// handleWebSocket upgrades the connection and serves the command session.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.config.Logger.Warn("failed to upgrade websocket connection",
			"remote", r.RemoteAddr, "error", err)
		return
	}

	s.config.Logger.Debug("websocket client connected", "remote", r.RemoteAddr)
	sess := newSession(conn, s.config.Store, s.config.Hub, s.config.Logger, s.config.Audit)
	sess.run()
	s.config.Logger.Debug("websocket client disconnected", "remote", r.RemoteAddr)
}
