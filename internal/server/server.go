// Package server is the HTTP shell: router, middleware, health check and
// graceful shutdown. Feature packages mount their routes on Router().
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/termfolio/internal/db"
	"github.com/ziadkadry99/termfolio/internal/logging"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
	// ContentLoadedAt, when set, is reported by the health check.
	ContentLoadedAt func() time.Time
}

// Server owns the router and the listening http.Server.
type Server struct {
	cfg        Config
	db         *db.DB
	router     chi.Router
	httpServer *http.Server
	started    time.Time
}

// New creates a server. database may be nil; the health check then skips
// the database ping.
func New(cfg Config, database *db.DB) *Server {
	s := &Server{
		cfg:     cfg,
		db:      database,
		started: time.Now(),
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with the shared routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Requests(log.Default()))
	r.Use(middleware.Recoverer)
	r.Use(unlessUpgrade(middleware.Timeout(30 * time.Second)))

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", s.handleHealth)

	return r
}

// unlessUpgrade skips mw for websocket upgrades, which outlive any
// request deadline.
func unlessUpgrade(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		wrapped := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if websocket.IsWebSocketUpgrade(r) {
				next.ServeHTTP(w, r)
				return
			}
			wrapped.ServeHTTP(w, r)
		})
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	DB      string `json:"db,omitempty"`
	Content string `json:"content_loaded_at,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Uptime: time.Since(s.started).Round(time.Second).String()}
	status := http.StatusOK
	if s.cfg.ContentLoadedAt != nil {
		if at := s.cfg.ContentLoadedAt(); !at.IsZero() {
			resp.Content = at.UTC().Format(time.RFC3339)
		}
	}
	if s.db != nil {
		if err := s.db.PingContext(r.Context()); err != nil {
			resp.Status, resp.DB = "degraded", err.Error()
			status = http.StatusServiceUnavailable
		} else {
			resp.DB = "ok"
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Database returns the database connection.
func (s *Server) Database() *db.DB { return s.db }

// Addr is the listen address for the configured port.
func (s *Server) Addr() string { return fmt.Sprintf(":%d", s.cfg.Port) }

// Start begins listening on the configured port. It returns
// http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info("listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
