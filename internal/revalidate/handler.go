// Package revalidate implements the on-demand regeneration endpoint.
package revalidate

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/termfolio/internal/live"
)

// Regenerator rebuilds the cached output for a path. *pagecache.Cache
// satisfies it.
type Regenerator interface {
	Revalidate(ctx context.Context, path string) error
}

// Broadcaster is told about every successful revalidation. *live.Hub
// satisfies it.
type Broadcaster interface {
	Broadcast(live.Event)
}

// Handler serves /api/revalidate. Store and Hub are optional.
type Handler struct {
	Secret string
	Pages  Regenerator
	Store  *Store
	Hub    Broadcaster
	Now    func() time.Time
}

// Response is the body of every /api/revalidate reply.
type Response struct {
	Revalidated bool   `json:"revalidated"`
	Path        string `json:"path,omitempty"`
	Now         int64  `json:"now,omitempty"`
	Error       string `json:"error,omitempty"`
}

// RegisterRoutes mounts the endpoint and its history on r.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/api/revalidate", h.ServeHTTP)
	r.Post("/api/revalidate", h.ServeHTTP)
	r.Get("/api/revalidations", h.handleHistory)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Secret == "" {
		writeJSON(w, http.StatusInternalServerError, Response{Error: "revalidation secret is not configured"})
		return
	}
	if !secretMatches(h.Secret, r.FormValue("secret")) {
		writeJSON(w, http.StatusUnauthorized, Response{Error: "invalid secret"})
		return
	}
	path := r.FormValue("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, Response{Error: "path is required"})
		return
	}

	ctx := r.Context()
	if err := h.Pages.Revalidate(ctx, path); err != nil {
		log.Error("revalidation failed", "path", path, "err", err)
		h.record(ctx, Record{Path: path, Status: StatusFailed, Error: err.Error()})
		writeJSON(w, http.StatusInternalServerError, Response{Revalidated: false, Error: err.Error()})
		return
	}

	now := h.now()
	h.record(ctx, Record{Path: path, Status: StatusOK, CreatedAt: now})
	if h.Hub != nil {
		h.Hub.Broadcast(live.Event{Type: "revalidated", Path: path, At: now.UnixMilli()})
	}
	log.Info("revalidated", "path", path)
	writeJSON(w, http.StatusOK, Response{Revalidated: true, Path: path, Now: now.UnixMilli()})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeJSON(w, http.StatusOK, []Record{})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	recs, err := h.Store.Recent(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if recs == nil {
		recs = []Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *Handler) record(ctx context.Context, rec Record) {
	if h.Store == nil {
		return
	}
	if err := h.Store.Log(ctx, rec); err != nil {
		log.Warn("recording revalidation", "path", rec.Path, "err", err)
	}
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func secretMatches(want, got string) bool {
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
