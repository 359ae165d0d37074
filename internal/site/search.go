package site

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/ziadkadry99/termfolio/internal/content"
)

// searchResponse is the JSON response for the /api/search endpoint.
type searchResponse struct {
	Query   string        `json:"query"`
	Results []content.Hit `json:"results"`
}

func (s *Site) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query is required"})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 20 {
		limit = 8
	}

	hits := content.Search(s.content, query, limit)
	if hits == nil {
		hits = []content.Hit{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: query, Results: hits})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
