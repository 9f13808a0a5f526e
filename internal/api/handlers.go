package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marginscope/marginscope/internal/analytics"
	"github.com/marginscope/marginscope/internal/dataset"
	"github.com/marginscope/marginscope/internal/logging"
	"github.com/marginscope/marginscope/internal/reports"
)

// Handler serves reports computed from an immutable dataset snapshot.
// Nothing mutates after construction, so every method is safe for
// concurrent use.
type Handler struct {
	recs  []dataset.Record
	stats analytics.Stats
}

// NewHandler creates a handler over the snapshot.
func NewHandler(recs []dataset.Record) *Handler {
	return &Handler{
		recs:  recs,
		stats: analytics.Summarize(recs),
	}
}

// Routes mounts the versioned API endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/reports", h.listReports)
	r.Get("/reports/{name}", h.getReport)
	r.Get("/dataset/stats", h.datasetStats)
}

type reportInfo struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Columns     []string `json:"columns"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) listReports(w http.ResponseWriter, r *http.Request) {
	defs := reports.All()
	infos := make([]reportInfo, 0, len(defs))
	for _, def := range defs {
		infos = append(infos, reportInfo{
			Name:        def.Name,
			Title:       def.Title,
			Description: def.Description,
			Columns:     def.Columns,
		})
	}

	respondJSON(w, http.StatusOK, infos)
}

func (h *Handler) getReport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	def, err := reports.Get(name)
	if err != nil {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, def.Build(h.recs))
}

func (h *Handler) datasetStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.stats)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error().Err(err).Msg("Failed to encode response")
	}
}
