package catalog

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Handler exposes catalog search over HTTP.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler wires the handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes mounts the catalog endpoints on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/catalog/components/search", h.handleSearch)
	r.Post("/catalog/components/reindex", h.handleReindex)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 100 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	hits, err := h.service.SearchComponents(query, limit)
	if err != nil {
		h.logger.Error("component search failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"hits": hits})
}

func (h *Handler) handleReindex(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RebuildSearchIndex(r.Context()); err != nil {
		h.logger.Error("search reindex failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "reindex failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reindexed": true})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
