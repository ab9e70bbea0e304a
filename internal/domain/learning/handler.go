package learning

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avsuite/av-cost-estimator/pkg/metrics"
)

// Handler exposes the learning engine over HTTP: prediction, feedback
// ingestion, and the admin surface.
type Handler struct {
	store   *Store
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewHandler wires the handler.
func NewHandler(store *Store, m *metrics.Metrics, logger *slog.Logger) *Handler {
	return &Handler{store: store, metrics: m, logger: logger}
}

// RegisterRoutes mounts the learning endpoints on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/learning/predict", h.handlePredict)
	r.Post("/learning/feedback", h.handleFeedback)
	r.Get("/learning/stats", h.handleStats)
	r.Get("/learning/debug", h.handleDebug)
	r.Post("/learning/admin/retrain", h.handleForceRetrain)
	r.Delete("/learning/admin/data", h.handleClearData)
}

type predictRequest struct {
	Description string `json:"description"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	Region      string `json:"region,omitempty"`
}

func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prediction := h.store.Predict(req.Description, req.Make, req.Model, req.Region)

	result := "matched"
	if prediction.Type == Uncategorized {
		result = "uncategorized"
	}
	h.metrics.Predictions.WithLabelValues(result).Inc()

	writeJSON(w, http.StatusOK, prediction)
}

func (h *Handler) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var fb Feedback
	if err := json.NewDecoder(r.Body).Decode(&fb); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fb.UserCorrection.Action == "" {
		writeError(w, http.StatusBadRequest, "user_correction.action is required")
		return
	}

	before := h.store.ModelVersion()
	if err := h.store.AddFeedback(fb); err != nil {
		h.logger.Error("failed to record feedback", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "failed to record feedback")
		return
	}

	h.metrics.FeedbackItems.WithLabelValues(string(fb.UserCorrection.Action)).Inc()
	after := h.store.ModelVersion()
	if after != before {
		h.metrics.Retrains.Inc()
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"recorded":      true,
		"model_version": after,
		"retrained":     after != before,
	})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Stats())
}

func (h *Handler) handleDebug(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.DebugState())
}

func (h *Handler) handleForceRetrain(w http.ResponseWriter, r *http.Request) {
	before := h.store.ModelVersion()
	if err := h.store.ForceRetrain(); err != nil {
		h.logger.Error("force retrain failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "retrain failed")
		return
	}

	after := h.store.ModelVersion()
	if after != before {
		h.metrics.Retrains.Inc()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"model_version": after,
		"retrained":     after != before,
	})
}

func (h *Handler) handleClearData(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ClearLearningData(); err != nil {
		h.logger.Error("failed to clear learning data", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "failed to clear learning data")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cleared": true})
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
