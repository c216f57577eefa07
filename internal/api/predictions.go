package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/CampusPulse/Compass/internal/events"
	"github.com/CampusPulse/Compass/internal/metrics"
	"github.com/CampusPulse/Compass/internal/scoring"
	"github.com/CampusPulse/Compass/internal/store"
)

type PredictionsHandler struct {
	ledger   store.Ledger
	engine   *scoring.Engine
	events   events.Client
	validate *validator.Validate
}

func NewPredictionsHandler(l store.Ledger, e *scoring.Engine, ev events.Client) *PredictionsHandler {
	return &PredictionsHandler{ledger: l, engine: e, events: ev, validate: validator.New()}
}

type CreatePredictionRequest struct {
	StudentRef string              `json:"student_ref,omitempty" validate:"omitempty,max=128"`
	Metrics    scoring.MetricInput `json:"metrics" validate:"required,min=1"`
}

type PredictionResponse struct {
	*store.HistoryEntry
	Advisories []scoring.Advisory `json:"advisories,omitempty"`
}

func (h *PredictionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := h.engine.Evaluate(req.Metrics)
	if err != nil {
		writeEvaluateError(w, err)
		return
	}

	entry := &store.HistoryEntry{
		StudentRef: req.StudentRef,
		Metrics:    req.Metrics,
		Result:     result,
	}
	if err := h.ledger.Append(r.Context(), entry); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	metrics.RecordPrediction(string(result.Tier), result.Probability)

	if h.events != nil {
		_ = h.events.Publish(events.SubjectPredictionRecorded(entry.ID.String()), events.PredictionRecordedEvent{
			ID:          entry.ID.String(),
			StudentRef:  entry.StudentRef,
			Probability: result.Probability,
			Tier:        result.Tier,
			Timestamp:   entry.CreatedAt,
		})
	}

	writeJSON(w, http.StatusCreated, PredictionResponse{
		HistoryEntry: entry,
		Advisories:   scoring.CheckAdvisories(req.Metrics),
	})
}

type PreviewResponse struct {
	StudentRef string                    `json:"student_ref,omitempty"`
	Result     *scoring.PredictionResult `json:"result"`
	Advisories []scoring.Advisory        `json:"advisories,omitempty"`
}

func (h *PredictionsHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req CreatePredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := h.engine.Evaluate(req.Metrics)
	if err != nil {
		writeEvaluateError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PreviewResponse{
		StudentRef: req.StudentRef,
		Result:     result,
		Advisories: scoring.CheckAdvisories(req.Metrics),
	})
}

func (h *PredictionsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.HistoryFilter{
		StudentRef: r.URL.Query().Get("student_ref"),
	}
	if s := r.URL.Query().Get("tier"); s != "" {
		tier := scoring.RiskTier(s)
		if !tier.Valid() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tier"})
			return
		}
		filter.Tier = &tier
	}
	if s := r.URL.Query().Get("since"); s != "" {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid since timestamp"})
			return
		}
		filter.Since = &ts
	}
	if s := r.URL.Query().Get("until"); s != "" {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid until timestamp"})
			return
		}
		filter.Until = &ts
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		filter.Limit = n
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid offset"})
			return
		}
		filter.Offset = n
	}

	entries, err := h.ledger.Query(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if entries == nil {
		entries = []*store.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *PredictionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid prediction id"})
		return
	}

	entry, err := h.ledger.Get(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if entry == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "prediction not found"})
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Explain returns the scoring breakdown for a recorded prediction.
// GET /api/v1/predictions/{id}/explain
func (h *PredictionsHandler) Explain(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid prediction id"})
		return
	}

	entry, err := h.ledger.Get(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if entry == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "prediction not found"})
		return
	}

	result := entry.Result
	resp := map[string]interface{}{
		"id":               entry.ID,
		"probability":      result.Probability,
		"tier":             result.Tier,
		"tier_description": result.Tier.Description(),
		"subscores":        result.Subscores,
		"factors":          result.Factors,
		"top_factors":      result.TopFactors,
		"recommendations":  result.Recommendations,
		"advisories":       scoring.CheckAdvisories(entry.Metrics),
		"improvement":      scoring.ImprovementNeeded(result.Probability, h.engine.Tiers().Low),
	}
	if entry.StudentRef != "" {
		resp["student_ref"] = entry.StudentRef
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeEvaluateError(w http.ResponseWriter, err error) {
	metrics.RecordEvaluationError()
	var missing *scoring.MissingMetricError
	var unknown *scoring.UnknownMetricError
	if errors.As(err, &missing) || errors.As(err, &unknown) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
