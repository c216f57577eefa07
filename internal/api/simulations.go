package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/CampusPulse/Compass/internal/events"
	"github.com/CampusPulse/Compass/internal/metrics"
	"github.com/CampusPulse/Compass/internal/scoring"
	"github.com/CampusPulse/Compass/internal/store"
)

type SimulationsHandler struct {
	ledger   store.Ledger
	engine   *scoring.Engine
	events   events.Client
	validate *validator.Validate
}

func NewSimulationsHandler(l store.Ledger, e *scoring.Engine, ev events.Client) *SimulationsHandler {
	return &SimulationsHandler{ledger: l, engine: e, events: ev, validate: validator.New()}
}

type SimulationRequest struct {
	StudentRef string              `json:"student_ref,omitempty" validate:"omitempty,max=128"`
	Metrics    scoring.MetricInput `json:"metrics" validate:"required,min=1"`
	Overrides  map[string]float64  `json:"overrides,omitempty"`
	Commit     bool                `json:"commit,omitempty"`
}

type SimulationResponse struct {
	*scoring.SimulationResult
	RecordedID *uuid.UUID `json:"recorded_id,omitempty"`
}

// Create runs a what-if simulation. With commit:true the simulated
// result is appended to the ledger as a regular prediction; otherwise
// the ledger is untouched.
func (h *SimulationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sim, err := h.engine.Simulate(req.Metrics, req.Overrides)
	if err != nil {
		writeEvaluateError(w, err)
		return
	}

	metrics.RecordSimulation(req.Commit)

	eventID := uuid.New()
	var recordedID *uuid.UUID
	if req.Commit {
		entry := &store.HistoryEntry{
			StudentRef: req.StudentRef,
			Metrics:    sim.Metrics,
			Result:     sim.Simulated,
		}
		if err := h.ledger.Append(r.Context(), entry); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		eventID = entry.ID
		recordedID = &entry.ID
		metrics.RecordPrediction(string(sim.Simulated.Tier), sim.Simulated.Probability)
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectPredictionSimulated(eventID.String()), events.SimulationRunEvent{
			ID:                   eventID.String(),
			StudentRef:           req.StudentRef,
			BaselineProbability:  sim.Baseline.Probability,
			SimulatedProbability: sim.Simulated.Probability,
			Delta:                sim.Delta,
			TierChanged:          sim.TierChanged,
			Committed:            req.Commit,
			Timestamp:            time.Now().UTC(),
		})
	}

	writeJSON(w, http.StatusOK, SimulationResponse{
		SimulationResult: sim,
		RecordedID:       recordedID,
	})
}
