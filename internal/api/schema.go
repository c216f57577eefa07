package api

import (
	"net/http"

	"github.com/CampusPulse/Compass/internal/scoring"
)

type SchemaHandler struct {
	engine *scoring.Engine
}

func NewSchemaHandler(e *scoring.Engine) *SchemaHandler {
	return &SchemaHandler{engine: e}
}

// Get returns the metric catalog plus the scoring parameters in
// effect, enough for a client to render an input form.
func (h *SchemaHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"metrics":           h.engine.Schema(),
		"categories":        scoring.Categories,
		"weights":           h.engine.Weights(),
		"tiers":             h.engine.Tiers(),
		"healthy_threshold": h.engine.HealthyThreshold(),
	})
}
