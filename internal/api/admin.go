package api

import (
	"net/http"

	"github.com/CampusPulse/Compass/internal/store"
)

type AdminHandler struct {
	ledger store.Ledger
}

func NewAdminHandler(l store.Ledger) *AdminHandler {
	return &AdminHandler{ledger: l}
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ledger.Stats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
