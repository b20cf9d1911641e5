package settings

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/myfinance/internal/settings"
)

type Handler struct {
	svc *settings.Service
}

func NewHandler(svc *settings.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.update)
}

type snapshotResponse struct {
	HideAmounts bool           `json:"hideAmounts"`
	Theme       settings.Theme `json:"theme"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Load(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, snapshotResponse{HideAmounts: snap.HideAmounts, Theme: snap.Theme})
}

type updateRequest struct {
	HideAmounts *bool           `json:"hideAmounts"`
	Theme       *settings.Theme `json:"theme"`
}

// update applies the fields present in the request; absent fields keep
// their stored value.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Theme != nil {
		switch *req.Theme {
		case settings.ThemeDark, settings.ThemeLight:
		default:
			http.Error(w, "invalid theme", http.StatusBadRequest)
			return
		}

		if err := h.svc.SetTheme(r.Context(), *req.Theme); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	if req.HideAmounts != nil {
		if err := h.svc.SetHideAmounts(r.Context(), *req.HideAmounts); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	snap, err := h.svc.Load(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, snapshotResponse{HideAmounts: snap.HideAmounts, Theme: snap.Theme})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
