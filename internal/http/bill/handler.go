package bill

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/myfinance/internal/bills"
)

type Handler struct {
	svc *bills.Service
}

func NewHandler(svc *bills.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/toggle", h.togglePayment)
}

type billRequest struct {
	Title  string `json:"title"`
	Amount int64  `json:"value"`
	DueDay int    `json:"dueDay"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.Add(r.Context(), bills.CreateParams{
		Title:  req.Title,
		Amount: req.Amount,
		DueDay: req.DueDay,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, b)
}

type billResponse struct {
	bills.Bill
	Status bills.Status `json:"status"`
}

// list returns every bill with its status for the requested month
// (?month=1-12&year=YYYY, defaulting to the current month), plus the
// projected monthly total.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ref := time.Now()

	if m := r.URL.Query().Get("month"); m != "" {
		month, err := strconv.Atoi(m)
		if err != nil || month < 1 || month > 12 {
			http.Error(w, "invalid month", http.StatusBadRequest)
			return
		}

		year := ref.Year()

		if y := r.URL.Query().Get("year"); y != "" {
			year, err = strconv.Atoi(y)
			if err != nil {
				http.Error(w, "invalid year", http.StatusBadRequest)
				return
			}
		}

		ref = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	}

	list, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	payments, err := h.svc.Payments(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	items := make([]billResponse, 0, len(list))
	for _, b := range list {
		items = append(items, billResponse{Bill: b, Status: h.svc.Status(b, payments, ref)})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"bills":        items,
		"monthlyTotal": bills.MonthlyTotal(list),
	})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.Edit(r.Context(), chi.URLParam(r, "id"), bills.CreateParams{
		Title:  req.Title,
		Amount: req.Amount,
		DueDay: req.DueDay,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type toggleRequest struct {
	Month int `json:"month"` // 1-12
	Year  int `json:"year"`
}

func (h *Handler) togglePayment(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Month < 1 || req.Month > 12 {
		http.Error(w, "invalid month", http.StatusBadRequest)
		return
	}

	ref := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.Local)

	payments, err := h.svc.TogglePayment(r.Context(), chi.URLParam(r, "id"), ref)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, payments)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bills.ErrNotFound):
		http.Error(w, "bill not found", http.StatusNotFound)
	case errors.Is(err, bills.ErrEmptyTitle),
		errors.Is(err, bills.ErrInvalidAmount),
		errors.Is(err, bills.ErrInvalidDueDay):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
