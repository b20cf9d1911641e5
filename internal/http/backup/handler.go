package backup

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/myfinance/internal/backup"
)

type Handler struct {
	svc *backup.Service
}

func NewHandler(svc *backup.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/export", h.export)
	r.Post("/import", h.importCSV)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)

	if err := h.svc.ExportCSV(r.Context(), w); err != nil {
		slog.Error("csv export failed", "error", err)
	}
}

type skippedRow struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}

// importCSV reads the request body as a CSV file. The charset is
// auto-detected, so exports from spreadsheet tools work unmodified.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ImportCSV(r.Context(), r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	skipped := make([]skippedRow, 0, len(result.Skipped))
	for _, row := range result.Skipped {
		skipped = append(skipped, skippedRow{Line: row.Line, Error: row.Err.Error()})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"imported": result.Imported,
		"skipped":  skipped,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
