package summary

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/myfinance/internal/ledger"
	"github.com/MrJamesThe3rd/myfinance/internal/report"
)

// topCategories is how many category slices the summary chart shows
// before everything else collapses into Outros.
const topCategories = 5

type Handler struct {
	ledger *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{ledger: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.summary)
}

type response struct {
	Income   int64           `json:"income"`
	Expense  int64           `json:"expense"`
	Balance  int64           `json:"balance"`
	Buckets  []report.Bucket `json:"buckets"`
	Ranking  []report.Rank   `json:"ranking"`
	Start    string          `json:"start"`
	End      string          `json:"end"`
	Filtered int             `json:"filtered"`
}

// summary aggregates the transactions inside ?start=DD/MM/YYYY and
// ?end=DD/MM/YYYY, defaulting to the current calendar month.
func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	if v := r.URL.Query().Get("start"); v != "" {
		d, err := report.ParseDate(v)
		if err != nil {
			http.Error(w, "invalid start date, want DD/MM/YYYY", http.StatusBadRequest)
			return
		}

		start = d
	}

	if v := r.URL.Query().Get("end"); v != "" {
		d, err := report.ParseDate(v)
		if err != nil {
			http.Error(w, "invalid end date, want DD/MM/YYYY", http.StatusBadRequest)
			return
		}

		end = d
	}

	txs, err := h.ledger.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	filtered := report.FilterByRange(txs, start, end)
	agg := report.Aggregate(filtered)

	buckets := report.ChartBuckets(agg.ByCategory, topCategories)
	if buckets == nil {
		buckets = []report.Bucket{}
	}

	ranking := report.Ranking(agg.ByCategory, agg.Expense)
	if ranking == nil {
		ranking = []report.Rank{}
	}

	writeJSON(w, http.StatusOK, response{
		Income:   agg.Income,
		Expense:  agg.Expense,
		Balance:  agg.Balance,
		Buckets:  buckets,
		Ranking:  ranking,
		Start:    start.Format("02/01/2006"),
		End:      end.Format("02/01/2006"),
		Filtered: len(filtered),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
