package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/myfinance/internal/http/backup"
	"github.com/MrJamesThe3rd/myfinance/internal/http/bill"
	"github.com/MrJamesThe3rd/myfinance/internal/http/investment"
	"github.com/MrJamesThe3rd/myfinance/internal/http/session"
	"github.com/MrJamesThe3rd/myfinance/internal/http/settings"
	"github.com/MrJamesThe3rd/myfinance/internal/http/summary"
	"github.com/MrJamesThe3rd/myfinance/internal/http/transaction"
)

// Middleware guards the data routes; the session endpoints stay open so
// a client can enroll a PIN and log in.
type Middleware func(http.Handler) http.Handler

func New(
	transactionsV1 *transaction.Handler,
	billsV1 *bill.Handler,
	investmentsV1 *investment.Handler,
	summaryV1 *summary.Handler,
	settingsV1 *settings.Handler,
	sessionV1 *session.Handler,
	backupV1 *backup.Handler,
	guard Middleware,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/session", sessionV1.Routes)

		r.Group(func(r chi.Router) {
			if guard != nil {
				r.Use(guard)
			}

			r.Route("/transactions", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				transactionsV1.Routes(r)
			})

			r.Route("/bills", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				billsV1.Routes(r)
			})

			r.Route("/investments", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				investmentsV1.Routes(r)
			})

			r.Route("/summary", summaryV1.Routes)
			r.Route("/settings", settingsV1.Routes)
			r.Route("/backup", backupV1.Routes)
		})
	})

	return router
}
