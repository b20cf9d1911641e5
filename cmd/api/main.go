package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/myfinance/internal/auth"
	"github.com/MrJamesThe3rd/myfinance/internal/backup"
	"github.com/MrJamesThe3rd/myfinance/internal/bills"
	"github.com/MrJamesThe3rd/myfinance/internal/config"
	myfinanceHttp "github.com/MrJamesThe3rd/myfinance/internal/http"
	backupHandler "github.com/MrJamesThe3rd/myfinance/internal/http/backup"
	billHandler "github.com/MrJamesThe3rd/myfinance/internal/http/bill"
	investmentHandler "github.com/MrJamesThe3rd/myfinance/internal/http/investment"
	sessionHandler "github.com/MrJamesThe3rd/myfinance/internal/http/session"
	settingsHandler "github.com/MrJamesThe3rd/myfinance/internal/http/settings"
	summaryHandler "github.com/MrJamesThe3rd/myfinance/internal/http/summary"
	txHandler "github.com/MrJamesThe3rd/myfinance/internal/http/transaction"
	"github.com/MrJamesThe3rd/myfinance/internal/investment"
	"github.com/MrJamesThe3rd/myfinance/internal/kvstore"
	"github.com/MrJamesThe3rd/myfinance/internal/kvstore/memory"
	"github.com/MrJamesThe3rd/myfinance/internal/kvstore/postgres"
	"github.com/MrJamesThe3rd/myfinance/internal/kvstore/sqlite"
	"github.com/MrJamesThe3rd/myfinance/internal/ledger"
	"github.com/MrJamesThe3rd/myfinance/internal/settings"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	var (
		ledgerService     = ledger.NewService(store)
		billService       = bills.NewService(store)
		investmentService = investment.NewService(store)
		settingsService   = settings.NewService(store)
		authService       = auth.NewService(store, cfg.Auth.SessionSecret)
		backupService     = backup.NewService(store)
	)

	var (
		transactionH = txHandler.NewHandler(ledgerService)
		billH        = billHandler.NewHandler(billService)
		investmentH  = investmentHandler.NewHandler(investmentService)
		summaryH     = summaryHandler.NewHandler(ledgerService)
		settingsH    = settingsHandler.NewHandler(settingsService)
		sessionH     = sessionHandler.NewHandler(authService)
		backupH      = backupHandler.NewHandler(backupService)
	)

	guard, err := buildGuard(cfg, authService)
	if err != nil {
		slog.Error("failed to set up auth", "error", err)
		os.Exit(1)
	}

	router := myfinanceHttp.New(transactionH, billH, investmentH, summaryH, settingsH, sessionH, backupH, guard)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "storage", cfg.Storage.Driver)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) (kvstore.Store, func(), error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		s, err := sqlite.Open(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}

		return s, func() { _ = s.Close() }, nil
	case "postgres":
		s, err := postgres.Open(cfg.ConnectionString())
		if err != nil {
			return nil, nil, err
		}

		return s, func() { _ = s.Close() }, nil
	case "memory":
		return memory.New(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// buildGuard picks the middleware protecting the data routes: Firebase
// token checks when credentials are configured, PIN sessions when
// AUTH_REQUIRE_SESSION is set, or nothing.
func buildGuard(cfg *config.Config, authService *auth.Service) (myfinanceHttp.Middleware, error) {
	if cfg.Firebase.CredentialsFile != "" {
		verifier, err := auth.NewFirebaseVerifier(context.Background(), cfg.Firebase.CredentialsFile)
		if err != nil {
			return nil, err
		}

		return verifier.Middleware, nil
	}

	if cfg.Auth.RequireSession {
		return authService.Middleware, nil
	}

	return nil, nil
}
