package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/ashwinvk/spendlens/internal/analytics"
	"github.com/ashwinvk/spendlens/internal/budget"
	"github.com/ashwinvk/spendlens/internal/categorize"
	categorizeStore "github.com/ashwinvk/spendlens/internal/categorize/store"
	"github.com/ashwinvk/spendlens/internal/config"
	"github.com/ashwinvk/spendlens/internal/database"
	"github.com/ashwinvk/spendlens/internal/export"
	spendlensHttp "github.com/ashwinvk/spendlens/internal/http"
	analyticsHandler "github.com/ashwinvk/spendlens/internal/http/analytics"
	budgetHandler "github.com/ashwinvk/spendlens/internal/http/budget"
	exportHandler "github.com/ashwinvk/spendlens/internal/http/export"
	importHandler "github.com/ashwinvk/spendlens/internal/http/importcsv"
	txHandler "github.com/ashwinvk/spendlens/internal/http/transaction"
	"github.com/ashwinvk/spendlens/internal/importer"
	"github.com/ashwinvk/spendlens/internal/ledger"
	ledgerStore "github.com/ashwinvk/spendlens/internal/ledger/store"
)

func main() {
	// Missing .env is fine in containerised deployments.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	transferCategories, err := cfg.TransferCategorySet()
	if err != nil {
		slog.Error("invalid analytics config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	opts := analytics.Options{
		TransferCategories: transferCategories,
		SizeThreshold:      cfg.Analytics.SizeThreshold,
	}

	var (
		repo             = ledgerStore.New(db)
		ledgerService    = ledger.NewService(repo)
		categorizeSvc    = categorize.NewService(categorizeStore.New(db))
		importService    = importer.NewService()
		exportService    = export.NewService(ledgerService)
		analyticsService = analytics.NewService(repo, opts)
		budgetService    = budget.NewService(repo, opts)
	)

	var (
		analyticsH = analyticsHandler.NewHandler(analyticsService)
		budgetH    = budgetHandler.NewHandler(budgetService)
		txH        = txHandler.NewHandler(ledgerService)
		importH    = importHandler.NewHandler(importService, ledgerService, categorizeSvc)
		exportH    = exportHandler.NewHandler(exportService)
	)

	router := spendlensHttp.New(analyticsH, budgetH, txH, importH, exportH, cfg.Server.AllowedOrigins)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	server := &http.Server{
		Addr:         port,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
