package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/Mdmuzammil18/invoice-app/internal/auth"
	"github.com/Mdmuzammil18/invoice-app/internal/config"
	appHttp "github.com/Mdmuzammil18/invoice-app/internal/http"
	authHandler "github.com/Mdmuzammil18/invoice-app/internal/http/auth"
	invoiceHandler "github.com/Mdmuzammil18/invoice-app/internal/http/invoice"
	"github.com/Mdmuzammil18/invoice-app/internal/invoice"
	invStore "github.com/Mdmuzammil18/invoice-app/internal/invoice/store"
	"github.com/Mdmuzammil18/invoice-app/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dataDir, err := cfg.DataDir()
	if err != nil {
		slog.Error("failed to resolve data directory", "error", err)
		os.Exit(1)
	}

	store, err := storage.NewFileStore(dataDir)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	var (
		invoiceService = invoice.NewService(invStore.New(store))
		gate           = auth.NewGate(store)
	)

	var (
		authH    = authHandler.NewHandler(gate, cfg.Session.Secret, cfg.Session.TTL)
		invoiceH = invoiceHandler.NewHandler(invoiceService)
	)

	router := appHttp.New(authH, invoiceH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "data_dir", dataDir)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
