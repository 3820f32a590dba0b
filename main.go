package main

//go:generate swag init

import (
	"log/slog"
	"os"
	_ "time/tzdata" // AGING_BASIS_TZ on hosts without zoneinfo

	"github.com/joho/godotenv"
	"github.com/satheeshds/gstbill/cmd"
)

// @title           GST Billing API
// @version         1.0.0
// @description     API for issuing GST invoices and credit notes, recording payments and expenses, and GST reporting.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.basic  BasicAuth

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Warn("could not load .env file", "error", err)
	}

	if err := cmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
