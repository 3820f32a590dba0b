// Package cmd holds the gstbill command line.
package cmd

import (
	"log/slog"

	"github.com/satheeshds/gstbill/config"
	"github.com/spf13/cobra"
)

var (
	version = "dev"

	cfg         *config.Config
	databaseURL string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gstbill",
		Short:         "GST invoicing and receivables service",
		Long:          "gstbill issues GST invoices and credit notes, tracks payments and expenses, and reports receivables aging, profit and loss and GST liability.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(); err != nil {
				return err
			}
			if databaseURL != "" {
				cfg.DatabaseURL = databaseURL
			}
			slog.SetDefault(cfg.Logger())
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Postgres connection URL (overrides DATABASE_URL)")
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	return cmd
}

func Execute() error {
	return newRootCmd().Execute()
}
