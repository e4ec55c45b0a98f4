package main

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/storefront/internal/database"
	"github.com/spf13/cobra"
)

const migrateTimeout = time.Minute

var migrateStatusOnly bool

// storefront migrate: create missing tables and exit.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database tables if they do not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, loggerService, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
		defer cancel()

		if migrateStatusOnly {
			status, err := database.Status(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to read schema version: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "current: %d\nlatest:  %d\n", status.Current, status.Latest)
			return nil
		}

		if err := database.Migrate(ctx, &log, cfg); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateStatusOnly, "status", false, "print the schema version and exit")
}
