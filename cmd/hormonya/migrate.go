package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hormonya/hormonya/internal/config"
	"github.com/hormonya/hormonya/internal/migrations"
)

func newMigrateCmd() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long: `Apply pending schema migrations to DATABASE_URL (or --database-url).
SQLite and PostgreSQL URLs are supported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if databaseURL == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				databaseURL = cfg.DatabaseURL
			}

			db, dialect, err := migrations.Open(databaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := migrations.Run(cmd.Context(), db, dialect, nil); err != nil {
				return err
			}

			applied, err := migrations.Applied(cmd.Context(), db)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range applied {
				fmt.Fprintf(out, "applied %s\n", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "database URL, defaults to DATABASE_URL")
	return cmd
}
