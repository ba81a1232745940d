package main

import (
	"fmt"

	"usedmarket/internal/database"

	"github.com/spf13/cobra"
)

func dbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database utilities",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "ping",
		Short: "Check that the configured database is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			var name string
			if err := s.pool.QueryRow(cmd.Context(), "SELECT current_database()").Scan(&name); err != nil {
				return fmt.Errorf("query failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Successfully connected to database: %s\n", name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the collection tables and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := database.Migrate(cmd.Context(), s.pool, s.logger); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	})

	return cmd
}
