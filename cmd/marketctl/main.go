// Command marketctl performs out-of-band maintenance on the marketplace
// store: role assignment, category imports and schema management.
package main

import (
	"context"
	"fmt"
	"os"

	"usedmarket/internal/config"
	"usedmarket/internal/database"
	"usedmarket/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "marketctl",
		Short:         "Maintenance tool for the used product marketplace",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(usersCmd())
	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(dbCmd())

	return rootCmd
}

// session is an open connection to the store for one command run.
type session struct {
	pool   *pgxpool.Pool
	store  *repository.Store
	logger zerolog.Logger
}

func openSession(ctx context.Context) (*session, error) {
	dbCfg, logCfg, err := config.LoadDatabase()
	if err != nil {
		return nil, err
	}

	logger := config.NewLogger(logCfg, "marketctl")

	pool, err := database.NewPool(ctx, dbCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &session{
		pool:   pool,
		store:  repository.NewStore(pool, logger),
		logger: logger,
	}, nil
}

func (s *session) Close() {
	s.pool.Close()
}
