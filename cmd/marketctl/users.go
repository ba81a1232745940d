package main

import (
	"fmt"

	"usedmarket/internal/repository"

	"github.com/spf13/cobra"
)

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}

	cmd.AddCommand(setRoleCmd())

	return cmd
}

// setRoleCmd assigns roles. The API never accepts a role from clients, so
// this is the only way to create an admin.
func setRoleCmd() *cobra.Command {
	var unset bool

	cmd := &cobra.Command{
		Use:   "set-role [email] [role]",
		Short: "Assign a role to an existing user",
		Example: `  marketctl users set-role alice@example.com admin
  marketctl users set-role alice@example.com --clear`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := args[0]
			role := ""
			switch {
			case unset && len(args) == 2:
				return fmt.Errorf("--clear takes no role argument")
			case !unset && len(args) != 2:
				return fmt.Errorf("a role is required unless --clear is given")
			case !unset:
				role = args[1]
			}

			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := repository.NewUserRepository(s.store).SetRole(cmd.Context(), email, role)
			if err != nil {
				return fmt.Errorf("failed to set role: %w", err)
			}
			if res.MatchedCount == 0 {
				return fmt.Errorf("no user with email %s", email)
			}

			if role == "" {
				role = "(none)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s role set to %s\n", email, role)
			s.logger.Info().Str("email", email).Str("role", role).Msg("role updated")
			return nil
		},
	}

	cmd.Flags().BoolVar(&unset, "clear", false, "remove the role instead of setting one")

	return cmd
}
