package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/scholarship-tracker/internal/db"
)

var promoteCmd = &cobra.Command{
	Use:   "promote [email]",
	Short: "Grant a user the admin role",
	Long:  `Grant the admin role to the user with the given email address. Admin users can review applications and create scholarships.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPromote,
}

func init() {
	rootCmd.AddCommand(promoteCmd)
}

func runPromote(cmd *cobra.Command, args []string) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	email := args[0]
	user, err := database.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("no user with email %s", email)
	}
	if user.Role == db.RoleAdmin {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is already an admin\n", email)
		return nil
	}

	if err := database.UpdateUserRole(ctx, user.ID, db.RoleAdmin); err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Promoted %s to admin\n", email)
	return nil
}
