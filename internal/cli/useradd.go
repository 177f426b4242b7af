package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"speed-trivia-service/internal/auth"
	"speed-trivia-service/internal/config"
	"speed-trivia-service/internal/infra/postgres"
)

// NewUserAddCmd creates or rotates an admin console account. Re-running
// with an existing email replaces the password.
func NewUserAddCmd(configPath *string) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "useradd",
		Short: "Create or update an admin console account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return fmt.Errorf("both --email and --password are required")
			}
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}

			db := postgres.Connect(cfg.Postgres.URL)
			defer db.Close()
			store := postgres.NewStore(db)

			op, err := store.CreateOperator(cmd.Context(), email, hash)
			if err != nil {
				return err
			}
			log.Printf("operator %s ready", op.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "operator email")
	cmd.Flags().StringVar(&password, "password", "", "operator password")
	return cmd
}
