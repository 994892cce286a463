package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/shared"
	"github.com/rentals/backend/internal/infrastructure/auth"
	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	var (
		userID string
		role   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a signed access token for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadRuntime()
			if err != nil {
				return err
			}
			if cfg.App.Env == "production" {
				return fmt.Errorf("refusing to mint tokens in production")
			}

			r, err := shared.ParseRole(role)
			if err != nil {
				return err
			}
			id := uuid.New()
			if userID != "" {
				if id, err = uuid.Parse(userID); err != nil {
					return fmt.Errorf("invalid --user-id: %w", err)
				}
			}

			token, expiresAt, err := auth.NewJWTService(cfg.JWT).GenerateToken(id, r, ttl)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "user_id:    %s\n", id)
			fmt.Fprintf(out, "role:       %s\n", r)
			fmt.Fprintf(out, "expires_at: %s\n", expiresAt.Format(time.RFC3339))
			fmt.Fprintf(out, "token:      %s\n", token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user-id", "", "User ID to embed (random when empty)")
	cmd.Flags().StringVar(&role, "role", string(shared.RoleTenant), "Role: TENANT, OWNER or ADMIN")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (defaults to jwt.access_token_expiration)")
	return cmd
}
