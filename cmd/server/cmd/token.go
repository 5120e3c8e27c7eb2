package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"eventcatalog/config"
	"eventcatalog/internal/adapters/auth"
	"eventcatalog/internal/domain"
)

func newTokenCommand() *cobra.Command {
	var (
		subject string
		email   string
		expiry  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an ADMIN token signed with JWT_SECRET",
		Long: `Issue an ADMIN token for operators and scripts, signed with the configured JWT_SECRET.

Examples:
  server token --expiry 1h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			if email == "" {
				email = cfg.AdminEmail
			}
			if expiry <= 0 {
				expiry = cfg.JWTExpiry
			}
			token, err := auth.NewJWT(cfg.JWTSecret).Issue(subject, email, []string{domain.RoleAdmin}, expiry)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject")
	cmd.Flags().StringVar(&email, "email", "", "token email (default: $ADMIN_EMAIL)")
	cmd.Flags().DurationVar(&expiry, "expiry", 0, "token lifetime (default: $JWT_EXPIRY)")
	return cmd
}
