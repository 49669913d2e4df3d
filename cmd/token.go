package main

import (
	"fmt"
	"time"

	"github.com/apexhome/products-manager/config"
	"github.com/apexhome/products-manager/internal/auth/jwt"
	"github.com/spf13/cobra"
)

const defaultTokenTTL = 24 * time.Hour

func tokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an admin token for an operator",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("cannot load a config %v", err.Error())
			}
			ja, err := jwt.New(&cfg.Auth)
			if err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = cfg.Auth.JWTTTL
			}
			if ttl <= 0 {
				ttl = defaultTokenTTL
			}
			t, err := jwt.NewToken(ja, ttl, subject)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), t)
			return nil
		},
	}
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "operator name recorded with administrative actions")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default auth.jwt_ttl or 24h)")
	return cmd
}
