package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gisteam.backend/pkg/jwt"
)

func newTokenCmd(opts *rootOptions) *cobra.Command {
	var (
		operator string
		ttl      time.Duration
	)
	cmd := &cobra.Command{
		Use:     "token",
		Short:   "Issue a short-lived operator token for the admin API",
		Long:    "Signs a token with OPERATOR_TOKEN_SECRET. The TTL defaults to OPERATOR_TOKEN_TTL.",
		Example: "  storectl token --operator alex --ttl 30m",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = cfg.Security.OperatorTokenTTL
			}
			token, err := jwt.NewOperatorTokenService(cfg.Security.OperatorTokenSecret).Issue(operator, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&operator, "operator", "", "name recorded as the token subject (required)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default OPERATOR_TOKEN_TTL)")
	_ = cmd.MarkFlagRequired("operator")
	return cmd
}
