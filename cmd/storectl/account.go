package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"gisteam.backend/internal/app"
	"gisteam.backend/internal/domain/entities"
	"gisteam.backend/pkg/crypto"
)

// readSecret returns the first line of r without its line ending.
func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	secret := strings.TrimRight(line, "\r\n")
	if secret == "" {
		return "", errors.New("expected a password on stdin")
	}
	return secret, nil
}

func newRegisterCmd(opts *rootOptions) *cobra.Command {
	var input entities.CreateAccountInput
	cmd := &cobra.Command{
		Use:     "register",
		Short:   "Create an account, reading the password from stdin",
		Example: `  printf '%s\n' "$ADMIN_PASSWORD" | storectl register --username admin --email admin@example.org`,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readSecret(cmd.InOrStdin())
			if err != nil {
				return err
			}
			input.Password = password
			return opts.withContainer(cmd.Context(), func(c *app.Container) error {
				account, err := c.AccountUsecase.Register(cmd.Context(), &input)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "account %s created for %s\n", account.ID, account.Username)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&input.Username, "username", "", "login name (required)")
	cmd.Flags().StringVar(&input.Email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&input.FirstName, "first-name", "", "")
	cmd.Flags().StringVar(&input.LastName, "last-name", "", "")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newHashCmd(opts *rootOptions) *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Hash a password read from stdin",
		Long:  "Prints a bcrypt hash suitable for a stored password_hash. The cost defaults to BCRYPT_COST.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cost == 0 {
				cfg, err := opts.loadConfig()
				if err != nil {
					return err
				}
				cost = cfg.Security.BcryptCost
			}
			hasher, err := crypto.NewPasswordHasher(cost)
			if err != nil {
				return err
			}
			password, err := readSecret(cmd.InOrStdin())
			if err != nil {
				return err
			}
			hash, err := hasher.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", 0, "bcrypt cost (default BCRYPT_COST)")
	return cmd
}
