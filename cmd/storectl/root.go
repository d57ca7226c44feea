package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gisteam.backend/internal/app"
	"gisteam.backend/internal/config"
	"gisteam.backend/pkg/logger"
)

var (
	loadDotenv   = godotenv.Load
	loadCfg      = config.Load
	newContainer = app.New
)

type rootOptions struct {
	envFile string
	backend string
	jsonOut bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "storectl",
		Short: "Maintain the GIS team record store",
		Long: `storectl runs maintenance against the configured object store:
collapsing duplicate records, auditing stored documents, seeding content
producing password hashes for bootstrap accounts and issuing operator
tokens for the admin API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	cmd.PersistentFlags().StringVar(&opts.backend, "backend", "", "override STORE_BACKEND (gcs, redis, sql, memory)")
	cmd.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "print reports as JSON")

	cmd.AddCommand(newReconcileCmd(opts))
	cmd.AddCommand(newAuditCmd(opts))
	cmd.AddCommand(newSeedCmd(opts))
	cmd.AddCommand(newRegisterCmd(opts))
	cmd.AddCommand(newHashCmd(opts))
	cmd.AddCommand(newTokenCmd(opts))

	return cmd
}

// loadConfig applies the env file and flag overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	_ = loadDotenv(o.envFile)
	cfg := loadCfg()
	if o.backend != "" {
		cfg.Store.Backend = o.backend
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Init(cfg.Server.Env)
	return cfg, nil
}

// withContainer opens the store for the duration of fn.
func (o *rootOptions) withContainer(ctx context.Context, fn func(*app.Container) error) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	c, err := newContainer(ctx, cfg, nil)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		_ = c.Close()
		logger.Sync()
	}()
	return fn(c)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
