package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront - e-commerce REST backend",
	Long: `Storefront serves a product catalog, per-user carts with stock reservation,
an order ledger and user accounts over a JSON REST API.

Settings are read from the environment (APP_PORT, DB_DRIVER, DATABASE_DSN, JWT_SECRET, ...)
and optionally from a config file.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (.env, .yaml, .json)")
}

// openStore loads configuration and opens the configured storage backend.
func openStore(ctx context.Context) (*config.Config, *database.Store, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, err
	}

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	store, err := database.Open(openCtx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, store, nil
}

func closeStore(store *database.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Close(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error closing database: %v\n", err)
	}
}
