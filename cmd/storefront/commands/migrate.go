package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// migrateCmd creates or updates the storage schema
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Create tables (sqlite, postgres) or indexes (mongo) for products, carts,
orders and users. Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore(store)

		if err := store.Migrate(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Schema is up to date (%s)\n", cfg.DBDriver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
