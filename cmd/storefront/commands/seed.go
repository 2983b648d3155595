package commands

import (
	"fmt"

	"storefront/internal/services"

	"github.com/spf13/cobra"
)

// seedCmd loads the demonstration catalog into an empty store
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demonstration catalog",
	Long: `Load the demonstration products when the catalog is empty. A catalog that
already has products is left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore(store)

		if err := store.Migrate(cmd.Context()); err != nil {
			return err
		}
		if err := services.NewProductService(store.Products).EnsureSeeded(cmd.Context()); err != nil {
			return err
		}

		n, err := store.Products.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Catalog holds %d products\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
