package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/taazafoods/taaza-cli/internal/api"
	"github.com/taazafoods/taaza-cli/internal/shop"
	"github.com/taazafoods/taaza-cli/internal/spinner"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the store's categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client := api.New(cfg.BaseURL, cfg.Timeout())
		ctrl := shop.NewController(client, os.Stdout, shop.Options{
			CountryCode:   cfg.CountryCode,
			CurrencyLabel: cfg.CurrencyLabel,
			Verbose:       verbose,
			Spinner:       spinner.New(),
		})
		return ctrl.FetchCategories(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
