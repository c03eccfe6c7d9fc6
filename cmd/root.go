package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taazafoods/taaza-cli/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "taaza",
	Short: "Terminal storefront for the Taaza ordering backend",
	Long: `Taaza is a terminal client for the Taaza shopping backend. It registers
a customer session, browses categories and items, builds a cart and
places orders, keeping a local record of everything you ordered.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".taaza.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig reads and validates the configuration for commands that talk
// to the backend.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
