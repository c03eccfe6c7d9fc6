package cmd

import (
	"github.com/spf13/cobra"

	"github.com/taazafoods/taaza-cli/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Configure taaza with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the backend endpoint and local preferences, and writes a .taaza.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
