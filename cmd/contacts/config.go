package main

import (
	"github.com/deppfellow/contacts-service/internal/lib/utils"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	Long: `Print the configuration the server would start with, after every source
has been applied. Secrets are masked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return utils.PrintJSON(cmd.OutOrStdout(), cfg.Redacted())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
