package main

import (
	"github.com/deppfellow/contacts-service/internal/config"
	"github.com/spf13/cobra"
)

// configFile is the --config flag value.
var configFile string

var rootCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Contacts CRUD service",
	Long: `contacts serves create, read, update and delete operations over an
in-memory collection of contacts through a JSON HTTP API.

Configuration is read from built-in defaults, appsettings.json, CONTACTS_*
environment variables and the flags below, in increasing precedence.`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "settings file (default "+config.DefaultFile+" when present)")
	flags.String("host", "", "host to bind to")
	flags.String("port", "8080", "port to listen on")
	flags.String("env", "development", "environment: local, development, staging, production or test")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-format", "json", "log format: json or console")
}

// loadConfig resolves the configuration for cmd, flags included.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.LoadConfig(config.Options{
		File:  configFile,
		Flags: cmd.Flags(),
	})
}
