// Package app implements the main application commands.
package app

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/config"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/logger"
)

var (
	configPath string // Path to the configuration directory

	rootCmd = &cobra.Command{
		Use:   "shortuuid-field",
		Short: "shortuuid-field generates and tracks prefixed short uuid columns",
		Long: `shortuuid-field manages model fields whose default value is a prefixed,
random short uuid. It generates values, describes field configurations,
records them for migrations and serves them over a small JSON api.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "Path to the config directory holding main.toml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute() //nolint:wrapcheck
}

// loadConfig reads the configuration and initialises the logger.
func loadConfig() (config.Config, error) {
	cfg, err := config.ReadConfig(configPath)
	if err != nil {
		return cfg, err //nolint:wrapcheck
	}

	if err = logger.Init(cfg.Log); err != nil {
		return cfg, errors.Wrap(err, "failed to init logger")
	}

	return cfg, nil
}
