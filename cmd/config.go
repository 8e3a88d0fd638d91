package cmd

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vzahanych/weather-widget/internal/config"
)

const masked = "redacted"

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *config.GetConfig()
			if cfg.OpenWeather.APIKey != "" {
				cfg.OpenWeather.APIKey = masked
			}
			if cfg.History.Password != "" {
				cfg.History.Password = masked
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
