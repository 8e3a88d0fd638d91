package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vzahanych/weather-widget/internal/orchestrator"
)

func locateCmd() *cobra.Command {
	var (
		loc    orchestrator.StaticLocator
		denied bool
	)

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Show the forecast for a position",
		Long:  `Resolve a latitude and longitude to a city name and show its forecast. The city is not added to the search history.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !denied && !cmd.Flags().Changed("lat") {
				return errors.New("--lat and --lon are required unless --denied is set")
			}

			a, err := buildApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if denied {
				loc.Err = orchestrator.ErrPermissionDenied
			}

			display := textDisplay{renderer: a.renderer, out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
			return a.orchestrator(display).SearchLocation(cmd.Context(), loc)
		},
	}

	cmd.Flags().Float64Var(&loc.Lat, "lat", 0, "latitude in degrees")
	cmd.Flags().Float64Var(&loc.Lon, "lon", 0, "longitude in degrees")
	cmd.Flags().BoolVar(&denied, "denied", false, "behave as if location access was refused")
	cmd.MarkFlagsRequiredTogether("lat", "lon")

	return cmd
}
