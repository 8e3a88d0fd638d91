package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/vzahanych/weather-widget/pkg/errors"
)

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "search <city>",
		Short:   "Show the forecast for a city",
		Example: "  weather search New York",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			display := textDisplay{renderer: a.renderer, out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}

			err = a.orchestrator(display).SearchCity(cmd.Context(), strings.Join(args, " "))
			if apperrors.IsCode(err, apperrors.CodeEmptyQuery) {
				return nil
			}
			return err
		},
	}
}
