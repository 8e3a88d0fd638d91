package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vzahanych/weather-widget/internal/server"
	"github.com/vzahanych/weather-widget/internal/widget"
)

func serverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Serve the weather widget page",
		Long:  `Start the HTTP server hosting the weather widget, its JSON API, health probes and metrics.`,
		Args:  cobra.NoArgs,
		RunE:  runServer,
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	a, err := buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	log.Info("Starting weather widget server",
		zap.String("config_path", configPath),
		zap.String("history_driver", a.cfg.History.Driver),
		zap.Bool("telemetry_enabled", a.cfg.Telemetry.Enabled),
		zap.Int("server_port", a.cfg.Server.Port))

	w := widget.New(a.renderer, a.store)

	srv := server.NewServer(a.cfg.Server, server.Deps{
		Orchestrator: a.orchestrator(w),
		Widget:       w,
		History:      a.store,
		Metrics:      a.metrics,
	}, a.logger, tele)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		log.Error("Server error", zap.Error(err))
		return err
	case <-cmd.Context().Done():
		log.Info("Shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Error during server shutdown", zap.Error(err))
			return err
		}

		log.Info("Server shutdown complete")
		return nil
	}
}
