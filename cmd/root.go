package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vzahanych/weather-widget/internal/config"
	apperrors "github.com/vzahanych/weather-widget/pkg/errors"
	"github.com/vzahanych/weather-widget/pkg/logger"
	"github.com/vzahanych/weather-widget/pkg/telemetry"
)

var (
	configPath string
	log        *logger.Logger
	tele       *telemetry.Telemetry
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weather",
		Short: "City weather lookup widget",
		Long: `Look up the current conditions and a five day outlook for a city, by name or by position,
using the OpenWeather geocoding and forecast APIs. Searched cities are remembered.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeServices(cmd.Context())
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default: ./config.yaml)")

	cmd.AddCommand(serverCmd())
	cmd.AddCommand(searchCmd())
	cmd.AddCommand(locateCmd())
	cmd.AddCommand(historyCmd())
	cmd.AddCommand(configCmd())

	return cmd
}

func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			if log != nil {
				log.Info("Received shutdown signal", zap.String("signal", sig.String()))
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	err := rootCmd().ExecuteContext(ctx)

	// Alerts were already shown to the user.
	if err != nil && apperrors.UserMessage(err) == "" {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}

	if tele != nil {
		if shutdownErr := tele.Shutdown(context.Background()); shutdownErr != nil && log != nil {
			log.Warn("Failed to shutdown telemetry", zap.Error(shutdownErr))
		}
	}
	if log != nil {
		_ = log.Sync()
	}

	return err
}

func initializeServices(ctx context.Context) error {
	// 1. Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Set config
	// Having config in atomic allows changing it during runtime
	config.SetConfig(cfg)

	// 3. Initialize logger
	log, err = logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// 4. Telemetry is optional; fall back to a disabled instance
	tele, err = telemetry.New(ctx, cfg.Telemetry, cfg.Version)
	if err != nil {
		log.Warn("Failed to initialize telemetry", zap.Error(err))
		tele = &telemetry.Telemetry{}
	}

	return nil
}
