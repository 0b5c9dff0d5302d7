package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/app"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/config"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/logging"
)

// NewServeCmd creates the serve command, which runs the API server in the
// foreground until interrupted.
func NewServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the measurement prediction API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := rootOptions(cmd)

			// Values from a .env file feed the environment-driven config keys.
			_ = godotenv.Load()

			cfg, err := loadServeConfig(opts.ConfigPath)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if opts.LogLevel != "" {
				cfg.Log.Level = opts.LogLevel
			}

			logger, err := logging.NewLogger(logging.Config{
				Level:       cfg.Log.Level,
				Format:      cfg.Log.Format,
				OutputPaths: cfg.Log.OutputPaths,
			})
			if err != nil {
				return err
			}
			logging.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg, logger)
			if err != nil {
				return err
			}

			logger.Info("starting service",
				logging.String("version", Version),
				logging.String("addr", a.Addr()),
				logging.String("storage", cfg.Storage.Driver))
			return a.Run(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP server port (overrides config)")
	return cmd
}

// loadServeConfig loads the config file when one is given or found, falling
// back to environment variables and defaults.
func loadServeConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		return cfg, nil
	}
	if cfg, err := config.Load("configs/config.yaml"); err == nil {
		return cfg, nil
	}
	return config.LoadFromEnv()
}
