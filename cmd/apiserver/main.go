// API server entry point for the measurement prediction service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/app"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/config"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/logging"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	// A .env file, when present, feeds the environment-driven config keys.
	_ = godotenv.Load()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		OutputPaths: cfg.Log.OutputPaths,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build application", logging.Err(err))
		os.Exit(1)
	}

	logger.Info("starting measurement service",
		logging.String("addr", a.Addr()),
		logging.String("storage", cfg.Storage.Driver))

	if err := a.Run(ctx); err != nil {
		logger.Error("server exited with error", logging.Err(err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// loadConfig reads the config file when it exists, otherwise builds the
// configuration from environment variables and defaults.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err == nil {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}
