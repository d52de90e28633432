package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/briangreenhill/fittrack/internal/config"
	"github.com/briangreenhill/fittrack/internal/logging"
	"github.com/briangreenhill/fittrack/internal/metrics"
	"github.com/briangreenhill/fittrack/internal/workout"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, closer, err := logging.New(logging.LoggerSetupParams{
		Output:      os.Stderr,
		LogFileName: cfg.Log.File,
		LogLevel:    cfg.Log.Level,
		JSON:        cfg.Log.JSON,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	if err := run(os.Stdout, flag.Args(), cfg, logger); err != nil {
		logger.Error("Error running fittrack", slog.Any("error", err))
		closer.Close()
		os.Exit(1)
	}
}

func run(w io.Writer, args []string, cfg *config.Config, logger *slog.Logger) error {
	reg := prometheus.NewRegistry()
	metricsManager := metrics.NewManager(cfg.Metrics.Namespace, cfg.Metrics.Subsystem, reg)

	workoutService := workout.NewService(logger, metricsManager)

	cli := workout.NewCLI(workout.CLIParams{
		Writer:         w,
		Logger:         logger,
		WorkoutService: workoutService,
		Args:           args,
		Addr:           cfg.Server.Addr(),
		Metrics:        metricsManager,
		Gatherer:       reg,
	})

	return cli.Run(args)
}
