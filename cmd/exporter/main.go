package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/tdhoang-sw/sportsday-exporter/internal/config"
	"github.com/tdhoang-sw/sportsday-exporter/internal/export"
	"github.com/tdhoang-sw/sportsday-exporter/internal/scheduler"
	"github.com/tdhoang-sw/sportsday-exporter/shared/logger"
	"github.com/tdhoang-sw/sportsday-exporter/shared/mysql"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or flags")
	}

	// Parse command-line flags
	defaultConfigPath := os.Getenv("EXPORTER_CONFIG_PATH")
	if defaultConfigPath == "" {
		defaultConfigPath = "configs/exporter/config.yaml"
	}
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Initialize logger
	appLogger, err := initLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger.Info("Starting exporter",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("environment", cfg.App.Environment),
	)

	// Resolve the output directory; failure here is fatal
	outputDir, err := export.ResolveOutputDir(cfg.Export.FolderName)
	if err != nil {
		return fmt.Errorf("failed to resolve output directory: %w", err)
	}

	appLogger.Info("Output directory resolved",
		slog.String("directory", outputDir),
	)

	tables := tableSpecs(cfg.Export.Tables)
	exporter := export.NewExporter(outputDir, appLogger.Logger)
	runner := export.NewRunner(exporter, tables, appLogger.Logger)

	dbConfig := &mysql.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Database:  cfg.Database.Database,
		Charset:   cfg.Database.Charset,
		Collation: cfg.Database.Collation,
	}

	sched := scheduler.New(&scheduler.Config{
		Logger:   appLogger.Logger,
		Interval: time.Duration(cfg.Scheduler.IntervalMinutes) * time.Minute,
		Connect: func() (scheduler.Conn, error) {
			return mysql.Connect(dbConfig, appLogger.Logger)
		},
		Runner:    runner,
		OutputDir: outputDir,
	})

	// Stop the loop on SIGINT/SIGTERM; the in-flight job finishes first
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := sched.Run(ctx); err != nil {
		return err
	}

	appLogger.Info("Exporter shutdown complete")
	return nil
}

// initLogger initializes and configures the application logger
func initLogger(cfg *config.LoggingConfig) (*logger.Logger, error) {
	loggerCfg := &logger.Config{
		Level:        cfg.Level,
		Format:       cfg.Format,
		Output:       cfg.Output,
		EnableSource: cfg.EnableCaller,
		TimeFormat:   time.RFC3339,
	}

	return logger.New(loggerCfg)
}

// tableSpecs converts configured tables to export specs, falling back
// to the default table set when the config declares none
func tableSpecs(tables []config.TableConfig) []export.TableSpec {
	if len(tables) == 0 {
		return export.DefaultTables()
	}

	specs := make([]export.TableSpec, len(tables))
	for i, t := range tables {
		specs[i] = export.TableSpec{
			Name:     t.Name,
			Category: export.Category(t.Category),
			Columns:  t.Columns,
		}
	}
	return specs
}
