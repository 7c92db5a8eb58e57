// Command isogen generates Go lookup tables of ISO country and currency codes
// from CSV datasets.
//
// It takes no arguments. Inputs are read from ISOGEN_INPUT_DIR and generated
// files written to ISOGEN_OUTPUT_DIR, both defaulting to the working
// directory, so it can be run from a package directory with:
//
//	//go:generate go run github.com/JonMunkholm/isogen/cmd/isogen
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/isogen/internal/config"
	"github.com/JonMunkholm/isogen/internal/core"
	_ "github.com/JonMunkholm/isogen/internal/core/datasets" // Register built-in datasets
	"github.com/JonMunkholm/isogen/internal/csv"
	"github.com/JonMunkholm/isogen/internal/logging"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err == nil {
		slog.Debug("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logFile := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.File, cfg.Logging.MaxSizeMB)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	ctx = logging.WithRunID(ctx, uuid.NewString())

	err = run(ctx, cfg)
	stop()

	if err != nil {
		msg := core.MapError(err)
		logging.FromContext(ctx).Error(msg.Message,
			"code", msg.Code,
			"action", msg.Action,
			"error", err,
		)
		logFile.Close()
		os.Exit(1)
	}
	logFile.Close()
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.WithFields(ctx, "package", cfg.Generate.Package)
	logger.Debug("configuration loaded", "config", cfg.String())

	defs, err := definitions(cfg.Generate.DatasetsFile)
	if err != nil {
		return err
	}

	enc, err := csv.LookupCharset(cfg.Generate.Charset)
	if err != nil {
		return err
	}

	gen, err := core.NewGenerator(defs, core.Options{
		InputDir:  cfg.Generate.InputDir,
		OutputDir: cfg.Generate.OutputDir,
		Package:   cfg.Generate.Package,
		Encoding:  enc,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	logger.Info("generation started",
		"input_dir", cfg.Generate.InputDir,
		"output_dir", cfg.Generate.OutputDir,
		"datasets", len(defs),
		"groups", len(gen.Groups()),
	)

	results, err := gen.Run(ctx)
	if err != nil {
		return err
	}

	for _, res := range results {
		for _, t := range res.Tables {
			logger.Debug("table written", "output", res.Output, "table", t.Name, "entries", t.Entries)
		}
	}
	logger.Info("generation finished", "files", len(results))
	return nil
}

// definitions returns the datasets for this run: the file's when one is
// configured, the built-in registry otherwise.
func definitions(file string) ([]core.DatasetDefinition, error) {
	if file == "" {
		return core.All(), nil
	}

	defs, err := core.LoadDefinitionsFile(file)
	if err != nil {
		return nil, err
	}
	slog.Debug("dataset definitions loaded", "file", file, "datasets", len(defs))
	return defs, nil
}
