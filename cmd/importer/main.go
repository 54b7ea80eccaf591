package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"time"

	"jerseyshop/internal/config"
	"jerseyshop/internal/db"
	"jerseyshop/internal/importer"
	"jerseyshop/internal/logging"
	categoryrepo "jerseyshop/internal/repository/category"
	jerseyrepo "jerseyshop/internal/repository/jersey"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to a jersey or category CSV file")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, cfg.Env, cfg.LogLevel).With(slog.String("component", "importer"))

	if err := run(context.Background(), cfg, filePath, logger); err != nil {
		logger.Error("import failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, filePath string, logger *slog.Logger) error {
	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	kind, err := importer.DetectKind(f)
	if err != nil {
		return err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}

	pool, err := db.Connect(ctx, cfg.DBConnString, db.Options{})
	if err != nil {
		return err
	}
	defer pool.Close()

	imp := importer.NewCSVImporter(f,
		jerseyrepo.NewPostgres(pool, logger),
		categoryrepo.NewPostgres(pool, logger),
	)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("import finished",
		slog.String("kind", string(kind)),
		slog.Int("rows", count),
		slog.Duration("took", time.Since(start).Truncate(time.Millisecond)),
	)
	return nil
}
