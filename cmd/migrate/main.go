package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"jerseyshop/internal/config"
	"jerseyshop/internal/db"
	"jerseyshop/internal/logging"
	"jerseyshop/internal/migrate"
)

func main() {
	steps := flag.Int("steps", 1, "number of migrations to roll back with the down command")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-steps n] up|down|version\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cmd := "up"
	if flag.NArg() > 0 {
		cmd = flag.Arg(0)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, cfg.Env, cfg.LogLevel).With(slog.String("component", "migrate"))

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, db.Options{})
	if err != nil {
		logger.Error("connect db", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	switch cmd {
	case "up":
		err = migrate.Apply(ctx, pool)
	case "down":
		err = migrate.Rollback(ctx, pool, *steps)
	case "version":
		var (
			version uint
			dirty   bool
		)
		version, dirty, err = migrate.Version(ctx, pool)
		if err == nil {
			logger.Info("schema version", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
		}
	default:
		flag.Usage()
		pool.Close()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("migrate "+cmd, slog.Any("error", err))
		pool.Close()
		os.Exit(1)
	}
	logger.Info("migrate " + cmd + " done")
}
