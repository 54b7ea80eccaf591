package main

import (
	"context"
	"log/slog"
	"os"

	"jerseyshop/internal/config"
	"jerseyshop/internal/db"
	"jerseyshop/internal/logging"
	"jerseyshop/internal/migrate"
	categoryrepo "jerseyshop/internal/repository/category"
	jerseyrepo "jerseyshop/internal/repository/jersey"
	userrepo "jerseyshop/internal/repository/user"
	"jerseyshop/internal/seed"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, cfg.Env, cfg.LogLevel).With(slog.String("component", "seed"))

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, db.Options{})
	if err != nil {
		logger.Error("connect db", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Error("apply migrations", slog.Any("error", err))
		pool.Close()
		os.Exit(1)
	}

	res, err := seed.Apply(ctx, seed.Deps{
		Categories: categoryrepo.NewPostgres(pool, logger),
		Jerseys:    jerseyrepo.NewPostgres(pool, logger),
		Users:      userrepo.NewPostgres(pool, logger),
		Logger:     logger,
	}, seed.Options{AdminEmail: cfg.AdminEmail, AdminPassword: cfg.AdminPassword})
	if err != nil {
		logger.Error("seed apply", slog.Any("error", err))
		pool.Close()
		os.Exit(1)
	}

	logger.Info("seed applied",
		slog.Int("categories", res.Categories),
		slog.Int("jerseys", res.Jerseys),
		slog.Int("users", res.Users),
		slog.Bool("admin", res.Admin),
	)
}
