package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"jerseyshop/internal/auth"
	"jerseyshop/internal/config"
	"jerseyshop/internal/db"
	"jerseyshop/internal/httpserver"
	"jerseyshop/internal/logging"
	"jerseyshop/internal/metrics"
	"jerseyshop/internal/migrate"
	"jerseyshop/internal/pricing"
	cartrepo "jerseyshop/internal/repository/cart"
	categoryrepo "jerseyshop/internal/repository/category"
	jerseyrepo "jerseyshop/internal/repository/jersey"
	orderrepo "jerseyshop/internal/repository/order"
	paymentrepo "jerseyshop/internal/repository/payment"
	reportrepo "jerseyshop/internal/repository/report"
	userrepo "jerseyshop/internal/repository/user"
	adminsvc "jerseyshop/internal/service/admin"
	cartsvc "jerseyshop/internal/service/cart"
	categorysvc "jerseyshop/internal/service/category"
	identitysvc "jerseyshop/internal/service/identity"
	jerseysvc "jerseyshop/internal/service/jersey"
	ordersvc "jerseyshop/internal/service/order"
	paymentsvc "jerseyshop/internal/service/payment"
)

func main() {
	if err := run(); err != nil {
		slog.Error("api exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	logger := logging.New(os.Stdout, cfg.Env, cfg.LogLevel).With(slog.String("component", "api"))
	slog.SetDefault(logger)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, db.Options{MaxConns: cfg.DBMaxConns})
	if err != nil {
		return err
	}
	defer dbpool.Close()

	if err := migrate.Apply(ctx, dbpool); err != nil {
		return err
	}

	rate, err := cfg.Tax()
	if err != nil {
		return err
	}
	calc, err := pricing.NewCalculator(rate)
	if err != nil {
		return err
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTP(registry, cfg.MetricsNamespace)
	business := metrics.NewBusiness(registry, cfg.MetricsNamespace)

	categoryRepo := categoryrepo.NewPostgres(dbpool, logger)
	jerseyRepo := jerseyrepo.NewPostgres(dbpool, logger)
	userRepo := userrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	paymentRepo := paymentrepo.NewPostgres(dbpool, logger)
	reportRepo := reportrepo.NewPostgres(dbpool, logger)

	deps := httpserver.Deps{
		CategorySvc: categorysvc.New(categoryRepo, logger),
		JerseySvc:   jerseysvc.New(jerseyRepo, logger),
		IdentitySvc: identitysvc.New(userRepo, orderRepo, tokens, logger),
		CartSvc:     cartsvc.New(cartRepo, jerseyRepo, business, logger),
		OrderSvc: ordersvc.New(ordersvc.Deps{
			Orders:  orderRepo,
			Users:   userRepo,
			Carts:   cartRepo,
			Jerseys: jerseyRepo,
			Pricing: calc,
			Metrics: business,
			Logger:  logger,
		}),
		PaymentSvc: paymentsvc.New(paymentRepo, orderRepo, business, logger),
		AdminSvc:   adminsvc.New(reportRepo, orderRepo, paymentRepo, userRepo),
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, deps, httpserver.Options{
		CORSOrigins:    cfg.CORSOrigins,
		Metrics:        httpMetrics,
		MetricsHandler: metrics.Handler(registry),
	})
	if err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("shutting down", slog.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", slog.Any("error", err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		return err
	}
	logger.Info("server stopped")
	return nil
}
