package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/natsalete/Password-Generator/internal/config"
	"github.com/natsalete/Password-Generator/internal/handler"
	"github.com/natsalete/Password-Generator/internal/metrics"
	"github.com/natsalete/Password-Generator/internal/repository"
	"github.com/natsalete/Password-Generator/internal/service"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	setupLogger(cfg)

	if envErr != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	exporter := metrics.New(&metrics.Exporter{
		Username: cfg.MetricsUser,
		Password: cfg.MetricsPassword,
	})

	genService := service.NewGeneratorService(cfg.Generator, exporter)

	routes := handler.RouterConfig{
		Generator:      handler.NewGeneratorHandler(genService),
		Metrics:        exporter.Handler(),
		JWTSecret:      cfg.JWTSecret,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}

	// Accounts and saved preferences need the database.
	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := repository.NewDB(startCtx, cfg.DatabaseDSN)
	if err == nil {
		err = repository.EnsureSchema(startCtx, db)
	}
	cancelStart()

	if err != nil {
		slog.Warn("database unavailable, account routes disabled", "error", err)
	} else {
		defer db.Close()

		accountService := service.NewAccountService(repository.NewAccountRepository(db), cfg.JWTSecret, cfg.JWTExpiry)
		prefService := service.NewPreferencesService(repository.NewPreferencesRepository(db), genService)

		routes.Accounts = handler.NewAccountHandler(accountService)
		routes.Preferences = handler.NewPreferencesHandler(prefService)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.NewRouter(routes),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server starting",
			"port", cfg.Port,
			"env", cfg.Env,
			"min_length", cfg.Generator.MinLength,
			"max_length", cfg.Generator.MaxLength,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

// setupLogger installs a JSON handler in production and a text handler elsewhere.
func setupLogger(cfg config.Config) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if !cfg.IsProduction() {
		opts.Level = slog.LevelDebug
	}

	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}
