package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"loan-amortization/config"
	httpLayer "loan-amortization/http"
	"loan-amortization/repository"
	"loan-amortization/service"
)

const cacheCleanupInterval = 10 * time.Minute

func newServeCmd() *cobra.Command {
	var (
		port    string
		envFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the amortization JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(envFile)
			if port != "" {
				cfg.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, newLogger(os.Stdout, cfg.LogLevel))
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "port to listen on (overrides PORT)")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "optional dotenv file")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	slog.SetDefault(logger)

	cache, closeCache := newCache(ctx, cfg, logger)
	defer closeCache()

	loanService := service.NewLoanService(cache, limitsFromConfig(cfg), logger).WithCacheTTL(cfg.CacheTTL)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	handler := httpLayer.NewRouter(httpLayer.RouterConfig{
		Loans:          httpLayer.NewLoanHandler(loanService),
		Limiter:        rateLimiter,
		Logger:         logger,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:           cfg.Addr(),
		Handler:        handler,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting amortization API", "addr", server.Addr, "cache_backend", cfg.CacheBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("start server: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}

	logger.Info("server exited")
	return nil
}

// newCache builds the configured cache backend. An unreachable Redis falls
// back to the in-memory cache so the API stays up.
func newCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.CacheRepository, func()) {
	switch cfg.CacheBackend {
	case "none":
		return repository.NoopCache{}, func() {}
	case "redis":
		rc := repository.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		err := rc.Ping(pingCtx)
		if err == nil {
			logger.Info("using redis cache", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
			return rc, func() {
				if err := rc.Close(); err != nil {
					logger.Warn("failed to close redis client", "error", err)
				}
			}
		}
		logger.Warn("redis unavailable, falling back to memory cache", "addr", cfg.RedisAddr, "error", err)
		_ = rc.Close()
	}

	mc := repository.NewMemoryCache()
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(cacheCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := mc.CleanExpired(); n > 0 {
					logger.Debug("expired cache entries removed", "count", n)
				}
			case <-stop:
				return
			}
		}
	}()
	return mc, func() { close(stop) }
}

// limitsFromConfig reads the input bounds from cfg; unset or non-positive
// values keep the service defaults.
func limitsFromConfig(cfg *config.Config) service.Limits {
	limits := service.DefaultLimits()
	if cfg.MaxPrincipal > 0 {
		limits.MaxPrincipal = cfg.MaxPrincipal
	}
	if cfg.MaxRatePercent > 0 {
		limits.MaxAnnualRatePercent = cfg.MaxRatePercent
	}
	if cfg.MaxTermMonths > 0 {
		limits.MaxTermMonths = cfg.MaxTermMonths
	}
	return limits
}
