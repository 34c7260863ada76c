package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/mortgage-service/internal/handler"
	"github.com/Dan9191/mortgage-service/internal/integrations/ratefeed"
	"github.com/Dan9191/mortgage-service/internal/middleware"
	"github.com/Dan9191/mortgage-service/internal/repository"
	"github.com/Dan9191/mortgage-service/internal/scheduler"
	"github.com/Dan9191/mortgage-service/internal/service"
	"github.com/Dan9191/mortgage-service/internal/utils/email"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const cacheTTL = 24 * time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	// Initialize database
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repository.NewRepository(db, cfg.DBDriver)
	if err := repo.Migrate(ctx); err != nil {
		return err
	}

	var cache repository.Cache = repository.NewMemoryCache()
	if cfg.RedisAddr != "" {
		redisCache := repository.NewRedisCache(cfg.RedisAddr, cacheTTL)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warnf("Redis unavailable at %s, using in-memory cache: %v", cfg.RedisAddr, err)
		} else {
			cache = redisCache
		}
	}

	// Initialize layers
	rates := ratefeed.NewClient(cfg, logger)
	svc := service.NewService(repo, cache, email.NewSender(cfg, logger), rates, logger, cfg)
	h := handler.NewHandler(svc, logger)

	limiter := middleware.NewRateLimiter(cfg.LeadsRateLimit, time.Minute)
	defer limiter.Stop()

	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.NewRouter(h, cfg, logger, limiter),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var sched *scheduler.Scheduler
	if rates.Enabled() {
		sched, err = scheduler.NewScheduler(cfg.RateRefreshSpec, scheduler.RefresherFunc(func(ctx context.Context) error {
			_, err := svc.RefreshRate(ctx)
			return err
		}), logger)
		if err != nil {
			return err
		}
	} else {
		logger.Info("RATE_FEED_URL not set, using default interest rate")
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	if sched != nil {
		g.Go(func() error { return sched.Run(gctx) })
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error during server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Errorf("Server exited with error: %v", err)
		return err
	}
	logger.Info("Server exited")
	return nil
}
