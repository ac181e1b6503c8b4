package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/proofpage/internal/db"
	"github.com/proofpage/internal/handler"
	"github.com/proofpage/internal/metrics"
	"github.com/proofpage/internal/ratelimit"
	"github.com/proofpage/internal/router"
	"github.com/proofpage/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServer(ctx)
	},
}

func runServer(ctx context.Context) error {
	gin.SetMode(cfg.GinMode)

	gdb, err := db.Open(cfg.DatabasePath, db.Options{Silent: cfg.GinMode == gin.ReleaseMode})
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	signer := storage.NewSigner(cfg.SigningSecret)
	store := storage.NewLocal(cfg.StorageDir, cfg.MediaBucket, cfg.SiteBaseURL, signer)
	manager := metrics.NewManager()

	var limiter ratelimit.Limiter
	if cfg.RedisAddr != "" {
		client, err := ratelimit.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Warn("redis unavailable, request form is not rate limited", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			defer client.Close()
			limiter = ratelimit.NewRedisLimiter(client, cfg.RateLimit, cfg.RateLimitWindow)
		}
	}

	api := handler.NewAPI(gdb, store, signer, handler.Options{
		SiteBaseURL:  cfg.SiteBaseURL,
		SignedURLTTL: cfg.SignedURLTTL,
		Logger:       logger,
		Recorder:     manager,
	})
	r, err := router.SetupRouter(api, router.Options{
		SessionSecret: cfg.SessionSecret,
		Limiter:       limiter,
		Metrics:       manager,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
