package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Chiranjit680/FinAdvisor/internal/config"
	"github.com/Chiranjit680/FinAdvisor/internal/server"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("server init failed", zap.Error(err))
	}

	// Warm the stock table in the background so startup is not gated on the
	// market-data collaborator.
	if cfg.LoadOnStartup {
		go func() {
			result, err := srv.Screener.UploadStockData(context.Background())
			if err != nil {
				logger.Error("startup stock load failed", zap.Error(err))
				return
			}
			logger.Info("startup stock load finished",
				zap.Int("processed", result.Processed),
				zap.Int("errors", result.Errors),
				zap.String("success_rate", result.SuccessRate))
		}()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run() }()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error("http server failed", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown incomplete", zap.Error(err))
	}
	logger.Info("FinAdvisor stopped")
}
