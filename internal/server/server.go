package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Chiranjit680/FinAdvisor/internal/config"
	"github.com/Chiranjit680/FinAdvisor/internal/handler"
	"github.com/Chiranjit680/FinAdvisor/internal/middleware"
	"github.com/Chiranjit680/FinAdvisor/internal/repository"
	"github.com/Chiranjit680/FinAdvisor/internal/router"
	"github.com/Chiranjit680/FinAdvisor/internal/service/llm"
	"github.com/Chiranjit680/FinAdvisor/internal/service/marketdata"
	"github.com/Chiranjit680/FinAdvisor/internal/service/news"
	"github.com/Chiranjit680/FinAdvisor/internal/service/sentiment"
	"github.com/Chiranjit680/FinAdvisor/internal/service/ticker"
	"github.com/Chiranjit680/FinAdvisor/internal/usecase"
	"github.com/Chiranjit680/FinAdvisor/pkg/cache"
	"github.com/Chiranjit680/FinAdvisor/pkg/jwtutil"
)

// Server owns every long-lived resource of the process: the connection
// pool, the redis client and the HTTP listener.
type Server struct {
	cfg    config.Config
	logger *zap.Logger

	db    *pgxpool.Pool
	cache *cache.Cache

	// Screener is exposed so main can trigger a startup reconciliation run.
	Screener *usecase.Screener

	http *http.Server
}

func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Server, error) {
	db, err := pgxpool.New(ctx, cfg.DBConnString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	rdb := cache.NewCache(cfg.RedisAddr, cfg.RedisPass)

	var completer llm.Completer
	if cfg.GeminiAPIKey != "" {
		gc, err := llm.NewGeminiCompleter(ctx, cfg.GeminiAPIKey, cfg.CollaboratorTimeout, logger)
		if err != nil {
			logger.Warn("gemini client init failed, advisory features degraded", zap.Error(err))
			completer = llm.Unavailable{}
		} else {
			completer = gc
		}
	} else {
		logger.Warn("no GOOGLE_API_KEY set, advisory features degraded")
		completer = llm.Unavailable{}
	}

	quoter := marketdata.NewYahooClient(cfg.CollaboratorTimeout, logger)
	newsClient := news.NewFinnhubClient(cfg.FinnhubAPIKey, cfg.CollaboratorTimeout, logger)
	sentimentClient := sentiment.NewHFClient(cfg.HFAPIKey, cfg.CollaboratorTimeout, logger)
	resolver := ticker.NewResolver(completer, logger)

	issuer := jwtutil.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := repository.NewUserRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	chatRepo := repository.NewChatRepository(db)
	stockRepo := repository.NewStockRepository(db)

	userUC := usecase.NewUserUsecase(userRepo, issuer, rdb, logger)
	portfolioUC := usecase.NewPortfolioUsecase(portfolioRepo, logger)
	adviceUC := usecase.NewAdviceUsecase(chatRepo, userRepo, portfolioRepo, completer, logger)
	stockUC := usecase.NewStockUsecase(stockRepo, quoter, newsClient, sentimentClient, rdb, logger)
	screener := usecase.NewScreener(stockRepo, quoter, cfg.ScreenerBatchSize, logger)

	userH := handler.NewUserHandler(userUC, logger)
	portfolioH := handler.NewPortfolioHandler(portfolioUC, logger)
	chatH := handler.NewChatHandler(adviceUC, stockUC, resolver, completer, logger)
	stockH := handler.NewStockHandler(stockUC, screener, logger)

	rl := middleware.NewRateLimiter(cfg.RateLimit, cfg.RatePeriod)
	auth := middleware.NewAuthMiddleware(issuer, router.ExemptPrefixes)

	mux := router.SetupRoutes(rl, auth, logger, userH, portfolioH, chatH, stockH)

	return &Server{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		cache:    rdb,
		Screener: screener,
		http: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Run blocks serving HTTP until Shutdown is called or the listener fails.
func (s *Server) Run() error {
	s.logger.Info("FinAdvisor listening", zap.String("addr", s.cfg.HTTPAddr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then releases the pool and redis.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.db.Close()
	if cerr := s.cache.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
