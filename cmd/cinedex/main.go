package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/config"
	dbPostgres "github.com/kailas-cloud/cinedex/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/cinedex/internal/db/redis"
	"github.com/kailas-cloud/cinedex/internal/domain"
	logpkg "github.com/kailas-cloud/cinedex/internal/logger"
	"github.com/kailas-cloud/cinedex/internal/metrics"
	"github.com/kailas-cloud/cinedex/internal/repository/embcache"
	movierepo "github.com/kailas-cloud/cinedex/internal/repository/movie"
	"github.com/kailas-cloud/cinedex/internal/repository/poolcache"
	chiTransport "github.com/kailas-cloud/cinedex/internal/transport/chi"
	openaiEmb "github.com/kailas-cloud/cinedex/internal/transport/openai"
	discoveryuc "github.com/kailas-cloud/cinedex/internal/usecase/discovery"
	embeddinguc "github.com/kailas-cloud/cinedex/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/cinedex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/cinedex/internal/usecase/search"
	similaruc "github.com/kailas-cloud/cinedex/internal/usecase/similar"
	"github.com/kailas-cloud/cinedex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting cinedex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("table", cfg.Database.Table),
		zap.Bool("cache", cfg.Cache.Enabled),
		zap.Bool("live_query_embedding", cfg.Embedding.LiveQueryEmbedding),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := dbPostgres.NewStore(ctx, dbPostgres.Config{
		DSN:      cfg.Database.DSN,
		MaxConns: cfg.Database.MaxConns,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, config.Seconds(cfg.Database.ReadinessTimeout)); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	var cache *dbRedis.Store
	if cfg.Cache.Enabled {
		cache, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer cache.Close()

		if err := cache.WaitForReady(ctx, config.Seconds(cfg.Cache.ReadinessTimeout)); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Connected to cache", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	repo := movierepo.New(store, cfg.Database.Table)
	recorder := metrics.RankingRecorder{}

	searchOpts := []searchuc.Option{searchuc.WithRecorder(recorder)}
	healthOpts := []healthuc.Option{}
	if cache != nil {
		healthOpts = append(healthOpts, healthuc.WithCache(cache))
	}

	if cfg.Embedding.LiveQueryEmbedding {
		embedder := buildEmbedder(&cfg.Embedding, &cfg.Cache, cache, logger)
		searchOpts = append(searchOpts, searchuc.WithLiveEmbedding(embedder))
		healthOpts = append(healthOpts, healthuc.WithEmbedding(embedder))
		logger.Info("Query embedder created",
			zap.String("provider", cfg.Embedding.Provider),
			zap.String("model", cfg.Embedding.Model),
			zap.Int("dimensions", cfg.Embedding.Dimensions),
		)
	}

	discoveryOpts := []discoveryuc.Option{discoveryuc.WithRecorder(recorder)}
	if cache != nil {
		pools := poolcache.New(cache, config.Seconds(cfg.Cache.PoolTTLSec), metrics.PoolCacheTotal, logger)
		discoveryOpts = append(discoveryOpts, discoveryuc.WithPoolCache(pools))
	}

	searchSvc := searchuc.New(repo, searchOpts...)
	discoverySvc := discoveryuc.New(repo, discoveryOpts...)
	similarSvc := similaruc.New(repo, similaruc.WithExactTotal(cfg.Search.SimilarExactTotal))
	healthSvc := healthuc.New(store, healthOpts...)

	// Warm and periodically rebuild the cached trending pools
	if cache != nil {
		refresher := discoveryuc.NewRefresher(
			discoverySvc, cfg.Search.TrendingPoolSizes, config.Seconds(cfg.Search.TrendingRefreshSec), logger,
		)
		go refresher.Run(logpkg.ContextWithLogger(ctx, logger))
	}

	server := chiTransport.NewServer(searchSvc, discoverySvc, similarSvc, healthSvc)
	handler := chiTransport.NewRouter(server, chiTransport.RouterConfig{
		AllowedOrigins:  cfg.HTTP.Origins(),
		APIKeys:         cfg.Auth.APIKeys,
		RateLimit:       cfg.HTTP.RateLimit,
		RateLimitWindow: config.Seconds(cfg.HTTP.RateLimitWindowSec),
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  config.Seconds(cfg.HTTP.ReadTimeoutSec),
		WriteTimeout: config.Seconds(cfg.HTTP.WriteTimeoutSec),
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Seconds(cfg.HTTP.ShutdownSec))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the query embedder chain:
// OpenAI -> Breaker -> Cached -> Instrumented -> Instruction.
func buildEmbedder(
	embCfg *config.EmbeddingConfig,
	cacheCfg *config.CacheConfig,
	cache *dbRedis.Store,
	logger *zap.Logger,
) *domain.InstructionEmbedder {
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     embCfg.APIKey,
		BaseURL:    embCfg.BaseURL,
		Model:      embCfg.Model,
		Dimensions: embCfg.Dimensions,
		Provider:   embCfg.Provider,
		Timeout:    config.Seconds(embCfg.TimeoutSec),
		Logger:     logger,
	})

	var embedder domain.Embedder = openaiEmb.NewBreakerEmbedder(
		base, embCfg.Provider, breakerConfig(&embCfg.Breaker), logger,
	)

	if cache != nil {
		embedder = embcache.New(
			embedder, cache, embCfg.Model, config.Seconds(cacheCfg.EmbeddingTTLSec),
			metrics.EmbeddingCacheTotal, logger,
		)
	}

	embedder = embeddinguc.NewInstrumentedEmbedder(
		embedder, embCfg.Provider, embCfg.Model, embeddinguc.DefaultSlowThreshold,
	)

	// Instruction prefix is outermost so the cache key includes it
	return domain.NewInstructionEmbedder(embedder, embCfg.QueryInstruction)
}

// breakerConfig converts breaker settings; zero values fall back to the breaker defaults.
func breakerConfig(c *config.BreakerConfig) openaiEmb.BreakerConfig {
	out := openaiEmb.BreakerConfig{
		MaxRequests:  c.MaxRequests,
		Interval:     config.Seconds(c.IntervalSec),
		Timeout:      config.Seconds(c.TimeoutSec),
		MinRequests:  c.MinRequests,
		FailureRatio: c.FailureRatio,
	}
	// A zero interval would never reset the closed-state counts.
	if out.Interval <= 0 {
		out.Interval = openaiEmb.DefaultBreakerConfig().Interval
	}
	return out
}
