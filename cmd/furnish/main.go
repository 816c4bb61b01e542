package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/cozyhaus/furnish/internal/cache"
	"github.com/cozyhaus/furnish/internal/catalog"
	"github.com/cozyhaus/furnish/internal/channel"
	"github.com/cozyhaus/furnish/internal/config"
	"github.com/cozyhaus/furnish/internal/db"
	dbRedis "github.com/cozyhaus/furnish/internal/db/redis"
	"github.com/cozyhaus/furnish/internal/domain"
	logpkg "github.com/cozyhaus/furnish/internal/logger"
	"github.com/cozyhaus/furnish/internal/metrics"
	"github.com/cozyhaus/furnish/internal/ranking"
	"github.com/cozyhaus/furnish/internal/repository/embcache"
	chiTransport "github.com/cozyhaus/furnish/internal/transport/chi"
	openaiEmb "github.com/cozyhaus/furnish/internal/transport/openai"
	analyticsuc "github.com/cozyhaus/furnish/internal/usecase/analytics"
	healthuc "github.com/cozyhaus/furnish/internal/usecase/health"
	recommenduc "github.com/cozyhaus/furnish/internal/usecase/recommend"
	refreshuc "github.com/cozyhaus/furnish/internal/usecase/refresh"
	"github.com/cozyhaus/furnish/internal/version"
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

	logger.Info("Starting furnish API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("csv_path", cfg.Catalog.CSVPath),
	)

	ctx := logpkg.ContextWithLogger(context.Background(), logger)

	// Optional Redis store for the embedding cache
	var store db.Store
	if cfg.Database.Enabled {
		redisStore, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Username: cfg.Database.Username,
			Password: cfg.Database.Password,
			DB:       cfg.Database.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create database store", zap.Error(err))
		}
		defer redisStore.Close()

		timeout := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
		if err := redisStore.WaitForReady(ctx, timeout); err != nil {
			logger.Fatal("Database not ready", zap.Error(err))
		}
		logger.Info("Connected to database", zap.Strings("addrs", cfg.Database.Addrs))
		store = redisStore
	}

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterRetrievalMetrics()

	// Embedder chain: OpenAI -> Cached
	var embedder domain.Embedder
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})
	embedder = base
	if store != nil {
		embedder = embcache.New(base, store, metrics.EmbeddingCacheTotal, logger)
	}
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
		zap.Bool("cached", store != nil),
	)

	// Catalog snapshot and retrieval index
	catalogStore := catalog.NewStore(cfg.Catalog.CSVPath)
	catalogStore.Load(ctx)
	metrics.CatalogProducts.Set(float64(catalogStore.Len()))

	index := channel.NewIndex()
	builder := channel.NewBuilder(index, embedder, cfg.Catalog.IndexWorkers)
	if err := builder.Build(ctx, catalogStore.Products()); err != nil {
		logger.Fatal("Failed to build retrieval index", zap.Error(err))
	}
	logger.Info("Retrieval index built",
		zap.Int("products", index.Len()),
		zap.String("mode", string(catalogStore.Mode())),
	)

	textChannel := channel.NewText(embedder, index)
	imageChannel := channel.NewImage(embedder, index)
	channels := []recommenduc.Channel{textChannel, imageChannel}

	similarity, err := ranking.SimilarityByName(cfg.Ranking.Similarity)
	if err != nil {
		logger.Fatal("Invalid similarity strategy", zap.Error(err))
	}

	// Use case services
	recommendSvc := recommenduc.New(
		channels,
		cache.NewLRU[recommenduc.Result](cfg.Cache.Capacity),
		recommenduc.Options{
			RRFConstant:    cfg.Ranking.RRFConstant,
			Lambda:         *cfg.Ranking.MMRLambda,
			Similarity:     similarity,
			ChannelTopN:    cfg.Channels.TopN,
			ChannelTimeout: time.Duration(cfg.Channels.TimeoutSec) * time.Second,
		},
	)
	analyticsSvc := analyticsuc.New(catalogStore)
	// The health probe targets the base provider: the cache decorator has
	// no provider connectivity of its own.
	healthSvc := healthuc.New(
		[]healthuc.Channel{textChannel, imageChannel},
		catalogStore,
		newEmbeddingHealthChecker(base),
	)
	refreshSvc := refreshuc.New(catalogStore, builder, recommendSvc)

	// HTTP server
	server := chiTransport.NewServer(recommendSvc, analyticsSvc, healthSvc, refreshSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
