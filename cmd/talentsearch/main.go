package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hireon/talentsearch/internal/config"
	dbRedis "github.com/hireon/talentsearch/internal/db/redis"
	"github.com/hireon/talentsearch/internal/domain"
	logpkg "github.com/hireon/talentsearch/internal/logger"
	"github.com/hireon/talentsearch/internal/metrics"
	consultantrepo "github.com/hireon/talentsearch/internal/repository/consultant"
	"github.com/hireon/talentsearch/internal/repository/embcache"
	vectorrepo "github.com/hireon/talentsearch/internal/repository/vector"
	chiTransport "github.com/hireon/talentsearch/internal/transport/chi"
	openaiProvider "github.com/hireon/talentsearch/internal/transport/openai"
	healthuc "github.com/hireon/talentsearch/internal/usecase/health"
	interpretuc "github.com/hireon/talentsearch/internal/usecase/interpret"
	searchuc "github.com/hireon/talentsearch/internal/usecase/search"
	"github.com/hireon/talentsearch/internal/version"
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

	logger.Info("Starting talentsearch API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Bool("embedding_enabled", cfg.Embedding.Enabled),
		zap.Bool("hybrid_enabled", cfg.Search.HybridEnabled),
		zap.Bool("rag_enabled", cfg.Search.RAGEnabled),
	)

	// Relational store (consultants and CVs)
	gormDB, sqlDB, err := openDatabase(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = sqlDB.Close() }()
	logger.Info("Connected to database")

	consultantRepo := consultantrepo.New(gormDB, logger)
	if cfg.Database.AutoMigrate {
		if err := consultantRepo.AutoMigrate(); err != nil {
			logger.Fatal("Auto-migration failed", zap.Error(err))
		}
		logger.Info("Schema migrated")
	}

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterSearchMetrics()
	metrics.RegisterProviderMetrics()

	ctx := context.Background()

	// Vector store and embedder chain — only when embedding is enabled.
	// Keep disabled components as nil interfaces, not typed nil pointers:
	// a (*T)(nil) wrapped in an interface is != nil.
	var (
		store      *dbRedis.Store
		embedder   domain.Embedder
		vectors    searchuc.VectorSearcher
		vectorPing healthuc.Pinger
	)
	if cfg.Embedding.Enabled {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Vector.Addrs,
			Password: cfg.Vector.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create vector store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Vector.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Vector store not ready", zap.Error(err))
		}
		logger.Info("Connected to vector store")

		base := openaiProvider.NewEmbedder(&openaiProvider.EmbedderConfig{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Provider:   cfg.Embedding.Provider,
			Logger:     logger,
		})
		embedder = embcache.New(base, store, cfg.Vector.KeyPrefix, metrics.EmbeddingCacheTotal, logger)
		logger.Info("Embedder created",
			zap.String("provider", cfg.Embedding.Provider),
			zap.String("model", cfg.Embedding.Model),
			zap.Int("dimensions", cfg.Embedding.Dimensions),
		)

		vectorRepo := vectorrepo.New(store, cfg.Vector.KeyPrefix).WithHNSW(vectorrepo.HNSWConfig{
			M:           cfg.Vector.HNSWM,
			EFConstruct: cfg.Vector.HNSWEFConstruct,
		})
		if err := vectorRepo.EnsureIndex(ctx, embedder.Identity()); err != nil {
			logger.Fatal("Failed to ensure vector index", zap.Error(err))
		}
		vectors = vectorRepo
		vectorPing = store
	}

	completer := openaiProvider.NewCompleter(&openaiProvider.CompleterConfig{
		APIKey:      cfg.Completion.APIKey,
		BaseURL:     cfg.Completion.BaseURL,
		Model:       cfg.Completion.Model,
		Temperature: float32(cfg.Completion.Temperature),
		Logger:      logger,
	})

	interpreter := interpretuc.NewService(
		completer,
		cfg.Search.CacheSize,
		time.Duration(cfg.Search.CacheTTLSec)*time.Second,
		logger,
	)

	searchSvc := searchuc.New(interpreter, consultantRepo, vectors, embedder, completer, searchuc.Flags{
		Provider:         cfg.Embedding.Provider,
		EmbeddingEnabled: cfg.Embedding.Enabled,
		HybridEnabled:    cfg.Search.HybridEnabled,
		RAGEnabled:       cfg.Search.RAGEnabled,
	}, logger)

	var embeddingCheck healthuc.EmbeddingChecker
	if embedder != nil {
		embeddingCheck = newEmbeddingHealthChecker(embedder)
	}
	healthSvc := healthuc.New(sqlPinger{db: sqlDB}, vectorPing, embeddingCheck)

	server := chiTransport.NewServer(searchSvc, healthSvc, logger)

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

// openDatabase opens the relational store with pooling and a slow-query logger.
func openDatabase(cfg config.DatabaseConfig) (*gorm.DB, *sql.DB, error) {
	gormLog := gormlogger.Default.LogMode(gormlogger.Silent)
	if cfg.LogSlowQueryMs > 0 {
		gormLog = gormlogger.New(log.New(os.Stdout, "", log.LstdFlags), gormlogger.Config{
			SlowThreshold:             time.Duration(cfg.LogSlowQueryMs) * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger:                 gormLog,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifeSec) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	return gormDB, sqlDB, nil
}

// sqlPinger adapts *sql.DB to health.Pinger.
type sqlPinger struct {
	db *sql.DB
}

func (p sqlPinger) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
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
