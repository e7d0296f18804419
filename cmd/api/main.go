package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ctai_backend/internal/catalog"
	catalogrepo "ctai_backend/internal/catalog/repository"
	"ctai_backend/internal/config"
	"ctai_backend/internal/http/router"
	"ctai_backend/internal/procurement"
	"ctai_backend/internal/procurement/service"
	"ctai_backend/internal/retrieval"
	"ctai_backend/migrations"
	"ctai_backend/platform/ai/embeddings"
	"ctai_backend/platform/ai/groq"
	"ctai_backend/platform/cache"
	"ctai_backend/platform/db"
	"ctai_backend/platform/logger"
	"ctai_backend/platform/validator"
	"ctai_backend/platform/vendorhook"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
			return db.RunMigrations(ctx, cfg.DatabaseURL, migrations.FS, ".")
		}); err != nil {
			log.Error("failed to run database migrations", "error", err)
			panic("failed to run database migrations: " + err.Error())
		}
		log.Info("database migrations complete")

		if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
			p, err := db.NewPool(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			pool = p
			return nil
		}); err != nil {
			log.Error("failed to connect to database", "error", err)
			panic("failed to connect to database: " + err.Error())
		}
		defer pool.Close()
		log.Info("database connection established")
	} else {
		log.Warn("DATABASE_URL not configured; vendors DB fallback disabled")
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable; embedding cache degrades to in-process map", "error", err.Error())
		} else {
			log.Info("redis connection established", "addr", cfg.RedisAddr)
		}
	}

	embedder := cache.NewCachedEmbedder(embeddings.NewClient(embeddings.Config{
		BaseURL: cfg.EmbeddingAPIURL,
		APIKey:  cfg.EmbeddingAPIKey,
		Timeout: cfg.EmbeddingTimeout,
	}), rdb)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	entries, err := catalog.LoadDir(cfg.CatalogDir, log)
	if err != nil {
		log.Error("failed to load catalog", "error", err, "dir", cfg.CatalogDir)
		panic("failed to load catalog: " + err.Error())
	}

	index := retrieval.New(embedder, log)
	if err := index.Build(ctx, entries); err != nil {
		if errors.Is(err, retrieval.ErrEmptyCatalog) {
			log.Warn("catalog empty; semantic vendor search disabled", "dir", cfg.CatalogDir)
		} else {
			log.Error("failed to build retrieval index", "error", err)
			panic("failed to build retrieval index: " + err.Error())
		}
	}

	deps := service.Deps{
		Index:      index,
		Categories: catalogCategories(entries),
		TopVendors: cfg.DefaultTopVendors,
		Logger:     log,
	}

	if cfg.GroqAPIKey != "" {
		deps.Advisor = groq.NewClient(groq.Config{
			BaseURL: cfg.GroqBaseURL,
			APIKey:  cfg.GroqAPIKey,
			Model:   cfg.GroqModel,
		})
		log.Info("ai advisor enabled", "model", cfg.GroqModel)
	} else {
		log.Warn("GROQ_API_KEY not configured; material advice uses the deterministic table")
	}

	webhook := vendorhook.NewClient(vendorhook.Config{WebhookURL: cfg.VendorWebhookURL})
	if webhook.Configured() {
		deps.Webhook = webhook
	}

	if pool != nil {
		deps.Store = catalogrepo.New(pool)
	}

	if cfg.MaterialRatesPath != "" {
		rates, err := service.LoadRates(cfg.MaterialRatesPath)
		if err != nil {
			log.Error("failed to load material rates", "error", err, "path", cfg.MaterialRatesPath)
			panic("failed to load material rates: " + err.Error())
		}
		deps.Rates = rates
		log.Info("material rates loaded", "path", cfg.MaterialRatesPath, "count", len(rates))
	}

	procurementModule := procurement.NewModule(service.New(deps), val)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	engine := router.New(cfg, log, index.Ready, procurementModule)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// catalogCategories collects the distinct source categories in load order so
// the advisor prompt offers exactly what the catalog can answer for.
func catalogCategories(entries []catalog.Entry) []string {
	seen := make(map[string]struct{}, len(entries))
	var categories []string
	for _, entry := range entries {
		category := entry.Document.SourceCategory
		if category == "" {
			continue
		}
		if _, dup := seen[category]; dup {
			continue
		}
		seen[category] = struct{}{}
		categories = append(categories, category)
	}
	return categories
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
