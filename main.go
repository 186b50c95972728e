package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"pds/internal/config"
	"pds/internal/dto"
	"pds/internal/handlers"
	"pds/internal/listeners"
	"pds/internal/repositories"
	"pds/internal/services"
	"pds/pkg/cache"
	"pds/pkg/logger"
	"pds/pkg/mongodb"
	"pds/pkg/rabbitmq"
)

const (
	indexBootstrapTimeout = 45 * time.Second
	shutdownTimeout       = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(logger.Config{Level: cfg.LogLevel, Env: cfg.AppEnv})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zl); err != nil {
		zl.Fatal("server exited with error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, zl *zap.Logger) error {
	// --- Document store ---
	pool := mongodb.NewPool(mongodb.Config{
		URI:                    cfg.Mongo.URI,
		Database:               cfg.Mongo.Database,
		ServerSelectionTimeout: cfg.Mongo.ServerSelectionTimeout,
		ConnectTimeout:         cfg.Mongo.ConnectTimeout,
		MaxPoolSize:            cfg.Mongo.MaxPoolSize,
		DNSServers:             cfg.Mongo.DNSServers,
	}, zl)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := pool.Close(closeCtx); err != nil {
			zl.Warn("failed to close mongodb client", zap.Error(err))
		}
	}()
	go bootstrapIndexes(ctx, pool, zl)

	// --- Optional infrastructure ---
	var events services.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Exchange: cfg.RabbitMQ.Exchange}, zl)
		if err != nil {
			zl.Warn("event publishing disabled", zap.Error(err))
		} else {
			defer func() { _ = mq.Close() }()
			events = mq
			if err := listeners.NewSignupListener(zl).Start(mq); err != nil {
				zl.Warn("signup listener not running", zap.Error(err))
			}
		}
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			zl.Warn("read cache disabled", zap.Error(err))
		} else {
			defer func() { _ = client.Close() }()
			rdb = client
		}
	}

	app := newApp(cfg, zl, pool, rdb, events)

	// --- HTTP server ---
	errCh := make(chan error, 1)
	go func() {
		zl.Info("starting server", zap.String("addr", cfg.AppPort), zap.String("env", cfg.AppEnv))
		errCh <- app.Listen(cfg.AppPort)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	zl.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("error during fiber shutdown: %w", err)
	}
	zl.Info("server gracefully stopped")
	return nil
}

// newApp wires repositories, services and handlers into a Fiber app.
// rdb and events are optional.
func newApp(cfg *config.Config, zl *zap.Logger, pool *mongodb.Pool, rdb *redis.Client, events services.EventPublisher) *fiber.App {
	var brandRepo repositories.BrandRepository = repositories.NewMongoBrandRepository(pool)
	var productRepo repositories.ProductRepository = repositories.NewMongoProductRepository(pool)
	shopkeeperRepo := repositories.NewMongoShopkeeperRepository(pool)

	if rdb != nil {
		brandRepo = repositories.NewCachedBrandRepository(brandRepo, rdb, cfg.Redis.TTL, zl)
		productRepo = repositories.NewCachedProductRepository(productRepo, rdb, cfg.Redis.TTL, zl)
	}

	brandService := services.NewBrandService(brandRepo, events, zl)
	productService := services.NewProductService(productRepo, events, zl)
	authService := services.NewAuthService(shopkeeperRepo, events, zl, cfg.BcryptCost)

	validate := dto.NewValidator()
	return handlers.NewApp(handlers.Handlers{
		Brand:   handlers.NewBrandHandler(brandService, validate, zl),
		Product: handlers.NewProductHandler(productService, validate, zl),
		Auth:    handlers.NewAuthHandler(authService, validate),
		Health:  handlers.NewHealthHandler(pool, zl),
	}, zl, handlers.AppOptions{
		RateLimitMax:    cfg.RateLimit.Max,
		RateLimitWindow: cfg.RateLimit.Window,
	})
}

// bootstrapIndexes is best effort: the API still serves if the store is
// unreachable at startup, and the unique indexes are created on a later boot.
func bootstrapIndexes(ctx context.Context, pool *mongodb.Pool, zl *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, indexBootstrapTimeout)
	defer cancel()

	db, err := pool.Database(ctx)
	if err != nil {
		zl.Warn("skipping index bootstrap", zap.Error(err))
		return
	}
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		zl.Warn("index bootstrap failed", zap.Error(err))
		return
	}
	zl.Info("indexes ensured")
}
