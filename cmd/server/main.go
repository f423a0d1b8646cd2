package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rishiv/portfolio-api/internal/api"
	"github.com/rishiv/portfolio-api/internal/assistant"
	"github.com/rishiv/portfolio-api/internal/config"
	"github.com/rishiv/portfolio-api/internal/knowledge"
	"github.com/rishiv/portfolio-api/internal/notify"
	"github.com/rishiv/portfolio-api/internal/pkg/distlock"
	"github.com/rishiv/portfolio-api/internal/ratelimit"
	"github.com/rishiv/portfolio-api/internal/site"
	"github.com/rishiv/portfolio-api/internal/storage"
)

func main() {
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	log.Printf("[server] storage backend: %s", cfg.Storage.Type)

	// One Redis connection serves both the rate limiter and the sync lock.
	var redisClient *redis.Client
	if cfg.RateLimit.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RateLimit.RedisURL)
		if err != nil {
			log.Fatalf("Invalid Redis URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Fatalf("Redis connection failed: %v", err)
		}
		cancel()
		defer redisClient.Close()
	}

	var limiter ratelimit.Limiter
	if redisClient != nil {
		limiter = ratelimit.NewRedisLimiter(redisClient, cfg.RateLimit.Window(), cfg.RateLimit.MaxPerWindow)
		log.Printf("[server] rate limiter: redis (%d per %s)",
			cfg.RateLimit.MaxPerWindow, cfg.RateLimit.Window())
	} else {
		memLimiter := ratelimit.NewMemoryLimiter(cfg.RateLimit.Window(), cfg.RateLimit.MaxPerWindow)
		limiter = memLimiter
		log.Printf("[server] rate limiter: in-memory (%d per %s)",
			cfg.RateLimit.MaxPerWindow, cfg.RateLimit.Window())

		// Keep the per-client map from accumulating one-off visitors.
		go func() {
			for range time.Tick(cfg.RateLimit.Window()) {
				memLimiter.Sweep()
			}
		}()
	}

	if cfg.Admin.Secret == "" {
		log.Println("[server] WARNING: ADMIN_SECRET not set, admin endpoints disabled")
	}

	handlers := api.NewHandlers(store, limiter, cfg.Admin.Secret).
		WithStorageType(cfg.Storage.Type)

	if cfg.Mail.Enabled {
		notifier, err := notify.NewSESNotifier(cfg.Mail)
		if err != nil {
			log.Fatalf("Failed to initialize SES notifier: %v", err)
		}
		handlers.WithNotifier(notifier)
		log.Printf("[server] notifications enabled, to %s", cfg.Mail.ToEmail)
	} else {
		log.Println("[server] notifications disabled")
	}

	if cfg.Assistant.Enabled {
		var kb *knowledge.Client
		if cfg.Knowledge.Enabled && cfg.Knowledge.APIKey != "" {
			kb = knowledge.NewClient(cfg.Knowledge)
		}
		handlers.WithAssistant(assistant.NewClient(cfg.Assistant), kb)
		log.Printf("[server] assistant enabled, model %s at %s",
			cfg.Assistant.Model, cfg.Assistant.BaseURL)
	}

	if cfg.Blog.FeedURL != "" {
		handlers.WithFeedSyncer(site.NewFeedSyncer(cfg.Blog.FeedURL, cfg.Blog.Timeout()))
		handlers.WithSyncLock(distlock.New(redisClient, "blog-sync", 5*time.Minute))
		log.Printf("[server] blog feed sync enabled: %s", cfg.Blog.FeedURL)
	}

	server := api.NewServer(handlers, cfg.Server.AllowedOrigins)
	addr := fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] listening on %s", addr)
		errCh <- server.ListenAndServe(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server error: %v", err)
	case sig := <-sigCh:
		log.Printf("[server] received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[server] shutdown error: %v", err)
	}
	log.Println("[server] stopped")
}
