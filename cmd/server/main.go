package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"range-ring-service/internal/adapters/cache"
	"range-ring-service/internal/adapters/repositories"
	"range-ring-service/internal/api"
	"range-ring-service/internal/config"
	"range-ring-service/internal/platform/db"
	"range-ring-service/internal/platform/metrics"
	"range-ring-service/internal/ports"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	metrics.Register()

	ctx := context.Background()

	pool, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	// Create tables on startup for local runs; disable once migrations are
	// managed out of band.
	if config.GetBool("INIT_SCHEMA", true) {
		if err := repositories.InitSchema(pool); err != nil {
			log.Fatal(err)
		}
	}

	repo := repositories.NewPostgresRingSetRepository(pool)

	// RING_CACHE selects redis, memory, or none. The default "auto" uses
	// Redis when REDIS_ADDR is set and no cache otherwise; ringCache stays a
	// true nil interface when caching is off.
	backend := config.Get("RING_CACHE", "auto")
	if backend == "auto" {
		backend = "none"
		if config.Get("REDIS_ADDR", "") != "" {
			backend = "redis"
		}
	}

	var ringCache ports.RingCache
	switch backend {
	case "none":
	case "memory":
		mc, err := cache.NewMemoryRingCache(config.GetInt("RING_CACHE_MAX_ENTRIES", 1024))
		if err != nil {
			log.Fatal(err)
		}
		ringCache = mc
		log.Println("Ring cache enabled backend=memory")
	case "redis":
		addr := config.Get("REDIS_ADDR", "")
		if addr == "" {
			log.Fatal("REDIS_ADDR is required when RING_CACHE=redis")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.Get("REDIS_PASSWORD", ""),
			DB:       config.GetInt("REDIS_DB", 0),
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis ping failed: %v", err)
		}

		rc, err := cache.NewRedisRingCache(client, config.GetDuration("RING_CACHE_TTL", 12*time.Hour))
		if err != nil {
			log.Fatal(err)
		}
		ringCache = rc
		log.Printf("Ring cache enabled backend=redis addr=%s", addr)
	default:
		log.Fatalf("unknown RING_CACHE backend %q (want redis, memory, or none)", backend)
	}

	router := api.NewRouter(repo, ringCache)

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
