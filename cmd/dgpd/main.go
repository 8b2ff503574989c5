// Command dgpd is the HTTP gateway around the DGP kernel (SPEC_FULL.md §6).
// It is a thin transport layer: every evaluation decision is made by
// pkg/dgp, never by this package.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgp-systems/compliance-kernel/pkg/cache"
	"github.com/dgp-systems/compliance-kernel/pkg/capsule"
	"github.com/dgp-systems/compliance-kernel/pkg/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	capsulePath := envOr("DGP_CAPSULE_PATH", "./capsule.yaml")
	addr := envOr("DGP_LISTEN_ADDR", ":8080")
	postgresDSN := os.Getenv("DGP_POSTGRES_DSN")
	redisAddr := envOr("DGP_REDIS_ADDR", "localhost:6379")

	capsuleSource := capsule.FileSource{Path: capsulePath}

	var reportStore store.ReportStore
	if postgresDSN != "" {
		pool, err := pgxpool.New(context.Background(), postgresDSN)
		if err != nil {
			log.Fatalf("dgpd: connecting to postgres: %v", err)
		}
		pgStore := store.NewPostgresStore(pool)
		reportStore = pgStore
		defer pgStore.Close()
	} else {
		log.Print("dgpd: DGP_POSTGRES_DSN not set, using in-memory report store")
		reportStore = store.NewMemoryStore()
	}

	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer redisClient.Close()
	reportCache := cache.NewRedisCache(redisClient)

	srv := NewServer(ServerConfig{
		CapsuleSource: capsuleSource,
		Store:         reportStore,
		Cache:         reportCache,
		CacheTTL:      5 * time.Minute,
	})

	app := srv.App()

	go func() {
		if err := app.Listen(addr); err != nil {
			log.Fatalf("dgpd: listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Print("dgpd: shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("dgpd: shutdown error: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
