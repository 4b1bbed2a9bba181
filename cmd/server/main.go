package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"nearest-route-service/internal/adapters/cache"
	"nearest-route-service/internal/adapters/repositories"
	"nearest-route-service/internal/api"
	"nearest-route-service/internal/config"
	"nearest-route-service/internal/platform/db"
	"nearest-route-service/internal/platform/kv"
	"nearest-route-service/internal/platform/obs"
	"nearest-route-service/internal/ports"
	"nearest-route-service/internal/services"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// main is the application composition root.
// It wires concrete adapters (Postgres or memory, Redis) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repo ports.BoardRepository = repositories.NewMemoryBoardRepository()
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		if err := repositories.InitSchema(ctx, conn); err != nil {
			log.Fatal(err)
		}
		repo = repositories.NewPostgresBoardRepository(conn)
		log.Println("Board store: postgres")
	} else {
		log.Println("Board store: memory (DATABASE_URL not set)")
	}

	// Seed demo boards on startup for local runs.
	if err := seed(ctx, repo, cfg.SeedPath); err != nil {
		log.Fatal(err)
	}

	// Route cache is optional; without it every solve runs the builder.
	var routeCache ports.RouteCache
	if cfg.RedisURL != "" {
		client, err := kv.Open(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		defer client.Close()

		routeCache = cache.NewRedisRouteCache(client, cfg.RouteCacheTTL)
		log.Printf("Route cache: redis ttl=%s", cfg.RouteCacheTTL)
	}

	builder := services.NewRouteBuilder()
	builder.MinPoints = cfg.MinPoints

	counters := &obs.Counters{}
	solver := services.NewSolver(builder, routeCache, counters)
	router := api.NewRouter(repo, solver, counters, cfg.BatchLimit)

	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

func seed(ctx context.Context, repo ports.BoardRepository, seedPath string) error {
	if _, err := os.Stat(seedPath); errors.Is(err, os.ErrNotExist) {
		log.Printf("No seed file at %s (skipping seed)", seedPath)
		return nil
	}

	n, err := repositories.SeedBoardsFromJSON(ctx, repo, seedPath)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	log.Printf("Seeded boards=%d from %s", n, seedPath)
	return nil
}
