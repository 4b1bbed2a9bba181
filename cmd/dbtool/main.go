package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"nearest-route-service/internal/adapters/repositories"
	"nearest-route-service/internal/config"
	"nearest-route-service/internal/platform/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := initAndSeed(ctx, conn, cfg.SeedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	n, err := repositories.SeedBoardsFromJSON(ctx, repositories.NewPostgresBoardRepository(conn), seedPath)
	if err != nil {
		return fmt.Errorf("seed boards from %s: %w", seedPath, err)
	}
	log.Printf("Seeding complete. boards=%d", n)

	return nil
}
