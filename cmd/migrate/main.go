package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/Skotchmaster/ecommerce/pkg/config"
	pkgdb "github.com/Skotchmaster/ecommerce/pkg/db"
	"github.com/Skotchmaster/ecommerce/pkg/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	dsn := os.Getenv("DATABASE_URL")
	config.MustNonEmpty(dsn, "DATABASE_URL")

	logger := logging.New(config.EnvDefault("LOG_LEVEL", "info")).With("cmd", "migrate")

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("open: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("ping: %v", err)
	}

	applied, err := pkgdb.Migrate(ctx, db)
	for _, v := range applied {
		logger.Info("migration applied", "version", v)
	}
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}
	logger.Info("migrations complete", "applied", len(applied))
}
