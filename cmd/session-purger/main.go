package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	userpostgres "github.com/Apurer/storefront-api/internal/domains/users/adapters/persistence/postgres"
	platformpostgres "github.com/Apurer/storefront-api/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge sessions")
	}

	purged, err := userpostgres.NewSessionStore(db).PurgeExpired(ctx)
	if err != nil {
		log.Fatalf("failed to purge sessions: %v", err)
	}
	log.Printf("session purge completed, removed %d expired sessions", purged)
}
