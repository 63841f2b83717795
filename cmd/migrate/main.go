package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/pipeboard/pipeboard/internal/store/postgres"
)

// Standalone migration runner. Takes the connection string from the
// first argument or DATABASE_URL.
func main() {
	ctx := context.Background()

	connStr := os.Getenv("DATABASE_URL")
	if len(os.Args) > 1 {
		connStr = os.Args[1]
	}
	if connStr == "" {
		log.Fatal("usage: migrate <connection-string> (or set DATABASE_URL)")
	}

	db, err := postgres.New(ctx, postgres.Config{URL: connStr})
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer db.Close()

	fmt.Println("Applying initial schema...")
	if err := db.Migrate(ctx, postgres.InitialSchema); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}
	fmt.Println("Migration successful.")
}
