package main

import (
	"log"
	"os"

	"github.com/baco-dev/baco/db"
	"github.com/baco-dev/baco/internal/auth"
	"github.com/baco-dev/baco/internal/router"
	"github.com/baco-dev/baco/internal/services"
	"github.com/baco-dev/baco/internal/store"
	"github.com/baco-dev/baco/internal/store/gormstore"
	"github.com/baco-dev/baco/internal/store/memstore"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on the environment")
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	var s store.Store

	if os.Getenv("STORE") == "memory" {
		log.Println("STORE=memory, using the in-memory store")
		s = memstore.New()
	} else {
		dsn := os.Getenv("DATABASE_URL")

		if dsn == "" {
			log.Fatal("DATABASE_URL is not set")
		}

		if err := db.ConnectDatabase(dsn); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		if err := db.MigrateDatabase(); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}

		if err := db.SeedDatabase(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}

		s = gormstore.New(db.DB)
	}

	r := router.NewRouter(s, services.LogMailer{})

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
