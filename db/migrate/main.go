package main

import (
	"log"

	"github.com/mhuescar/hostify-broadcast-message/environments"
	"github.com/mhuescar/hostify-broadcast-message/pkg/database"
)

func main() {
	cfg := environments.Load()

	if cfg.Database.Host == "" {
		log.Fatalf("DB_HOST is required to run migrations")
	}

	db, err := database.NewMySQLDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")
}
