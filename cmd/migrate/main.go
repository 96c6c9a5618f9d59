// Command migrate applies the schema to the configured database. Unlike the
// server, it runs AutoMigrate regardless of APP_ENV, so production schema
// changes are an explicit step.
package main

import (
	"log"

	"cineverse/internal/config"
	"cineverse/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Schema is up to date")
}
