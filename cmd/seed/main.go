// main.go - demo data seeding tool
package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/khaizafron/MAISON-DE-KAIRA/internal/config"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/database"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/logging"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/seeder"
)

func main() {
	eventCount := flag.Int("events", 2000, "number of view events to generate")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.GetConfig()
	logger := logging.NewLogger(cfg)

	dbManager := database.NewDBManager(cfg, logger)
	if err := dbManager.Init(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer dbManager.Close()

	if err := dbManager.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	s := seeder.NewSeeder(dbManager.GetConnection(), logger, *eventCount)
	if err := s.Seed(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
