package main

import (
	"log"

	"hirestack/recruit-api/internal/config"
)

// Applies the schema migrations without starting the API server. Useful
// for deploy pipelines that migrate before rolling the new binary.
func main() {
	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer config.CloseDatabase(db)

	log.Println("migrations completed")
}
