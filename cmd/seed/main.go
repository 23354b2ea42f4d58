// Command seed populates the database with blog posts, recycling stats, the
// product catalog and optional demo accounts.
package main

import (
	"flag"
	"log"

	"github.com/yomanino/EcoRed-EcoTrama/internal/config"
	"github.com/yomanino/EcoRed-EcoTrama/internal/database"
	"github.com/yomanino/EcoRed-EcoTrama/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 0, "Number of demo accounts to create")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, seed.Options{NumUsers: *numUsers}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
