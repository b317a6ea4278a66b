// Command main runs the database seeder for Vyaparify.
package main

import (
	"flag"
	"log"

	"vyaparify/internal/config"
	"vyaparify/internal/database"
	"vyaparify/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numAds := flag.Int("ads", 100, "Number of ads to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Printf("Seeding: %d users, %d ads, clean=%v", *numUsers, *numAds, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Seed(seed.Options{NumUsers: *numUsers, NumAds: *numAds}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
