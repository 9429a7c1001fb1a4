// Command main runs the database seeder for Chirper.
package main

import (
	"flag"
	"log"

	"chirper/internal/config"
	"chirper/internal/database"
	"chirper/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numMessages := flag.Int("messages", 300, "Number of messages to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Printf("Seeding: %d users, %d messages, clean=%v", *numUsers, *numMessages, *shouldClean)

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

	users, err := s.SeedUsers(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	messages, err := s.SeedMessages(users, *numMessages)
	if err != nil {
		log.Fatalf("Message seeding failed: %v", err)
	}
	if err := s.SeedSocialGraph(users, messages); err != nil {
		log.Fatalf("Social graph seeding failed: %v", err)
	}

	log.Printf("Done. All seeded users log in with password %q.", seed.DefaultPassword)
}
