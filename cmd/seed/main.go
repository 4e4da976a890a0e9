// Command main runs the database seeder for PageCraft.
package main

import (
	"flag"
	"log"

	"pagecraft/internal/config"
	"pagecraft/internal/database"
	"pagecraft/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numProjects := flag.Int("projects", 80, "Number of projects to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d projects, clean=%v\n", *numUsers, *numProjects, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(database.DB)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.SeedUsers(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}

	projects, err := s.SeedProjects(users, *numProjects)
	if err != nil {
		log.Fatalf("Project seeding failed: %v", err)
	}

	if _, err := s.SeedVersions(projects); err != nil {
		log.Fatalf("Version seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with demo data.")
	log.Printf("All demo users have the password: %s", seed.DemoPassword)
}
