// Command seed populates the database with sample data for development.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"blueddit/internal/config"
	"blueddit/internal/database"
	"blueddit/internal/seed"
)

func main() {
	users := flag.Int("users", 10, "number of users to create")
	posts := flag.Int("posts", 20, "number of posts to create")
	clean := flag.Bool("clean", false, "delete existing rows before seeding")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.Options{Users: *users, Posts: *posts, Clean: *clean}
	if err := seed.Run(context.Background(), db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users and %d posts", *users, *posts)
}
