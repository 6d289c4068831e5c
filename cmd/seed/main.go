// Command main runs the database seeder for the Storefront API.
package main

import (
	"flag"
	"log"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 10, "Number of users to create")
	numCategories := flag.Int("categories", 8, "Number of categories to create")
	productsPer := flag.Int("products", 12, "Number of products per category")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	seedValue := flag.Uint64("seed", 0, "Random seed for deterministic output (0 = random)")
	fixturePath := flag.String("fixture", "", "Seed from a YAML catalog fixture instead of generated data")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, *seedValue)

	if *fixturePath != "" {
		fixture, err := seed.LoadFixture(*fixturePath)
		if err != nil {
			log.Fatalf("❌ Fixture loading failed: %v", err)
		}
		if *shouldClean {
			if err := s.ClearAll(); err != nil {
				log.Fatalf("❌ Cleanup failed: %v", err)
			}
		}
		if err := s.ApplyFixture(fixture); err != nil {
			log.Fatalf("❌ Fixture seeding failed: %v", err)
		}
		log.Printf("✨ Seeded catalog from %s", *fixturePath)
		return
	}

	if err := s.Run(seed.Options{
		NumUsers:            *numUsers,
		NumCategories:       *numCategories,
		ProductsPerCategory: *productsPer,
		ShouldClean:         *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Printf("📧 All test users have the password: %s", seed.DefaultPassword)
}
