// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"

	"storefront/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is assigned to every generated user.
const DefaultPassword = "password123"

// Options configuration for the seeder
type Options struct {
	NumUsers            int
	NumCategories       int
	ProductsPerCategory int
	ShouldClean         bool
}

// Seeder populates the catalog and user tables with generated data.
type Seeder struct {
	db    *gorm.DB
	faker *gofakeit.Faker
}

// NewSeeder returns a Seeder bound to db. Generated data is deterministic
// for a given seed value.
func NewSeeder(db *gorm.DB, seedValue uint64) *Seeder {
	return &Seeder{
		db:    db,
		faker: gofakeit.New(int64(seedValue)),
	}
}

// ClearAll removes all seeded rows. Products go first to satisfy the
// category foreign key.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"products", "categories", "access_tokens", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// Run seeds the database according to opts.
func (s *Seeder) Run(opts Options) error {
	log.Printf("🌱 Seeding %d users and %d categories with %d products each...",
		opts.NumUsers, opts.NumCategories, opts.ProductsPerCategory)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.SeedUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	categories, err := s.SeedCategories(opts.NumCategories)
	if err != nil {
		return fmt.Errorf("failed to create categories: %w", err)
	}
	log.Printf("✓ %d categories created", len(categories))

	products, err := s.SeedProducts(categories, opts.ProductsPerCategory)
	if err != nil {
		return fmt.Errorf("failed to create products: %w", err)
	}
	log.Printf("✓ %d products created", len(products))

	return nil
}

// SeedUsers creates count users with generated names and unique emails.
func (s *Seeder) SeedUsers(count int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	seen := map[string]struct{}{}

	for i := 0; i < count; i++ {
		email := s.faker.Email()
		for {
			if _, dup := seen[email]; !dup {
				break
			}
			email = s.faker.Email()
		}
		seen[email] = struct{}{}

		user := models.User{
			Name:     s.faker.Name(),
			Email:    email,
			Password: string(hashed),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

// SeedCategories creates count categories with product-department names.
func (s *Seeder) SeedCategories(count int) ([]models.Category, error) {
	categories := make([]models.Category, 0, count)

	for i := 0; i < count; i++ {
		category := models.Category{
			Title:            s.faker.ProductCategory(),
			ShortDescription: s.faker.Sentence(8),
			LongDescription:  s.faker.Paragraph(2, 4, 10, " "),
		}
		if err := s.db.Create(&category).Error; err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, nil
}

// SeedProducts creates perCategory products under each category.
func (s *Seeder) SeedProducts(categories []models.Category, perCategory int) ([]models.Product, error) {
	products := make([]models.Product, 0, len(categories)*perCategory)

	for _, category := range categories {
		for i := 0; i < perCategory; i++ {
			product := models.Product{
				CategoryID:       category.ID,
				Title:            s.faker.ProductName(),
				ShortDescription: s.faker.Sentence(10),
				LongDescription:  s.faker.ProductDescription(),
			}
			if err := s.db.Create(&product).Error; err != nil {
				return nil, err
			}
			products = append(products, product)
		}
	}

	return products, nil
}
