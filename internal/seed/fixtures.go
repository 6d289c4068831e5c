package seed

import (
	"fmt"
	"os"

	"storefront/internal/models"

	"gopkg.in/yaml.v3"
)

// CatalogFixture is a hand-authored catalog loaded from a YAML file,
// used to seed a recognizable storefront instead of generated noise.
type CatalogFixture struct {
	Categories []CategoryFixture `yaml:"categories"`
}

// CategoryFixture is one category with its products.
type CategoryFixture struct {
	Title            string           `yaml:"title"`
	ShortDescription string           `yaml:"short_description"`
	LongDescription  string           `yaml:"long_description"`
	Products         []ProductFixture `yaml:"products"`
}

// ProductFixture is one product entry under a category.
type ProductFixture struct {
	Title            string `yaml:"title"`
	ShortDescription string `yaml:"short_description"`
	LongDescription  string `yaml:"long_description"`
}

// LoadFixture parses a catalog fixture file.
func LoadFixture(path string) (*CatalogFixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}

	var fixture CatalogFixture
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}

	if len(fixture.Categories) == 0 {
		return nil, fmt.Errorf("fixture %s contains no categories", path)
	}

	return &fixture, nil
}

// ApplyFixture inserts the fixture's categories and products.
func (s *Seeder) ApplyFixture(fixture *CatalogFixture) error {
	for _, cf := range fixture.Categories {
		category := models.Category{
			Title:            cf.Title,
			ShortDescription: cf.ShortDescription,
			LongDescription:  cf.LongDescription,
		}
		if err := s.db.Create(&category).Error; err != nil {
			return fmt.Errorf("failed to create category %q: %w", cf.Title, err)
		}

		for _, pf := range cf.Products {
			product := models.Product{
				CategoryID:       category.ID,
				Title:            pf.Title,
				ShortDescription: pf.ShortDescription,
				LongDescription:  pf.LongDescription,
			}
			if err := s.db.Create(&product).Error; err != nil {
				return fmt.Errorf("failed to create product %q: %w", pf.Title, err)
			}
		}
	}
	return nil
}
