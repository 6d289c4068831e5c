package repository

import (
	"context"
	"testing"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCategory(t *testing.T, repo CategoryRepository) *models.Category {
	t.Helper()
	category := &models.Category{
		Title:            "Electronics",
		ShortDescription: "Gadgets",
		LongDescription:  "Phones, laptops, and accessories",
	}
	require.NoError(t, repo.Create(context.Background(), category))
	return category
}

func TestProductCRUD(t *testing.T) {
	db := newTestDB(t)
	categoryRepo := NewCategoryRepository(db)
	repo := NewProductRepository(db)
	ctx := context.Background()

	category := seedCategory(t, categoryRepo)

	product := &models.Product{
		CategoryID:       category.ID,
		Title:            "Wireless Earbuds",
		ShortDescription: "Bluetooth earbuds",
		LongDescription:  "In-ear wireless earbuds with a charging case",
	}
	require.NoError(t, repo.Create(ctx, product))
	require.NotZero(t, product.ID)

	fetched, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, category.ID, fetched.CategoryID)

	fetched.Title = "Wireless Earbuds Pro"
	require.NoError(t, repo.Update(ctx, fetched))

	updated, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wireless Earbuds Pro", updated.Title)

	require.NoError(t, repo.Delete(ctx, product.ID))

	_, err = repo.GetByID(ctx, product.ID)
	assert.True(t, models.IsNotFound(err))
}

func TestProductCreateInvalidCategory(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)

	err := repo.Create(context.Background(), &models.Product{
		CategoryID:       9999,
		Title:            "Orphan",
		ShortDescription: "s",
		LongDescription:  "l",
	})
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, "The selected category id is invalid.", appErr.Message)
}

func TestProductUpdateInvalidCategory(t *testing.T) {
	db := newTestDB(t)
	categoryRepo := NewCategoryRepository(db)
	repo := NewProductRepository(db)
	ctx := context.Background()

	category := seedCategory(t, categoryRepo)
	product := &models.Product{
		CategoryID:       category.ID,
		Title:            "Widget",
		ShortDescription: "s",
		LongDescription:  "l",
	}
	require.NoError(t, repo.Create(ctx, product))

	product.CategoryID = 9999
	err := repo.Update(ctx, product)
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestProductDeleteNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)

	err := repo.Delete(context.Background(), 9999)
	assert.True(t, models.IsNotFound(err))
}
